// Copyright (C) 2025 srj101
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package models

import (
	"fmt"
	"time"
)

// Status is the delivery lifecycle of a message. It comes in two variants
// selected by the message's target:
//
//   - direct: Sent, Delivered, Seen; SeenBy is nil
//   - group:  Sent, Delivered, and SeenBy mapping each member at send
//     time to whether that member has seen the message; Seen is unused
//
// Sent is true from the moment the message is stored. Delivered, Seen and
// every SeenBy entry only ever transition false to true. The SeenBy key
// set is frozen at composition time: membership changes after the send do
// not add or remove keys.
type Status struct {
	Sent      bool            `json:"sent"`
	Delivered bool            `json:"delivered"`
	Seen      bool            `json:"seen,omitempty"`
	SeenBy    map[string]bool `json:"seen_by,omitempty"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// NewDirectStatus returns the initial status of a direct message.
func NewDirectStatus(now time.Time) Status {
	return Status{Sent: true, UpdatedAt: now}
}

// NewGroupStatus returns the initial status of a group message, with a
// seen entry for every member of the snapshot, the sender included.
func NewGroupStatus(members []string, now time.Time) Status {
	seenBy := make(map[string]bool, len(members))
	for _, id := range members {
		seenBy[id] = false
	}
	return Status{Sent: true, SeenBy: seenBy, UpdatedAt: now}
}

// IsGroup reports whether this is the group variant.
func (s *Status) IsGroup() bool {
	return s.SeenBy != nil
}

// Clone returns a copy with its own seen-map.
func (s *Status) Clone() Status {
	clone := *s
	if s.SeenBy != nil {
		clone.SeenBy = make(map[string]bool, len(s.SeenBy))
		for k, v := range s.SeenBy {
			clone.SeenBy[k] = v
		}
	}
	return clone
}

// StatusUpdate is a partial status carried by an update request. Nil
// fields are left untouched. For group messages, Member names the account
// whose seen entry the Seen field applies to.
type StatusUpdate struct {
	Delivered *bool  `json:"delivered,omitempty"`
	Seen      *bool  `json:"seen,omitempty"`
	Member    string `json:"member,omitempty"`
}

// Apply merges the update into the status field by field. The merge is
// monotonic: a flag that is already true stays true, so an explicit false
// in the update is ignored rather than reverting delivery state. Returns
// whether any field actually changed; UpdatedAt is bumped only then.
//
// For the group variant the Member key is validated against the frozen
// seen-map before anything is written, so a failed update leaves the
// status untouched.
func (s *Status) Apply(u StatusUpdate, now time.Time) (bool, error) {
	if u.Seen != nil && s.IsGroup() {
		if _, ok := s.SeenBy[u.Member]; !ok {
			return false, fmt.Errorf("seen entry %q: %w", u.Member, ErrNotFound)
		}
	}

	changed := false
	if u.Delivered != nil && *u.Delivered && !s.Delivered {
		s.Delivered = true
		changed = true
	}
	if u.Seen != nil && *u.Seen {
		if s.IsGroup() {
			if !s.SeenBy[u.Member] {
				s.SeenBy[u.Member] = true
				changed = true
			}
		} else if !s.Seen {
			s.Seen = true
			changed = true
		}
	}
	if changed {
		s.UpdatedAt = now
	}
	return changed, nil
}
