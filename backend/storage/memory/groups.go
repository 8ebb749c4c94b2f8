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

package memory

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/srj101/chat-api/backend/models"
)

type group struct {
	id        string
	name      string
	creatorID string
	members   map[string]struct{}
	createdAt time.Time
}

// Groups is the in-memory group registry. Membership reads used for
// message fan-out take a snapshot under the registry lock, so a send
// racing a membership edit never observes a torn member set.
type Groups struct {
	mu     sync.RWMutex
	groups map[string]*group
	now    func() time.Time
}

func NewGroups() *Groups {
	return &Groups{
		groups: make(map[string]*group),
		now:    time.Now,
	}
}

func (g *Groups) CreateGroup(name, creatorID string, memberIDs []string) (*models.Group, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	// Idempotent union: the creator is a member whether or not the
	// caller listed them, and duplicates in the input collapse.
	members := make(map[string]struct{}, len(memberIDs)+1)
	members[creatorID] = struct{}{}
	for _, id := range memberIDs {
		members[id] = struct{}{}
	}

	grp := &group{
		id:        uuid.New().String(),
		name:      name,
		creatorID: creatorID,
		members:   members,
		createdAt: g.now(),
	}
	g.groups[grp.id] = grp

	return grp.toModel(), nil
}

func (g *Groups) GetGroup(groupID string) (*models.Group, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	grp, ok := g.groups[groupID]
	if !ok {
		return nil, fmt.Errorf("group %s: %w", groupID, models.ErrNotFound)
	}
	return grp.toModel(), nil
}

func (g *Groups) IsMember(groupID, accountID string) (bool, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	grp, ok := g.groups[groupID]
	if !ok {
		return false, fmt.Errorf("group %s: %w", groupID, models.ErrNotFound)
	}
	_, member := grp.members[accountID]
	return member, nil
}

func (g *Groups) SnapshotMembers(groupID string) ([]string, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	grp, ok := g.groups[groupID]
	if !ok {
		return nil, fmt.Errorf("group %s: %w", groupID, models.ErrNotFound)
	}
	return grp.memberList(), nil
}

func (g *Groups) AddGroupMember(groupID, accountID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	grp, ok := g.groups[groupID]
	if !ok {
		return fmt.Errorf("group %s: %w", groupID, models.ErrNotFound)
	}
	grp.members[accountID] = struct{}{}
	return nil
}

func (g *Groups) RemoveGroupMember(groupID, accountID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	grp, ok := g.groups[groupID]
	if !ok {
		return fmt.Errorf("group %s: %w", groupID, models.ErrNotFound)
	}
	if accountID == grp.creatorID {
		return models.ErrCreatorCannotLeave
	}
	delete(grp.members, accountID)
	return nil
}

func (grp *group) toModel() *models.Group {
	return &models.Group{
		ID:        grp.id,
		Name:      grp.name,
		CreatorID: grp.creatorID,
		Members:   grp.memberList(),
		CreatedAt: grp.createdAt,
	}
}

func (grp *group) memberList() []string {
	members := make([]string, 0, len(grp.members))
	for id := range grp.members {
		members = append(members, id)
	}
	sort.Strings(members)
	return members
}
