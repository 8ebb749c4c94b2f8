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

// Package chat assembles messages and drives their delivery lifecycle.
// Callers arrive already authenticated; the sender id is trusted as-is.
package chat

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/srj101/chat-api/backend/models"
	"github.com/srj101/chat-api/backend/storage"
)

// Service builds message records and applies status updates. Group sends
// are membership-gated before any mailbox write happens.
type Service struct {
	groups storage.GroupStore
	mail   storage.MailboxStore

	now   func() time.Time
	newID func() string
}

func NewService(groups storage.GroupStore, mail storage.MailboxStore) *Service {
	return &Service{
		groups: groups,
		mail:   mail,
		now:    time.Now,
		newID:  func() string { return uuid.New().String() },
	}
}

// ComposeDirect builds a direct message record with a fresh id, creation
// timestamp and initial status {sent:true, delivered:false, seen:false}.
// The record is not yet stored.
func (s *Service) ComposeDirect(senderID, recipientID, content, kind string, attachment *models.Attachment) (*models.Message, error) {
	msg, err := s.compose(senderID, recipientID, "", content, kind, attachment)
	if err != nil {
		return nil, err
	}
	msg.Status = models.NewDirectStatus(msg.CreatedAt)
	return msg, nil
}

// ComposeGroup builds a group message record. The sender must be a member
// of the group; the seen-map is initialized from the membership snapshot
// at this instant, every entry false, the sender included. Membership
// edits after composition never touch the snapshot.
func (s *Service) ComposeGroup(senderID, groupID, content, kind string, attachment *models.Attachment) (*models.Message, error) {
	member, err := s.groups.IsMember(groupID, senderID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, fmt.Errorf("sender %s in group %s: %w", senderID, groupID, models.ErrNotMember)
	}

	members, err := s.groups.SnapshotMembers(groupID)
	if err != nil {
		return nil, err
	}

	msg, err := s.compose(senderID, "", groupID, content, kind, attachment)
	if err != nil {
		return nil, err
	}
	msg.Status = models.NewGroupStatus(members, msg.CreatedAt)
	return msg, nil
}

// SendDirect composes a direct message and appends it to the recipient's
// mailbox.
func (s *Service) SendDirect(senderID, recipientID, content, kind string, attachment *models.Attachment) (*models.Message, error) {
	msg, err := s.ComposeDirect(senderID, recipientID, content, kind, attachment)
	if err != nil {
		return nil, err
	}
	if err := s.mail.Append(msg.OwnerKey(), msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// SendGroup composes a group message and appends it to the group's shared
// mailbox. A sender outside the group fails fast and writes nothing.
func (s *Service) SendGroup(senderID, groupID, content, kind string, attachment *models.Attachment) (*models.Message, error) {
	msg, err := s.ComposeGroup(senderID, groupID, content, kind, attachment)
	if err != nil {
		return nil, err
	}
	if err := s.mail.Append(msg.OwnerKey(), msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// History returns the owner's conversation in insertion order.
func (s *Service) History(ownerKey string) ([]*models.Message, error) {
	return s.mail.ListFor(ownerKey)
}

// Message fetches a single message from the owner's mailbox.
func (s *Service) Message(ownerKey, messageID string) (*models.Message, error) {
	return s.mail.Get(ownerKey, messageID)
}

// UpdateStatus merges a partial status into a stored message. The merge
// is monotonic: flags already true stay true. For group messages
// update.Member names whose seen entry is set and must be a key of the
// seen-map snapshot taken at composition.
func (s *Service) UpdateStatus(ownerKey, messageID string, update models.StatusUpdate) (*models.Message, error) {
	return s.mail.UpdateStatus(ownerKey, messageID, update)
}

func (s *Service) compose(senderID, recipientID, groupID, content, kind string, attachment *models.Attachment) (*models.Message, error) {
	if (recipientID == "") == (groupID == "") {
		return nil, models.ErrInvalidTarget
	}
	if kind == "" {
		kind = models.KindText
	}
	return &models.Message{
		ID:          s.newID(),
		SenderID:    senderID,
		RecipientID: recipientID,
		GroupID:     groupID,
		Content:     content,
		Kind:        kind,
		Attachment:  attachment,
		CreatedAt:   s.now(),
	}, nil
}
