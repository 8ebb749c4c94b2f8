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
	"sync"
	"time"

	"github.com/srj101/chat-api/backend/models"
)

type mailbox struct {
	order []*models.Message
	byID  map[string]*models.Message
}

// Mailboxes holds one message collection per owner key (account id for
// direct messages, group id for group messages). All mutation happens
// under the store lock, so a lazy-creation race resolves to a single
// mailbox and status merges are read-modify-write with no lost updates.
// Everything handed out is a clone; store-owned messages never escape.
type Mailboxes struct {
	mu    sync.RWMutex
	boxes map[string]*mailbox
	now   func() time.Time
}

func NewMailboxes() *Mailboxes {
	return &Mailboxes{
		boxes: make(map[string]*mailbox),
		now:   time.Now,
	}
}

func (m *Mailboxes) Append(ownerKey string, msg *models.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	box, ok := m.boxes[ownerKey]
	if !ok {
		box = &mailbox{byID: make(map[string]*models.Message)}
		m.boxes[ownerKey] = box
	}

	stored := msg.Clone()
	box.order = append(box.order, stored)
	box.byID[stored.ID] = stored
	return nil
}

func (m *Mailboxes) ListFor(ownerKey string) ([]*models.Message, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	box, ok := m.boxes[ownerKey]
	if !ok {
		return []*models.Message{}, nil
	}

	messages := make([]*models.Message, 0, len(box.order))
	for _, msg := range box.order {
		messages = append(messages, msg.Clone())
	}
	return messages, nil
}

func (m *Mailboxes) Get(ownerKey, messageID string) (*models.Message, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	msg, err := m.lookup(ownerKey, messageID)
	if err != nil {
		return nil, err
	}
	return msg.Clone(), nil
}

func (m *Mailboxes) UpdateStatus(ownerKey, messageID string, update models.StatusUpdate) (*models.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	msg, err := m.lookup(ownerKey, messageID)
	if err != nil {
		return nil, err
	}
	if _, err := msg.Status.Apply(update, m.now()); err != nil {
		return nil, err
	}
	return msg.Clone(), nil
}

// lookup finds a stored message; callers hold the lock.
func (m *Mailboxes) lookup(ownerKey, messageID string) (*models.Message, error) {
	box, ok := m.boxes[ownerKey]
	if !ok {
		return nil, fmt.Errorf("mailbox %s: %w", ownerKey, models.ErrNotFound)
	}
	msg, ok := box.byID[messageID]
	if !ok {
		return nil, fmt.Errorf("message %s: %w", messageID, models.ErrNotFound)
	}
	return msg, nil
}
