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

// ActiveWindow is how long a session stays active after its last
// heartbeat. A session touched exactly ActiveWindow ago is inactive.
const ActiveWindow = 5 * time.Minute

// Presence tracks per-session heartbeats. Sessions are never removed;
// they simply age out of the window. An account with several sessions is
// active as long as any one of them is.
type Presence struct {
	mu       sync.RWMutex
	sessions map[string]*models.Session
	now      func() time.Time
}

func NewPresence() *Presence {
	return &Presence{
		sessions: make(map[string]*models.Session),
		now:      time.Now,
	}
}

func (p *Presence) CreateSession(accountID string) (*models.Session, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	session := &models.Session{
		ID:           uuid.New().String(),
		AccountID:    accountID,
		LastActivity: p.now(),
	}
	p.sessions[session.ID] = session

	clone := *session
	return &clone, nil
}

func (p *Presence) Touch(sessionID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	session, ok := p.sessions[sessionID]
	if !ok {
		return fmt.Errorf("session %s: %w", sessionID, models.ErrNotFound)
	}
	session.LastActivity = p.now()
	return nil
}

func (p *Presence) IsActive(sessionID string) (bool, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	session, ok := p.sessions[sessionID]
	if !ok {
		return false, fmt.Errorf("session %s: %w", sessionID, models.ErrNotFound)
	}
	return p.now().Sub(session.LastActivity) < ActiveWindow, nil
}

func (p *Presence) ListActiveAccounts() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	now := p.now()
	seen := make(map[string]bool)
	var accounts []string
	for _, session := range p.sessions {
		if now.Sub(session.LastActivity) >= ActiveWindow {
			continue
		}
		if !seen[session.AccountID] {
			seen[session.AccountID] = true
			accounts = append(accounts, session.AccountID)
		}
	}
	sort.Strings(accounts)
	return accounts
}
