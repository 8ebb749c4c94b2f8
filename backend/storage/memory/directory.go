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

	"github.com/google/uuid"

	"github.com/srj101/chat-api/backend/models"
)

// Directory is the in-memory identity directory. Safe for concurrent use;
// the duplicate-name check and the insert happen under one lock hold.
type Directory struct {
	mu     sync.RWMutex
	byName map[string]*models.Account
	byID   map[string]*models.Account
	now    func() time.Time
}

func NewDirectory() *Directory {
	return &Directory{
		byName: make(map[string]*models.Account),
		byID:   make(map[string]*models.Account),
		now:    time.Now,
	}
}

func (d *Directory) Register(name, passwordHash string) (*models.Account, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.byName[name]; ok {
		return nil, fmt.Errorf("account %q: %w", name, models.ErrDuplicateName)
	}

	account := &models.Account{
		ID:           uuid.New().String(),
		Name:         name,
		PasswordHash: passwordHash,
		CreatedAt:    d.now(),
	}
	d.byName[name] = account
	d.byID[account.ID] = account

	clone := *account
	return &clone, nil
}

func (d *Directory) Resolve(name string) (*models.Account, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	account, ok := d.byName[name]
	if !ok {
		return nil, fmt.Errorf("account %q: %w", name, models.ErrNotFound)
	}
	clone := *account
	return &clone, nil
}

func (d *Directory) GetAccount(id string) (*models.Account, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	account, ok := d.byID[id]
	if !ok {
		return nil, fmt.Errorf("account %s: %w", id, models.ErrNotFound)
	}
	clone := *account
	return &clone, nil
}
