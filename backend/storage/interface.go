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

package storage

import (
	"github.com/srj101/chat-api/backend/models"
)

// DirectoryStore maps human-readable names to accounts.
type DirectoryStore interface {
	// Register creates an account. The name check and the insert are one
	// atomic unit: under concurrent registration of the same name exactly
	// one call succeeds and the rest get models.ErrDuplicateName.
	Register(name, passwordHash string) (*models.Account, error)
	Resolve(name string) (*models.Account, error)
	GetAccount(id string) (*models.Account, error)
}

// PresenceStore tracks session heartbeats and derives account activity.
type PresenceStore interface {
	CreateSession(accountID string) (*models.Session, error)
	Touch(sessionID string) error
	IsActive(sessionID string) (bool, error)
	// ListActiveAccounts returns the deduplicated set of accounts with at
	// least one session touched inside the presence window.
	ListActiveAccounts() []string
}

// GroupStore owns group definitions and membership.
type GroupStore interface {
	CreateGroup(name, creatorID string, memberIDs []string) (*models.Group, error)
	GetGroup(groupID string) (*models.Group, error)
	IsMember(groupID, accountID string) (bool, error)
	// SnapshotMembers returns the membership as of the read instant,
	// never a torn view of a concurrent edit.
	SnapshotMembers(groupID string) ([]string, error)
	AddGroupMember(groupID, accountID string) error
	RemoveGroupMember(groupID, accountID string) error
}

// MailboxStore owns per-owner message collections. The owner key is an
// account id for direct messages and a group id for group messages.
type MailboxStore interface {
	Append(ownerKey string, msg *models.Message) error
	// ListFor returns the owner's messages in insertion order; an owner
	// with no mailbox yet yields an empty slice, not an error.
	ListFor(ownerKey string) ([]*models.Message, error)
	Get(ownerKey, messageID string) (*models.Message, error)
	// UpdateStatus merges the partial update into the message's status as
	// one atomic read-modify-write; concurrent updates are never lost.
	UpdateStatus(ownerKey, messageID string, update models.StatusUpdate) (*models.Message, error)
}

type Store interface {
	DirectoryStore
	PresenceStore
	GroupStore
	MailboxStore
}
