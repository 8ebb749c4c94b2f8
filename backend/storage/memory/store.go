// Copyright (C) 2025 srj101
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package memory

import (
	"github.com/srj101/chat-api/backend/storage"
)

// Store aggregates the in-memory stores into the storage.Store surface.
// All state lives for the lifetime of the process and is constructed
// explicitly at startup; there are no package-level singletons.
type Store struct {
	*Directory
	*Presence
	*Groups
	*Mailboxes
}

var _ storage.Store = (*Store)(nil)

func NewStore() *Store {
	return &Store{
		Directory: NewDirectory(),
		Presence:  NewPresence(),
		Groups:    NewGroups(),
		Mailboxes: NewMailboxes(),
	}
}
