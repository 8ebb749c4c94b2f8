// Copyright (C) 2025 srj101
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package models

import "time"

// Account is a registered user. The password hash is owned by the auth
// layer; the core stores it opaquely and never inspects it.
type Account struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Session tracks one logged-in connection of an account. Sessions are
// never destroyed explicitly; they fall out of the presence window when
// their last activity grows stale. An account may hold several at once.
type Session struct {
	ID           string    `json:"id"`
	AccountID    string    `json:"account_id"`
	LastActivity time.Time `json:"last_activity"`
}

// Group is a named conversation shared by a set of accounts. The creator
// is always a member.
type Group struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatorID string    `json:"creator_id"`
	Members   []string  `json:"members"`
	CreatedAt time.Time `json:"created_at"`
}

// Attachment is the descriptor handed over by the upload layer. The core
// stores it as-is; the reference is only meaningful to that layer.
type Attachment struct {
	Reference string `json:"reference"`
	SizeBytes int64  `json:"size_bytes"`
}
