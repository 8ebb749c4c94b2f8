// Copyright (C) 2025 srj101
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package models

import "time"

// Message kinds. The field is an open string so new kinds can be added
// without touching the core.
const (
	KindText  = "text"
	KindImage = "image"
)

// Message is one chat message. Exactly one of RecipientID and GroupID is
// set, fixed at creation. A message belongs to its target's mailbox, not
// to the sender.
type Message struct {
	ID          string      `json:"id"`
	SenderID    string      `json:"sender_id"`
	RecipientID string      `json:"recipient_id,omitempty"`
	GroupID     string      `json:"group_id,omitempty"`
	Content     string      `json:"content"`
	Kind        string      `json:"kind"`
	Attachment  *Attachment `json:"attachment,omitempty"`
	Status      Status      `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
}

// OwnerKey returns the mailbox key the message lives under: the recipient
// account id for a direct message, the group id for a group message.
func (m *Message) OwnerKey() string {
	if m.GroupID != "" {
		return m.GroupID
	}
	return m.RecipientID
}

// IsGroup reports whether the message targets a group.
func (m *Message) IsGroup() bool {
	return m.GroupID != ""
}

// Clone returns a deep copy so callers can never mutate store-owned state.
func (m *Message) Clone() *Message {
	clone := *m
	clone.Status = m.Status.Clone()
	if m.Attachment != nil {
		att := *m.Attachment
		clone.Attachment = &att
	}
	return &clone
}
