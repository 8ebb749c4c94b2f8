// Copyright (C) 2025 srj101
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package models

import "errors"

// Failure kinds surfaced by the core. The serving layer maps these to
// transport status codes; the core itself never deals in HTTP.
var (
	// ErrDuplicateName is returned when registering a name that is
	// already taken.
	ErrDuplicateName = errors.New("name already registered")

	// ErrNotFound covers a missing account, session, group, message,
	// or seen-map key.
	ErrNotFound = errors.New("not found")

	// ErrNotMember is returned when the sender or updater is not a
	// member of the target group.
	ErrNotMember = errors.New("not a group member")

	// ErrInvalidTarget is returned when a message is constructed with
	// neither or both of recipient and group set.
	ErrInvalidTarget = errors.New("message must target exactly one recipient or group")

	// ErrCreatorCannotLeave guards the invariant that a group's creator
	// is always a member.
	ErrCreatorCannotLeave = errors.New("group creator cannot be removed")
)
