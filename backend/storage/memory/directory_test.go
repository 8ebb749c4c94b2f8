// Copyright (C) 2025 srj101
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package memory

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/srj101/chat-api/backend/models"
)

func TestRegisterAndResolve(t *testing.T) {
	d := NewDirectory()

	account, err := d.Register("alice", "hash-a")
	require.NoError(t, err)
	require.NotEmpty(t, account.ID)
	require.Equal(t, "alice", account.Name)
	require.False(t, account.CreatedAt.IsZero())

	resolved, err := d.Resolve("alice")
	require.NoError(t, err)
	require.Equal(t, account.ID, resolved.ID)

	byID, err := d.GetAccount(account.ID)
	require.NoError(t, err)
	require.Equal(t, "alice", byID.Name)
}

func TestRegisterDuplicateName(t *testing.T) {
	d := NewDirectory()

	_, err := d.Register("alice", "hash-a")
	require.NoError(t, err)

	_, err = d.Register("alice", "hash-b")
	require.ErrorIs(t, err, models.ErrDuplicateName)
}

func TestResolveUnknown(t *testing.T) {
	d := NewDirectory()

	_, err := d.Resolve("nobody")
	require.ErrorIs(t, err, models.ErrNotFound)

	_, err = d.GetAccount("missing-id")
	require.ErrorIs(t, err, models.ErrNotFound)
}

// Under concurrent registration of the same name exactly one call wins;
// the rest observe the duplicate error and no second account appears.
func TestRegisterConcurrentSameName(t *testing.T) {
	d := NewDirectory()

	const workers = 32
	var wg sync.WaitGroup
	var wins, duplicates int32

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := d.Register("alice", "hash")
			switch {
			case err == nil:
				atomic.AddInt32(&wins, 1)
			case errors.Is(err, models.ErrDuplicateName):
				atomic.AddInt32(&duplicates, 1)
			}
		}()
	}
	wg.Wait()

	require.EqualValues(t, 1, wins)
	require.EqualValues(t, workers-1, duplicates)

	_, err := d.Resolve("alice")
	require.NoError(t, err)
}
