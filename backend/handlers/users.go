// Copyright (C) 2025 srj101
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/srj101/chat-api/backend/storage"
)

type UserHandler struct {
	directory storage.DirectoryStore
	presence  storage.PresenceStore
}

func NewUserHandler(directory storage.DirectoryStore, presence storage.PresenceStore) *UserHandler {
	return &UserHandler{directory: directory, presence: presence}
}

// GetActiveUsers lists accounts with at least one session active inside
// the presence window.
func (h *UserHandler) GetActiveUsers(w http.ResponseWriter, r *http.Request) {
	accounts := h.presence.ListActiveAccounts()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"accounts": accounts,
		"count":    len(accounts),
	})
}

// ResolveUser looks up an account by username.
func (h *UserHandler) ResolveUser(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	username := vars["username"]

	account, err := h.directory.Resolve(username)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(account)
}
