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

	"github.com/srj101/chat-api/backend/chat"
	"github.com/srj101/chat-api/backend/models"
)

type DMHandler struct {
	chat *chat.Service
}

func NewDMHandler(service *chat.Service) *DMHandler {
	return &DMHandler{chat: service}
}

// SendDM composes a direct message and stores it in the recipient's
// mailbox.
func (h *DMHandler) SendDM(w http.ResponseWriter, r *http.Request) {
	senderID := r.Context().Value("user_id").(string)

	var req struct {
		RecipientID string             `json:"recipient_id"`
		Content     string             `json:"content"`
		Kind        string             `json:"kind"`
		Attachment  *models.Attachment `json:"attachment,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	msg, err := h.chat.SendDirect(senderID, req.RecipientID, req.Content, req.Kind, req.Attachment)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(msg)
}

// GetDMs returns the authenticated user's mailbox in insertion order.
func (h *DMHandler) GetDMs(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("user_id").(string)

	messages, err := h.chat.History(userID)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"messages": messages,
		"count":    len(messages),
	})
}

// GetDM returns one message from the authenticated user's mailbox.
func (h *DMHandler) GetDM(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("user_id").(string)
	vars := mux.Vars(r)
	messageID := vars["messageId"]

	msg, err := h.chat.Message(userID, messageID)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(msg)
}

// UpdateDMStatus merges a partial status (delivered and/or seen) into a
// message in the authenticated user's mailbox. Flags already true are
// never reverted.
func (h *DMHandler) UpdateDMStatus(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("user_id").(string)
	vars := mux.Vars(r)
	messageID := vars["messageId"]

	var update models.StatusUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	update.Member = ""

	msg, err := h.chat.UpdateStatus(userID, messageID, update)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(msg)
}
