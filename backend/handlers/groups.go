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

package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/srj101/chat-api/backend/chat"
	"github.com/srj101/chat-api/backend/models"
	"github.com/srj101/chat-api/backend/storage"
)

type GroupHandler struct {
	groups storage.GroupStore
	chat   *chat.Service
}

func NewGroupHandler(groups storage.GroupStore, service *chat.Service) *GroupHandler {
	return &GroupHandler{groups: groups, chat: service}
}

// CreateGroup creates a group with the caller as creator. The creator is
// always a member, whether or not they appear in member_ids.
func (h *GroupHandler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("user_id").(string)

	var req struct {
		Name      string   `json:"name"`
		MemberIDs []string `json:"member_ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	group, err := h.groups.CreateGroup(req.Name, userID, req.MemberIDs)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(group)
}

func (h *GroupHandler) GetGroupMembers(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	groupID := vars["groupId"]

	members, err := h.groups.SnapshotMembers(groupID)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"group_id": groupID,
		"members":  members,
	})
}

func (h *GroupHandler) JoinGroup(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("user_id").(string)
	vars := mux.Vars(r)
	groupID := vars["groupId"]

	if err := h.groups.AddGroupMember(groupID, userID); err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "joined"})
}

func (h *GroupHandler) LeaveGroup(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("user_id").(string)
	vars := mux.Vars(r)
	groupID := vars["groupId"]

	if err := h.groups.RemoveGroupMember(groupID, userID); err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "left"})
}

// SendGroupMessage composes a message into the group's shared mailbox.
// Non-members get 403 and nothing is stored.
func (h *GroupHandler) SendGroupMessage(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("user_id").(string)
	vars := mux.Vars(r)
	groupID := vars["groupId"]

	var req struct {
		Content    string             `json:"content"`
		Kind       string             `json:"kind"`
		Attachment *models.Attachment `json:"attachment,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	msg, err := h.chat.SendGroup(userID, groupID, req.Content, req.Kind, req.Attachment)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(msg)
}

// GetGroupMessages returns the group's conversation. Membership is
// checked at read time.
func (h *GroupHandler) GetGroupMessages(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("user_id").(string)
	vars := mux.Vars(r)
	groupID := vars["groupId"]

	member, err := h.groups.IsMember(groupID, userID)
	if err != nil {
		writeError(w, err)
		return
	}
	if !member {
		writeError(w, models.ErrNotMember)
		return
	}

	messages, err := h.chat.History(groupID)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"group_id": groupID,
		"messages": messages,
		"count":    len(messages),
	})
}

// UpdateGroupStatus merges a partial status into a group message. A seen
// update applies to the caller's own entry in the seen-map; callers who
// were not members when the message was sent get 404.
func (h *GroupHandler) UpdateGroupStatus(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("user_id").(string)
	vars := mux.Vars(r)
	groupID := vars["groupId"]
	messageID := vars["messageId"]

	var update models.StatusUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	update.Member = userID

	msg, err := h.chat.UpdateStatus(groupID, messageID, update)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(msg)
}
