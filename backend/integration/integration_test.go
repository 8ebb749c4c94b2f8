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

package integration

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"github.com/srj101/chat-api/backend/config"
	"github.com/srj101/chat-api/backend/models"
)

// setupAPI mounts a fresh backend on a router, the way cmd/server does.
func setupAPI(t *testing.T) *mux.Router {
	t.Helper()

	api, err := New(config.Config{
		JWTSecret:      "test-secret",
		JWTIssuer:      "chat-api",
		TokenTTL:       time.Hour,
		UploadDir:      t.TempDir(),
		MaxUploadBytes: 1 << 20,
	})
	require.NoError(t, err)
	require.NoError(t, api.ValidateSetup())

	r := mux.NewRouter()
	api.RegisterRoutes(r, nil)
	return r
}

func doJSON(t *testing.T, r *mux.Router, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

// registerAndLogin registers a user and returns the account id and a
// bearer token.
func registerAndLogin(t *testing.T, r *mux.Router, username string) (string, string) {
	t.Helper()

	creds := map[string]string{"username": username, "password": "secret-" + username}
	w := doJSON(t, r, "POST", "/api/auth/register", "", creds)
	require.Equal(t, http.StatusCreated, w.Code)

	var account models.Account
	decode(t, w, &account)

	w = doJSON(t, r, "POST", "/api/auth/login", "", creds)
	require.Equal(t, http.StatusOK, w.Code)

	var login struct {
		Token   string         `json:"token"`
		Account models.Account `json:"account"`
	}
	decode(t, w, &login)
	require.Equal(t, account.ID, login.Account.ID)

	return account.ID, login.Token
}

func TestValidateSetupRequiresSecret(t *testing.T) {
	api, err := New(config.Config{
		JWTIssuer:      "chat-api",
		TokenTTL:       time.Hour,
		UploadDir:      t.TempDir(),
		MaxUploadBytes: 1 << 20,
	})
	require.NoError(t, err)
	require.Error(t, api.ValidateSetup())
}

func TestRegisterDuplicateUsername(t *testing.T) {
	r := setupAPI(t)

	creds := map[string]string{"username": "alice", "password": "pw"}
	w := doJSON(t, r, "POST", "/api/auth/register", "", creds)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, "POST", "/api/auth/register", "", creds)
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	r := setupAPI(t)

	registerAndLogin(t, r, "alice")

	w := doJSON(t, r, "POST", "/api/auth/login", "", map[string]string{
		"username": "alice",
		"password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUnauthenticatedRequestRejected(t *testing.T) {
	r := setupAPI(t)

	w := doJSON(t, r, "GET", "/api/dm/messages", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

// The direct-message lifecycle end to end: register alice and bob, alice
// sends "hi", bob sees {sent, !delivered, !seen}, marks delivered, and
// the re-fetch shows the merge.
func TestDirectMessageLifecycle(t *testing.T) {
	r := setupAPI(t)

	_, aliceToken := registerAndLogin(t, r, "alice")
	bobID, bobToken := registerAndLogin(t, r, "bob")

	w := doJSON(t, r, "POST", "/api/dm/send", aliceToken, map[string]string{
		"recipient_id": bobID,
		"content":      "hi",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var sent models.Message
	decode(t, w, &sent)
	require.Equal(t, bobID, sent.RecipientID)

	w = doJSON(t, r, "GET", "/api/dm/messages", bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var inbox struct {
		Messages []models.Message `json:"messages"`
		Count    int              `json:"count"`
	}
	decode(t, w, &inbox)
	require.Equal(t, 1, inbox.Count)
	require.Equal(t, "hi", inbox.Messages[0].Content)
	require.True(t, inbox.Messages[0].Status.Sent)
	require.False(t, inbox.Messages[0].Status.Delivered)
	require.False(t, inbox.Messages[0].Status.Seen)

	w = doJSON(t, r, "POST", "/api/dm/message/"+sent.ID+"/status", bobToken, map[string]bool{
		"delivered": true,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, "GET", "/api/dm/message/"+sent.ID, bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var fetched models.Message
	decode(t, w, &fetched)
	require.True(t, fetched.Status.Sent)
	require.True(t, fetched.Status.Delivered)
	require.False(t, fetched.Status.Seen)
}

func TestUpdateStatusUnknownMessage(t *testing.T) {
	r := setupAPI(t)

	_, token := registerAndLogin(t, r, "alice")

	w := doJSON(t, r, "POST", "/api/dm/message/no-such-id/status", token, map[string]bool{
		"delivered": true,
	})
	require.Equal(t, http.StatusNotFound, w.Code)
}

// Group lifecycle: alice creates a group listing only bob and carol, yet
// is a member herself; bob's message carries a seen-map over all three.
func TestGroupMessageLifecycle(t *testing.T) {
	r := setupAPI(t)

	aliceID, aliceToken := registerAndLogin(t, r, "alice")
	bobID, bobToken := registerAndLogin(t, r, "bob")
	carolID, _ := registerAndLogin(t, r, "carol")

	w := doJSON(t, r, "POST", "/api/group/create", aliceToken, map[string]interface{}{
		"name":       "team",
		"member_ids": []string{bobID, carolID},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var group models.Group
	decode(t, w, &group)
	require.Equal(t, aliceID, group.CreatorID)
	require.ElementsMatch(t, []string{aliceID, bobID, carolID}, group.Members)

	w = doJSON(t, r, "POST", "/api/group/"+group.ID+"/message", bobToken, map[string]string{
		"content": "hello team",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var msg models.Message
	decode(t, w, &msg)
	require.Equal(t, group.ID, msg.GroupID)
	require.Len(t, msg.Status.SeenBy, 3)
	for _, id := range []string{aliceID, bobID, carolID} {
		seen, ok := msg.Status.SeenBy[id]
		require.True(t, ok)
		require.False(t, seen)
	}

	// Alice marks the message seen; only her entry flips.
	w = doJSON(t, r, "POST", "/api/group/"+group.ID+"/message/"+msg.ID+"/status", aliceToken, map[string]bool{
		"seen": true,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.Message
	decode(t, w, &updated)
	require.True(t, updated.Status.SeenBy[aliceID])
	require.False(t, updated.Status.SeenBy[bobID])
}

func TestGroupMessageFromNonMember(t *testing.T) {
	r := setupAPI(t)

	_, aliceToken := registerAndLogin(t, r, "alice")
	_, malloryToken := registerAndLogin(t, r, "mallory")

	w := doJSON(t, r, "POST", "/api/group/create", aliceToken, map[string]interface{}{
		"name":       "private",
		"member_ids": []string{},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var group models.Group
	decode(t, w, &group)

	w = doJSON(t, r, "POST", "/api/group/"+group.ID+"/message", malloryToken, map[string]string{
		"content": "let me in",
	})
	require.Equal(t, http.StatusForbidden, w.Code)

	// Reading the conversation is gated the same way.
	w = doJSON(t, r, "GET", "/api/group/"+group.ID+"/messages", malloryToken, nil)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestActiveUsersListing(t *testing.T) {
	r := setupAPI(t)

	aliceID, aliceToken := registerAndLogin(t, r, "alice")
	bobID, _ := registerAndLogin(t, r, "bob")

	w := doJSON(t, r, "GET", "/api/users/active", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Accounts []string `json:"accounts"`
		Count    int      `json:"count"`
	}
	decode(t, w, &resp)
	// Both logged in moments ago, so both are inside the window.
	require.ElementsMatch(t, []string{aliceID, bobID}, resp.Accounts)
	require.Equal(t, 2, resp.Count)
}

func TestResolveUser(t *testing.T) {
	r := setupAPI(t)

	bobID, _ := registerAndLogin(t, r, "bob")
	_, aliceToken := registerAndLogin(t, r, "alice")

	w := doJSON(t, r, "GET", "/api/users/bob", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var account models.Account
	decode(t, w, &account)
	require.Equal(t, bobID, account.ID)

	w = doJSON(t, r, "GET", "/api/users/nobody", aliceToken, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

// Upload an attachment, then send it with an image message.
func TestUploadAndAttach(t *testing.T) {
	r := setupAPI(t)

	_, aliceToken := registerAndLogin(t, r, "alice")
	bobID, bobToken := registerAndLogin(t, r, "bob")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "cat.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("not-really-a-png"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/api/upload", &buf)
	req.Header.Set("Authorization", "Bearer "+aliceToken)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var att models.Attachment
	decode(t, w, &att)
	require.NotEmpty(t, att.Reference)
	require.EqualValues(t, len("not-really-a-png"), att.SizeBytes)

	resp := doJSON(t, r, "POST", "/api/dm/send", aliceToken, map[string]interface{}{
		"recipient_id": bobID,
		"content":      "look at this",
		"kind":         models.KindImage,
		"attachment":   att,
	})
	require.Equal(t, http.StatusCreated, resp.Code)

	var msg models.Message
	decode(t, resp, &msg)
	require.Equal(t, models.KindImage, msg.Kind)
	require.Equal(t, att.Reference, msg.Attachment.Reference)

	// The recipient can download it back.
	dl := doJSON(t, r, "GET", "/api/upload/"+att.Reference, bobToken, nil)
	require.Equal(t, http.StatusOK, dl.Code)
	require.Equal(t, "not-really-a-png", dl.Body.String())
}
