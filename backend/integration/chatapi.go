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
	"net/http"

	"github.com/gorilla/mux"

	"github.com/srj101/chat-api/backend/chat"
	"github.com/srj101/chat-api/backend/config"
	"github.com/srj101/chat-api/backend/handlers"
	"github.com/srj101/chat-api/backend/middleware"
	"github.com/srj101/chat-api/backend/storage/memory"
)

// ChatAPI bundles the stores, services and handlers so the whole API can
// be mounted onto an existing router — by cmd/server, by the tests, or
// by a host application embedding the chat backend.
type ChatAPI struct {
	store         *memory.Store
	chatService   *chat.Service
	authHandler   *handlers.AuthHandler
	userHandler   *handlers.UserHandler
	dmHandler     *handlers.DMHandler
	groupHandler  *handlers.GroupHandler
	uploadHandler *handlers.UploadHandler
	jwt           *middleware.JWTConfig
}

// New wires a fresh in-memory chat backend from the given configuration.
func New(cfg config.Config) (*ChatAPI, error) {
	jwt := &middleware.JWTConfig{
		Secret: cfg.JWTSecret,
		Issuer: cfg.JWTIssuer,
		TTL:    cfg.TokenTTL,
	}

	store := memory.NewStore()
	chatService := chat.NewService(store, store)

	uploadHandler, err := handlers.NewUploadHandler(cfg.UploadDir, cfg.MaxUploadBytes)
	if err != nil {
		return nil, err
	}

	return &ChatAPI{
		store:         store,
		chatService:   chatService,
		authHandler:   handlers.NewAuthHandler(store, store, jwt),
		userHandler:   handlers.NewUserHandler(store, store),
		dmHandler:     handlers.NewDMHandler(chatService),
		groupHandler:  handlers.NewGroupHandler(store, chatService),
		uploadHandler: uploadHandler,
		jwt:           jwt,
	}, nil
}

// RegisterRoutes adds all chat-api routes to an existing router.
// If authMiddleware is nil, the built-in JWT validation is used.
func (a *ChatAPI) RegisterRoutes(router *mux.Router, authMiddleware func(http.Handler) http.Handler) {
	// Registration and login stay outside the authenticated subrouter.
	router.HandleFunc("/api/auth/register", a.authHandler.Register).Methods("POST", "OPTIONS")
	router.HandleFunc("/api/auth/login", a.authHandler.Login).Methods("POST", "OPTIONS")

	api := router.PathPrefix("/api").Subrouter()

	if authMiddleware != nil {
		api.Use(authMiddleware)
	} else {
		api.Use(middleware.NewAuthMiddleware(a.jwt, a.store))
	}

	// User endpoints
	api.HandleFunc("/users/active", a.userHandler.GetActiveUsers).Methods("GET", "OPTIONS")
	api.HandleFunc("/users/{username}", a.userHandler.ResolveUser).Methods("GET", "OPTIONS")

	// DM endpoints
	api.HandleFunc("/dm/send", a.dmHandler.SendDM).Methods("POST", "OPTIONS")
	api.HandleFunc("/dm/messages", a.dmHandler.GetDMs).Methods("GET", "OPTIONS")
	api.HandleFunc("/dm/message/{messageId}", a.dmHandler.GetDM).Methods("GET", "OPTIONS")
	api.HandleFunc("/dm/message/{messageId}/status", a.dmHandler.UpdateDMStatus).Methods("POST", "OPTIONS")

	// Group endpoints
	api.HandleFunc("/group/create", a.groupHandler.CreateGroup).Methods("POST", "OPTIONS")
	api.HandleFunc("/group/{groupId}/join", a.groupHandler.JoinGroup).Methods("POST", "OPTIONS")
	api.HandleFunc("/group/{groupId}/leave", a.groupHandler.LeaveGroup).Methods("POST", "OPTIONS")
	api.HandleFunc("/group/{groupId}/members", a.groupHandler.GetGroupMembers).Methods("GET", "OPTIONS")
	api.HandleFunc("/group/{groupId}/messages", a.groupHandler.GetGroupMessages).Methods("GET", "OPTIONS")
	api.HandleFunc("/group/{groupId}/message", a.groupHandler.SendGroupMessage).Methods("POST", "OPTIONS")
	api.HandleFunc("/group/{groupId}/message/{messageId}/status", a.groupHandler.UpdateGroupStatus).Methods("POST", "OPTIONS")

	// Attachment endpoints
	api.HandleFunc("/upload", a.uploadHandler.Upload).Methods("POST", "OPTIONS")
	api.HandleFunc("/upload/{reference}", a.uploadHandler.Download).Methods("GET", "OPTIONS")
}

// Store returns the underlying in-memory store, for host applications
// that need direct access.
func (a *ChatAPI) Store() *memory.Store {
	return a.store
}

// Chat returns the message service.
func (a *ChatAPI) Chat() *chat.Service {
	return a.chatService
}

// ValidateSetup checks that the API is properly configured.
func (a *ChatAPI) ValidateSetup() error {
	if a.jwt.Secret == "" {
		return &ValidationError{Message: "JWT secret is not configured"}
	}
	if a.jwt.TTL <= 0 {
		return &ValidationError{Message: "token TTL must be positive"}
	}
	return nil
}

// ValidationError represents a configuration validation error
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
