// Copyright (C) 2025 srj101
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/srj101/chat-api/backend/models"
)

type UploadHandler struct {
	dir      string
	maxBytes int64
}

func NewUploadHandler(dir string, maxBytes int64) (*UploadHandler, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &UploadHandler{dir: dir, maxBytes: maxBytes}, nil
}

// Upload stores a multipart file and returns the attachment descriptor
// that message sends carry. The descriptor's reference is opaque to the
// rest of the system.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "Invalid upload", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if header.Size > h.maxBytes {
		http.Error(w, "File too large", http.StatusRequestEntityTooLarge)
		return
	}

	reference := uuid.New().String() + filepath.Ext(header.Filename)
	dst, err := os.Create(filepath.Join(h.dir, reference))
	if err != nil {
		http.Error(w, "Failed to store file", http.StatusInternalServerError)
		return
	}
	defer dst.Close()

	size, err := io.Copy(dst, file)
	if err != nil {
		http.Error(w, "Failed to store file", http.StatusInternalServerError)
		return
	}

	slog.Info("stored attachment", "reference", reference, "size", size)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(models.Attachment{
		Reference: reference,
		SizeBytes: size,
	})
}

// Download streams a previously uploaded attachment.
func (h *UploadHandler) Download(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	reference := filepath.Base(vars["reference"])

	path := filepath.Join(h.dir, reference)
	if _, err := os.Stat(path); err != nil {
		http.Error(w, "Attachment not found", http.StatusNotFound)
		return
	}
	http.ServeFile(w, r, path)
}
