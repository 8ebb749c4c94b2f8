// Copyright (C) 2025 srj101
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port           int
	JWTSecret      string
	JWTIssuer      string
	TokenTTL       time.Duration
	UploadDir      string
	MaxUploadBytes int64
}

func Load() Config {
	return Config{
		Port:           getEnvInt("PORT", 8080),
		JWTSecret:      getEnvString("JWT_SECRET", ""),
		JWTIssuer:      getEnvString("JWT_ISSUER", "chat-api"),
		TokenTTL:       time.Duration(getEnvInt("TOKEN_TTL_MINUTES", 60)) * time.Minute,
		UploadDir:      getEnvString("UPLOAD_DIR", "uploads"),
		MaxUploadBytes: getEnvInt64("MAX_UPLOAD_BYTES", 10<<20),
	}
}

func getEnvString(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		trimmed := strings.TrimSpace(value)
		if trimmed != "" {
			return trimmed
		}
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := strconv.Atoi(strings.TrimSpace(value))
		if err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		if err == nil {
			return parsed
		}
	}
	return fallback
}
