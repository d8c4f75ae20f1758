package model

import (
	"time"

	"github.com/google/uuid"
)

// User represents an account record as stored in the `users` table. Handlers
// define separate response types with their own JSON tags; this struct maps
// columns only.
//
// Fields:
//  ID           – primary key (uuid).
//  Email        – unique, stored lowercase.
//  PasswordHash – bcrypt hashed password.
//  Role         – canonical role name (see Role constants).
//  RoleID       – foreign key into the roles lookup table. May be zero.
//  IsActive     – whether the account is active.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Role         Role
	RoleID       int64
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RefreshToken models an entry in the `refresh_tokens` table. The plain
// token is never stored; only its SHA-256 hash.
type RefreshToken struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	TokenHash string
	ExpiresAt time.Time
	RevokedAt *time.Time
	CreatedAt time.Time
}
