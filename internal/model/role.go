package model

import "strings"

// Role is the closed set of account roles recognized by the back office.
// Every comparison in the codebase goes through ParseRole so that case
// folding happens in exactly one place.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleCS      Role = "customer service"
	RoleSales   Role = "sales representative"
	RoleClient  Role = "client"
	RoleUnknown Role = ""
)

// ParseRole normalizes a raw role string into one of the Role constants.
// Unknown values map to RoleUnknown.
func ParseRole(raw string) Role {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "admin":
		return RoleAdmin
	case "customer service", "cs":
		return RoleCS
	case "sales representative", "sales":
		return RoleSales
	case "client":
		return RoleClient
	}
	return RoleUnknown
}

// String returns the canonical lowercase name stored in user metadata.
func (r Role) String() string { return string(r) }

// Valid reports whether r is one of the four known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleCS, RoleSales, RoleClient:
		return true
	}
	return false
}

// RoleRow mirrors the `roles` lookup table. User metadata references it by
// RoleID; no referential constraint is enforced in this code.
type RoleRow struct {
	RoleID   int64  `json:"role_id"`
	RoleName string `json:"rolename"`
}
