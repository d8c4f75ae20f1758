// Package access holds the single route-prefix allow-list consumed both by
// the server-side gate middleware and by the client link-visibility
// endpoint. Keeping one table means the two consumers can never drift.
package access

import (
	"strings"

	"github.com/rangerisrael/futura-home-sub004/internal/model"
)

// RouteRule maps a path prefix to the roles allowed to visit it. An empty
// Roles slice means the prefix is explicitly staff-only-with-nobody, which
// denies everyone; prefixes absent from the table are open.
type RouteRule struct {
	Prefix string       `json:"prefix"`
	Roles  []model.Role `json:"roles"`
}

// Rules is the ordered access table. Matching is first-prefix-wins, so more
// specific prefixes must come before their parents.
var Rules = []RouteRule{
	{Prefix: "/v1/roles", Roles: []model.Role{model.RoleAdmin}},
	{Prefix: "/v1/appointments", Roles: []model.Role{model.RoleAdmin, model.RoleCS, model.RoleSales}},
	{Prefix: "/v1/reservations", Roles: []model.Role{model.RoleAdmin, model.RoleCS, model.RoleSales, model.RoleClient}},
	{Prefix: "/v1/transactions", Roles: []model.Role{model.RoleAdmin, model.RoleSales}},
	{Prefix: "/v1/contracts", Roles: []model.Role{model.RoleAdmin, model.RoleSales, model.RoleClient}},
	{Prefix: "/v1/inquiries", Roles: []model.Role{model.RoleAdmin, model.RoleCS}},
	{Prefix: "/v1/announcements", Roles: []model.Role{model.RoleAdmin, model.RoleCS, model.RoleSales, model.RoleClient}},
	{Prefix: "/v1/notifications", Roles: []model.Role{model.RoleAdmin, model.RoleCS, model.RoleSales, model.RoleClient}},
}

// HasRouteAccess reports whether a user with the given role may visit path.
// The first rule whose prefix matches the path decides; when no rule
// matches, access is allowed. The check is deterministic for any
// (path, role) pair.
func HasRouteAccess(path string, role model.Role) bool {
	for _, rule := range Rules {
		if strings.HasPrefix(path, rule.Prefix) {
			for _, r := range rule.Roles {
				if r == role {
					return true
				}
			}
			return false
		}
	}
	return true
}
