package middleware

import (
	"net/http"

	"github.com/wellbase/wellbase/models"
	"github.com/wellbase/wellbase/utils"
)

// rolePermissions maps each application role to its permission grants.
// Grants use the wildcard "resource:action" format understood by
// utils.MatchesPermission, so a role can hold "surveys:*" or "*:read"
// instead of an exhaustive list.
var rolePermissions = map[string][]string{
	models.RoleAdmin: {"*"},
	models.RoleGeologist: {
		"wells:*", "wellbores:*", "surveys:*", "trajectory:*",
		"tops:*", "media:read", "ingest:write", "exports:read",
	},
	models.RoleEngineer: {
		"*:read", "surveys:create", "surveys:activate",
		"trajectory:compute", "ingest:write",
	},
	models.RoleViewer: {"*:read"},
}

// GetUserPermissions returns the grants of the authenticated user's role,
// or nil when the request carries no valid claims.
func GetUserPermissions(r *http.Request) []string {
	claims := GetClaims(r)
	if claims == nil {
		return nil
	}
	return rolePermissions[claims.Role]
}

// HasPermission reports whether any of the user's grants covers the
// required permission.
func HasPermission(r *http.Request, required string) bool {
	for _, grant := range GetUserPermissions(r) {
		if utils.MatchesPermission(grant, required) {
			return true
		}
	}
	return false
}

// RequirePermission middleware checks if the authenticated user has the required permission
func RequirePermission(permission string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if GetClaims(r) == nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			if !HasPermission(r, permission) {
				http.Error(w, "insufficient permissions", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
