package auth

import (
	"context"
	"slices"

	"cattle-records/internal/platform/apperr"
)

// Verifier verifica un token y devuelve claims o error.
type Verifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}

// Writers son los roles que pueden crear y editar registros.
var Writers = []Role{RoleWorker, RoleAdmin}

// RequireRole: anónimo => Unauthorized, rol fuera de roles => Forbidden.
func RequireRole(c Claims, roles ...Role) error {
	if c.Anonymous() {
		return apperr.Unauthorized("")
	}
	if len(roles) == 0 || slices.Contains(roles, c.EffectiveRole()) {
		return nil
	}
	return apperr.Forbidden("role " + string(c.EffectiveRole()) + " cannot perform this action")
}
