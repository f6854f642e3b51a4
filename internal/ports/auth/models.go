package auth

import "strings"

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleWorker Role = "worker"
)

// ParseRole: vacío o desconocido => worker (el rol por defecto de una cuenta nueva).
func ParseRole(s string) Role {
	if Role(strings.ToLower(strings.TrimSpace(s))) == RoleAdmin {
		return RoleAdmin
	}
	return RoleWorker
}

// Claims representa la información extraída del token.
type Claims struct {
	UserID string
	Email  string
	Name   string
	Role   Role
}

func (c Claims) Anonymous() bool { return strings.TrimSpace(c.UserID) == "" }

func (c Claims) EffectiveRole() Role {
	if c.Role == "" {
		return RoleWorker
	}
	return c.Role
}
