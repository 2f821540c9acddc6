package users

import (
	"strings"

	"github.com/ccis-arch/avacc/internal/ports/auth"
)

// BootstrapPolicy promueve a admin la identidad configurada como dueña del sistema.
type BootstrapPolicy struct {
	OwnerIdentity string
}

// RoleFor devuelve el rol forzado para identity, o "" si no aplica.
func (p BootstrapPolicy) RoleFor(identity string) auth.Role {
	owner := strings.TrimSpace(p.OwnerIdentity)
	if owner != "" && owner == identity {
		return auth.RoleAdmin
	}
	return ""
}
