package users

import (
	"time"

	"github.com/ccis-arch/avacc/internal/ports/auth"
)

// User es la identidad persistida en cada inicio de sesión.
type User struct {
	ID       string
	Identity string // subject del proveedor, único
	Name     string
	Email    string
	Role     auth.Role

	CreatedAt    time.Time
	UpdatedAt    time.Time
	LastSignedIn time.Time
}

func (u User) Actor() auth.Actor {
	return auth.Actor{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
}
