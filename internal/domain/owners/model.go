package owners

import (
	"strings"
	"time"
)

// PetOwner es el perfil de dueño de un usuario. Un usuario tiene a lo sumo uno.
type PetOwner struct {
	ID     string
	UserID string

	FirstName string
	LastName  string
	Email     string
	Phone     string
	Address   string
	City      string
	State     string
	ZipCode   string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (o PetOwner) FullName() string {
	return strings.TrimSpace(o.FirstName + " " + o.LastName)
}
