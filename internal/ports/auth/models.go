package auth

// Claims representa la identidad que devuelve el proveedor de autenticación.
type Claims struct {
	Subject string
	Name    string
	Email   string
}

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// Actor es el principal autenticado del request. Inmutable mientras dura el request.
type Actor struct {
	ID    string
	Name  string
	Email string
	Role  Role
}

func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }
