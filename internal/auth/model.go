package auth

// User is the domain entity. Role is DINER by default; ADMIN unlocks the
// maintenance endpoints.
type User struct {
	ID       string
	Name     string
	Email    string
	Password string
	Role     string
}

const (
	RoleDiner = "DINER"
	RoleAdmin = "ADMIN"
)
