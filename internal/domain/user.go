package domain

// Role restricts what parts of the dashboard an identity may reach.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// Valid reports whether the role belongs to the closed enumeration.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// User is a dashboard identity resolved from the fixed roster at login time.
type User struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   Role   `json:"role"`
	Avatar string `json:"avatar,omitempty"`
}

// Credentials carries a login attempt. The mock roster validates the email
// only; any password is accepted.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned to a caller after a successful login.
type AuthResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}
