package models

// Role constants as issued by the backend
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// User is the authenticated identity held by the session store
type User struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	Token    string `json:"token"`
}

// IsAdmin reports whether the user holds the elevated role
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// Credentials is the login payload
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Registration is the register payload
type Registration struct {
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password"`
}

// AuthResponse is returned by both login and register
type AuthResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Role     string `json:"role"`
}
