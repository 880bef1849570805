package domain

import "time"

const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// User models the authenticated operator as reported by the backend.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// IsAdmin reports whether the user carries the admin role flag.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
