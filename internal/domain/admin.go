package domain

import "time"

const (
	RoleAdmin   = "admin"
	RoleAuditor = "auditor"
)

// Admin is a back-office staff account.
type Admin struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"full_name"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// Session is the server-side record behind an opaque bearer token.
type Session struct {
	Token     string    `json:"token"`
	AdminID   int64     `json:"admin_id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}
