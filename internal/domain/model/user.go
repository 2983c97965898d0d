package model

import "time"

// Role controls access to kitchen and admin endpoints.
type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
	RoleAdmin   Role = "admin"
	RoleKitchen Role = "kitchen"
)

// User is a registered customer or staff member. WalletBalance is a
// denormalized running total over wallet_transactions.
type User struct {
	ID            int64
	Login         string
	PasswordHash  string
	Email         string
	EmailVerified bool
	Role          Role
	FullName      string
	Phone         string
	CollegeID     string
	WalletBalance float64
	CreatedAt     time.Time
}

// Staff reports whether the user may operate kitchen/admin endpoints.
func (u *User) Staff() bool {
	return u.Role == RoleAdmin || u.Role == RoleKitchen
}
