package domain

import "time"

// UserStatus represents lifecycle states for an account.
type UserStatus string

const (
	UserStatusActive    UserStatus = "ACTIVE"
	UserStatusSuspended UserStatus = "SUSPENDED"
)

// User is the domain model for authenticated helpdesk users. CategoryID is
// set for it_team members and determines which tickets they are eligible to
// receive when acting as the assignee pool.
type User struct {
	ID            string
	Name          string
	Email         string
	PasswordHash  string
	Role          Role
	CategoryID    *string
	DepartmentID  *string
	CompanyID     *string
	ContactNumber string
	Status        UserStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
