package dto

import (
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// RegisterRequest payload for new accounts. Role accepts any of the tokens
// the clients historically sent (numeric ids, spaced or capitalized names).
type RegisterRequest struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Password      string `json:"password"`
	Role          string `json:"role"`
	CategoryID    string `json:"category,omitempty"`
	DepartmentID  string `json:"department,omitempty"`
	CompanyID     string `json:"company,omitempty"`
	ContactNumber string `json:"contactNumber,omitempty"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// UserResponse is the public account shape. Role is always canonical;
// RoleLabel is the display form.
type UserResponse struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Email         string      `json:"email"`
	Role          domain.Role `json:"role"`
	RoleLabel     string      `json:"roleLabel"`
	CategoryID    *string     `json:"category,omitempty"`
	DepartmentID  *string     `json:"department,omitempty"`
	CompanyID     *string     `json:"company,omitempty"`
	ContactNumber string      `json:"contactNumber,omitempty"`
}

// PasswordResetRequest payload.
type PasswordResetRequest struct {
	Email string `json:"email"`
}

// PasswordResetConfirmRequest payload.
type PasswordResetConfirmRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

// ChangePasswordRequest payload.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// NewUserResponse maps a domain user to its public shape.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:            user.ID,
		Name:          user.Name,
		Email:         user.Email,
		Role:          user.Role,
		RoleLabel:     user.Role.Label(),
		CategoryID:    user.CategoryID,
		DepartmentID:  user.DepartmentID,
		CompanyID:     user.CompanyID,
		ContactNumber: user.ContactNumber,
	}
}
