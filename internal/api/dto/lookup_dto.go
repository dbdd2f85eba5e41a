package dto

import "github.com/spec-kit/helpdesk-service/internal/domain"

// CategoryResponse reference row.
type CategoryResponse struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	RequiresApproval bool   `json:"requiresApproval"`
}

// IssueTypeResponse reference row.
type IssueTypeResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	CategoryID string `json:"category"`
}

// RequestTypeResponse reference row.
type RequestTypeResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	CategoryID string `json:"category"`
}

// NamedResponse covers flat id/name reference rows.
type NamedResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// AssigneeResponse is the eligible-assignee option row.
type AssigneeResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// NewCategoryResponses maps categories.
func NewCategoryResponses(categories []domain.Category) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(categories))
	for _, cat := range categories {
		out = append(out, CategoryResponse{ID: cat.ID, Name: cat.Name, RequiresApproval: cat.RequiresApproval})
	}
	return out
}

// NewIssueTypeResponses maps issue types.
func NewIssueTypeResponses(types []domain.IssueType) []IssueTypeResponse {
	out := make([]IssueTypeResponse, 0, len(types))
	for _, t := range types {
		out = append(out, IssueTypeResponse{ID: t.ID, Name: t.Name, CategoryID: t.CategoryID})
	}
	return out
}

// NewRequestTypeResponses maps request types.
func NewRequestTypeResponses(types []domain.RequestType) []RequestTypeResponse {
	out := make([]RequestTypeResponse, 0, len(types))
	for _, t := range types {
		out = append(out, RequestTypeResponse{ID: t.ID, Name: t.Name, CategoryID: t.CategoryID})
	}
	return out
}

// NewAssigneeResponses maps eligible assignees.
func NewAssigneeResponses(users []domain.User) []AssigneeResponse {
	out := make([]AssigneeResponse, 0, len(users))
	for _, u := range users {
		out = append(out, AssigneeResponse{ID: u.ID, Name: u.Name, Email: u.Email})
	}
	return out
}
