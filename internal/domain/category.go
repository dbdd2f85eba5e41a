package domain

import "time"

// Category classifies a ticket and owns its valid issue types, request types
// and eligible assignees. A ticket's category is fixed at creation.
type Category struct {
	ID               string
	Name             string
	RequiresApproval bool
	IsActive         bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// IssueType is a category-scoped problem classification.
type IssueType struct {
	ID         string
	CategoryID string
	Name       string
	IsActive   bool
}

// RequestType is a category-scoped request classification.
type RequestType struct {
	ID         string
	CategoryID string
	Name       string
	IsActive   bool
}

// Department is externally managed reference data.
type Department struct {
	ID   string
	Name string
}

// Company is externally managed reference data.
type Company struct {
	ID   string
	Name string
}
