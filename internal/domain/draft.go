package domain

import (
	"fmt"
	"sort"
	"strings"
)

// Field length limits enforced before anything reaches the network layer.
const (
	MaxDescriptionLength = 2000
	MaxCommentLength     = 1000
)

// FieldErrors maps field names to validation messages.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, e[field]))
	}
	return strings.Join(parts, "; ")
}

// TicketDraft accumulates ticket creation input and enforces the cascade
// rules at the point of mutation: issue type and request type are mutually
// exclusive, and a category change invalidates every category-scoped
// selection made under the previous category.
type TicketDraft struct {
	FullName      string
	ContactNumber string
	DepartmentID  string
	CompanyID     string
	CategoryID    string
	AssigneeID    string
	IssueTypeID   string
	RequestTypeID string
	SeverityLevel string
	Description   string
}

// SetCategory selects a category, resetting assignee, issue type and request
// type whenever the category actually changes.
func (d *TicketDraft) SetCategory(categoryID string) {
	if d.CategoryID == categoryID {
		return
	}
	d.CategoryID = categoryID
	d.AssigneeID = ""
	d.IssueTypeID = ""
	d.RequestTypeID = ""
}

// SetIssueType selects an issue type; a non-empty selection clears any
// request type so the two are never set simultaneously.
func (d *TicketDraft) SetIssueType(issueTypeID string) {
	d.IssueTypeID = issueTypeID
	if issueTypeID != "" {
		d.RequestTypeID = ""
	}
}

// SetRequestType selects a request type; a non-empty selection clears any
// issue type.
func (d *TicketDraft) SetRequestType(requestTypeID string) {
	d.RequestTypeID = requestTypeID
	if requestTypeID != "" {
		d.IssueTypeID = ""
	}
}

// Validate checks the draft before submission. The classification errors are
// deliberately distinct: "neither set" and "both set" surface different
// messages rather than a generic invalid-form failure.
func (d *TicketDraft) Validate() FieldErrors {
	errs := FieldErrors{}
	if strings.TrimSpace(d.FullName) == "" {
		errs["fullName"] = "full name is required"
	}
	if strings.TrimSpace(d.ContactNumber) == "" {
		errs["contactNumber"] = "contact number is required"
	}
	if d.DepartmentID == "" {
		errs["department"] = "department is required"
	}
	if d.CompanyID == "" {
		errs["company"] = "company is required"
	}
	if d.CategoryID == "" {
		errs["category"] = "category is required"
	}
	switch {
	case d.IssueTypeID == "" && d.RequestTypeID == "":
		errs["classification"] = "select an issue type or a request type"
	case d.IssueTypeID != "" && d.RequestTypeID != "":
		errs["classification"] = "issue type and request type cannot both be set"
	}
	if _, ok := ParseSeverity(d.SeverityLevel); !ok {
		errs["severityLevel"] = "severity level must be one of LOW, MEDIUM, HIGH, CRITICAL"
	}
	if strings.TrimSpace(d.Description) == "" {
		errs["description"] = "description is required"
	} else if len(d.Description) > MaxDescriptionLength {
		errs["description"] = fmt.Sprintf("description exceeds %d characters", MaxDescriptionLength)
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}
