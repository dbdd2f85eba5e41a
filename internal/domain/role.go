package domain

import "strings"

// Role is the canonical helpdesk role.
type Role string

const (
	RoleTicketCreator  Role = "ticket_creator"
	RoleITTeam         Role = "it_team"
	RoleDepartmentHead Role = "department_head"
)

// roleByNumericID maps legacy numeric role identifiers.
var roleByNumericID = map[string]Role{
	"1": RoleTicketCreator,
	"2": RoleITTeam,
	"3": RoleDepartmentHead,
}

// NormalizeRole maps heterogeneous role tokens (numeric ids, raw strings,
// legacy labels) to a canonical Role. Unrecognized tokens are returned
// lowercased and trimmed; callers must treat those as "no special privileges".
// Normalization is idempotent and never fails.
func NormalizeRole(token string) Role {
	s := strings.ToLower(strings.TrimSpace(token))
	if s == "" {
		return ""
	}
	if role, ok := roleByNumericID[s]; ok {
		return role
	}
	switch {
	case s == string(RoleTicketCreator), strings.Contains(s, "ticket") && strings.Contains(s, "creator"):
		return RoleTicketCreator
	case s == string(RoleITTeam), strings.Contains(s, "it") && strings.Contains(s, "team"):
		return RoleITTeam
	case s == string(RoleDepartmentHead), strings.Contains(s, "head"), strings.Contains(s, "department"):
		return RoleDepartmentHead
	}
	return Role(s)
}

// IsCanonical reports whether the role is one of the three known roles.
func (r Role) IsCanonical() bool {
	switch r {
	case RoleTicketCreator, RoleITTeam, RoleDepartmentHead:
		return true
	}
	return false
}

// Label returns the display name for a role.
func (r Role) Label() string {
	switch r {
	case RoleTicketCreator:
		return "Ticket Creator"
	case RoleITTeam:
		return "IT Team"
	case RoleDepartmentHead:
		return "IT Head"
	default:
		return "User"
	}
}
