package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeRoleTokens(t *testing.T) {
	cases := map[string]Role{
		"ticket_creator":  RoleTicketCreator,
		"Ticket Creator":  RoleTicketCreator,
		"1":               RoleTicketCreator,
		"it_team":         RoleITTeam,
		"IT Team":         RoleITTeam,
		"2":               RoleITTeam,
		"department_head": RoleDepartmentHead,
		"IT Head":         RoleDepartmentHead,
		"Department Head": RoleDepartmentHead,
		"3":               RoleDepartmentHead,
	}
	for token, want := range cases {
		assert.Equal(t, want, NormalizeRole(token), "token %q", token)
	}
}

func TestNormalizeRoleIsIdempotent(t *testing.T) {
	for _, token := range []string{"1", "IT Team", "department head", "ticket_creator", "contractor"} {
		once := NormalizeRole(token)
		assert.Equal(t, once, NormalizeRole(string(once)), "token %q", token)
	}
}

func TestNumericAndNamedTokensBehaveIdentically(t *testing.T) {
	assert.Equal(t, NormalizeRole("ticket_creator"), NormalizeRole("1"))
	assert.Equal(t, NormalizeRole("it_team"), NormalizeRole("2"))
	assert.Equal(t, NormalizeRole("department_head"), NormalizeRole("3"))
}

func TestNormalizeRoleUnknownToken(t *testing.T) {
	role := NormalizeRole("  Contractor ")
	assert.Equal(t, Role("contractor"), role)
	assert.False(t, role.IsCanonical())
}

func TestRoleLabels(t *testing.T) {
	assert.Equal(t, "Ticket Creator", RoleTicketCreator.Label())
	assert.Equal(t, "IT Team", RoleITTeam.Label())
	assert.Equal(t, "IT Head", RoleDepartmentHead.Label())
	assert.Equal(t, "User", Role("contractor").Label())
}
