package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/dto"
	"github.com/spec-kit/helpdesk-service/internal/service"
)

// LookupsHandler serves reference data and the category cascade.
type LookupsHandler struct {
	lookups *service.LookupService
}

// NewLookupsHandler constructs handler.
func NewLookupsHandler(lookupService *service.LookupService) *LookupsHandler {
	return &LookupsHandler{lookups: lookupService}
}

// Categories handles GET /lookups/categories.
func (h *LookupsHandler) Categories(c *fiber.Ctx) error {
	categories, err := h.lookups.Categories(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewCategoryResponses(categories)})
}

// Departments handles GET /lookups/departments.
func (h *LookupsHandler) Departments(c *fiber.Ctx) error {
	departments, err := h.lookups.Departments(c.Context())
	if err != nil {
		return err
	}
	out := make([]dto.NamedResponse, 0, len(departments))
	for _, d := range departments {
		out = append(out, dto.NamedResponse{ID: d.ID, Name: d.Name})
	}
	return c.JSON(fiber.Map{"data": out})
}

// Companies handles GET /lookups/companies.
func (h *LookupsHandler) Companies(c *fiber.Ctx) error {
	companies, err := h.lookups.Companies(c.Context())
	if err != nil {
		return err
	}
	out := make([]dto.NamedResponse, 0, len(companies))
	for _, comp := range companies {
		out = append(out, dto.NamedResponse{ID: comp.ID, Name: comp.Name})
	}
	return c.JSON(fiber.Map{"data": out})
}

// IssueTypes handles GET /lookups/issue-types/:categoryId. A missing
// category id yields an empty list, matching the unselected-category state
// of the creation form.
func (h *LookupsHandler) IssueTypes(c *fiber.Ctx) error {
	types, err := h.lookups.ResolveIssueTypes(c.Context(), c.Params("categoryId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewIssueTypeResponses(types)})
}

// RequestTypes handles GET /lookups/request-types/:categoryId.
func (h *LookupsHandler) RequestTypes(c *fiber.Ctx) error {
	types, err := h.lookups.ResolveRequestTypes(c.Context(), c.Params("categoryId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewRequestTypeResponses(types)})
}

// AssigneesByCategory handles GET /user/category/:categoryId/users.
func (h *LookupsHandler) AssigneesByCategory(c *fiber.Ctx) error {
	users, err := h.lookups.ResolveAssignees(c.Context(), c.Params("categoryId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAssigneeResponses(users)})
}
