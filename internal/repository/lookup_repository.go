package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// LookupRepository provides read access to reference data. Categories,
// departments and companies are externally managed; this client never
// mutates them.
type LookupRepository interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	GetCategory(ctx context.Context, id string) (*domain.Category, error)
	ListDepartments(ctx context.Context) ([]domain.Department, error)
	ListCompanies(ctx context.Context) ([]domain.Company, error)
	ListIssueTypes(ctx context.Context, categoryID string) ([]domain.IssueType, error)
	ListRequestTypes(ctx context.Context, categoryID string) ([]domain.RequestType, error)
}

type lookupRepository struct {
	pool *pgxpool.Pool
}

// NewLookupRepository instantiates repository.
func NewLookupRepository(pool *pgxpool.Pool) LookupRepository {
	return &lookupRepository{pool: pool}
}

func (r *lookupRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	const query = `
        SELECT id, name, requires_approval, is_active, created_at, updated_at
        FROM categories WHERE is_active ORDER BY name`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Category
	for rows.Next() {
		var cat domain.Category
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.RequiresApproval, &cat.IsActive, &cat.CreatedAt, &cat.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, cat)
	}
	return result, rows.Err()
}

func (r *lookupRepository) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	const query = `
        SELECT id, name, requires_approval, is_active, created_at, updated_at
        FROM categories WHERE id=$1`
	var cat domain.Category
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&cat.ID,
		&cat.Name,
		&cat.RequiresApproval,
		&cat.IsActive,
		&cat.CreatedAt,
		&cat.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &cat, nil
}

func (r *lookupRepository) ListDepartments(ctx context.Context) ([]domain.Department, error) {
	const query = `SELECT id, name FROM departments ORDER BY name`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Department
	for rows.Next() {
		var dept domain.Department
		if err := rows.Scan(&dept.ID, &dept.Name); err != nil {
			return nil, err
		}
		result = append(result, dept)
	}
	return result, rows.Err()
}

func (r *lookupRepository) ListCompanies(ctx context.Context) ([]domain.Company, error) {
	const query = `SELECT id, name FROM companies ORDER BY name`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Company
	for rows.Next() {
		var company domain.Company
		if err := rows.Scan(&company.ID, &company.Name); err != nil {
			return nil, err
		}
		result = append(result, company)
	}
	return result, rows.Err()
}

func (r *lookupRepository) ListIssueTypes(ctx context.Context, categoryID string) ([]domain.IssueType, error) {
	const query = `
        SELECT id, category_id, name, is_active
        FROM issue_types WHERE category_id=$1 AND is_active ORDER BY name`
	rows, err := r.pool.Query(ctx, query, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.IssueType
	for rows.Next() {
		var it domain.IssueType
		if err := rows.Scan(&it.ID, &it.CategoryID, &it.Name, &it.IsActive); err != nil {
			return nil, err
		}
		result = append(result, it)
	}
	return result, rows.Err()
}

func (r *lookupRepository) ListRequestTypes(ctx context.Context, categoryID string) ([]domain.RequestType, error) {
	const query = `
        SELECT id, category_id, name, is_active
        FROM request_types WHERE category_id=$1 AND is_active ORDER BY name`
	rows, err := r.pool.Query(ctx, query, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.RequestType
	for rows.Next() {
		var rt domain.RequestType
		if err := rows.Scan(&rt.ID, &rt.CategoryID, &rt.Name, &rt.IsActive); err != nil {
			return nil, err
		}
		result = append(result, rt)
	}
	return result, rows.Err()
}
