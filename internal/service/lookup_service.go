package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-service/internal/config"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/persistence"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// LookupService resolves reference data and the category cascade: a category
// scopes the eligible assignees, issue types and request types. Category
// lists are cached in Redis; cache failures fall through to the database.
type LookupService struct {
	lookups repository.LookupRepository
	users   repository.UserRepository
	cache   *persistence.Redis
	logger  *zap.Logger
}

// LookupDependencies bundles requirements for the lookup service.
type LookupDependencies struct {
	LookupRepo repository.LookupRepository
	UserRepo   repository.UserRepository
	Cache      *persistence.Redis
}

// NewLookupService constructs the service.
func NewLookupService(deps LookupDependencies, logger *zap.Logger) *LookupService {
	return &LookupService{
		lookups: deps.LookupRepo,
		users:   deps.UserRepo,
		cache:   deps.Cache,
		logger:  logger,
	}
}

// Categories lists active categories.
func (s *LookupService) Categories(ctx context.Context) ([]domain.Category, error) {
	cats, err := s.lookups.ListCategories(ctx)
	if err != nil {
		return nil, apperrors.NewLookupLoadError("categories", err)
	}
	return cats, nil
}

// Category fetches one category.
func (s *LookupService) Category(ctx context.Context, id string) (*domain.Category, error) {
	cat, err := s.lookups.GetCategory(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("category", map[string]any{"category_id": id})
		}
		return nil, apperrors.NewLookupLoadError("category", err)
	}
	return cat, nil
}

// Departments lists departments.
func (s *LookupService) Departments(ctx context.Context) ([]domain.Department, error) {
	depts, err := s.lookups.ListDepartments(ctx)
	if err != nil {
		return nil, apperrors.NewLookupLoadError("departments", err)
	}
	return depts, nil
}

// Companies lists companies.
func (s *LookupService) Companies(ctx context.Context) ([]domain.Company, error) {
	companies, err := s.lookups.ListCompanies(ctx)
	if err != nil {
		return nil, apperrors.NewLookupLoadError("companies", err)
	}
	return companies, nil
}

// ResolveAssignees returns the users eligible to receive tickets in the
// category. An empty category id resolves to an empty list, not an error:
// the form simply has no category selected yet.
func (s *LookupService) ResolveAssignees(ctx context.Context, categoryID string) ([]domain.User, error) {
	if categoryID == "" {
		return []domain.User{}, nil
	}
	var cached []domain.User
	if s.cacheGet(ctx, assigneeCacheKey(categoryID), &cached) {
		return cached, nil
	}
	users, err := s.users.ListAssigneesByCategory(ctx, categoryID)
	if err != nil {
		return nil, apperrors.NewLookupLoadError("assignees", err)
	}
	if users == nil {
		users = []domain.User{}
	}
	s.cacheSet(ctx, assigneeCacheKey(categoryID), users)
	return users, nil
}

// ResolveIssueTypes returns issue types valid for the category; empty
// category id resolves to an empty list.
func (s *LookupService) ResolveIssueTypes(ctx context.Context, categoryID string) ([]domain.IssueType, error) {
	if categoryID == "" {
		return []domain.IssueType{}, nil
	}
	var cached []domain.IssueType
	if s.cacheGet(ctx, "lookup:issue-types:"+categoryID, &cached) {
		return cached, nil
	}
	types, err := s.lookups.ListIssueTypes(ctx, categoryID)
	if err != nil {
		return nil, apperrors.NewLookupLoadError("issue types", err)
	}
	if types == nil {
		types = []domain.IssueType{}
	}
	s.cacheSet(ctx, "lookup:issue-types:"+categoryID, types)
	return types, nil
}

// ResolveRequestTypes returns request types valid for the category; empty
// category id resolves to an empty list.
func (s *LookupService) ResolveRequestTypes(ctx context.Context, categoryID string) ([]domain.RequestType, error) {
	if categoryID == "" {
		return []domain.RequestType{}, nil
	}
	var cached []domain.RequestType
	if s.cacheGet(ctx, "lookup:request-types:"+categoryID, &cached) {
		return cached, nil
	}
	types, err := s.lookups.ListRequestTypes(ctx, categoryID)
	if err != nil {
		return nil, apperrors.NewLookupLoadError("request types", err)
	}
	if types == nil {
		types = []domain.RequestType{}
	}
	s.cacheSet(ctx, "lookup:request-types:"+categoryID, types)
	return types, nil
}

func assigneeCacheKey(categoryID string) string {
	return "lookup:assignees:" + categoryID
}

func (s *LookupService) cacheGet(ctx context.Context, key string, dest any) bool {
	if s.cache == nil || s.cache.Client == nil {
		return false
	}
	raw, err := s.cache.Client.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false
	}
	return true
}

func (s *LookupService) cacheSet(ctx context.Context, key string, value any) {
	if s.cache == nil || s.cache.Client == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.cache.Client.Set(ctx, key, raw, config.LookupCacheTTL).Err(); err != nil {
		s.logger.Debug("lookup cache set failed", zap.String("key", key), zap.Error(err))
	}
}
