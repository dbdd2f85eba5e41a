package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/helpdesk-service/internal/config"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

type fakeResetRepo struct {
	tokens map[string]*repository.PasswordResetToken
}

func (r *fakeResetRepo) Create(_ context.Context, token *repository.PasswordResetToken) error {
	if r.tokens == nil {
		r.tokens = map[string]*repository.PasswordResetToken{}
	}
	token.ID = fmt.Sprintf("reset-%d", len(r.tokens)+1)
	token.CreatedAt = time.Now()
	stored := *token
	r.tokens[token.Token] = &stored
	return nil
}

func (r *fakeResetRepo) GetByToken(_ context.Context, tokenStr string) (*repository.PasswordResetToken, error) {
	token, ok := r.tokens[tokenStr]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *token
	return &copied, nil
}

func (r *fakeResetRepo) MarkUsed(_ context.Context, id string) error {
	now := time.Now()
	for _, token := range r.tokens {
		if token.ID == id {
			token.UsedAt = &now
			return nil
		}
	}
	return pgx.ErrNoRows
}

func newAuthServiceFixture() (*AuthService, *fakeUserRepo, *fakeResetRepo) {
	users := newFakeUserRepo()
	resets := &fakeResetRepo{}
	cfg := config.Config{Auth: config.AuthConfig{
		JWTSecret:               "test-secret",
		AccessTokenTTLMinutes:   60,
		PasswordResetTTLMinutes: 30,
		BcryptCost:              bcrypt.MinCost,
	}}
	return NewAuthService(cfg, AuthDependencies{UserRepo: users, PasswordResetRepo: resets}), users, resets
}

func TestRegisterNormalizesRoleToken(t *testing.T) {
	svc, users, _ := newAuthServiceFixture()

	user, token, _, err := svc.Register(context.Background(), RegisterInput{
		Name:      "Ana Ito",
		Email:     "Ana@Example.com",
		Password:  "hunter22",
		RoleToken: "IT Team",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleITTeam, user.Role)
	assert.Equal(t, "ana@example.com", user.Email)
	assert.NotEmpty(t, token)

	stored, err := users.GetByEmail(context.Background(), "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleITTeam, stored.Role)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthServiceFixture()
	input := RegisterInput{Name: "Ana", Email: "ana@example.com", Password: "hunter22", RoleToken: "1"}

	_, _, _, err := svc.Register(context.Background(), input)
	require.NoError(t, err)

	_, _, _, err = svc.Register(context.Background(), input)
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperrors.ToDomainError(err).Code)
}

func TestLoginRepairsAliasRole(t *testing.T) {
	svc, users, _ := newAuthServiceFixture()
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	require.NoError(t, err)
	users.add(domain.User{
		ID:           "u1",
		Email:        "legacy@example.com",
		PasswordHash: string(hash),
		Role:         domain.Role("2"), // legacy numeric form
		Status:       domain.UserStatusActive,
	})

	user, token, _, err := svc.Login(context.Background(), "legacy@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleITTeam, user.Role)
	assert.NotEmpty(t, token)

	stored, err := users.GetByID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleITTeam, stored.Role)
}

func TestLoginFailures(t *testing.T) {
	svc, users, _ := newAuthServiceFixture()
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	require.NoError(t, err)
	users.add(domain.User{ID: "u1", Email: "ana@example.com", PasswordHash: string(hash), Role: domain.RoleITTeam, Status: domain.UserStatusActive})
	users.add(domain.User{ID: "u2", Email: "gone@example.com", PasswordHash: string(hash), Role: domain.RoleITTeam, Status: domain.UserStatusSuspended})

	_, _, _, err = svc.Login(context.Background(), "ana@example.com", "wrong")
	assert.Equal(t, "UNAUTHORIZED", apperrors.ToDomainError(err).Code)

	_, _, _, err = svc.Login(context.Background(), "nobody@example.com", "hunter22")
	assert.Equal(t, "UNAUTHORIZED", apperrors.ToDomainError(err).Code)

	_, _, _, err = svc.Login(context.Background(), "gone@example.com", "hunter22")
	assert.Equal(t, "UNAUTHORIZED", apperrors.ToDomainError(err).Code)
}

func TestPasswordResetFlow(t *testing.T) {
	svc, users, resets := newAuthServiceFixture()
	ctx := context.Background()

	_, _, _, err := svc.Register(ctx, RegisterInput{Name: "Ana", Email: "ana@example.com", Password: "oldpass1", RoleToken: "1"})
	require.NoError(t, err)

	token, err := svc.RequestPasswordReset(ctx, "ana@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token.Token)

	require.NoError(t, svc.ConfirmPasswordReset(ctx, token.Token, "newpass1"))

	_, _, _, err = svc.Login(ctx, "ana@example.com", "newpass1")
	require.NoError(t, err)

	// tokens are single use
	err = svc.ConfirmPasswordReset(ctx, token.Token, "another1")
	assert.Equal(t, "UNAUTHORIZED", apperrors.ToDomainError(err).Code)

	// expired tokens are rejected
	expired := &repository.PasswordResetToken{UserID: users.users["user-1"].ID, Token: "tok-expired", ExpiresAt: time.Now().Add(-time.Minute)}
	require.NoError(t, resets.Create(ctx, expired))
	err = svc.ConfirmPasswordReset(ctx, "tok-expired", "whatever1")
	assert.Equal(t, "UNAUTHORIZED", apperrors.ToDomainError(err).Code)
}

func TestChangePasswordVerifiesCurrent(t *testing.T) {
	svc, _, _ := newAuthServiceFixture()
	ctx := context.Background()

	user, _, _, err := svc.Register(ctx, RegisterInput{Name: "Ana", Email: "ana@example.com", Password: "oldpass1", RoleToken: "1"})
	require.NoError(t, err)

	err = svc.ChangePassword(ctx, user.ID, "wrongpass", "newpass1")
	assert.Equal(t, "UNAUTHORIZED", apperrors.ToDomainError(err).Code)

	require.NoError(t, svc.ChangePassword(ctx, user.ID, "oldpass1", "newpass1"))
	_, _, _, err = svc.Login(ctx, "ana@example.com", "newpass1")
	require.NoError(t, err)
}
