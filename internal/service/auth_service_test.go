package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/cwdb/course-ratings-api/internal/models"
	"github.com/cwdb/course-ratings-api/internal/repository"
	appErrors "github.com/cwdb/course-ratings-api/pkg/errors"
)

type userRepoStub struct {
	byUsername map[string]*models.User
	created    []*models.User
}

func (s *userRepoStub) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	if user, ok := s.byUsername[username]; ok {
		return user, nil
	}
	return nil, sql.ErrNoRows
}

func (s *userRepoStub) FindByID(ctx context.Context, id string) (*models.User, error) {
	for _, user := range s.byUsername {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *userRepoStub) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, ok := s.byUsername[username]
	return ok, nil
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	user.ID = "user-1"
	s.created = append(s.created, user)
	return nil
}

func (s *userRepoStub) UpdateLastLogin(ctx context.Context, id string, ts time.Time) error {
	return nil
}

type sessionStoreStub struct {
	sessions map[string]string
}

func newSessionStoreStub() *sessionStoreStub {
	return &sessionStoreStub{sessions: map[string]string{}}
}

func (s *sessionStoreStub) Store(ctx context.Context, token, userID string, ttl time.Duration) error {
	s.sessions[token] = userID
	return nil
}

func (s *sessionStoreStub) Resolve(ctx context.Context, token string) (string, error) {
	if userID, ok := s.sessions[token]; ok {
		return userID, nil
	}
	return "", repository.ErrSessionNotFound
}

func (s *sessionStoreStub) Revoke(ctx context.Context, token string) error {
	delete(s.sessions, token)
	return nil
}

func newAuthFixtures(t *testing.T) (*userRepoStub, *sessionStoreStub, *AuthService) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	require.NoError(t, err)

	users := &userRepoStub{byUsername: map[string]*models.User{
		"student1": {ID: "user-1", Username: "student1", PasswordHash: string(hash), Role: models.RoleStudent, Active: true},
	}}
	sessions := newSessionStoreStub()
	svc := NewAuthService(users, sessions, nil, nil, AuthConfig{
		AccessTokenSecret:  "test-secret",
		AccessTokenExpiry:  time.Hour,
		RefreshTokenExpiry: 24 * time.Hour,
		Issuer:             "test",
	})
	return users, sessions, svc
}

func TestAuthRegister(t *testing.T) {
	users, _, svc := newAuthFixtures(t)

	info, err := svc.Register(context.Background(), models.RegisterRequest{Username: "student2", Password: "secret2"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleStudent, info.Role)
	require.Len(t, users.created, 1)
	assert.NotEqual(t, "secret2", users.created[0].PasswordHash)
}

func TestAuthRegisterDuplicateUsername(t *testing.T) {
	_, _, svc := newAuthFixtures(t)

	_, err := svc.Register(context.Background(), models.RegisterRequest{Username: "student1", Password: "secret2"})
	assertErrCode(t, err, appErrors.ErrConflict)
}

func TestAuthLoginAndValidate(t *testing.T) {
	_, sessions, svc := newAuthFixtures(t)

	resp, err := svc.Login(context.Background(), models.LoginRequest{Username: "student1", Password: "secret1"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Contains(t, sessions.sessions, resp.RefreshToken)

	claims, err := svc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, models.RoleStudent, claims.Role)
}

func TestAuthLoginWrongPassword(t *testing.T) {
	_, _, svc := newAuthFixtures(t)

	_, err := svc.Login(context.Background(), models.LoginRequest{Username: "student1", Password: "wrong"})
	assertErrCode(t, err, appErrors.ErrInvalidCredentials)
}

func TestAuthLogout(t *testing.T) {
	_, sessions, svc := newAuthFixtures(t)
	sessions.sessions["tok-1"] = "user-1"

	require.NoError(t, svc.Logout(context.Background(), "user-1", models.LogoutRequest{RefreshToken: "tok-1"}))
	assert.NotContains(t, sessions.sessions, "tok-1")
}

func TestAuthLogoutForeignToken(t *testing.T) {
	_, sessions, svc := newAuthFixtures(t)
	sessions.sessions["tok-1"] = "someone-else"

	err := svc.Logout(context.Background(), "user-1", models.LogoutRequest{RefreshToken: "tok-1"})
	assertErrCode(t, err, appErrors.ErrForbidden)
}

func TestAuthValidateGarbageToken(t *testing.T) {
	_, _, svc := newAuthFixtures(t)

	_, err := svc.ValidateToken("not-a-token")
	assertErrCode(t, err, appErrors.ErrUnauthenticated)
}
