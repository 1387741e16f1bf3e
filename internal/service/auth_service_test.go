package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/yourusername/identity-api/internal/domain/entity"
	apperrors "github.com/yourusername/identity-api/internal/pkg/errors"
	"github.com/yourusername/identity-api/pkg/auth"
)

func hashPassword(t *testing.T, plain string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hashed)
}

func newAuthFixture(t *testing.T) (*AuthService, *MockUserRepository) {
	t.Helper()
	users := new(MockUserRepository)
	jwtService, err := auth.NewJWTService("test-secret", 3600)
	require.NoError(t, err)
	svc, err := NewAuthService(users, jwtService)
	require.NoError(t, err)
	return svc, users
}

func TestAuthenticate_ByEmail(t *testing.T) {
	svc, users := newAuthFixture(t)

	stored := &entity.User{
		ID:         1,
		Email:      "jane@example.com",
		Password:   hashPassword(t, "secret123"),
		IsVerified: true,
		IsActive:   true,
	}
	users.On("GetByEmail", mock.Anything, "jane@example.com").Return(stored, nil)

	user, err := svc.Authenticate(context.Background(), "Jane@Example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, uint(1), user.ID)
	users.AssertNotCalled(t, "GetByUsername", mock.Anything, mock.Anything)
}

func TestAuthenticate_ByUsername(t *testing.T) {
	svc, users := newAuthFixture(t)

	stored := &entity.User{
		ID:         2,
		Username:   "jane",
		Password:   hashPassword(t, "secret123"),
		IsVerified: true,
		IsActive:   true,
	}
	users.On("GetByUsername", mock.Anything, "jane").Return(stored, nil)

	user, err := svc.Authenticate(context.Background(), "jane", "secret123")
	require.NoError(t, err)
	assert.Equal(t, uint(2), user.ID)
	users.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
}

func TestAuthenticate_UnknownIdentifier(t *testing.T) {
	svc, users := newAuthFixture(t)

	users.On("GetByUsername", mock.Anything, "ghost").Return(nil, apperrors.ErrNotFound)

	_, err := svc.Authenticate(context.Background(), "ghost", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticate_WrongPassword(t *testing.T) {
	svc, users := newAuthFixture(t)

	stored := &entity.User{
		ID:         1,
		Email:      "jane@example.com",
		Password:   hashPassword(t, "secret123"),
		IsVerified: true,
		IsActive:   true,
	}
	users.On("GetByEmail", mock.Anything, "jane@example.com").Return(stored, nil)

	_, err := svc.Authenticate(context.Background(), "jane@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticate_UnverifiedAccount(t *testing.T) {
	svc, users := newAuthFixture(t)

	stored := &entity.User{
		ID:         1,
		Email:      "pending@example.com",
		Password:   hashPassword(t, "secret123"),
		IsVerified: false,
		IsActive:   true,
	}
	users.On("GetByEmail", mock.Anything, "pending@example.com").Return(stored, nil)

	_, err := svc.Authenticate(context.Background(), "pending@example.com", "secret123")
	assert.ErrorIs(t, err, ErrAccountNotVerified)
}

func TestAuthenticate_InactiveAccount(t *testing.T) {
	svc, users := newAuthFixture(t)

	stored := &entity.User{
		ID:         1,
		Email:      "banned@example.com",
		Password:   hashPassword(t, "secret123"),
		IsVerified: true,
		IsActive:   false,
	}
	users.On("GetByEmail", mock.Anything, "banned@example.com").Return(stored, nil)

	_, err := svc.Authenticate(context.Background(), "banned@example.com", "secret123")
	assert.ErrorIs(t, err, ErrAccountInactive)
}

func TestAuthenticate_WrongPasswordBeatsStateErrors(t *testing.T) {
	// The password check comes first: an unverified account with a wrong
	// password reports invalid credentials, not a state error.
	svc, users := newAuthFixture(t)

	stored := &entity.User{
		ID:         1,
		Email:      "pending@example.com",
		Password:   hashPassword(t, "secret123"),
		IsVerified: false,
		IsActive:   false,
	}
	users.On("GetByEmail", mock.Anything, "pending@example.com").Return(stored, nil)

	_, err := svc.Authenticate(context.Background(), "pending@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticate_EmptyInput(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.Authenticate(context.Background(), "", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_ReturnsTokenAndUser(t *testing.T) {
	svc, users := newAuthFixture(t)

	stored := &entity.User{
		ID:         3,
		Email:      "jane@example.com",
		Slug:       "jane",
		Password:   hashPassword(t, "secret123"),
		IsVerified: true,
		IsActive:   true,
	}
	users.On("GetByEmail", mock.Anything, "jane@example.com").Return(stored, nil)

	resp, err := svc.Login(context.Background(), "jane@example.com", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, 3600, resp.ExpiresIn)
	assert.Equal(t, uint(3), resp.User.ID)

	jwtService, err := auth.NewJWTService("test-secret", 3600)
	require.NoError(t, err)
	claims, err := jwtService.ParseToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, uint(3), claims.UserID)
	assert.Equal(t, "jane@example.com", claims.Email)
	assert.Equal(t, "jane", claims.Slug)
}
