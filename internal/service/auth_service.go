package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/yourusername/identity-api/internal/domain/entity"
	"github.com/yourusername/identity-api/internal/domain/repository"
	apperrors "github.com/yourusername/identity-api/internal/pkg/errors"
	"github.com/yourusername/identity-api/pkg/auth"
)

// AuthService authenticates users by email or username and issues access
// tokens.
type AuthService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
}

// AuthResponse is what a successful login yields.
type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresIn int          `json:"expires_in"`
	User      *entity.User `json:"user"`
}

func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService) (*AuthService, error) {
	if userRepo == nil {
		return nil, fmt.Errorf("user repository is required for AuthService")
	}
	if jwtService == nil {
		return nil, fmt.Errorf("jwt service is required for AuthService")
	}
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
	}, nil
}

// Authenticate resolves the identifier (email when it contains '@',
// username otherwise), checks the password, and gates on account state.
// Unknown identifier and wrong password both come back as
// ErrInvalidCredentials; only after the password checks out do the more
// specific not-verified and inactive errors apply.
func (s *AuthService) Authenticate(ctx context.Context, identifier, password string) (*entity.User, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	var (
		user *entity.User
		err  error
	)
	if strings.Contains(identifier, "@") {
		user, err = s.userRepo.GetByEmail(ctx, strings.ToLower(identifier))
	} else {
		user, err = s.userRepo.GetByUsername(ctx, identifier)
	}
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("%w: failed to look up user: %v", apperrors.ErrInternal, err)
	}

	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}
	if !user.IsVerified {
		return nil, ErrAccountNotVerified
	}
	if !user.IsActive {
		return nil, ErrAccountInactive
	}
	return user, nil
}

// Login authenticates and issues an access token.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (*AuthResponse, error) {
	user, err := s.Authenticate(ctx, identifier, password)
	if err != nil {
		return nil, err
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.Email, user.Slug)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to issue token: %v", apperrors.ErrInternal, err)
	}

	log.Printf("[AuthService] user id=%d logged in", user.ID)
	return &AuthResponse{
		Token:     token,
		ExpiresIn: int(s.jwtService.TokenTTL().Seconds()),
		User:      user,
	}, nil
}

// GetUserByID loads a user for the authenticated /me endpoint.
func (s *AuthService) GetUserByID(ctx context.Context, id uint) (*entity.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// GetUserBySlug loads a public profile.
func (s *AuthService) GetUserBySlug(ctx context.Context, slug string) (*entity.User, error) {
	return s.userRepo.GetBySlug(ctx, slug)
}
