package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/yourusername/identity-api/internal/domain/entity"
	"github.com/yourusername/identity-api/internal/domain/repository"
)

// MockUserRepository implements repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetBySlug(ctx context.Context, slug string) (*entity.User, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, userID uint, newPassword string) error {
	args := m.Called(ctx, userID, newPassword)
	return args.Error(0)
}

// MockVerificationRepository implements repository.VerificationRepository.
type MockVerificationRepository struct {
	mock.Mock
}

func (m *MockVerificationRepository) CreateCode(ctx context.Context, userID uint, purpose string) (string, error) {
	args := m.Called(ctx, userID, purpose)
	return args.String(0), args.Error(1)
}

func (m *MockVerificationRepository) VerifyCode(ctx context.Context, userID uint, code, purpose string) (bool, error) {
	args := m.Called(ctx, userID, code, purpose)
	return args.Bool(0), args.Error(1)
}

func (m *MockVerificationRepository) DeleteCode(ctx context.Context, userID uint, purpose string) error {
	args := m.Called(ctx, userID, purpose)
	return args.Error(0)
}

// MockNotificationService implements NotificationService.
type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) SendRegistrationConfirmation(ctx context.Context, email, code string) error {
	args := m.Called(ctx, email, code)
	return args.Error(0)
}

func (m *MockNotificationService) SendPasswordResetCode(ctx context.Context, email, code string) error {
	args := m.Called(ctx, email, code)
	return args.Error(0)
}

func (m *MockNotificationService) SendEmailChangeConfirmation(ctx context.Context, email, code string) error {
	args := m.Called(ctx, email, code)
	return args.Error(0)
}

// fakeTxManager runs the callback inline with the supplied repositories, so
// tests observe exactly what a committed transaction would have done.
type fakeTxManager struct {
	users repository.UserRepository
	codes repository.VerificationRepository
}

func (f *fakeTxManager) WithinTransaction(ctx context.Context, fn func(users repository.UserRepository, codes repository.VerificationRepository) error) error {
	return fn(f.users, f.codes)
}
