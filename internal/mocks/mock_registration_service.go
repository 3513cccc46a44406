package mocks

import (
	"context"

	"github.com/you/assetsvc/domain"
)

// MockRegistrationService implements domain.RegistrationService interface for testing
type MockRegistrationService struct {
	RequestCodeFunc          func(ctx context.Context, email string) (*domain.CodeRequestResult, error)
	VerifyCodeFunc           func(ctx context.Context, email, code string) (*domain.VerificationResult, error)
	CompleteRegistrationFunc func(ctx context.Context, name, email, password, ticket string) (*domain.AuthResult, error)
	LoginFunc                func(ctx context.Context, email, password string) (*domain.AuthResult, error)
	GetUserProfileFunc       func(ctx context.Context, userID uint) (*domain.User, error)
}

// NewMockRegistrationService creates a new MockRegistrationService with default behaviors
func NewMockRegistrationService() *MockRegistrationService {
	return &MockRegistrationService{}
}

func (m *MockRegistrationService) RequestCode(ctx context.Context, email string) (*domain.CodeRequestResult, error) {
	if m.RequestCodeFunc != nil {
		return m.RequestCodeFunc(ctx, email)
	}
	return &domain.CodeRequestResult{Issued: true, Delivered: true}, nil
}

func (m *MockRegistrationService) VerifyCode(ctx context.Context, email, code string) (*domain.VerificationResult, error) {
	if m.VerifyCodeFunc != nil {
		return m.VerifyCodeFunc(ctx, email, code)
	}
	return &domain.VerificationResult{Verified: true, Ticket: "ticket:" + email}, nil
}

func (m *MockRegistrationService) CompleteRegistration(ctx context.Context, name, email, password, ticket string) (*domain.AuthResult, error) {
	if m.CompleteRegistrationFunc != nil {
		return m.CompleteRegistrationFunc(ctx, name, email, password, ticket)
	}
	return &domain.AuthResult{
		User:  &domain.User{ID: 1, Name: name, Email: email, Role: "user"},
		Token: "access_token_1_user",
	}, nil
}

func (m *MockRegistrationService) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	return nil, domain.ErrInvalidCredentials
}

func (m *MockRegistrationService) GetUserProfile(ctx context.Context, userID uint) (*domain.User, error) {
	if m.GetUserProfileFunc != nil {
		return m.GetUserProfileFunc(ctx, userID)
	}
	return nil, domain.ErrUserNotFound
}

// Compile-time interface compliance verification
var _ domain.RegistrationService = (*MockRegistrationService)(nil)
