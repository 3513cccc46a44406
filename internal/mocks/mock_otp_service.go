package mocks

import (
	"context"
	"time"

	"github.com/you/assetsvc/domain"
)

// MockOTPService implements domain.OTPService interface for testing
type MockOTPService struct {
	IssueFunc  func(ctx context.Context, email string) (*domain.Passcode, error)
	VerifyFunc func(ctx context.Context, email, code string) (bool, error)
}

// NewMockOTPService creates a new MockOTPService with default behaviors
func NewMockOTPService() *MockOTPService {
	return &MockOTPService{}
}

// Issue creates a passcode
func (m *MockOTPService) Issue(ctx context.Context, email string) (*domain.Passcode, error) {
	if m.IssueFunc != nil {
		return m.IssueFunc(ctx, email)
	}
	return &domain.Passcode{Email: email, Code: "123456", IssuedAt: time.Now()}, nil
}

// Verify checks a passcode
func (m *MockOTPService) Verify(ctx context.Context, email, code string) (bool, error) {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, email, code)
	}
	// Default behavior: accept the fixed code
	return code == "123456", nil
}

// Compile-time interface compliance verification
var _ domain.OTPService = (*MockOTPService)(nil)
