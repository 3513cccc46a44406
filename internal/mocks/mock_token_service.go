package mocks

import (
	"fmt"
	"strings"
	"time"

	"github.com/you/assetsvc/domain"
)

// MockTokenService implements domain.TokenService interface for testing
type MockTokenService struct {
	GenerateAccessTokenFunc        func(userID uint, role string) (string, error)
	ValidateAccessTokenFunc        func(token string) (*domain.TokenClaims, error)
	GenerateVerificationTicketFunc func(email string) (string, error)
	ValidateVerificationTicketFunc func(ticket string) (string, error)
}

// NewMockTokenService creates a new MockTokenService with default behaviors
func NewMockTokenService() *MockTokenService {
	return &MockTokenService{}
}

// GenerateAccessToken generates an access token
func (m *MockTokenService) GenerateAccessToken(userID uint, role string) (string, error) {
	if m.GenerateAccessTokenFunc != nil {
		return m.GenerateAccessTokenFunc(userID, role)
	}
	return fmt.Sprintf("access_token_%d_%s", userID, role), nil
}

// ValidateAccessToken validates an access token
func (m *MockTokenService) ValidateAccessToken(token string) (*domain.TokenClaims, error) {
	if m.ValidateAccessTokenFunc != nil {
		return m.ValidateAccessTokenFunc(token)
	}

	var userID uint
	var role string
	if _, err := fmt.Sscanf(strings.ReplaceAll(token, "_", " "), "access token %d %s", &userID, &role); err != nil {
		return nil, domain.ErrTokenInvalid
	}
	now := time.Now().Unix()
	return &domain.TokenClaims{UserID: userID, Role: role, IssuedAt: now, ExpiresAt: now + 3600}, nil
}

// GenerateVerificationTicket issues a ticket for email
func (m *MockTokenService) GenerateVerificationTicket(email string) (string, error) {
	if m.GenerateVerificationTicketFunc != nil {
		return m.GenerateVerificationTicketFunc(email)
	}
	return "ticket:" + email, nil
}

// ValidateVerificationTicket returns the email a ticket was issued for
func (m *MockTokenService) ValidateVerificationTicket(ticket string) (string, error) {
	if m.ValidateVerificationTicketFunc != nil {
		return m.ValidateVerificationTicketFunc(ticket)
	}
	email, ok := strings.CutPrefix(ticket, "ticket:")
	if !ok || email == "" {
		return "", domain.ErrTokenInvalid
	}
	return email, nil
}

// Compile-time interface compliance verification
var _ domain.TokenService = (*MockTokenService)(nil)
