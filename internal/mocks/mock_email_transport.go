package mocks

import (
	"context"
	"sync"

	"github.com/you/assetsvc/domain"
)

// SentEmail records a message handed to MockEmailTransport
type SentEmail struct {
	To      string
	Subject string
	Body    string
}

// MockEmailTransport implements domain.EmailTransport interface for testing
type MockEmailTransport struct {
	SendEmailFunc func(ctx context.Context, to, subject, body string) error

	mu   sync.Mutex
	sent []SentEmail
}

// NewMockEmailTransport creates a new MockEmailTransport with default behaviors
func NewMockEmailTransport() *MockEmailTransport {
	return &MockEmailTransport{}
}

// SendEmail records the message, then defers to SendEmailFunc if set
func (m *MockEmailTransport) SendEmail(ctx context.Context, to, subject, body string) error {
	m.mu.Lock()
	m.sent = append(m.sent, SentEmail{To: to, Subject: subject, Body: body})
	m.mu.Unlock()

	if m.SendEmailFunc != nil {
		return m.SendEmailFunc(ctx, to, subject, body)
	}
	// Default behavior: success (no actual email sent in tests)
	return nil
}

// Sent returns every message attempted so far
func (m *MockEmailTransport) Sent() []SentEmail {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]SentEmail(nil), m.sent...)
}

// Compile-time interface compliance verification
var _ domain.EmailTransport = (*MockEmailTransport)(nil)
