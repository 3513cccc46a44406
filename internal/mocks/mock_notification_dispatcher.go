package mocks

import (
	"context"

	"github.com/you/assetsvc/domain"
)

// MockNotificationDispatcher implements domain.NotificationDispatcher interface for testing
type MockNotificationDispatcher struct {
	DeliverFunc func(ctx context.Context, email, code string) bool
}

// NewMockNotificationDispatcher creates a new MockNotificationDispatcher with default behaviors
func NewMockNotificationDispatcher() *MockNotificationDispatcher {
	return &MockNotificationDispatcher{}
}

// Deliver sends the code
func (m *MockNotificationDispatcher) Deliver(ctx context.Context, email, code string) bool {
	if m.DeliverFunc != nil {
		return m.DeliverFunc(ctx, email, code)
	}
	return true
}

// Compile-time interface compliance verification
var _ domain.NotificationDispatcher = (*MockNotificationDispatcher)(nil)
