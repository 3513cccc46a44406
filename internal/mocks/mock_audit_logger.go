package mocks

import (
	"context"
	"sync"

	"github.com/you/assetsvc/domain"
)

// MockAuditLogger collects audit events in memory
type MockAuditLogger struct {
	mu     sync.Mutex
	events []domain.AuditEvent
}

func NewMockAuditLogger() *MockAuditLogger {
	return &MockAuditLogger{}
}

func (m *MockAuditLogger) LogEvent(ctx context.Context, event *domain.AuditEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, *event)
}

// Events returns the recorded events of the given type
func (m *MockAuditLogger) Events(eventType domain.AuditEventType) []domain.AuditEvent {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []domain.AuditEvent
	for _, e := range m.events {
		if e.EventType == eventType {
			out = append(out, e)
		}
	}
	return out
}

// Compile-time interface compliance verification
var _ domain.AuditLogger = (*MockAuditLogger)(nil)
