package mocks

import (
	"context"
	"io"

	"github.com/you/assetsvc/domain"
)

// MockLocalStorage implements domain.LocalStorage interface for testing
type MockLocalStorage struct {
	SaveFunc func(ctx context.Context, originalName string, r io.Reader) (*domain.StoredFile, error)
}

// NewMockLocalStorage creates a new MockLocalStorage with default behaviors
func NewMockLocalStorage() *MockLocalStorage {
	return &MockLocalStorage{}
}

func (m *MockLocalStorage) Save(ctx context.Context, originalName string, r io.Reader) (*domain.StoredFile, error) {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, originalName, r)
	}
	_, _ = io.Copy(io.Discard, r)
	return &domain.StoredFile{
		FileURL:      "/uploads/stored-" + originalName,
		Filename:     "stored-" + originalName,
		OriginalName: originalName,
	}, nil
}

// Compile-time interface compliance verification
var _ domain.LocalStorage = (*MockLocalStorage)(nil)
