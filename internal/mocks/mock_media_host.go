package mocks

import (
	"context"
	"path"
	"strings"

	"github.com/you/assetsvc/domain"
)

// MockMediaHost implements domain.MediaHost interface for testing
type MockMediaHost struct {
	FetchResourceMetadataFunc func(ctx context.Context, resourceID string) (*domain.ResourceMetadata, error)
	ResourceIDFunc            func(fileURL string) string
	SignUploadFunc            func(ctx context.Context, filename string) (*domain.UploadCredential, error)

	// Lookups records every resource ID passed to FetchResourceMetadata
	Lookups []string
}

// NewMockMediaHost creates a new MockMediaHost with default behaviors
func NewMockMediaHost() *MockMediaHost {
	return &MockMediaHost{}
}

func (m *MockMediaHost) FetchResourceMetadata(ctx context.Context, resourceID string) (*domain.ResourceMetadata, error) {
	m.Lookups = append(m.Lookups, resourceID)
	if m.FetchResourceMetadataFunc != nil {
		return m.FetchResourceMetadataFunc(ctx, resourceID)
	}
	return nil, domain.ErrResourceNotFound
}

// ResourceID defaults to the last path segment without its extension
func (m *MockMediaHost) ResourceID(fileURL string) string {
	if m.ResourceIDFunc != nil {
		return m.ResourceIDFunc(fileURL)
	}
	base := path.Base(fileURL)
	return strings.TrimSuffix(base, path.Ext(base))
}

func (m *MockMediaHost) SignUpload(ctx context.Context, filename string) (*domain.UploadCredential, error) {
	if m.SignUploadFunc != nil {
		return m.SignUploadFunc(ctx, filename)
	}
	return nil, domain.ErrMediaHostDisabled
}

// Compile-time interface compliance verification
var _ domain.MediaHost = (*MockMediaHost)(nil)
