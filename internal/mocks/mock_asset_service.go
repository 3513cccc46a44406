package mocks

import (
	"context"

	"github.com/you/assetsvc/domain"
)

// MockAssetService implements domain.AssetService interface for testing
type MockAssetService struct {
	CreateFunc    func(ctx context.Context, ownerID uint, title, description, sourceRef string) (*domain.Asset, error)
	ListOwnedFunc func(ctx context.Context, ownerID uint) ([]domain.Asset, error)
}

// NewMockAssetService creates a new MockAssetService with default behaviors
func NewMockAssetService() *MockAssetService {
	return &MockAssetService{}
}

func (m *MockAssetService) Create(ctx context.Context, ownerID uint, title, description, sourceRef string) (*domain.Asset, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, ownerID, title, description, sourceRef)
	}
	return &domain.Asset{
		ID:          "asset-1",
		OwnerID:     ownerID,
		Title:       title,
		Description: description,
		FileURL:     sourceRef,
		Category:    domain.CategoryFile,
	}, nil
}

func (m *MockAssetService) ListOwned(ctx context.Context, ownerID uint) ([]domain.Asset, error) {
	if m.ListOwnedFunc != nil {
		return m.ListOwnedFunc(ctx, ownerID)
	}
	return []domain.Asset{}, nil
}

// Compile-time interface compliance verification
var _ domain.AssetService = (*MockAssetService)(nil)
