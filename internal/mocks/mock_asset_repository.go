package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/you/assetsvc/domain"
)

// MockAssetRepository implements domain.AssetRepository with an in-memory slice
type MockAssetRepository struct {
	CreateFunc      func(ctx context.Context, asset *domain.Asset) error
	ListByOwnerFunc func(ctx context.Context, ownerID uint) ([]domain.Asset, error)

	mu     sync.Mutex
	assets []domain.Asset
}

// NewMockAssetRepository creates a new MockAssetRepository with default behaviors
func NewMockAssetRepository() *MockAssetRepository {
	return &MockAssetRepository{}
}

// Create stores the asset
func (m *MockAssetRepository) Create(ctx context.Context, asset *domain.Asset) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, asset)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.assets = append(m.assets, *asset)
	return nil
}

// ListByOwner returns stored assets for ownerID, newest first
func (m *MockAssetRepository) ListByOwner(ctx context.Context, ownerID uint) ([]domain.Asset, error) {
	if m.ListByOwnerFunc != nil {
		return m.ListByOwnerFunc(ctx, ownerID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	out := []domain.Asset{}
	for _, a := range m.assets {
		if a.OwnerID == ownerID {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// Stored returns a copy of everything created so far (test helper)
func (m *MockAssetRepository) Stored() []domain.Asset {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Asset(nil), m.assets...)
}

// Compile-time interface compliance verification
var _ domain.AssetRepository = (*MockAssetRepository)(nil)
