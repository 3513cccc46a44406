package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/you/assetsvc/domain"
)

// AssetServiceImpl implements domain.AssetService
type AssetServiceImpl struct {
	repo       domain.AssetRepository
	classifier domain.AssetClassifier
	audit      domain.AuditLogger
	lists      singleflight.Group
	now        func() time.Time
}

// NewAssetService creates the asset ingestion workflow
func NewAssetService(repo domain.AssetRepository, classifier domain.AssetClassifier, audit domain.AuditLogger) domain.AssetService {
	return &AssetServiceImpl{
		repo:       repo,
		classifier: classifier,
		audit:      audit,
		now:        time.Now,
	}
}

// Create validates, classifies and persists an asset. ownerID must come from the authenticated caller.
func (s *AssetServiceImpl) Create(ctx context.Context, ownerID uint, title, description, sourceRef string) (*domain.Asset, error) {
	title = strings.TrimSpace(title)
	sourceRef = strings.TrimSpace(sourceRef)
	if title == "" {
		return nil, domain.ErrTitleRequired
	}
	if sourceRef == "" {
		return nil, domain.ErrFileRequired
	}
	if ownerID == 0 {
		return nil, domain.ErrMissingOwner
	}

	cls := s.classifier.Classify(ctx, sourceRef)
	originalName := cls.OriginalName
	if originalName == "" {
		originalName = title
	}

	asset := &domain.Asset{
		ID:           uuid.NewString(),
		OwnerID:      ownerID,
		Title:        title,
		Description:  description,
		FileURL:      sourceRef,
		Category:     cls.Category,
		MediaType:    cls.MediaType,
		OriginalName: originalName,
		SizeBytes:    cls.SizeBytes,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.repo.Create(ctx, asset); err != nil {
		return nil, fmt.Errorf("persist asset: %w", err)
	}
	// a list already in flight may predate this row
	s.lists.Forget(listKey(ownerID))

	s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.AssetCreatedEvent, ownerID).
		WithMetadata("asset_id", asset.ID).
		WithMetadata("file_type", string(asset.Category)))

	return asset, nil
}

// ListOwned returns the owner's assets newest first. Concurrent calls for one owner share a query,
// which runs detached from any single caller's cancellation.
func (s *AssetServiceImpl) ListOwned(ctx context.Context, ownerID uint) ([]domain.Asset, error) {
	shared := context.WithoutCancel(ctx)
	ch := s.lists.DoChan(listKey(ownerID), func() (interface{}, error) {
		return s.repo.ListByOwner(shared, ownerID)
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res = <-ch:
	}
	if res.Err != nil {
		return nil, fmt.Errorf("list assets: %w", res.Err)
	}

	assets := res.Val.([]domain.Asset)
	out := make([]domain.Asset, len(assets))
	copy(out, assets)
	return out, nil
}

func listKey(ownerID uint) string {
	return strconv.FormatUint(uint64(ownerID), 10)
}
