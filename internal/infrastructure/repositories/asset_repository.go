package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/you/assetsvc/domain"
)

// AssetRepositoryImpl implements domain.AssetRepository using GORM
type AssetRepositoryImpl struct {
	db *gorm.DB
}

// DBAsset is the database model for Asset
type DBAsset struct {
	ID           string `gorm:"primaryKey;size:36"`
	OwnerID      uint   `gorm:"column:user_id;index;not null"`
	Title        string `gorm:"size:255;not null"`
	Description  string `gorm:"not null;default:''"`
	FileURL      string `gorm:"column:file_url;not null"`
	FileType     string `gorm:"size:32;not null"`
	MimeType     string `gorm:"size:255"`
	OriginalName string `gorm:"size:255"`
	Size         int64
	CreatedAt    time.Time `gorm:"index"`

	// Owner carries the users(id) foreign key into AutoMigrate
	Owner *DBUser `gorm:"foreignKey:OwnerID;references:ID;constraint:OnDelete:RESTRICT"`
}

func (DBAsset) TableName() string {
	return "assets"
}

// NewAssetRepository creates a new asset repository
func NewAssetRepository(db *gorm.DB) domain.AssetRepository {
	return &AssetRepositoryImpl{db: db}
}

// Create implements domain.AssetRepository. A missing ID is filled with a UUID.
func (r *AssetRepositoryImpl) Create(ctx context.Context, asset *domain.Asset) error {
	if asset.ID == "" {
		asset.ID = uuid.NewString()
	}

	row := toDBAsset(asset)
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return err
	}
	asset.CreatedAt = row.CreatedAt
	return nil
}

// ListByOwner returns the owner's assets, newest first
func (r *AssetRepositoryImpl) ListByOwner(ctx context.Context, ownerID uint) ([]domain.Asset, error) {
	var rows []DBAsset
	err := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	assets := make([]domain.Asset, 0, len(rows))
	for i := range rows {
		assets = append(assets, toDomainAsset(&rows[i]))
	}
	return assets, nil
}

func toDBAsset(a *domain.Asset) *DBAsset {
	return &DBAsset{
		ID:           a.ID,
		OwnerID:      a.OwnerID,
		Title:        a.Title,
		Description:  a.Description,
		FileURL:      a.FileURL,
		FileType:     string(a.Category),
		MimeType:     a.MediaType,
		OriginalName: a.OriginalName,
		Size:         a.SizeBytes,
		CreatedAt:    a.CreatedAt,
	}
}

func toDomainAsset(row *DBAsset) domain.Asset {
	return domain.Asset{
		ID:           row.ID,
		OwnerID:      row.OwnerID,
		Title:        row.Title,
		Description:  row.Description,
		FileURL:      row.FileURL,
		Category:     domain.AssetCategory(row.FileType),
		MediaType:    row.MimeType,
		OriginalName: row.OriginalName,
		SizeBytes:    row.Size,
		CreatedAt:    row.CreatedAt,
	}
}
