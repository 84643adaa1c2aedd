package db

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/embermedia/creatorsite/internal/models"
)

// Repository provides database access methods
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new repository
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// StatsRepository provides platform_stats database operations
type StatsRepository struct {
	*Repository
}

// NewStatsRepository creates a new stats repository
func NewStatsRepository(repo *Repository) *StatsRepository {
	return &StatsRepository{Repository: repo}
}

// GetByPlatform retrieves the stats row for a platform
func (r *StatsRepository) GetByPlatform(ctx context.Context, platform string) (*models.PlatformStat, error) {
	var stat models.PlatformStat
	if err := r.db.WithContext(ctx).Where("platform = ?", platform).First(&stat).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &stat, nil
}

// Upsert inserts or updates the stats row keyed by platform
func (r *StatsRepository) Upsert(ctx context.Context, stat *models.PlatformStat) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "platform"}},
		UpdateAll: true,
	}).Create(stat).Error
}

// ListRaw retrieves every stats row as raw column maps
func (r *StatsRepository) ListRaw(ctx context.Context) ([]map[string]interface{}, error) {
	var rows []map[string]interface{}
	err := r.db.WithContext(ctx).
		Table(models.PlatformStat{}.TableName()).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListRawByPlatform retrieves the stats rows for one platform as raw maps
func (r *StatsRepository) ListRawByPlatform(ctx context.Context, platform string) ([]map[string]interface{}, error) {
	var rows []map[string]interface{}
	err := r.db.WithContext(ctx).
		Table(models.PlatformStat{}.TableName()).
		Where("platform = ?", platform).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// AudienceRepository provides platform_audience database operations
type AudienceRepository struct {
	*Repository
}

// NewAudienceRepository creates a new audience repository
func NewAudienceRepository(repo *Repository) *AudienceRepository {
	return &AudienceRepository{Repository: repo}
}

// GetByPlatform retrieves the audience row for a platform
func (r *AudienceRepository) GetByPlatform(ctx context.Context, platform string) (*models.PlatformAudience, error) {
	var audience models.PlatformAudience
	if err := r.db.WithContext(ctx).Where("platform = ?", platform).First(&audience).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &audience, nil
}

// Upsert inserts or updates the audience row keyed by platform
func (r *AudienceRepository) Upsert(ctx context.Context, audience *models.PlatformAudience) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "platform"}},
		UpdateAll: true,
	}).Create(audience).Error
}

// GetRaw retrieves the audience row for a platform as a raw column map.
// Returns nil with no error when the row does not exist.
func (r *AudienceRepository) GetRaw(ctx context.Context, platform string) (map[string]interface{}, error) {
	var rows []map[string]interface{}
	err := r.db.WithContext(ctx).
		Table(models.PlatformAudience{}.TableName()).
		Where("platform = ?", platform).
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// PostRepository provides top_posts database operations
type PostRepository struct {
	*Repository
}

// NewPostRepository creates a new post repository
func NewPostRepository(repo *Repository) *PostRepository {
	return &PostRepository{Repository: repo}
}

// ListByPlatform retrieves the ranked posts for a platform, rank ascending
func (r *PostRepository) ListByPlatform(ctx context.Context, platform string) ([]models.TopPost, error) {
	var posts []models.TopPost
	err := r.db.WithContext(ctx).
		Where("platform = ?", platform).
		Order("rank ASC").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// Upsert inserts or updates a post keyed by (platform, rank)
func (r *PostRepository) Upsert(ctx context.Context, post *models.TopPost) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "platform"}, {Name: "rank"}},
		UpdateAll: true,
	}).Create(post).Error
}

// DeleteByRank removes the post occupying one rank slot
func (r *PostRepository) DeleteByRank(ctx context.Context, platform string, rank int) error {
	return r.db.WithContext(ctx).
		Where("platform = ? AND rank = ?", platform, rank).
		Delete(&models.TopPost{}).Error
}

// ListRaw retrieves the ranked posts for a platform as raw maps, rank ascending
func (r *PostRepository) ListRaw(ctx context.Context, platform string) ([]map[string]interface{}, error) {
	var rows []map[string]interface{}
	err := r.db.WithContext(ctx).
		Table(models.TopPost{}.TableName()).
		Where("platform = ?", platform).
		Order("rank ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// AssetRepository provides brand_assets database operations
type AssetRepository struct {
	*Repository
}

// NewAssetRepository creates a new asset repository
func NewAssetRepository(repo *Repository) *AssetRepository {
	return &AssetRepository{Repository: repo}
}

// List retrieves every brand asset as a key→value map
func (r *AssetRepository) List(ctx context.Context) (map[string]string, error) {
	var assets []models.BrandAsset
	if err := r.db.WithContext(ctx).Find(&assets).Error; err != nil {
		return nil, err
	}
	out := make(map[string]string, len(assets))
	for _, a := range assets {
		if a.Key != "" {
			out[a.Key] = a.Value
		}
	}
	return out, nil
}

// Upsert inserts or updates one asset keyed by key
func (r *AssetRepository) Upsert(ctx context.Context, asset *models.BrandAsset) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		UpdateAll: true,
	}).Create(asset).Error
}
