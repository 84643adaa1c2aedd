package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/embermedia/creatorsite/internal/db"
	"github.com/embermedia/creatorsite/internal/models"
	"github.com/embermedia/creatorsite/pkg/config"
	"github.com/embermedia/creatorsite/pkg/logging"
)

// Seeds the database with demo content so the site renders something
// before the first admin edit. Safe to run repeatedly: every write is
// an upsert on the record's natural key.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logging.InitLogger(&cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logging.GetLogger().Sync()

	logger := logging.GetLogger()
	logger.Info("Seeding creatorsite database")

	database, err := db.New(&cfg.Database, cfg.Logging.Level)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close()

	if err := database.Migrate(); err != nil {
		logger.Fatal("Failed to migrate database schema", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := seed(ctx, db.NewRepository(database.DB)); err != nil {
		logger.Fatal("Seeding failed", zap.Error(err))
	}

	logger.Info("Seeding complete")
}

func seed(ctx context.Context, repo *db.Repository) error {
	now := time.Now().UTC()

	stats := db.NewStatsRepository(repo)
	if err := stats.Upsert(ctx, &models.PlatformStat{
		Platform:       models.DefaultPlatform,
		Followers:      420_000,
		MonthlyViews:   1_250_000,
		Engagement:     4.2,
		FollowersDelta: sql.NullFloat64{Float64: 2.4, Valid: true},
		UpdatedAt:      now,
	}); err != nil {
		return fmt.Errorf("seed stats: %w", err)
	}

	countries, err := json.Marshal([]map[string]interface{}{
		{"label": "United States", "pct": 38.0},
		{"label": "United Kingdom", "pct": 12.5},
		{"label": "Canada", "pct": 9.0},
	})
	if err != nil {
		return err
	}
	cities, err := json.Marshal([]map[string]interface{}{
		{"label": "New York", "pct": 8.0},
		{"label": "London", "pct": 6.5},
		{"label": "Toronto", "pct": 4.0},
	})
	if err != nil {
		return err
	}

	audience := db.NewAudienceRepository(repo)
	if err := audience.Upsert(ctx, &models.PlatformAudience{
		Platform:  models.DefaultPlatform,
		Gender:    datatypes.JSONMap{"men": 34.0, "women": 66.0},
		AgeGroups: datatypes.JSONMap{"18-24": 22.0, "25-34": 41.0, "35-44": 24.0, "45-54": 9.0},
		Countries: datatypes.JSON(countries),
		Cities:    datatypes.JSON(cities),
		UpdatedAt: now,
	}); err != nil {
		return fmt.Errorf("seed audience: %w", err)
	}

	posts := db.NewPostRepository(repo)
	for rank := 1; rank <= models.MaxPostRank; rank++ {
		if err := posts.Upsert(ctx, &models.TopPost{
			Platform:  models.DefaultPlatform,
			Rank:      rank,
			URL:       fmt.Sprintf("https://www.instagram.com/p/demo-%d/", rank),
			Likes:     sql.NullInt64{Int64: int64(50_000 / rank), Valid: true},
			Comments:  sql.NullInt64{Int64: int64(1_200 / rank), Valid: true},
			UpdatedAt: now,
		}); err != nil {
			return fmt.Errorf("seed post %d: %w", rank, err)
		}
	}

	assets := db.NewAssetRepository(repo)
	defaults := map[string]string{
		models.AssetHeroTitle:    "Stories worth scrolling for",
		models.AssetHeroSubtitle: "Travel, food and everyday life with a camera in hand",
		models.AssetAboutTitle:   "About",
		models.AssetAboutBody:    "Creator, photographer and storyteller.",
	}
	for key, value := range defaults {
		if err := assets.Upsert(ctx, &models.BrandAsset{Key: key, Value: value}); err != nil {
			return fmt.Errorf("seed asset %s: %w", key, err)
		}
	}

	return nil
}
