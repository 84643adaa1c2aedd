package models

import (
	"database/sql"
	"time"
)

// DefaultPlatform is the fixed platform discriminator every query is
// scoped by. The site serves exactly one creator's Instagram account.
const DefaultPlatform = "instagram"

// PlatformStat holds the headline KPIs for one platform
type PlatformStat struct {
	ID       int64  `gorm:"primaryKey;autoIncrement;column:id"`
	Platform string `gorm:"type:varchar(32);not null;uniqueIndex:platform_stats_ux1;column:platform"`

	Followers    int64   `gorm:"not null;default:0;column:followers"`
	MonthlyViews int64   `gorm:"not null;default:0;column:monthly_views"`
	Engagement   float64 `gorm:"type:decimal(6,2);not null;default:0;column:engagement"`

	// Period-over-period deltas, optional
	FollowersDelta    sql.NullFloat64 `gorm:"column:followers_delta"`
	MonthlyViewsDelta sql.NullFloat64 `gorm:"column:monthly_views_delta"`
	EngagementDelta   sql.NullFloat64 `gorm:"column:engagement_delta"`

	UpdatedAt time.Time `gorm:"not null;column:updated_at"`
}

// TableName specifies the table name for PlatformStat
func (PlatformStat) TableName() string {
	return "platform_stats"
}
