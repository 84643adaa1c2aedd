package models

import (
	"database/sql"
	"time"
)

// MaxPostRank bounds the ranked top-post slots (ranks 1..4)
const MaxPostRank = 4

// TopPost represents one ranked top-post slot. A (platform, rank) pair
// holds at most one post at a time; saves upsert-merge on that key.
type TopPost struct {
	ID       int64  `gorm:"primaryKey;autoIncrement;column:id"`
	Platform string `gorm:"type:varchar(32);not null;uniqueIndex:top_posts_ux1;column:platform"`
	Rank     int    `gorm:"not null;uniqueIndex:top_posts_ux1;column:rank"`

	URL      string         `gorm:"type:varchar(1024);not null;column:url"`
	Caption  sql.NullString `gorm:"type:text;column:caption"`
	ImageURL sql.NullString `gorm:"type:varchar(1024);column:image_url"`

	Likes    sql.NullInt64 `gorm:"column:likes"`
	Comments sql.NullInt64 `gorm:"column:comments"`
	Shares   sql.NullInt64 `gorm:"column:shares"`
	Saves    sql.NullInt64 `gorm:"column:saves"`

	Reach       sql.NullInt64 `gorm:"column:reach"`
	Impressions sql.NullInt64 `gorm:"column:impressions"`

	UpdatedAt time.Time `gorm:"not null;column:updated_at"`
}

// TableName specifies the table name for TopPost
func (TopPost) TableName() string {
	return "top_posts"
}
