package models

import (
	"time"

	"gorm.io/datatypes"
)

// AgeBrackets are the fixed age distribution buckets shown on the site
var AgeBrackets = []string{"18-24", "25-34", "35-44", "45-54"}

// PlatformAudience holds the audience demographics for one platform.
//
// Gender and age percentages are stored independently and are not
// required to sum to 100; partial survey data is accepted as-is.
type PlatformAudience struct {
	ID       int64  `gorm:"primaryKey;autoIncrement;column:id"`
	Platform string `gorm:"type:varchar(32);not null;uniqueIndex:platform_audience_ux1;column:platform"`

	// Gender split, keys "men"/"women"
	Gender datatypes.JSONMap `gorm:"type:jsonb;column:gender"`
	// Age distribution, keys "18-24".."45-54"
	AgeGroups datatypes.JSONMap `gorm:"type:jsonb;column:age_groups"`
	// Ranked lists of {label, pct} objects, display-capped to 3
	Countries datatypes.JSON `gorm:"type:jsonb;column:countries"`
	Cities    datatypes.JSON `gorm:"type:jsonb;column:cities"`

	UpdatedAt time.Time `gorm:"not null;column:updated_at"`
}

// TableName specifies the table name for PlatformAudience
func (PlatformAudience) TableName() string {
	return "platform_audience"
}
