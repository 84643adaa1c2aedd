package models

// Brand asset keys, the full fixed set the site renders
const (
	AssetHero         = "hero"
	AssetProfile      = "profile"
	AssetAboutTitle   = "about_title"
	AssetAboutBody    = "about_body"
	AssetHeroTitle    = "hero_title"
	AssetHeroSubtitle = "hero_subtitle"
)

// AssetKeys lists every valid brand asset key
var AssetKeys = []string{
	AssetHero,
	AssetProfile,
	AssetAboutTitle,
	AssetAboutBody,
	AssetHeroTitle,
	AssetHeroSubtitle,
}

// ValidAssetKey reports whether key belongs to the fixed asset set
func ValidAssetKey(key string) bool {
	for _, k := range AssetKeys {
		if k == key {
			return true
		}
	}
	return false
}

// BrandAsset maps one fixed key to a URL or text value, unique per key
type BrandAsset struct {
	ID    int64  `gorm:"primaryKey;autoIncrement;column:id"`
	Key   string `gorm:"type:varchar(32);not null;uniqueIndex:brand_assets_ux1;column:key"`
	Value string `gorm:"type:text;not null;default:'';column:value"`
}

// TableName specifies the table name for BrandAsset
func (BrandAsset) TableName() string {
	return "brand_assets"
}
