package dashboard

// Stats is the normalized KPI view for the fixed platform
type Stats struct {
	Followers    int64   `json:"followers"`
	MonthlyViews int64   `json:"monthly_views"`
	Engagement   float64 `json:"engagement"`

	FollowersDelta    *float64 `json:"followers_delta"`
	MonthlyViewsDelta *float64 `json:"monthly_views_delta"`
	EngagementDelta   *float64 `json:"engagement_delta"`

	UpdatedAt string `json:"updated_at,omitempty"`
}

// RankedEntry is one label/percentage pair in a ranked demographic list.
// A nil Pct means the value was missing or unparseable and is rendered
// as an em-dash by the UI.
type RankedEntry struct {
	Label string   `json:"label"`
	Pct   *float64 `json:"pct"`
}

// Audience is the normalized demographics view. Percentages are passed
// through as stored; sums under or over 100 are accepted (partial
// survey data) and deliberately not validated here.
type Audience struct {
	Men   *float64 `json:"men"`
	Women *float64 `json:"women"`

	AgeGroups map[string]*float64 `json:"age_groups"`

	// Always exactly 3 entries, padded with empty placeholders
	Countries []RankedEntry `json:"countries"`
	Cities    []RankedEntry `json:"cities"`

	UpdatedAt string `json:"updated_at,omitempty"`
}

// Post is one normalized ranked top-post
type Post struct {
	Rank     int    `json:"rank"`
	URL      string `json:"url"`
	Caption  string `json:"caption,omitempty"`
	ImageURL string `json:"image_url,omitempty"`

	Likes    *int64 `json:"likes"`
	Comments *int64 `json:"comments"`
	Shares   *int64 `json:"shares"`
	Saves    *int64 `json:"saves"`

	Reach       *int64 `json:"reach,omitempty"`
	Impressions *int64 `json:"impressions,omitempty"`

	UpdatedAt string `json:"updated_at,omitempty"`
}

// Dashboard is the fully resolved view the site renders
type Dashboard struct {
	Stats    Stats             `json:"stats"`
	Audience *Audience         `json:"audience"`
	Posts    []Post            `json:"posts"`
	Assets   map[string]string `json:"assets"`
}
