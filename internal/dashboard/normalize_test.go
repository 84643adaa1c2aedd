package dashboard

import (
	"testing"

	"github.com/embermedia/creatorsite/internal/models"
)

func TestNormalizeStats(t *testing.T) {
	tests := []struct {
		name     string
		rows     []map[string]interface{}
		expected Stats
	}{
		{
			name: "canonical columns",
			rows: []map[string]interface{}{
				{
					"platform":     "instagram",
					"followers":    int64(12500),
					"monthly_views": int64(340000),
					"engagement":   4.2,
				},
			},
			expected: Stats{Followers: 12500, MonthlyViews: 340000, Engagement: 4.2},
		},
		{
			name: "legacy column names",
			rows: []map[string]interface{}{
				{
					"platform":        "instagram",
					"follower_count":  "1200",
					"view_count":      45000.0,
					"engagement_rate": "3.8",
				},
			},
			expected: Stats{Followers: 1200, MonthlyViews: 45000, Engagement: 3.8},
		},
		{
			name: "canonical wins over legacy",
			rows: []map[string]interface{}{
				{
					"platform":       "instagram",
					"followers":      int64(100),
					"follower_count": int64(999),
				},
			},
			expected: Stats{Followers: 100},
		},
		{
			name: "unparseable values fall back to zero",
			rows: []map[string]interface{}{
				{
					"platform":   "instagram",
					"followers":  "abc",
					"engagement": map[string]interface{}{},
				},
			},
			expected: Stats{},
		},
		{
			name: "row for other platform is ignored",
			rows: []map[string]interface{}{
				{"platform": "tiktok", "followers": int64(77)},
			},
			expected: Stats{},
		},
		{
			name:     "no rows",
			rows:     nil,
			expected: Stats{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeStats(tt.rows, models.DefaultPlatform)
			if got.Followers != tt.expected.Followers {
				t.Errorf("followers = %d, want %d", got.Followers, tt.expected.Followers)
			}
			if got.MonthlyViews != tt.expected.MonthlyViews {
				t.Errorf("monthly views = %d, want %d", got.MonthlyViews, tt.expected.MonthlyViews)
			}
			if got.Engagement != tt.expected.Engagement {
				t.Errorf("engagement = %v, want %v", got.Engagement, tt.expected.Engagement)
			}
		})
	}
}

func TestNormalizeStats_Deltas(t *testing.T) {
	row := map[string]interface{}{
		"platform":    "instagram",
		"views_delta": 2.5,
	}
	got := NormalizeStats([]map[string]interface{}{row}, models.DefaultPlatform)

	if got.MonthlyViewsDelta == nil || *got.MonthlyViewsDelta != 2.5 {
		t.Errorf("views delta = %v, want 2.5", got.MonthlyViewsDelta)
	}
	if got.FollowersDelta != nil {
		t.Errorf("followers delta = %v, want nil", *got.FollowersDelta)
	}
}

func TestNormalizeAudience(t *testing.T) {
	if got := NormalizeAudience(nil); got != nil {
		t.Fatalf("nil row should normalize to nil, got %+v", got)
	}

	row := map[string]interface{}{
		"gender": map[string]interface{}{"male": 38.0, "female": 62.0},
		"age_groups": map[string]interface{}{
			"18_24": 31.0,
			"25-34": 44.0,
		},
		"countries": []interface{}{
			map[string]interface{}{"country": "Germany", "percentage": 41.0},
			map[string]interface{}{"label": "Austria", "pct": 12.0},
			map[string]interface{}{"name": "Switzerland", "value": 8.0},
			map[string]interface{}{"label": "France", "pct": 5.0},
			map[string]interface{}{"label": "Italy", "pct": 4.0},
		},
		"cities": []interface{}{
			map[string]interface{}{"city": "Berlin", "pct": 14.0},
		},
	}

	got := NormalizeAudience(row)
	if got == nil {
		t.Fatal("expected audience, got nil")
	}

	if got.Men == nil || *got.Men != 38.0 {
		t.Errorf("men = %v, want 38", got.Men)
	}
	if got.Women == nil || *got.Women != 62.0 {
		t.Errorf("women = %v, want 62", got.Women)
	}

	if v := got.AgeGroups["18-24"]; v == nil || *v != 31.0 {
		t.Errorf("underscored age bracket not resolved: %v", v)
	}
	if v := got.AgeGroups["25-34"]; v == nil || *v != 44.0 {
		t.Errorf("age bracket 25-34 = %v, want 44", v)
	}
	if v, ok := got.AgeGroups["45-54"]; !ok || v != nil {
		t.Errorf("missing bracket should be present and nil, got %v (present %v)", v, ok)
	}

	if len(got.Countries) != 3 {
		t.Fatalf("countries should cap at 3, got %d", len(got.Countries))
	}
	wantLabels := []string{"Germany", "Austria", "Switzerland"}
	for i, want := range wantLabels {
		if got.Countries[i].Label != want {
			t.Errorf("countries[%d] = %q, want %q", i, got.Countries[i].Label, want)
		}
	}

	if len(got.Cities) != 3 {
		t.Fatalf("cities should pad to 3, got %d", len(got.Cities))
	}
	if got.Cities[0].Label != "Berlin" {
		t.Errorf("cities[0] = %q, want Berlin", got.Cities[0].Label)
	}
	if got.Cities[1].Label != "" || got.Cities[1].Pct != nil {
		t.Errorf("padded city entry should be empty, got %+v", got.Cities[1])
	}
}

func TestNormalizeAudience_JSONBScanShapes(t *testing.T) {
	// jsonb columns come back as raw bytes or strings through some scan
	// paths; nested objects still have to resolve.
	row := map[string]interface{}{
		"gender_split": []byte(`{"men": 55, "women": 45}`),
		"top_countries": `[{"label": "Spain", "pct": 20}]`,
	}

	got := NormalizeAudience(row)
	if got == nil {
		t.Fatal("expected audience, got nil")
	}
	if got.Men == nil || *got.Men != 55 {
		t.Errorf("men = %v, want 55", got.Men)
	}
	if got.Countries[0].Label != "Spain" {
		t.Errorf("countries[0] = %q, want Spain", got.Countries[0].Label)
	}
}

func TestNormalizePosts(t *testing.T) {
	rows := []map[string]interface{}{
		{
			"rank":      int64(1),
			"url":       "https://example.com/p/1",
			"caption":   "first",
			"thumbnail": "https://cdn.example.com/1.jpg",
			"likes":     int64(1200),
			"comments":  "abc",
		},
		{
			"rank":      int64(2),
			"url":       "https://example.com/p/2",
			"image_url": "https://cdn.example.com/2.jpg",
		},
	}

	got := NormalizePosts(rows)
	if len(got) != 2 {
		t.Fatalf("expected 2 posts, got %d", len(got))
	}

	if got[0].Rank != 1 || got[0].ImageURL != "https://cdn.example.com/1.jpg" {
		t.Errorf("thumbnail alias not resolved: %+v", got[0])
	}
	if got[0].Likes == nil || *got[0].Likes != 1200 {
		t.Errorf("likes = %v, want 1200", got[0].Likes)
	}
	if got[0].Comments != nil {
		t.Errorf("unparseable comments should be nil, got %v", *got[0].Comments)
	}
	if got[1].ImageURL != "https://cdn.example.com/2.jpg" {
		t.Errorf("image_url = %q", got[1].ImageURL)
	}
}

func TestNormalizeAssets(t *testing.T) {
	got := NormalizeAssets(map[string]string{
		"hero":       "https://cdn.example.com/hero.jpg",
		"":           "dropped",
		"hero_title": "",
	})

	if _, ok := got[""]; ok {
		t.Error("empty key should be dropped")
	}
	if got["hero"] != "https://cdn.example.com/hero.jpg" {
		t.Errorf("hero = %q", got["hero"])
	}
	if v, ok := got["hero_title"]; !ok || v != "" {
		t.Errorf("empty value should survive, got %q (present %v)", v, ok)
	}
}
