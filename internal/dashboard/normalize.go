package dashboard

import (
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/embermedia/creatorsite/internal/models"
)

// Alias priority tables. Older schema versions renamed several columns;
// resolution is first-match-wins, and unparseable values resolve to the
// field's default instead of erroring.
var (
	followersAliases    = []string{"followers", "follower_count", "followers_count"}
	monthlyViewsAliases = []string{"monthly_views", "views", "view_count"}
	engagementAliases   = []string{"engagement", "engagement_rate"}

	followersDeltaAliases    = []string{"followers_delta"}
	monthlyViewsDeltaAliases = []string{"views_delta", "monthly_views_delta"}
	engagementDeltaAliases   = []string{"engagement_delta"}

	genderAliases    = []string{"gender", "gender_split"}
	ageGroupsAliases = []string{"age_groups", "age_brackets"}
	countriesAliases = []string{"countries", "top_countries"}
	citiesAliases    = []string{"cities", "top_cities"}

	entryLabelAliases = []string{"label", "country", "city", "name", "title"}
	entryValueAliases = []string{"pct", "percentage", "value"}

	imageURLAliases = []string{"image_url", "thumbnail", "image"}
)

// rankedListLen is the fixed display length of country/city lists
const rankedListLen = 3

// NormalizeStats picks the row for the given platform out of raw stats
// rows and shapes it. Missing row or fields resolve to zeroes.
func NormalizeStats(rows []map[string]interface{}, platform string) Stats {
	var row map[string]interface{}
	for _, r := range rows {
		if asString(r["platform"]) == platform {
			row = r
			break
		}
	}
	if row == nil {
		return Stats{}
	}

	return Stats{
		Followers:         pickInt(row, followersAliases),
		MonthlyViews:      pickInt(row, monthlyViewsAliases),
		Engagement:        pickFloat(row, engagementAliases),
		FollowersDelta:    pickFloatPtr(row, followersDeltaAliases),
		MonthlyViewsDelta: pickFloatPtr(row, monthlyViewsDeltaAliases),
		EngagementDelta:   pickFloatPtr(row, engagementDeltaAliases),
		UpdatedAt:         asString(row["updated_at"]),
	}
}

// NormalizeAudience shapes a raw audience row. A nil/empty row resolves
// to a nil view (the UI renders its empty state).
func NormalizeAudience(row map[string]interface{}) *Audience {
	if len(row) == 0 {
		return nil
	}

	gender := pickObject(row, genderAliases)
	ages := pickObject(row, ageGroupsAliases)

	ageGroups := make(map[string]*float64, len(models.AgeBrackets))
	for _, bracket := range models.AgeBrackets {
		underscored := strings.ReplaceAll(bracket, "-", "_")
		ageGroups[bracket] = pickFloatPtr(ages, []string{bracket, underscored})
	}

	return &Audience{
		Men:       pickFloatPtr(gender, []string{"men", "male"}),
		Women:     pickFloatPtr(gender, []string{"women", "female"}),
		AgeGroups: ageGroups,
		Countries: normalizeRankedList(pickList(row, countriesAliases)),
		Cities:    normalizeRankedList(pickList(row, citiesAliases)),
		UpdatedAt: asString(row["updated_at"]),
	}
}

// NormalizePosts shapes raw top-post rows, preserving input order
func NormalizePosts(rows []map[string]interface{}) []Post {
	posts := make([]Post, 0, len(rows))
	for _, row := range rows {
		posts = append(posts, Post{
			Rank:        int(pickInt(row, []string{"rank"})),
			URL:         asString(row["url"]),
			Caption:     asString(row["caption"]),
			ImageURL:    asString(pickRaw(row, imageURLAliases)),
			Likes:       pickIntPtr(row, []string{"likes"}),
			Comments:    pickIntPtr(row, []string{"comments"}),
			Shares:      pickIntPtr(row, []string{"shares"}),
			Saves:       pickIntPtr(row, []string{"saves"}),
			Reach:       pickIntPtr(row, []string{"reach"}),
			Impressions: pickIntPtr(row, []string{"impressions"}),
			UpdatedAt:   asString(row["updated_at"]),
		})
	}
	return posts
}

// NormalizeAssets copies the asset map, dropping empty keys
func NormalizeAssets(assets map[string]string) map[string]string {
	out := make(map[string]string, len(assets))
	for k, v := range assets {
		if k != "" {
			out[k] = v
		}
	}
	return out
}

// normalizeRankedList caps/pads a ranked label/pct list to exactly
// rankedListLen entries, preserving input order
func normalizeRankedList(list []interface{}) []RankedEntry {
	out := make([]RankedEntry, 0, rankedListLen)
	for _, item := range list {
		if len(out) == rankedListLen {
			break
		}
		obj := asObject(item)
		out = append(out, RankedEntry{
			Label: asString(pickRaw(obj, entryLabelAliases)),
			Pct:   pickFloatPtr(obj, entryValueAliases),
		})
	}
	for len(out) < rankedListLen {
		out = append(out, RankedEntry{})
	}
	return out
}

// pickRaw returns the first present value across the alias list
func pickRaw(row map[string]interface{}, aliases []string) interface{} {
	for _, key := range aliases {
		if v, ok := row[key]; ok && v != nil {
			return v
		}
	}
	return nil
}

// pickInt resolves a count field, defaulting to 0
func pickInt(row map[string]interface{}, aliases []string) int64 {
	for _, key := range aliases {
		if v, ok := row[key]; ok && v != nil {
			if n, ok := asInt(v); ok {
				return n
			}
		}
	}
	return 0
}

// pickIntPtr resolves a nullable count field, defaulting to nil
func pickIntPtr(row map[string]interface{}, aliases []string) *int64 {
	for _, key := range aliases {
		if v, ok := row[key]; ok && v != nil {
			if n, ok := asInt(v); ok {
				return &n
			}
		}
	}
	return nil
}

// pickFloat resolves a numeric field, defaulting to 0
func pickFloat(row map[string]interface{}, aliases []string) float64 {
	for _, key := range aliases {
		if v, ok := row[key]; ok && v != nil {
			if f, ok := asFloat(v); ok {
				return f
			}
		}
	}
	return 0
}

// pickFloatPtr resolves a nullable percentage/delta, defaulting to nil
func pickFloatPtr(row map[string]interface{}, aliases []string) *float64 {
	for _, key := range aliases {
		if v, ok := row[key]; ok && v != nil {
			if f, ok := asFloat(v); ok {
				return &f
			}
		}
	}
	return nil
}

// pickObject resolves a nested object field, tolerating jsonb scan
// shapes (map, string, []byte)
func pickObject(row map[string]interface{}, aliases []string) map[string]interface{} {
	return asObject(pickRaw(row, aliases))
}

// pickList resolves a nested list field
func pickList(row map[string]interface{}, aliases []string) []interface{} {
	return asList(pickRaw(row, aliases))
}

func asInt(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case float64:
		return int64(n), true
	case float32:
		return int64(n), true
	case json.Number:
		if f, err := n.Float64(); err == nil {
			return int64(f), true
		}
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
			return int64(f), true
		}
	case []byte:
		return asInt(string(n))
	}
	return 0, false
}

func asFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case json.Number:
		if f, err := n.Float64(); err == nil {
			return f, true
		}
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
			return f, true
		}
	case []byte:
		return asFloat(string(n))
	}
	return 0, false
}

func asString(v interface{}) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case []byte:
		return string(s)
	case time.Time:
		return s.UTC().Format(time.RFC3339)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(s, 10)
	case int:
		return strconv.Itoa(s)
	case bool:
		return strconv.FormatBool(s)
	}
	return ""
}

// asObject coerces map, JSON string or JSON bytes into a map.
// Anything else resolves to an empty map.
func asObject(v interface{}) map[string]interface{} {
	switch o := v.(type) {
	case map[string]interface{}:
		return o
	case string:
		return decodeObject([]byte(o))
	case []byte:
		return decodeObject(o)
	}
	return map[string]interface{}{}
}

// asList coerces slice, JSON string or JSON bytes into a slice
func asList(v interface{}) []interface{} {
	switch l := v.(type) {
	case []interface{}:
		return l
	case []map[string]interface{}:
		out := make([]interface{}, len(l))
		for i, item := range l {
			out[i] = item
		}
		return out
	case string:
		return decodeList([]byte(l))
	case []byte:
		return decodeList(l)
	}
	return nil
}

func decodeObject(raw []byte) map[string]interface{} {
	var out map[string]interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return map[string]interface{}{}
	}
	return out
}

func decodeList(raw []byte) []interface{} {
	var out []interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}
