package dashboard

import (
	"math"
	"strconv"
)

// FormatCount renders a metric count the way the site displays it:
// below 1000 the plain digits, thousands rounded to a whole "K",
// millions with one decimal "M".
func FormatCount(n int64) string {
	switch {
	case n >= 1_000_000:
		return strconv.FormatFloat(float64(n)/1_000_000, 'f', 1, 64) + "M"
	case n >= 1000:
		return strconv.FormatInt(int64(math.Round(float64(n)/1000)), 10) + "K"
	default:
		return strconv.FormatInt(n, 10)
	}
}
