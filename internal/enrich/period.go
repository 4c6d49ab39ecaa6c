package enrich

import (
	"math"
	"strconv"
)

// FormatPeriod turns a YYYYMM period cell into "YYYY-MM".
//
// The cell is rendered as text and split at characters 4 and 6. Values
// shorter than six characters yield a truncated result ("2015" gives
// "2015-"). Nothing is range checked.
func FormatPeriod(v any) string {
	s := []rune(periodText(v))
	return string(s[:min(4, len(s))]) + "-" + string(s[min(4, len(s)):min(6, len(s))])
}

func periodText(v any) string {
	switch x := v.(type) {
	case nil:
		return "nan"
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		if math.IsNaN(x) {
			return "nan"
		}
		s := strconv.FormatFloat(x, 'f', -1, 64)
		if x == math.Trunc(x) && math.Abs(x) < 1e16 {
			s += ".0"
		}
		return s
	case bool:
		if x {
			return "True"
		}
		return "False"
	default:
		return ""
	}
}
