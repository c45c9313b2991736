// Package unified implements the ios 7 style unified receipt format: typed
// access to the raw attribute maps returned by Apple's verification server and
// the reconciliation of their overlapping transaction collections into
// per-subscription histories.
package unified

import (
	"strconv"
	"strings"
	"time"
)

// dateLayout is the vendor date format minus its trailing zone name,
// e.g. "2017-12-14 16:54:33 Etc/GMT".
const dateLayout = "2006-01-02 15:04:05"

// Attributes is one loosely typed entry of a verification response, as decoded
// from JSON. All readers degrade to an absent value on missing or malformed
// data; they never fail.
type Attributes map[string]interface{}

// Has reports whether the key is present with a non-nil value.
func (a Attributes) Has(key string) bool {
	v, ok := a[key]
	return ok && v != nil
}

// Read returns the string value for key, or "" when absent or not a string.
func (a Attributes) Read(key string) string {
	if s, ok := a[key].(string); ok {
		return s
	}
	return ""
}

// ReadInteger parses the value for key as a decimal integer. The vendor
// serializes numbers as strings, but documents decoded with encoding/json may
// also carry native numbers.
func (a Attributes) ReadInteger(key string) (int, bool) {
	switch v := a[key].(type) {
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, false
		}
		return n, true
	case float64:
		return int(v), true
	case int:
		return v, true
	default:
		return 0, false
	}
}

// ReadBool parses the value for key as a boolean. The vendor serializes
// booleans as the literal strings "true"/"false".
func (a Attributes) ReadBool(key string) (bool, bool) {
	switch v := a[key].(type) {
	case string:
		if strings.EqualFold(v, "true") {
			return true, true
		}
		if strings.EqualFold(v, "false") {
			return false, true
		}
		return false, false
	case bool:
		return v, true
	default:
		return false, false
	}
}

// ReadTime parses the value for key as a vendor date string
// ("YYYY-MM-DD HH:MM:SS <zone-name>") and returns the instant in UTC.
// Unknown zone names fall back to UTC; the vendor only emits UTC-equivalent
// zones.
func (a Attributes) ReadTime(key string) (time.Time, bool) {
	raw := a.Read(key)
	if raw == "" {
		return time.Time{}, false
	}

	datetime := raw
	loc := time.UTC
	if parts := strings.SplitN(raw, " ", 3); len(parts) == 3 {
		datetime = parts[0] + " " + parts[1]
		if parsed, err := time.LoadLocation(parts[2]); err == nil {
			loc = parsed
		}
	}

	ts, err := time.ParseInLocation(dateLayout, datetime, loc)
	if err != nil {
		return time.Time{}, false
	}
	return ts.UTC(), true
}
