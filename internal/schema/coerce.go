package schema

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

var dateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	time.RFC3339,
}

// Coerce normalizes a raw field value into the storage representation for
// its column. Blank strings and placeholder tokens become nil, boolean and
// numeric columns get typed values, and anything unparseable for a typed
// column degrades to nil rather than failing the write.
func Coerce(key string, value any) any {
	switch v := value.(type) {
	case nil:
		return nil
	case string:
		return coerceString(key, v)
	case bool:
		if KindOf(key) == KindBool {
			return v
		}
		return strconv.FormatBool(v)
	case float64:
		if KindOf(key) == KindNumber {
			return v
		}
		return trimFloat(v)
	case int:
		if KindOf(key) == KindNumber {
			return float64(v)
		}
		return strconv.Itoa(v)
	case time.Time:
		return v
	default:
		return fmt.Sprint(v)
	}
}

func coerceString(key, raw string) any {
	trimmed := strings.TrimSpace(raw)
	if isPlaceholder(trimmed) {
		return nil
	}

	switch KindOf(key) {
	case KindBool:
		switch strings.ToLower(trimmed) {
		case "true", "yes", "1":
			return true
		case "false", "no", "0":
			return false
		}
		return nil
	case KindNumber:
		n, err := strconv.ParseFloat(strings.ReplaceAll(trimmed, ",", ""), 64)
		if err != nil {
			return nil
		}
		return n
	case KindDate:
		for _, layout := range dateLayouts {
			if ts, err := time.Parse(layout, trimmed); err == nil {
				return ts
			}
		}
		return nil
	}
	return trimmed
}

// isPlaceholder matches the tokens data-entry staff use for "no value".
func isPlaceholder(trimmed string) bool {
	switch strings.ToLower(trimmed) {
	case "", "n/a", "na", "-":
		return true
	}
	return false
}

func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
