package schema

import (
	"regexp"
	"strings"
)

var (
	nonWordRun    = regexp.MustCompile(`[^A-Za-z0-9_]+`)
	underscoreRun = regexp.MustCompile(`_+`)
)

// ToKey converts a human field label into its storage-safe column key.
// "#" becomes "num" so numbered labels like "PPP Loan Size (1)" and legacy
// "(#1)" spellings collapse into stable keys.
func ToKey(label string) string {
	key := strings.ReplaceAll(label, "#", "num")
	key = nonWordRun.ReplaceAllString(key, "_")
	key = underscoreRun.ReplaceAllString(key, "_")
	key = strings.Trim(key, "_")
	return strings.ToLower(key)
}

// ToLabel derives a display label from a storage key. This is a lossy
// inverse of ToKey: punctuation like ":" or "()" is not restored, so the
// curated label table must be preferred wherever one exists.
func ToLabel(key string) string {
	words := strings.Split(key, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// ResolveKey maps an incoming header or payload key, which may be a curated
// label, a storage key, or an arbitrary variant of either, onto a storage
// key. Exact matches win, then case-insensitive label matches, then the
// derived ToKey form. The boolean reports whether the result is a key the
// registry knows about.
func ResolveKey(input string) (string, bool) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return "", false
	}
	if _, ok := fieldByKey[trimmed]; ok {
		return trimmed, true
	}
	if key, ok := keyByLabel[trimmed]; ok {
		return key, true
	}
	lowered := strings.ToLower(trimmed)
	if key, ok := keyByLabelFolded[lowered]; ok {
		return key, true
	}
	derived := ToKey(trimmed)
	_, known := fieldByKey[derived]
	return derived, known
}

// Label returns the curated label for a key, falling back to the derived
// ToLabel form for keys the registry does not track.
func Label(key string) string {
	if f, ok := fieldByKey[key]; ok {
		return f.Label
	}
	return ToLabel(key)
}
