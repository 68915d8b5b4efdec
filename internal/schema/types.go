package schema

import "strings"

// EditorType describes which form input a field should render with.
type EditorType string

const (
	TypeText     EditorType = "text"
	TypeEmail    EditorType = "email"
	TypeURL      EditorType = "url"
	TypeTextarea EditorType = "textarea"
)

// InferType picks an editor type from a field's label and key. ZIP code
// fields are always plain text so leading zeros survive entry and export.
func InferType(label, key string) EditorType {
	l := strings.ToLower(label + " " + key)
	if strings.Contains(l, "zip") {
		return TypeText
	}
	if strings.Contains(l, "email") {
		return TypeEmail
	}
	if strings.Contains(l, "url") || strings.Contains(l, "link") || strings.Contains(l, "http") {
		return TypeURL
	}
	if strings.Contains(l, "notes") {
		return TypeTextarea
	}
	return TypeText
}

// ValueKind is the storage-level type a column holds. It drives coercion on
// every write path: form submits, updates, and CSV import all funnel string
// input through the same classification.
type ValueKind int

const (
	KindText ValueKind = iota
	KindBool
	KindNumber
	KindDate
)

var boolKeys = map[string]struct{}{
	"website_could_not_access":  {},
	"linkedin_unclaimed_page":   {},
	"linkedin_could_not_access": {},
	"bbb_accredited":            {},
	"bbb_could_not_access":      {},
	"google_could_not_access":   {},
	"ppp_could_not_access":      {},
	"sos_could_not_access":      {},
}

var numberKeys = map[string]struct{}{
	"website_locations":         {},
	"website_year_founded":      {},
	"website_employees":         {},
	"linkedin_followers":        {},
	"linkedin_members":          {},
	"ppp_jobs_retained":         {},
	"ppp_total_loan_size":       {},
	"ppp_loan_size_1":           {},
	"ppp_loan_payroll_amount_1": {},
	"ppp_loan_size_2":           {},
	"ppp_loan_payroll_amount_2": {},
	"google_reviews":            {},
	"google_rating":             {},
	"sos_year_founded":          {},
}

var dateKeys = map[string]struct{}{
	"bbb_business_started": {},
}

// KindOf returns the storage kind for a key. Unrecognized keys are text.
func KindOf(key string) ValueKind {
	if _, ok := boolKeys[key]; ok {
		return KindBool
	}
	if _, ok := numberKeys[key]; ok {
		return KindNumber
	}
	if _, ok := dateKeys[key]; ok {
		return KindDate
	}
	return KindText
}

// TypeHint renders the documentation string placed in the second row of the
// downloadable CSV template. It is never parsed back on upload.
func TypeHint(key string) string {
	switch KindOf(key) {
	case KindBool:
		return "Boolean (TRUE/FALSE)"
	case KindNumber:
		return "Number (e.g. 50000)"
	case KindDate:
		return "Date (YYYY-MM-DD)"
	}
	if strings.HasSuffix(key, "_year") {
		return "Year (YYYY)"
	}
	if InferType(Label(key), key) == TypeURL {
		return "URL (https://example.com)"
	}
	return "Text (enter value)"
}
