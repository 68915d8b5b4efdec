package dto

import "time"

// RecordPayload is the raw field map submitted by create and update
// requests. Keys may be curated labels or storage keys; values are whatever
// the client sent and are normalized server-side.
type RecordPayload map[string]any

// RecordView is a record prepared for display: keys are curated labels and
// stored NULLs have been replaced with empty strings.
type RecordView map[string]any

// CreateRecordResponse returns the identifier of a newly created record.
type CreateRecordResponse struct {
	ID int64 `json:"id"`
}

// ImportRowError captures one failed CSV row with its 1-based data row
// number and the insert error message.
type ImportRowError struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

// ImportSummary reports the outcome of a bulk CSV import. A batch with
// failures is still a success; failed rows are listed for follow-up.
type ImportSummary struct {
	Inserted   int              `json:"inserted"`
	Failed     int              `json:"failed"`
	FailedRows []ImportRowError `json:"failedRows"`
}

// DashboardSummary is the fixed shape of the dashboard summary endpoint.
type DashboardSummary struct {
	TotalCompanies  int     `json:"totalCompanies"`
	AvgGoogleRating float64 `json:"avgGoogleRating"`
	AvgEmployees    int     `json:"avgEmployees"`
	TotalIndustries int     `json:"totalIndustries"`
	BBBAccredited   int     `json:"bbbAccredited"`
}

// HistogramBucket is one bar of a top-N distinct value histogram.
type HistogramBucket struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// RecentCompany is the narrow projection used by the dashboard's recent
// entries widget. Missing values render as "N/A".
type RecentCompany struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	City        string     `json:"city"`
	State       string     `json:"state"`
	Industry    string     `json:"industry"`
	LastUpdated *time.Time `json:"lastUpdated"`
}

// ZipInfo carries the city/state resolved from the public ZIP API plus the
// MSA from the internal lookup table.
type ZipInfo struct {
	Zip   string `json:"zip"`
	City  string `json:"city"`
	State string `json:"state"`
	MSA   string `json:"msa"`
}

// ActivityStats aggregates entry counts for one creator.
type ActivityStats struct {
	Email string `json:"email"`
	Total int    `json:"total"`
	Today int    `json:"today"`
	Week  int    `json:"week"`
	Month int    `json:"month"`
}

// SchemaField is one entry of the schema endpoint used to build forms.
type SchemaField struct {
	Section string `json:"section"`
	Label   string `json:"label"`
	Key     string `json:"key"`
	Type    string `json:"type"`
}

// SchemaResponse lists the visible fields and capability flags for the
// requesting role.
type SchemaResponse struct {
	Fields       []SchemaField   `json:"fields"`
	Capabilities map[string]bool `json:"capabilities"`
}

// FileInfo describes one stored attachment.
type FileInfo struct {
	Name     string    `json:"name"`
	Size     int64     `json:"size"`
	Category string    `json:"category"`
	Modified time.Time `json:"modified"`
}

// AutofillSocial groups the social profile URLs found on a company website.
type AutofillSocial struct {
	LinkedIn   string `json:"linkedin,omitempty"`
	Facebook   string `json:"facebook,omitempty"`
	Instagram  string `json:"instagram,omitempty"`
	Yelp       string `json:"yelp,omitempty"`
	GoogleMaps string `json:"google_maps,omitempty"`
}

// AutofillResult is the best-effort extraction from a company website used
// to pre-populate the entry form.
type AutofillResult struct {
	Website     string         `json:"website"`
	CompanyName string         `json:"company_name"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Emails      []string       `json:"emails"`
	Phones      []string       `json:"phones"`
	Social      AutofillSocial `json:"social"`
	FetchedAt   time.Time      `json:"fetched_at"`
}
