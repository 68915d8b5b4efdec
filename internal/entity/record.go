package entity

import (
	"time"

	"github.com/google/uuid"
)

// CompanyRecord is one row of the company_data table: a surrogate id, audit
// metadata, and the flat bag of business fields keyed by storage column.
// Field values are string, float64, bool, time.Time, or nil depending on the
// column's registered kind.
type CompanyRecord struct {
	ID        int64          `json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	CreatedBy *uuid.UUID     `json:"created_by,omitempty"`
	Fields    map[string]any `json:"fields"`
}

// User represents an authenticated staff member.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
