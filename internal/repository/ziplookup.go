package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// ErrZipNotFound indicates the lookup table has no MSA for the ZIP code.
var ErrZipNotFound = errors.New("zip code not found")

// ZipLookupRepository resolves ZIP codes to their Metropolitan Statistical
// Area using the internal zip_lookup table.
type ZipLookupRepository interface {
	MSA(ctx context.Context, zip string) (string, error)
}

// PGXZipLookupRepository implements ZipLookupRepository with pgx.
type PGXZipLookupRepository struct {
	pool pgxPool
}

// NewPGXZipLookupRepository wires a pgx backed lookup.
func NewPGXZipLookupRepository(pool pgxPool) *PGXZipLookupRepository {
	return &PGXZipLookupRepository{pool: pool}
}

// MSA returns the MSA name for a ZIP code.
func (r *PGXZipLookupRepository) MSA(ctx context.Context, zip string) (string, error) {
	var msa *string
	err := r.pool.QueryRow(ctx, "SELECT msa FROM zip_lookup WHERE zip_code = $1", zip).Scan(&msa)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrZipNotFound
		}
		return "", fmt.Errorf("lookup msa: %w", err)
	}
	if msa == nil || *msa == "" {
		return "", ErrZipNotFound
	}
	return *msa, nil
}
