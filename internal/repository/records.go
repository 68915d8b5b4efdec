package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/PritamDhobale/data-entry-webapp/internal/dto"
	"github.com/PritamDhobale/data-entry-webapp/internal/entity"
	"github.com/PritamDhobale/data-entry-webapp/internal/schema"
)

// ErrRecordNotFound indicates no company_data row matches the identifier.
var ErrRecordNotFound = errors.New("company record not found")

// pgxPool is the slice of pgxpool.Pool the repositories use, narrowed so
// tests can stub it.
type pgxPool interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

var _ pgxPool = (*pgxpool.Pool)(nil)

// CreationAudit is one (creator, timestamp) pair used by the activity view.
type CreationAudit struct {
	CreatedBy uuid.UUID
	CreatedAt time.Time
}

// RecordsRepository describes persistence operations for company records.
type RecordsRepository interface {
	Create(ctx context.Context, fields map[string]any, createdBy uuid.UUID) (int64, error)
	Get(ctx context.Context, id int64) (*entity.CompanyRecord, error)
	Update(ctx context.Context, id int64, fields map[string]any) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]entity.CompanyRecord, error)

	Count(ctx context.Context) (int, error)
	NumericAverage(ctx context.Context, key string) (float64, int, error)
	BooleanTrueCount(ctx context.Context, key string) (int, error)
	DistinctCount(ctx context.Context, key string) (int, error)
	Histogram(ctx context.Context, key string, limit int) ([]dto.HistogramBucket, error)
	TextValues(ctx context.Context, key string) ([]string, error)
	Recent(ctx context.Context, limit int) ([]dto.RecentCompany, error)
	CreationAudits(ctx context.Context) ([]CreationAudit, error)
}

// PGXRecordsRepository implements RecordsRepository against Postgres.
type PGXRecordsRepository struct {
	pool pgxPool
}

// NewPGXRecordsRepository wires a pgx backed repository.
func NewPGXRecordsRepository(pool *pgxpool.Pool) *PGXRecordsRepository {
	return &PGXRecordsRepository{pool: pool}
}

// Create inserts a new row and returns its identifier. Field keys must
// already be storage keys; anything outside the registry is rejected here as
// a final guard even though the service filters first.
func (r *PGXRecordsRepository) Create(ctx context.Context, fields map[string]any, createdBy uuid.UUID) (int64, error) {
	columns, args, err := orderedColumns(fields)
	if err != nil {
		return 0, err
	}

	columns = append(columns, "created_at", "created_by")
	args = append(args, time.Now().UTC(), createdBy)

	placeholders := make([]string, len(columns))
	for i := range columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	query := fmt.Sprintf(
		"INSERT INTO company_data (%s) VALUES (%s) RETURNING id",
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "),
	)

	var id int64
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert company record: %w", err)
	}
	return id, nil
}

// Get fetches a single row with all columns.
func (r *PGXRecordsRepository) Get(ctx context.Context, id int64) (*entity.CompanyRecord, error) {
	rows, err := r.pool.Query(ctx, "SELECT * FROM company_data WHERE id = $1", id)
	if err != nil {
		return nil, fmt.Errorf("fetch company record: %w", err)
	}
	defer rows.Close()

	records, err := scanRecords(rows)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrRecordNotFound
	}
	return &records[0], nil
}

// Update overwrites the given columns on one row. The id column never
// appears in the set clause; callers strip it and this builder has no way to
// emit it.
func (r *PGXRecordsRepository) Update(ctx context.Context, id int64, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	columns, args, err := orderedColumns(fields)
	if err != nil {
		return err
	}

	assignments := make([]string, len(columns))
	for i, col := range columns {
		assignments[i] = fmt.Sprintf("%s = $%d", col, i+1)
	}
	args = append(args, id)

	query := fmt.Sprintf(
		"UPDATE company_data SET %s WHERE id = $%d",
		strings.Join(assignments, ", "),
		len(args),
	)

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update company record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// Delete removes a row. Deleting an id that no longer exists is a success:
// the desired end state holds either way.
func (r *PGXRecordsRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.pool.Exec(ctx, "DELETE FROM company_data WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete company record: %w", err)
	}
	return nil
}

// List returns every row ordered by identifier descending. There is no
// pagination; row counts stay small enough for the reporting screens.
func (r *PGXRecordsRepository) List(ctx context.Context) ([]entity.CompanyRecord, error) {
	rows, err := r.pool.Query(ctx, "SELECT * FROM company_data ORDER BY id DESC")
	if err != nil {
		return nil, fmt.Errorf("list company records: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// Count returns the total number of records.
func (r *PGXRecordsRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM company_data").Scan(&count); err != nil {
		return 0, fmt.Errorf("count company records: %w", err)
	}
	return count, nil
}

// NumericAverage averages a numeric column over rows holding a value,
// returning the average and how many rows contributed. NULLs are excluded
// from both numerator and denominator.
func (r *PGXRecordsRepository) NumericAverage(ctx context.Context, key string) (float64, int, error) {
	if err := requireColumn(key); err != nil {
		return 0, 0, err
	}
	query := fmt.Sprintf("SELECT COALESCE(AVG(%s), 0), COUNT(%s) FROM company_data", key, key)

	var (
		avg   float64
		count int
	)
	if err := r.pool.QueryRow(ctx, query).Scan(&avg, &count); err != nil {
		return 0, 0, fmt.Errorf("average %s: %w", key, err)
	}
	return avg, count, nil
}

// BooleanTrueCount counts rows where a boolean column is true.
func (r *PGXRecordsRepository) BooleanTrueCount(ctx context.Context, key string) (int, error) {
	if err := requireColumn(key); err != nil {
		return 0, err
	}
	query := fmt.Sprintf("SELECT COUNT(*) FROM company_data WHERE %s IS TRUE", key)

	var count int
	if err := r.pool.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("count %s: %w", key, err)
	}
	return count, nil
}

// DistinctCount counts case-folded distinct non-blank values of a text
// column.
func (r *PGXRecordsRepository) DistinctCount(ctx context.Context, key string) (int, error) {
	if err := requireColumn(key); err != nil {
		return 0, err
	}
	query := fmt.Sprintf(
		"SELECT COUNT(DISTINCT LOWER(TRIM(%s))) FROM company_data WHERE NULLIF(TRIM(%s), '') IS NOT NULL",
		key, key,
	)

	var count int
	if err := r.pool.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("distinct count %s: %w", key, err)
	}
	return count, nil
}

// Histogram returns the top buckets of a text column by frequency. NULL rows
// are excluded before counting; rows that are present but blank group under
// "Unknown" for display.
func (r *PGXRecordsRepository) Histogram(ctx context.Context, key string, limit int) ([]dto.HistogramBucket, error) {
	if err := requireColumn(key); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 10
	}
	query := fmt.Sprintf(`
        SELECT CASE WHEN TRIM(%s) = '' THEN 'Unknown' ELSE TRIM(%s) END AS name, COUNT(*) AS value
        FROM company_data
        WHERE %s IS NOT NULL
        GROUP BY 1
        ORDER BY 2 DESC, 1 ASC
        LIMIT $1
    `, key, key, key)

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("histogram %s: %w", key, err)
	}
	defer rows.Close()

	var buckets []dto.HistogramBucket
	for rows.Next() {
		var b dto.HistogramBucket
		if err := rows.Scan(&b.Name, &b.Value); err != nil {
			return nil, fmt.Errorf("scan histogram bucket: %w", err)
		}
		buckets = append(buckets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate histogram: %w", err)
	}
	return buckets, nil
}

// TextValues returns all non-NULL values of a text column, for metrics that
// need parsing the database cannot do (employee estimate ranges).
func (r *PGXRecordsRepository) TextValues(ctx context.Context, key string) ([]string, error) {
	if err := requireColumn(key); err != nil {
		return nil, err
	}
	query := fmt.Sprintf("SELECT %s FROM company_data WHERE %s IS NOT NULL", key, key)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("text values %s: %w", key, err)
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan text value: %w", err)
		}
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate text values: %w", err)
	}
	return values, nil
}

// Recent returns the newest records as the dashboard's narrow projection.
func (r *PGXRecordsRepository) Recent(ctx context.Context, limit int) ([]dto.RecentCompany, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := r.pool.Query(ctx, `
        SELECT id, account_name, website_city, website_state, linkedin_industry, created_at
        FROM company_data
        ORDER BY created_at DESC
        LIMIT $1
    `, limit)
	if err != nil {
		return nil, fmt.Errorf("recent company records: %w", err)
	}
	defer rows.Close()

	var companies []dto.RecentCompany
	for rows.Next() {
		var (
			c        dto.RecentCompany
			name     *string
			city     *string
			state    *string
			industry *string
			created  *time.Time
		)
		if err := rows.Scan(&c.ID, &name, &city, &state, &industry, &created); err != nil {
			return nil, fmt.Errorf("scan recent company: %w", err)
		}
		c.Name = orNA(name)
		c.City = orNA(city)
		c.State = orNA(state)
		c.Industry = orNA(industry)
		c.LastUpdated = created
		companies = append(companies, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recent companies: %w", err)
	}
	return companies, nil
}

// CreationAudits lists (creator, created_at) pairs for rows that carry a
// creator reference, newest first.
func (r *PGXRecordsRepository) CreationAudits(ctx context.Context) ([]CreationAudit, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT created_by, created_at
        FROM company_data
        WHERE created_by IS NOT NULL
        ORDER BY created_at DESC
    `)
	if err != nil {
		return nil, fmt.Errorf("creation audits: %w", err)
	}
	defer rows.Close()

	var audits []CreationAudit
	for rows.Next() {
		var a CreationAudit
		if err := rows.Scan(&a.CreatedBy, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan creation audit: %w", err)
		}
		audits = append(audits, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate creation audits: %w", err)
	}
	return audits, nil
}

// orderedColumns flattens a field map into parallel column/argument slices
// with deterministic ordering, enforcing the registry whitelist.
func orderedColumns(fields map[string]any) ([]string, []any, error) {
	columns := make([]string, 0, len(fields))
	for key := range fields {
		if !schema.IsKey(key) {
			return nil, nil, fmt.Errorf("unknown column %q", key)
		}
		columns = append(columns, key)
	}
	sort.Strings(columns)

	args := make([]any, len(columns))
	for i, col := range columns {
		args[i] = fields[col]
	}
	return columns, args, nil
}

func requireColumn(key string) error {
	if !schema.IsKey(key) {
		return fmt.Errorf("unknown column %q", key)
	}
	return nil
}

// scanRecords converts generic wide rows into records using the result set's
// own column metadata, so the repository never hardcodes the column list.
func scanRecords(rows pgx.Rows) ([]entity.CompanyRecord, error) {
	var records []entity.CompanyRecord
	for rows.Next() {
		descriptions := rows.FieldDescriptions()
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("read company row: %w", err)
		}

		record := entity.CompanyRecord{Fields: make(map[string]any, len(values))}
		for i, desc := range descriptions {
			name := string(desc.Name)
			value := values[i]
			switch name {
			case "id":
				switch id := value.(type) {
				case int64:
					record.ID = id
				case int32:
					record.ID = int64(id)
				}
			case "created_at":
				if ts, ok := value.(time.Time); ok {
					record.CreatedAt = ts
				}
			case "created_by":
				switch v := value.(type) {
				case [16]byte:
					parsed := uuid.UUID(v)
					record.CreatedBy = &parsed
				case string:
					if parsed, err := uuid.Parse(v); err == nil {
						record.CreatedBy = &parsed
					}
				}
			default:
				record.Fields[name] = normalizeDBValue(value)
			}
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate company rows: %w", err)
	}
	return records, nil
}

// normalizeDBValue maps driver types onto the small value set services
// expect: string, float64, bool, time.Time, or nil.
func normalizeDBValue(value any) any {
	switch v := value.(type) {
	case nil, string, float64, bool, time.Time:
		return v
	case float32:
		return float64(v)
	case int64:
		return float64(v)
	case int32:
		return float64(v)
	case []byte:
		return string(v)
	default:
		return fmt.Sprint(v)
	}
}

func orNA(value *string) string {
	if value == nil || strings.TrimSpace(*value) == "" {
		return "N/A"
	}
	return *value
}
