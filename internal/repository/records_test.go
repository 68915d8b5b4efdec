package repository

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type stubWideRows struct {
	names  []string
	values [][]any
	idx    int
}

func (s *stubWideRows) Close()    {}
func (s *stubWideRows) Err() error { return nil }

func (s *stubWideRows) CommandTag() pgconn.CommandTag { return pgconn.CommandTag{} }

func (s *stubWideRows) FieldDescriptions() []pgconn.FieldDescription {
	descs := make([]pgconn.FieldDescription, len(s.names))
	for i, name := range s.names {
		descs[i] = pgconn.FieldDescription{Name: name}
	}
	return descs
}

func (s *stubWideRows) Next() bool {
	if s.idx < len(s.values) {
		s.idx++
		return true
	}
	return false
}

func (s *stubWideRows) Scan(dest ...any) error { return errors.New("scan not supported") }

func (s *stubWideRows) Values() ([]any, error) {
	if s.idx == 0 || s.idx > len(s.values) {
		return nil, errors.New("values called out of order")
	}
	return s.values[s.idx-1], nil
}

func (s *stubWideRows) RawValues() [][]byte { return nil }
func (s *stubWideRows) Conn() *pgx.Conn     { return nil }

func TestPGXRecordsRepository_Create(t *testing.T) {
	creator := uuid.MustParse("aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa")
	var gotQuery string
	var gotArgs []any

	repo := &PGXRecordsRepository{pool: &stubPool{
		queryRowFunc: func(ctx context.Context, query string, args ...any) pgx.Row {
			gotQuery = query
			gotArgs = args
			return &stubRow{scan: func(dest ...any) error {
				*dest[0].(*int64) = 42
				return nil
			}}
		},
	}}

	id, err := repo.Create(context.Background(), map[string]any{
		"website":      "https://acme.com",
		"account_name": "Acme",
	}, creator)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 42 {
		t.Fatalf("expected id 42, got %d", id)
	}
	if !strings.Contains(gotQuery, "INSERT INTO company_data (account_name, website, created_at, created_by)") {
		t.Fatalf("unexpected query: %s", gotQuery)
	}
	if !strings.Contains(gotQuery, "RETURNING id") {
		t.Fatalf("expected RETURNING id: %s", gotQuery)
	}
	if len(gotArgs) != 4 {
		t.Fatalf("expected 4 args, got %d", len(gotArgs))
	}
	if gotArgs[0] != "Acme" || gotArgs[1] != "https://acme.com" {
		t.Fatalf("unexpected args: %+v", gotArgs)
	}
	if gotArgs[3] != creator {
		t.Fatalf("expected creator arg, got %v", gotArgs[3])
	}
}

func TestPGXRecordsRepository_CreateRejectsUnknownColumn(t *testing.T) {
	repo := &PGXRecordsRepository{pool: &stubPool{}}
	_, err := repo.Create(context.Background(), map[string]any{"drop_table": "x"}, uuid.New())
	if err == nil || !strings.Contains(err.Error(), "unknown column") {
		t.Fatalf("expected unknown column error, got %v", err)
	}
}

func TestPGXRecordsRepository_Update(t *testing.T) {
	var gotQuery string
	var gotArgs []any

	repo := &PGXRecordsRepository{pool: &stubPool{
		execFunc: func(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error) {
			gotQuery = query
			gotArgs = args
			return pgconn.NewCommandTag("UPDATE 1"), nil
		},
	}}

	err := repo.Update(context.Background(), 7, map[string]any{
		"account_name":   "Acme Inc",
		"website_notes":  nil,
		"bbb_accredited": true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(gotQuery, "account_name = $1") || !strings.Contains(gotQuery, "WHERE id = $4") {
		t.Fatalf("unexpected query: %s", gotQuery)
	}
	if strings.Contains(gotQuery, "SET id") || strings.Contains(gotQuery, ", id =") {
		t.Fatalf("id must never appear in the set clause: %s", gotQuery)
	}
	if gotArgs[len(gotArgs)-1] != int64(7) && gotArgs[len(gotArgs)-1] != 7 {
		t.Fatalf("expected trailing id arg, got %v", gotArgs[len(gotArgs)-1])
	}
}

func TestPGXRecordsRepository_UpdateMissingRow(t *testing.T) {
	repo := &PGXRecordsRepository{pool: &stubPool{
		execFunc: func(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error) {
			return pgconn.NewCommandTag("UPDATE 0"), nil
		},
	}}
	if err := repo.Update(context.Background(), 999, map[string]any{"account_name": "x"}); !errors.Is(err, ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestPGXRecordsRepository_UpdateEmptySetIsNoop(t *testing.T) {
	repo := &PGXRecordsRepository{pool: &stubPool{
		execFunc: func(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error) {
			t.Fatalf("exec should not be called for an empty update")
			return pgconn.CommandTag{}, nil
		},
	}}
	if err := repo.Update(context.Background(), 7, map[string]any{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPGXRecordsRepository_DeleteIdempotent(t *testing.T) {
	repo := &PGXRecordsRepository{pool: &stubPool{
		execFunc: func(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error) {
			return pgconn.NewCommandTag("DELETE 0"), nil
		},
	}}
	if err := repo.Delete(context.Background(), 12345); err != nil {
		t.Fatalf("deleting a missing id must succeed, got %v", err)
	}
}

func TestPGXRecordsRepository_Get(t *testing.T) {
	creator := uuid.MustParse("bbbbbbbb-bbbb-bbbb-bbbb-bbbbbbbbbbbb")
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	repo := &PGXRecordsRepository{pool: &stubPool{
		queryFunc: func(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
			return &stubWideRows{
				names: []string{"id", "created_at", "created_by", "account_name", "website_zip_code", "google_rating", "bbb_accredited", "website_notes"},
				values: [][]any{{
					int64(9), created, [16]byte(creator), "Acme", "02139", 4.5, true, nil,
				}},
			}, nil
		},
	}}

	record, err := repo.Get(context.Background(), 9)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record.ID != 9 || !record.CreatedAt.Equal(created) {
		t.Fatalf("unexpected record meta: %+v", record)
	}
	if record.CreatedBy == nil || *record.CreatedBy != creator {
		t.Fatalf("expected creator, got %v", record.CreatedBy)
	}
	if record.Fields["account_name"] != "Acme" || record.Fields["website_zip_code"] != "02139" {
		t.Fatalf("unexpected fields: %+v", record.Fields)
	}
	if record.Fields["google_rating"] != 4.5 || record.Fields["bbb_accredited"] != true {
		t.Fatalf("typed fields lost: %+v", record.Fields)
	}
	if v, present := record.Fields["website_notes"]; !present || v != nil {
		t.Fatalf("expected explicit nil for NULL column, got %v (present=%v)", v, present)
	}
}

func TestPGXRecordsRepository_GetMissing(t *testing.T) {
	repo := &PGXRecordsRepository{pool: &stubPool{
		queryFunc: func(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
			return &stubWideRows{}, nil
		},
	}}
	if _, err := repo.Get(context.Background(), 404); !errors.Is(err, ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestPGXRecordsRepository_AggregatesRejectUnknownColumns(t *testing.T) {
	repo := &PGXRecordsRepository{pool: &stubPool{}}

	if _, _, err := repo.NumericAverage(context.Background(), "bogus"); err == nil {
		t.Fatalf("expected error for unknown average column")
	}
	if _, err := repo.BooleanTrueCount(context.Background(), "bogus"); err == nil {
		t.Fatalf("expected error for unknown boolean column")
	}
	if _, err := repo.Histogram(context.Background(), "bogus", 10); err == nil {
		t.Fatalf("expected error for unknown histogram column")
	}
	if _, err := repo.TextValues(context.Background(), "bogus"); err == nil {
		t.Fatalf("expected error for unknown text column")
	}
}

func TestPGXRecordsRepository_Histogram(t *testing.T) {
	repo := &PGXRecordsRepository{pool: &stubPool{
		queryFunc: func(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
			if !strings.Contains(query, "website_state IS NOT NULL") {
				t.Fatalf("expected NULL exclusion in query: %s", query)
			}
			return &stubRows{
				scans: []func(dest ...any) error{
					func(dest ...any) error {
						*dest[0].(*string) = "MA"
						*dest[1].(*int) = 12
						return nil
					},
					func(dest ...any) error {
						*dest[0].(*string) = "Unknown"
						*dest[1].(*int) = 3
						return nil
					},
				},
			}, nil
		},
	}}

	buckets, err := repo.Histogram(context.Background(), "website_state", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(buckets) != 2 || buckets[0].Name != "MA" || buckets[0].Value != 12 {
		t.Fatalf("unexpected buckets: %+v", buckets)
	}
}
