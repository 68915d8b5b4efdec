package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/PritamDhobale/data-entry-webapp/internal/dto"
	"github.com/PritamDhobale/data-entry-webapp/internal/entity"
	"github.com/PritamDhobale/data-entry-webapp/internal/repository"
	"github.com/PritamDhobale/data-entry-webapp/internal/schema"
)

type mockRecordsRepository struct {
	create         func(ctx context.Context, fields map[string]any, createdBy uuid.UUID) (int64, error)
	get            func(ctx context.Context, id int64) (*entity.CompanyRecord, error)
	update         func(ctx context.Context, id int64, fields map[string]any) error
	delete         func(ctx context.Context, id int64) error
	list           func(ctx context.Context) ([]entity.CompanyRecord, error)
	count          func(ctx context.Context) (int, error)
	numericAverage func(ctx context.Context, key string) (float64, int, error)
	boolTrueCount  func(ctx context.Context, key string) (int, error)
	distinctCount  func(ctx context.Context, key string) (int, error)
	histogram      func(ctx context.Context, key string, limit int) ([]dto.HistogramBucket, error)
	textValues     func(ctx context.Context, key string) ([]string, error)
	recent         func(ctx context.Context, limit int) ([]dto.RecentCompany, error)
	creationAudits func(ctx context.Context) ([]repository.CreationAudit, error)
}

func (m *mockRecordsRepository) Create(ctx context.Context, fields map[string]any, createdBy uuid.UUID) (int64, error) {
	if m.create != nil {
		return m.create(ctx, fields, createdBy)
	}
	return 0, errors.New("create not implemented")
}

func (m *mockRecordsRepository) Get(ctx context.Context, id int64) (*entity.CompanyRecord, error) {
	if m.get != nil {
		return m.get(ctx, id)
	}
	return nil, errors.New("get not implemented")
}

func (m *mockRecordsRepository) Update(ctx context.Context, id int64, fields map[string]any) error {
	if m.update != nil {
		return m.update(ctx, id, fields)
	}
	return errors.New("update not implemented")
}

func (m *mockRecordsRepository) Delete(ctx context.Context, id int64) error {
	if m.delete != nil {
		return m.delete(ctx, id)
	}
	return errors.New("delete not implemented")
}

func (m *mockRecordsRepository) List(ctx context.Context) ([]entity.CompanyRecord, error) {
	if m.list != nil {
		return m.list(ctx)
	}
	return nil, errors.New("list not implemented")
}

func (m *mockRecordsRepository) Count(ctx context.Context) (int, error) {
	if m.count != nil {
		return m.count(ctx)
	}
	return 0, errors.New("count not implemented")
}

func (m *mockRecordsRepository) NumericAverage(ctx context.Context, key string) (float64, int, error) {
	if m.numericAverage != nil {
		return m.numericAverage(ctx, key)
	}
	return 0, 0, errors.New("numeric average not implemented")
}

func (m *mockRecordsRepository) BooleanTrueCount(ctx context.Context, key string) (int, error) {
	if m.boolTrueCount != nil {
		return m.boolTrueCount(ctx, key)
	}
	return 0, errors.New("boolean true count not implemented")
}

func (m *mockRecordsRepository) DistinctCount(ctx context.Context, key string) (int, error) {
	if m.distinctCount != nil {
		return m.distinctCount(ctx, key)
	}
	return 0, errors.New("distinct count not implemented")
}

func (m *mockRecordsRepository) Histogram(ctx context.Context, key string, limit int) ([]dto.HistogramBucket, error) {
	if m.histogram != nil {
		return m.histogram(ctx, key, limit)
	}
	return nil, errors.New("histogram not implemented")
}

func (m *mockRecordsRepository) TextValues(ctx context.Context, key string) ([]string, error) {
	if m.textValues != nil {
		return m.textValues(ctx, key)
	}
	return nil, errors.New("text values not implemented")
}

func (m *mockRecordsRepository) Recent(ctx context.Context, limit int) ([]dto.RecentCompany, error) {
	if m.recent != nil {
		return m.recent(ctx, limit)
	}
	return nil, errors.New("recent not implemented")
}

func (m *mockRecordsRepository) CreationAudits(ctx context.Context) ([]repository.CreationAudit, error) {
	if m.creationAudits != nil {
		return m.creationAudits(ctx)
	}
	return nil, errors.New("creation audits not implemented")
}

func TestRecordsService_NormalizeFields(t *testing.T) {
	svc := NewRecordsService(&mockRecordsRepository{})

	payload := dto.RecordPayload{
		"Account Name":       "  Acme  ",
		"website":            "https://acme.com",
		"BBB Accredited":     "yes",
		"Google Reviews":     "1,204",
		"Website Zip Code":   "02139",
		"Website Notes":      "n/a",
		"id":                 999,
		"created_by":         "bogus",
		"Totally Made Up":    "x",
		"PPP Company Name":   "Acme LLC",
	}

	fields := svc.NormalizeFields(payload, schema.RoleAdmin)

	if fields["account_name"] != "Acme" {
		t.Fatalf("expected trimmed account name, got %v", fields["account_name"])
	}
	if fields["bbb_accredited"] != true {
		t.Fatalf("expected coerced boolean, got %v", fields["bbb_accredited"])
	}
	if fields["google_reviews"] != 1204.0 {
		t.Fatalf("expected numeric with separators stripped, got %v", fields["google_reviews"])
	}
	if fields["website_zip_code"] != "02139" {
		t.Fatalf("zip codes must stay text, got %v", fields["website_zip_code"])
	}
	if v, present := fields["website_notes"]; !present || v != nil {
		t.Fatalf("placeholder must map to nil, got %v (present=%v)", v, present)
	}
	if _, present := fields["id"]; present {
		t.Fatalf("id must never pass normalization")
	}
	if _, present := fields["created_by"]; present {
		t.Fatalf("created_by must never pass normalization")
	}
	if _, present := fields["totally_made_up"]; present {
		t.Fatalf("unknown fields must be dropped")
	}
	if fields["ppp_company_name"] != "Acme LLC" {
		t.Fatalf("admin must keep ppp fields, got %v", fields["ppp_company_name"])
	}
}

func TestRecordsService_NormalizeFields_HidesRestrictedFields(t *testing.T) {
	svc := NewRecordsService(&mockRecordsRepository{})

	payload := dto.RecordPayload{
		"Account Name":     "Acme",
		"PPP Company Name": "Acme LLC",
		"SoS Officers":     "Jane Roe",
	}

	fields := svc.NormalizeFields(payload, schema.RoleDataEntry)
	if _, present := fields["ppp_company_name"]; present {
		t.Fatalf("dataentry must not write ppp fields")
	}
	if _, present := fields["sos_officers"]; present {
		t.Fatalf("dataentry must not write sos fields")
	}
	if fields["account_name"] != "Acme" {
		t.Fatalf("visible fields must survive, got %+v", fields)
	}
}

func TestRecordsService_CreateRecord(t *testing.T) {
	creator := uuid.MustParse("aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa")

	t.Run("missing creator", func(t *testing.T) {
		svc := NewRecordsService(&mockRecordsRepository{})
		_, err := svc.CreateRecord(context.Background(), dto.RecordPayload{"Account Name": "Acme"}, schema.RoleAdmin, uuid.Nil)
		var vErr ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
	})

	t.Run("empty payload", func(t *testing.T) {
		svc := NewRecordsService(&mockRecordsRepository{})
		_, err := svc.CreateRecord(context.Background(), dto.RecordPayload{"Nonsense Field": "x"}, schema.RoleAdmin, creator)
		var vErr ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
	})

	t.Run("success", func(t *testing.T) {
		var gotFields map[string]any
		var gotCreator uuid.UUID
		repo := &mockRecordsRepository{
			create: func(ctx context.Context, fields map[string]any, createdBy uuid.UUID) (int64, error) {
				gotFields = fields
				gotCreator = createdBy
				return 8, nil
			},
		}
		svc := NewRecordsService(repo)
		id, err := svc.CreateRecord(context.Background(), dto.RecordPayload{"Account Name": "Acme"}, schema.RoleAdmin, creator)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if id != 8 {
			t.Fatalf("expected id 8, got %d", id)
		}
		if gotFields["account_name"] != "Acme" || gotCreator != creator {
			t.Fatalf("unexpected repo call: %+v %v", gotFields, gotCreator)
		}
	})
}

func TestRecordsService_UpdateRecord_NeverTouchesID(t *testing.T) {
	var gotFields map[string]any
	repo := &mockRecordsRepository{
		update: func(ctx context.Context, id int64, fields map[string]any) error {
			gotFields = fields
			return nil
		},
	}
	svc := NewRecordsService(repo)

	err := svc.UpdateRecord(context.Background(), 5, dto.RecordPayload{
		"id":           12345,
		"Account Name": "Renamed",
	}, schema.RoleAdmin)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, present := gotFields["id"]; present {
		t.Fatalf("id must never reach the update set")
	}
	if gotFields["account_name"] != "Renamed" {
		t.Fatalf("unexpected fields: %+v", gotFields)
	}
}

func TestRecordsService_UpdateRecord_InvalidID(t *testing.T) {
	svc := NewRecordsService(&mockRecordsRepository{})
	err := svc.UpdateRecord(context.Background(), 0, dto.RecordPayload{"Account Name": "x"}, schema.RoleAdmin)
	var vErr ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestRecordsService_GetRecord_Presentation(t *testing.T) {
	creator := uuid.New()
	created := time.Date(2025, 4, 2, 9, 30, 0, 0, time.UTC)
	repo := &mockRecordsRepository{
		get: func(ctx context.Context, id int64) (*entity.CompanyRecord, error) {
			return &entity.CompanyRecord{
				ID:        3,
				CreatedAt: created,
				CreatedBy: &creator,
				Fields: map[string]any{
					"account_name":          "Acme",
					"website_notes":         nil,
					"bbb_business_started":  time.Date(1999, 7, 1, 0, 0, 0, 0, time.UTC),
					"ppp_company_name":      "Acme LLC",
					"website_zip_code":      "02139",
				},
			}, nil
		},
	}
	svc := NewRecordsService(repo)

	view, err := svc.GetRecord(context.Background(), 3, schema.RoleDataEntry)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view["id"] != int64(3) {
		t.Fatalf("expected id in view, got %v", view["id"])
	}
	if view["Account Name"] != "Acme" {
		t.Fatalf("expected curated label key, got %+v", view)
	}
	if v, present := view["Website: Notes"]; !present || v != "" {
		t.Fatalf("stored NULL must render as empty string, got %v (present=%v)", v, present)
	}
	if view["BBB Business Started"] != "1999-07-01" {
		t.Fatalf("dates must render in ISO form, got %v", view["BBB Business Started"])
	}
	if _, present := view["PPP Company Name"]; present {
		t.Fatalf("hidden fields must be omitted for dataentry")
	}
	if view["Website Zip Code"] != "02139" {
		t.Fatalf("zip must keep its leading zero, got %v", view["Website Zip Code"])
	}
}

func TestRecordsService_GetRecord_NotFound(t *testing.T) {
	repo := &mockRecordsRepository{
		get: func(ctx context.Context, id int64) (*entity.CompanyRecord, error) {
			return nil, repository.ErrRecordNotFound
		},
	}
	svc := NewRecordsService(repo)
	if _, err := svc.GetRecord(context.Background(), 404, schema.RoleAdmin); !errors.Is(err, repository.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestRecordsService_ImportCSV(t *testing.T) {
	creator := uuid.MustParse("bbbbbbbb-bbbb-bbbb-bbbb-bbbbbbbbbbbb")

	t.Run("empty file", func(t *testing.T) {
		svc := NewRecordsService(&mockRecordsRepository{})
		_, err := svc.ImportCSV(context.Background(), strings.NewReader(""), schema.RoleAdmin, creator)
		var vErr ValidationError
		if !errors.As(err, &vErr) || !strings.Contains(err.Error(), "empty") {
			t.Fatalf("expected empty-file validation error, got %v", err)
		}
	})

	t.Run("unrecognizable header", func(t *testing.T) {
		svc := NewRecordsService(&mockRecordsRepository{})
		_, err := svc.ImportCSV(context.Background(), strings.NewReader("foo,bar\n1,2\n"), schema.RoleAdmin, creator)
		var vErr ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("partial failure keeps going", func(t *testing.T) {
		calls := 0
		repo := &mockRecordsRepository{
			create: func(ctx context.Context, fields map[string]any, createdBy uuid.UUID) (int64, error) {
				calls++
				if fields["account_name"] == "Bad Co" {
					return 0, errors.New("insert failed")
				}
				return int64(calls), nil
			},
		}
		svc := NewRecordsService(repo)

		csvBody := "Account Name,Website Zip Code,BBB Accredited\n" +
			"Acme,02139,yes\n" +
			"Bad Co,10001,no\n" +
			"Umbrella,94105,TRUE\n"

		summary, err := svc.ImportCSV(context.Background(), strings.NewReader(csvBody), schema.RoleAdmin, creator)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if summary.Inserted != 2 || summary.Failed != 1 {
			t.Fatalf("unexpected summary: %+v", summary)
		}
		if len(summary.FailedRows) != 1 || summary.FailedRows[0].Row != 2 {
			t.Fatalf("expected failure on data row 2, got %+v", summary.FailedRows)
		}
		if !strings.Contains(summary.FailedRows[0].Error, "insert failed") {
			t.Fatalf("expected insert error message, got %+v", summary.FailedRows[0])
		}
	})

	t.Run("values coerced per column", func(t *testing.T) {
		var gotFields map[string]any
		repo := &mockRecordsRepository{
			create: func(ctx context.Context, fields map[string]any, createdBy uuid.UUID) (int64, error) {
				gotFields = fields
				return 1, nil
			},
		}
		svc := NewRecordsService(repo)

		csvBody := "account_name,website_zip_code,google_rating,bbb_accredited,website_notes,mystery_column\n" +
			"Acme,02139,\"4,5\",yes,n/a,ignored\n"

		if _, err := svc.ImportCSV(context.Background(), strings.NewReader(csvBody), schema.RoleAdmin, creator); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gotFields["website_zip_code"] != "02139" {
			t.Fatalf("zip must stay text, got %v", gotFields["website_zip_code"])
		}
		if gotFields["google_rating"] != 45.0 {
			t.Fatalf("expected separators stripped, got %v", gotFields["google_rating"])
		}
		if gotFields["bbb_accredited"] != true {
			t.Fatalf("expected coerced boolean, got %v", gotFields["bbb_accredited"])
		}
		if _, present := gotFields["website_notes"]; present {
			t.Fatalf("placeholder values must not be inserted")
		}
		if _, present := gotFields["mystery_column"]; present {
			t.Fatalf("unknown columns must be ignored")
		}
	})

	t.Run("blank rows skipped", func(t *testing.T) {
		repo := &mockRecordsRepository{
			create: func(ctx context.Context, fields map[string]any, createdBy uuid.UUID) (int64, error) {
				t.Fatalf("blank rows must not insert")
				return 0, nil
			},
		}
		svc := NewRecordsService(repo)
		summary, err := svc.ImportCSV(context.Background(), strings.NewReader("account_name\n\n   \n"), schema.RoleAdmin, creator)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if summary.Inserted != 0 || summary.Failed != 0 {
			t.Fatalf("expected empty summary, got %+v", summary)
		}
	})
}

func TestRecordsService_TemplateCSV(t *testing.T) {
	svc := NewRecordsService(&mockRecordsRepository{})

	var buf bytes.Buffer
	if err := svc.TemplateCSV(&buf, schema.RoleAdmin); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header and hint rows, got %d lines", len(lines))
	}
	header := strings.Split(lines[0], ",")
	visible := schema.VisibleFields(schema.RoleAdmin)
	if len(header) != len(visible) {
		t.Fatalf("expected %d columns, got %d", len(visible), len(header))
	}
	if header[0] != visible[0].Key {
		t.Fatalf("expected storage keys in header, got %s", header[0])
	}
	if !strings.Contains(lines[1], "Boolean (TRUE/FALSE)") {
		t.Fatalf("expected boolean type hint in second row: %s", lines[1])
	}
}

func TestRecordsService_DeleteRecord(t *testing.T) {
	called := false
	repo := &mockRecordsRepository{
		delete: func(ctx context.Context, id int64) error {
			called = true
			return nil
		},
	}
	svc := NewRecordsService(repo)
	if err := svc.DeleteRecord(context.Background(), 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Fatalf("expected repository to be invoked")
	}
	var vErr ValidationError
	if err := svc.DeleteRecord(context.Background(), -1); !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError for invalid id, got %v", err)
	}
}

func TestRecordsService_ExportCSV(t *testing.T) {
	started := time.Date(1999, 7, 1, 0, 0, 0, 0, time.UTC)
	repo := &mockRecordsRepository{
		list: func(ctx context.Context) ([]entity.CompanyRecord, error) {
			return []entity.CompanyRecord{
				{ID: 2, Fields: map[string]any{
					"account_name":         "Acme",
					"website_zip_code":     "02139",
					"google_rating":        4.5,
					"bbb_accredited":       true,
					"bbb_business_started": started,
					"ppp_company_name":     "Acme LLC",
				}},
				{ID: 1, Fields: map[string]any{"account_name": "Umbrella"}},
			}, nil
		},
	}
	svc := NewRecordsService(repo)

	var buf bytes.Buffer
	if err := svc.ExportCSV(context.Background(), &buf, schema.RoleDataEntry); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus two rows, got %d lines", len(lines))
	}

	header := strings.Split(lines[0], ",")
	visible := schema.VisibleFields(schema.RoleDataEntry)
	if len(header) != len(visible) {
		t.Fatalf("expected %d columns, got %d", len(visible), len(header))
	}
	if strings.Contains(lines[0], "ppp_company_name") {
		t.Fatalf("restricted column leaked into export header: %s", lines[0])
	}
	if strings.Contains(buf.String(), "Acme LLC") {
		t.Fatalf("restricted value leaked into export: %s", buf.String())
	}

	cell := func(line, column string) string {
		cols := strings.Split(line, ",")
		for i, name := range header {
			if name == column {
				return cols[i]
			}
		}
		t.Fatalf("column %s not in header", column)
		return ""
	}
	if got := cell(lines[1], "account_name"); got != "Acme" {
		t.Fatalf("unexpected account_name cell %q", got)
	}
	if got := cell(lines[1], "website_zip_code"); got != "02139" {
		t.Fatalf("zip lost its leading zero: %q", got)
	}
	if got := cell(lines[1], "google_rating"); got != "4.5" {
		t.Fatalf("unexpected rating cell %q", got)
	}
	if got := cell(lines[1], "bbb_accredited"); got != "true" {
		t.Fatalf("unexpected boolean cell %q", got)
	}
	if got := cell(lines[1], "bbb_business_started"); got != "1999-07-01" {
		t.Fatalf("unexpected date cell %q", got)
	}
	if got := cell(lines[2], "website"); got != "" {
		t.Fatalf("expected empty cell for absent field, got %q", got)
	}
}
