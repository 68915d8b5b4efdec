package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/PritamDhobale/data-entry-webapp/internal/dto"
	"github.com/PritamDhobale/data-entry-webapp/internal/repository"
	"github.com/PritamDhobale/data-entry-webapp/internal/schema"
)

// ValidationError indicates that the submitted payload is invalid.
type ValidationError struct {
	Message string
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return e.Message
}

// RecordsService exposes read/write operations for company records.
type RecordsService struct {
	repo repository.RecordsRepository
}

// NewRecordsService creates a new instance of RecordsService.
func NewRecordsService(repo repository.RecordsRepository) *RecordsService {
	return &RecordsService{repo: repo}
}

// reservedColumns are stamped by the server and never accepted from clients.
var reservedColumns = map[string]struct{}{
	"id":         {},
	"created_at": {},
	"created_by": {},
}

// NormalizeFields maps a raw payload onto storage columns. Keys may be
// curated labels or storage keys; unknown keys, reserved columns, and fields
// hidden from the caller's role are dropped, and every surviving value is
// coerced to its column type.
func (s *RecordsService) NormalizeFields(payload dto.RecordPayload, role string) map[string]any {
	hidden := schema.HiddenKeys(role)

	fields := make(map[string]any, len(payload))
	for raw, value := range payload {
		key, known := schema.ResolveKey(raw)
		if !known {
			continue
		}
		if _, reserved := reservedColumns[key]; reserved {
			continue
		}
		if _, drop := hidden[key]; drop {
			continue
		}
		fields[key] = schema.Coerce(key, value)
	}
	return fields
}

// CreateRecord normalizes and persists a new record stamped with its creator.
func (s *RecordsService) CreateRecord(ctx context.Context, payload dto.RecordPayload, role string, createdBy uuid.UUID) (int64, error) {
	if createdBy == uuid.Nil {
		return 0, ValidationError{Message: "missing creator identity"}
	}
	fields := s.NormalizeFields(payload, role)
	if len(fields) == 0 {
		return 0, ValidationError{Message: "no recognized fields in payload"}
	}
	return s.repo.Create(ctx, fields, createdBy)
}

// GetRecord fetches one record prepared for display: keys become curated
// labels, stored NULLs render as empty strings, and fields hidden from the
// caller's role are omitted.
func (s *RecordsService) GetRecord(ctx context.Context, id int64, role string) (dto.RecordView, error) {
	record, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return presentRecord(record.ID, record.CreatedAt, record.Fields, role), nil
}

// UpdateRecord overwrites the submitted fields on an existing record. The
// identifier is immutable; it travels only in the path.
func (s *RecordsService) UpdateRecord(ctx context.Context, id int64, payload dto.RecordPayload, role string) error {
	if id <= 0 {
		return ValidationError{Message: "invalid record id"}
	}
	fields := s.NormalizeFields(payload, role)
	if len(fields) == 0 {
		return ValidationError{Message: "no recognized fields in payload"}
	}
	return s.repo.Update(ctx, id, fields)
}

// DeleteRecord removes a record. Deleting an absent id succeeds.
func (s *RecordsService) DeleteRecord(ctx context.Context, id int64) error {
	if id <= 0 {
		return ValidationError{Message: "invalid record id"}
	}
	return s.repo.Delete(ctx, id)
}

// ListRecords returns every record prepared for display, newest first.
func (s *RecordsService) ListRecords(ctx context.Context, role string) ([]dto.RecordView, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]dto.RecordView, 0, len(records))
	for _, r := range records {
		views = append(views, presentRecord(r.ID, r.CreatedAt, r.Fields, role))
	}
	return views, nil
}

// ImportCSV ingests records from a CSV reader. The header row maps columns
// onto storage keys; unrecognized columns are ignored. Rows insert one at a
// time so a bad row never aborts the batch; failures are reported per row
// with 1-based data row numbers.
func (s *RecordsService) ImportCSV(ctx context.Context, r io.Reader, role string, createdBy uuid.UUID) (dto.ImportSummary, error) {
	if createdBy == uuid.Nil {
		return dto.ImportSummary{}, ValidationError{Message: "missing creator identity"}
	}

	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return dto.ImportSummary{}, ValidationError{Message: "csv file is empty"}
		}
		return dto.ImportSummary{}, fmt.Errorf("read csv header: %w", err)
	}

	columns, err := resolveHeader(header)
	if err != nil {
		return dto.ImportSummary{}, err
	}

	hidden := schema.HiddenKeys(role)

	summary := dto.ImportSummary{FailedRows: []dto.ImportRowError{}}
	rowNum := 0
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return dto.ImportSummary{}, fmt.Errorf("read csv row: %w", err)
		}

		rowNum++

		fields := make(map[string]any)
		for i, key := range columns {
			if key == "" || i >= len(row) {
				continue
			}
			if _, drop := hidden[key]; drop {
				continue
			}
			if value := schema.Coerce(key, row[i]); value != nil {
				fields[key] = value
			}
		}
		if len(fields) == 0 {
			continue
		}

		if _, err := s.repo.Create(ctx, fields, createdBy); err != nil {
			summary.Failed++
			summary.FailedRows = append(summary.FailedRows, dto.ImportRowError{
				Row:   rowNum,
				Error: err.Error(),
			})
			continue
		}
		summary.Inserted++
	}

	return summary, nil
}

// TemplateCSV writes the import template: a header row of storage keys and a
// documentation-only second row of type hints.
func (s *RecordsService) TemplateCSV(w io.Writer, role string) error {
	fields := schema.VisibleFields(role)

	header := make([]string, len(fields))
	hints := make([]string, len(fields))
	for i, f := range fields {
		header[i] = f.Key
		hints[i] = schema.TypeHint(f.Key)
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write template header: %w", err)
	}
	if err := writer.Write(hints); err != nil {
		return fmt.Errorf("write template hints: %w", err)
	}
	writer.Flush()
	return writer.Error()
}

// ExportCSV streams every record the role may see as CSV: a header row of
// storage keys followed by one row per record, newest first. The same header
// re-imports cleanly through ImportCSV.
func (s *RecordsService) ExportCSV(ctx context.Context, w io.Writer, role string) error {
	records, err := s.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("list records for export: %w", err)
	}

	fields := schema.VisibleFields(role)
	header := make([]string, len(fields))
	for i, f := range fields {
		header[i] = f.Key
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write export header: %w", err)
	}

	row := make([]string, len(fields))
	for _, record := range records {
		for i, f := range fields {
			row[i] = exportCell(record.Fields[f.Key])
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write export row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

func exportCell(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case time.Time:
		return v.Format("2006-01-02")
	default:
		return fmt.Sprint(v)
	}
}

// resolveHeader maps CSV header cells onto storage keys. Cells that resolve
// to nothing in the registry map to "" and their column is skipped. A header
// with no recognizable column at all is rejected.
func resolveHeader(header []string) ([]string, error) {
	columns := make([]string, len(header))
	recognized := 0
	for i, cell := range header {
		key, known := schema.ResolveKey(cell)
		if !known {
			continue
		}
		if _, reserved := reservedColumns[key]; reserved {
			continue
		}
		columns[i] = key
		recognized++
	}
	if recognized == 0 {
		return nil, ValidationError{Message: "no recognizable columns in csv header"}
	}
	return columns, nil
}

// presentRecord converts stored fields into the display shape: curated
// labels for keys, NULL→"", dates in ISO form, hidden fields omitted.
func presentRecord(id int64, createdAt time.Time, fields map[string]any, role string) dto.RecordView {
	hidden := schema.HiddenKeys(role)

	view := make(dto.RecordView, len(fields)+2)
	view["id"] = id
	if !createdAt.IsZero() {
		view["created_at"] = createdAt.Format(time.RFC3339)
	}
	for key, value := range fields {
		if _, drop := hidden[key]; drop {
			continue
		}
		view[schema.Label(key)] = presentValue(value)
	}
	return view
}

func presentValue(value any) any {
	switch v := value.(type) {
	case nil:
		return ""
	case time.Time:
		return v.Format("2006-01-02")
	default:
		return v
	}
}
