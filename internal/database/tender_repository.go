package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/tenderhub/normalizer/internal/domain"
	"github.com/tenderhub/normalizer/internal/logger"
)

const unifiedTable = "unified_tenders"

// pqUndefinedColumn is the Postgres error code for a write against a
// column the table does not have.
const pqUndefinedColumn = "42703"

// undefinedColumnRe recovers the column name from the error message when
// the driver did not surface a structured code.
var undefinedColumnRe = regexp.MustCompile(`column "([^"]+)"`)

// fieldColumn is one entry of the explicit model-to-column mapping table.
// value returns nil for fields that must not be written, which is how
// merge-not-clobber is enforced: absent keys never touch populated columns.
type fieldColumn struct {
	column string
	value  func(*domain.UnifiedTender) any
}

func stringColumn(column string, get func(*domain.UnifiedTender) string) fieldColumn {
	return fieldColumn{column: column, value: func(t *domain.UnifiedTender) any {
		if v := get(t); v != "" {
			return v
		}
		return nil
	}}
}

// fieldColumns maps every model field to its live column name. Legacy
// column spellings (published_at, deadline, value, source_url, documents,
// original_language) are resolved here and nowhere else.
var fieldColumns = []fieldColumn{
	stringColumn("title", func(t *domain.UnifiedTender) string { return t.Title }),
	stringColumn("title_english", func(t *domain.UnifiedTender) string { return t.TitleEnglish }),
	stringColumn("description", func(t *domain.UnifiedTender) string { return t.Description }),
	stringColumn("description_english", func(t *domain.UnifiedTender) string { return t.DescriptionEnglish }),
	stringColumn("tender_type", func(t *domain.UnifiedTender) string { return t.TenderType }),
	stringColumn("status", func(t *domain.UnifiedTender) string { return t.Status }),
	{column: "published_at", value: func(t *domain.UnifiedTender) any {
		if t.PublicationDate != nil {
			return *t.PublicationDate
		}
		return nil
	}},
	{column: "deadline", value: func(t *domain.UnifiedTender) any {
		if t.DeadlineDate != nil {
			return *t.DeadlineDate
		}
		return nil
	}},
	stringColumn("country", func(t *domain.UnifiedTender) string { return t.Country }),
	stringColumn("city", func(t *domain.UnifiedTender) string { return t.City }),
	stringColumn("procurement_method", func(t *domain.UnifiedTender) string { return t.ProcurementMethod }),
	stringColumn("normalized_method", func(t *domain.UnifiedTender) string { return t.NormalizedMethod }),
	stringColumn("organization_name", func(t *domain.UnifiedTender) string { return t.OrganizationName }),
	stringColumn("organization_name_english", func(t *domain.UnifiedTender) string { return t.OrganizationNameEnglish }),
	stringColumn("organization_id", func(t *domain.UnifiedTender) string { return t.OrganizationID }),
	stringColumn("buyer", func(t *domain.UnifiedTender) string { return t.Buyer }),
	stringColumn("buyer_english", func(t *domain.UnifiedTender) string { return t.BuyerEnglish }),
	stringColumn("project_name", func(t *domain.UnifiedTender) string { return t.ProjectName }),
	stringColumn("project_name_english", func(t *domain.UnifiedTender) string { return t.ProjectNameEnglish }),
	stringColumn("project_id", func(t *domain.UnifiedTender) string { return t.ProjectID }),
	stringColumn("project_number", func(t *domain.UnifiedTender) string { return t.ProjectNumber }),
	stringColumn("sector", func(t *domain.UnifiedTender) string { return t.Sector }),
	{column: "value", value: func(t *domain.UnifiedTender) any {
		if t.EstimatedValue != nil {
			return *t.EstimatedValue
		}
		return nil
	}},
	stringColumn("currency", func(t *domain.UnifiedTender) string { return t.Currency }),
	stringColumn("contact_name", func(t *domain.UnifiedTender) string { return t.ContactName }),
	stringColumn("contact_email", func(t *domain.UnifiedTender) string { return t.ContactEmail }),
	stringColumn("contact_phone", func(t *domain.UnifiedTender) string { return t.ContactPhone }),
	stringColumn("contact_address", func(t *domain.UnifiedTender) string { return t.ContactAddress }),
	stringColumn("source_url", func(t *domain.UnifiedTender) string { return t.URL }),
	{column: "documents", value: func(t *domain.UnifiedTender) any {
		if len(t.DocumentLinks) == 0 {
			return nil
		}
		data, err := json.Marshal(t.DocumentLinks)
		if err != nil {
			return nil
		}
		return data
	}},
	stringColumn("original_language", func(t *domain.UnifiedTender) string { return t.Language }),
	stringColumn("notice_id", func(t *domain.UnifiedTender) string { return t.NoticeID }),
	stringColumn("reference_number", func(t *domain.UnifiedTender) string { return t.ReferenceNumber }),
	{column: "original_data", value: func(t *domain.UnifiedTender) any {
		if len(t.OriginalData) == 0 {
			return nil
		}
		return []byte(t.OriginalData)
	}},
	{column: "fallback_reason", value: func(t *domain.UnifiedTender) any {
		if len(t.FallbackReason) == 0 {
			return nil
		}
		data, err := json.Marshal(t.FallbackReason)
		if err != nil {
			return nil
		}
		return data
	}},
	{column: "normalized_at", value: func(t *domain.UnifiedTender) any {
		if t.NormalizedAt != nil {
			return *t.NormalizedAt
		}
		return nil
	}},
	{column: "processed_at", value: func(t *domain.UnifiedTender) any {
		if t.ProcessedAt != nil {
			return *t.ProcessedAt
		}
		return nil
	}},
	{column: "processing_time_ms", value: func(t *domain.UnifiedTender) any {
		if t.ProcessingTimeMS > 0 {
			return t.ProcessingTimeMS
		}
		return nil
	}},
}

// TenderRepository persists canonical tender records and fetches raw rows
// pending normalization.
type TenderRepository struct {
	db     *sqlx.DB
	logger logger.Logger

	// OnColumnDropped is invoked whenever a write is retried after
	// stripping a column absent from the live schema. Optional.
	OnColumnDropped func(column string)

	mu      sync.RWMutex
	columns map[string]bool // live unified_tenders column set
}

// NewTenderRepository creates a repository. The live column set is loaded
// lazily on first write.
func NewTenderRepository(db *sqlx.DB, log logger.Logger) *TenderRepository {
	return &TenderRepository{db: db, logger: log}
}

// LoadSchema refreshes the cached unified_tenders column set from
// information_schema.
func (r *TenderRepository) LoadSchema(ctx context.Context) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT column_name FROM information_schema.columns WHERE table_name = $1`,
		unifiedTable)
	if err != nil {
		return fmt.Errorf("load unified schema: %w", err)
	}
	defer rows.Close()

	columns := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return fmt.Errorf("scan column name: %w", err)
		}
		columns[name] = true
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate columns: %w", err)
	}

	r.mu.Lock()
	r.columns = columns
	r.mu.Unlock()
	return nil
}

func (r *TenderRepository) knownColumn(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.columns == nil {
		// Schema not loaded; trust the mapping table and rely on the
		// strip-and-retry path.
		return true
	}
	return r.columns[name]
}

func (r *TenderRepository) forgetColumn(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.columns == nil {
		r.columns = make(map[string]bool)
		for _, fc := range fieldColumns {
			r.columns[fc.column] = true
		}
	}
	delete(r.columns, name)
}

// Upsert writes a record keyed by (source_table, source_id). Existing rows
// are updated in place with only the populated incoming fields, so a
// populated column is never overwritten by an empty value. Writes that
// fail on an unknown column are retried exactly once with the column
// stripped.
func (r *TenderRepository) Upsert(ctx context.Context, t *domain.UnifiedTender) error {
	if t.SourceTable == "" || t.SourceID == "" {
		return errors.New("upsert: record missing natural key")
	}

	payload := r.buildPayload(t)
	if err := r.write(ctx, t, payload); err != nil {
		column, drifted := undefinedColumn(err)
		if !drifted {
			return err
		}
		if _, present := payload[column]; !present {
			return err
		}
		if r.logger != nil {
			r.logger.Warn("unified_tenders missing column, retrying without it",
				logger.String("column", column),
				logger.String("table", t.SourceTable),
				logger.String("source_id", t.SourceID))
		}
		r.forgetColumn(column)
		delete(payload, column)
		if r.OnColumnDropped != nil {
			r.OnColumnDropped(column)
		}
		if err := r.write(ctx, t, payload); err != nil {
			return fmt.Errorf("upsert retry after dropping %q: %w", column, err)
		}
	}
	return nil
}

// buildPayload renders the record through the mapping table, filtered
// against the live column set.
func (r *TenderRepository) buildPayload(t *domain.UnifiedTender) map[string]any {
	payload := make(map[string]any, len(fieldColumns))
	for _, fc := range fieldColumns {
		v := fc.value(t)
		if v == nil {
			continue
		}
		if !r.knownColumn(fc.column) {
			if r.logger != nil {
				r.logger.Debug("skipping column absent from live schema",
					logger.String("column", fc.column))
			}
			continue
		}
		payload[fc.column] = v
	}
	return payload
}

func (r *TenderRepository) write(ctx context.Context, t *domain.UnifiedTender, payload map[string]any) error {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM unified_tenders WHERE source_table = $1 AND source_id = $2)`,
		t.SourceTable, t.SourceID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check existing record: %w", err)
	}

	if exists {
		return r.update(ctx, t, payload)
	}
	return r.insert(ctx, t, payload)
}

func (r *TenderRepository) update(ctx context.Context, t *domain.UnifiedTender, payload map[string]any) error {
	if len(payload) == 0 {
		return nil
	}

	assignments := make([]string, 0, len(payload)+1)
	args := make([]any, 0, len(payload)+2)
	i := 1
	for _, fc := range fieldColumns {
		v, ok := payload[fc.column]
		if !ok {
			continue
		}
		assignments = append(assignments, fmt.Sprintf("%s = $%d", fc.column, i))
		args = append(args, v)
		i++
	}
	assignments = append(assignments, "updated_at = CURRENT_TIMESTAMP")

	query := fmt.Sprintf(
		"UPDATE unified_tenders SET %s WHERE source_table = $%d AND source_id = $%d",
		strings.Join(assignments, ", "), i, i+1)
	args = append(args, t.SourceTable, t.SourceID)

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update unified tender: %w", err)
	}
	return nil
}

func (r *TenderRepository) insert(ctx context.Context, t *domain.UnifiedTender, payload map[string]any) error {
	columns := []string{"source_table", "source_id"}
	placeholders := []string{"$1", "$2"}
	args := []any{t.SourceTable, t.SourceID}
	i := 3
	for _, fc := range fieldColumns {
		v, ok := payload[fc.column]
		if !ok {
			continue
		}
		columns = append(columns, fc.column)
		placeholders = append(placeholders, fmt.Sprintf("$%d", i))
		args = append(args, v)
		i++
	}

	query := fmt.Sprintf(
		"INSERT INTO unified_tenders (%s) VALUES (%s)",
		strings.Join(columns, ", "), strings.Join(placeholders, ", "))

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert unified tender: %w", err)
	}
	return nil
}

// undefinedColumn extracts the offending column from an undefined-column
// error, structured or textual.
func undefinedColumn(err error) (string, bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == pqUndefinedColumn {
		if m := undefinedColumnRe.FindStringSubmatch(pqErr.Message); m != nil {
			return m[1], true
		}
	}
	msg := err.Error()
	if strings.Contains(msg, "does not exist") {
		if m := undefinedColumnRe.FindStringSubmatch(msg); m != nil {
			return m[1], true
		}
	}
	return "", false
}

// EnsureUniqueConstraint guarantees the natural-key unique constraint that
// the upsert depends on. Idempotent and race-tolerant.
func (r *TenderRepository) EnsureUniqueConstraint(ctx context.Context) error {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM pg_constraint WHERE conname = 'unique_source')`).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check unique constraint: %w", err)
	}
	if exists {
		return nil
	}

	_, err = r.db.ExecContext(ctx,
		`ALTER TABLE unified_tenders ADD CONSTRAINT unique_source UNIQUE (source_table, source_id)`)
	if err != nil {
		// A concurrent run may have added it first.
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "duplicate_object" {
			return nil
		}
		return fmt.Errorf("add unique constraint: %w", err)
	}
	if r.logger != nil {
		r.logger.Info("added unique_source constraint to unified_tenders")
	}
	return nil
}

// FetchUnnormalized returns up to limit raw rows of a source table that
// have no unified record yet. The anti-join casts the source id to text
// only when the probed id column is not already textual. If the anti-join
// query fails (legacy schemas), it falls back to a plain fetch and lets
// the upsert deduplicate.
func (r *TenderRepository) FetchUnnormalized(ctx context.Context, table string, limit int, skipNormalized bool) ([]domain.SourceRow, error) {
	if !validIdentifier(table) {
		return nil, fmt.Errorf("invalid source table name %q", table)
	}
	if limit <= 0 {
		limit = 100
	}

	if !skipNormalized {
		return r.fetchAll(ctx, table, limit)
	}

	idExpr := "t.id::text"
	if idType, err := r.idColumnType(ctx, table); err == nil && isTextType(idType) {
		idExpr = "t.id"
	}

	query := fmt.Sprintf(`
		SELECT t.* FROM %s t
		WHERE NOT EXISTS (
			SELECT 1 FROM unified_tenders u
			WHERE u.source_table = $1 AND u.source_id = %s
		)
		ORDER BY t.id
		LIMIT $2`, pq.QuoteIdentifier(table), idExpr)

	rows, err := r.db.QueryxContext(ctx, query, table, limit)
	if err != nil {
		if r.logger != nil {
			r.logger.Warn("anti-join fetch failed, falling back to full fetch",
				logger.String("table", table),
				logger.Error(err))
		}
		return r.fetchAll(ctx, table, limit)
	}
	defer rows.Close()

	return scanSourceRows(rows)
}

func (r *TenderRepository) fetchAll(ctx context.Context, table string, limit int) ([]domain.SourceRow, error) {
	query := fmt.Sprintf("SELECT * FROM %s ORDER BY id LIMIT $1", pq.QuoteIdentifier(table))
	rows, err := r.db.QueryxContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("fetch rows from %s: %w", table, err)
	}
	defer rows.Close()

	return scanSourceRows(rows)
}

// CountPending returns how many rows of a source table still lack a
// unified record.
func (r *TenderRepository) CountPending(ctx context.Context, table string, skipNormalized bool) (int, error) {
	if !validIdentifier(table) {
		return 0, fmt.Errorf("invalid source table name %q", table)
	}

	if !skipNormalized {
		var count int
		query := fmt.Sprintf("SELECT COUNT(*) FROM %s", pq.QuoteIdentifier(table))
		if err := r.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
			return 0, fmt.Errorf("count rows in %s: %w", table, err)
		}
		return count, nil
	}

	idExpr := "t.id::text"
	if idType, err := r.idColumnType(ctx, table); err == nil && isTextType(idType) {
		idExpr = "t.id"
	}

	var count int
	query := fmt.Sprintf(`
		SELECT COUNT(*) FROM %s t
		WHERE NOT EXISTS (
			SELECT 1 FROM unified_tenders u
			WHERE u.source_table = $1 AND u.source_id = %s
		)`, pq.QuoteIdentifier(table), idExpr)
	if err := r.db.QueryRowContext(ctx, query, table).Scan(&count); err != nil {
		return 0, fmt.Errorf("count pending rows in %s: %w", table, err)
	}
	return count, nil
}

// idColumnType probes information_schema for the type of a table's id
// column.
func (r *TenderRepository) idColumnType(ctx context.Context, table string) (string, error) {
	var dataType string
	err := r.db.QueryRowContext(ctx,
		`SELECT data_type FROM information_schema.columns WHERE table_name = $1 AND column_name = 'id'`,
		table).Scan(&dataType)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("table %s has no id column", table)
		}
		return "", fmt.Errorf("probe id column type: %w", err)
	}
	return dataType, nil
}

func isTextType(dataType string) bool {
	switch strings.ToLower(dataType) {
	case "text", "character varying", "varchar", "character", "uuid":
		return true
	}
	return false
}

// scanSourceRows materializes result rows as maps, decoding JSONB columns
// that arrive as raw bytes.
func scanSourceRows(rows *sqlx.Rows) ([]domain.SourceRow, error) {
	var result []domain.SourceRow
	for rows.Next() {
		row := make(map[string]any)
		if err := rows.MapScan(row); err != nil {
			return nil, fmt.Errorf("scan source row: %w", err)
		}
		for key, value := range row {
			if raw, ok := value.([]byte); ok {
				row[key] = decodeRawColumn(raw)
			}
		}
		result = append(result, domain.SourceRow(row))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate source rows: %w", err)
	}
	return result, nil
}

// decodeRawColumn turns byte columns into structured values when they hold
// JSON, strings otherwise.
func decodeRawColumn(raw []byte) any {
	trimmed := strings.TrimSpace(string(raw))
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		var decoded any
		if err := json.Unmarshal(raw, &decoded); err == nil {
			return decoded
		}
	}
	return string(raw)
}

var identifierRe = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

func validIdentifier(name string) bool {
	return identifierRe.MatchString(name)
}
