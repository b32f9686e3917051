//nolint:testpackage // exercises query construction against a mock driver
package database

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tenderhub/normalizer/internal/domain"
)

func newMockRepository(t *testing.T) (*TenderRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewTenderRepository(sqlx.NewDb(db, "sqlmock"), nil), mock
}

func TestUpsert_InsertsNewRecord(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("wb", "1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec(`INSERT INTO unified_tenders \(source_table, source_id, title, country\) VALUES \(\$1, \$2, \$3, \$4\)`).
		WithArgs("wb", "1", "Road works", "Kenya").
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Upsert(context.Background(), &domain.UnifiedTender{
		SourceTable: "wb",
		SourceID:    "1",
		Title:       "Road works",
		Country:     "Kenya",
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsert_UpdateWritesOnlyPopulatedFields(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("wb", "1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	// Empty incoming fields never appear in the assignment list, so they
	// cannot clobber populated columns.
	mock.ExpectExec(`UPDATE unified_tenders SET title_english = \$1, updated_at = CURRENT_TIMESTAMP WHERE source_table = \$2 AND source_id = \$3`).
		WithArgs("Road works", "wb", "1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Upsert(context.Background(), &domain.UnifiedTender{
		SourceTable:  "wb",
		SourceID:     "1",
		TitleEnglish: "Road works",
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsert_MissingNaturalKeyRejected(t *testing.T) {
	repo, _ := newMockRepository(t)
	err := repo.Upsert(context.Background(), &domain.UnifiedTender{SourceTable: "wb"})
	assert.Error(t, err)
}

func TestUpsert_DriftedColumnStrippedAndRetriedOnce(t *testing.T) {
	repo, mock := newMockRepository(t)

	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	tender := &domain.UnifiedTender{
		SourceTable:  "wb",
		SourceID:     "1",
		Title:        "Road works",
		NormalizedAt: &now,
	}

	driftErr := &pq.Error{
		Code:    pqUndefinedColumn,
		Message: `column "normalized_at" of relation "unified_tenders" does not exist`,
	}

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("wb", "1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec(`INSERT INTO unified_tenders \(source_table, source_id, title, normalized_at\)`).
		WithArgs("wb", "1", "Road works", now).
		WillReturnError(driftErr)

	// Retry goes through the existence check again, without the column.
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("wb", "1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec(`INSERT INTO unified_tenders \(source_table, source_id, title\) VALUES \(\$1, \$2, \$3\)`).
		WithArgs("wb", "1", "Road works").
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.Upsert(context.Background(), tender))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsert_SecondDriftFailureIsFatal(t *testing.T) {
	repo, mock := newMockRepository(t)

	tender := &domain.UnifiedTender{
		SourceTable: "wb",
		SourceID:    "1",
		Title:       "Road works",
		Sector:      "Transportation",
	}

	mock.ExpectQuery("SELECT EXISTS").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec("INSERT INTO unified_tenders").
		WillReturnError(&pq.Error{Code: pqUndefinedColumn, Message: `column "sector" does not exist`})
	mock.ExpectQuery("SELECT EXISTS").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec("INSERT INTO unified_tenders").
		WillReturnError(&pq.Error{Code: pqUndefinedColumn, Message: `column "title" does not exist`})

	err := repo.Upsert(context.Background(), tender)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upsert retry")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsert_SchemaCacheFiltersUnknownColumns(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery("SELECT column_name FROM information_schema.columns").
		WithArgs(unifiedTable).
		WillReturnRows(sqlmock.NewRows([]string{"column_name"}).
			AddRow("source_table").AddRow("source_id").AddRow("title"))
	require.NoError(t, repo.LoadSchema(context.Background()))

	mock.ExpectQuery("SELECT EXISTS").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	// Country is populated on the record but absent from the live schema,
	// so the insert never mentions it.
	mock.ExpectExec(`INSERT INTO unified_tenders \(source_table, source_id, title\) VALUES \(\$1, \$2, \$3\)`).
		WithArgs("wb", "1", "Road works").
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Upsert(context.Background(), &domain.UnifiedTender{
		SourceTable: "wb",
		SourceID:    "1",
		Title:       "Road works",
		Country:     "Kenya",
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureUniqueConstraint(t *testing.T) {
	t.Run("already present", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		mock.ExpectQuery("SELECT EXISTS").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
		require.NoError(t, repo.EnsureUniqueConstraint(context.Background()))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("added when missing", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		mock.ExpectQuery("SELECT EXISTS").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectExec("ALTER TABLE unified_tenders ADD CONSTRAINT unique_source").
			WillReturnResult(sqlmock.NewResult(0, 0))
		require.NoError(t, repo.EnsureUniqueConstraint(context.Background()))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("concurrent creation tolerated", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		mock.ExpectQuery("SELECT EXISTS").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectExec("ALTER TABLE unified_tenders").
			WillReturnError(&pq.Error{Code: "42710"}) // duplicate_object
		require.NoError(t, repo.EnsureUniqueConstraint(context.Background()))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestFetchUnnormalized_AntiJoin(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery("SELECT data_type FROM information_schema.columns").
		WithArgs("wb").
		WillReturnRows(sqlmock.NewRows([]string{"data_type"}).AddRow("integer"))
	mock.ExpectQuery(`SELECT t\.\* FROM "wb" t`).
		WithArgs("wb", 5).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "document_links"}).
			AddRow(int64(7), "Road works", []byte(`[{"url":"https://example.org/a.pdf"}]`)))

	rows, err := repo.FetchUnnormalized(context.Background(), "wb", 5, true)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, "7", rows[0].ID("id"))
	assert.Equal(t, "Road works", rows[0].String("title"))

	// JSONB byte payloads are decoded into structured values.
	links, ok := rows[0].Value("document_links")
	require.True(t, ok)
	assert.IsType(t, []any{}, links)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFetchUnnormalized_FallsBackWhenAntiJoinFails(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery("SELECT data_type FROM information_schema.columns").
		WithArgs("wb").
		WillReturnRows(sqlmock.NewRows([]string{"data_type"}).AddRow("integer"))
	mock.ExpectQuery(`SELECT t\.\* FROM "wb" t`).
		WillReturnError(assert.AnError)
	mock.ExpectQuery(`SELECT \* FROM "wb" ORDER BY id LIMIT`).
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title"}).AddRow(int64(1), "A"))

	rows, err := repo.FetchUnnormalized(context.Background(), "wb", 10, true)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFetchUnnormalized_RejectsInvalidTableName(t *testing.T) {
	repo, _ := newMockRepository(t)
	_, err := repo.FetchUnnormalized(context.Background(), `wb"; DROP TABLE x;`, 10, true)
	assert.Error(t, err)
}

func TestCountPending(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM "wb"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))

	count, err := repo.CountPending(context.Background(), "wb", false)
	require.NoError(t, err)
	assert.Equal(t, 42, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUndefinedColumn(t *testing.T) {
	column, ok := undefinedColumn(&pq.Error{
		Code:    pqUndefinedColumn,
		Message: `column "city" of relation "unified_tenders" does not exist`,
	})
	assert.True(t, ok)
	assert.Equal(t, "city", column)

	column, ok = undefinedColumn(assert.AnError)
	assert.False(t, ok)
	assert.Empty(t, column)
}
