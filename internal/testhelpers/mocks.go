// Package testhelpers provides shared test utilities for the normalization
// engine.
package testhelpers

import (
	"context"
	"errors"
	"sync"

	"github.com/tenderhub/normalizer/internal/domain"
	"github.com/tenderhub/normalizer/internal/logger"
)

// ErrTenderNotFound is returned when a tender is not in the mock store.
var ErrTenderNotFound = errors.New("tender not found")

// MockTenderStore is an in-memory TenderStore. Rows are handed out per
// source table in FetchUnnormalized order; upserted tenders are kept by
// natural key.
type MockTenderStore struct {
	mu      sync.Mutex
	rows    map[string][]domain.SourceRow
	tenders map[string]*domain.UnifiedTender

	FetchErr  error
	CountErr  error
	UpsertErr error

	// FailUpsertFor makes Upsert fail for specific source IDs.
	FailUpsertFor map[string]bool
}

// NewMockTenderStore creates an empty mock store.
func NewMockTenderStore() *MockTenderStore {
	return &MockTenderStore{
		rows:    make(map[string][]domain.SourceRow),
		tenders: make(map[string]*domain.UnifiedTender),
	}
}

// SeedRows loads raw rows for a source table.
func (m *MockTenderStore) SeedRows(table string, rows []domain.SourceRow) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[table] = append(m.rows[table], rows...)
}

// FetchUnnormalized pops up to limit rows for the table.
func (m *MockTenderStore) FetchUnnormalized(_ context.Context, table string, limit int, _ bool) ([]domain.SourceRow, error) {
	if m.FetchErr != nil {
		return nil, m.FetchErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	pending := m.rows[table]
	if limit <= 0 || limit > len(pending) {
		limit = len(pending)
	}
	batch := pending[:limit]
	m.rows[table] = pending[limit:]
	return batch, nil
}

// CountPending returns the number of seeded rows remaining for the table.
func (m *MockTenderStore) CountPending(_ context.Context, table string, _ bool) (int, error) {
	if m.CountErr != nil {
		return 0, m.CountErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows[table]), nil
}

// Upsert stores the tender by natural key.
func (m *MockTenderStore) Upsert(_ context.Context, t *domain.UnifiedTender) error {
	if m.UpsertErr != nil {
		return m.UpsertErr
	}
	if m.FailUpsertFor != nil && m.FailUpsertFor[t.SourceID] {
		return errors.New("simulated upsert failure")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tenders[t.SourceTable+"/"+t.SourceID] = t
	return nil
}

// Get returns a stored tender by natural key.
func (m *MockTenderStore) Get(table, sourceID string) (*domain.UnifiedTender, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.tenders[table+"/"+sourceID]; ok {
		return t, nil
	}
	return nil, ErrTenderNotFound
}

// Stored returns the number of upserted tenders.
func (m *MockTenderStore) Stored() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tenders)
}

// LogCall is one recorded log invocation.
type LogCall struct {
	Msg    string
	Fields []logger.Field
}

// RecordingLogger captures log calls for assertions. Fatal records instead
// of exiting.
type RecordingLogger struct {
	mu         sync.Mutex
	DebugCalls []LogCall
	InfoCalls  []LogCall
	WarnCalls  []LogCall
	ErrorCalls []LogCall
}

// NewRecordingLogger creates an empty recording logger.
func NewRecordingLogger() *RecordingLogger {
	return &RecordingLogger{}
}

func (l *RecordingLogger) Debug(msg string, fields ...logger.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.DebugCalls = append(l.DebugCalls, LogCall{Msg: msg, Fields: fields})
}

func (l *RecordingLogger) Info(msg string, fields ...logger.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.InfoCalls = append(l.InfoCalls, LogCall{Msg: msg, Fields: fields})
}

func (l *RecordingLogger) Warn(msg string, fields ...logger.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.WarnCalls = append(l.WarnCalls, LogCall{Msg: msg, Fields: fields})
}

func (l *RecordingLogger) Error(msg string, fields ...logger.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.ErrorCalls = append(l.ErrorCalls, LogCall{Msg: msg, Fields: fields})
}

func (l *RecordingLogger) Fatal(msg string, fields ...logger.Field) {
	l.Error(msg, fields...)
}

func (l *RecordingLogger) With(_ ...logger.Field) logger.Logger { return l }
func (l *RecordingLogger) Sync() error                          { return nil }
