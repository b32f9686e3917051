package adapters

import (
	"context"
	"fmt"
	"sort"

	"github.com/tenderhub/normalizer/internal/domain"
	"github.com/tenderhub/normalizer/internal/lang"
	"github.com/tenderhub/normalizer/internal/logger"
)

// Registry maps source tables to their adapters and owns the row-level
// error containment tier.
type Registry struct {
	adapters map[string]Adapter
	log      logger.Logger
}

// NewRegistry builds a registry with every supported source registered.
func NewRegistry(svc *lang.Service, log logger.Logger) *Registry {
	b := base{svc: svc, log: log}
	r := &Registry{
		adapters: make(map[string]Adapter),
		log:      log,
	}
	for _, a := range []Adapter{
		&ADBAdapter{base: b},
		&AFDAdapter{base: b},
		&AFDBAdapter{base: b},
		&AIIBAdapter{base: b},
		&IADBAdapter{base: b},
		&SamGovAdapter{base: b},
		&TEDEuAdapter{base: b},
		&UNGMAdapter{base: b},
		&WBAdapter{base: b},
	} {
		r.adapters[a.Table()] = a
	}
	return r
}

// Get returns the adapter for a table.
func (r *Registry) Get(table string) (Adapter, bool) {
	a, ok := r.adapters[table]
	return a, ok
}

// Tables returns the registered source tables in stable order.
func (r *Registry) Tables() []string {
	tables := make([]string, 0, len(r.adapters))
	for table := range r.adapters {
		tables = append(tables, table)
	}
	sort.Strings(tables)
	return tables
}

// NormalizeRow runs one row through its adapter. Adapter errors and panics
// are contained: the row comes back as an error stub, never lost. A nil
// record with an error is returned only when the row cannot be keyed or the
// table has no adapter.
func (r *Registry) NormalizeRow(ctx context.Context, table string, row domain.SourceRow, stats *lang.Stats) (t *domain.UnifiedTender, err error) {
	adapter, ok := r.adapters[table]
	if !ok {
		return nil, fmt.Errorf("no adapter registered for table %q", table)
	}

	id := rowID(table, row)
	if id == "" {
		return nil, fmt.Errorf("%w: table %s", ErrMissingID, table)
	}

	defer func() {
		if rec := recover(); rec != nil {
			if r.log != nil {
				r.log.Error("adapter panic contained",
					logger.String("table", table),
					logger.String("source_id", id),
					logger.Any("panic", rec))
			}
			t = errorStub(table, id, row, fmt.Errorf("adapter panic: %v", rec))
			err = nil
		}
	}()

	t, normErr := adapter.Normalize(ctx, row, stats)
	if normErr != nil {
		if r.log != nil {
			r.log.Warn("row normalization failed, emitting stub",
				logger.String("table", table),
				logger.String("source_id", id),
				logger.Error(normErr))
		}
		return errorStub(table, id, row, normErr), nil
	}
	return t, nil
}

// rowID extracts the natural identifier of a raw row. IADB keys rows by
// project number, sam_gov by opportunity id; everything else uses id.
func rowID(table string, row domain.SourceRow) string {
	switch table {
	case domain.TableIADB:
		return row.ID("project_number", "id")
	case domain.TableSamGov:
		return row.ID("opportunity_id", "id")
	case domain.TableTEDEu:
		return row.ID("id", "publication_number")
	default:
		return row.ID("id")
	}
}
