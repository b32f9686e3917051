// Package adapters converts raw rows from each source table into canonical
// tender records. Every adapter runs the same pipeline: validate the row,
// extract typed fields, translate bilingual pairs, emit. Failures at any
// step produce an error-stub record so the row is never silently lost.
package adapters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tenderhub/normalizer/internal/domain"
	"github.com/tenderhub/normalizer/internal/extract"
	"github.com/tenderhub/normalizer/internal/lang"
	"github.com/tenderhub/normalizer/internal/logger"
)

// ErrMissingID means the row carries no usable identifier, so not even an
// error stub can be keyed.
var ErrMissingID = errors.New("row has no source identifier")

// Adapter normalizes rows of one source table.
type Adapter interface {
	// Table returns the source table this adapter handles.
	Table() string
	// Normalize converts one raw row. Validation and extraction errors are
	// returned, not swallowed; the registry turns them into error stubs.
	Normalize(ctx context.Context, row domain.SourceRow, stats *lang.Stats) (*domain.UnifiedTender, error)
}

// base carries the collaborators shared by all adapters.
type base struct {
	svc *lang.Service
	log logger.Logger
}

// newTender seeds a record with its natural key and audit copy.
func (b base) newTender(table, id string, row domain.SourceRow) *domain.UnifiedTender {
	return &domain.UnifiedTender{
		SourceTable:  table,
		SourceID:     id,
		OriginalData: row.JSON(),
	}
}

// finish runs the shared tail of the pipeline: country sentinel, status and
// method fallbacks, sector inference, translation, timing.
func (b base) finish(ctx context.Context, t *domain.UnifiedTender, stats *lang.Stats, started time.Time) {
	text := t.Title + " " + t.Description

	if t.Country == "" {
		country, method := extract.EnsureCountry(extract.CountryInput{
			Text:         text,
			Organization: t.OrganizationName,
			Email:        t.ContactEmail,
			Language:     t.Language,
		})
		t.Country = country
		if method != extract.CountryFromExplicit {
			t.AddFallback("country_method", method)
		}
	}
	if t.City == "" {
		t.City = extract.CityForCountry(t.Country, text)
	}

	if t.EstimatedValue == nil {
		if value, currency := extract.ExtractFinancialInfo(text); value != nil {
			t.EstimatedValue = value
			if t.Currency == "" {
				t.Currency = currency
			}
		}
	}
	t.EstimatedValue, t.Currency = extract.NormalizeValue(t.EstimatedValue, t.Currency)

	if t.OrganizationName == "" || t.Buyer == "" {
		org, buyer := extract.ExtractOrganizationAndBuyer(t.Description)
		if t.OrganizationName == "" {
			t.OrganizationName = org
		}
		if t.Buyer == "" {
			t.Buyer = buyer
		}
	}

	if t.Status == "" {
		t.Status = extract.ExtractStatus(text, t.DeadlineDate, t.PublicationDate)
	}
	if t.ProcurementMethod == "" {
		t.ProcurementMethod = extract.ExtractProcurementMethod(text)
	}
	if t.NormalizedMethod == "" {
		if t.ProcurementMethod != "" {
			t.NormalizedMethod = extract.StandardizeProcurementMethod(t.ProcurementMethod)
		} else {
			t.NormalizedMethod = domain.NormalizedMethodDefault(t.SourceTable)
		}
	}
	if t.Sector == "" {
		t.Sector = extract.ExtractSector(text)
	}

	if t.Language == "" && b.svc != nil {
		if t.Title != "" {
			t.Language = b.svc.Detect(t.Title)
		} else if t.Description != "" {
			t.Language = b.svc.Detect(t.Description)
		}
	}
	if t.Language == "" {
		t.Language = "en"
	}

	lang.Apply(ctx, t, b.svc, stats)

	now := time.Now().UTC()
	t.NormalizedAt = &now
	t.ProcessedAt = &now
	t.ProcessingTimeMS = time.Since(started).Milliseconds()
}

// setDate parses a raw date string into the target field, keeping the
// verbatim value as provenance when no layout matches.
func setDate(t *domain.UnifiedTender, target **time.Time, provenanceKey, raw string) {
	if raw == "" {
		return
	}
	if parsed, ok := extract.ParseDate(raw); ok {
		promoted := extract.PromoteDate(*parsed)
		*target = &promoted
		return
	}
	t.AddFallback(provenanceKey, raw)
}

// requireFields validates that every named column is present and non-empty.
func requireFields(row domain.SourceRow, table string, columns ...string) error {
	for _, col := range columns {
		if !row.Has(col) {
			return fmt.Errorf("%s row missing required field %q", table, col)
		}
	}
	return nil
}

// errorStub builds the failure-path record: natural key, the error-marker
// title, audit copy, and the error as fallback reason. Extraction results
// are deliberately absent.
func errorStub(table, id string, row domain.SourceRow, cause error) *domain.UnifiedTender {
	now := time.Now().UTC()
	stub := &domain.UnifiedTender{
		SourceTable:  table,
		SourceID:     id,
		Title:        "Validation Error",
		Status:       domain.StatusUnknown,
		Country:      domain.CountryUnknown,
		OriginalData: row.JSON(),
		ProcessedAt:  &now,
	}
	stub.AddFallback("error", cause.Error())
	return stub
}
