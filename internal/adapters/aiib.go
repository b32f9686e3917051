package adapters

import (
	"context"
	"fmt"
	"time"

	"github.com/tenderhub/normalizer/internal/domain"
	"github.com/tenderhub/normalizer/internal/lang"
)

// AIIBAdapter normalizes Asian Infrastructure Investment Bank notices.
// AIIB rows are sparse: only the id is guaranteed, so every other field is
// best-effort.
type AIIBAdapter struct {
	base
}

func (a *AIIBAdapter) Table() string { return domain.TableAIIB }

func (a *AIIBAdapter) Normalize(ctx context.Context, row domain.SourceRow, stats *lang.Stats) (*domain.UnifiedTender, error) {
	if err := requireFields(row, domain.TableAIIB, "id"); err != nil {
		return nil, err
	}

	started := time.Now()
	id := row.ID("id")
	t := a.newTender(domain.TableAIIB, id, row)

	t.Title = firstNonEmpty(
		row.String("project_notice"),
		row.String("title"),
		fmt.Sprintf("AIIB Tender - %s", id),
	)
	// Scraped PDF text stands in for a description.
	t.Description = firstNonEmpty(row.String("pdf_content"), row.String("description"))
	t.TenderType = row.String("type")
	t.Sector = row.String("sector")
	t.Country = row.String("member")
	t.URL = row.String("url")

	setDate(t, &t.PublicationDate, "published_at_raw", row.String("date"))
	setDate(t, &t.DeadlineDate, "deadline_raw", row.String("due_date"))

	a.finish(ctx, t, stats, started)
	return t, nil
}
