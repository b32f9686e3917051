package adapters

import (
	"context"
	"time"

	"github.com/tenderhub/normalizer/internal/domain"
	"github.com/tenderhub/normalizer/internal/lang"
)

// ADBAdapter normalizes Asian Development Bank tender notices.
type ADBAdapter struct {
	base
}

func (a *ADBAdapter) Table() string { return domain.TableADB }

func (a *ADBAdapter) Normalize(ctx context.Context, row domain.SourceRow, stats *lang.Stats) (*domain.UnifiedTender, error) {
	if err := requireFields(row, domain.TableADB, "id", "notice_title", "type", "country", "publication_date"); err != nil {
		return nil, err
	}

	started := time.Now()
	t := a.newTender(domain.TableADB, row.ID("id"), row)

	t.Title = row.String("notice_title")
	t.Description = row.String("description")
	t.TenderType = row.String("type")
	t.Country = row.String("country")
	t.ProjectID = row.String("project_id")
	t.ProjectName = row.String("project_name")
	t.ProjectNumber = row.String("project_number")
	t.Sector = row.String("sector")
	t.URL = row.String("pdf_url")
	t.ReferenceNumber = row.String("borrower_bid_no")

	// ADB publishes bare dates; they are promoted to midnight UTC.
	setDate(t, &t.PublicationDate, "published_at_raw", row.String("publication_date"))
	setDate(t, &t.DeadlineDate, "deadline_raw", row.String("due_date"))

	if a.svc != nil {
		if code := a.svc.Detect(t.Title); code != "" {
			t.Language = code
		} else if code := a.svc.Detect(t.Description); code != "" {
			t.Language = code
		}
	}

	a.finish(ctx, t, stats, started)
	return t, nil
}
