package adapters

import (
	"context"
	"strings"
	"time"

	"github.com/tenderhub/normalizer/internal/domain"
	"github.com/tenderhub/normalizer/internal/extract"
	"github.com/tenderhub/normalizer/internal/lang"
)

// UNGMAdapter normalizes United Nations Global Marketplace notices.
type UNGMAdapter struct {
	base
}

func (a *UNGMAdapter) Table() string { return domain.TableUNGM }

func (a *UNGMAdapter) Normalize(ctx context.Context, row domain.SourceRow, stats *lang.Stats) (*domain.UnifiedTender, error) {
	if err := requireFields(row, domain.TableUNGM, "id", "title"); err != nil {
		return nil, err
	}

	started := time.Now()
	t := a.newTender(domain.TableUNGM, row.ID("id"), row)

	t.Title = row.String("title")
	t.Description = row.String("description")
	t.TenderType = row.String("notice_type")
	t.OrganizationName = row.String("agency")
	t.NoticeID = row.String("reference")
	t.ReferenceNumber = row.String("reference")
	t.ContactEmail = row.String("contact_email")
	t.URL = row.String("url")

	setDate(t, &t.PublicationDate, "published_at_raw", row.String("published_on"))
	// UNGM deadlines carry a trailing timezone label ("... GMT 1.00").
	setDate(t, &t.DeadlineDate, "deadline_raw", trimTimezoneLabel(row.String("deadline_on")))

	country, method := extract.EnsureCountry(extract.CountryInput{
		Explicit:     firstNonEmpty(row.String("beneficiary_countries"), row.String("country")),
		Text:         t.Title + " " + t.Description,
		Organization: t.OrganizationName,
		Email:        t.ContactEmail,
	})
	t.Country = country
	if method != extract.CountryFromExplicit {
		t.AddFallback("country_method", method)
	}

	// UNSPSC descriptions feed sector inference when nothing else does.
	if t.Sector == "" {
		if unspsc := strings.Join(stringList(row, "unspscs", "unspsc_codes"), " "); unspsc != "" {
			t.Sector = extract.ExtractSector(unspsc)
		}
	}

	if links, ok := row.Value("documents"); ok {
		t.DocumentLinks = extract.NormalizeDocumentLinks(links)
	}
	if links, ok := row.Value("links"); ok {
		t.DocumentLinks = append(t.DocumentLinks, extract.NormalizeDocumentLinks(links)...)
		t.DocumentLinks = extract.NormalizeDocumentLinks(anyDocuments(t.DocumentLinks))
	}

	a.finish(ctx, t, stats, started)
	return t, nil
}

// trimTimezoneLabel drops a trailing "GMT x.xx" style suffix that defeats
// layout parsing.
func trimTimezoneLabel(s string) string {
	if idx := strings.Index(s, " GMT"); idx > 0 {
		return strings.TrimSpace(s[:idx])
	}
	return s
}

// anyDocuments re-wraps documents so the dedupe pass in
// NormalizeDocumentLinks can run over a merged list.
func anyDocuments(docs []domain.Document) []any {
	out := make([]any, len(docs))
	for i, d := range docs {
		out[i] = d
	}
	return out
}
