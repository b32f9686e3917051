package adapters

import (
	"context"
	"time"

	"github.com/tenderhub/normalizer/internal/domain"
	"github.com/tenderhub/normalizer/internal/extract"
	"github.com/tenderhub/normalizer/internal/lang"
)

// AFDAdapter normalizes Agence Française de Développement tender notices.
// AFD rows are frequently French, so the translation pipeline does real
// work here.
type AFDAdapter struct {
	base
}

func (a *AFDAdapter) Table() string { return domain.TableAFD }

func (a *AFDAdapter) Normalize(ctx context.Context, row domain.SourceRow, stats *lang.Stats) (*domain.UnifiedTender, error) {
	if err := requireFields(row, domain.TableAFD, "id", "notice_content"); err != nil {
		return nil, err
	}

	started := time.Now()
	t := a.newTender(domain.TableAFD, row.ID("id"), row)

	t.Title = firstNonEmpty(row.String("notice_title"), "No title")
	t.Description = row.String("notice_content")
	t.TenderType = row.String("notice_type")
	t.OrganizationName = row.String("agency")
	t.City = row.String("city_locality")
	t.ContactEmail = row.String("email")
	t.URL = row.String("url")
	t.Language = row.String("original_language")

	setDate(t, &t.PublicationDate, "published_at_raw", row.String("launch_date"))
	setDate(t, &t.DeadlineDate, "deadline_raw", row.String("deadline"))

	country, method := extract.EnsureCountry(extract.CountryInput{
		Explicit:     row.String("country"),
		Text:         t.Title + " " + t.Description,
		Organization: t.OrganizationName,
		Email:        t.ContactEmail,
		Language:     t.Language,
	})
	t.Country = country
	if method != extract.CountryFromExplicit {
		t.AddFallback("country_method", method)
	}

	// Consulting services lists double as document links.
	if services, ok := row.Value("services"); ok {
		t.DocumentLinks = extract.NormalizeDocumentLinks(services)
	}

	a.finish(ctx, t, stats, started)
	return t, nil
}
