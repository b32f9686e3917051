package adapters

import (
	"context"
	"time"

	"github.com/tenderhub/normalizer/internal/domain"
	"github.com/tenderhub/normalizer/internal/extract"
	"github.com/tenderhub/normalizer/internal/lang"
)

// WBAdapter normalizes World Bank procurement notices.
type WBAdapter struct {
	base
}

func (a *WBAdapter) Table() string { return domain.TableWB }

func (a *WBAdapter) Normalize(ctx context.Context, row domain.SourceRow, stats *lang.Stats) (*domain.UnifiedTender, error) {
	if err := requireFields(row, domain.TableWB, "id", "title"); err != nil {
		return nil, err
	}

	started := time.Now()
	t := a.newTender(domain.TableWB, row.ID("id"), row)

	t.Title = row.String("title")
	t.Description = firstNonEmpty(
		row.String("description"),
		row.String("bid_description"),
		row.String("project_ctry_name_details"),
	)
	t.TenderType = row.String("notice_type")
	t.NoticeID = row.String("notice_no")
	t.ProjectID = row.String("project_id")
	t.ProjectName = row.String("project_name")
	t.URL = row.String("url")

	setDate(t, &t.PublicationDate, "published_at_raw", firstNonEmpty(
		row.String("publication_date"), row.String("noticedate")))
	setDate(t, &t.DeadlineDate, "deadline_raw", firstNonEmpty(
		row.String("deadline_date"), row.String("bid_deadline_date")))

	country, method := extract.EnsureCountry(extract.CountryInput{
		Explicit:     firstNonEmpty(row.String("country"), row.String("project_ctry_name")),
		Text:         t.Title + " " + t.Description,
		Organization: row.String("contact_organization"),
		Email:        row.String("contact_email"),
	})
	t.Country = country
	if method != extract.CountryFromExplicit {
		t.AddFallback("country_method", method)
	}

	// The borrower is the issuing organization when no explicit contact
	// organization exists.
	t.OrganizationName = firstNonEmpty(
		row.String("contact_organization"),
		row.String("borrower"),
	)
	t.ContactName = row.String("contact_name")
	t.ContactEmail = row.String("contact_email")
	t.ContactPhone = row.String("contact_phone")
	t.ContactAddress = row.String("contact_address")

	t.ProcurementMethod = extract.StandardizeProcurementMethod(
		row.String("procurement_method"))
	if raw := row.String("tender_status"); raw != "" {
		t.Status = extract.StandardizeStatus(raw)
	}

	if links, ok := row.Value("document_links"); ok {
		t.DocumentLinks = extract.NormalizeDocumentLinks(links)
	}
	if t.Language == "" {
		t.Language = row.String("language")
	}

	a.finish(ctx, t, stats, started)
	return t, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
