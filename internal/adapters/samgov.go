package adapters

import (
	"context"
	"time"

	"github.com/tenderhub/normalizer/internal/domain"
	"github.com/tenderhub/normalizer/internal/extract"
	"github.com/tenderhub/normalizer/internal/lang"
)

// SamGovAdapter normalizes US federal opportunities from SAM.gov. Notices
// are English and default to the United States unless the place of
// performance says otherwise.
type SamGovAdapter struct {
	base
}

func (a *SamGovAdapter) Table() string { return domain.TableSamGov }

func (a *SamGovAdapter) Normalize(ctx context.Context, row domain.SourceRow, stats *lang.Stats) (*domain.UnifiedTender, error) {
	if err := requireFields(row, domain.TableSamGov, "opportunity_id", "org_key"); err != nil {
		return nil, err
	}

	started := time.Now()
	t := a.newTender(domain.TableSamGov, row.ID("opportunity_id"), row)

	t.Title = firstNonEmpty(row.String("opportunity_title"), row.String("title"))
	t.Description = row.String("description")
	t.TenderType = row.String("opportunity_type")
	t.OrganizationID = row.String("org_key")
	t.OrganizationName = row.String("organization_name")
	t.NoticeID = row.String("solicitation_number")
	t.URL = row.String("url")
	t.Language = "en"

	setDate(t, &t.PublicationDate, "published_at_raw", firstNonEmpty(
		row.String("publish_date"), row.String("posted_date")))
	setDate(t, &t.DeadlineDate, "deadline_raw", firstNonEmpty(
		row.String("response_date"), row.String("archive_date")))

	a.applyPlaceOfPerformance(t, row)
	a.applyContacts(t, row)

	if raw := row.String("opportunity_status"); raw != "" {
		t.Status = extract.StandardizeStatus(raw)
	}
	t.ProcurementMethod = extract.StandardizeProcurementMethod(
		row.String("competition_type"))

	if links, ok := row.Value("resource_links"); ok {
		t.DocumentLinks = extract.NormalizeDocumentLinks(links)
	}

	a.finish(ctx, t, stats, started)
	return t, nil
}

// applyPlaceOfPerformance pulls city and country out of the nested
// place_of_performance object. US federal notices default to the United
// States.
func (a *SamGovAdapter) applyPlaceOfPerformance(t *domain.UnifiedTender, row domain.SourceRow) {
	if pop, ok := row.Value("place_of_performance"); ok {
		if m, isMap := pop.(map[string]any); isMap {
			if city, ok := m["city"].(map[string]any); ok {
				if name, ok := city["name"].(string); ok {
					t.City = name
				}
			} else if name, ok := m["city"].(string); ok {
				t.City = name
			}
			if country, ok := m["country"].(map[string]any); ok {
				if name, ok := country["name"].(string); ok {
					if canonical, resolved := extract.CanonicalizeCountry(name); resolved {
						t.Country = canonical
					} else {
						t.Country = name
					}
				}
			} else if name, ok := m["country"].(string); ok {
				if canonical, resolved := extract.CanonicalizeCountry(name); resolved {
					t.Country = canonical
				} else {
					t.Country = name
				}
			}
		}
	}
	if t.Country == "" {
		t.Country = "United States"
	}
}

// applyContacts lifts the primary entry of the contacts list into the flat
// contact fields.
func (a *SamGovAdapter) applyContacts(t *domain.UnifiedTender, row domain.SourceRow) {
	raw, ok := row.Value("contacts")
	if !ok {
		return
	}
	list, isList := raw.([]any)
	if !isList || len(list) == 0 {
		if m, isMap := raw.(map[string]any); isMap {
			list = []any{m}
		} else {
			return
		}
	}

	primary, isMap := list[0].(map[string]any)
	if !isMap {
		return
	}
	// Prefer an entry marked primary when present.
	for _, item := range list {
		if m, ok := item.(map[string]any); ok {
			if kind, ok := m["type"].(string); ok && kind == "primary" {
				primary = m
				break
			}
		}
	}

	if v, ok := primary["full_name"].(string); ok && t.ContactName == "" {
		t.ContactName = v
	} else if v, ok := primary["name"].(string); ok && t.ContactName == "" {
		t.ContactName = v
	}
	if v, ok := primary["email"].(string); ok {
		t.ContactEmail = v
	}
	if v, ok := primary["phone"].(string); ok {
		t.ContactPhone = v
	}
}
