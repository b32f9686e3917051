package adapters

import (
	"context"
	"strings"
	"time"

	"github.com/tenderhub/normalizer/internal/domain"
	"github.com/tenderhub/normalizer/internal/extract"
	"github.com/tenderhub/normalizer/internal/lang"
)

// TEDEuAdapter normalizes Tenders Electronic Daily (EU Official Journal)
// notices. Rows carry CPV and NUTS codes, which are validated and kept as
// structured extras.
type TEDEuAdapter struct {
	base
}

func (a *TEDEuAdapter) Table() string { return domain.TableTEDEu }

func (a *TEDEuAdapter) Normalize(ctx context.Context, row domain.SourceRow, stats *lang.Stats) (*domain.UnifiedTender, error) {
	if err := requireFields(row, domain.TableTEDEu, "id", "publication_number"); err != nil {
		return nil, err
	}

	started := time.Now()
	t := a.newTender(domain.TableTEDEu, row.ID("id"), row)

	t.Title = firstNonEmpty(row.String("title"), row.String("notice_title"))
	t.Description = firstNonEmpty(row.String("summary"), row.String("description"))
	t.TenderType = row.String("notice_type")
	t.NoticeID = row.String("publication_number")
	t.OrganizationName = row.String("organisation_name")
	t.Buyer = row.String("buyer")
	t.URL = row.String("notice_url")
	t.Language = strings.ToLower(row.String("language"))

	setDate(t, &t.PublicationDate, "published_at_raw", row.String("publication_date"))
	setDate(t, &t.DeadlineDate, "deadline_raw", row.String("deadline_date"))

	t.Country = a.resolveCountry(t, row)

	if raw := row.String("procedure_type"); raw != "" {
		t.ProcurementMethod = extract.StandardizeProcurementMethod(raw)
	}

	a.applyCodes(t, row)

	if links, ok := row.Value("document_links"); ok {
		t.DocumentLinks = extract.NormalizeDocumentLinks(links)
	}

	a.finish(ctx, t, stats, started)
	return t, nil
}

// resolveCountry tries, in order: the organisation country column, the
// NUTS code prefix, the organisation address, then a summary mention.
func (a *TEDEuAdapter) resolveCountry(t *domain.UnifiedTender, row domain.SourceRow) string {
	if raw := row.String("organisation_country"); raw != "" {
		if canonical, ok := extract.CanonicalizeCountry(raw); ok {
			return canonical
		}
		return raw
	}

	if nuts := row.String("nuts_code"); len(nuts) >= 2 {
		if canonical, ok := extract.CanonicalizeCountry(nuts[:2]); ok {
			t.AddFallback("country_method", "nuts_prefix")
			return canonical
		}
	}

	for _, column := range []string{"organisation_address", "summary"} {
		country, method := extract.EnsureCountry(extract.CountryInput{
			Text: row.String(column),
		})
		if country != domain.CountryUnknown {
			t.AddFallback("country_method", method)
			return country
		}
	}

	return domain.CountryUnknown
}

// applyCodes validates CPV and NUTS codes and stores the survivors as
// provenance extras; malformed codes are dropped.
func (a *TEDEuAdapter) applyCodes(t *domain.UnifiedTender, row domain.SourceRow) {
	if cpv := extract.FilterCPV(stringList(row, "cpv_codes", "cpv_code")); len(cpv) > 0 {
		t.AddFallback("cpv_codes", cpv)
		if t.Sector == "" {
			t.Sector = extract.ExtractSector(t.Title + " " + t.Description)
		}
	}
	if nuts := extract.FilterNUTS(stringList(row, "nuts_codes", "nuts_code")); len(nuts) > 0 {
		t.AddFallback("nuts_codes", nuts)
	}
}

// stringList reads the first present column as a list of strings,
// accepting a scalar as a one-element list.
func stringList(row domain.SourceRow, columns ...string) []string {
	for _, column := range columns {
		raw, ok := row.Value(column)
		if !ok {
			continue
		}
		switch v := raw.(type) {
		case []string:
			return v
		case []any:
			out := make([]string, 0, len(v))
			for _, item := range v {
				if s, ok := item.(string); ok {
					out = append(out, strings.TrimSpace(s))
				}
			}
			return out
		case string:
			if s := strings.TrimSpace(v); s != "" {
				return []string{s}
			}
		}
	}
	return nil
}
