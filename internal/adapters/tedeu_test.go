package adapters_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tenderhub/normalizer/internal/domain"
	"github.com/tenderhub/normalizer/internal/lang"
)

func TestTEDEuAdapter_Normalize(t *testing.T) {
	registry := newTestRegistry()

	row := domain.SourceRow{
		"id":                   "ted-100",
		"publication_number":   "2024/S 123-456789",
		"title":                "Road maintenance framework agreement",
		"summary":              "Framework agreement for road maintenance services.",
		"organisation_name":    "Bundesministerium für Verkehr",
		"organisation_country": "DE",
		"procedure_type":       "Open procedure",
		"publication_date":     "2024-04-02",
		"deadline_date":        "2030-05-10",
		"language":             "DE",
		"cpv_codes":            []any{"45233141-9", "not-a-code"},
		"nuts_codes":           []any{"DE212", "bad"},
	}

	tender, err := registry.NormalizeRow(context.Background(), domain.TableTEDEu, row, lang.NewStats())
	require.NoError(t, err)
	require.False(t, tender.IsErrorStub())

	assert.Equal(t, "ted-100", tender.SourceID)
	assert.Equal(t, "2024/S 123-456789", tender.NoticeID)
	assert.Equal(t, "Germany", tender.Country)
	assert.Equal(t, "de", tender.Language)
	assert.Equal(t, domain.MethodOpen, tender.ProcurementMethod)

	assert.Equal(t, []string{"45233141-9"}, tender.FallbackReason["cpv_codes"])
	assert.Equal(t, []string{"DE212"}, tender.FallbackReason["nuts_codes"])

	// German source fields get dictionary translations when no provider is
	// configured.
	assert.NotEmpty(t, tender.TitleEnglish)
}

func TestTEDEuAdapter_CountryFromNUTSPrefix(t *testing.T) {
	registry := newTestRegistry()

	row := domain.SourceRow{
		"id":                 "ted-101",
		"publication_number": "2024/S 1-1",
		"title":              "Cleaning services",
		"nuts_code":          "FR101",
	}

	tender, err := registry.NormalizeRow(context.Background(), domain.TableTEDEu, row, lang.NewStats())
	require.NoError(t, err)

	assert.Equal(t, "France", tender.Country)
	assert.Equal(t, "nuts_prefix", tender.FallbackReason["country_method"])
}

func TestTEDEuAdapter_MissingPublicationNumberIsStub(t *testing.T) {
	registry := newTestRegistry()

	row := domain.SourceRow{"id": "ted-102", "title": "incomplete"}
	tender, err := registry.NormalizeRow(context.Background(), domain.TableTEDEu, row, lang.NewStats())

	require.NoError(t, err)
	assert.True(t, tender.IsErrorStub())
	assert.Equal(t, "ted-102", tender.SourceID)
}

func TestSamGovAdapter_Normalize(t *testing.T) {
	registry := newTestRegistry()

	row := domain.SourceRow{
		"opportunity_id":      "SAM-42",
		"org_key":             "100006688",
		"opportunity_title":   "Janitorial services for federal building",
		"description":         "Combined synopsis and solicitation for janitorial services.",
		"opportunity_type":    "Solicitation",
		"solicitation_number": "W912DY-24-R-0001",
		"opportunity_status":  "active",
		"competition_type":    "Full and Open Competition",
		"publish_date":        "2024-02-01",
		"response_date":       "2030-03-01",
		"place_of_performance": map[string]any{
			"city":    map[string]any{"name": "Huntsville"},
			"country": map[string]any{"name": "USA"},
		},
		"contacts": []any{
			map[string]any{"type": "secondary", "full_name": "Backup Contact", "email": "backup@example.gov"},
			map[string]any{"type": "primary", "full_name": "Jordan Smith", "email": "jordan.smith@example.gov", "phone": "256-555-0100"},
		},
	}

	tender, err := registry.NormalizeRow(context.Background(), domain.TableSamGov, row, lang.NewStats())
	require.NoError(t, err)
	require.False(t, tender.IsErrorStub())

	assert.Equal(t, "SAM-42", tender.SourceID)
	assert.Equal(t, "100006688", tender.OrganizationID)
	assert.Equal(t, "United States", tender.Country)
	assert.Equal(t, "Huntsville", tender.City)
	assert.Equal(t, "en", tender.Language)
	assert.Equal(t, domain.StatusActive, tender.Status)
	assert.Equal(t, "Full and Open Competition", tender.ProcurementMethod)

	// The entry marked primary wins over list order.
	assert.Equal(t, "Jordan Smith", tender.ContactName)
	assert.Equal(t, "jordan.smith@example.gov", tender.ContactEmail)
	assert.Equal(t, "256-555-0100", tender.ContactPhone)
}

func TestSamGovAdapter_DefaultsToUnitedStates(t *testing.T) {
	registry := newTestRegistry()

	row := domain.SourceRow{
		"opportunity_id":    "SAM-43",
		"org_key":           "1",
		"opportunity_title": "Office supplies",
	}

	tender, err := registry.NormalizeRow(context.Background(), domain.TableSamGov, row, lang.NewStats())
	require.NoError(t, err)
	assert.Equal(t, "United States", tender.Country)
}

func TestIADBAdapter_KeyedByProjectNumber(t *testing.T) {
	registry := newTestRegistry()

	row := domain.SourceRow{
		"project_number": "BR-L1001",
		"notice_title":   "Water treatment plant expansion",
		"country":        "Brazil",
	}

	tender, err := registry.NormalizeRow(context.Background(), domain.TableIADB, row, lang.NewStats())
	require.NoError(t, err)
	assert.Equal(t, "BR-L1001", tender.SourceID)
	assert.Equal(t, "BR-L1001", tender.ProjectNumber)
	assert.Equal(t, "Brazil", tender.Country)
}
