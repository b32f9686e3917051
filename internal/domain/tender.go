// Package domain defines the canonical tender model and the closed
// vocabularies shared across the engine.
package domain

import (
	"encoding/json"
	"time"
)

// Source table names. Each has a registered adapter.
const (
	TableWB     = "wb"
	TableADB    = "adb"
	TableAFD    = "afd_tenders"
	TableAFDB   = "afdb"
	TableAIIB   = "aiib"
	TableIADB   = "iadb"
	TableSamGov = "sam_gov"
	TableTEDEu  = "ted_eu"
	TableUNGM   = "ungm"
)

// SourceTables lists every supported source table in processing order.
var SourceTables = []string{
	TableADB,
	TableAFD,
	TableAFDB,
	TableAIIB,
	TableIADB,
	TableSamGov,
	TableTEDEu,
	TableUNGM,
	TableWB,
}

// Tender status vocabulary.
const (
	StatusActive    = "active"
	StatusComplete  = "complete"
	StatusCancelled = "cancelled"
	StatusAwarded   = "awarded"
	StatusPlanned   = "planned"
	StatusDraft     = "draft"
	StatusUnknown   = "unknown"
)

// Procurement method vocabulary.
const (
	MethodOpen                = "Open Procedure"
	MethodRestricted          = "Restricted Procedure"
	MethodNegotiated          = "Negotiated Procedure"
	MethodCompetitiveDialogue = "Competitive Dialogue"
	MethodDirect              = "Direct Procurement"
	MethodRFP                 = "Request for Proposal"
	MethodRFQ                 = "Request for Quotation"
	MethodITB                 = "Invitation to Bid"
	MethodEOI                 = "Expression of Interest"
)

// CountryUnknown is the sentinel used when no resolution step produced a
// country. The country field is never left empty.
const CountryUnknown = "Unknown"

// Document is a single tender attachment or external link.
type Document struct {
	URL         string `json:"url"`
	Type        string `json:"type,omitempty"`
	Language    string `json:"language,omitempty"`
	Description string `json:"description,omitempty"`
}

// UnifiedTender is the canonical record persisted to unified_tenders.
// (SourceTable, SourceID) is the natural key and is populated on every
// record, including error stubs.
type UnifiedTender struct {
	SourceTable string `db:"source_table" json:"source_table"`
	SourceID    string `db:"source_id"    json:"source_id"`

	Title              string `db:"title"               json:"title,omitempty"`
	TitleEnglish       string `db:"title_english"       json:"title_english,omitempty"`
	Description        string `db:"description"         json:"description,omitempty"`
	DescriptionEnglish string `db:"description_english" json:"description_english,omitempty"`

	TenderType        string     `db:"tender_type"        json:"tender_type,omitempty"`
	Status            string     `db:"status"             json:"status,omitempty"`
	PublicationDate   *time.Time `db:"published_at"       json:"publication_date,omitempty"`
	DeadlineDate      *time.Time `db:"deadline"           json:"deadline_date,omitempty"`
	Country           string     `db:"country"            json:"country,omitempty"`
	City              string     `db:"city"               json:"city,omitempty"`
	ProcurementMethod string     `db:"procurement_method" json:"procurement_method,omitempty"`
	NormalizedMethod  string     `db:"normalized_method"  json:"normalized_method,omitempty"`

	OrganizationName        string `db:"organization_name"         json:"organization_name,omitempty"`
	OrganizationNameEnglish string `db:"organization_name_english" json:"organization_name_english,omitempty"`
	OrganizationID          string `db:"organization_id"           json:"organization_id,omitempty"`
	Buyer                   string `db:"buyer"                     json:"buyer,omitempty"`
	BuyerEnglish            string `db:"buyer_english"             json:"buyer_english,omitempty"`

	ProjectName        string `db:"project_name"         json:"project_name,omitempty"`
	ProjectNameEnglish string `db:"project_name_english" json:"project_name_english,omitempty"`
	ProjectID          string `db:"project_id"           json:"project_id,omitempty"`
	ProjectNumber      string `db:"project_number"       json:"project_number,omitempty"`
	Sector             string `db:"sector"               json:"sector,omitempty"`

	EstimatedValue *float64 `db:"value"    json:"estimated_value,omitempty"`
	Currency       string   `db:"currency" json:"currency,omitempty"`

	ContactName    string `db:"contact_name"    json:"contact_name,omitempty"`
	ContactEmail   string `db:"contact_email"   json:"contact_email,omitempty"`
	ContactPhone   string `db:"contact_phone"   json:"contact_phone,omitempty"`
	ContactAddress string `db:"contact_address" json:"contact_address,omitempty"`

	URL             string     `db:"source_url"        json:"url,omitempty"`
	DocumentLinks   []Document `db:"documents"         json:"document_links,omitempty"`
	Language        string     `db:"original_language" json:"language,omitempty"`
	NoticeID        string     `db:"notice_id"         json:"notice_id,omitempty"`
	ReferenceNumber string     `db:"reference_number"  json:"reference_number,omitempty"`

	OriginalData     json.RawMessage `db:"original_data"      json:"original_data,omitempty"`
	FallbackReason   map[string]any  `db:"fallback_reason"    json:"fallback_reason,omitempty"`
	NormalizedAt     *time.Time      `db:"normalized_at"      json:"normalized_at,omitempty"`
	ProcessedAt      *time.Time      `db:"processed_at"       json:"processed_at,omitempty"`
	ProcessingTimeMS int64           `db:"processing_time_ms" json:"processing_time_ms,omitempty"`
}

// NaturalKey returns the identity of the record in its source.
func (t *UnifiedTender) NaturalKey() (table, id string) {
	return t.SourceTable, t.SourceID
}

// IsErrorStub reports whether the record was emitted by the failure path
// rather than full normalization.
func (t *UnifiedTender) IsErrorStub() bool {
	if t.FallbackReason == nil {
		return false
	}
	_, ok := t.FallbackReason["error"]
	return ok
}

// AddFallback records a provenance note without clobbering earlier notes.
func (t *UnifiedTender) AddFallback(key string, value any) {
	if t.FallbackReason == nil {
		t.FallbackReason = make(map[string]any)
	}
	t.FallbackReason[key] = value
}

// NormalizedMethodDefault returns the customary procurement shorthand used
// by a source when its rows carry no explicit method.
func NormalizedMethodDefault(table string) string {
	switch table {
	case TableWB:
		return "International Competitive Bidding"
	case TableADB:
		return "Open Competitive Bidding"
	case TableAFDB:
		return "International Competitive Bidding"
	case TableTEDEu:
		return MethodOpen
	case TableSamGov:
		return "Full and Open Competition"
	case TableUNGM:
		return MethodRFP
	default:
		return ""
	}
}

// ValidStatus reports whether s belongs to the status vocabulary.
func ValidStatus(s string) bool {
	switch s {
	case StatusActive, StatusComplete, StatusCancelled, StatusAwarded,
		StatusPlanned, StatusDraft, StatusUnknown:
		return true
	}
	return false
}
