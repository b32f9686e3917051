package extract_test

import (
	"testing"

	"github.com/tenderhub/normalizer/internal/domain"
	"github.com/tenderhub/normalizer/internal/extract"
)

func TestExtractProcurementMethod(t *testing.T) {
	testCases := []struct {
		name     string
		text     string
		expected string
	}{
		{
			name:     "specific procedure outranks generic open",
			text:     "Single source selection under the open procedure exemption.",
			expected: domain.MethodDirect,
		},
		{
			name:     "international competitive bidding",
			text:     "Procurement will follow International Competitive Bidding.",
			expected: domain.MethodOpen,
		},
		{
			name:     "request for proposals",
			text:     "A Request for Proposals (RFP) will be issued shortly.",
			expected: domain.MethodRFP,
		},
		{
			name:     "restricted",
			text:     "Only prequalified bidders may participate.",
			expected: domain.MethodRestricted,
		},
		{
			name:     "no method",
			text:     "Supply of agricultural machinery.",
			expected: "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := extract.ExtractProcurementMethod(tc.text); got != tc.expected {
				t.Errorf("got %q, want %q", got, tc.expected)
			}
		})
	}
}

func TestStandardizeProcurementMethod(t *testing.T) {
	testCases := []struct {
		raw      string
		expected string
	}{
		{"", ""},
		{"ICB", "International Competitive Bidding"},
		{"ncb", "National Competitive Bidding"},
		{"QCBS", "Quality and Cost-Based Selection"},
		{"RFP", domain.MethodRFP},
		{"sole source", domain.MethodDirect},
		{"Open   Procedure", domain.MethodOpen},
		{"Negotiated procedure with prior call", domain.MethodNegotiated},
		{"Consultancy Framework Agreement", "Consultancy Framework Agreement"},
	}

	for _, tc := range testCases {
		if got := extract.StandardizeProcurementMethod(tc.raw); got != tc.expected {
			t.Errorf("StandardizeProcurementMethod(%q) = %q, want %q", tc.raw, got, tc.expected)
		}
	}
}

func TestExtractSector(t *testing.T) {
	testCases := []struct {
		name     string
		text     string
		expected string
	}{
		{
			name:     "health",
			text:     "Construction equipment for the new regional hospital and clinic network.",
			expected: "Health",
		},
		{
			name:     "energy",
			text:     "Design and build of a 50MW solar power plant with grid connection.",
			expected: "Energy",
		},
		{
			name:     "water",
			text:     "Rehabilitation of the water supply and sewerage network.",
			expected: "Water and Sanitation",
		},
		{
			name:     "no sector",
			text:     "General administrative matters.",
			expected: "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := extract.ExtractSector(tc.text); got != tc.expected {
				t.Errorf("got %q, want %q", got, tc.expected)
			}
		})
	}
}

func TestExtractOrganizationAndBuyer(t *testing.T) {
	testCases := []struct {
		name        string
		text        string
		expectedOrg string
		expectedBuy string
	}{
		{
			name:        "issued by",
			text:        "Issued by: Ministry of Health. Bids are due Friday.",
			expectedOrg: "Ministry of Health",
			expectedBuy: "Ministry of Health",
		},
		{
			name:        "both present",
			text:        "Contracting authority: National Roads Agency; on behalf of: Department of Transport.",
			expectedOrg: "National Roads Agency",
			expectedBuy: "Department of Transport",
		},
		{
			name:        "buyer only fills organization",
			text:        "Purchaser: City of Lakewood Utilities. Delivery within 30 days.",
			expectedOrg: "City of Lakewood Utilities",
			expectedBuy: "City of Lakewood Utilities",
		},
		{
			name:        "nothing found",
			text:        "Supply of stationery items.",
			expectedOrg: "",
			expectedBuy: "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			org, buyer := extract.ExtractOrganizationAndBuyer(tc.text)
			if org != tc.expectedOrg {
				t.Errorf("organization: got %q, want %q", org, tc.expectedOrg)
			}
			if buyer != tc.expectedBuy {
				t.Errorf("buyer: got %q, want %q", buyer, tc.expectedBuy)
			}
		})
	}
}
