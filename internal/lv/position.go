// Package lv contains the pure computation core for working with a project's
// Leistungsverzeichnis (bill of quantities): trade classification of
// positions, extraction of installation locations from free-text
// descriptions, responsibility resolution against subcontractor assignments,
// and grouping with subtotals.
//
// Everything in this package operates on already-fetched in-memory data and
// never returns an error: malformed input degrades to a neutral result
// (fallback trade, no locations, contractor responsibility).
package lv

// Position is a single priced line item of a project's bill of quantities.
// Positions arrive embedded in the project record as semi-structured JSON
// produced by the estimating system; every field except the identifier may
// be missing.
type Position struct {
	ID              string   `json:"id"`
	Description     string   `json:"description"`
	Quantity        float64  `json:"quantity"`
	Unit            string   `json:"unit"`
	UnitPrice       float64  `json:"unit_price"`
	TotalPrice      *float64 `json:"total_price,omitempty"`
	Status          string   `json:"status,omitempty"`
	NachtragID      *string  `json:"nachtrag_id,omitempty"`
	CompanyName     string   `json:"company_name,omitempty"`
	NachtragCompany string   `json:"nachtrag_company,omitempty"`
}

// ResolvedPosition is a Position enriched with the derived fields computed
// by this package. The underlying position is never mutated.
type ResolvedPosition struct {
	Position
	Trade            string     `json:"trade"`
	CleanDescription string     `json:"clean_description"`
	Locations        []string   `json:"locations"`
	Resolution       Resolution `json:"resolution"`
}

// Enrich computes all derived fields for a single position: its trade, the
// cleaned description with extracted locations, and the responsible company.
// A position without an explicit total price gets one derived from quantity
// and unit price.
func Enrich(pos Position, assignments []Assignment, subcontractorNames map[string]string, contractorName string, opts ResolveOptions) ResolvedPosition {
	clean, locations := ExtractLocations(pos.Description)
	if pos.TotalPrice == nil && pos.Quantity != 0 && pos.UnitPrice != 0 {
		total := pos.Quantity * pos.UnitPrice
		pos.TotalPrice = &total
	}
	return ResolvedPosition{
		Position:         pos,
		Trade:            ClassifyTrade(pos.ID),
		CleanDescription: clean,
		Locations:        locations,
		Resolution:       ResolveCompany(pos, assignments, subcontractorNames, contractorName, opts),
	}
}

// EnrichAll enriches every position in a list, preserving order.
func EnrichAll(positions []Position, assignments []Assignment, subcontractorNames map[string]string, contractorName string, opts ResolveOptions) []ResolvedPosition {
	resolved := make([]ResolvedPosition, len(positions))
	for i, pos := range positions {
		resolved[i] = Enrich(pos, assignments, subcontractorNames, contractorName, opts)
	}
	return resolved
}
