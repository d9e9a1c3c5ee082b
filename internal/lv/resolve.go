package lv

// AssignmentStatus is the review state of a subcontractor assignment.
type AssignmentStatus string

const (
	AssignmentStatusPending  AssignmentStatus = "pending"
	AssignmentStatusAccepted AssignmentStatus = "accepted"
	AssignmentStatusRejected AssignmentStatus = "rejected"
)

// AssignmentType records which resolution tier produced a company.
type AssignmentType string

const (
	// AssignmentTypePosition means the position id was explicitly listed in
	// a subcontractor's assigned trade.
	AssignmentTypePosition AssignmentType = "position"
	// AssignmentTypeTrade means the subcontractor holds the position's whole
	// trade without listing individual positions.
	AssignmentTypeTrade AssignmentType = "trade"
	// AssignmentTypePDF means the company was read from the position record
	// itself, as imported from the LV document.
	AssignmentTypePDF AssignmentType = "pdf"
	// AssignmentTypeContractor is the general-contractor fallback.
	AssignmentTypeContractor AssignmentType = "contractor"
)

// AssignedTrade is one trade a subcontractor holds on a project. A trade
// with an explicit PositionIDs list covers only those positions; without
// one it covers every position classified into the trade.
type AssignedTrade struct {
	Name        string   `json:"name"`
	PositionIDs []string `json:"position_ids,omitempty"`
}

// Assignment links a subcontractor to a project with the trades it holds.
type Assignment struct {
	SubcontractorID string           `json:"subcontractor_id"`
	Status          AssignmentStatus `json:"status"`
	Trades          []AssignedTrade  `json:"trades"`
}

// Resolution is the outcome of responsibility resolution for one position.
type Resolution struct {
	CompanyName     string         `json:"company_name"`
	IsSubcontractor bool           `json:"is_subcontractor"`
	AssignmentType  AssignmentType `json:"assignment_type"`
}

// ResolveOptions controls resolution behavior.
type ResolveOptions struct {
	// AcceptedOnly restricts the assignment scan to accepted assignments.
	// Historically all assignments count regardless of status, which keeps
	// tentative assignments visible in the field; product has not decided
	// whether that is intended, so the historic behavior stays the default.
	AcceptedOnly bool
}

// ResolveCompany determines which company is responsible for a position.
// Three tiers are tried in order, first match wins:
//
//  1. Assignment scan: every assignment's trades in given order. A trade
//     with an explicit position list matches by position id; a trade
//     without one matches by name against the position's computed trade.
//  2. Company embedded on the position (direct or Nachtrag company).
//  3. The general contractor.
//
// The function is pure and total: it never mutates its inputs and always
// produces a company, terminating at the contractor fallback.
func ResolveCompany(pos Position, assignments []Assignment, subcontractorNames map[string]string, contractorName string, opts ResolveOptions) Resolution {
	positionTrade := ClassifyTrade(pos.ID)

	for _, assignment := range assignments {
		if opts.AcceptedOnly && assignment.Status != AssignmentStatusAccepted {
			continue
		}
		for _, trade := range assignment.Trades {
			if len(trade.PositionIDs) > 0 {
				for _, id := range trade.PositionIDs {
					if id == pos.ID {
						return Resolution{
							CompanyName:     subcontractorNames[assignment.SubcontractorID],
							IsSubcontractor: true,
							AssignmentType:  AssignmentTypePosition,
						}
					}
				}
				continue
			}
			if trade.Name == positionTrade {
				return Resolution{
					CompanyName:     subcontractorNames[assignment.SubcontractorID],
					IsSubcontractor: true,
					AssignmentType:  AssignmentTypeTrade,
				}
			}
		}
	}

	if name := embeddedCompany(pos); name != "" {
		return Resolution{
			CompanyName:     name,
			IsSubcontractor: isKnownSubcontractor(name, subcontractorNames),
			AssignmentType:  AssignmentTypePDF,
		}
	}

	return Resolution{
		CompanyName:     contractorName,
		IsSubcontractor: false,
		AssignmentType:  AssignmentTypeContractor,
	}
}

// embeddedCompany returns a company name recorded directly on the position,
// preferring the direct field over the Nachtrag company.
func embeddedCompany(pos Position) string {
	if pos.CompanyName != "" {
		return pos.CompanyName
	}
	return pos.NachtragCompany
}

// isKnownSubcontractor reports whether a company name belongs to one of the
// project's known subcontractors.
func isKnownSubcontractor(name string, subcontractorNames map[string]string) bool {
	for _, known := range subcontractorNames {
		if known == name {
			return true
		}
	}
	return false
}
