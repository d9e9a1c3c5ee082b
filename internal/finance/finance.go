// Package finance computes the budget-vs-actual breakdown for a project:
// five mutually exclusive cost buckets (material, subcontractor, external
// invoices, labor, rest) against the total budget of base net amount plus
// accepted Nachträge.
//
// Like the lv package, everything here is a pure function over in-memory
// records. Missing fields degrade to zero, never to an error.
package finance

import "fmt"

// DefaultHourlyRate is the flat labor rate (in currency units per hour) the
// primary breakdown uses. The per-employee rate only enters the detail
// calculation, see LaborCostPerEmployee.
const DefaultHourlyRate = 50.0

// Addendum statuses. Only accepted Nachträge contribute to the budget.
const (
	AddendumStatusPending  = "ausstehend"
	AddendumStatusAccepted = "angenommen"
	AddendumStatusRejected = "abgelehnt"
)

// Billing draft statuses that count toward the subcontractor bucket.
const (
	DraftStatusApproved        = "approved"
	DraftStatusPaid            = "paid"
	DraftStatusInvoiceAssigned = "invoice_assigned"
)

// OrderProduct is one product line of a point-of-sale order.
type OrderProduct struct {
	Name     string   `json:"name"`
	Price    *float64 `json:"price,omitempty"`
	Quantity *float64 `json:"quantity,omitempty"`
}

// Order is a material order with its product lines. Cancelled orders are
// expected to be filtered out by the caller before computing.
type Order struct {
	Status   string         `json:"status"`
	Products []OrderProduct `json:"products"`
}

// BillingDraft is a subcontractor billing statement in review.
type BillingDraft struct {
	Status               string   `json:"status"`
	FinalAmount          float64  `json:"final_amount"`
	ApprovedFinalAmount  *float64 `json:"approved_final_amount,omitempty"`
	ExtraDeductionAmount float64  `json:"extra_deduction_amount"`
}

// TimeEntry is a recorded labor span. HourlyRate carries the employee's
// actual rate where known; the primary breakdown ignores it.
type TimeEntry struct {
	DurationMinutes float64  `json:"duration_minutes"`
	HourlyRate      *float64 `json:"hourly_rate,omitempty"`
}

// Addendum is a Nachtrag's contribution to project value.
type Addendum struct {
	Status     string  `json:"status"`
	TotalValue float64 `json:"total_value"`
}

// Inputs collects everything the breakdown needs. The datasets are
// independent; a caller that failed to load one passes it empty.
type Inputs struct {
	NetAmount   float64
	Addenda     []Addendum
	Orders      []Order
	Drafts      []BillingDraft
	TimeEntries []TimeEntry
	// HourlyRate overrides DefaultHourlyRate when positive.
	HourlyRate float64
}

// Bucket is one cost category with its absolute amount and its share of the
// total budget, formatted to one decimal place.
type Bucket struct {
	Amount  float64 `json:"amount"`
	Percent string  `json:"percent"`
}

// Breakdown is the five-bucket budget result. Rest is a residual and may be
// negative when costs exceed budget; that is a valid state, not an error.
type Breakdown struct {
	TotalBudget   float64 `json:"total_budget"`
	Material      Bucket  `json:"material"`
	Subcontractor Bucket  `json:"subcontractor"`
	External      Bucket  `json:"external"`
	Labor         Bucket  `json:"labor"`
	Rest          Bucket  `json:"rest"`
}

// Compute builds the full breakdown from the given inputs.
func Compute(in Inputs) Breakdown {
	budget := in.NetAmount + AcceptedAddendaTotal(in.Addenda)

	rate := in.HourlyRate
	if rate <= 0 {
		rate = DefaultHourlyRate
	}

	material := MaterialTotal(in.Orders)
	subcontractor := SubcontractorTotal(in.Drafts)
	external := ExternalInvoiceTotal(in.Drafts)
	labor := LaborCostFlatRate(in.TimeEntries, rate)
	rest := budget - material - subcontractor - external - labor

	return Breakdown{
		TotalBudget:   budget,
		Material:      bucket(material, budget),
		Subcontractor: bucket(subcontractor, budget),
		External:      bucket(external, budget),
		Labor:         bucket(labor, budget),
		Rest:          bucket(rest, budget),
	}
}

// AcceptedAddendaTotal sums the value of accepted Nachträge only.
func AcceptedAddendaTotal(addenda []Addendum) float64 {
	var total float64
	for _, addendum := range addenda {
		if addendum.Status == AddendumStatusAccepted {
			total += addendum.TotalValue
		}
	}
	return total
}

// MaterialTotal sums the net value of all given orders.
func MaterialTotal(orders []Order) float64 {
	var total float64
	for _, order := range orders {
		total += OrderNet(order.Products)
	}
	return total
}

// OrderNet sums price times quantity over the product lines of one order.
// A missing price counts as 0, a missing quantity as 1.
func OrderNet(products []OrderProduct) float64 {
	var net float64
	for _, product := range products {
		price := 0.0
		if product.Price != nil {
			price = *product.Price
		}
		quantity := 1.0
		if product.Quantity != nil {
			quantity = *product.Quantity
		}
		net += price * quantity
	}
	return net
}

// SubcontractorTotal sums approved billing drafts, preferring the approved
// final amount over the drafted one. Only drafts in an approved, paid or
// invoice-assigned state count.
func SubcontractorTotal(drafts []BillingDraft) float64 {
	var total float64
	for _, draft := range drafts {
		switch draft.Status {
		case DraftStatusApproved, DraftStatusPaid, DraftStatusInvoiceAssigned:
			if draft.ApprovedFinalAmount != nil {
				total += *draft.ApprovedFinalAmount
			} else {
				total += draft.FinalAmount
			}
		}
	}
	return total
}

// ExternalInvoiceTotal sums the extra deduction amount across every draft.
// Unlike SubcontractorTotal this is not status-filtered; the asymmetry is
// long-standing upstream behavior and is kept until product decides
// otherwise.
func ExternalInvoiceTotal(drafts []BillingDraft) float64 {
	var total float64
	for _, draft := range drafts {
		total += draft.ExtraDeductionAmount
	}
	return total
}

// LaborCostFlatRate prices every recorded minute at one flat hourly rate.
// This is the formula the primary breakdown uses.
func LaborCostFlatRate(entries []TimeEntry, hourlyRate float64) float64 {
	var total float64
	for _, entry := range entries {
		total += entry.DurationMinutes / 60 * hourlyRate
	}
	return total
}

// LaborCostPerEmployee prices each entry at the employee's own hourly rate,
// as shown in the labor detail view. Entries without a rate contribute
// nothing. Not the same number as LaborCostFlatRate; the two formulas
// coexist until product unifies them.
func LaborCostPerEmployee(entries []TimeEntry) float64 {
	var total float64
	for _, entry := range entries {
		if entry.HourlyRate != nil {
			total += entry.DurationMinutes / 60 * *entry.HourlyRate
		}
	}
	return total
}

// bucket pairs an amount with its formatted share of the budget. A zero or
// negative budget yields "0.0" to avoid division by zero.
func bucket(amount, budget float64) Bucket {
	return Bucket{Amount: amount, Percent: percentOf(amount, budget)}
}

func percentOf(amount, budget float64) string {
	if budget <= 0 {
		return "0.0"
	}
	return fmt.Sprintf("%.1f", amount/budget*100)
}
