package finance_test

import (
	"strconv"
	"testing"

	"github.com/hauptbau/fieldops-api/internal/finance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f(v float64) *float64 { return &v }

func TestComputeExampleScenario(t *testing.T) {
	// totalBudget 10000, material 3000, subcontractor 2000, external 500,
	// labor 1500 -> rest 3000, percentages 30.0/20.0/5.0/15.0/30.0.
	in := finance.Inputs{
		NetAmount: 8000,
		Addenda: []finance.Addendum{
			{Status: finance.AddendumStatusAccepted, TotalValue: 2000},
			{Status: finance.AddendumStatusPending, TotalValue: 9999},
			{Status: finance.AddendumStatusRejected, TotalValue: 500},
		},
		Orders: []finance.Order{
			{Products: []finance.OrderProduct{
				{Name: "Kabel", Price: f(10), Quantity: f(200)},
				{Name: "Dosen", Price: f(500), Quantity: f(2)},
			}},
		},
		Drafts: []finance.BillingDraft{
			{Status: finance.DraftStatusApproved, FinalAmount: 2000, ExtraDeductionAmount: 300},
			{Status: "draft", FinalAmount: 700, ExtraDeductionAmount: 200},
		},
		TimeEntries: []finance.TimeEntry{
			{DurationMinutes: 1200},
			{DurationMinutes: 600},
		},
	}

	b := finance.Compute(in)

	assert.InDelta(t, 10000, b.TotalBudget, 0.001)
	assert.InDelta(t, 3000, b.Material.Amount, 0.001)
	assert.InDelta(t, 2000, b.Subcontractor.Amount, 0.001)
	assert.InDelta(t, 500, b.External.Amount, 0.001)
	assert.InDelta(t, 1500, b.Labor.Amount, 0.001)
	assert.InDelta(t, 3000, b.Rest.Amount, 0.001)

	assert.Equal(t, "30.0", b.Material.Percent)
	assert.Equal(t, "20.0", b.Subcontractor.Percent)
	assert.Equal(t, "5.0", b.External.Percent)
	assert.Equal(t, "15.0", b.Labor.Percent)
	assert.Equal(t, "30.0", b.Rest.Percent)
}

func TestComputePercentagesSumToHundred(t *testing.T) {
	in := finance.Inputs{
		NetAmount: 12345.67,
		Orders: []finance.Order{
			{Products: []finance.OrderProduct{{Price: f(333.33), Quantity: f(3)}}},
		},
		Drafts: []finance.BillingDraft{
			{Status: finance.DraftStatusPaid, FinalAmount: 1111.11, ExtraDeductionAmount: 99.99},
		},
		TimeEntries: []finance.TimeEntry{{DurationMinutes: 95}},
	}

	b := finance.Compute(in)
	require.Positive(t, b.TotalBudget)

	var sum float64
	for _, bucket := range []finance.Bucket{b.Material, b.Subcontractor, b.External, b.Labor, b.Rest} {
		p, err := strconv.ParseFloat(bucket.Percent, 64)
		require.NoError(t, err)
		sum += p
	}
	// Within one-decimal rounding tolerance per bucket.
	assert.InDelta(t, 100.0, sum, 0.5)
}

func TestComputeZeroBudget(t *testing.T) {
	b := finance.Compute(finance.Inputs{
		Orders: []finance.Order{
			{Products: []finance.OrderProduct{{Price: f(100), Quantity: f(1)}}},
		},
	})

	assert.Zero(t, b.TotalBudget)
	assert.Equal(t, "0.0", b.Material.Percent)
	assert.Equal(t, "0.0", b.Rest.Percent)
	// Rest goes negative when costs exceed budget; that is a valid state.
	assert.InDelta(t, -100, b.Rest.Amount, 0.001)
}

func TestOrderNetDefaults(t *testing.T) {
	products := []finance.OrderProduct{
		{Name: "ohne Preis", Quantity: f(5)},
		{Name: "ohne Menge", Price: f(12.50)},
		{Name: "leer"},
	}
	// Missing price -> 0, missing quantity -> 1.
	assert.InDelta(t, 12.50, finance.OrderNet(products), 0.001)
	assert.Zero(t, finance.OrderNet(nil))
}

func TestSubcontractorTotalPrefersApprovedAmount(t *testing.T) {
	drafts := []finance.BillingDraft{
		{Status: finance.DraftStatusApproved, FinalAmount: 1000, ApprovedFinalAmount: f(900)},
		{Status: finance.DraftStatusInvoiceAssigned, FinalAmount: 500},
		{Status: "rejected", FinalAmount: 9999},
	}
	assert.InDelta(t, 1400, finance.SubcontractorTotal(drafts), 0.001)
}

func TestExternalInvoiceTotalIncludesAllStatuses(t *testing.T) {
	drafts := []finance.BillingDraft{
		{Status: finance.DraftStatusApproved, ExtraDeductionAmount: 100},
		{Status: "rejected", ExtraDeductionAmount: 50},
		{Status: "draft", ExtraDeductionAmount: 25},
	}
	assert.InDelta(t, 175, finance.ExternalInvoiceTotal(drafts), 0.001)
}

func TestLaborCostFormulas(t *testing.T) {
	entries := []finance.TimeEntry{
		{DurationMinutes: 90, HourlyRate: f(40)},
		{DurationMinutes: 30},
	}

	assert.InDelta(t, 100, finance.LaborCostFlatRate(entries, finance.DefaultHourlyRate), 0.001)
	assert.InDelta(t, 60, finance.LaborCostPerEmployee(entries), 0.001)
}

func TestAcceptedAddendaTotal(t *testing.T) {
	addenda := []finance.Addendum{
		{Status: finance.AddendumStatusAccepted, TotalValue: 100},
		{Status: finance.AddendumStatusAccepted, TotalValue: 250},
		{Status: finance.AddendumStatusPending, TotalValue: 1000},
	}
	assert.InDelta(t, 350, finance.AcceptedAddendaTotal(addenda), 0.001)
}
