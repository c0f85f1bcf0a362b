package kpi

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"neemba.com/sepkpi/utils"
)

func rawInvoice(number, manufacturer, invoiceDate, laborDate string) RawInvoice {
	r := RawInvoice{Number: number, Manufacturer: manufacturer}
	if invoiceDate != "" {
		r.InvoiceDate = utils.Ptr(utils.MustParseDate(invoiceDate))
	}
	if laborDate != "" {
		r.LastLabor = utils.Ptr(utils.MustParseDate(laborDate))
	}
	return r
}

func TestPrepareInvoices(t *testing.T) {
	today := utils.MustParseDate("2025-03-14") // quarter starts 2025-01-01

	raw := []RawInvoice{
		rawInvoice("F-1", "CATERPILLAR", "2025-02-10", "2025-02-01"),
		rawInvoice("F-2", "KOMATSU", "2025-02-10", "2025-02-01"),     // wrong manufacturer
		rawInvoice("F-3", "CATERPILLAR", "2024-12-20", "2024-12-10"), // previous quarter
		rawInvoice("F-4", "CATERPILLAR", "", "2025-02-01"),           // missing invoice date
		rawInvoice("F-5", "CATERPILLAR", "2025-02-01", "2025-02-10"), // negative lead
	}

	out := PrepareInvoices(raw, "CATERPILLAR", today)
	require.Len(t, out, 1)
	assert.Equal(t, "F-1", out[0].Number)
	assert.Equal(t, 9.0, out[0].LeadDays)
}

func TestPrepareInvoicesDedupesKeepingLatestLabor(t *testing.T) {
	today := utils.MustParseDate("2025-03-14")

	raw := []RawInvoice{
		rawInvoice("F-1", "CATERPILLAR", "2025-02-20", "2025-02-01"),
		rawInvoice("F-1", "CATERPILLAR", "2025-02-20", "2025-02-15"),
		rawInvoice("F-1", "CATERPILLAR", "2025-02-20", "2025-02-10"),
	}

	out := PrepareInvoices(raw, "CATERPILLAR", today)
	require.Len(t, out, 1)
	assert.Equal(t, utils.MustParseDate("2025-02-15"), out[0].LastLabor)
	assert.Equal(t, 5.0, out[0].LeadDays)
}

func leadInvoice(number string, lead float64) Invoice {
	return Invoice{Number: number, LeadDays: lead}
}

func TestDistributeLeads(t *testing.T) {
	// One invoice in each bucket: 3 excellent, 10 advanced, 18 emerging,
	// 25 to improve.
	invoices := []Invoice{
		leadInvoice("F-1", 3),
		leadInvoice("F-2", 10),
		leadInvoice("F-3", 18),
		leadInvoice("F-4", 25),
	}

	d := DistributeLeads(invoices)
	assert.Equal(t, 1, d.Excellent)
	assert.Equal(t, 1, d.Advanced)
	assert.Equal(t, 1, d.Emerging)
	assert.Equal(t, 1, d.AMeliorer)
}

func TestLeadStatus(t *testing.T) {
	tests := []struct {
		name     string
		mean     float64
		hasData  bool
		expected string
	}{
		{name: "Excellent", mean: 6.9, hasData: true, expected: LeadExcellent},
		{name: "Advanced", mean: 7, hasData: true, expected: LeadAdvanced},
		{name: "Emerging low", mean: 17, hasData: true, expected: LeadEmerging},
		{name: "Emerging high", mean: 21, hasData: true, expected: LeadEmerging},
		{name: "Improve", mean: 21.1, hasData: true, expected: LeadImprove},
		{name: "No data", mean: 0, hasData: false, expected: LeadNoData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, LeadStatus(tt.mean, tt.hasData))
		})
	}
}

func TestSummarizeLeads(t *testing.T) {
	s := SummarizeLeads([]Invoice{
		leadInvoice("F-1", 4),
		leadInvoice("F-2", 5),
		leadInvoice("F-3", 9),
	})

	assert.Equal(t, 3, s.Invoices)
	assert.Equal(t, 6.0, s.MeanDays)
	assert.Equal(t, 5.0, s.Median)
	assert.Equal(t, LeadExcellent, s.Status)
}

func TestSummarizeLeadsEmpty(t *testing.T) {
	s := SummarizeLeads(nil)
	assert.Equal(t, LeadNoData, s.Status)
	assert.Equal(t, 0, s.Invoices)
}

func TestLeadsByClientSortedByMeanAscending(t *testing.T) {
	invoices := []Invoice{
		{Number: "F-1", Client: "SLOW SARL", LeadDays: 20},
		{Number: "F-2", Client: "FAST SA", LeadDays: 2},
		{Number: "F-3", Client: "FAST SA", LeadDays: 4},
	}

	out := LeadsByClient(invoices)
	require.Len(t, out, 2)
	assert.Equal(t, "FAST SA", out[0].Client)
	assert.Equal(t, 3.0, out[0].MeanDays)
	assert.Equal(t, "SLOW SARL", out[1].Client)
}

func TestLeadsByOrderSortedDescending(t *testing.T) {
	out := LeadsByOrder([]Invoice{
		leadInvoice("F-1", 2),
		leadInvoice("F-2", 30),
		leadInvoice("F-3", 10),
	})

	leads := utils.Map(out, func(i Invoice) float64 { return i.LeadDays })
	assert.Equal(t, []float64{30, 10, 2}, leads)
}

func TestAnalyzeLeadsQuarterLabel(t *testing.T) {
	a := AnalyzeLeads(nil, time.Date(2025, 8, 25, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "2025-Q3", a.Quarter)
	assert.Equal(t, LeadNoData, a.Summary.Status)
}
