package kpi

import (
	"math"
	"sort"
	"time"

	"neemba.com/sepkpi/utils"
)

// Invoice is one deduplicated invoice with its labor-to-invoice lead time.
type Invoice struct {
	ORSegment    string
	Number       string
	InvoiceDate  time.Time
	LastLabor    time.Time
	Client       string
	SN           string
	Manufacturer string
	LeadDays     float64
}

// RawInvoice is an invoice line as parsed from the export, before filtering.
type RawInvoice struct {
	ORSegment    string
	Number       string
	InvoiceDate  *time.Time
	LastLabor    *time.Time
	Client       string
	SN           string
	Manufacturer string
}

// PrepareInvoices filters and dedupes the export down to the analyzable set:
// the requested manufacturer only, both dates present, invoice date inside
// the current quarter, one row per invoice number keeping the latest labor
// date, and negative lead times dropped as data errors.
func PrepareInvoices(raw []RawInvoice, manufacturer string, today time.Time) []Invoice {
	quarterStart := QuarterStart(today)

	latest := map[string]RawInvoice{}
	var order []string
	for _, r := range raw {
		if r.Manufacturer != manufacturer || r.Number == "" {
			continue
		}
		if r.InvoiceDate == nil || r.LastLabor == nil {
			continue
		}
		if r.InvoiceDate.Before(quarterStart) {
			continue
		}
		prev, ok := latest[r.Number]
		if !ok {
			order = append(order, r.Number)
			latest[r.Number] = r
			continue
		}
		if r.LastLabor.After(*prev.LastLabor) {
			latest[r.Number] = r
		}
	}

	var out []Invoice
	for _, num := range order {
		r := latest[num]
		lead := r.InvoiceDate.Sub(*r.LastLabor).Hours() / 24
		if lead < 0 {
			continue
		}
		out = append(out, Invoice{
			ORSegment:    r.ORSegment,
			Number:       r.Number,
			InvoiceDate:  *r.InvoiceDate,
			LastLabor:    *r.LastLabor,
			Client:       r.Client,
			SN:           r.SN,
			Manufacturer: r.Manufacturer,
			LeadDays:     lead,
		})
	}
	return out
}

// Lead time categories, on the mean for the status label and per invoice
// for the distribution.
const (
	LeadExcellent = "Excellent"
	LeadAdvanced  = "Advanced"
	LeadEmerging  = "Emerging"
	LeadImprove   = "À améliorer"
	LeadNoData    = "N/A"
)

// LeadStatus labels a mean lead time in days.
func LeadStatus(meanDays float64, hasData bool) string {
	switch {
	case !hasData:
		return LeadNoData
	case meanDays < 7:
		return LeadExcellent
	case meanDays < 17:
		return LeadAdvanced
	case meanDays <= 21:
		return LeadEmerging
	default:
		return LeadImprove
	}
}

// LeadSummary is the headline lead-time card.
type LeadSummary struct {
	Invoices int
	MeanDays float64
	Median   float64
	Status   string
}

func SummarizeLeads(invoices []Invoice) LeadSummary {
	leads := utils.Map(invoices, func(i Invoice) float64 { return i.LeadDays })
	s := LeadSummary{Invoices: len(invoices)}
	if len(leads) == 0 {
		s.Status = LeadNoData
		return s
	}
	m := mean(leads)
	s.MeanDays = utils.Round1(m)
	s.Median = math.Round(median(leads))
	s.Status = LeadStatus(m, true)
	return s
}

// LeadDistribution buckets invoices by their individual lead time.
type LeadDistribution struct {
	Excellent int `json:"excellent"`
	Advanced  int `json:"advanced"`
	Emerging  int `json:"emerging"`
	AMeliorer int `json:"a_ameliorer"`
}

func DistributeLeads(invoices []Invoice) LeadDistribution {
	var d LeadDistribution
	for _, inv := range invoices {
		switch {
		case inv.LeadDays < 7:
			d.Excellent++
		case inv.LeadDays < 17:
			d.Advanced++
		case inv.LeadDays <= 21:
			d.Emerging++
		default:
			d.AMeliorer++
		}
	}
	return d
}

// ClientLead pairs a client with its mean lead time, best clients first.
type ClientLead struct {
	Client   string
	Invoices int
	MeanDays float64
}

func LeadsByClient(invoices []Invoice) []ClientLead {
	grouped := utils.GroupBy(invoices, func(i Invoice) string { return i.Client })
	out := make([]ClientLead, 0, len(grouped))
	for _, client := range utils.SortedKeys(grouped) {
		leads := utils.Map(grouped[client], func(i Invoice) float64 { return i.LeadDays })
		out = append(out, ClientLead{
			Client:   client,
			Invoices: len(leads),
			MeanDays: utils.Round1(mean(leads)),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].MeanDays != out[j].MeanDays {
			return out[i].MeanDays < out[j].MeanDays
		}
		return out[i].Client < out[j].Client
	})
	return out
}

// LeadsByOrder lists the individual invoices, longest lead first, for the
// worst-offender table.
func LeadsByOrder(invoices []Invoice) []Invoice {
	out := append([]Invoice(nil), invoices...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].LeadDays != out[j].LeadDays {
			return out[i].LeadDays > out[j].LeadDays
		}
		return out[i].Number < out[j].Number
	})
	return out
}

// LeadAnalytics is the full lead-time payload.
type LeadAnalytics struct {
	Summary      LeadSummary
	Distribution LeadDistribution
	ByClient     []ClientLead
	ByOrder      []Invoice
	Quarter      string
}

func AnalyzeLeads(invoices []Invoice, today time.Time) LeadAnalytics {
	return LeadAnalytics{
		Summary:      SummarizeLeads(invoices),
		Distribution: DistributeLeads(invoices),
		ByClient:     LeadsByClient(invoices),
		ByOrder:      LeadsByOrder(invoices),
		Quarter:      CurrentQuarter(today),
	}
}
