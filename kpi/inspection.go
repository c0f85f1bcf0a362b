package kpi

import (
	"sort"
	"time"

	"neemba.com/sepkpi/utils"
)

// InspectionLine is one invoiced line of an inspection export.
type InspectionLine struct {
	SN            string
	ORSegment     string
	EquipmentType string
	Workshop      string
	InvoiceDate   time.Time
	Inspected     bool
	Technician    string
	Team          string
}

// OrderRate computes the order-level inspection rate: a work order counts
// as inspected when any of its lines is, so one inspected line covers the
// whole OR.
type OrderRate struct {
	Orders    int
	Inspected int
	RatePct   float64
}

func RateByOrder(lines []InspectionLine) OrderRate {
	inspected := map[string]bool{}
	for _, l := range lines {
		key := l.ORSegment
		if key == "" {
			// Lines with no OR each stand alone.
			key = "sn:" + l.SN + "@" + utils.FormatDate(l.InvoiceDate)
		}
		inspected[key] = inspected[key] || l.Inspected
	}

	r := OrderRate{Orders: len(inspected)}
	for _, ok := range inspected {
		if ok {
			r.Inspected++
		}
	}
	if r.Orders > 0 {
		r.RatePct = utils.Round2(100 * float64(r.Inspected) / float64(r.Orders))
	}
	return r
}

// GroupRate is an order-level rate scoped to one group value.
type GroupRate struct {
	Key       string
	Orders    int
	Inspected int
	RatePct   float64
}

func groupRates(lines []InspectionLine, key func(InspectionLine) string) []GroupRate {
	grouped := utils.GroupBy(lines, key)
	out := make([]GroupRate, 0, len(grouped))
	for _, k := range utils.SortedKeys(grouped) {
		if k == "" {
			continue
		}
		r := RateByOrder(grouped[k])
		out = append(out, GroupRate{Key: k, Orders: r.Orders, Inspected: r.Inspected, RatePct: r.RatePct})
	}
	return out
}

// RateByWorkshop breaks the rate down per workshop, sorted by name.
func RateByWorkshop(lines []InspectionLine) []GroupRate {
	return groupRates(lines, func(l InspectionLine) string { return l.Workshop })
}

// RateByEquipmentType breaks the rate down per equipment type.
func RateByEquipmentType(lines []InspectionLine) []GroupRate {
	return groupRates(lines, func(l InspectionLine) string { return l.EquipmentType })
}

// RateByTechnician breaks the rate down per attributed technician, best rate
// first. Lines with no technician attribution are left out of the ranking.
func RateByTechnician(lines []InspectionLine) []GroupRate {
	out := groupRates(lines, func(l InspectionLine) string { return l.Technician })
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].RatePct != out[j].RatePct {
			return out[i].RatePct > out[j].RatePct
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// LastWednesday returns the reference Wednesday for the weekly comparison.
// On a Wednesday the reference is the previous one, a full week back. Later
// in the week it is this week's Wednesday, earlier it is last week's.
func LastWednesday(today time.Time) time.Time {
	diff := int(today.Weekday()) - int(time.Wednesday)
	switch {
	case diff == 0:
		return today.AddDate(0, 0, -7)
	case diff > 0:
		return today.AddDate(0, 0, -diff)
	default:
		return today.AddDate(0, 0, -diff-7)
	}
}

// WeeklyDelta compares the current overall rate with what it was when only
// invoices up to the reference Wednesday existed.
type WeeklyDelta struct {
	Current   float64
	Reference float64
	Delta     float64
	AsOf      time.Time
}

func RateWeeklyDelta(lines []InspectionLine, today time.Time) WeeklyDelta {
	ref := LastWednesday(today)
	past := utils.Filter(lines, func(l InspectionLine) bool {
		return !l.InvoiceDate.After(ref)
	})
	cur := RateByOrder(lines)
	prev := RateByOrder(past)
	return WeeklyDelta{
		Current:   cur.RatePct,
		Reference: prev.RatePct,
		Delta:     utils.Round2(cur.RatePct - prev.RatePct),
		AsOf:      ref,
	}
}

// InspectionAnalytics is the full payload served to the dashboard. Records
// carries at most the 100 most recent lines for drill-down.
type InspectionAnalytics struct {
	Overall         OrderRate
	ByWorkshop      []GroupRate
	ByEquipmentType []GroupRate
	ByTechnician    []GroupRate
	Weekly          WeeklyDelta
	Records         []InspectionLine
}

const maxInspectionRecords = 100

func AnalyzeInspections(lines []InspectionLine, today time.Time) InspectionAnalytics {
	recent := append([]InspectionLine(nil), lines...)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].InvoiceDate.After(recent[j].InvoiceDate)
	})
	if len(recent) > maxInspectionRecords {
		recent = recent[:maxInspectionRecords]
	}
	return InspectionAnalytics{
		Overall:         RateByOrder(lines),
		ByWorkshop:      RateByWorkshop(lines),
		ByEquipmentType: RateByEquipmentType(lines),
		ByTechnician:    RateByTechnician(lines),
		Weekly:          RateWeeklyDelta(lines, today),
		Records:         recent,
	}
}
