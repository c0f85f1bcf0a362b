// Package report renders the weekly SEP meeting summary as Markdown.
package report

import (
	"fmt"
	"strings"
	"time"

	"neemba.com/sepkpi/kpi"
	"neemba.com/sepkpi/models"
	"neemba.com/sepkpi/utils"
)

// Data carries everything the meeting summary shows.
type Data struct {
	MeetingDate    time.Time
	Productivity   kpi.GlobalSummary
	Exhaustivity   kpi.Rate
	Inspection     kpi.OrderRate
	Leads          kpi.LeadSummary
	Quarter        string
	OpenActions    []models.LeanAction
	OverdueActions []models.LeanAction
	Notes          string
}

// Performance badges for the headline KPIs.
func productivityBadge(pct float64) string {
	switch {
	case pct >= 85:
		return "Excellent"
	case pct >= 78:
		return "Advanced"
	default:
		return "Emerging"
	}
}

func inspectionBadge(pct float64) string {
	switch {
	case pct >= 65:
		return "Excellent"
	case pct >= 50:
		return "Advanced"
	default:
		return "Emerging"
	}
}

// Render produces the Markdown body stored with the summary.
func Render(d Data) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Réunion SEP - %s\n\n", utils.FormatDate(d.MeetingDate))

	fmt.Fprintf(&b, "## Productivité\n\n")
	fmt.Fprintf(&b, "- Productivité globale : **%.2f %%** (%s)\n",
		d.Productivity.Productivity, productivityBadge(d.Productivity.Productivity))
	fmt.Fprintf(&b, "- Heures facturables : %.2f h\n", d.Productivity.TotalBillable)
	fmt.Fprintf(&b, "- Heures travaillées : %.2f h\n", d.Productivity.TotalWorked)
	fmt.Fprintf(&b, "- Effectif couvert : %d techniciens, %d équipes\n\n",
		d.Productivity.Employees, d.Productivity.Teams)

	fmt.Fprintf(&b, "## Exhaustivité des pointages\n\n")
	fmt.Fprintf(&b, "- Taux de conformité : **%.2f %%** (%d jours conformes sur %d)\n",
		d.Exhaustivity.RatePct, d.Exhaustivity.Compliant, d.Exhaustivity.Total)
	fmt.Fprintf(&b, "- Jours manquants : %d, incomplets : %d, heures sup : %d\n\n",
		d.Exhaustivity.Missing, d.Exhaustivity.Incomplete, d.Exhaustivity.Overtime)

	fmt.Fprintf(&b, "## Taux d'inspection\n\n")
	fmt.Fprintf(&b, "- Taux : **%.2f %%** (%s) sur %d OR\n\n",
		d.Inspection.RatePct, inspectionBadge(d.Inspection.RatePct), d.Inspection.Orders)

	fmt.Fprintf(&b, "## Délai facturation (LLTI) - %s\n\n", d.Quarter)
	if d.Leads.Invoices == 0 {
		fmt.Fprintf(&b, "- Aucune facture sur le trimestre (%s)\n\n", d.Leads.Status)
	} else {
		fmt.Fprintf(&b, "- Moyenne : **%.1f jours** (%s)\n", d.Leads.MeanDays, d.Leads.Status)
		fmt.Fprintf(&b, "- Médiane : %.0f jours sur %d factures\n\n", d.Leads.Median, d.Leads.Invoices)
	}

	fmt.Fprintf(&b, "## Actions Lean\n\n")
	if len(d.OpenActions) == 0 {
		b.WriteString("Aucune action ouverte.\n\n")
	} else {
		writeActionTable(&b, d.OpenActions)
	}

	if len(d.OverdueActions) > 0 {
		fmt.Fprintf(&b, "### Actions critiques (en retard)\n\n")
		writeActionTable(&b, d.OverdueActions)
	}

	if d.Notes != "" {
		fmt.Fprintf(&b, "## Notes de discussion\n\n%s\n", d.Notes)
	}

	return b.String()
}

func writeActionTable(b *strings.Builder, actions []models.LeanAction) {
	b.WriteString("| # | Problème | Owner | Ouverte le | Échéance |\n")
	b.WriteString("|---|----------|-------|------------|----------|\n")
	for _, a := range actions {
		due := "-"
		if a.DateCloturePrevue != nil {
			due = utils.FormatDate(*a.DateCloturePrevue)
		}
		fmt.Fprintf(b, "| %d | %s | %s | %s | %s |\n",
			a.ID, escapeCell(a.Probleme), escapeCell(a.Owner),
			utils.FormatDate(a.DateOuverture), due)
	}
	b.WriteString("\n")
}

func escapeCell(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "\\|")
}
