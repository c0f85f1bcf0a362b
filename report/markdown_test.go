package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"neemba.com/sepkpi/kpi"
	"neemba.com/sepkpi/models"
	"neemba.com/sepkpi/utils"
)

func TestProductivityBadge(t *testing.T) {
	assert.Equal(t, "Excellent", productivityBadge(85))
	assert.Equal(t, "Advanced", productivityBadge(78))
	assert.Equal(t, "Emerging", productivityBadge(77.99))
}

func TestInspectionBadge(t *testing.T) {
	assert.Equal(t, "Excellent", inspectionBadge(65))
	assert.Equal(t, "Advanced", inspectionBadge(50))
	assert.Equal(t, "Emerging", inspectionBadge(49.99))
}

func TestRender(t *testing.T) {
	due := utils.MustParseDate("2025-03-01")
	d := Data{
		MeetingDate:  utils.MustParseDate("2025-03-14"),
		Productivity: kpi.GlobalSummary{Productivity: 86.5, TotalBillable: 692, TotalWorked: 800, Employees: 20, Teams: 3},
		Exhaustivity: kpi.Rate{RatePct: 91.2, Compliant: 456, Total: 500, Missing: 30, Incomplete: 10, Overtime: 4},
		Inspection:   kpi.OrderRate{Orders: 60, Inspected: 40, RatePct: 66.67},
		Leads:        kpi.LeadSummary{Invoices: 12, MeanDays: 9.5, Median: 8, Status: kpi.LeadAdvanced},
		Quarter:      "2025-Q1",
		OpenActions: []models.LeanAction{
			{ID: 1, Probleme: "Retard | pointages", Owner: "KANE Fatou", DateOuverture: utils.MustParseDate("2025-02-10"), DateCloturePrevue: &due},
		},
		OverdueActions: []models.LeanAction{
			{ID: 1, Probleme: "Retard | pointages", Owner: "KANE Fatou", DateOuverture: utils.MustParseDate("2025-02-10"), DateCloturePrevue: &due},
		},
		Notes: "RAS",
	}

	md := Render(d)

	assert.Contains(t, md, "# Réunion SEP - 2025-03-14")
	assert.Contains(t, md, "**86.50 %** (Excellent)")
	assert.Contains(t, md, "**66.67 %** (Excellent) sur 60 OR")
	assert.Contains(t, md, "**9.5 jours** (Advanced)")
	assert.Contains(t, md, "### Actions critiques (en retard)")
	// Pipes in free text must not break the table.
	assert.Contains(t, md, "Retard \\| pointages")
	assert.Contains(t, md, "## Notes de discussion\n\nRAS")
}

func TestRenderNoActionsNoLeads(t *testing.T) {
	d := Data{
		MeetingDate: utils.MustParseDate("2025-03-14"),
		Leads:       kpi.LeadSummary{Status: kpi.LeadNoData},
		Quarter:     "2025-Q1",
	}

	md := Render(d)
	assert.Contains(t, md, "Aucune action ouverte.")
	assert.Contains(t, md, "Aucune facture sur le trimestre (N/A)")
	assert.NotContains(t, md, "Actions critiques")
	assert.NotContains(t, md, "Notes de discussion")
}

func TestRenderHTML(t *testing.T) {
	html := RenderHTML("# Titre\n\nDu **texte**.")
	assert.Contains(t, html, "<h1")
	assert.Contains(t, html, "<strong>texte</strong>")
}
