package store

import (
	"sort"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"neemba.com/sepkpi/kpi"
	"neemba.com/sepkpi/models"
	"neemba.com/sepkpi/utils"
)

// BuildPointages folds raw timesheet entries down to one row per technician
// per day, the grain the pointage table is keyed on. Work order numbers from
// the day's lines are kept as a comma-joined list for later attribution.
func BuildPointages(entries []kpi.TimesheetEntry) []models.Pointage {
	type key struct {
		name string
		day  string
	}
	grouped := utils.GroupBy(entries, func(e kpi.TimesheetEntry) key {
		return key{e.EmployeeName, utils.FormatDate(e.Date)}
	})

	rows := make([]models.Pointage, 0, len(grouped))
	for _, lines := range grouped {
		p := models.Pointage{
			Jour:       lines[0].Date,
			SalarieID:  lines[0].EmployeeID,
			Technicien: lines[0].EmployeeName,
			Equipe:     lines[0].Team,
		}
		orders := map[string]bool{}
		for _, l := range lines {
			p.Facturable += l.Billable
			p.NonFacturable += l.NonBillable
			p.Allouee += l.Allocated
			p.HeuresTrav += l.Worked
			p.HeuresTotal += l.Total
			if l.WorkOrder != "" {
				orders[l.WorkOrder] = true
			}
		}
		p.ORNumero = strings.Join(utils.SortedKeys(orders), ",")
		rows = append(rows, p)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if !rows[i].Jour.Equal(rows[j].Jour) {
			return rows[i].Jour.Before(rows[j].Jour)
		}
		return rows[i].Technicien < rows[j].Technicien
	})
	return rows
}

// UpsertPointages writes timesheet rows, replacing hour columns on the
// (technicien, jour) key so re-uploading a corrected export just overwrites.
func UpsertPointages(db *gorm.DB, rows []models.Pointage) error {
	if len(rows) == 0 {
		return nil
	}
	return db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "technicien"}, {Name: "jour"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"salarie_id", "equipe", "facturable", "non_facturable",
			"allouee", "heures_trav", "heures_total", "or_numero",
		}),
	}).CreateInBatches(rows, 200).Error
}

// LoadPointages reads the whole pointage table back as timesheet entries.
func LoadPointages(db *gorm.DB) ([]kpi.TimesheetEntry, error) {
	var rows []models.Pointage
	if err := db.Order("jour asc, technicien asc").Find(&rows).Error; err != nil {
		return nil, err
	}
	entries := utils.Map(rows, func(p models.Pointage) kpi.TimesheetEntry {
		return kpi.TimesheetEntry{
			EmployeeID:   p.SalarieID,
			EmployeeName: p.Technicien,
			Team:         p.Equipe,
			Date:         p.Jour,
			Billable:     p.Facturable,
			NonBillable:  p.NonFacturable,
			Allocated:    p.Allouee,
			Worked:       p.HeuresTrav,
			Total:        p.HeuresTotal,
			WorkOrder:    p.ORNumero,
		}
	})
	return entries, nil
}
