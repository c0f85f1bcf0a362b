package store

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"neemba.com/sepkpi/kpi"
	"neemba.com/sepkpi/models"
	"neemba.com/sepkpi/sheets"
	"neemba.com/sepkpi/utils"
)

// AttributeTechnician finds who worked an OR segment: the technician with
// the most worked hours on pointage rows referencing that OR. The or_numero
// column holds a comma-joined list, so matching is exact or substring.
func AttributeTechnician(db *gorm.DB, orSegment string) (technician, team string, err error) {
	if orSegment == "" {
		return "", "", nil
	}

	type row struct {
		Technicien string
		Equipe     string
		Heures     float64
	}
	var rows []row
	err = db.Model(&models.Pointage{}).
		Select("technicien, equipe, SUM(heures_trav) AS heures").
		Where("or_numero = ? OR or_numero LIKE ?", orSegment, "%"+orSegment+"%").
		Group("technicien, equipe").
		Order("heures DESC").
		Limit(1).
		Scan(&rows).Error
	if err != nil || len(rows) == 0 {
		return "", "", err
	}
	return rows[0].Technicien, rows[0].Equipe, nil
}

// UpsertInspections writes inspection lines keyed on (sn, date_facture),
// attributing each OR segment to its dominant technician at write time.
func UpsertInspections(db *gorm.DB, parsed []sheets.InspectionRow) error {
	if len(parsed) == 0 {
		return nil
	}

	// One attribution query per distinct OR, not per line.
	type attribution struct{ technician, team string }
	attributions := map[string]attribution{}
	for _, r := range parsed {
		if r.ORSegment == "" {
			continue
		}
		if _, ok := attributions[r.ORSegment]; ok {
			continue
		}
		tech, team, err := AttributeTechnician(db, r.ORSegment)
		if err != nil {
			return err
		}
		attributions[r.ORSegment] = attribution{tech, team}
	}

	rows := utils.Map(parsed, func(r sheets.InspectionRow) models.InspectionRecord {
		a := attributions[r.ORSegment]
		return models.InspectionRecord{
			SN:           r.SN,
			ORSegment:    r.ORSegment,
			TypeMateriel: r.EquipmentType,
			Atelier:      r.Workshop,
			DateFacture:  r.InvoiceDate,
			IsInspected:  r.IsInspected,
			Technicien:   a.technician,
			Equipe:       a.team,
		}
	})

	return db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "sn"}, {Name: "date_facture"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"or_segment", "type_materiel", "atelier", "is_inspected",
			"technicien", "equipe",
		}),
	}).CreateInBatches(rows, 200).Error
}

func toInspectionLine(r models.InspectionRecord) kpi.InspectionLine {
	return kpi.InspectionLine{
		SN:            r.SN,
		ORSegment:     r.ORSegment,
		EquipmentType: r.TypeMateriel,
		Workshop:      r.Atelier,
		InvoiceDate:   r.DateFacture,
		Inspected:     r.IsInspected,
		Technician:    r.Technicien,
		Team:          r.Equipe,
	}
}

// LoadInspections reads the whole inspection table as analytic lines.
func LoadInspections(db *gorm.DB) ([]kpi.InspectionLine, error) {
	var rows []models.InspectionRecord
	if err := db.Order("date_facture asc, sn asc").Find(&rows).Error; err != nil {
		return nil, err
	}
	return utils.Map(rows, toInspectionLine), nil
}

// LoadInspectionsBetween scopes the lines to an inclusive date range, for
// quarter filtered views.
func LoadInspectionsBetween(db *gorm.DB, from, to string) ([]kpi.InspectionLine, error) {
	var rows []models.InspectionRecord
	err := db.Where("date_facture BETWEEN ? AND ?", from, to).
		Order("date_facture asc, sn asc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return utils.Map(rows, toInspectionLine), nil
}
