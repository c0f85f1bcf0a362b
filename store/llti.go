package store

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"neemba.com/sepkpi/kpi"
	"neemba.com/sepkpi/models"
	"neemba.com/sepkpi/utils"
)

// UpsertInvoices writes the prepared lead-time set, one row per invoice
// number, replacing on conflict so a re-upload refreshes the quarter.
func UpsertInvoices(db *gorm.DB, invoices []kpi.Invoice) error {
	if len(invoices) == 0 {
		return nil
	}
	rows := utils.Map(invoices, func(i kpi.Invoice) models.LLTIRecord {
		return models.LLTIRecord{
			ORSegment:     i.ORSegment,
			NumeroFacture: i.Number,
			DateFacture:   i.InvoiceDate,
			DatePointage:  i.LastLabor,
			Client:        i.Client,
			SNEquipement:  i.SN,
			Constructeur:  i.Manufacturer,
			LLTIJours:     i.LeadDays,
		}
	})
	return db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "numero_facture"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"or_segment", "date_facture", "date_pointage", "client",
			"sn_equipement", "constructeur", "llti_jours",
		}),
	}).CreateInBatches(rows, 200).Error
}

// LoadInvoices reads the persisted lead-time set back for the analytics.
func LoadInvoices(db *gorm.DB) ([]kpi.Invoice, error) {
	var rows []models.LLTIRecord
	if err := db.Order("date_facture asc, numero_facture asc").Find(&rows).Error; err != nil {
		return nil, err
	}
	invoices := utils.Map(rows, func(r models.LLTIRecord) kpi.Invoice {
		return kpi.Invoice{
			ORSegment:    r.ORSegment,
			Number:       r.NumeroFacture,
			InvoiceDate:  r.DateFacture,
			LastLabor:    r.DatePointage,
			Client:       r.Client,
			SN:           r.SNEquipement,
			Manufacturer: r.Constructeur,
			LeadDays:     r.LLTIJours,
		}
	})
	return invoices, nil
}
