package models

import "time"

// LLTIRecord tracks the lead time between the last recorded labor on a work
// order and the invoice date, one row per invoice number.
type LLTIRecord struct {
	ID            int32     `gorm:"primaryKey;column:id"`
	ORSegment     string    `gorm:"column:or_segment;type:varchar(64);not null"`
	NumeroFacture string    `gorm:"column:numero_facture;type:varchar(64);not null;uniqueIndex:idx_llti_facture"`
	DateFacture   time.Time `gorm:"column:date_facture;type:date;not null"`
	DatePointage  time.Time `gorm:"column:date_pointage;type:date;not null"`
	Client        string    `gorm:"column:client;type:varchar(191)"`
	SNEquipement  string    `gorm:"column:sn_equipement;type:varchar(128)"`
	Constructeur  string    `gorm:"column:constructeur;type:varchar(128)"`
	LLTIJours     float64   `gorm:"column:llti_jours;type:decimal(10,2);not null"`
	InsertedAt    time.Time `gorm:"column:inserted_at;type:timestamp;not null;default:CURRENT_TIMESTAMP on update CURRENT_TIMESTAMP"`
}

func (LLTIRecord) TableName() string {
	return "llti_record"
}
