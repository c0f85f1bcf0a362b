package models

import "time"

// Pointage is one persisted employee-day: the upload path aggregates raw
// timesheet lines down to one row per (technician, day) before writing.
type Pointage struct {
	ID           int32     `gorm:"primaryKey;column:id"`
	Jour         time.Time `gorm:"column:jour;type:date;not null;uniqueIndex:idx_pointage_technicien_jour,priority:2"`
	SalarieID    int       `gorm:"column:salarie_id"`
	Technicien   string    `gorm:"column:technicien;type:varchar(191);not null;uniqueIndex:idx_pointage_technicien_jour,priority:1"`
	Equipe       string    `gorm:"column:equipe;type:varchar(191)"`
	Facturable   float64   `gorm:"column:facturable;type:decimal(10,2);not null"`
	NonFacturable float64  `gorm:"column:non_facturable;type:decimal(10,2);not null"`
	Allouee      float64   `gorm:"column:allouee;type:decimal(10,2);not null"`
	HeuresTrav   float64   `gorm:"column:heures_trav;type:decimal(10,2);not null"`
	HeuresTotal  float64   `gorm:"column:heures_total;type:decimal(10,2);not null"`
	ORNumero     string    `gorm:"column:or_numero;type:varchar(64)"`
	InsertedAt   time.Time `gorm:"column:inserted_at;type:timestamp;not null;default:CURRENT_TIMESTAMP on update CURRENT_TIMESTAMP"`
}

func (Pointage) TableName() string {
	return "pointage"
}
