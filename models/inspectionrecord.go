package models

import "time"

// InspectionRecord is one invoiced inspection line. Several lines can share
// an OR segment; the analytics dedupe at the OR level, not here.
type InspectionRecord struct {
	ID           int32     `gorm:"primaryKey;column:id"`
	SN           string    `gorm:"column:sn;type:varchar(128);not null;uniqueIndex:idx_inspection_sn_date,priority:1"`
	ORSegment    string    `gorm:"column:or_segment;type:varchar(64)"`
	TypeMateriel string    `gorm:"column:type_materiel;type:varchar(128)"`
	Atelier      string    `gorm:"column:atelier;type:varchar(128)"`
	DateFacture  time.Time `gorm:"column:date_facture;type:date;not null;uniqueIndex:idx_inspection_sn_date,priority:2"`
	IsInspected  bool      `gorm:"column:is_inspected;not null"`
	Technicien   string    `gorm:"column:technicien;type:varchar(191)"`
	Equipe       string    `gorm:"column:equipe;type:varchar(191)"`
	InsertedAt   time.Time `gorm:"column:inserted_at;type:timestamp;not null;default:CURRENT_TIMESTAMP on update CURRENT_TIMESTAMP"`
}

func (InspectionRecord) TableName() string {
	return "inspection_record"
}
