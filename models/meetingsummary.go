package models

import "time"

// MeetingSummary is a write-once snapshot of the KPIs at meeting time plus
// the rendered Markdown narrative. Rows are never updated after insert.
type MeetingSummary struct {
	ID                   int32     `gorm:"primaryKey;column:id" json:"id"`
	MeetingDate          time.Time `gorm:"column:meeting_date;type:date;not null" json:"-"`
	ProductiviteGlobale  float64   `gorm:"column:productivite_globale;type:decimal(10,2)" json:"productivite_globale"`
	TotalHeures          float64   `gorm:"column:total_heures;type:decimal(12,2)" json:"total_heures"`
	TotalFacturable      float64   `gorm:"column:total_facturable;type:decimal(12,2)" json:"total_facturable"`
	ActionsOuvertes      int       `gorm:"column:actions_ouvertes;default:0" json:"actions_ouvertes"`
	ActionsCritiques     int       `gorm:"column:actions_critiques;default:0" json:"actions_critiques"`
	NotesDiscussion      string    `gorm:"column:notes_discussion;type:text" json:"notes_discussion"`
	MarkdownContent      string    `gorm:"column:markdown_content;type:mediumtext" json:"-"`
	CreatedBy            string    `gorm:"column:created_by;type:varchar(191);not null" json:"created_by"`
	CreatedAt            time.Time `gorm:"column:created_at;type:timestamp;not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (MeetingSummary) TableName() string {
	return "meeting_summary"
}
