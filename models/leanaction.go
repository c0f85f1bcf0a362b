package models

import "time"

const (
	LeanActionOpen   = "Ouvert"
	LeanActionClosed = "Clôturé"
)

// LeanAction is a tracked improvement task raised in the SEP meeting.
type LeanAction struct {
	ID                int32      `gorm:"primaryKey;column:id" json:"id"`
	DateOuverture     time.Time  `gorm:"column:date_ouverture;type:date;not null" json:"-"`
	DateCloturePrevue *time.Time `gorm:"column:date_cloture_prevue;type:date" json:"-"`
	Probleme          string     `gorm:"column:probleme;type:text;not null" json:"probleme"`
	Owner             string     `gorm:"column:owner;type:varchar(191);not null" json:"owner"`
	Statut            string     `gorm:"column:statut;type:varchar(32);not null;default:Ouvert" json:"statut"`
	Notes             string     `gorm:"column:notes;type:text" json:"notes"`
	CreatedAt         time.Time  `gorm:"column:created_at;type:timestamp;not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt         time.Time  `gorm:"column:updated_at;type:timestamp;not null;default:CURRENT_TIMESTAMP on update CURRENT_TIMESTAMP" json:"updated_at"`
}

func (LeanAction) TableName() string {
	return "lean_action"
}

// IsOverdue reports whether an open action has slipped past its planned
// close date.
func (a *LeanAction) IsOverdue(today time.Time) bool {
	return a.Statut == LeanActionOpen &&
		a.DateCloturePrevue != nil &&
		a.DateCloturePrevue.Before(today)
}
