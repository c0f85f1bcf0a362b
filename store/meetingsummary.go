package store

import (
	"gorm.io/gorm"
	"neemba.com/sepkpi/models"
)

// CreateMeetingSummary inserts a generated summary. Summaries are immutable
// once written.
func CreateMeetingSummary(db *gorm.DB, summary *models.MeetingSummary) error {
	return db.Create(summary).Error
}

// ListMeetingSummaries returns summary metadata, newest meeting first. The
// markdown body is left out of list responses, so it is not selected here.
func ListMeetingSummaries(db *gorm.DB) ([]models.MeetingSummary, error) {
	var summaries []models.MeetingSummary
	err := db.
		Select("id", "meeting_date", "productivite_globale", "total_heures",
			"total_facturable", "actions_ouvertes", "actions_critiques",
			"notes_discussion", "created_by", "created_at").
		Order("meeting_date desc, id desc").
		Find(&summaries).Error
	if err != nil {
		return nil, err
	}
	return summaries, nil
}

// GetMeetingSummary fetches one summary with its markdown body.
func GetMeetingSummary(db *gorm.DB, id int32) (*models.MeetingSummary, error) {
	var summary models.MeetingSummary
	if err := db.First(&summary, id).Error; err != nil {
		return nil, err
	}
	return &summary, nil
}
