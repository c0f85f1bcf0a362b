package store

import (
	"time"

	"gorm.io/gorm"
	"neemba.com/sepkpi/models"
	"neemba.com/sepkpi/utils"
)

// CreateLeanAction inserts a new action and returns it with its id.
func CreateLeanAction(db *gorm.DB, action *models.LeanAction) error {
	if action.Statut == "" {
		action.Statut = models.LeanActionOpen
	}
	return db.Create(action).Error
}

// ListLeanActions returns actions, optionally filtered by status, newest
// opening date first.
func ListLeanActions(db *gorm.DB, statut string) ([]models.LeanAction, error) {
	q := db.Order("date_ouverture desc, id desc")
	if statut != "" {
		q = q.Where("statut = ?", statut)
	}
	var actions []models.LeanAction
	if err := q.Find(&actions).Error; err != nil {
		return nil, err
	}
	return actions, nil
}

// GetLeanAction fetches one action by id.
func GetLeanAction(db *gorm.DB, id int32) (*models.LeanAction, error) {
	var action models.LeanAction
	if err := db.First(&action, id).Error; err != nil {
		return nil, err
	}
	return &action, nil
}

// UpdateLeanAction applies the non-nil fields of the patch.
func UpdateLeanAction(db *gorm.DB, id int32, patch map[string]any) (*models.LeanAction, error) {
	action, err := GetLeanAction(db, id)
	if err != nil {
		return nil, err
	}
	if len(patch) > 0 {
		if err := db.Model(action).Updates(patch).Error; err != nil {
			return nil, err
		}
	}
	return GetLeanAction(db, id)
}

// DeleteLeanAction removes one action by id.
func DeleteLeanAction(db *gorm.DB, id int32) error {
	res := db.Delete(&models.LeanAction{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountLeanActions returns how many actions are open and how many of those
// are overdue, for the meeting summary header.
func CountLeanActions(db *gorm.DB, today time.Time) (open, overdue int, err error) {
	actions, err := ListLeanActions(db, models.LeanActionOpen)
	if err != nil {
		return 0, 0, err
	}
	open = len(actions)
	overdue = len(utils.Filter(actions, func(a models.LeanAction) bool {
		return a.IsOverdue(today)
	}))
	return open, overdue, nil
}
