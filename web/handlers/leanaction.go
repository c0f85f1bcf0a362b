package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"neemba.com/sepkpi/models"
	"neemba.com/sepkpi/store"
	"neemba.com/sepkpi/utils"
	"neemba.com/sepkpi/web/common"
)

type leanActionDTO struct {
	ID                int32  `json:"id"`
	Probleme          string `json:"probleme"`
	Owner             string `json:"owner"`
	Statut            string `json:"statut"`
	DateOuverture     string `json:"date_ouverture"`
	DateCloturePrevue string `json:"date_cloture_prevue"`
	Notes             string `json:"notes"`
	EnRetard          bool   `json:"en_retard"`
}

func toLeanActionDTO(a models.LeanAction) leanActionDTO {
	dto := leanActionDTO{
		ID:            a.ID,
		Probleme:      a.Probleme,
		Owner:         a.Owner,
		Statut:        a.Statut,
		DateOuverture: utils.FormatDate(a.DateOuverture),
		Notes:         a.Notes,
		EnRetard:      a.IsOverdue(today()),
	}
	if a.DateCloturePrevue != nil {
		dto.DateCloturePrevue = utils.FormatDate(*a.DateCloturePrevue)
	}
	return dto
}

type leanActionRequest struct {
	Probleme          string          `json:"probleme" binding:"required"`
	Owner             string          `json:"owner" binding:"required"`
	Statut            string          `json:"statut" binding:"omitempty,oneof=Ouvert Clôturé"`
	DateOuverture     common.DateOnly `json:"date_ouverture"`
	DateCloturePrevue common.DateOnly `json:"date_cloture_prevue"`
	Notes             string          `json:"notes"`
}

// ListLeanActions serves all actions, optionally filtered with ?statut=.
func (h *Handler) ListLeanActions(c *gin.Context) {
	actions, err := store.ListLeanActions(h.DB, c.Query("statut"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse("failed to list actions"))
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(utils.Map(actions, toLeanActionDTO)))
}

// CreateLeanAction opens a new action. The opening date defaults to today.
func (h *Handler) CreateLeanAction(c *gin.Context) {
	var req leanActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	action := models.LeanAction{
		Probleme:      req.Probleme,
		Owner:         req.Owner,
		Statut:        req.Statut,
		DateOuverture: req.DateOuverture.Time,
		Notes:         req.Notes,
	}
	if action.DateOuverture.IsZero() {
		action.DateOuverture = today()
	}
	if !req.DateCloturePrevue.IsZero() {
		action.DateCloturePrevue = utils.Ptr(req.DateCloturePrevue.Time)
	}

	if err := store.CreateLeanAction(h.DB, &action); err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse("failed to create action"))
		return
	}
	c.JSON(http.StatusCreated, common.NewSuccessResponse(toLeanActionDTO(action)))
}

func actionID(c *gin.Context) (int32, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 32)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("invalid action id"))
		return 0, false
	}
	return int32(id), true
}

type leanActionPatch struct {
	Probleme          *string          `json:"probleme"`
	Owner             *string          `json:"owner"`
	Statut            *string          `json:"statut" binding:"omitempty,oneof=Ouvert Clôturé"`
	DateCloturePrevue *common.DateOnly `json:"date_cloture_prevue"`
	Notes             *string          `json:"notes"`
}

// UpdateLeanAction applies a partial update; absent fields stay untouched.
func (h *Handler) UpdateLeanAction(c *gin.Context) {
	id, ok := actionID(c)
	if !ok {
		return
	}

	var req leanActionPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	patch := map[string]any{}
	if req.Probleme != nil {
		patch["probleme"] = *req.Probleme
	}
	if req.Owner != nil {
		patch["owner"] = *req.Owner
	}
	if req.Statut != nil {
		patch["statut"] = *req.Statut
	}
	if req.Notes != nil {
		patch["notes"] = *req.Notes
	}
	if req.DateCloturePrevue != nil {
		if req.DateCloturePrevue.IsZero() {
			patch["date_cloture_prevue"] = nil
		} else {
			patch["date_cloture_prevue"] = req.DateCloturePrevue.Time
		}
	}

	action, err := store.UpdateLeanAction(h.DB, id, patch)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, common.NewErrorResponse("action not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse("failed to update action"))
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(toLeanActionDTO(*action)))
}

// DeleteLeanAction removes an action.
func (h *Handler) DeleteLeanAction(c *gin.Context) {
	id, ok := actionID(c)
	if !ok {
		return
	}

	if err := store.DeleteLeanAction(h.DB, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, common.NewErrorResponse("action not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse("failed to delete action"))
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{"deleted": id}))
}
