package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"neemba.com/sepkpi/config"
	"neemba.com/sepkpi/kpi"
	"neemba.com/sepkpi/models"
	"neemba.com/sepkpi/report"
	"neemba.com/sepkpi/store"
	"neemba.com/sepkpi/utils"
	"neemba.com/sepkpi/web/common"
	"neemba.com/sepkpi/web/middlewares"
)

type generateSummaryRequest struct {
	MeetingDate common.DateOnly `json:"meeting_date"`
	Notes       string          `json:"notes"`
}

type summaryDTO struct {
	ID                  int32   `json:"id"`
	MeetingDate         string  `json:"meeting_date"`
	ProductiviteGlobale float64 `json:"productivite_globale"`
	TotalHeures         float64 `json:"total_heures"`
	TotalFacturable     float64 `json:"total_facturable"`
	ActionsOuvertes     int     `json:"actions_ouvertes"`
	ActionsCritiques    int     `json:"actions_critiques"`
	NotesDiscussion     string  `json:"notes_discussion"`
	CreatedBy           string  `json:"created_by"`
	Markdown            string  `json:"markdown,omitempty"`
}

func toSummaryDTO(s models.MeetingSummary, withBody bool) summaryDTO {
	dto := summaryDTO{
		ID:                  s.ID,
		MeetingDate:         utils.FormatDate(s.MeetingDate),
		ProductiviteGlobale: s.ProductiviteGlobale,
		TotalHeures:         s.TotalHeures,
		TotalFacturable:     s.TotalFacturable,
		ActionsOuvertes:     s.ActionsOuvertes,
		ActionsCritiques:    s.ActionsCritiques,
		NotesDiscussion:     s.NotesDiscussion,
		CreatedBy:           s.CreatedBy,
	}
	if withBody {
		dto.Markdown = s.MarkdownContent
	}
	return dto
}

// GenerateMeetingSummary snapshots the current KPIs into a stored Markdown
// summary.
func (h *Handler) GenerateMeetingSummary(c *gin.Context) {
	var req generateSummaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}
	meetingDate := req.MeetingDate.Time
	if meetingDate.IsZero() {
		meetingDate = today()
	}

	entries, ok := h.timesheet(c)
	if !ok {
		return
	}
	invoices, ok := h.invoices(c)
	if !ok {
		return
	}
	inspections, ok := h.loadInspections(c)
	if !ok {
		return
	}

	open, err := store.ListLeanActions(h.DB, models.LeanActionOpen)
	if err != nil {
		config.LogError("handlers", "GenerateMeetingSummary", err, nil)
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse("failed to load actions"))
		return
	}
	overdue := utils.Filter(open, func(a models.LeanAction) bool {
		return a.IsOverdue(meetingDate)
	})

	days := kpi.AggregateDays(entries)
	prod := kpi.Summarize(days)
	data := report.Data{
		MeetingDate:    meetingDate,
		Productivity:   prod,
		Exhaustivity:   kpi.GlobalRate(kpi.CheckDaily(days)),
		Inspection:     kpi.RateByOrder(inspections),
		Leads:          kpi.SummarizeLeads(invoices),
		Quarter:        kpi.CurrentQuarter(meetingDate),
		OpenActions:    open,
		OverdueActions: overdue,
		Notes:          req.Notes,
	}

	summary := models.MeetingSummary{
		MeetingDate:         meetingDate,
		ProductiviteGlobale: prod.Productivity,
		TotalHeures:         utils.Round2(prod.TotalWorked),
		TotalFacturable:     utils.Round2(prod.TotalBillable),
		ActionsOuvertes:     len(open),
		ActionsCritiques:    len(overdue),
		NotesDiscussion:     req.Notes,
		MarkdownContent:     report.Render(data),
		CreatedBy:           c.GetString(middlewares.ContextUserEmail),
	}
	if err := store.CreateMeetingSummary(h.DB, &summary); err != nil {
		config.LogError("handlers", "GenerateMeetingSummary", err, nil)
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse("failed to store summary"))
		return
	}
	c.JSON(http.StatusCreated, common.NewSuccessResponse(toSummaryDTO(summary, true)))
}

// ListMeetingSummaries serves summary metadata without the Markdown bodies.
func (h *Handler) ListMeetingSummaries(c *gin.Context) {
	summaries, err := store.ListMeetingSummaries(h.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse("failed to list summaries"))
		return
	}
	out := utils.Map(summaries, func(s models.MeetingSummary) summaryDTO {
		return toSummaryDTO(s, false)
	})
	c.JSON(http.StatusOK, common.NewSuccessResponse(out))
}

func (h *Handler) getSummary(c *gin.Context) (*models.MeetingSummary, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 32)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("invalid summary id"))
		return nil, false
	}
	summary, err := store.GetMeetingSummary(h.DB, int32(id))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, common.NewErrorResponse("summary not found"))
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse("failed to load summary"))
		return nil, false
	}
	return summary, true
}

// GetMeetingSummary serves one summary with its Markdown body.
func (h *Handler) GetMeetingSummary(c *gin.Context) {
	summary, ok := h.getSummary(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(toSummaryDTO(*summary, true)))
}

// GetMeetingSummaryHTML serves the rendered HTML view of a summary.
func (h *Handler) GetMeetingSummaryHTML(c *gin.Context) {
	summary, ok := h.getSummary(c)
	if !ok {
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8",
		[]byte(report.RenderHTML(summary.MarkdownContent)))
}
