package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"neemba.com/sepkpi/config"
	"neemba.com/sepkpi/kpi"
	"neemba.com/sepkpi/store"
	"neemba.com/sepkpi/web/common"
)

// Handler carries the shared dependencies of every endpoint.
type Handler struct {
	DB    *gorm.DB
	Cache *store.Snapshot
	Cfg   *config.Config
}

func New(db *gorm.DB, cache *store.Snapshot, cfg *config.Config) *Handler {
	return &Handler{DB: db, Cache: cache, Cfg: cfg}
}

// Health responds on the unauthenticated liveness route.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// timesheet returns the cached dataset, falling back to the database when
// the cache has never been warmed in this process.
func (h *Handler) timesheet(c *gin.Context) ([]kpi.TimesheetEntry, bool) {
	entries := h.Cache.Timesheet()
	if len(entries) > 0 {
		return entries, true
	}
	entries, err := store.LoadPointages(h.DB)
	if err != nil {
		config.LogError("handlers", "timesheet", err, nil)
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse("failed to load timesheet data"))
		return nil, false
	}
	h.Cache.SetTimesheet(entries)
	return entries, true
}

// invoices is the lead-time counterpart of timesheet.
func (h *Handler) invoices(c *gin.Context) ([]kpi.Invoice, bool) {
	invoices := h.Cache.Invoices()
	if len(invoices) > 0 {
		return invoices, true
	}
	invoices, err := store.LoadInvoices(h.DB)
	if err != nil {
		config.LogError("handlers", "invoices", err, nil)
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse("failed to load invoice data"))
		return nil, false
	}
	h.Cache.SetInvoices(invoices)
	return invoices, true
}

func today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
