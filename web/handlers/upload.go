package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"neemba.com/sepkpi/config"
	"neemba.com/sepkpi/kpi"
	"neemba.com/sepkpi/sheets"
	"neemba.com/sepkpi/store"
	"neemba.com/sepkpi/web/common"
)

type uploadResponse struct {
	BatchID      string   `json:"batch_id"`
	RowsImported int      `json:"rows_imported"`
	SheetsRead   []string `json:"sheets_read"`
	Warnings     []string `json:"warnings,omitempty"`
}

func (h *Handler) openUpload(c *gin.Context) ([]sheets.Table, string, bool) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("missing file field"))
		return nil, "", false
	}
	defer file.Close()

	tables, err := sheets.ReadTabular(file, header.Filename)
	if err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error()))
		return nil, "", false
	}
	return tables, header.Filename, true
}

func uploadError(c *gin.Context, err error) {
	var missing *kpi.MissingColumnError
	var parse *kpi.ParseError
	if errors.As(err, &missing) || errors.As(err, &parse) {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error()))
		return
	}
	config.LogError("handlers", "upload", err, nil)
	c.JSON(http.StatusInternalServerError, common.NewErrorResponse("upload failed"))
}

// UploadTimesheet ingests a productivity export. Workbooks can carry an
// inspection sheet next to the timesheet; the timesheet commit stands even
// when the inspection sheet fails, and the failure comes back as a warning.
func (h *Handler) UploadTimesheet(c *gin.Context) {
	tables, filename, ok := h.openUpload(c)
	if !ok {
		return
	}

	batch := uuid.NewString()
	log := config.GetLogger().WithFields(logrus.Fields{
		"batch":    batch,
		"filename": filename,
	})

	resp := uploadResponse{BatchID: batch}
	imported := false

	for _, table := range tables {
		switch table.Kind {
		case sheets.KindTimesheet:
			entries, err := kpi.LoadTimesheet(table.Header, table.Rows)
			if err != nil {
				uploadError(c, err)
				return
			}
			rows := store.BuildPointages(entries)
			if err := store.UpsertPointages(h.DB, rows); err != nil {
				uploadError(c, err)
				return
			}
			h.Cache.SetTimesheet(entries)
			resp.RowsImported += len(rows)
			resp.SheetsRead = append(resp.SheetsRead, table.Name)
			imported = true
			log.WithField("rows", len(rows)).Info("timesheet sheet imported")

		case sheets.KindInspection:
			if err := h.importInspectionTable(table); err != nil {
				resp.Warnings = append(resp.Warnings, "sheet "+table.Name+": "+err.Error())
				log.WithField("sheet", table.Name).Warn(err.Error())
				continue
			}
			resp.SheetsRead = append(resp.SheetsRead, table.Name)
		}
	}

	if !imported {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("no timesheet sheet found in upload"))
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(resp))
}

func (h *Handler) importInspectionTable(table sheets.Table) error {
	parsed, err := sheets.ParseInspection(table.Header, table.Rows)
	if err != nil {
		return err
	}
	return store.UpsertInspections(h.DB, parsed)
}

// UploadInspection ingests an inspection export on its own.
func (h *Handler) UploadInspection(c *gin.Context) {
	tables, filename, ok := h.openUpload(c)
	if !ok {
		return
	}

	batch := uuid.NewString()
	resp := uploadResponse{BatchID: batch}

	for _, table := range tables {
		if table.Kind != sheets.KindInspection {
			continue
		}
		parsed, err := sheets.ParseInspection(table.Header, table.Rows)
		if err != nil {
			uploadError(c, err)
			return
		}
		if err := store.UpsertInspections(h.DB, parsed); err != nil {
			uploadError(c, err)
			return
		}
		resp.RowsImported += len(parsed)
		resp.SheetsRead = append(resp.SheetsRead, table.Name)
	}

	if len(resp.SheetsRead) == 0 {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("no inspection sheet found in upload"))
		return
	}
	config.GetLogger().WithFields(logrus.Fields{
		"batch":    batch,
		"filename": filename,
		"rows":     resp.RowsImported,
	}).Info("inspection upload imported")
	c.JSON(http.StatusOK, common.NewSuccessResponse(resp))
}

// UploadLLTI ingests the invoicing export, preparing the lead-time set for
// the current quarter before persisting it.
func (h *Handler) UploadLLTI(c *gin.Context) {
	tables, filename, ok := h.openUpload(c)
	if !ok {
		return
	}

	batch := uuid.NewString()
	resp := uploadResponse{BatchID: batch}

	for _, table := range tables {
		if table.Kind != sheets.KindLLTI {
			continue
		}
		raw, err := sheets.ParseLLTI(table.Header, table.Rows)
		if err != nil {
			uploadError(c, err)
			return
		}
		invoices := kpi.PrepareInvoices(raw, h.Cfg.Manufacturer, today())
		if err := store.UpsertInvoices(h.DB, invoices); err != nil {
			uploadError(c, err)
			return
		}
		h.Cache.SetInvoices(invoices)
		resp.RowsImported += len(invoices)
		resp.SheetsRead = append(resp.SheetsRead, table.Name)
	}

	if len(resp.SheetsRead) == 0 {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("no invoicing sheet found in upload"))
		return
	}
	config.GetLogger().WithFields(logrus.Fields{
		"batch":    batch,
		"filename": filename,
		"rows":     resp.RowsImported,
	}).Info("invoicing upload imported")
	c.JSON(http.StatusOK, common.NewSuccessResponse(resp))
}
