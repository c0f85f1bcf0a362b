package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"neemba.com/sepkpi/config"
	"neemba.com/sepkpi/kpi"
	"neemba.com/sepkpi/store"
	"neemba.com/sepkpi/utils"
	"neemba.com/sepkpi/web/common"
)

type groupRateDTO struct {
	Cle        string  `json:"cle"`
	ORTotal    int     `json:"or_total"`
	ORInspecte int     `json:"or_inspectes"`
	TauxPct    float64 `json:"taux_pct"`
}

func toGroupRateDTO(r kpi.GroupRate) groupRateDTO {
	return groupRateDTO{Cle: r.Key, ORTotal: r.Orders, ORInspecte: r.Inspected, TauxPct: r.RatePct}
}

type inspectionLineDTO struct {
	SN           string `json:"sn"`
	ORSegment    string `json:"or_segment"`
	TypeMateriel string `json:"type_materiel"`
	Atelier      string `json:"atelier"`
	DateFacture  string `json:"date_facture"`
	Inspecte     bool   `json:"inspecte"`
	Technicien   string `json:"technicien"`
	Equipe       string `json:"equipe"`
}

func toInspectionLineDTO(l kpi.InspectionLine) inspectionLineDTO {
	return inspectionLineDTO{
		SN:           l.SN,
		ORSegment:    l.ORSegment,
		TypeMateriel: l.EquipmentType,
		Atelier:      l.Workshop,
		DateFacture:  utils.FormatDate(l.InvoiceDate),
		Inspecte:     l.Inspected,
		Technicien:   l.Technician,
		Equipe:       l.Team,
	}
}

type inspectionAnalyticsDTO struct {
	TauxInspectionPct float64             `json:"taux_inspection_pct"`
	ORTotal           int                 `json:"or_total"`
	ORInspecte        int                 `json:"or_inspectes"`
	ParAtelier        []groupRateDTO      `json:"par_atelier"`
	ParTypeMateriel   []groupRateDTO      `json:"par_type_materiel"`
	ParTechnicien     []groupRateDTO      `json:"par_technicien"`
	DeltaSemaine      weeklyDeltaDTO      `json:"delta_semaine"`
	Records           []inspectionLineDTO `json:"records"`
}

type weeklyDeltaDTO struct {
	TauxActuel    float64 `json:"taux_actuel"`
	TauxReference float64 `json:"taux_reference"`
	Delta         float64 `json:"delta"`
	DateReference string  `json:"date_reference"`
}

func (h *Handler) loadInspections(c *gin.Context) ([]kpi.InspectionLine, bool) {
	lines, err := store.LoadInspections(h.DB)
	if err != nil {
		config.LogError("handlers", "loadInspections", err, nil)
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse("failed to load inspection data"))
		return nil, false
	}
	return lines, true
}

// InspectionAnalytics serves the full inspection-rate payload, optionally
// scoped to one quarter with ?trimestre=YYYY-Qn.
func (h *Handler) InspectionAnalytics(c *gin.Context) {
	var lines []kpi.InspectionLine
	if quarter := c.Query("trimestre"); quarter != "" {
		start, end, err := kpi.QuarterDates(quarter)
		if err != nil {
			c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error()))
			return
		}
		lines, err = store.LoadInspectionsBetween(h.DB,
			utils.FormatDate(start), utils.FormatDate(end))
		if err != nil {
			config.LogError("handlers", "InspectionAnalytics", err, nil)
			c.JSON(http.StatusInternalServerError, common.NewErrorResponse("failed to load inspection data"))
			return
		}
	} else {
		var ok bool
		lines, ok = h.loadInspections(c)
		if !ok {
			return
		}
	}

	a := kpi.AnalyzeInspections(lines, today())
	resp := inspectionAnalyticsDTO{
		TauxInspectionPct: a.Overall.RatePct,
		ORTotal:           a.Overall.Orders,
		ORInspecte:        a.Overall.Inspected,
		ParAtelier:        utils.Map(a.ByWorkshop, toGroupRateDTO),
		ParTypeMateriel:   utils.Map(a.ByEquipmentType, toGroupRateDTO),
		ParTechnicien:     utils.Map(a.ByTechnician, toGroupRateDTO),
		DeltaSemaine: weeklyDeltaDTO{
			TauxActuel:    a.Weekly.Current,
			TauxReference: a.Weekly.Reference,
			Delta:         a.Weekly.Delta,
			DateReference: utils.FormatDate(a.Weekly.AsOf),
		},
		Records: utils.Map(a.Records, toInspectionLineDTO),
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(resp))
}

// InspectionSnapshot serves the headline rate without the breakdowns, for
// the dashboard's landing card.
func (h *Handler) InspectionSnapshot(c *gin.Context) {
	lines, ok := h.loadInspections(c)
	if !ok {
		return
	}

	r := kpi.RateByOrder(lines)
	c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{
		"taux_inspection_pct": r.RatePct,
		"or_total":            r.Orders,
		"or_inspectes":        r.Inspected,
		"lignes":              len(lines),
	}))
}

// InspectionQuarters lists the quarters covered by the stored data.
func (h *Handler) InspectionQuarters(c *gin.Context) {
	lines, ok := h.loadInspections(c)
	if !ok {
		return
	}
	if len(lines) == 0 {
		c.JSON(http.StatusOK, common.NewSuccessResponse([]string{}))
		return
	}

	first, last := lines[0].InvoiceDate, lines[0].InvoiceDate
	for _, l := range lines {
		if l.InvoiceDate.Before(first) {
			first = l.InvoiceDate
		}
		if l.InvoiceDate.After(last) {
			last = l.InvoiceDate
		}
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(kpi.QuartersBetween(first, last)))
}

// InspectionTeams lists the teams attributed on inspection records.
func (h *Handler) InspectionTeams(c *gin.Context) {
	lines, ok := h.loadInspections(c)
	if !ok {
		return
	}

	teams := map[string]bool{}
	for _, l := range lines {
		if l.Team != "" {
			teams[l.Team] = true
		}
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(utils.SortedKeys(teams)))
}

type quarterRateDTO struct {
	Trimestre  string  `json:"trimestre"`
	ORTotal    int     `json:"or_total"`
	ORInspecte int     `json:"or_inspectes"`
	TauxPct    float64 `json:"taux_pct"`
}

// InspectionHistory serves the order-level rate per quarter, oldest first.
func (h *Handler) InspectionHistory(c *gin.Context) {
	lines, ok := h.loadInspections(c)
	if !ok {
		return
	}

	grouped := utils.GroupBy(lines, func(l kpi.InspectionLine) string {
		return kpi.CurrentQuarter(l.InvoiceDate)
	})
	out := make([]quarterRateDTO, 0, len(grouped))
	for _, q := range utils.SortedKeys(grouped) {
		r := kpi.RateByOrder(grouped[q])
		out = append(out, quarterRateDTO{
			Trimestre:  q,
			ORTotal:    r.Orders,
			ORInspecte: r.Inspected,
			TauxPct:    r.RatePct,
		})
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(out))
}
