package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"neemba.com/sepkpi/kpi"
	"neemba.com/sepkpi/utils"
	"neemba.com/sepkpi/web/common"
)

type invoiceDTO struct {
	ORSegment     string  `json:"or_segment"`
	NumeroFacture string  `json:"numero_facture"`
	DateFacture   string  `json:"date_facture"`
	DatePointage  string  `json:"date_pointage"`
	Client        string  `json:"client"`
	SNEquipement  string  `json:"sn_equipement"`
	LLTIJours     float64 `json:"llti_jours"`
}

func toInvoiceDTO(i kpi.Invoice) invoiceDTO {
	return invoiceDTO{
		ORSegment:     i.ORSegment,
		NumeroFacture: i.Number,
		DateFacture:   utils.FormatDate(i.InvoiceDate),
		DatePointage:  utils.FormatDate(i.LastLabor),
		Client:        i.Client,
		SNEquipement:  i.SN,
		LLTIJours:     utils.Round1(i.LeadDays),
	}
}

type clientLeadDTO struct {
	Client      string  `json:"client"`
	NbFactures  int     `json:"nb_factures"`
	MoyenneLLTI float64 `json:"moyenne_llti"`
}

type lltiAnalyticsDTO struct {
	MoyenneLLTI  float64              `json:"moyenne_llti"`
	MedianeLLTI  float64              `json:"mediane_llti"`
	NbFactures   int                  `json:"nb_factures"`
	Statut       string               `json:"statut"`
	Trimestre    string               `json:"trimestre"`
	Distribution kpi.LeadDistribution `json:"distribution"`
	ParClient    []clientLeadDTO      `json:"par_client"`
	ParOR        []invoiceDTO         `json:"par_or"`
}

// LLTIAnalytics serves the full lead-time payload for the current quarter.
func (h *Handler) LLTIAnalytics(c *gin.Context) {
	invoices, ok := h.invoices(c)
	if !ok {
		return
	}

	a := kpi.AnalyzeLeads(invoices, today())
	resp := lltiAnalyticsDTO{
		MoyenneLLTI:  a.Summary.MeanDays,
		MedianeLLTI:  a.Summary.Median,
		NbFactures:   a.Summary.Invoices,
		Statut:       a.Summary.Status,
		Trimestre:    a.Quarter,
		Distribution: a.Distribution,
		ParClient: utils.Map(a.ByClient, func(cl kpi.ClientLead) clientLeadDTO {
			return clientLeadDTO{Client: cl.Client, NbFactures: cl.Invoices, MoyenneLLTI: cl.MeanDays}
		}),
		ParOR: utils.Map(a.ByOrder, toInvoiceDTO),
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(resp))
}

// LLTISnapshot serves the headline mean and status only.
func (h *Handler) LLTISnapshot(c *gin.Context) {
	invoices, ok := h.invoices(c)
	if !ok {
		return
	}

	s := kpi.SummarizeLeads(invoices)
	c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{
		"moyenne_llti": s.MeanDays,
		"mediane_llti": s.Median,
		"nb_factures":  s.Invoices,
		"statut":       s.Status,
		"trimestre":    kpi.CurrentQuarter(today()),
	}))
}
