package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"neemba.com/sepkpi/kpi"
	"neemba.com/sepkpi/utils"
	"neemba.com/sepkpi/web/common"
)

// DTO field names follow the dashboard's existing contract.

type dailyDTO struct {
	SalarieID       int     `json:"salarie_id"`
	SalarieNom      string  `json:"salarie_nom"`
	Equipe          string  `json:"equipe"`
	Date            string  `json:"date"`
	Facturable      float64 `json:"facturable"`
	NonFacturable   float64 `json:"non_facturable"`
	Allouee         float64 `json:"allouee"`
	HrTravaillee    float64 `json:"hr_travaillee"`
	HrTotale        float64 `json:"hr_totale"`
	ProductivitePct float64 `json:"productivite_pct"`
}

// ProductivityDaily serves one row per employee per day.
func (h *Handler) ProductivityDaily(c *gin.Context) {
	entries, ok := h.timesheet(c)
	if !ok {
		return
	}

	days := kpi.AggregateDays(entries)
	out := utils.Map(days, func(d kpi.EmployeeDay) dailyDTO {
		return dailyDTO{
			SalarieID:       d.EmployeeID,
			SalarieNom:      d.EmployeeName,
			Equipe:          d.Team,
			Date:            utils.FormatDate(d.Date),
			Facturable:      utils.Round2(d.Billable),
			NonFacturable:   utils.Round2(d.NonBillable),
			Allouee:         utils.Round2(d.Allocated),
			HrTravaillee:    utils.Round2(d.Worked),
			HrTotale:        utils.Round2(d.Total),
			ProductivitePct: d.Productivity,
		}
	})
	c.JSON(http.StatusOK, common.NewSuccessResponse(out))
}

type teamScoreDTO struct {
	Equipe          string  `json:"equipe"`
	Periode         string  `json:"periode"`
	ProductivitePct float64 `json:"productivite_pct"`
	Facturable      float64 `json:"facturable"`
	HrTravaillee    float64 `json:"hr_travaillee"`
	Effectif        int     `json:"effectif"`
}

type correlationDTO struct {
	Equipe string  `json:"equipe"`
	Score  float64 `json:"score"`
	Mois   int     `json:"mois"`
}

type teamResponse struct {
	Granularite       string          `json:"granularite"`
	ParEquipe         []teamScoreDTO  `json:"par_equipe"`
	CorrelationDriver *correlationDTO `json:"correlation_driver"`
}

// ProductivityTeam serves the per-team scores for a granularity plus the
// team whose monthly curve best explains the global one.
func (h *Handler) ProductivityTeam(c *gin.Context) {
	entries, ok := h.timesheet(c)
	if !ok {
		return
	}

	granularity := c.DefaultQuery("granularite", "monthly")
	switch granularity {
	case "daily", "weekly", "monthly":
	default:
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("granularite must be daily, weekly or monthly"))
		return
	}

	days := kpi.AggregateDays(entries)
	scores := utils.Map(kpi.TeamProductivity(days, granularity), func(s kpi.PeriodScore) teamScoreDTO {
		return teamScoreDTO{
			Equipe:          s.Key,
			Periode:         s.Period,
			ProductivitePct: s.Productivity,
			Facturable:      utils.Round2(s.Billable),
			HrTravaillee:    utils.Round2(s.Worked),
			Effectif:        s.Employees,
		}
	})

	resp := teamResponse{Granularite: granularity, ParEquipe: scores}
	if drivers := kpi.CorrelationDriver(days); len(drivers) > 0 {
		resp.CorrelationDriver = &correlationDTO{
			Equipe: drivers[0].Team,
			Score:  drivers[0].Score,
			Mois:   drivers[0].Months,
		}
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(resp))
}

// ProductivityTeams lists the distinct team names in the dataset.
func (h *Handler) ProductivityTeams(c *gin.Context) {
	entries, ok := h.timesheet(c)
	if !ok {
		return
	}

	teams := map[string]bool{}
	for _, e := range entries {
		if e.Team != "" {
			teams[e.Team] = true
		}
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(utils.SortedKeys(teams)))
}

type employeeDTO struct {
	SalarieNom      string  `json:"salarie_nom"`
	Equipe          string  `json:"equipe"`
	ProductivitePct float64 `json:"productivite_pct"`
	ProductiviteR12 float64 `json:"productivite_r12"`
	Jours           int     `json:"jours"`
}

// ProductivityEmployees serves one summary row per employee: overall score,
// trailing twelve month score and day count.
func (h *Handler) ProductivityEmployees(c *gin.Context) {
	entries, ok := h.timesheet(c)
	if !ok {
		return
	}

	days := kpi.AggregateDays(entries)

	type agg struct {
		team     string
		billable float64
		worked   float64
		count    int
	}
	perEmployee := map[string]*agg{}
	for _, d := range days {
		a := perEmployee[d.EmployeeName]
		if a == nil {
			a = &agg{team: d.Team}
			perEmployee[d.EmployeeName] = a
		}
		a.billable += d.Billable
		a.worked += d.Worked
		a.count++
	}

	// The series is ordered by date per employee, so the last write keeps
	// each employee's score at their newest observed day.
	r12 := map[string]float64{}
	for _, s := range kpi.Rolling12(days) {
		r12[s.Key] = s.Productivity
	}

	out := make([]employeeDTO, 0, len(perEmployee))
	for _, name := range utils.SortedKeys(perEmployee) {
		a := perEmployee[name]
		out = append(out, employeeDTO{
			SalarieNom:      name,
			Equipe:          a.team,
			ProductivitePct: kpi.Productivity(a.billable, a.worked),
			ProductiviteR12: r12[name],
			Jours:           a.count,
		})
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(out))
}

type rateDTO struct {
	Cle        string  `json:"cle"`
	TauxPct    float64 `json:"taux_exhaustivite_pct"`
	Conformes  int     `json:"jours_conformes"`
	Total      int     `json:"jours_total"`
	Manquants  int     `json:"jours_manquants"`
	Incomplets int     `json:"jours_incomplets"`
	HeuresSup  int     `json:"jours_heures_sup"`
}

func toRateDTO(r kpi.Rate) rateDTO {
	return rateDTO{
		Cle:        r.Key,
		TauxPct:    r.RatePct,
		Conformes:  r.Compliant,
		Total:      r.Total,
		Manquants:  r.Missing,
		Incomplets: r.Incomplete,
		HeuresSup:  r.Overtime,
	}
}

type exhaustivityResponse struct {
	Global     rateDTO   `json:"global"`
	ParEquipe  []rateDTO `json:"par_equipe"`
	ParSalarie []rateDTO `json:"par_salarie"`
	ParMois    []rateDTO `json:"par_mois"`
}

// ExhaustivitySummary serves the compliance rates at every granularity.
func (h *Handler) ExhaustivitySummary(c *gin.Context) {
	entries, ok := h.timesheet(c)
	if !ok {
		return
	}

	statuses := kpi.CheckDaily(kpi.AggregateDays(entries))
	resp := exhaustivityResponse{
		Global:     toRateDTO(kpi.GlobalRate(statuses)),
		ParEquipe:  utils.Map(kpi.TeamRates(statuses), toRateDTO),
		ParSalarie: utils.Map(kpi.EmployeeRates(statuses), toRateDTO),
		ParMois:    utils.Map(kpi.MonthlyRates(statuses), toRateDTO),
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(resp))
}

type anomalyDTO struct {
	SalarieNom string  `json:"salarie_nom"`
	Equipe     string  `json:"equipe"`
	Date       string  `json:"date"`
	Heures     float64 `json:"heures"`
	Statut     string  `json:"statut"`
}

// ExhaustivityAnomalies serves the triage list, worst first.
func (h *Handler) ExhaustivityAnomalies(c *gin.Context) {
	entries, ok := h.timesheet(c)
	if !ok {
		return
	}

	anomalies := kpi.Anomalies(kpi.CheckDaily(kpi.AggregateDays(entries)))
	out := utils.Map(anomalies, func(s kpi.DayStatus) anomalyDTO {
		return anomalyDTO{
			SalarieNom: s.EmployeeName,
			Equipe:     s.Team,
			Date:       utils.FormatDate(s.Date),
			Heures:     s.Hours,
			Statut:     string(s.Status),
		}
	})
	c.JSON(http.StatusOK, common.NewSuccessResponse(out))
}

type gridCellDTO struct {
	Date   string  `json:"date"`
	Heures float64 `json:"heures"`
	Statut string  `json:"statut"`
}

type gridResponse struct {
	Equipe   string                   `json:"equipe"`
	Mois     string                   `json:"mois"`
	Salaries map[string][]gridCellDTO `json:"salaries"`
}

// ExhaustivityGrid serves the per-technician day matrix for one team and
// month, holes rendered as zero-hour MISSING cells.
func (h *Handler) ExhaustivityGrid(c *gin.Context) {
	entries, ok := h.timesheet(c)
	if !ok {
		return
	}

	team := c.Query("equipe")
	if team == "" {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("equipe is required"))
		return
	}
	month := c.DefaultQuery("mois", utils.MonthKey(today()))
	if _, err := time.Parse("2006-01", month); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("mois must be YYYY-MM"))
		return
	}

	grid := kpi.MonthlyGrid(kpi.AggregateDays(entries), team, month)
	salaries := make(map[string][]gridCellDTO, len(grid))
	for name, cells := range grid {
		salaries[name] = utils.Map(cells, func(cell kpi.GridCell) gridCellDTO {
			return gridCellDTO{
				Date:   utils.FormatDate(cell.Date),
				Heures: cell.Hours,
				Statut: string(cell.Status),
			}
		})
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(gridResponse{
		Equipe:   team,
		Mois:     month,
		Salaries: salaries,
	}))
}

type employeePeriodDTO struct {
	SalarieNom      string  `json:"salarie_nom"`
	Periode         string  `json:"periode"`
	ProductivitePct float64 `json:"productivite_pct"`
	Facturable      float64 `json:"facturable"`
	HrTravaillee    float64 `json:"hr_travaillee"`
}

// ProductivityEmployeeHistory serves each employee's period curve at the
// requested granularity.
func (h *Handler) ProductivityEmployeeHistory(c *gin.Context) {
	entries, ok := h.timesheet(c)
	if !ok {
		return
	}

	days := kpi.AggregateDays(entries)
	var scores []kpi.PeriodScore
	switch granularity := c.DefaultQuery("granularite", "monthly"); granularity {
	case "weekly":
		scores = kpi.WeeklyProductivity(days)
	case "monthly":
		scores = kpi.MonthlyProductivity(days)
	default:
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("granularite must be weekly or monthly"))
		return
	}

	out := utils.Map(scores, func(s kpi.PeriodScore) employeePeriodDTO {
		return employeePeriodDTO{
			SalarieNom:      s.Key,
			Periode:         s.Period,
			ProductivitePct: s.Productivity,
			Facturable:      utils.Round2(s.Billable),
			HrTravaillee:    utils.Round2(s.Worked),
		}
	})
	c.JSON(http.StatusOK, common.NewSuccessResponse(out))
}

type missingDayDTO struct {
	SalarieNom string `json:"salarie_nom"`
	Equipe     string `json:"equipe"`
	Date       string `json:"date"`
}

// ExhaustivityMissingDays serves the working days with no entry at all.
func (h *Handler) ExhaustivityMissingDays(c *gin.Context) {
	entries, ok := h.timesheet(c)
	if !ok {
		return
	}

	missing := kpi.MissingDays(kpi.AggregateDays(entries))
	out := utils.Map(missing, func(m kpi.MissingDay) missingDayDTO {
		return missingDayDTO{
			SalarieNom: m.EmployeeName,
			Equipe:     m.Team,
			Date:       utils.FormatDate(m.Date),
		}
	})
	c.JSON(http.StatusOK, common.NewSuccessResponse(out))
}
