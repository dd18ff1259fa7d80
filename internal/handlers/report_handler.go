package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/javlon0607/learning-center-sub000/config"
	"github.com/javlon0607/learning-center-sub000/internal/ledger"
)

type groupReportRow struct {
	GroupID           uint    `json:"group_id"`
	GroupName         string  `json:"group_name"`
	TeacherID         uint    `json:"teacher_id"`
	TeacherName       string  `json:"teacher_name"`
	SalaryType        string  `json:"salary_type"`
	ExpectedAmount    float64 `json:"expected_amount"`
	CollectedAmount   float64 `json:"collected_amount"`
	RemainingDebt     float64 `json:"remaining_debt"`
	PaymentPercentage int     `json:"payment_percentage"`
	TeacherPortion    float64 `json:"teacher_portion"`
	CenterPortion     float64 `json:"center_portion"`
}

type reportTotalsRow struct {
	ExpectedAmount    float64 `json:"expected_amount"`
	CollectedAmount   float64 `json:"collected_amount"`
	RemainingDebt     float64 `json:"remaining_debt"`
	TeacherPortion    float64 `json:"teacher_portion"`
	CenterPortion     float64 `json:"center_portion"`
	PaymentPercentage int     `json:"payment_percentage"`
}

type monthlyReportResponse struct {
	Month  string           `json:"month"`
	Groups []groupReportRow `json:"groups"`
	Totals reportTotalsRow  `json:"totals"`
}

// MonthlyReportHandler — сводный отчёт месяца по всем активным
// группам. Отчёт read-only, поэтому кэшируется; кэш сбрасывается
// леджером после каждой мутации затронутого месяца.
func MonthlyReportHandler(c *gin.Context) {
	month, err := ledger.ParseMonth(c.Query("month"))
	if err != nil {
		respondLedgerError(c, err)
		return
	}

	cacheKey := ledger.ReportCacheKey(month)
	if config.RDB != nil {
		if cached, err := config.RDB.Get(c.Request.Context(), cacheKey).Result(); err == nil {
			var resp monthlyReportResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				c.JSON(http.StatusOK, resp)
				return
			}
		}
	}

	report, err := svc.MonthlyReport(month)
	if err != nil {
		respondLedgerError(c, err)
		return
	}

	resp := monthlyReportResponse{
		Month:  report.Month.String(),
		Groups: make([]groupReportRow, 0, len(report.Groups)),
		Totals: reportTotalsRow{
			ExpectedAmount:    report.Totals.ExpectedAmount.Major(),
			CollectedAmount:   report.Totals.CollectedAmount.Major(),
			RemainingDebt:     report.Totals.RemainingDebt.Major(),
			TeacherPortion:    report.Totals.TeacherPortion.Major(),
			CenterPortion:     report.Totals.CenterPortion.Major(),
			PaymentPercentage: report.Totals.PaymentPercentage,
		},
	}
	for _, g := range report.Groups {
		resp.Groups = append(resp.Groups, groupReportRow{
			GroupID:           g.GroupID,
			GroupName:         g.GroupName,
			TeacherID:         g.TeacherID,
			TeacherName:       g.TeacherName,
			SalaryType:        g.SalaryType,
			ExpectedAmount:    g.ExpectedAmount.Major(),
			CollectedAmount:   g.CollectedAmount.Major(),
			RemainingDebt:     g.RemainingDebt.Major(),
			PaymentPercentage: g.PaymentPercentage,
			TeacherPortion:    g.TeacherPortion.Major(),
			CenterPortion:     g.CenterPortion.Major(),
		})
	}

	if config.RDB != nil {
		if data, err := json.Marshal(resp); err == nil {
			config.RDB.Set(c.Request.Context(), cacheKey, data, 10*time.Minute)
		}
	}
	c.JSON(http.StatusOK, resp)
}
