package handlers

import (
	"net/http"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/javlon0607/learning-center-sub000/internal/ledger"
)

type monthDebtResponse struct {
	Month         string  `json:"month"`
	MonthlyDebt   float64 `json:"monthly_debt"`
	PaidAmount    float64 `json:"paid_amount"`
	RemainingDebt float64 `json:"remaining_debt"`
}

// GetStudentDebtHandler возвращает долг ученика в группе. Один месяц —
// параметр month, диапазон — months=YYYY-MM,YYYY-MM,... одним запросом:
// клиенты больше не опрашивают месяцы по одному и видят единый снимок.
func GetStudentDebtHandler(c *gin.Context) {
	studentID, ok := queryUint(c, "student_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "не указан student_id"})
		return
	}
	groupID, ok := queryUint(c, "group_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "не указан group_id"})
		return
	}

	var raw []string
	batched := false
	if ms := c.Query("months"); ms != "" {
		raw = strings.Split(ms, ",")
		batched = true
	} else if m := c.Query("month"); m != "" {
		raw = []string{m}
	} else {
		c.JSON(http.StatusBadRequest, gin.H{"error": "укажите month или months"})
		return
	}

	months := make([]ledger.Month, 0, len(raw))
	seen := make(map[ledger.Month]bool, len(raw))
	for _, s := range raw {
		m, err := ledger.ParseMonth(strings.TrimSpace(s))
		if err != nil {
			respondLedgerError(c, err)
			return
		}
		if !seen[m] {
			seen[m] = true
			months = append(months, m)
		}
	}
	sort.Slice(months, func(i, j int) bool { return months[i] < months[j] })

	debt, err := svc.Debt(studentID, groupID, months)
	if err != nil {
		respondLedgerError(c, err)
		return
	}

	if !batched {
		d := debt.Months[0]
		c.JSON(http.StatusOK, gin.H{
			"group_price":         debt.GroupPrice.Major(),
			"discount_percentage": ledger.PercentFromBp(debt.DiscountBp),
			"monthly_debt":        d.MonthlyRate.Major(),
			"paid_amount":         d.PaidAmount.Major(),
			"remaining_debt":      d.RemainingDebt.Major(),
		})
		return
	}

	list := make([]monthDebtResponse, 0, len(debt.Months))
	for _, d := range debt.Months {
		list = append(list, monthDebtResponse{
			Month:         d.Month.String(),
			MonthlyDebt:   d.MonthlyRate.Major(),
			PaidAmount:    d.PaidAmount.Major(),
			RemainingDebt: d.RemainingDebt.Major(),
		})
	}
	c.JSON(http.StatusOK, gin.H{
		"group_price":         debt.GroupPrice.Major(),
		"discount_percentage": ledger.PercentFromBp(debt.DiscountBp),
		"months":              list,
		"total_remaining":     debt.TotalRemaining.Major(),
	})
}
