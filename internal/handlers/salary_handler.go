package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/javlon0607/learning-center-sub000/config"
	"github.com/javlon0607/learning-center-sub000/internal/ledger"
	"github.com/javlon0607/learning-center-sub000/models"
)

type salaryPreviewResponse struct {
	SalaryType       string  `json:"salary_type"`
	SalaryPercentage int     `json:"salary_percentage"`
	CollectedAmount  float64 `json:"collected_amount"`
	BaseAmount       float64 `json:"base_amount"`
}

// PreviewSalaryHandler — рекомендательный расчёт базы оклада за месяц.
// Ответ кэшируется в Redis и сбрасывается леджером при платежах,
// затрагивающих месяц преподавателя.
func PreviewSalaryHandler(c *gin.Context) {
	teacherID, ok := queryUint(c, "teacher_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "не указан teacher_id"})
		return
	}
	month, err := ledger.ParseMonth(c.Query("month"))
	if err != nil {
		respondLedgerError(c, err)
		return
	}

	cacheKey := ledger.SalaryPreviewCacheKey(teacherID, month)
	if config.RDB != nil {
		if cached, err := config.RDB.Get(c.Request.Context(), cacheKey).Result(); err == nil {
			var resp salaryPreviewResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				c.JSON(http.StatusOK, resp)
				return
			}
		}
	}

	preview, err := svc.SalaryPreview(teacherID, month)
	if err != nil {
		respondLedgerError(c, err)
		return
	}
	resp := salaryPreviewResponse{
		SalaryType:       preview.SalaryType,
		SalaryPercentage: preview.SalaryPercentage,
		CollectedAmount:  preview.CollectedAmount.Major(),
		BaseAmount:       preview.BaseAmount.Major(),
	}

	if config.RDB != nil {
		if data, err := json.Marshal(resp); err == nil {
			config.RDB.Set(c.Request.Context(), cacheKey, data, 10*time.Minute)
		}
	}
	c.JSON(http.StatusOK, resp)
}

// CreateSalarySlipRequest — новая ведомость. base_amount обычно
// предзаполняется из предпросмотра, но оператор может его изменить.
type CreateSalarySlipRequest struct {
	TeacherID   uint    `json:"teacher_id" binding:"required"`
	PeriodStart string  `json:"period_start" binding:"required"`
	PeriodEnd   string  `json:"period_end" binding:"required"`
	BaseAmount  float64 `json:"base_amount" binding:"gte=0"`
	Bonus       float64 `json:"bonus" binding:"gte=0"`
	Deduction   float64 `json:"deduction" binding:"gte=0"`
	Status      string  `json:"status"`
	Notes       string  `json:"notes"`
}

// CreateSalarySlipHandler создаёт зарплатную ведомость.
func CreateSalarySlipHandler(c *gin.Context) {
	var req CreateSalarySlipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Неверные данные: " + err.Error()})
		return
	}

	periodStart, err := time.Parse("2006-01-02", req.PeriodStart)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Неверный формат period_start. Используйте YYYY-MM-DD."})
		return
	}
	periodEnd, err := time.Parse("2006-01-02", req.PeriodEnd)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Неверный формат period_end. Используйте YYYY-MM-DD."})
		return
	}

	slip, err := svc.CreateSalarySlip(c.Request.Context(), ledger.CreateSalarySlipInput{
		TeacherID:   req.TeacherID,
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		BaseAmount:  ledger.FromMajor(req.BaseAmount),
		Bonus:       ledger.FromMajor(req.Bonus),
		Deduction:   ledger.FromMajor(req.Deduction),
		Status:      req.Status,
		Notes:       req.Notes,
		Actor:       actor(c),
	})
	if err != nil {
		respondLedgerError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": slip.ID})
}

type salarySlipRow struct {
	ID          uint    `json:"id"`
	TeacherID   uint    `json:"teacher_id"`
	TeacherName string  `json:"teacher_name"`
	PeriodStart string  `json:"period_start"`
	PeriodEnd   string  `json:"period_end"`
	BaseAmount  float64 `json:"base_amount"`
	Bonus       float64 `json:"bonus"`
	Deduction   float64 `json:"deduction"`
	TotalAmount float64 `json:"total_amount"`
	Status      string  `json:"status"`
	Notes       string  `json:"notes"`
}

// ListSalarySlipsHandler — список ведомостей с пагинацией.
func ListSalarySlipsHandler(c *gin.Context) {
	query := svc.DB().Model(&models.SalarySlip{})
	if teacherID, ok := queryUint(c, "teacher_id"); ok {
		query = query.Where("teacher_id = ?", teacherID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var totalRows int64
	if err := query.Count(&totalRows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось посчитать ведомости"})
		return
	}

	var slips []models.SalarySlip
	if err := query.Preload("Teacher").
		Scopes(Paginate(c)).
		Order("period_start DESC, id DESC").
		Find(&slips).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось получить ведомости"})
		return
	}

	rows := make([]salarySlipRow, 0, len(slips))
	for _, s := range slips {
		row := salarySlipRow{
			ID:          s.ID,
			TeacherID:   s.TeacherID,
			PeriodStart: s.PeriodStart.Format("2006-01-02"),
			PeriodEnd:   s.PeriodEnd.Format("2006-01-02"),
			BaseAmount:  ledger.Money(s.BaseAmount).Major(),
			Bonus:       ledger.Money(s.Bonus).Major(),
			Deduction:   ledger.Money(s.Deduction).Major(),
			TotalAmount: ledger.Money(s.TotalAmount).Major(),
			Status:      s.Status,
			Notes:       s.Notes,
		}
		if s.Teacher != nil {
			row.TeacherName = s.Teacher.FullName()
		}
		rows = append(rows, row)
	}
	c.JSON(http.StatusOK, CreatePaginatedResponse(c, rows, totalRows))
}

// MarkSalarySlipPaidHandler — pending -> paid.
func MarkSalarySlipPaidHandler(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный ID ведомости"})
		return
	}
	if err := svc.MarkSalarySlipPaid(c.Request.Context(), id, actor(c)); err != nil {
		respondLedgerError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Ведомость отмечена выплаченной"})
}

// DeleteSalarySlipHandler — мягкое удаление ведомости.
func DeleteSalarySlipHandler(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный ID ведомости"})
		return
	}
	if err := svc.DeleteSalarySlip(c.Request.Context(), id, actor(c)); err != nil {
		respondLedgerError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Ведомость удалена"})
}
