package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/divan/num2words"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/javlon0607/learning-center-sub000/internal/ledger"
	"github.com/javlon0607/learning-center-sub000/models"
)

// CreatePaymentRequest — входящие данные кассира. Сумма в сомах,
// конвертация в тийины происходит только здесь, на границе API.
type CreatePaymentRequest struct {
	StudentID   uint     `json:"student_id" binding:"required"`
	GroupID     uint     `json:"group_id" binding:"required"`
	Amount      float64  `json:"amount" binding:"required,gt=0"`
	PaymentDate string   `json:"payment_date" binding:"required"`
	Method      string   `json:"method"`
	Notes       string   `json:"notes"`
	Months      []string `json:"months" binding:"required"`
}

type coveredMonth struct {
	Month  string  `json:"month"`
	Amount float64 `json:"amount"`
}

// CreatePaymentHandler принимает платёж и распределяет его по месяцам.
// Вся бизнес-логика в ledger.Service: обработчик только разбирает ввод.
func CreatePaymentHandler(c *gin.Context) {
	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Неверные данные: " + err.Error()})
		return
	}

	paymentDate, err := time.Parse("2006-01-02", req.PaymentDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Неверный формат даты. Используйте YYYY-MM-DD."})
		return
	}

	months, err := ledger.ParseMonths(req.Months)
	if err != nil {
		respondLedgerError(c, err)
		return
	}

	payment, err := svc.RecordPayment(c.Request.Context(), ledger.RecordPaymentInput{
		StudentID:   req.StudentID,
		GroupID:     req.GroupID,
		Amount:      ledger.FromMajor(req.Amount),
		Months:      months,
		PaymentDate: paymentDate,
		Method:      req.Method,
		Notes:       req.Notes,
		Actor:       actor(c),
	})
	if err != nil {
		respondLedgerError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":             payment.ID,
		"invoice_no":     payment.InvoiceNo,
		"months_covered": coveredMonths(payment.Applications),
	})
}

func coveredMonths(apps []models.PaymentApplication) []coveredMonth {
	out := make([]coveredMonth, 0, len(apps))
	for _, a := range apps {
		out = append(out, coveredMonth{
			Month:  a.Month,
			Amount: ledger.Money(a.Amount).Major(),
		})
	}
	return out
}

type paymentListRow struct {
	ID            uint           `json:"id"`
	InvoiceNo     string         `json:"invoice_no"`
	StudentID     uint           `json:"student_id"`
	GroupID       uint           `json:"group_id"`
	Amount        float64        `json:"amount"`
	PaymentDate   string         `json:"payment_date"`
	Method        string         `json:"method"`
	Notes         string         `json:"notes"`
	MonthsCovered []coveredMonth `json:"months_covered"`
}

// ListPaymentsHandler — лента платежей для карточки ученика и кассы,
// с пагинацией и фильтрами по ученику, группе и месяцу.
func ListPaymentsHandler(c *gin.Context) {
	query := svc.DB().Model(&models.Payment{})

	if studentID, ok := queryUint(c, "student_id"); ok {
		query = query.Where("student_id = ?", studentID)
	}
	if groupID, ok := queryUint(c, "group_id"); ok {
		query = query.Where("group_id = ?", groupID)
	}
	if m := c.Query("month"); m != "" {
		month, err := ledger.ParseMonth(m)
		if err != nil {
			respondLedgerError(c, err)
			return
		}
		query = query.Where(
			"id IN (?)",
			svc.DB().Model(&models.PaymentApplication{}).Select("payment_id").Where("month = ?", month.String()),
		)
	}

	var totalRows int64
	if err := query.Count(&totalRows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось посчитать платежи"})
		return
	}

	var payments []models.Payment
	if err := query.Preload("Applications").
		Scopes(Paginate(c)).
		Order("payment_date DESC, id DESC").
		Find(&payments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось получить платежи"})
		return
	}

	rows := make([]paymentListRow, 0, len(payments))
	for _, p := range payments {
		rows = append(rows, paymentListRow{
			ID:            p.ID,
			InvoiceNo:     p.InvoiceNo,
			StudentID:     p.StudentID,
			GroupID:       p.GroupID,
			Amount:        ledger.Money(p.Amount).Major(),
			PaymentDate:   p.PaymentDate.Format("2006-01-02"),
			Method:        p.Method,
			Notes:         p.Notes,
			MonthsCovered: coveredMonths(p.Applications),
		})
	}
	c.JSON(http.StatusOK, CreatePaginatedResponse(c, rows, totalRows))
}

// GetPaymentReceiptHandler — квитанция по платежу, сумма прописью.
func GetPaymentReceiptHandler(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный ID платежа"})
		return
	}

	var payment models.Payment
	err := svc.DB().Preload("Applications").Preload("Student").Preload("Group").
		First(&payment, id).Error
	if err == gorm.ErrRecordNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Платёж не найден"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при поиске платежа"})
		return
	}

	receipt := gin.H{
		"invoice_no":      payment.InvoiceNo,
		"payment_date":    payment.PaymentDate.Format("2006-01-02"),
		"method":          payment.Method,
		"amount":          ledger.Money(payment.Amount).Major(),
		"amount_in_words": amountInWords(ledger.Money(payment.Amount)),
		"months_covered":  coveredMonths(payment.Applications),
	}
	if payment.Student != nil {
		receipt["student"] = payment.Student.FullName()
	}
	if payment.Group != nil {
		receipt["group"] = payment.Group.Name
	}
	c.JSON(http.StatusOK, receipt)
}

// amountInWords — сумма прописью для печатной квитанции.
func amountInWords(m ledger.Money) string {
	som := int(int64(m) / 100)
	tiyin := int(int64(m) % 100)
	return fmt.Sprintf("%s сум %02d тийин", num2words.Convert(som), tiyin)
}
