package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/javlon0607/learning-center-sub000/internal/ledger"
	"github.com/javlon0607/learning-center-sub000/models"
)

// TeacherRequest — создание и обновление преподавателя.
// Оклад приходит в сомах и хранится в тийинах.
type TeacherRequest struct {
	FirstName        string  `json:"first_name" binding:"required"`
	LastName         string  `json:"last_name" binding:"required"`
	Phone            string  `json:"phone"`
	SalaryType       string  `json:"salary_type" binding:"required,oneof=fixed per_student"`
	SalaryAmount     float64 `json:"salary_amount" binding:"gte=0"`
	SalaryPercentage int     `json:"salary_percentage" binding:"gte=0,lte=100"`
}

func (r TeacherRequest) validate() string {
	if r.SalaryType == models.SalaryTypeFixed && r.SalaryAmount <= 0 {
		return "Для фиксированного оклада укажите сумму"
	}
	if r.SalaryType == models.SalaryTypePerStudent && r.SalaryPercentage <= 0 {
		return "Для процентной оплаты укажите процент"
	}
	return ""
}

func CreateTeacherHandler(c *gin.Context) {
	var req TeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Неверные данные: " + err.Error()})
		return
	}
	if msg := req.validate(); msg != "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": msg})
		return
	}

	teacher := models.Teacher{
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Phone:            req.Phone,
		SalaryType:       req.SalaryType,
		SalaryAmount:     int64(ledger.FromMajor(req.SalaryAmount)),
		SalaryPercentage: req.SalaryPercentage,
	}
	if err := svc.DB().Create(&teacher).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось создать преподавателя"})
		return
	}
	c.JSON(http.StatusCreated, teacher)
}

func ListTeachersHandler(c *gin.Context) {
	var teachers []models.Teacher
	var totalRows int64

	baseQuery := svc.DB().Model(&models.Teacher{})
	if search := c.Query("search"); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		baseQuery = baseQuery.Where(
			"LOWER(last_name) LIKE ? OR LOWER(first_name) LIKE ?", pattern, pattern)
	}

	if err := baseQuery.Count(&totalRows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось посчитать преподавателей"})
		return
	}
	if err := baseQuery.Scopes(Paginate(c)).
		Order("last_name, first_name").
		Find(&teachers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось получить список преподавателей"})
		return
	}

	c.JSON(http.StatusOK, CreatePaginatedResponse(c, teachers, totalRows))
}

func UpdateTeacherHandler(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный ID преподавателя"})
		return
	}
	var req TeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Неверные данные: " + err.Error()})
		return
	}
	if msg := req.validate(); msg != "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": msg})
		return
	}

	var teacher models.Teacher
	err := svc.DB().First(&teacher, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Преподаватель не найден"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось получить преподавателя"})
		return
	}

	teacher.FirstName = req.FirstName
	teacher.LastName = req.LastName
	teacher.Phone = req.Phone
	teacher.SalaryType = req.SalaryType
	teacher.SalaryAmount = int64(ledger.FromMajor(req.SalaryAmount))
	teacher.SalaryPercentage = req.SalaryPercentage
	if err := svc.DB().Save(&teacher).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось обновить преподавателя"})
		return
	}
	c.JSON(http.StatusOK, teacher)
}

// DeleteTeacherHandler мягко удаляет преподавателя без активных групп.
func DeleteTeacherHandler(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный ID преподавателя"})
		return
	}

	var activeGroups int64
	if err := svc.DB().Model(&models.Group{}).
		Where("teacher_id = ? AND status = ?", id, models.GroupStatusActive).
		Count(&activeGroups).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось проверить группы"})
		return
	}
	if activeGroups > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "У преподавателя есть активные группы"})
		return
	}

	result := svc.DB().Delete(&models.Teacher{}, id)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось удалить преподавателя"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Преподаватель не найден"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Преподаватель удалён"})
}
