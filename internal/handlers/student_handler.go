package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/javlon0607/learning-center-sub000/models"
)

// --- Структуры для входящих данных по УЧЕНИКАМ ---

type StudentRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Phone     string `json:"phone"`
}

// --- Обработчики для УЧЕНИКА ---

func CreateStudentHandler(c *gin.Context) {
	var req StudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Неверные данные: " + err.Error()})
		return
	}

	student := models.Student{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	}
	if err := svc.DB().Create(&student).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось создать ученика"})
		return
	}
	c.JSON(http.StatusCreated, student)
}

func ListStudentsHandler(c *gin.Context) {
	var students []models.Student
	var totalRows int64

	baseQuery := svc.DB().Model(&models.Student{})
	if search := c.Query("search"); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		baseQuery = baseQuery.Where(
			"LOWER(last_name) LIKE ? OR LOWER(first_name) LIKE ? OR phone LIKE ?",
			pattern, pattern, pattern,
		)
	}

	if err := baseQuery.Count(&totalRows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось посчитать учеников"})
		return
	}
	if err := baseQuery.Scopes(Paginate(c)).
		Order("last_name, first_name").
		Find(&students).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось получить список учеников"})
		return
	}

	c.JSON(http.StatusOK, CreatePaginatedResponse(c, students, totalRows))
}

func GetStudentHandler(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный ID ученика"})
		return
	}

	var student models.Student
	err := svc.DB().Preload("Enrollments.Group").First(&student, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Ученик не найден"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось получить ученика"})
		return
	}
	c.JSON(http.StatusOK, student)
}

func UpdateStudentHandler(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный ID ученика"})
		return
	}
	var req StudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Неверные данные: " + err.Error()})
		return
	}

	var student models.Student
	err := svc.DB().First(&student, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Ученик не найден"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось получить ученика"})
		return
	}

	student.FirstName = req.FirstName
	student.LastName = req.LastName
	student.Phone = req.Phone
	if err := svc.DB().Save(&student).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось обновить ученика"})
		return
	}
	c.JSON(http.StatusOK, student)
}

// DeleteStudentHandler мягко удаляет ученика. Ученик с активными
// зачислениями сначала должен быть отчислен из групп.
func DeleteStudentHandler(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный ID ученика"})
		return
	}

	var active int64
	if err := svc.DB().Model(&models.Enrollment{}).
		Where("student_id = ?", id).
		Count(&active).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось проверить зачисления"})
		return
	}
	if active > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "У ученика есть активные зачисления"})
		return
	}

	result := svc.DB().Delete(&models.Student{}, id)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось удалить ученика"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Ученик не найден"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Ученик удалён"})
}
