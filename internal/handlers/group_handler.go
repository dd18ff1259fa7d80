package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/javlon0607/learning-center-sub000/internal/ledger"
	"github.com/javlon0607/learning-center-sub000/models"
)

// GroupRequest — создание и обновление группы. Цена в сомах.
type GroupRequest struct {
	Name      string  `json:"name" binding:"required"`
	Price     float64 `json:"price" binding:"required,gt=0"`
	TeacherID uint    `json:"teacher_id" binding:"required"`
	Status    string  `json:"status" binding:"omitempty,oneof=active inactive completed"`
}

func CreateGroupHandler(c *gin.Context) {
	var req GroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Неверные данные: " + err.Error()})
		return
	}

	var teacher models.Teacher
	err := svc.DB().First(&teacher, req.TeacherID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Преподаватель не найден"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось проверить преподавателя"})
		return
	}

	if req.Status == "" {
		req.Status = models.GroupStatusActive
	}
	group := models.Group{
		Name:      req.Name,
		Price:     int64(ledger.FromMajor(req.Price)),
		TeacherID: req.TeacherID,
		Status:    req.Status,
	}
	if err := svc.DB().Create(&group).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось создать группу"})
		return
	}
	c.JSON(http.StatusCreated, group)
}

func ListGroupsHandler(c *gin.Context) {
	var groups []models.Group
	var totalRows int64

	baseQuery := svc.DB().Model(&models.Group{})
	if status := c.Query("status"); status != "" {
		baseQuery = baseQuery.Where("status = ?", status)
	}
	if teacherID, ok := queryUint(c, "teacher_id"); ok {
		baseQuery = baseQuery.Where("teacher_id = ?", teacherID)
	}

	if err := baseQuery.Count(&totalRows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось посчитать группы"})
		return
	}
	if err := baseQuery.Scopes(Paginate(c)).
		Preload("Teacher").
		Order("name").
		Find(&groups).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось получить список групп"})
		return
	}

	c.JSON(http.StatusOK, CreatePaginatedResponse(c, groups, totalRows))
}

// UpdateGroupHandler меняет название, цену, преподавателя и статус.
// Новая цена действует на все ещё не оплаченные месяцы.
func UpdateGroupHandler(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный ID группы"})
		return
	}
	var req GroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Неверные данные: " + err.Error()})
		return
	}

	var group models.Group
	err := svc.DB().First(&group, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Группа не найдена"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось получить группу"})
		return
	}

	group.Name = req.Name
	group.Price = int64(ledger.FromMajor(req.Price))
	group.TeacherID = req.TeacherID
	if req.Status != "" {
		group.Status = req.Status
	}
	if err := svc.DB().Save(&group).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось обновить группу"})
		return
	}
	c.JSON(http.StatusOK, group)
}

// DeleteGroupHandler мягко удаляет группу без активных зачислений.
func DeleteGroupHandler(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный ID группы"})
		return
	}

	var active int64
	if err := svc.DB().Model(&models.Enrollment{}).
		Where("group_id = ?", id).
		Count(&active).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось проверить зачисления"})
		return
	}
	if active > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "В группе есть активные зачисления"})
		return
	}

	result := svc.DB().Delete(&models.Group{}, id)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось удалить группу"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Группа не найдена"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Группа удалена"})
}
