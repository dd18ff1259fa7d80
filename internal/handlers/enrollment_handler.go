package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/javlon0607/learning-center-sub000/internal/ledger"
	"github.com/javlon0607/learning-center-sub000/models"
)

// EnrollStudentRequest — зачисление ученика в группу.
type EnrollStudentRequest struct {
	StudentID          uint    `json:"student_id" binding:"required"`
	GroupID            uint    `json:"group_id" binding:"required"`
	DiscountPercentage float64 `json:"discount_percentage" binding:"gte=0,lte=100"`
}

func EnrollStudentHandler(c *gin.Context) {
	var req EnrollStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Неверные данные: " + err.Error()})
		return
	}

	var enrollment models.Enrollment
	err := svc.DB().Transaction(func(tx *gorm.DB) error {
		var student models.Student
		if err := tx.First(&student, req.StudentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("Ученик не найден")
			}
			return err
		}
		var group models.Group
		if err := tx.First(&group, req.GroupID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("Группа не найдена")
			}
			return err
		}
		if group.Status != models.GroupStatusActive {
			return errors.New("Группа неактивна")
		}

		var existing int64
		if err := tx.Model(&models.Enrollment{}).
			Where("student_id = ? AND group_id = ?", req.StudentID, req.GroupID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return errors.New("Ученик уже зачислен в эту группу")
		}

		enrollment = models.Enrollment{
			StudentID:  req.StudentID,
			GroupID:    req.GroupID,
			DiscountBp: ledger.BasisPoints(req.DiscountPercentage),
			EnrolledAt: time.Now().UTC(),
		}
		return tx.Create(&enrollment).Error
	})
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, enrollment)
}

// UpdateEnrollmentDiscountHandler меняет скидку зачисления.
// Новая скидка переоценивает ещё не оплаченные месяцы.
func UpdateEnrollmentDiscountHandler(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный ID зачисления"})
		return
	}
	var req struct {
		DiscountPercentage float64 `json:"discount_percentage" binding:"gte=0,lte=100"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Неверные данные: " + err.Error()})
		return
	}

	var enrollment models.Enrollment
	err := svc.DB().First(&enrollment, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Зачисление не найдено"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось получить зачисление"})
		return
	}

	if err := svc.DB().Model(&enrollment).
		Update("discount_bp", ledger.BasisPoints(req.DiscountPercentage)).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось обновить скидку"})
		return
	}
	c.JSON(http.StatusOK, enrollment)
}

// UnenrollStudentHandler закрывает зачисление (мягкое удаление).
// История платежей по паре ученик-группа сохраняется.
func UnenrollStudentHandler(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный ID зачисления"})
		return
	}

	result := svc.DB().Delete(&models.Enrollment{}, id)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось отчислить ученика"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Зачисление не найдено"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Ученик отчислен из группы"})
}
