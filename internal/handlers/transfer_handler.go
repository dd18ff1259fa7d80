package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/javlon0607/learning-center-sub000/internal/ledger"
)

// CreateTransferRequest — перевод ученика в другую группу.
type CreateTransferRequest struct {
	StudentID          uint    `json:"student_id" binding:"required"`
	FromGroupID        uint    `json:"from_group_id" binding:"required"`
	ToGroupID          uint    `json:"to_group_id" binding:"required"`
	Reason             string  `json:"reason"`
	DiscountPercentage float64 `json:"discount_percentage" binding:"gte=0,lte=100"`
}

// CreateGroupTransferHandler выполняет перевод и возвращает
// перенесённый остаток текущего месяца.
func CreateGroupTransferHandler(c *gin.Context) {
	var req CreateTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Неверные данные: " + err.Error()})
		return
	}

	transfer, err := svc.Transfer(c.Request.Context(), ledger.TransferInput{
		StudentID:   req.StudentID,
		FromGroupID: req.FromGroupID,
		ToGroupID:   req.ToGroupID,
		Reason:      req.Reason,
		DiscountBp:  ledger.BasisPoints(req.DiscountPercentage),
		Actor:       actor(c),
	})
	if err != nil {
		respondLedgerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":         "Ученик переведён в новую группу",
		"credited_amount": ledger.Money(transfer.CreditedAmount).Major(),
	})
}
