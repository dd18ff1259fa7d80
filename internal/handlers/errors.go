package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/javlon0607/learning-center-sub000/internal/ledger"
)

// respondLedgerError переводит типизированные ошибки леджера в HTTP-коды.
// Единственное место маппинга: обработчики не придумывают свои статусы.
func respondLedgerError(c *gin.Context, err error) {
	var (
		validationErr *ledger.ValidationError
		debtErr       *ledger.DebtExceededError
		transferErr   *ledger.TransferError
	)
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Msg})
	case errors.As(err, &debtErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":       debtErr.Error(),
			"max_allowed": debtErr.MaxAllowed.Major(),
		})
	case errors.Is(err, ledger.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "запись не найдена"})
	case errors.As(err, &transferErr):
		c.JSON(http.StatusConflict, gin.H{"error": transferErr.Msg})
	case errors.Is(err, ledger.ErrConcurrencyConflict):
		c.JSON(http.StatusConflict, gin.H{
			"error":     "операция выполняется параллельно, повторите запрос",
			"retryable": true,
		})
	default:
		slog.Error("необработанная ошибка леджера", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "внутренняя ошибка сервера"})
	}
}
