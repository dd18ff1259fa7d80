package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/javlon0607/learning-center-sub000/internal/ledger"
)

// svc — леджер-сервис, общий для всех обработчиков.
// Инициализируется один раз в main.
var svc *ledger.Service

// Init связывает обработчики с леджер-сервисом.
func Init(s *ledger.Service) { svc = s }

// queryUint читает обязательный числовой query-параметр.
func queryUint(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Query(name), 10, 32)
	if err != nil || v == 0 {
		return 0, false
	}
	return uint(v), true
}

// paramUint читает числовой сегмент пути.
func paramUint(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || v == 0 {
		return 0, false
	}
	return uint(v), true
}

// actor возвращает логин сотрудника, установленный AuthMiddleware.
func actor(c *gin.Context) string {
	return c.GetString("login")
}
