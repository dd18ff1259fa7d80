package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/javlon0607/learning-center-sub000/internal/middleware"
)

// SetupRoutes инициализирует все маршруты приложения.
// Весь API закрыт аутентификацией: токены выдаёт внешняя система.
func SetupRoutes(r *gin.Engine) {
	authRequired := r.Group("/")
	authRequired.Use(middleware.AuthMiddleware())
	{
		RegisterAPIRoutes(authRequired)
	}
}
