package main

import (
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/javlon0607/learning-center-sub000/config"
	"github.com/javlon0607/learning-center-sub000/internal/handlers"
	"github.com/javlon0607/learning-center-sub000/internal/ledger"
	"github.com/javlon0607/learning-center-sub000/internal/routes"
	"github.com/javlon0607/learning-center-sub000/models"
)

func main() {
	// .env удобен при локальной разработке; в проде переменные приходят
	// из окружения, поэтому отсутствие файла не ошибка.
	if err := godotenv.Load(); err != nil {
		slog.Info("Файл .env не найден, используем переменные окружения")
	}

	config.LoadJWTKey()
	config.ConnectDB()
	config.ConnectRedis()

	if err := config.DB.AutoMigrate(
		&models.Student{},
		&models.Teacher{},
		&models.Group{},
		&models.Enrollment{},
		&models.Payment{},
		&models.PaymentApplication{},
		&models.SalarySlip{},
		&models.GroupTransfer{},
		&models.AuditLog{},
	); err != nil {
		slog.Error("Ошибка миграции БД", "error", err)
		os.Exit(1)
	}

	handlers.Init(ledger.NewService(config.DB, config.RDB))

	r := gin.Default()
	routes.SetupRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	slog.Info("Сервер запускается", "port", port)
	if err := r.Run(":" + port); err != nil {
		slog.Error("Сервер завершился с ошибкой", "error", err)
		os.Exit(1)
	}
}
