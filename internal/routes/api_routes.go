package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/javlon0607/learning-center-sub000/internal/handlers"
)

// RegisterAPIRoutes регистрирует маршруты финансового API.
// Экраны интерфейса — только вызывающая сторона: ни один клиент не
// пересчитывает долг или распределение у себя.
func RegisterAPIRoutes(api *gin.RouterGroup) {
	apiGroup := api.Group("/api")
	{
		// --- УЧЕНИКИ ---
		students := apiGroup.Group("/students")
		{
			students.POST("", handlers.CreateStudentHandler)
			students.GET("", handlers.ListStudentsHandler)
			students.GET("/:id", handlers.GetStudentHandler)
			students.PUT("/:id", handlers.UpdateStudentHandler)
			students.DELETE("/:id", handlers.DeleteStudentHandler)
		}

		// --- ПРЕПОДАВАТЕЛИ ---
		teachers := apiGroup.Group("/teachers")
		{
			teachers.POST("", handlers.CreateTeacherHandler)
			teachers.GET("", handlers.ListTeachersHandler)
			teachers.PUT("/:id", handlers.UpdateTeacherHandler)
			teachers.DELETE("/:id", handlers.DeleteTeacherHandler)
		}

		// --- ГРУППЫ ---
		groups := apiGroup.Group("/groups")
		{
			groups.POST("", handlers.CreateGroupHandler)
			groups.GET("", handlers.ListGroupsHandler)
			groups.PUT("/:id", handlers.UpdateGroupHandler)
			groups.DELETE("/:id", handlers.DeleteGroupHandler)
		}

		// --- ЗАЧИСЛЕНИЯ ---
		enrollments := apiGroup.Group("/enrollments")
		{
			enrollments.POST("", handlers.EnrollStudentHandler)
			enrollments.PUT("/:id/discount", handlers.UpdateEnrollmentDiscountHandler)
			enrollments.DELETE("/:id", handlers.UnenrollStudentHandler)
		}

		// --- ДОЛГ УЧЕНИКА ---
		apiGroup.GET("/student-debt", handlers.GetStudentDebtHandler)

		// --- ПЛАТЕЖИ ---
		payments := apiGroup.Group("/payments")
		{
			payments.POST("", handlers.CreatePaymentHandler)
			payments.GET("", handlers.ListPaymentsHandler)
			payments.GET("/:id/receipt", handlers.GetPaymentReceiptHandler)
		}

		// --- ПЕРЕВОДЫ МЕЖДУ ГРУППАМИ ---
		apiGroup.POST("/group-transfers", handlers.CreateGroupTransferHandler)

		// --- ЗАРПЛАТНЫЕ ВЕДОМОСТИ ---
		salarySlips := apiGroup.Group("/salary-slips")
		{
			salarySlips.GET("/preview", handlers.PreviewSalaryHandler)
			salarySlips.POST("", handlers.CreateSalarySlipHandler)
			salarySlips.GET("", handlers.ListSalarySlipsHandler)
			salarySlips.POST("/:id/mark-paid", handlers.MarkSalarySlipPaidHandler)
			salarySlips.DELETE("/:id", handlers.DeleteSalarySlipHandler)
		}

		// --- ОТЧЁТЫ ---
		apiGroup.GET("/reports/monthly", handlers.MonthlyReportHandler)
	}
}
