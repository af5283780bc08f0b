package server

import (
	"github.com/labstack/echo/v4"

	"example.com/wedding-budget/internal/handlers"
)

func registerRoutes(
	e *echo.Echo,
	health echo.HandlerFunc,
	expenseHandler *handlers.ExpenseHandler,
	budgetHandler *handlers.BudgetHandler,
	advisorHandler *handlers.AdvisorHandler,
	notificationHandler *handlers.NotificationHandler,
	aiRateLimiter echo.MiddlewareFunc,
) {
	e.GET("/health", health)

	api := e.Group("/api/v1")
	api.GET("/overview", budgetHandler.Overview)
	api.GET("/summary", budgetHandler.Summary)
	api.PUT("/budget", budgetHandler.SetBudget)
	api.GET("/charts/categories", budgetHandler.Categories)
	api.GET("/events", notificationHandler.Stream)

	expenses := api.Group("/expenses")
	expenses.GET("", expenseHandler.List)
	expenses.POST("", expenseHandler.Create)
	expenses.GET("/export/json", expenseHandler.ExportJSON)
	expenses.GET("/export/csv", expenseHandler.ExportCSV)
	expenses.PATCH("/:id", expenseHandler.Update)
	expenses.PATCH("/:id/toggle-paid", expenseHandler.TogglePaid)
	expenses.DELETE("/:id", expenseHandler.Delete)

	aiGroup := api.Group("/ai")
	aiGroup.GET("/messages", advisorHandler.Messages)
	aiGroup.POST("/advice", advisorHandler.Ask, aiRateLimiter)
	aiGroup.POST("/categorize", advisorHandler.Categorize, aiRateLimiter)
}
