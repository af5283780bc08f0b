package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"example.com/wedding-budget/internal/ai"
)

type HealthResponse struct {
	Status       string `json:"status"`
	AIConfigured bool   `json:"ai_configured"`
}

// Health возвращает статус сервиса и признак настроенного ключа AI.
// Отсутствие ключа не делает сервис нездоровым.
func Health(advisor *ai.Advisor) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, HealthResponse{
			Status:       "ok",
			AIConfigured: advisor != nil && advisor.Configured(),
		})
	}
}
