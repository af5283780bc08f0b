package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"example.com/wedding-budget/internal/budget"
	"example.com/wedding-budget/internal/models"
)

const dateLayout = "2006-01-02"

// ChartOptions задает размер и порядок топа категорий.
type ChartOptions struct {
	TopCategories int
	SortByValue   bool
}

// Wedding описывает шапку дашборда.
type Wedding struct {
	CoupleName string
	Date       time.Time
}

type BudgetHandler struct {
	Store   *budget.Store
	Wedding Wedding
	Chart   ChartOptions
	now     func() time.Time
}

// NewBudgetHandler создает обработчик сводки бюджета и графиков.
func NewBudgetHandler(store *budget.Store, wedding Wedding, chart ChartOptions) *BudgetHandler {
	return &BudgetHandler{
		Store:   store,
		Wedding: wedding,
		Chart:   chart,
		now:     time.Now,
	}
}

type SetBudgetRequest struct {
	TotalBudget FlexAmount `json:"total_budget"`
}

type SummaryResponse struct {
	models.BudgetSummary
	Remaining        float64 `json:"remaining"`
	PercentSpent     float64 `json:"percent_spent"`
	PercentAvailable float64 `json:"percent_available"`
	PaidProgress     float64 `json:"paid_progress"`
	OverBudget       bool    `json:"over_budget"`
}

type SetBudgetResponse struct {
	Updated bool            `json:"updated"`
	Summary SummaryResponse `json:"summary"`
}

type OverviewResponse struct {
	CoupleName  string          `json:"couple_name"`
	WeddingDate string          `json:"wedding_date,omitempty"`
	DaysToGo    int             `json:"days_to_go"`
	Summary     SummaryResponse `json:"summary"`
}

type CategoryChartResponse struct {
	Categories []models.CategoryTotal `json:"categories"`
	Top        []models.CategoryTotal `json:"top"`
}

// Overview возвращает шапку свадьбы и карточки сводки.
func (h *BudgetHandler) Overview(c echo.Context) error {
	response := OverviewResponse{
		CoupleName: h.Wedding.CoupleName,
		DaysToGo:   budget.DaysUntil(h.Wedding.Date, h.now()),
		Summary:    toSummaryResponse(h.Store.Summary()),
	}
	if !h.Wedding.Date.IsZero() {
		response.WeddingDate = h.Wedding.Date.Format(dateLayout)
	}

	return c.JSON(http.StatusOK, response)
}

// Summary возвращает итоги и производные значения бюджета.
func (h *BudgetHandler) Summary(c echo.Context) error {
	return c.JSON(http.StatusOK, toSummaryResponse(h.Store.Summary()))
}

// SetBudget меняет общий бюджет. Нечисловой ввод оставляет бюджет прежним.
func (h *BudgetHandler) SetBudget(c echo.Context) error {
	var req SetBudgetRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}

	value, ok := req.TotalBudget.Budget()
	if ok {
		h.Store.SetBudget(value)
	}

	return c.JSON(http.StatusOK, SetBudgetResponse{
		Updated: ok,
		Summary: toSummaryResponse(h.Store.Summary()),
	})
}

// Categories возвращает фактические траты по категориям и топ для графика.
func (h *BudgetHandler) Categories(c echo.Context) error {
	limit := h.Chart.TopCategories
	if raw := strings.TrimSpace(c.QueryParam("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return badRequest(c, "invalid limit")
		}
		limit = parsed
	}

	groups := budget.GroupByCategory(h.Store.Expenses())
	return c.JSON(http.StatusOK, CategoryChartResponse{
		Categories: groups,
		Top:        budget.TopCategories(groups, limit, h.Chart.SortByValue),
	})
}

func toSummaryResponse(summary models.BudgetSummary) SummaryResponse {
	return SummaryResponse{
		BudgetSummary:    summary,
		Remaining:        budget.Remaining(summary),
		PercentSpent:     budget.PercentSpent(summary),
		PercentAvailable: budget.PercentAvailable(summary),
		PaidProgress:     budget.PaidProgress(summary),
		OverBudget:       budget.OverBudget(summary),
	}
}
