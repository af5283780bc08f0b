package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"example.com/wedding-budget/internal/budget"
	"example.com/wedding-budget/internal/models"
)

type ExpenseHandler struct {
	Store *budget.Store
}

// NewExpenseHandler создает обработчик операций с расходами.
func NewExpenseHandler(store *budget.Store) *ExpenseHandler {
	return &ExpenseHandler{Store: store}
}

type CreateExpenseRequest struct {
	Item          string     `json:"item" validate:"required,notblank,max=200"`
	Category      string     `json:"category" validate:"max=100"`
	EstimatedCost FlexAmount `json:"estimated_cost"`
	ActualCost    FlexAmount `json:"actual_cost"`
	Paid          FlexAmount `json:"paid"`
	Notes         string     `json:"notes" validate:"max=1000"`
}

type UpdateExpenseRequest struct {
	Item          *string     `json:"item" validate:"omitempty,max=200"`
	Category      *string     `json:"category" validate:"omitempty,max=100"`
	EstimatedCost *FlexAmount `json:"estimated_cost"`
	ActualCost    *FlexAmount `json:"actual_cost"`
	Paid          *FlexAmount `json:"paid"`
	Notes         *string     `json:"notes" validate:"omitempty,max=1000"`
}

type ExpenseResponse struct {
	models.Expense
	FullyPaid bool `json:"fully_paid"`
}

type ExpenseListResponse struct {
	Expenses []ExpenseResponse `json:"expenses"`
}

// ExpenseMutationResponse описывает результат изменения по id.
// Для неизвестного id Updated равен false, а Expense отсутствует.
type ExpenseMutationResponse struct {
	Updated bool             `json:"updated"`
	Expense *ExpenseResponse `json:"expense,omitempty"`
}

// List возвращает все расходы в порядке добавления.
func (h *ExpenseHandler) List(c echo.Context) error {
	expenses := h.Store.Expenses()

	response := ExpenseListResponse{Expenses: make([]ExpenseResponse, 0, len(expenses))}
	for _, expense := range expenses {
		response.Expenses = append(response.Expenses, toExpenseResponse(expense))
	}

	return c.JSON(http.StatusOK, response)
}

// Create добавляет новый расход. Некорректные суммы превращаются в 0.
// Категория может быть произвольным текстом, пустая заменяется на Miscellaneous.
func (h *ExpenseHandler) Create(c echo.Context) error {
	var req CreateExpenseRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	item := strings.TrimSpace(req.Item)
	if item == "" {
		return badRequest(c, "item is required")
	}

	category := strings.TrimSpace(req.Category)
	if category == "" {
		category = string(models.CategoryMiscellaneous)
	}

	expense := h.Store.Add(models.Draft{
		Category:      category,
		Item:          item,
		EstimatedCost: req.EstimatedCost.Amount(),
		ActualCost:    req.ActualCost.Amount(),
		Paid:          req.Paid.Amount(),
		Notes:         strings.TrimSpace(req.Notes),
	})

	return c.JSON(http.StatusCreated, toExpenseResponse(expense))
}

// Update частично обновляет расход. Неизвестный id не считается ошибкой.
func (h *ExpenseHandler) Update(c echo.Context) error {
	var req UpdateExpenseRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	patch := models.ExpensePatch{
		EstimatedCost: amountPtr(req.EstimatedCost),
		ActualCost:    amountPtr(req.ActualCost),
		Paid:          amountPtr(req.Paid),
	}

	if req.Item != nil {
		item := strings.TrimSpace(*req.Item)
		if item == "" {
			return badRequest(c, "item is required")
		}
		patch.Item = &item
	}

	if req.Category != nil {
		category := strings.TrimSpace(*req.Category)
		if category == "" {
			return badRequest(c, "category is required")
		}
		patch.Category = &category
	}

	if req.Notes != nil {
		notes := strings.TrimSpace(*req.Notes)
		patch.Notes = &notes
	}

	expense, ok := h.Store.Update(c.Param("id"), patch)
	return c.JSON(http.StatusOK, toMutationResponse(expense, ok))
}

// TogglePaid переключает расход между полной оплатой и нулем.
func (h *ExpenseHandler) TogglePaid(c echo.Context) error {
	expense, ok := h.Store.TogglePaid(c.Param("id"))
	return c.JSON(http.StatusOK, toMutationResponse(expense, ok))
}

// Delete удаляет расход. Ответ 204 и для неизвестного id.
func (h *ExpenseHandler) Delete(c echo.Context) error {
	h.Store.Delete(c.Param("id"))
	return c.NoContent(http.StatusNoContent)
}

func toExpenseResponse(expense models.Expense) ExpenseResponse {
	return ExpenseResponse{
		Expense:   expense,
		FullyPaid: budget.IsFullyPaid(expense),
	}
}

func toMutationResponse(expense models.Expense, ok bool) ExpenseMutationResponse {
	if !ok {
		return ExpenseMutationResponse{Updated: false}
	}

	response := toExpenseResponse(expense)
	return ExpenseMutationResponse{Updated: true, Expense: &response}
}
