package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"example.com/wedding-budget/internal/ai"
	"example.com/wedding-budget/internal/budget"
	"example.com/wedding-budget/internal/models"
	"example.com/wedding-budget/internal/notifications"
)

type AdvisorHandler struct {
	Store    *budget.Store
	Session  *ai.Session
	Advisor  *ai.Advisor
	Notifier *notifications.Hub
}

// NewAdvisorHandler создает обработчик чата с AI-планировщиком.
func NewAdvisorHandler(store *budget.Store, session *ai.Session, advisor *ai.Advisor, notifier *notifications.Hub) *AdvisorHandler {
	return &AdvisorHandler{
		Store:    store,
		Session:  session,
		Advisor:  advisor,
		Notifier: notifier,
	}
}

type AskRequest struct {
	Query string `json:"query" validate:"required,max=2000"`
}

type AskResponse struct {
	Reply models.ChatMessage `json:"reply"`
}

type MessagesResponse struct {
	Messages []models.ChatMessage `json:"messages"`
	Pending  bool                 `json:"pending"`
}

type CategorizeRequest struct {
	Item      string `json:"item" validate:"required,max=200"`
	ExpenseID string `json:"expense_id" validate:"omitempty,max=100"`
}

// CategorizeResponse возвращает подсказку модели как есть.
// Category заполнен, только если подсказка совпала с известной категорией.
type CategorizeResponse struct {
	Suggestion string           `json:"suggestion"`
	Category   string           `json:"category,omitempty"`
	Valid      bool             `json:"valid"`
	Applied    bool             `json:"applied"`
	Expense    *ExpenseResponse `json:"expense,omitempty"`
}

// Ask задает вопрос планировщику на основе текущих расходов и бюджета.
func (h *AdvisorHandler) Ask(c echo.Context) error {
	var req AskRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	reply, err := h.Session.Ask(c.Request().Context(), req.Query, h.Store.Expenses(), h.Store.Budget())
	if err != nil {
		switch {
		case errors.Is(err, ai.ErrEmptyQuery):
			return badRequest(c, "query is required")
		case errors.Is(err, ai.ErrAdvicePending):
			return conflict(c, "advice request already in progress")
		default:
			return serverError(c)
		}
	}

	publishAdviceUpdate(h.Notifier, len(h.Session.Messages()))
	return c.JSON(http.StatusOK, AskResponse{Reply: reply})
}

// Messages возвращает историю чата.
func (h *AdvisorHandler) Messages(c echo.Context) error {
	return c.JSON(http.StatusOK, MessagesResponse{
		Messages: h.Session.Messages(),
		Pending:  h.Session.Pending(),
	})
}

// Categorize подбирает категорию по названию расхода. Если передан expense_id,
// категория применяется только к расходу из Miscellaneous.
func (h *AdvisorHandler) Categorize(c echo.Context) error {
	var req CategorizeRequest
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

	var current *models.Expense
	if id := strings.TrimSpace(req.ExpenseID); id != "" {
		expense, ok := h.Store.Get(id)
		if !ok {
			return notFound(c, "expense not found")
		}
		current = &expense
	}

	suggestion := h.Advisor.Categorize(c.Request().Context(), item)
	response := CategorizeResponse{Suggestion: suggestion}

	category, ok := models.ParseCategory(suggestion)
	if !ok {
		return c.JSON(http.StatusOK, response)
	}
	response.Category = string(category)
	response.Valid = true

	if current == nil || current.Category != string(models.CategoryMiscellaneous) || category == models.CategoryMiscellaneous {
		return c.JSON(http.StatusOK, response)
	}

	value := string(category)
	updated, applied := h.Store.Update(current.ID, models.ExpensePatch{Category: &value})
	if applied {
		expense := toExpenseResponse(updated)
		response.Applied = true
		response.Expense = &expense
	}

	return c.JSON(http.StatusOK, response)
}
