package handlers

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"example.com/wedding-budget/internal/budget"
	"example.com/wedding-budget/internal/models"
)

const exportBaseName = "wedding-budget"

type ExportResponse struct {
	ExportedAt time.Time         `json:"exported_at"`
	Summary    SummaryResponse   `json:"summary"`
	Expenses   []ExpenseResponse `json:"expenses"`
}

// ExportJSON выгружает бюджет и расходы в JSON-файл.
func (h *ExpenseHandler) ExportJSON(c echo.Context) error {
	expenses := h.Store.Expenses()

	response := ExportResponse{
		ExportedAt: time.Now().UTC(),
		Summary:    toSummaryResponse(budget.Summarize(expenses, h.Store.Budget())),
		Expenses:   make([]ExpenseResponse, 0, len(expenses)),
	}
	for _, expense := range expenses {
		response.Expenses = append(response.Expenses, toExpenseResponse(expense))
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename=\""+exportBaseName+".json\"")
	return c.JSON(http.StatusOK, response)
}

// ExportCSV выгружает расходы в CSV-файл.
func (h *ExpenseHandler) ExportCSV(c echo.Context) error {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writeExpensesCSV(writer, h.Store.Expenses()); err != nil {
		return serverError(c)
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return serverError(c)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename=\""+exportBaseName+".csv\"")
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func writeExpensesCSV(writer *csv.Writer, expenses []models.Expense) error {
	header := []string{
		"id",
		"item",
		"category",
		"estimated_cost",
		"actual_cost",
		"paid",
		"fully_paid",
		"notes",
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, expense := range expenses {
		record := []string{
			expense.ID,
			expense.Item,
			expense.Category,
			formatAmount(expense.EstimatedCost),
			formatAmount(expense.ActualCost),
			formatAmount(expense.Paid),
			strconv.FormatBool(budget.IsFullyPaid(expense)),
			expense.Notes,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	return nil
}

func formatAmount(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
