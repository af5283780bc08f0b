package models

import (
	"strings"
	"time"
)

type Category string

type ChatRole string

const (
	CategoryVenue         Category = "Venue & Catering"
	CategoryAttire        Category = "Attire & Beauty"
	CategoryFlowers       Category = "Flowers & Decor"
	CategoryPhoto         Category = "Photography & Video"
	CategoryMusic         Category = "Music & Entertainment"
	CategoryStationery    Category = "Stationery"
	CategoryGifts         Category = "Gifts & Favors"
	CategoryMiscellaneous Category = "Miscellaneous"

	ChatRoleUser  ChatRole = "user"
	ChatRoleModel ChatRole = "model"
)

// Categories возвращает фиксированный список категорий в порядке отображения.
func Categories() []Category {
	return []Category{
		CategoryVenue,
		CategoryAttire,
		CategoryFlowers,
		CategoryPhoto,
		CategoryMusic,
		CategoryStationery,
		CategoryGifts,
		CategoryMiscellaneous,
	}
}

// ParseCategory сопоставляет строку с известной категорией.
// Сравнение точное, после обрезки пробелов.
func ParseCategory(value string) (Category, bool) {
	trimmed := strings.TrimSpace(value)
	for _, category := range Categories() {
		if string(category) == trimmed {
			return category, true
		}
	}

	return "", false
}

type Expense struct {
	ID            string  `json:"id"`
	Category      string  `json:"category"`
	Item          string  `json:"item"`
	EstimatedCost float64 `json:"estimated_cost"`
	ActualCost    float64 `json:"actual_cost"`
	Paid          float64 `json:"paid"`
	Notes         string  `json:"notes,omitempty"`
}

type Draft struct {
	Category      string  `json:"category"`
	Item          string  `json:"item"`
	EstimatedCost float64 `json:"estimated_cost"`
	ActualCost    float64 `json:"actual_cost"`
	Paid          float64 `json:"paid"`
	Notes         string  `json:"notes,omitempty"`
}

type ExpensePatch struct {
	Category      *string  `json:"category,omitempty"`
	Item          *string  `json:"item,omitempty"`
	EstimatedCost *float64 `json:"estimated_cost,omitempty"`
	ActualCost    *float64 `json:"actual_cost,omitempty"`
	Paid          *float64 `json:"paid,omitempty"`
	Notes         *string  `json:"notes,omitempty"`
}

type BudgetSummary struct {
	TotalBudget    float64 `json:"total_budget"`
	TotalEstimated float64 `json:"total_estimated"`
	TotalActual    float64 `json:"total_actual"`
	TotalPaid      float64 `json:"total_paid"`
}

type CategoryTotal struct {
	Category string  `json:"category"`
	Value    float64 `json:"value"`
}

type ChatMessage struct {
	Role      ChatRole  `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}
