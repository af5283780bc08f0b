package budget

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// ParseAmount разбирает сумму из пользовательского ввода.
// Пустая строка или мусор дают 0, ошибки не возвращаются.
func ParseAmount(raw string) float64 {
	value, ok := parseFloat(raw)
	if !ok {
		return 0
	}

	return value
}

// ParseBudget разбирает новое значение бюджета. Если ввод не число,
// возвращается false и текущий бюджет должен остаться прежним.
func ParseBudget(raw string) (float64, bool) {
	return parseFloat(raw)
}

// DaysUntil возвращает число полных календарных дней до даты, не меньше нуля.
func DaysUntil(date, now time.Time) int {
	if date.IsZero() {
		return 0
	}

	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	y, m, d = date.Date()
	target := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	days := int(target.Sub(today).Hours() / 24)
	return max(days, 0)
}

func parseFloat(raw string) (float64, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, false
	}

	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false
	}

	return value, true
}
