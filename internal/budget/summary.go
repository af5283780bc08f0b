package budget

import (
	"cmp"
	"slices"

	"example.com/wedding-budget/internal/models"
)

const DefaultTopCategories = 5

// Summarize сворачивает расходы в итоговые суммы. Бюджет передается как есть.
func Summarize(expenses []models.Expense, totalBudget float64) models.BudgetSummary {
	summary := models.BudgetSummary{TotalBudget: totalBudget}
	for _, expense := range expenses {
		summary.TotalEstimated += expense.EstimatedCost
		summary.TotalActual += expense.ActualCost
		summary.TotalPaid += expense.Paid
	}

	return summary
}

// IsFullyPaid сообщает, оплачен ли расход целиком.
func IsFullyPaid(expense models.Expense) bool {
	return expense.Paid >= expense.ActualCost && expense.ActualCost > 0
}

// Remaining возвращает остаток бюджета относительно фактических трат.
func Remaining(summary models.BudgetSummary) float64 {
	return summary.TotalBudget - summary.TotalActual
}

// PercentSpent возвращает долю бюджета, занятую фактическими тратами, в процентах.
func PercentSpent(summary models.BudgetSummary) float64 {
	if summary.TotalBudget <= 0 {
		return 0
	}

	return summary.TotalActual / summary.TotalBudget * 100
}

func PercentAvailable(summary models.BudgetSummary) float64 {
	return 100 - PercentSpent(summary)
}

// OverBudget сообщает, что фактические траты превысили бюджет.
func OverBudget(summary models.BudgetSummary) bool {
	return Remaining(summary) < 0
}

// PaidProgress возвращает долю оплаченного от фактических трат, не больше 100.
func PaidProgress(summary models.BudgetSummary) float64 {
	actual := summary.TotalActual
	if actual == 0 {
		actual = 1
	}

	return min(100, summary.TotalPaid/actual*100)
}

// GroupByCategory суммирует фактические траты по категориям.
// Порядок соответствует первому появлению категории, нулевые группы отбрасываются.
func GroupByCategory(expenses []models.Expense) []models.CategoryTotal {
	index := make(map[string]int)
	groups := make([]models.CategoryTotal, 0)

	for _, expense := range expenses {
		i, ok := index[expense.Category]
		if !ok {
			i = len(groups)
			index[expense.Category] = i
			groups = append(groups, models.CategoryTotal{Category: expense.Category})
		}
		groups[i].Value += expense.ActualCost
	}

	out := make([]models.CategoryTotal, 0, len(groups))
	for _, group := range groups {
		if group.Value > 0 {
			out = append(out, group)
		}
	}

	return out
}

// TopCategories обрезает группы до n элементов. При sortByValue группы
// сначала упорядочиваются по убыванию суммы, иначе порядок сохраняется.
func TopCategories(groups []models.CategoryTotal, n int, sortByValue bool) []models.CategoryTotal {
	if n <= 0 {
		n = DefaultTopCategories
	}

	out := slices.Clone(groups)
	if sortByValue {
		slices.SortStableFunc(out, func(a, b models.CategoryTotal) int {
			return cmp.Compare(b.Value, a.Value)
		})
	}

	if len(out) > n {
		out = out[:n]
	}

	return out
}
