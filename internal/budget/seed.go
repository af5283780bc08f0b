package budget

import "example.com/wedding-budget/internal/models"

const DemoBudget = 30000

// DemoExpenses возвращает стартовый набор расходов для демонстрации.
func DemoExpenses() []models.Expense {
	return []models.Expense{
		{ID: "1", Item: "Reception Venue Rental", Category: string(models.CategoryVenue), EstimatedCost: 5000, ActualCost: 5500, Paid: 5500},
		{ID: "2", Item: "Catering Package (100 guests)", Category: string(models.CategoryVenue), EstimatedCost: 8000, ActualCost: 8200, Paid: 2000},
		{ID: "3", Item: "Bridal Gown", Category: string(models.CategoryAttire), EstimatedCost: 2000, ActualCost: 1800, Paid: 1800},
		{ID: "4", Item: "Photographer", Category: string(models.CategoryPhoto), EstimatedCost: 3000, ActualCost: 3500, Paid: 1000},
	}
}
