package ai

import (
	"fmt"
	"strconv"
	"strings"

	"example.com/wedding-budget/internal/models"
)

func buildAdviceInstruction(expenses []models.Expense, totalBudget float64) string {
	lines := make([]string, 0, len(expenses))
	for _, expense := range expenses {
		lines = append(lines, fmt.Sprintf("- %s (%s): Est $%s, Paid $%s",
			expense.Item,
			expense.Category,
			formatAmount(expense.EstimatedCost),
			formatAmount(expense.Paid),
		))
	}

	return fmt.Sprintf(`You are a world-class Wedding Planner and Financial Advisor named "Bliss".
Your tone is elegant, reassuring, and practical.

Current Budget Context:
- Total Budget: $%s
- Expense List:
%s

Goal: Provide specific, actionable advice based on the user's query and their current budget situation.
Keep answers concise (under 150 words) unless asked for a detailed breakdown.
If the user asks about budget allocation, suggest standard percentages (e.g., 40%% Venue, 10%% Photo).`,
		formatAmount(totalBudget),
		strings.Join(lines, "\n"),
	)
}

func buildCategorizePrompt(item string) string {
	labels := make([]string, 0, len(models.Categories()))
	for _, category := range models.Categories() {
		labels = append(labels, "'"+string(category)+"'")
	}

	return fmt.Sprintf(`Categorize the wedding expense item "%s" into one of these exact categories: %s. Return ONLY the category name string.`,
		item,
		strings.Join(labels, ", "),
	)
}

func formatAmount(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
