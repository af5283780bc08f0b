package handlers

import (
	"bytes"
	"encoding/json"

	"example.com/wedding-budget/internal/budget"
)

// FlexAmount принимает сумму как JSON-число или строку.
// Значение хранится сырым, разбор выполняется правилами пакета budget.
type FlexAmount struct {
	Raw string
}

// UnmarshalJSON сохраняет сырое представление суммы.
func (a *FlexAmount) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		a.Raw = ""
		return nil
	}

	if len(trimmed) > 0 && trimmed[0] == '"' {
		var value string
		if err := json.Unmarshal(trimmed, &value); err != nil {
			return err
		}
		a.Raw = value
		return nil
	}

	a.Raw = string(trimmed)
	return nil
}

// Amount возвращает сумму для полей стоимости: мусор превращается в 0.
func (a FlexAmount) Amount() float64 {
	return budget.ParseAmount(a.Raw)
}

// Budget возвращает новое значение бюджета и признак того, что ввод является числом.
func (a FlexAmount) Budget() (float64, bool) {
	return budget.ParseBudget(a.Raw)
}

func amountPtr(value *FlexAmount) *float64 {
	if value == nil {
		return nil
	}

	amount := value.Amount()
	return &amount
}
