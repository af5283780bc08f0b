package budget

import (
	"sync"

	"github.com/google/uuid"

	"example.com/wedding-budget/internal/models"
)

// IDGenerator выдает новый уникальный идентификатор расхода.
type IDGenerator func() string

// ChangeListener получает актуальную сводку после каждого изменения.
type ChangeListener func(summary models.BudgetSummary)

type Store struct {
	mu          sync.RWMutex
	expenses    []models.Expense
	totalBudget float64
	newID       IDGenerator
	listeners   []ChangeListener
}

type Option func(*Store)

// WithIDGenerator подменяет генератор идентификаторов.
func WithIDGenerator(gen IDGenerator) Option {
	return func(s *Store) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// NewStore создает хранилище расходов с заданным общим бюджетом.
func NewStore(totalBudget float64, opts ...Option) *Store {
	s := &Store{
		expenses:    make([]models.Expense, 0),
		totalBudget: totalBudget,
		newID:       uuid.NewString,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// OnChange регистрирует слушателя изменений.
func (s *Store) OnChange(listener ChangeListener) {
	if listener == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, listener)
}

// Add добавляет расход в конец списка и присваивает ему новый идентификатор.
func (s *Store) Add(draft models.Draft) models.Expense {
	s.mu.Lock()
	expense := models.Expense{
		ID:            s.newID(),
		Category:      draft.Category,
		Item:          draft.Item,
		EstimatedCost: draft.EstimatedCost,
		ActualCost:    draft.ActualCost,
		Paid:          draft.Paid,
		Notes:         draft.Notes,
	}
	s.expenses = append(s.expenses, expense)
	s.mu.Unlock()

	s.notify()
	return expense
}

// Update сливает заданные поля в расход. Неизвестный id игнорируется.
func (s *Store) Update(id string, patch models.ExpensePatch) (models.Expense, bool) {
	s.mu.Lock()
	index := s.indexOf(id)
	if index < 0 {
		s.mu.Unlock()
		return models.Expense{}, false
	}

	expense := applyPatch(s.expenses[index], patch)
	s.expenses[index] = expense
	s.mu.Unlock()

	s.notify()
	return expense, true
}

// TogglePaid переключает расход между "оплачен полностью" и "не оплачен".
func (s *Store) TogglePaid(id string) (models.Expense, bool) {
	s.mu.Lock()
	index := s.indexOf(id)
	if index < 0 {
		s.mu.Unlock()
		return models.Expense{}, false
	}

	expense := s.expenses[index]
	if IsFullyPaid(expense) {
		expense.Paid = 0
	} else {
		expense.Paid = expense.ActualCost
	}
	s.expenses[index] = expense
	s.mu.Unlock()

	s.notify()
	return expense, true
}

// Delete удаляет расход. Неизвестный id игнорируется.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	index := s.indexOf(id)
	if index < 0 {
		s.mu.Unlock()
		return false
	}

	s.expenses = append(s.expenses[:index:index], s.expenses[index+1:]...)
	s.mu.Unlock()

	s.notify()
	return true
}

// SetBudget заменяет общий бюджет без проверки значения.
func (s *Store) SetBudget(value float64) {
	s.mu.Lock()
	s.totalBudget = value
	s.mu.Unlock()

	s.notify()
}

// Seed заменяет все состояние переданными расходами и бюджетом.
func (s *Store) Seed(expenses []models.Expense, totalBudget float64) {
	s.mu.Lock()
	s.expenses = append(make([]models.Expense, 0, len(expenses)), expenses...)
	s.totalBudget = totalBudget
	s.mu.Unlock()

	s.notify()
}

// Get возвращает расход по идентификатору.
func (s *Store) Get(id string) (models.Expense, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	index := s.indexOf(id)
	if index < 0 {
		return models.Expense{}, false
	}

	return s.expenses[index], true
}

// Expenses возвращает копию списка расходов в порядке добавления.
func (s *Store) Expenses() []models.Expense {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Expense, len(s.expenses))
	copy(out, s.expenses)
	return out
}

// Budget возвращает текущий общий бюджет.
func (s *Store) Budget() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.totalBudget
}

// Summary пересчитывает сводку по текущему состоянию.
func (s *Store) Summary() models.BudgetSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Summarize(s.expenses, s.totalBudget)
}

func (s *Store) indexOf(id string) int {
	for i := range s.expenses {
		if s.expenses[i].ID == id {
			return i
		}
	}

	return -1
}

func (s *Store) notify() {
	s.mu.RLock()
	listeners := append([]ChangeListener(nil), s.listeners...)
	summary := Summarize(s.expenses, s.totalBudget)
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(summary)
	}
}

func applyPatch(expense models.Expense, patch models.ExpensePatch) models.Expense {
	if patch.Category != nil {
		expense.Category = *patch.Category
	}
	if patch.Item != nil {
		expense.Item = *patch.Item
	}
	if patch.EstimatedCost != nil {
		expense.EstimatedCost = *patch.EstimatedCost
	}
	if patch.ActualCost != nil {
		expense.ActualCost = *patch.ActualCost
	}
	if patch.Paid != nil {
		expense.Paid = *patch.Paid
	}
	if patch.Notes != nil {
		expense.Notes = *patch.Notes
	}

	return expense
}
