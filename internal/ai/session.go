package ai

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"example.com/wedding-budget/internal/models"
)

const GreetingMessage = "Hello! I'm Bliss, your AI wedding planner. How can I help you optimize your budget today?"

var (
	ErrEmptyQuery    = errors.New("query is empty")
	ErrAdvicePending = errors.New("advice request already in progress")
)

// BudgetAdviser отвечает на вопрос о бюджете готовым текстом.
type BudgetAdviser interface {
	AdviseOnBudget(ctx context.Context, query string, expenses []models.Expense, totalBudget float64) string
}

// Session хранит переписку с советником. Сообщения только добавляются.
type Session struct {
	adviser  BudgetAdviser
	now      func() time.Time
	pending  atomic.Bool
	mu       sync.RWMutex
	messages []models.ChatMessage
}

// NewSession создает переписку с приветственным сообщением модели.
func NewSession(adviser BudgetAdviser) *Session {
	s := &Session{
		adviser: adviser,
		now:     time.Now,
	}
	s.append(models.ChatRoleModel, GreetingMessage)
	return s
}

// Ask добавляет вопрос пользователя, получает ответ и добавляет его в переписку.
// Пока предыдущий вопрос не завершен, новый отклоняется.
func (s *Session) Ask(ctx context.Context, query string, expenses []models.Expense, totalBudget float64) (models.ChatMessage, error) {
	if strings.TrimSpace(query) == "" {
		return models.ChatMessage{}, ErrEmptyQuery
	}

	if !s.pending.CompareAndSwap(false, true) {
		return models.ChatMessage{}, ErrAdvicePending
	}
	defer s.pending.Store(false)

	s.append(models.ChatRoleUser, query)
	advice := s.adviser.AdviseOnBudget(ctx, query, expenses, totalBudget)
	return s.append(models.ChatRoleModel, advice), nil
}

// Pending сообщает, ожидается ли ответ модели.
func (s *Session) Pending() bool {
	return s.pending.Load()
}

// Messages возвращает копию переписки.
func (s *Session) Messages() []models.ChatMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.ChatMessage, len(s.messages))
	copy(out, s.messages)
	return out
}

func (s *Session) append(role models.ChatRole, text string) models.ChatMessage {
	message := models.ChatMessage{Role: role, Text: text, Timestamp: s.now().UTC()}

	s.mu.Lock()
	s.messages = append(s.messages, message)
	s.mu.Unlock()

	return message
}
