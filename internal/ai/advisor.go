package ai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/singleflight"

	"example.com/wedding-budget/internal/models"
)

const (
	NoCredentialMessage = "Please configure your API Key to use the AI Advisor."
	EmptyAdviceMessage  = "I couldn't generate advice at this moment."
	UnavailableMessage  = "I'm having trouble connecting to the wedding planning database right now. Please try again."
)

// Advisor превращает вопросы о бюджете и названия расходов в запросы к модели.
// Без ключа API модель не вызывается.
type Advisor struct {
	client     Client
	configured bool
	inflight   singleflight.Group
}

// NewAdvisor создает советника. Пустой apiKey переводит его в деградированный режим.
func NewAdvisor(client Client, apiKey string) *Advisor {
	return &Advisor{
		client:     client,
		configured: client != nil && strings.TrimSpace(apiKey) != "",
	}
}

// Configured сообщает, задан ли ключ API.
func (a *Advisor) Configured() bool {
	return a.configured
}

// Advise запрашивает совет по вопросу с учетом снимка расходов и бюджета.
func (a *Advisor) Advise(ctx context.Context, query string, expenses []models.Expense, totalBudget float64) Result {
	if !a.configured {
		return Err(ErrNoCredential)
	}

	messages := []Message{
		{Role: roleSystem, Content: buildAdviceInstruction(expenses, totalBudget)},
		{Role: roleUser, Content: query},
	}

	text, _, err := a.client.Chat(ctx, messages)
	if err != nil {
		return Err(fmt.Errorf("advise on budget: %w", err))
	}
	if strings.TrimSpace(text) == "" {
		return Err(ErrEmptyResponse)
	}

	return Ok(text)
}

// AdviseOnBudget возвращает совет либо фиксированный текст. Ошибки наружу не выходят.
func (a *Advisor) AdviseOnBudget(ctx context.Context, query string, expenses []models.Expense, totalBudget float64) string {
	return AdviceText(a.Advise(ctx, query, expenses, totalBudget))
}

// Classify запрашивает у модели категорию для названия расхода.
// Одновременные запросы с одинаковым названием разделяют один вызов.
// Общий вызов не зависит от отмены контекста отдельного клиента,
// каждый ожидающий прекращает ждать по своему ctx.
func (a *Advisor) Classify(ctx context.Context, item string) Result {
	if !a.configured {
		return Err(ErrNoCredential)
	}

	key := strings.TrimSpace(item)
	callCtx := context.WithoutCancel(ctx)
	ch := a.inflight.DoChan(key, func() (interface{}, error) {
		text, _, err := a.client.Chat(callCtx, []Message{{Role: roleUser, Content: buildCategorizePrompt(key)}})
		return text, err
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return Err(fmt.Errorf("categorize item: %w", ctx.Err()))
	case res = <-ch:
	}
	if res.Err != nil {
		return Err(fmt.Errorf("categorize item: %w", res.Err))
	}

	label := strings.TrimSpace(res.Val.(string))
	if label == "" {
		return Err(ErrEmptyResponse)
	}

	return Ok(label)
}

// Categorize возвращает метку модели или "Miscellaneous" при любой неудаче.
// Метка не проверяется на принадлежность к списку категорий.
func (a *Advisor) Categorize(ctx context.Context, item string) string {
	result := a.Classify(ctx, item)
	logFailure("ai categorize fallback used", result)
	return result.TextOr(string(models.CategoryMiscellaneous))
}

// AdviceText сводит результат совета к тексту для пользователя.
func AdviceText(result Result) string {
	switch {
	case result.IsOk():
		return result.Text()
	case errors.Is(result.Err(), ErrNoCredential):
		return NoCredentialMessage
	case errors.Is(result.Err(), ErrEmptyResponse):
		return EmptyAdviceMessage
	default:
		logFailure("ai advice fallback used", result)
		return UnavailableMessage
	}
}

func logFailure(msg string, result Result) {
	if result.IsOk() || errors.Is(result.Err(), ErrNoCredential) {
		return
	}

	slog.Warn(msg, slog.String("error", result.Err().Error()))
}
