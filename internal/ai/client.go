package ai

import "context"

const (
	roleSystem = "system"
	roleUser   = "user"
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client отправляет сообщения модели и возвращает текст ответа и сырой ответ API.
type Client interface {
	Chat(ctx context.Context, messages []Message) (string, []byte, error)
}

func resolveMaxTokens(value int) int {
	if value > 0 {
		return value
	}

	return defaultMaxTokens
}
