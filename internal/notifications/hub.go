package notifications

import (
	"sync"
	"time"
)

const (
	EventConnected     = "connected"
	EventBudgetUpdated = "budget_updated"
	EventAdviceAdded   = "advice_added"
)

type Event struct {
	Type      string      `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data,omitempty"`
}

// Hub рассылает события всем SSE-подписчикам. Медленные подписчики пропускают события.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[chan Event]struct{}
	closed      bool
}

// NewHub создает хаб для SSE-подписок.
func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[chan Event]struct{}),
	}
}

// Subscribe возвращает канал событий и функцию отписки.
// После Close канал возвращается уже закрытым.
func (h *Hub) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, 10)

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		close(ch)
		return ch, func() {}
	}
	h.subscribers[ch] = struct{}{}

	return ch, func() {
		h.mu.Lock()
		defer h.mu.Unlock()

		if _, ok := h.subscribers[ch]; ok {
			delete(h.subscribers, ch)
			close(ch)
		}
	}
}

// Close закрывает каналы всех подписчиков, чтобы SSE-потоки завершились
// до остановки HTTP-сервера. Повторный вызов ничего не делает.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true

	for ch := range h.subscribers {
		delete(h.subscribers, ch)
		close(ch)
	}
}

// Publish отправляет событие всем подписчикам без блокировки.
func (h *Hub) Publish(event Event) {
	event.Timestamp = time.Now().UTC()

	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch := range h.subscribers {
		select {
		case ch <- event:
		default:
		}
	}
}

// Subscribers возвращает число активных подписок.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.subscribers)
}
