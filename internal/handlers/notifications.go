package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"example.com/wedding-budget/internal/budget"
	"example.com/wedding-budget/internal/models"
	"example.com/wedding-budget/internal/notifications"
)

const defaultHeartbeat = 15 * time.Second

type NotificationHandler struct {
	Hub       *notifications.Hub
	Heartbeat time.Duration
}

// NewNotificationHandler создает SSE-обработчик уведомлений.
func NewNotificationHandler(hub *notifications.Hub) *NotificationHandler {
	return &NotificationHandler{Hub: hub, Heartbeat: defaultHeartbeat}
}

// Stream открывает SSE-поток событий бюджета. Поток живет дольше WriteTimeout
// сервера и завершается при отключении клиента или закрытии Hub.
func (h *NotificationHandler) Stream(c echo.Context) error {
	flusher, ok := c.Response().Writer.(http.Flusher)
	if !ok {
		return serverError(c)
	}

	// Writer без поддержки дедлайнов возвращает ErrNotSupported.
	_ = http.NewResponseController(c.Response().Writer).SetWriteDeadline(time.Time{})

	heartbeat := h.Heartbeat
	if heartbeat <= 0 {
		heartbeat = defaultHeartbeat
	}
	ticker := time.NewTicker(heartbeat)
	defer ticker.Stop()

	c.Response().Header().Set(echo.HeaderContentType, "text/event-stream")
	c.Response().Header().Set(echo.HeaderCacheControl, "no-cache")
	c.Response().Header().Set(echo.HeaderConnection, "keep-alive")
	c.Response().WriteHeader(http.StatusOK)

	ch, unsubscribe := h.Hub.Subscribe()
	defer unsubscribe()

	_ = writeSSE(c, notifications.Event{
		Type: notifications.EventConnected,
		Data: map[string]int{"subscribers": h.Hub.Subscribers()},
	})
	flusher.Flush()

	ctx := c.Request().Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := c.Response().Write([]byte(": ping\n\n")); err != nil {
				return nil
			}
			flusher.Flush()
		case event, ok := <-ch:
			if !ok {
				return nil
			}
			if err := writeSSE(c, event); err != nil {
				return nil
			}
			flusher.Flush()
		}
	}
}

// BudgetUpdatePublisher возвращает слушателя хранилища, который рассылает
// новые итоги подписчикам.
func BudgetUpdatePublisher(hub *notifications.Hub) budget.ChangeListener {
	return func(summary models.BudgetSummary) {
		publishBudgetUpdate(hub, summary)
	}
}

func writeSSE(c echo.Context, event notifications.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	if _, err := c.Response().Write([]byte("event: " + event.Type + "\n")); err != nil {
		return err
	}
	if _, err := c.Response().Write([]byte("data: " + string(payload) + "\n\n")); err != nil {
		return err
	}

	return nil
}

func publishBudgetUpdate(hub *notifications.Hub, summary models.BudgetSummary) {
	if hub == nil {
		return
	}

	hub.Publish(notifications.Event{
		Type: notifications.EventBudgetUpdated,
		Data: toSummaryResponse(summary),
	})
}

func publishAdviceUpdate(hub *notifications.Hub, count int) {
	if hub == nil {
		return
	}

	hub.Publish(notifications.Event{
		Type: notifications.EventAdviceAdded,
		Data: map[string]int{"messages": count},
	})
}
