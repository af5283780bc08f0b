package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"example.com/wedding-budget/internal/ai"
	"example.com/wedding-budget/internal/budget"
	"example.com/wedding-budget/internal/config"
	"example.com/wedding-budget/internal/handlers"
	"example.com/wedding-budget/internal/notifications"
)

// New собирает HTTP-сервер Echo с роутами и зависимостями.
// Hub передается снаружи, чтобы его можно было закрыть при остановке.
func New(cfg config.Config, logger *slog.Logger, store *budget.Store, notificationHub *notifications.Hub) *echo.Echo {
	if logger == nil {
		logger = slog.Default()
	}
	if notificationHub == nil {
		notificationHub = notifications.NewHub()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewValidator()

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(requestLogger(logger))

	store.OnChange(handlers.BudgetUpdatePublisher(notificationHub))

	advisor := ai.NewAdvisor(newAIClient(cfg.AI), cfg.AI.APIKey)
	if !advisor.Configured() {
		logger.Warn("ai api key is not configured, advisor runs in fallback mode")
	}
	session := ai.NewSession(advisor)

	expenseHandler := handlers.NewExpenseHandler(store)
	budgetHandler := handlers.NewBudgetHandler(
		store,
		handlers.Wedding{CoupleName: cfg.Wedding.CoupleName, Date: cfg.Wedding.Date},
		handlers.ChartOptions{TopCategories: cfg.Budget.TopCategories, SortByValue: cfg.Budget.SortTopCategories},
	)
	advisorHandler := handlers.NewAdvisorHandler(store, session, advisor, notificationHub)
	notificationHandler := handlers.NewNotificationHandler(notificationHub)

	registerRoutes(
		e,
		handlers.Health(advisor),
		expenseHandler,
		budgetHandler,
		advisorHandler,
		notificationHandler,
		aiRateLimiter(cfg.AI),
	)

	return e
}

func newAIClient(cfg config.AIConfig) ai.Client {
	switch strings.ToLower(cfg.Provider) {
	case "groq":
		return ai.NewGroqClient(cfg.APIKey, cfg.BaseURL, cfg.Model, cfg.Timeout, cfg.MaxOutputTokens)
	default:
		return ai.NewGeminiClient(cfg.APIKey, cfg.BaseURL, cfg.Model, cfg.Timeout, cfg.MaxOutputTokens)
	}
}

// NewHTTPServer создает net/http сервер с заданными таймаутами.
// onShutdown вызываются в начале Shutdown, например для закрытия SSE-потоков.
func NewHTTPServer(cfg config.ServerConfig, handler http.Handler, onShutdown ...func()) *http.Server {
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
	for _, fn := range onShutdown {
		srv.RegisterOnShutdown(fn)
	}

	return srv
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogError:     true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.String("remote_ip", v.RemoteIP),
				slog.Duration("latency", v.Latency),
				slog.String("request_id", v.RequestID),
			}

			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
			}

			msg := "request completed"
			if v.Status >= http.StatusInternalServerError {
				logger.LogAttrs(c.Request().Context(), slog.LevelError, msg, attrs...)
				return nil
			}

			logger.LogAttrs(c.Request().Context(), slog.LevelInfo, msg, attrs...)
			return nil
		},
	})
}

// aiRateLimiter ограничивает обращения к модели по IP клиента.
func aiRateLimiter(cfg config.AIConfig) echo.MiddlewareFunc {
	limit := rate.Limit(float64(cfg.RateLimitPerMinute) / 60.0)
	limiterStore := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      limit,
		Burst:     cfg.RateLimitBurst,
		ExpiresIn: time.Minute,
	})

	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: limiterStore,
		DenyHandler: func(c echo.Context, _ string, _ error) error {
			return c.JSON(http.StatusTooManyRequests, map[string]string{"error": "too many ai requests"})
		},
	})
}
