package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"user-auth-service/internal/service"
	"user-auth-service/internal/transport/http/middleware"
)

// Options — параметры сборки HTTP-роутера.
type Options struct {
	Logger   *slog.Logger
	Timeout  time.Duration
	BasePath string // например, "/api"; если пустой — роуты регистрируются на корне.

	// Metrics — реестр для HTTP-метрик; nil отключает регистрацию.
	Metrics prometheus.Registerer
}

// NewRouter собирает http.Handler с chi и подключёнными middleware/роутами.
func NewRouter(svc *service.Service, opts Options) http.Handler {
	root := chi.NewRouter()

	// Middleware (внешний -> внутренний).
	root.Use(
		middleware.Recover(),            // безопасно ловим паники
		middleware.RequestID(),          // формируем/прокидываем X-Request-Id (до логирования!)
		middleware.Logging(opts.Logger), // кладём request-scoped логгер в контекст и логируем
		middleware.Metrics(opts.Metrics),
	)
	if opts.Timeout > 0 {
		root.Use(middleware.Timeout(opts.Timeout)) // общий дедлайн запроса
	}

	h := NewHandlers(svc)

	if opts.BasePath != "" {
		sub := chi.NewRouter()
		registerRoutes(sub, h, svc)
		root.Mount(opts.BasePath, sub)
		return root
	}

	registerRoutes(root, h, svc)
	return root
}

// registerRoutes — единая точка регистрации всех REST-эндпойнтов.
//
// Пути заканчиваются на "/", это часть публичного контракта.
func registerRoutes(r chi.Router, h *Handlers, svc *service.Service) {
	r.Post("/register/", h.Register)
	r.Post("/login/", h.Login)
	r.Post("/refresh/", h.Refresh)

	r.Group(func(gr chi.Router) {
		gr.Use(middleware.Authenticate(svc, true))
		gr.Get("/me/", h.Me)
	})
}
