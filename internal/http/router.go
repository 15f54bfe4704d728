package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pribylovaa/go-rental-office/internal/config"
	"github.com/pribylovaa/go-rental-office/internal/http/handlers"
	"github.com/pribylovaa/go-rental-office/internal/http/middleware"
	"github.com/pribylovaa/go-rental-office/internal/http/session"
	"github.com/pribylovaa/go-rental-office/internal/service"
)

// Options — параметры сборки HTTP-роутера.
type Options struct {
	Logger  *slog.Logger
	Timeout time.Duration
}

// NewRouter собирает http.Handler с chi и подключёнными middleware/роутами.
// Гейт доступа стоит в общей цепочке и выполняется ровно один раз на
// запрос, до любого бизнес-хендлера.
func NewRouter(svc *service.Service, carrier *session.Carrier, routesCfg config.RoutesConfig, opts Options) http.Handler {
	root := chi.NewRouter()

	routes := middleware.NewRoutes(routesCfg)

	// Middleware (внешний -> внутренний).
	root.Use(
		middleware.Recover(),            // безопасно ловим паники
		middleware.RequestID(),          // формируем/прокидываем X-Request-Id (до логирования!)
		middleware.Logging(opts.Logger), // кладём request-scoped логгер в контекст и логируем
	)
	if opts.Timeout > 0 {
		root.Use(middleware.Timeout(opts.Timeout)) // общий дедлайн запроса
	}
	root.Use(middleware.AccessGate(routes, svc, carrier)) // классификация пути и политика сессии

	h := handlers.New(svc, carrier, routesCfg.LoginURL)

	registerRoutes(root, h)
	return root
}

// registerRoutes — единая точка регистрации всех эндпойнтов.
func registerRoutes(r chi.Router, h *handlers.Handlers) {
	// auth API (публичные по классификации: сами решают вопрос токена)
	r.Post("/auth/register", h.RegisterUser)
	r.Post("/auth/login", h.LoginUser)
	r.Post("/auth/logout", h.LogoutUser)
	r.Get("/auth/me", h.CurrentUser)

	// служебное
	r.Get("/api/health", h.Health)

	// страницы бэк-офиса (protected/auth-only — следит гейт)
	r.Get("/dashboard", h.Dashboard)
	r.Get("/login", h.LoginPage)
	r.Get("/register", h.RegisterPage)
}
