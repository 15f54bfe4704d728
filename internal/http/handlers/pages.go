package handlers

import (
	"log/slog"
	"net/http"

	"github.com/pribylovaa/go-rental-office/internal/http/middleware"
	"github.com/pribylovaa/go-rental-office/internal/models"
	"github.com/pribylovaa/go-rental-office/internal/pkg/log"
)

// Страницы бэк-офиса. Рендеринг UI вне зоны ответственности ядра:
// хендлеры отдают минимальные данные, до которых запрос доходит только
// пройдя гейт доступа.

type DashboardResponse struct {
	User *models.SanitizedUser `json:"user"`
}

// Dashboard — GET /dashboard (защищённый маршрут).
// Гейт уже проверил токен; здесь резолвер дополнительно подтверждает,
// что субъект ещё существует. На UI-пути любой отказ резолвера — включая
// недоступное хранилище — трактуется как «не аутентифицирован»: cookie
// сбрасывается и пользователь уходит на вход (контракт, отличный от
// 500 у прямого API).
func (h *Handlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	lg := log.From(r.Context())
	if claims, ok := middleware.ClaimsFrom(r.Context()); ok {
		lg = lg.With(slog.String("user_id", claims.UserID.String()))
	}

	user, err := h.Service.CurrentUser(r.Context(), h.Carrier.TokenFromRequest(r))
	if err != nil {
		lg.Warn("dashboard_resolve_failed", slog.String("err", err.Error()))
		h.Carrier.Clear(w)
		http.Redirect(w, r, h.LoginURL, http.StatusFound)
		return
	}

	writeJSON(w, http.StatusOK, DashboardResponse{User: user})
}

// LoginPage — GET /login (auth-only: гейт не пустит сюда аутентифицированных).
func (h *Handlers) LoginPage(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"page": "login"})
}

// RegisterPage — GET /register (auth-only).
func (h *Handlers) RegisterPage(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"page": "register"})
}

// Health — GET /api/health, публичный liveness-эндпойнт.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
