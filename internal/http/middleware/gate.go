package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/pribylovaa/go-rental-office/internal/config"
	"github.com/pribylovaa/go-rental-office/internal/http/session"
	"github.com/pribylovaa/go-rental-office/internal/models"
	logctx "github.com/pribylovaa/go-rental-office/internal/pkg/log"
)

// TokenVerifier проверяет сессионный токен. Реализуется пакетом service.
type TokenVerifier interface {
	VerifyToken(token string) (*models.Claims, error)
}

// routeClass — классификация пути гейтом.
type routeClass int

const (
	routePublic routeClass = iota
	routeProtected
	routeAuthOnly
)

// Routes — статическая таблица классификации маршрутов.
// Заполняется на старте и далее только читается, поэтому безопасна
// для любого числа конкурентных запросов.
type Routes struct {
	protected []string
	authOnly  []string
	loginURL  string
	homeURL   string
}

// NewRoutes собирает таблицу из конфигурации.
// Protected и AuthOnly не должны пересекаться; пересечение — ошибка
// конфигурации, и побеждает protected.
func NewRoutes(cfg config.RoutesConfig) Routes {
	return Routes{
		protected: cfg.Protected,
		authOnly:  cfg.AuthOnly,
		loginURL:  cfg.LoginURL,
		homeURL:   cfg.HomeURL,
	}
}

// classify определяет класс пути. Совпадение префиксное, но только по
// границе сегмента: /properties/new защищён, /propertiesx — нет.
func (rt Routes) classify(path string) routeClass {
	for _, p := range rt.protected {
		if matchPrefix(path, p) {
			return routeProtected
		}
	}

	for _, p := range rt.authOnly {
		if matchPrefix(path, p) {
			return routeAuthOnly
		}
	}

	return routePublic
}

func matchPrefix(path, prefix string) bool {
	if !strings.HasPrefix(path, prefix) {
		return false
	}

	return len(path) == len(prefix) || path[len(prefix)] == '/'
}

// AccessGate — гейт доступа: классифицирует путь и решает судьбу запроса
// до любого бизнес-хендлера. Выполняется ровно один раз на запрос.
//
// Исходы строго терминальны: proceed / redirect / clear-cookie+redirect.
// Гейт не ходит в БД — проверка токена чистая, существование субъекта
// проверяет резолвер идентичности уже внутри хендлеров, которым он нужен.
//
// Переходы:
//   - protected, токена нет        -> 302 на login с ?redirect=<path>;
//   - protected, токен невалиден   -> сброс cookie + 302 на login
//     (иначе протухшая cookie зациклит редиректы);
//   - protected, токен валиден     -> proceed, клеймы в контексте;
//   - auth-only, токен валиден     -> 302 на домашнюю страницу;
//   - auth-only, токена нет/битый  -> proceed (рендерим страницу входа);
//   - public                       -> proceed всегда.
func AccessGate(rt Routes, tv TokenVerifier, carrier *session.Carrier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			class := rt.classify(r.URL.Path)
			if class == routePublic {
				next.ServeHTTP(w, r)
				return
			}

			token := carrier.TokenFromRequest(r)

			var claims *models.Claims
			if token != "" {
				var err error
				claims, err = tv.VerifyToken(token)
				if err != nil {
					// Причина (подпись/срок/формат) остаётся в логах,
					// наружу — единый «не аутентифицирован».
					logctx.From(r.Context()).Warn("gate_token_rejected",
						slog.String("path", r.URL.Path),
						slog.String("err", err.Error()),
					)
					claims = nil
				}
			}

			switch class {
			case routeProtected:
				if claims == nil {
					if token != "" {
						// Протухшая/битая cookie: сбрасываем, чтобы не зациклить редиректы.
						carrier.Clear(w)
						redirect(w, r, rt.loginURL)
						return
					}

					q := url.Values{"redirect": {r.URL.Path}}
					redirect(w, r, rt.loginURL+"?"+q.Encode())
					return
				}

				ctx := context.WithValue(r.Context(), CtxClaims, claims)
				next.ServeHTTP(w, r.WithContext(ctx))

			case routeAuthOnly:
				if claims != nil {
					// Аутентифицированному нечего делать на странице входа.
					redirect(w, r, rt.homeURL)
					return
				}

				next.ServeHTTP(w, r)
			}
		})
	}
}

func redirect(w http.ResponseWriter, r *http.Request, target string) {
	http.Redirect(w, r, target, http.StatusFound)
}
