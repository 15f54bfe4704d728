// session привязывает сессионный токен к HTTP-транспорту: cookie для
// браузерных маршрутов и Authorization: Bearer для API-клиентов.
// Cookie — единственное место хранения токена на клиенте; её содержимое
// клиентский код не читает (HttpOnly).
package session

import (
	"net/http"
	"strings"
	"time"
)

// Carrier описывает параметры сессионной cookie.
// Значения неизменяемы после старта и безопасны для конкурентного чтения.
type Carrier struct {
	// CookieName — имя сессионной cookie ("auth-token").
	CookieName string
	// TTL — срок жизни cookie; совпадает со сроком жизни токена.
	TTL time.Duration
	// Secure включается в prod-окружении.
	Secure bool
}

// NewCarrier создаёт Carrier; secure включается для env=prod.
func NewCarrier(cookieName string, ttl time.Duration, env string) *Carrier {
	return &Carrier{
		CookieName: cookieName,
		TTL:        ttl,
		Secure:     env == "prod",
	}
}

// Set выставляет сессионную cookie на успешный вход/регистрацию.
func (c *Carrier) Set(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(c.TTL.Seconds()),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// Clear сбрасывает сессионную cookie (logout, протухший токен).
// Идемпотентна: повторный вызов даёт тот же результат.
func (c *Carrier) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// TokenFromRequest извлекает кандидата-токена из запроса.
// Единая точка для обоих транспортов: сначала заголовок Authorization
// (Bearer), затем cookie. Пустая строка — токена нет.
func (c *Carrier) TokenFromRequest(r *http.Request) string {
	const prefix = "Bearer "

	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, prefix) {
		if token := strings.TrimSpace(auth[len(prefix):]); token != "" {
			return token
		}
	}

	if cookie, err := r.Cookie(c.CookieName); err == nil {
		return cookie.Value
	}

	return ""
}
