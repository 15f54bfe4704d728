package handlers

import (
	"net/http"

	"github.com/pribylovaa/go-rental-office/internal/http/httperr"
	"github.com/pribylovaa/go-rental-office/internal/models"
)

// Входные/выходные модели REST-контрактов аутентификации.
type AuthRegisterRequest struct {
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     models.Role `json:"role,omitempty"`
}

type AuthLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse — санитизированный пользователь + срок жизни сессии.
// Сам токен в тело не попадает: браузер получает его только в cookie.
type AuthResponse struct {
	User      *models.SanitizedUser `json:"user"`
	ExpiresAt int64                 `json:"expires_at"` // Unix UTC
}

type LogoutResponse struct {
	Ok bool `json:"ok"`
}

// RegisterUser — POST /auth/register.
// Успех: санитизированный пользователь в теле, сессионная cookie в ответе.
func (h *Handlers) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var in AuthRegisterRequest
	if err := decodeStrict(r, &in); err != nil {
		httperr.WriteError(w, r, httperr.ErrInvalidArgument)
		return
	}

	sess, err := h.Service.RegisterUser(r.Context(), in.Email, in.Password, in.Role)
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	h.Carrier.Set(w, sess.Token)
	writeJSON(w, http.StatusOK, AuthResponse{
		User:      sess.User,
		ExpiresAt: sess.ExpiresAt.Unix(),
	})
}

// LoginUser — POST /auth/login.
// Неизвестный email и неверный пароль неразличимы в ответе (401, одно
// сообщение); cookie при неудаче не выставляется.
func (h *Handlers) LoginUser(w http.ResponseWriter, r *http.Request) {
	var in AuthLoginRequest
	if err := decodeStrict(r, &in); err != nil {
		httperr.WriteError(w, r, httperr.ErrInvalidArgument)
		return
	}

	sess, err := h.Service.LoginUser(r.Context(), in.Email, in.Password)
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	h.Carrier.Set(w, sess.Token)
	writeJSON(w, http.StatusOK, AuthResponse{
		User:      sess.User,
		ExpiresAt: sess.ExpiresAt.Unix(),
	})
}

// LogoutUser — POST /auth/logout.
// Всегда успешен и идемпотентен: cookie сбрасывается независимо от того,
// был ли предъявлен валидный токен; отзыв токена — best-effort.
func (h *Handlers) LogoutUser(w http.ResponseWriter, r *http.Request) {
	h.Service.Logout(r.Context(), h.Carrier.TokenFromRequest(r))

	h.Carrier.Clear(w)
	writeJSON(w, http.StatusOK, LogoutResponse{Ok: true})
}

// CurrentUser — GET /auth/me.
// Возвращает санитизированного пользователя или 401; сбой хранилища
// здесь — 500 (прямой API-контракт, в отличие от гейтовых UI-путей).
func (h *Handlers) CurrentUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.Service.CurrentUser(r.Context(), h.Carrier.TokenFromRequest(r))
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}
