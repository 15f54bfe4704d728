package httperr

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/go-rental-office/internal/service"
)

// Таксономия: каждый сентинел ядра маппится в стабильную пару
// статус/код, прочее — в 500/internal без деталей.
func TestToHTTP_Taxonomy(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"nil", nil, http.StatusInternalServerError, "internal"},
		{"invalid_argument", ErrInvalidArgument, http.StatusBadRequest, "invalid_argument"},
		{"invalid_email", service.ErrInvalidEmail, http.StatusBadRequest, "invalid_argument"},
		{"weak_password", service.ErrWeakPassword, http.StatusBadRequest, "invalid_argument"},
		{"empty_password", service.ErrEmptyPassword, http.StatusBadRequest, "invalid_argument"},
		{"invalid_role", service.ErrInvalidRole, http.StatusBadRequest, "invalid_argument"},
		{"invalid_credentials", service.ErrInvalidCredentials, http.StatusUnauthorized, "invalid_credentials"},
		{"invalid_token", service.ErrInvalidToken, http.StatusUnauthorized, "unauthenticated"},
		{"email_taken", service.ErrEmailTaken, http.StatusConflict, "already_exists"},
		{"canceled", context.Canceled, StatusClientClosedRequest, "canceled"},
		{"deadline", context.DeadlineExceeded, http.StatusGatewayTimeout, "deadline_exceeded"},
		{"storage_failure", errors.New("db down"), http.StatusInternalServerError, "internal"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			status, resp := ToHTTP(tc.err)
			require.Equal(t, tc.wantStatus, status)
			require.Equal(t, tc.wantCode, resp.Error.Code)
			require.NotEmpty(t, resp.Error.Message)
		})
	}
}

// Обёртки fmt.Errorf("%s: %w", ...) не ломают классификацию.
func TestToHTTP_WrappedErrors(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("service.auth.LoginUser: %w", service.ErrInvalidCredentials)
	status, resp := ToHTTP(wrapped)
	require.Equal(t, http.StatusUnauthorized, status)
	require.Equal(t, "invalid_credentials", resp.Error.Code)
}

// Неизвестный email и неверный пароль дают одно и то же сообщение —
// ответы не раскрывают, существует ли аккаунт.
func TestToHTTP_InvalidCredentials_GenericMessage(t *testing.T) {
	t.Parallel()

	_, resp := ToHTTP(service.ErrInvalidCredentials)
	require.Equal(t, "invalid email or password", resp.Error.Message)
}

// Внутренние детали (текст ошибки хранилища) не утекают в тело ответа.
func TestToHTTP_InternalDetailsNotLeaked(t *testing.T) {
	t.Parallel()

	_, resp := ToHTTP(errors.New("pq: connection refused at 10.0.0.5"))
	require.Equal(t, "internal error", resp.Error.Message)
	require.NotContains(t, resp.Error.Message, "10.0.0.5")
}

func TestWriteError_BodyAndRequestID(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	req.Header.Set("X-Request-Id", "rid-42")

	rr := httptest.NewRecorder()
	WriteError(rr, req, service.ErrInvalidCredentials)

	require.Equal(t, http.StatusUnauthorized, rr.Code)
	require.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Equal(t, "invalid_credentials", resp.Error.Code)
	require.Equal(t, "rid-42", resp.Error.RequestID)
}
