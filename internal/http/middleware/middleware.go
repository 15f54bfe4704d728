package middleware

import (
	"context"
	"net/http"

	"github.com/pribylovaa/go-rental-office/internal/models"
)

// Middleware — стандартный net/http мидлвар.
type Middleware func(http.Handler) http.Handler

// Chain применяет мидлвары к обработчику в порядке их перечисления.
func Chain(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// CtxKey — ключи значений, которые мидлвары кладут в контекст запроса.
type CtxKey string

const (
	CtxRequestID CtxKey = "request_id"
	CtxClaims    CtxKey = "claims"
)

// ClaimsFrom достаёт клеймы сессии, прикреплённые гейтом доступа.
// Второй результат false — запрос не аутентифицирован.
func ClaimsFrom(ctx context.Context) (*models.Claims, bool) {
	if v := ctx.Value(CtxClaims); v != nil {
		if c, ok := v.(*models.Claims); ok && c != nil {
			return c, true
		}
	}

	return nil, false
}

// statusWriter оборачивает ResponseWriter, чтобы перехватить статус и размер.
type statusWriter struct {
	http.ResponseWriter
	status int
	count  int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(p []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}

	count, err := w.ResponseWriter.Write(p)
	w.count += count
	return count, err
}

func newStatusWriter(w http.ResponseWriter) *statusWriter {
	return &statusWriter{ResponseWriter: w}
}
