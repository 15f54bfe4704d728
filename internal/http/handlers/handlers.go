package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/pribylovaa/go-rental-office/internal/http/session"
	"github.com/pribylovaa/go-rental-office/internal/service"
)

// Handlers агрегирует зависимости HTTP-слоя (бизнес-сервис и носитель сессии).
type Handlers struct {
	Service  *service.Service
	Carrier  *session.Carrier
	LoginURL string
}

func New(svc *service.Service, carrier *session.Carrier, loginURL string) *Handlers {
	return &Handlers{
		Service:  svc,
		Carrier:  carrier,
		LoginURL: loginURL,
	}
}

// writeJSON — единый ответ JSON с нужным Content-Type.
// Ошибки выводим через httperr.WriteError.
func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// decodeStrict — строгий JSON-декодер: запрещаем неизвестные поля.
func decodeStrict(r *http.Request, value any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(value)
}
