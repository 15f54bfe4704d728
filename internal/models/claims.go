package models

import (
	"time"

	"github.com/google/uuid"
)

// Claims — расшифрованная полезная нагрузка сессионного токена.
// Токен самодостаточен: всё, что нужно гейту и хендлерам, лежит здесь,
// серверное хранилище сессий отсутствует.
type Claims struct {
	UserID    uuid.UUID
	Email     string
	Role      Role
	TokenID   uuid.UUID
	IssuedAt  time.Time
	ExpiresAt time.Time
}
