package models

import (
	"time"

	"github.com/google/uuid"
)

// Role — роль пользователя в бэк-офисе. Закрытый набор значений.
type Role string

const (
	RoleRealtor  Role = "REALTOR"
	RoleTenant   Role = "TENANT"
	RoleLandlord Role = "LANDLORD"
	RoleAdmin    Role = "ADMIN"
)

// Valid сообщает, входит ли роль в закрытый набор.
func (r Role) Valid() bool {
	switch r {
	case RoleRealtor, RoleTenant, RoleLandlord, RoleAdmin:
		return true
	}

	return false
}

// User - модель пользователя в системе.
// Email хранится в исходном регистре; поиск в БД регистронезависимый.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Role         Role
	Verified     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SanitizedUser — представление пользователя без секретов.
// Поля с хэшем пароля здесь отсутствуют по построению: именно этот тип
// пересекает внешние границы (JSON-ответы, логи).
type SanitizedUser struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	Verified  bool      `json:"verified"`
	CreatedAt time.Time `json:"created_at"`
}

// Sanitize возвращает безопасное для внешних границ представление пользователя.
func (u *User) Sanitize() *SanitizedUser {
	return &SanitizedUser{
		ID:        u.ID,
		Email:     u.Email,
		Role:      u.Role,
		Verified:  u.Verified,
		CreatedAt: u.CreatedAt,
	}
}
