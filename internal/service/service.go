// service содержит бизнес-логику аутентификационного ядра бэк-офиса:
// регистрацию/аутентификацию пользователей, выпуск/проверку сессионных
// токенов и резолв текущего пользователя через интерфейсы пакета storage.
//
// Основные аспекты:
//   - Сессия — самодостаточный подписанный токен; серверного хранилища
//     сессий нет, проверка подписи выполняется на каждом запросе.
//   - Пакет не хранит состояние запроса внутри Service; экземпляр Service
//     безопасен для конкурентного использования из разных горутин при условии,
//     что переданное хранилище (storage.Storage) потокобезопасно. Ключ
//     подписи читается только после старта и не мутируется.
//   - Ошибки возвращаются и далее маппятся HTTP-слоем на статусы
//     (см. комментарии к переменным ошибок ниже).
package service

import (
	"errors"
	"time"

	"github.com/pribylovaa/go-rental-office/internal/cache"
	"github.com/pribylovaa/go-rental-office/internal/config"
	"github.com/pribylovaa/go-rental-office/internal/models"
	"github.com/pribylovaa/go-rental-office/internal/storage"
)

var (
	// ErrInvalidCredentials — пара логин/пароль неверна или пользователь не найден.
	// Одна ошибка на оба случая: перечисление email по ответам невозможно.
	// HTTP: 401.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken — токен некорректен по формату/подписи, просрочен,
	// отозван или его субъект удалён. Единый результат без различения
	// причин наружу; причина пишется только во внутренние логи. HTTP: 401.
	ErrInvalidToken = errors.New("invalid token")

	// ErrEmailTaken — e-mail уже занят другим пользователем. HTTP: 409.
	ErrEmailTaken = errors.New("email already taken")

	// ErrInvalidEmail — e-mail имеет некорректный формат. HTTP: 400.
	ErrInvalidEmail = errors.New("invalid email format")

	// ErrWeakPassword — пароль не удовлетворяет политикам сложности. HTTP: 400.
	ErrWeakPassword = errors.New("password is too weak")

	// ErrEmptyPassword — пароль пустой. HTTP: 400.
	ErrEmptyPassword = errors.New("password is empty")

	// ErrInvalidRole — роль вне закрытого набора. HTTP: 400.
	ErrInvalidRole = errors.New("invalid role")
)

// Session — результат успешного входа/регистрации: подписанный токен,
// срок его действия и безопасное представление пользователя.
type Session struct {
	Token     string
	ExpiresAt time.Time
	User      *models.SanitizedUser
}

// Service описывает бизнес-логику аутентификационного ядра.
type Service struct {
	storage  storage.Storage
	cfg      config.AuthConfig
	denylist cache.TokenDenylist // может быть nil, если отзыв токенов не сконфигурирован
}

// New создаёт новый экземпляр Service.
func New(storage storage.Storage, cfg config.AuthConfig) *Service {
	return &Service{
		storage: storage,
		cfg:     cfg,
	}
}

// SetTokenDenylist устанавливает денайлист отозванных токенов (опционально).
func (s *Service) SetTokenDenylist(d cache.TokenDenylist) {
	s.denylist = d
}
