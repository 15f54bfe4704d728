package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"

	"github.com/pribylovaa/go-rental-office/internal/models"
	"github.com/pribylovaa/go-rental-office/internal/pkg/log"
	"github.com/pribylovaa/go-rental-office/internal/pkg/redact"
	"github.com/pribylovaa/go-rental-office/internal/storage"
)

// RegisterUser регистрирует нового пользователя и открывает сессию.
// Роль по умолчанию — TENANT; роль вне закрытого набора отклоняется.
func (s *Service) RegisterUser(ctx context.Context, email, password string, role models.Role) (*Session, error) {
	const op = "service.auth.RegisterUser"

	normEmail, err := validateEmail(email)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidEmail)
	}

	if err := validatePassword(password); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if role == "" {
		role = models.RoleTenant
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidRole)
	}

	// Поиск регистронезависимый: "User@x" и "user@x" — один аккаунт.
	_, err = s.storage.UserByEmail(ctx, normEmail)
	if err == nil {
		return nil, fmt.Errorf("%s: %w", op, ErrEmailTaken)
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	hashedPassword, err := hashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:           uuid.New(),
		Email:        normEmail,
		PasswordHash: hashedPassword,
		Role:         role,
		Verified:     false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.storage.SaveUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return nil, fmt.Errorf("%s: %w", op, ErrEmailTaken)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.From(ctx).Info("user_registered",
		slog.String("op", op),
		slog.String("user_id", user.ID.String()),
		slog.String("email", redact.Email(user.Email)),
		slog.String("role", string(user.Role)),
	)

	return s.openSession(user, now)
}

// LoginUser выполняет вход по email+пароль.
// Неизвестный email и неверный пароль дают одну и ту же ошибку
// ErrInvalidCredentials — ответы не позволяют перечислять аккаунты.
func (s *Service) LoginUser(ctx context.Context, email, password string) (*Session, error) {
	const op = "service.auth.LoginUser"

	lg := log.From(ctx)

	normEmail, err := validateEmail(email)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	if len(password) == 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	user, err := s.storage.UserByEmail(ctx, normEmail)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			lg.Warn("login_unknown_email",
				slog.String("op", op),
				slog.String("email", redact.Email(normEmail)),
			)
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !checkPassword(user.PasswordHash, password) {
		lg.Warn("login_wrong_password",
			slog.String("op", op),
			slog.String("user_id", user.ID.String()),
		)
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	return s.openSession(user, time.Now().UTC())
}

// Logout отзывает предъявленный токен (best-effort) — сам выход всегда
// успешен: очистку cookie выполняет HTTP-слой независимо от результата.
func (s *Service) Logout(ctx context.Context, token string) {
	const op = "service.auth.Logout"

	if token == "" || s.denylist == nil {
		return
	}

	claims, err := s.VerifyToken(token)
	if err != nil {
		// Невалидный токен отзывать не нужно.
		return
	}

	ttl := time.Until(claims.ExpiresAt)
	if err := s.denylist.Deny(ctx, claims.TokenID, ttl); err != nil {
		log.From(ctx).Warn("logout_deny_failed",
			slog.String("op", op),
			slog.String("user_id", claims.UserID.String()),
			slog.String("err", err.Error()),
		)
	}
}

// openSession выпускает токен и собирает Session для транспорта.
func (s *Service) openSession(user *models.User, now time.Time) (*Session, error) {
	const op = "service.auth.openSession"

	token, expiresAt, err := s.IssueToken(user, now)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Session{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user.Sanitize(),
	}, nil
}

// validateEmail проверяет базовый формат email и обрезает пробелы снаружи.
// Регистр сохраняется: хранение регистрозависимое, поиск — нет.
func validateEmail(raw string) (string, error) {
	const op = "service.auth.validateEmail"

	email := strings.TrimSpace(raw)
	if email == "" {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidEmail)
	}

	if _, err := mail.ParseAddress(email); err != nil {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidEmail)
	}

	return email, nil
}

// validatePassword проверяет минимальные требования к паролю.
// Политика по умолчанию: длина >= 8, хотя бы одна строчная, заглавная, цифра и спецсимвол.
func validatePassword(pw string) error {
	const op = "service.auth.validatePassword"

	if len(pw) == 0 {
		return fmt.Errorf("%s: %w", op, ErrEmptyPassword)
	}

	if len([]rune(pw)) < 8 {
		return fmt.Errorf("%s: %w", op, ErrWeakPassword)
	}

	var hasLower, hasUpper, hasDigit, hasSpecial bool
	for _, r := range pw {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSpecial = true
		}
	}

	if !(hasLower && hasUpper && hasDigit && hasSpecial) {
		return fmt.Errorf("%s: %w", op, ErrWeakPassword)
	}

	return nil
}
