package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/pribylovaa/go-rental-office/internal/models"
)

// sessionClaims — полезная нагрузка сессионного токена (HS256).
type sessionClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// IssueToken выпускает подписанный сессионный токен на фиксированный срок.
// Срок жизни задаётся при выпуске и не продлевается.
func (s *Service) IssueToken(user *models.User, now time.Time) (string, time.Time, error) {
	const op = "service.token.IssueToken"

	expiresAt := now.Add(s.cfg.TokenTTL)

	claims := sessionClaims{
		Email: user.Email,
		Role:  string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.ID.String(),
			Issuer:    s.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("%s: %w", op, err)
	}

	return signed, expiresAt, nil
}

// VerifyToken проверяет подпись и срок действия токена и возвращает клеймы.
//
// Проверка «закрыта по умолчанию»: битая структура, чужая подпись,
// истёкший срок и любой сбой парсинга дают одну и ту же ошибку
// ErrInvalidToken — наружу причина не различается, чтобы не давать
// оракула. Конкретная причина сохраняется в тексте обёртки и попадает
// только во внутренние логи.
//
// Функция чистая: результат зависит только от токена, ключа и текущего
// времени; обращений к хранилищу нет.
func (s *Service) VerifyToken(tokenStr string) (*models.Claims, error) {
	const op = "service.token.VerifyToken"

	token, err := jwt.ParseWithClaims(tokenStr, &sessionClaims{},
		func(t *jwt.Token) (interface{}, error) {
			if t.Method != jwt.SigningMethodHS256 {
				return nil, fmt.Errorf("%s: unexpected signing method", op)
			}

			return []byte(s.cfg.JWTSecret), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(5*time.Second),
		jwt.WithIssuer(s.cfg.Issuer),
	)

	if err != nil {
		return nil, fmt.Errorf("%s: %v: %w", op, err, ErrInvalidToken)
	}

	claims, ok := token.Claims.(*sessionClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%s: claims type mismatch: %w", op, ErrInvalidToken)
	}

	uid, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("%s: bad subject: %w", op, ErrInvalidToken)
	}

	tokenID, err := uuid.Parse(claims.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: bad jti: %w", op, ErrInvalidToken)
	}

	role := models.Role(claims.Role)
	if !role.Valid() {
		return nil, fmt.Errorf("%s: unknown role: %w", op, ErrInvalidToken)
	}

	out := &models.Claims{
		UserID:  uid,
		Email:   claims.Email,
		Role:    role,
		TokenID: tokenID,
	}

	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}

	return out, nil
}
