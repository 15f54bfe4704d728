package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pribylovaa/go-rental-office/internal/models"
	"github.com/pribylovaa/go-rental-office/internal/pkg/log"
	"github.com/pribylovaa/go-rental-office/internal/storage"
)

// CurrentUser резолвит текущего пользователя по сессионному токену.
//
// Последовательность: проверка подписи/срока (чистая) -> денайлист
// отозванных токенов (если сконфигурирован) -> чтение пользователя из БД.
// Удалённый после выпуска токена пользователь даёт ErrInvalidToken —
// «не аутентифицирован», а не серверная ошибка. Сбой хранилища
// пробрасывается как есть: прямой API отвечает на него 500, гейтовые
// UI-пути трактуют как «не аутентифицирован» — это разные контракты.
func (s *Service) CurrentUser(ctx context.Context, token string) (*models.SanitizedUser, error) {
	const op = "service.identity.CurrentUser"

	lg := log.From(ctx)

	claims, err := s.VerifyToken(token)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if s.denylist != nil {
		denied, err := s.denylist.IsDenied(ctx, claims.TokenID)
		if err != nil {
			// Отзыв — best-effort: недоступный Redis не роняет запрос.
			lg.Warn("denylist_check_failed",
				slog.String("op", op),
				slog.String("err", err.Error()),
			)
		} else if denied {
			lg.Warn("token_revoked",
				slog.String("op", op),
				slog.String("user_id", claims.UserID.String()),
			)
			return nil, fmt.Errorf("%s: revoked: %w", op, ErrInvalidToken)
		}
	}

	user, err := s.storage.UserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			// Пользователь удалён после выпуска токена.
			lg.Warn("principal_not_found",
				slog.String("op", op),
				slog.String("user_id", claims.UserID.String()),
			)
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return user.Sanitize(), nil
}
