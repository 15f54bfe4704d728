package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/go-rental-office/internal/storage"
	"github.com/pribylovaa/go-rental-office/mocks"
)

func TestCurrentUser_OK_AndSanitized(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newServiceWithMock(t)
	defer ctrl.Finish()

	user := testUser()
	token, _, err := svc.IssueToken(user, time.Now().UTC())
	require.NoError(t, err)

	st.EXPECT().UserByID(gomock.Any(), user.ID).Return(user, nil)

	got, err := svc.CurrentUser(context.Background(), token)
	require.NoError(t, err)
	require.Equal(t, user.ID, got.ID)
	require.Equal(t, user.Email, got.Email)
	require.Equal(t, user.Role, got.Role)
	require.Equal(t, user.Verified, got.Verified)

	// Хэш пароля не пересекает внешнюю границу ни под каким именем.
	raw, err := json.Marshal(got)
	require.NoError(t, err)
	require.NotContains(t, string(raw), user.PasswordHash)
	require.NotContains(t, string(raw), "password")
}

// Повторный резолв того же токена даёт тот же результат.
func TestCurrentUser_Idempotent(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newServiceWithMock(t)
	defer ctrl.Finish()

	user := testUser()
	token, _, err := svc.IssueToken(user, time.Now().UTC())
	require.NoError(t, err)

	st.EXPECT().UserByID(gomock.Any(), user.ID).Return(user, nil).Times(2)

	first, err := svc.CurrentUser(context.Background(), token)
	require.NoError(t, err)
	second, err := svc.CurrentUser(context.Background(), token)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestCurrentUser_InvalidToken(t *testing.T) {
	t.Parallel()

	svc, _, ctrl := newServiceWithMock(t)
	defer ctrl.Finish()

	_, err := svc.CurrentUser(context.Background(), "garbage")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrInvalidToken)
}

// Пользователь удалён после выпуска токена: «не аутентифицирован»,
// а не серверная ошибка.
func TestCurrentUser_PrincipalDeleted_MapsToInvalidToken(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newServiceWithMock(t)
	defer ctrl.Finish()

	user := testUser()
	token, _, err := svc.IssueToken(user, time.Now().UTC())
	require.NoError(t, err)

	st.EXPECT().UserByID(gomock.Any(), user.ID).Return(nil, storage.ErrNotFound)

	_, err = svc.CurrentUser(context.Background(), token)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrInvalidToken)
}

// Сбой хранилища пробрасывается как есть — прямой API ответит 500,
// а не 401.
func TestCurrentUser_StorageError_Propagated(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newServiceWithMock(t)
	defer ctrl.Finish()

	user := testUser()
	token, _, err := svc.IssueToken(user, time.Now().UTC())
	require.NoError(t, err)

	dbErr := errors.New("db timeout")
	st.EXPECT().UserByID(gomock.Any(), user.ID).Return(nil, dbErr)

	_, err = svc.CurrentUser(context.Background(), token)
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrInvalidToken)
	require.ErrorIs(t, err, dbErr)
}

func TestCurrentUser_RevokedToken(t *testing.T) {
	t.Parallel()

	svc, _, ctrl := newServiceWithMock(t)
	defer ctrl.Finish()

	dl := mocks.NewMockTokenDenylist(ctrl)
	svc.SetTokenDenylist(dl)

	user := testUser()
	token, _, err := svc.IssueToken(user, time.Now().UTC())
	require.NoError(t, err)
	claims, err := svc.VerifyToken(token)
	require.NoError(t, err)

	dl.EXPECT().IsDenied(gomock.Any(), claims.TokenID).Return(true, nil)

	_, err = svc.CurrentUser(context.Background(), token)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrInvalidToken)
}

// Недоступный денайлист не роняет запрос: отзыв — best-effort.
func TestCurrentUser_DenylistError_FailOpen(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newServiceWithMock(t)
	defer ctrl.Finish()

	dl := mocks.NewMockTokenDenylist(ctrl)
	svc.SetTokenDenylist(dl)

	user := testUser()
	token, _, err := svc.IssueToken(user, time.Now().UTC())
	require.NoError(t, err)

	dl.EXPECT().IsDenied(gomock.Any(), gomock.Any()).Return(false, errors.New("redis down"))
	st.EXPECT().UserByID(gomock.Any(), user.ID).Return(user, nil)

	got, err := svc.CurrentUser(context.Background(), token)
	require.NoError(t, err)
	require.Equal(t, user.ID, got.ID)
}
