package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// Cookie входа: HttpOnly, SameSite=Strict, Path=/, срок жизни равен TTL
// токена; Secure появляется только в prod.
func TestCarrier_Set_Attributes(t *testing.T) {
	t.Parallel()

	c := NewCarrier("auth-token", 168*time.Hour, "local")

	rr := httptest.NewRecorder()
	c.Set(rr, "token-value")

	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)

	got := cookies[0]
	require.Equal(t, "auth-token", got.Name)
	require.Equal(t, "token-value", got.Value)
	require.Equal(t, "/", got.Path)
	require.Equal(t, 604800, got.MaxAge)
	require.True(t, got.HttpOnly)
	require.False(t, got.Secure)
	require.Equal(t, http.SameSiteStrictMode, got.SameSite)
}

func TestCarrier_Secure_OnlyInProd(t *testing.T) {
	t.Parallel()

	for env, wantSecure := range map[string]bool{
		"local": false,
		"dev":   false,
		"prod":  true,
	} {
		c := NewCarrier("auth-token", time.Hour, env)

		rr := httptest.NewRecorder()
		c.Set(rr, "t")

		cookies := rr.Result().Cookies()
		require.Len(t, cookies, 1, env)
		require.Equal(t, wantSecure, cookies[0].Secure, env)
	}
}

// Clear идемпотентен: повторный вызов даёт ту же истёкшую cookie.
func TestCarrier_Clear_Idempotent(t *testing.T) {
	t.Parallel()

	c := NewCarrier("auth-token", time.Hour, "prod")

	for i := 0; i < 2; i++ {
		rr := httptest.NewRecorder()
		c.Clear(rr)

		cookies := rr.Result().Cookies()
		require.Len(t, cookies, 1)
		require.Equal(t, "auth-token", cookies[0].Name)
		require.Empty(t, cookies[0].Value)
		require.Negative(t, cookies[0].MaxAge)
		require.True(t, cookies[0].HttpOnly)
	}
}

func TestTokenFromRequest_Sources(t *testing.T) {
	t.Parallel()

	c := NewCarrier("auth-token", time.Hour, "local")

	// Нет ни заголовка, ни cookie.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	require.Empty(t, c.TokenFromRequest(req))

	// Только cookie.
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "auth-token", Value: "from-cookie"})
	require.Equal(t, "from-cookie", c.TokenFromRequest(req))

	// Только заголовок.
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer from-header")
	require.Equal(t, "from-header", c.TokenFromRequest(req))

	// Заголовок без схемы Bearer не считается токеном.
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	require.Empty(t, c.TokenFromRequest(req))
}

// При наличии обоих источников выигрывает заголовок Authorization.
func TestTokenFromRequest_HeaderOverCookie(t *testing.T) {
	t.Parallel()

	c := NewCarrier("auth-token", time.Hour, "local")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer from-header")
	req.AddCookie(&http.Cookie{Name: "auth-token", Value: "from-cookie"})

	require.Equal(t, "from-header", c.TokenFromRequest(req))
}

// Пустой Bearer откатывается к cookie.
func TestTokenFromRequest_EmptyBearer_FallsBackToCookie(t *testing.T) {
	t.Parallel()

	c := NewCarrier("auth-token", time.Hour, "local")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer ")
	req.AddCookie(&http.Cookie{Name: "auth-token", Value: "from-cookie"})

	require.Equal(t, "from-cookie", c.TokenFromRequest(req))
}
