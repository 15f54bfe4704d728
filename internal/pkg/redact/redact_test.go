package redact

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEmail(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want string
	}{
		{"normal", "ivan.petrov@example.com", "iv***@example.com"},
		{"short_local", "ab@example.com", "***@example.com"},
		{"one_char_local", "a@example.com", "***@example.com"},
		{"three_chars", "abc@example.com", "ab***@example.com"},
		{"unicode_local", "пользователь@example.com", "по***@example.com"},
		{"not_an_email", "garbage", "***"},
		{"empty", "", "***"},
		{"two_at_signs", "a@b@c", "***"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, Email(tc.in))
		})
	}
}

// Токены и пароли не попадают в логи ни в каком виде.
func TestTokenAndPassword_Placeholders(t *testing.T) {
	t.Parallel()

	require.Equal(t, "[REDACTED_TOKEN]", Token())
	require.Equal(t, "[REDACTED_PASSWORD]", Password())
}
