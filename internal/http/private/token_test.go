package private

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokens_IssueAndVerify(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	tokens := NewTokens([]byte("secret"), 15*time.Minute)
	tokens.now = func() time.Time { return now }

	raw, expires, err := tokens.Issue()
	require.NoError(t, err)
	assert.Equal(t, now.Add(15*time.Minute), expires)

	require.NoError(t, tokens.Verify(raw))

	now = now.Add(16 * time.Minute)
	assert.ErrorIs(t, tokens.Verify(raw), ErrInvalidToken)
}

func TestTokens_RejectsForeignTokens(t *testing.T) {
	tokens := NewTokens([]byte("secret"), time.Minute)

	other := NewTokens([]byte("other-secret"), time.Minute)
	raw, _, err := other.Issue()
	require.NoError(t, err)

	assert.ErrorIs(t, tokens.Verify(raw), ErrInvalidToken)

	wrongSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "family",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	assert.ErrorIs(t, tokens.Verify(wrongSubject), ErrInvalidToken)
}

func TestTokens_Middleware(t *testing.T) {
	tokens := NewTokens([]byte("secret"), time.Minute)
	raw, _, err := tokens.Issue()
	require.NoError(t, err)

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"garbage", "Bearer abc", http.StatusUnauthorized},
		{"valid", "Bearer " + raw, http.StatusTeapot},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			rec := httptest.NewRecorder()
			tokens.Middleware(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
