package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glosskeep/internal/config"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.SecretKey = "test-secret"
	cfg.JWT.AccessTokenTTL = time.Hour
	return cfg
}

func signToken(t *testing.T, secret string, subject string, ttl time.Duration) string {
	t.Helper()
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func authProbe(cfg *config.Config) (http.Handler, *int) {
	var gotUserID int
	handler := SessionAuthMiddleware(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := GetUserIDFromContext(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		gotUserID = userID
		w.WriteHeader(http.StatusOK)
	}))
	return handler, &gotUserID
}

func TestSessionAuthMiddleware(t *testing.T) {
	cfg := testConfig()

	t.Run("valid cookie token", func(t *testing.T) {
		handler, gotUserID := authProbe(cfg)
		req := httptest.NewRequest("GET", "/", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: signToken(t, cfg.JWT.SecretKey, "42", time.Hour)})
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, 42, *gotUserID)
	})

	t.Run("valid bearer token", func(t *testing.T) {
		handler, gotUserID := authProbe(cfg)
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, cfg.JWT.SecretKey, "7", time.Hour))
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, 7, *gotUserID)
	})

	t.Run("missing token", func(t *testing.T) {
		handler, _ := authProbe(cfg)
		req := httptest.NewRequest("GET", "/", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Contains(t, rr.Body.String(), "UNAUTHORIZED")
	})

	t.Run("expired token", func(t *testing.T) {
		handler, _ := authProbe(cfg)
		req := httptest.NewRequest("GET", "/", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: signToken(t, cfg.JWT.SecretKey, "42", -time.Minute)})
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Contains(t, rr.Body.String(), "INVALID_TOKEN")
	})

	t.Run("token signed with a different secret", func(t *testing.T) {
		handler, _ := authProbe(cfg)
		req := httptest.NewRequest("GET", "/", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: signToken(t, "other-secret", "42", time.Hour)})
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("non-numeric subject", func(t *testing.T) {
		handler, _ := authProbe(cfg)
		req := httptest.NewRequest("GET", "/", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: signToken(t, cfg.JWT.SecretKey, "not-a-number", time.Hour)})
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}
