package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"glosskeep/internal/config"
	"glosskeep/internal/handlers"
	"glosskeep/internal/middleware"
	"glosskeep/internal/model"
	"glosskeep/internal/service/mocks"
)

func newAuthRouter(t *testing.T) (*chi.Mux, *mocks.MockAuthService) {
	t.Helper()
	mockAuth := mocks.NewMockAuthService(t)
	cfg := &config.Config{}
	cfg.JWT.SecretKey = "test-secret"
	cfg.JWT.AccessTokenTTL = time.Hour
	handler := handlers.NewAuthHandler(mockAuth, cfg, testLogger())

	router := chi.NewRouter()
	router.Post("/api/auth/login", handler.Login)
	router.Post("/api/auth/logout", handler.Logout)
	router.Group(func(r chi.Router) {
		r.Use(withUserID(1))
		r.Get("/api/auth/me", handler.Me)
	})
	return router, mockAuth
}

func sessionCookie(rr interface{ Result() *http.Response }) *http.Cookie {
	for _, cookie := range rr.Result().Cookies() {
		if cookie.Name == middleware.SessionCookieName {
			return cookie
		}
	}
	return nil
}

func TestAuthHandler_Login(t *testing.T) {
	router, mockAuth := newAuthRouter(t)

	validReq := model.LoginRequest{Username: "admin", Password: "admin123"}

	t.Run("Success - token in body and cookie", func(t *testing.T) {
		mockAuth.On("Login", mock.Anything, &validReq).
			Return(&model.LoginResponse{
				AccessToken: "signed-token",
				User:        model.UserInfo{ID: 1, Username: "admin"},
			}, nil).Once()

		rr := doJSON(t, router, "POST", "/api/auth/login", validReq)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"access_token":"signed-token"`)

		cookie := sessionCookie(rr)
		require.NotNil(t, cookie)
		assert.Equal(t, "signed-token", cookie.Value)
		assert.True(t, cookie.HttpOnly)
	})

	t.Run("Fail - invalid credentials", func(t *testing.T) {
		mockAuth.On("Login", mock.Anything, &validReq).
			Return(nil, model.NewAppError("INVALID_CREDENTIALS", "Invalid username or password.", "", model.ErrUnauthorized)).Once()

		rr := doJSON(t, router, "POST", "/api/auth/login", validReq)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		errResp := decodeErrorResponse(t, rr)
		assert.Equal(t, "INVALID_CREDENTIALS", errResp.Error.Code)
		assert.Nil(t, sessionCookie(rr))
	})

	t.Run("Fail - missing fields", func(t *testing.T) {
		rr := doJSON(t, router, "POST", "/api/auth/login", model.LoginRequest{Username: "admin"})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestAuthHandler_Logout(t *testing.T) {
	router, _ := newAuthRouter(t)

	rr := doJSON(t, router, "POST", "/api/auth/logout", nil)

	assert.Equal(t, http.StatusOK, rr.Code)
	cookie := sessionCookie(rr)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Negative(t, cookie.MaxAge)
}

func TestAuthHandler_Me(t *testing.T) {
	router, mockAuth := newAuthRouter(t)

	mockAuth.On("GetUser", mock.Anything, 1).
		Return(&model.UserInfo{ID: 1, Username: "admin"}, nil).Once()

	rr := doJSON(t, router, "GET", "/api/auth/me", nil)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"username":"admin"`)
}
