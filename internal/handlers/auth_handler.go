package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"glosskeep/internal/config"
	"glosskeep/internal/middleware"
	"glosskeep/internal/model"
	"glosskeep/internal/service"
	"glosskeep/internal/webutil"
)

type AuthHandler struct {
	auth   service.AuthService
	cfg    *config.Config
	logger *slog.Logger
}

func NewAuthHandler(auth service.AuthService, cfg *config.Config, logger *slog.Logger) *AuthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandler{auth: auth, cfg: cfg, logger: logger}
}

// Login serves POST /api/auth/login. On success the session token is both
// returned in the body and set as an HttpOnly cookie.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "Login"))

	var req model.LoginRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.Any("error", err))
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "Request body is not valid JSON for a login.", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}
	if err := webutil.ValidateStruct(req); err != nil {
		logger.Warn("Validation failed", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	resp, err := h.auth.Login(r.Context(), &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    resp.AccessToken,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(h.cfg.JWT.AccessTokenTTL),
	})

	logger.Info("User logged in", slog.String("username", resp.User.Username))
	webutil.RespondWithJSON(w, http.StatusOK, resp, logger)
}

// Logout serves POST /api/auth/logout by expiring the session cookie. The
// token itself stays valid until its expiry; there is no server-side
// session state to destroy.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "Logout"))

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})

	webutil.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully"}, logger)
}

// Me serves GET /api/auth/me for the authenticated admin.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "Me"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	user, err := h.auth.GetUser(r.Context(), userID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, map[string]*model.UserInfo{"user": user}, logger)
}
