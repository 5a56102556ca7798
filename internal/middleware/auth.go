package middleware

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"glosskeep/internal/config"
	"glosskeep/internal/model"
	"glosskeep/internal/webutil"
)

// SessionCookieName is the cookie carrying the admin session token.
const SessionCookieName = "glosskeep_session"

// SessionAuthMiddleware verifies the admin session token from either the
// session cookie or an Authorization Bearer header and stores the user id
// in the request context. Mutating routes are wrapped with it.
func SessionAuthMiddleware(cfg *config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := GetLogger(r.Context())

			tokenString := tokenFromRequest(r)
			if tokenString == "" {
				logger.Warn("Auth failed: no session token")
				appErr := model.NewAppError("UNAUTHORIZED", "Authentication required.", "", model.ErrUnauthorized)
				webutil.HandleError(w, logger, appErr)
				return
			}

			token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, errors.New("unexpected signing method")
				}
				return []byte(cfg.JWT.SecretKey), nil
			})
			if err != nil || !token.Valid {
				logger.Warn("Auth failed: invalid token", "error", err)
				appErr := model.NewAppError("INVALID_TOKEN", "Session is invalid or expired.", "", model.ErrUnauthorized)
				webutil.HandleError(w, logger, appErr)
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				logger.Warn("Auth failed: unexpected claims type")
				appErr := model.NewAppError("INVALID_TOKEN", "Session is invalid or expired.", "", model.ErrUnauthorized)
				webutil.HandleError(w, logger, appErr)
				return
			}

			subject, err := claims.GetSubject()
			if err != nil {
				logger.Warn("Auth failed: subject claim missing", "error", err)
				appErr := model.NewAppError("INVALID_TOKEN", "Session carries no user identity.", "", model.ErrUnauthorized)
				webutil.HandleError(w, logger, appErr)
				return
			}
			userID, err := strconv.Atoi(subject)
			if err != nil {
				logger.Warn("Auth failed: invalid subject format", "subject", subject)
				appErr := model.NewAppError("INVALID_TOKEN", "Session carries an invalid user identity.", "", model.ErrUnauthorized)
				webutil.HandleError(w, logger, appErr)
				return
			}

			ctx := context.WithValue(r.Context(), model.UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func tokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	authHeader := r.Header.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return parts[1]
	}
	return ""
}

// GetUserIDFromContext returns the authenticated user's id set by
// SessionAuthMiddleware.
func GetUserIDFromContext(ctx context.Context) (int, error) {
	value, ok := ctx.Value(model.UserIDKey).(int)
	if !ok {
		return 0, model.NewAppError("UNAUTHORIZED", "No authenticated user in context.", "", model.ErrUnauthorized)
	}
	return value, nil
}
