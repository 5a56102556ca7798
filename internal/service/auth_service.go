package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"glosskeep/internal/config"
	"glosskeep/internal/middleware"
	"glosskeep/internal/model"
	"glosskeep/internal/repository"
)

// AuthService handles the admin session: login issues a signed session
// token, GetUser backs the /auth/me endpoint, EnsureAdminUser seeds the
// configured admin account at startup.
type AuthService interface {
	Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error)
	GetUser(ctx context.Context, userID int) (*model.UserInfo, error)
	EnsureAdminUser(ctx context.Context) error
}

type authService struct {
	store repository.Store
	cfg   *config.Config
}

func NewAuthService(store repository.Store, cfg *config.Config) AuthService {
	return &authService{store: store, cfg: cfg}
}

func (s *authService) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	logger := middleware.GetLogger(ctx)

	user, err := s.store.GetUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			// Same response as a wrong password; do not leak which field
			// was wrong.
			return nil, model.NewAppError("INVALID_CREDENTIALS", "Invalid username or password.", "", model.ErrUnauthorized)
		}
		logger.Error("Error looking up user", "error", err, "username", req.Username)
		return nil, model.ErrInternalServer
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		logger.Warn("Login failed: password mismatch", "username", req.Username)
		return nil, model.NewAppError("INVALID_CREDENTIALS", "Invalid username or password.", "", model.ErrUnauthorized)
	}

	token, err := s.generateToken(user)
	if err != nil {
		logger.Error("Error signing session token", "error", err)
		return nil, model.ErrInternalServer
	}

	return &model.LoginResponse{
		AccessToken: token,
		User:        model.UserInfo{ID: user.ID, Username: user.Username},
	}, nil
}

func (s *authService) generateToken(user *model.User) (string, error) {
	now := time.Now()
	claims := &model.SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(user.ID),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.JWT.AccessTokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWT.SecretKey))
}

func (s *authService) GetUser(ctx context.Context, userID int) (*model.UserInfo, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.ErrNotFound
		}
		middleware.GetLogger(ctx).Error("Error looking up user", "error", err, "user_id", userID)
		return nil, model.ErrInternalServer
	}
	return &model.UserInfo{ID: user.ID, Username: user.Username}, nil
}

// EnsureAdminUser creates the configured admin account if it does not
// exist yet. Called once at startup.
func (s *authService) EnsureAdminUser(ctx context.Context) error {
	_, err := s.store.GetUserByUsername(ctx, s.cfg.Admin.Username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, model.ErrNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(s.cfg.Admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = s.store.CreateUser(ctx, &model.User{
		Username:     s.cfg.Admin.Username,
		PasswordHash: string(hash),
	})
	if err != nil && !errors.Is(err, model.ErrConflict) {
		return err
	}
	return nil
}
