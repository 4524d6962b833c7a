package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/jiahongggg/Skyworld-UserAPI/internal/config"
	"github.com/jiahongggg/Skyworld-UserAPI/internal/model"
	"github.com/jiahongggg/Skyworld-UserAPI/internal/utils"
)

const refreshCookie = "refresh_token"

// UserStore is the slice of the user repository the auth handler needs.
type UserStore interface {
	GetByUsername(ctx context.Context, username string) (model.User, error)
	GetByID(ctx context.Context, userUUID string) (model.User, error)
	UpdateRefreshToken(ctx context.Context, userUUID string, token *string) error
}

// AuthHandler serves login, refresh and logout. All authentication
// failures answer the same 401 body so responses never reveal whether
// the username exists, the password was wrong or a token was stale.
type AuthHandler struct {
	users UserStore
	cfg   config.Config
	log   zerolog.Logger
}

func NewAuthHandler(users UserStore, cfg config.Config, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{users: users, cfg: cfg, log: log}
}

type loginRequest struct {
	Username string `json:"Username" validate:"required"`
	Password string `json:"Password" validate:"required"`
}

func authFailed(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Authentication failed"})
}

func refreshRejected(c echo.Context) error {
	return c.JSON(http.StatusForbidden, echo.Map{"message": "Authentication failed"})
}

// Login verifies credentials, issues a token pair, persists the refresh
// token on the user row and delivers it via an http-only cookie.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	u, err := h.users.GetByUsername(ctx, req.Username)
	if err != nil {
		return authFailed(c)
	}
	if !utils.VerifyPassword(u.Password, req.Password) {
		h.log.Warn().Str("username", req.Username).Str("ip", c.RealIP()).Msg("failed login attempt")
		return authFailed(c)
	}

	pair, err := utils.IssuePair(h.cfg.JWTSecret, h.cfg.JWTRefreshSecret,
		u.UserUUID, u.Username, u.Role, h.cfg.AccessTTL, h.cfg.RefreshTTL)
	if err != nil {
		return err
	}
	if err := h.users.UpdateRefreshToken(ctx, u.UserUUID, &pair.RefreshToken); err != nil {
		return err
	}

	h.setRefreshCookie(c, pair.RefreshToken, pair.RefreshExp)
	h.log.Info().Str("username", u.Username).Msg("login succeeded")
	return c.JSON(http.StatusOK, echo.Map{
		"message":     "Login successful",
		"accessToken": pair.AccessToken,
	})
}

// Refresh rotates the token pair. The presented refresh token must both
// verify cryptographically and equal the one stored on the user row;
// rotation invalidates every previously issued refresh token. A missing
// cookie is 401; a token that is present but invalid or stale is 403.
func (h *AuthHandler) Refresh(c echo.Context) error {
	cookie, err := c.Cookie(refreshCookie)
	if err != nil || cookie.Value == "" {
		return authFailed(c)
	}

	claims, err := utils.VerifyToken(h.cfg.JWTRefreshSecret, cookie.Value)
	if err != nil {
		return refreshRejected(c)
	}

	ctx := c.Request().Context()
	u, err := h.users.GetByID(ctx, claims.Subject)
	if err != nil {
		return refreshRejected(c)
	}
	if u.RefreshToken == nil || *u.RefreshToken != cookie.Value {
		h.log.Warn().Str("username", u.Username).Msg("stale refresh token presented")
		return refreshRejected(c)
	}

	pair, err := utils.IssuePair(h.cfg.JWTSecret, h.cfg.JWTRefreshSecret,
		u.UserUUID, u.Username, u.Role, h.cfg.AccessTTL, h.cfg.RefreshTTL)
	if err != nil {
		return err
	}
	if err := h.users.UpdateRefreshToken(ctx, u.UserUUID, &pair.RefreshToken); err != nil {
		return err
	}

	h.setRefreshCookie(c, pair.RefreshToken, pair.RefreshExp)
	return c.JSON(http.StatusOK, echo.Map{
		"message":     "Token refreshed",
		"accessToken": pair.AccessToken,
	})
}

// Logout revokes the stored refresh token and clears the cookie. It
// answers 200 regardless: logging out with a dead session is not an
// error worth reporting.
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(refreshCookie); err == nil && cookie.Value != "" {
		if claims, err := utils.VerifyToken(h.cfg.JWTRefreshSecret, cookie.Value); err == nil {
			if err := h.users.UpdateRefreshToken(c.Request().Context(), claims.Subject, nil); err != nil {
				h.log.Warn().Err(err).Msg("refresh token revoke failed")
			}
		}
	}
	h.clearRefreshCookie(c)
	return c.JSON(http.StatusOK, echo.Map{"message": "Logged out"})
}

func (h *AuthHandler) setRefreshCookie(c echo.Context, token string, expires time.Time) {
	c.SetCookie(&http.Cookie{
		Name:     refreshCookie,
		Value:    token,
		Path:     "/api/v1/users",
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.cfg.Production(),
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearRefreshCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     refreshCookie,
		Value:    "",
		Path:     "/api/v1/users",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cfg.Production(),
		SameSite: http.SameSiteLaxMode,
	})
}
