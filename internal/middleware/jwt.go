// Package middleware contains the HTTP middleware chain: bearer token
// authentication, the policy gate and the login rate limiter.
package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/jiahongggg/Skyworld-UserAPI/internal/utils"
)

// Context keys populated by JWTAuth for downstream middleware and handlers.
const (
	CtxUserUUID = "user_uuid"
	CtxUsername = "username"
	CtxRole     = "role"
)

// JWTAuth validates a bearer access token and injects the caller's
// identity into the request context. The auth scheme is matched
// case-insensitively per RFC 7235. Every failure mode answers the same
// 401 so the response never reveals whether a token was absent, expired
// or forged.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			parts := strings.Fields(c.Request().Header.Get("Authorization"))
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Invalid token"})
			}

			claims, err := utils.VerifyToken(secret, parts[1])
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Invalid token"})
			}

			c.Set(CtxUserUUID, claims.Subject)
			c.Set(CtxUsername, claims.Username)
			c.Set(CtxRole, claims.Role)
			return next(c)
		}
	}
}
