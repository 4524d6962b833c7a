package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jiahongggg/Skyworld-UserAPI/internal/policy"
)

// GroupLister fetches the API collection group names a user belongs to.
type GroupLister interface {
	ListGroupNamesForUser(ctx context.Context, userUUID string) ([]string, error)
}

// RequireAccess enforces the policy rule for op against the identity that
// JWTAuth placed in the context. Group membership is only fetched when
// the rule actually gates on a group. Role and group failures answer the
// same 403; the caller learns nothing about which gate tripped.
func RequireAccess(op string, groups GroupLister) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(CtxRole).(string)
			userUUID, _ := c.Get(CtxUserUUID).(string)
			if role == "" || userUUID == "" {
				return c.JSON(http.StatusForbidden, echo.Map{"message": "Access denied"})
			}

			rule, ok := policy.Lookup(op)
			if !ok || !rule.Roles[role] {
				return c.JSON(http.StatusForbidden, echo.Map{"message": "Access denied"})
			}

			if rule.Group != "" {
				names, err := groups.ListGroupNamesForUser(c.Request().Context(), userUUID)
				if err != nil {
					return err
				}
				if !policy.Check(op, role, names) {
					return c.JSON(http.StatusForbidden, echo.Map{"message": "Access denied"})
				}
			}
			return next(c)
		}
	}
}
