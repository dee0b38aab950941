package echoapi

import (
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// viewMiddleware gates a route group to tokens scoped to the given portal.
func viewMiddleware(view string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, err := getContextClaims(ctx)
			if err != nil {
				return errors.Wrap(err, "getting context claims")
			}
			if claims.View == view {
				return next(ctx)
			}
			return errHttpForbidden
		}
	}
}

func guardianMiddleware() echo.MiddlewareFunc { return viewMiddleware(ViewGuardian) }
func operatorMiddleware() echo.MiddlewareFunc { return viewMiddleware(ViewOperator) }
func adminMiddleware() echo.MiddlewareFunc    { return viewMiddleware(ViewAdmin) }
