package echoapi

import (
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/escolaexpress/backend/core"
	"github.com/escolaexpress/backend/core/guardian"
	"github.com/escolaexpress/backend/core/pickup"
	"github.com/escolaexpress/backend/core/school"
	"github.com/escolaexpress/backend/core/session"
)

var (
	errUnauthorized  = echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	errHttpForbidden = echo.NewHTTPError(http.StatusForbidden, "permission denied")
	errHttpNotFound  = echo.NewHTTPError(http.StatusNotFound, "not found")
)

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that knows how to handle our errors.
// signalShutdown is called in order to gracefully shutdown the Server whenever a core.shutdown error is caught.
func newAppHTTPErrorHandler(logger core.Logger, translator ut.Translator, signalShutdown func()) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		var message interface{}

		cause := errors.Cause(err)
		switch origErr := cause.(type) {
		case *echo.HTTPError:
			if origErr == middleware.ErrJWTMissing {
				code = http.StatusUnauthorized
				message = origErr.Message
				break
			}
			if origErr.Internal != nil {
				if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
					origErr = herr
				}
			}
			code = origErr.Code
			message = origErr.Message
		case validator.ValidationErrors:
			fldErrs := make(map[string]string, len(origErr))
			for _, vErr := range origErr {
				fldErrs[vErr.Field()] = vErr.Translate(translator)
			}
			code = http.StatusBadRequest
			message = fldErrs
		case *core.ValidationError:
			if origErr.Fields != nil {
				fldErrs := make(map[string]string, len(origErr.Fields))
				for _, fErr := range origErr.Fields {
					fldErrs[fErr.Field] = fErr.Error
				}
				message = fldErrs
			} else {
				message = origErr.Error()
			}
			code = http.StatusBadRequest
		default:
			switch cause {
			case school.ErrNotFound, guardian.ErrNotFound, pickup.ErrNotFound:
				code = http.StatusNotFound
				message = cause.Error()
			case guardian.ErrAccessDenied, pickup.ErrNoOperator:
				code = http.StatusBadRequest
				message = cause.Error()
			case guardian.ErrNotMaster:
				code = http.StatusForbidden
				message = cause.Error()
			case pickup.ErrAlreadyActive, session.ErrInvalidTransition:
				code = http.StatusConflict
				message = cause.Error()
			default: // any other error is a server error
				code = http.StatusInternalServerError
				msg := http.StatusText(http.StatusInternalServerError)
				message = msg

				var g guardian.Guardian
				if claims, cErr := getContextClaims(ctx); cErr == nil {
					g.ID = claims.Subject
					g.Name = claims.GuardianName
					g.SchoolID = claims.SchoolID
				}
				logger.Error(msg, errors.Wrap(err, msg), g)

				// shutting down...
				if core.IsShutdown(err) {
					signalShutdown()
				}
			}
		}

		if ctx.Echo().Debug {
			message = err.Error()
		} else if m, ok := message.(string); ok {
			message = echo.Map{"error": m}
		}

		// Send response
		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead { // Issue #608
				err = ctx.NoContent(code)
			} else {
				err = ctx.JSON(code, message)
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}
