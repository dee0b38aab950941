package echoapi

import (
	"crypto/subtle"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/escolaexpress/backend/core"
	"github.com/escolaexpress/backend/core/guardian"
	"github.com/escolaexpress/backend/core/session"
)

type sessionApi struct {
	conf     *core.Config
	svc      *guardian.Service
	validate *validator.Validate
}

func registerSessionAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := sessionApi{
		conf:     deps.Conf,
		svc:      deps.GuardianSvc,
		validate: deps.Validate,
	}

	sg := g.Group("/session")
	sg.POST("/admin", api.enterAdmin)
	sg.POST("/switch", api.switchRole, jwt)
}

// enterAdmin trades the platform access code for an admin token. The code is
// never associated with any school or guardian.
func (api *sessionApi) enterAdmin(ctx echo.Context) error {
	var data AdminAccessRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to AdminAccessRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	code := api.conf.AdminAccessCode
	if code == "" || subtle.ConstantTimeCompare([]byte(data.AccessCode), []byte(code)) != 1 {
		return errHttpForbidden
	}

	token, err := GenerateToken(GetAdminClaims())
	if err != nil {
		return errors.Wrap(err, "generating token")
	}
	return ctx.JSON(http.StatusOK, TokenResponse{Token: token})
}

// switchRole toggles a master guardian's token between the guardian and
// operator portals. Non-masters never get an operator token.
func (api *sessionApi) switchRole(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	g, err := getContextGuardian(ctx, api.svc, claims)
	if err != nil {
		return errors.Wrap(err, "getting context guardian")
	}
	if !g.IsMaster() {
		return guardian.ErrNotMaster
	}

	next, err := claims.Session().SwitchRole()
	if err != nil {
		return err
	}

	view := ViewGuardian
	if next.State == session.SchoolOperatorHome {
		view = ViewOperator
	}
	token, err := GenerateToken(GetGuardianClaims(g, view))
	if err != nil {
		return errors.Wrap(err, "generating token")
	}
	return ctx.JSON(http.StatusOK, TokenResponse{Token: token})
}

type (
	AdminAccessRequest struct {
		AccessCode string `json:"access_code" validate:"required"`
	}

	TokenResponse struct {
		Token string `json:"token"`
	}
)

func (ar *AdminAccessRequest) Validate(validate *validator.Validate) error {
	ar.AccessCode = core.CleanString(ar.AccessCode)
	return validate.Struct(ar)
}
