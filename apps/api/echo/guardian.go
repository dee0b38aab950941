package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/escolaexpress/backend/core"
	"github.com/escolaexpress/backend/core/guardian"
	"github.com/escolaexpress/backend/core/school"
)

type guardianApi struct {
	svc       *guardian.Service
	schoolSvc *school.Service
	validate  *validator.Validate
}

func registerGuardianAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := guardianApi{
		svc:       deps.GuardianSvc,
		schoolSvc: deps.SchoolSvc,
		validate:  deps.Validate,
	}

	// un-authed endpoints
	// TODO: rate limit `/login`
	g.POST("/login", api.login)
	g.POST("/guardians", api.register)

	// authed endpoints
	mg := g.Group("/me", jwt, guardianMiddleware())
	mg.GET("", api.retrieve)
	mg.GET("/authorized", api.queryAuthorized)
	mg.POST("/authorized", api.addAuthorized)
	mg.DELETE("/authorized/:id", api.removeAuthorized)
}

// Handlers

func (api *guardianApi) login(ctx echo.Context) error {
	var data guardian.Login
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Login")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	g, err := api.svc.Authenticate(data)
	if err != nil {
		if errors.Cause(err) == guardian.ErrAccessDenied {
			return core.NewValidationError(guardian.ErrAccessDenied)
		}
		return errors.Wrap(err, "authenticating")
	}
	token, err := GenerateToken(GetGuardianClaims(g, ViewGuardian))
	if err != nil {
		return errors.Wrap(err, "generating token")
	}

	return ctx.JSON(http.StatusOK, LoginResponse{Token: token, Guardian: g})
}

func (api *guardianApi) register(ctx echo.Context) error {
	var data guardian.NewGuardian
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewGuardian")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	// the chosen school must exist
	if _, err := api.schoolSvc.GetByID(data.SchoolID); err != nil {
		if errors.Cause(err) == school.ErrNotFound {
			return core.NewValidationError(nil, core.FieldError{Field: "school_id", Error: school.ErrNotFound.Error()})
		}
		return errors.Wrap(err, "finding school by ID")
	}

	g, welcome, err := api.svc.Register(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "registering guardian")
	}
	token, err := GenerateToken(GetGuardianClaims(g, ViewGuardian))
	if err != nil {
		return errors.Wrap(err, "generating token")
	}

	return ctx.JSON(http.StatusCreated, RegisterResponse{
		Token:          token,
		Guardian:       g,
		WelcomeMessage: welcome,
	})
}

func (api *guardianApi) retrieve(ctx echo.Context) error {
	g, err := getContextGuardian(ctx, api.svc)
	if err != nil {
		return errors.Wrap(err, "getting context guardian")
	}
	return ctx.JSON(http.StatusOK, g)
}

func (api *guardianApi) queryAuthorized(ctx echo.Context) error {
	g, err := getContextGuardian(ctx, api.svc)
	if err != nil {
		return errors.Wrap(err, "getting context guardian")
	}

	authorized, err := api.svc.Authorized(g)
	if err != nil {
		return err
	}
	if authorized == nil {
		authorized = []guardian.Guardian{}
	}
	return ctx.JSON(http.StatusOK, authorized)
}

func (api *guardianApi) addAuthorized(ctx echo.Context) error {
	g, err := getContextGuardian(ctx, api.svc)
	if err != nil {
		return errors.Wrap(err, "getting context guardian")
	}

	var data guardian.NewAuthorized
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAuthorized")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	authorized, err := api.svc.AddAuthorized(ctx.Request().Context(), g, data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, authorized)
}

func (api *guardianApi) removeAuthorized(ctx echo.Context) error {
	g, err := getContextGuardian(ctx, api.svc)
	if err != nil {
		return errors.Wrap(err, "getting context guardian")
	}

	if err := api.svc.RemoveAuthorized(g, ctx.Param("id")); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

type (
	LoginResponse struct {
		Token    string            `json:"token"`
		Guardian guardian.Guardian `json:"guardian"`
	}

	RegisterResponse struct {
		Token          string            `json:"token"`
		Guardian       guardian.Guardian `json:"guardian"`
		WelcomeMessage string            `json:"welcome_message,omitempty"`
	}
)
