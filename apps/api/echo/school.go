package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/escolaexpress/backend/core/school"
)

type schoolApi struct {
	svc      *school.Service
	validate *validator.Validate
}

func registerSchoolAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := schoolApi{
		svc:      deps.SchoolSvc,
		validate: deps.Validate,
	}

	// the picker and the self-service enrollment are both public
	sg := g.Group("/schools")
	sg.GET("", api.query)
	sg.POST("", api.create)

	// the active school is configured from the operator portal
	og := g.Group("/school", jwt, operatorMiddleware())
	og.GET("", api.retrieve)
	og.PUT("/config", api.configure)
}

func (api *schoolApi) query(ctx echo.Context) error {
	schools, err := api.svc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying schools")
	}
	if schools == nil {
		schools = []school.School{}
	}
	return ctx.JSON(http.StatusOK, schools)
}

func (api *schoolApi) create(ctx echo.Context) error {
	var data school.NewSchool
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewSchool")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	sch, err := api.svc.Create(data)
	if err != nil {
		return errors.Wrap(err, "creating school")
	}
	return ctx.JSON(http.StatusCreated, sch)
}

func (api *schoolApi) retrieve(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}
	sch, err := api.svc.GetByID(claims.SchoolID)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, sch)
}

func (api *schoolApi) configure(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	var data school.Config
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Config")
	}

	sch, err := api.svc.Configure(claims.SchoolID, data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, sch)
}
