package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/escolaexpress/backend/core/guardian"
	"github.com/escolaexpress/backend/core/pickup"
	"github.com/escolaexpress/backend/core/school"
)

type pickupApi struct {
	svc         *pickup.Service
	guardianSvc *guardian.Service
	schoolSvc   *school.Service
	validate    *validator.Validate
}

func registerPickupAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := pickupApi{
		svc:         deps.PickupSvc,
		guardianSvc: deps.GuardianSvc,
		schoolSvc:   deps.SchoolSvc,
		validate:    deps.Validate,
	}

	// guardian side: announce and watch
	gg := g.Group("", jwt, guardianMiddleware())
	gg.POST("/pickups", api.announce)
	gg.GET("/pickups/active", api.queryActive)
	gg.GET("/history", api.queryOwnHistory)

	// operator side: queue and release
	og := g.Group("/queue", jwt, operatorMiddleware())
	og.GET("", api.queryQueue)
	og.POST("/:id/release", api.release)
	og.GET("/history", api.queryHistory)
}

// Handlers

func (api *pickupApi) announce(ctx echo.Context) error {
	g, err := getContextGuardian(ctx, api.guardianSvc)
	if err != nil {
		return errors.Wrap(err, "getting context guardian")
	}

	var data pickup.Announcement
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Announcement")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	sch, err := api.schoolSvc.GetByID(g.SchoolID)
	if err != nil {
		return errors.Wrap(err, "finding school by ID")
	}

	notif, err := api.svc.Announce(g, sch, data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, notif)
}

func (api *pickupApi) queryActive(ctx echo.Context) error {
	g, err := getContextGuardian(ctx, api.guardianSvc)
	if err != nil {
		return errors.Wrap(err, "getting context guardian")
	}

	notifs, err := api.svc.ActiveFor(g)
	if err != nil {
		return errors.Wrap(err, "querying active notifications")
	}
	if notifs == nil {
		notifs = []pickup.Notification{}
	}
	return ctx.JSON(http.StatusOK, notifs)
}

func (api *pickupApi) queryOwnHistory(ctx echo.Context) error {
	g, err := getContextGuardian(ctx, api.guardianSvc)
	if err != nil {
		return errors.Wrap(err, "getting context guardian")
	}

	rels, err := api.svc.HistoryFor(g)
	if err != nil {
		return errors.Wrap(err, "querying release history")
	}
	if rels == nil {
		rels = []pickup.Release{}
	}
	return ctx.JSON(http.StatusOK, rels)
}

func (api *pickupApi) queryQueue(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	notifs, err := api.svc.Queue(claims.SchoolID)
	if err != nil {
		return errors.Wrap(err, "querying queue")
	}
	if notifs == nil {
		notifs = []pickup.Notification{}
	}
	return ctx.JSON(http.StatusOK, notifs)
}

func (api *pickupApi) release(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	var data ReleaseRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ReleaseRequest")
	}
	if err := api.validate.Struct(&data); err != nil {
		return err
	}

	sch, err := api.schoolSvc.GetByID(claims.SchoolID)
	if err != nil {
		return errors.Wrap(err, "finding school by ID")
	}

	rel, err := api.svc.Release(sch, ctx.Param("id"), data.OperatorID, data.Observation)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, rel)
}

func (api *pickupApi) queryHistory(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	rels, err := api.svc.History(claims.SchoolID)
	if err != nil {
		return errors.Wrap(err, "querying release history")
	}
	if rels == nil {
		rels = []pickup.Release{}
	}
	return ctx.JSON(http.StatusOK, rels)
}

type ReleaseRequest struct {
	OperatorID  string `json:"operator_id" validate:"required"`
	Observation string `json:"observation"`
}
