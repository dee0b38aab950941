package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/escolaexpress/backend/core/directory"
	"github.com/escolaexpress/backend/core/guardian"
	"github.com/escolaexpress/backend/core/school"
)

type directoryApi struct {
	svc         *directory.Service
	guardianSvc *guardian.Service
	schoolSvc   *school.Service
	resetter    Resetter
}

func registerDirectoryAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := directoryApi{
		svc:         deps.DirectorySvc,
		guardianSvc: deps.GuardianSvc,
		schoolSvc:   deps.SchoolSvc,
		resetter:    deps.Resetter,
	}

	// guardians see ads for their school's region plus the safety feed
	gg := g.Group("", jwt, guardianMiddleware())
	gg.GET("/ads", api.queryAds)
	gg.GET("/tips", api.queryTips)

	// the platform admin curates the global collections
	ag := g.Group("/admin", jwt, adminMiddleware())
	ag.GET("/ads", api.queryAllAds)
	ag.PUT("/ads", api.saveAds)
	ag.GET("/partners", api.queryPartners)
	ag.PUT("/partners", api.savePartners)
	ag.GET("/tips", api.queryTips)
	ag.PUT("/tips", api.saveTips)
	ag.POST("/reset", api.reset)
}

// Handlers

func (api *directoryApi) queryAds(ctx echo.Context) error {
	g, err := getContextGuardian(ctx, api.guardianSvc)
	if err != nil {
		return errors.Wrap(err, "getting context guardian")
	}
	sch, err := api.schoolSvc.GetByID(g.SchoolID)
	if err != nil {
		return errors.Wrap(err, "finding school by ID")
	}

	ads, err := api.svc.AdsFor(sch.Region)
	if err != nil {
		return errors.Wrap(err, "querying ads")
	}
	if ads == nil {
		ads = []directory.Ad{}
	}
	return ctx.JSON(http.StatusOK, ads)
}

func (api *directoryApi) queryAllAds(ctx echo.Context) error {
	ads, err := api.svc.Ads()
	if err != nil {
		return errors.Wrap(err, "querying ads")
	}
	if ads == nil {
		ads = []directory.Ad{}
	}
	return ctx.JSON(http.StatusOK, ads)
}

func (api *directoryApi) saveAds(ctx echo.Context) error {
	var data []directory.Ad
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to []Ad")
	}

	ads, err := api.svc.SaveAds(data)
	if err != nil {
		return errors.Wrap(err, "saving ads")
	}
	return ctx.JSON(http.StatusOK, ads)
}

func (api *directoryApi) queryPartners(ctx echo.Context) error {
	partners, err := api.svc.Partners()
	if err != nil {
		return errors.Wrap(err, "querying partners")
	}
	if partners == nil {
		partners = []directory.Partner{}
	}
	return ctx.JSON(http.StatusOK, partners)
}

func (api *directoryApi) savePartners(ctx echo.Context) error {
	var data []directory.Partner
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to []Partner")
	}

	partners, err := api.svc.SavePartners(data)
	if err != nil {
		return errors.Wrap(err, "saving partners")
	}
	return ctx.JSON(http.StatusOK, partners)
}

func (api *directoryApi) queryTips(ctx echo.Context) error {
	tips, err := api.svc.SecurityTips()
	if err != nil {
		return errors.Wrap(err, "querying security tips")
	}
	return ctx.JSON(http.StatusOK, tips)
}

func (api *directoryApi) saveTips(ctx echo.Context) error {
	var data []directory.SecurityTip
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to []SecurityTip")
	}

	tips, err := api.svc.SaveSecurityTips(data)
	if err != nil {
		return errors.Wrap(err, "saving security tips")
	}
	return ctx.JSON(http.StatusOK, tips)
}

func (api *directoryApi) reset(ctx echo.Context) error {
	if err := api.resetter.Reset(); err != nil {
		return errors.Wrap(err, "resetting collections")
	}
	return ctx.JSON(http.StatusOK, SuccessResponse{Success: "all collections cleared"})
}

type SuccessResponse struct {
	Success string `json:"success"`
}
