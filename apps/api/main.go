package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	echoapi "github.com/escolaexpress/backend/apps/api/echo"
	"github.com/escolaexpress/backend/core"
	"github.com/escolaexpress/backend/core/directory"
	"github.com/escolaexpress/backend/core/guardian"
	"github.com/escolaexpress/backend/core/pickup"
	"github.com/escolaexpress/backend/core/school"
	logsvc "github.com/escolaexpress/backend/services/logger"
	welcomesvc "github.com/escolaexpress/backend/services/welcome"
	"github.com/escolaexpress/backend/storage/localdb"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	// set up loggers
	logger := newLogger("API : ", conf)
	dbLogger := newLogger("DB : ", conf)

	// set up DB
	db, err := localdb.Open(conf, dbLogger)
	if err != nil {
		logger.Fatal(fmt.Sprintf("opening database: %v", err), err)
	}
	defer func() {
		if err = db.Close(); err != nil {
			dbLogger.Error("failed to close", err)
		}
	}()

	// set up services
	var welcomeSvc core.WelcomeService
	if conf.Welcome.APIKey != "" {
		welcomeSvc = welcomesvc.NewHTTPService(conf, logger)
	} else {
		welcomeSvc = welcomesvc.NewConsoleService(conf)
	}

	schoolSvc := school.NewService(localdb.NewSchoolRepository(db))
	guardianSvc := guardian.NewService(localdb.NewGuardianRepository(db), welcomeSvc)
	pickupSvc := pickup.NewService(localdb.NewPickupRepository(db), pickup.ParseDuplicatePolicy(conf.PickupDuplicatePolicy))
	directorySvc := directory.NewService(localdb.NewDirectoryRepository(db))

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	validate := validator.New()
	translator := newTranslator()
	core.InitValidators(validate, translator)
	school.InitValidators(validate, translator)
	guardian.InitValidators(validate, translator)

	// =========================================================================
	// Start Debug Service
	//
	// /debug/pprof - Added to the default mux by importing the net/http/pprof package.
	// /debug/vars - Added to the default mux by importing the expvar package.

	// Expose important info under /debug/vars.
	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)

	go func() {
		if err := http.ListenAndServe(conf.Server.DebugAddr, http.DefaultServeMux); err != nil {
			logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
		}
	}()

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:         conf,
			Logger:       logger,
			SchoolSvc:    schoolSvc,
			GuardianSvc:  guardianSvc,
			PickupSvc:    pickupSvc,
			DirectorySvc: directorySvc,
			Resetter:     db,
			Validate:     validate,
			Translator:   translator,
		},
	)

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

func newLogger(prefix string, conf *core.Config) core.Logger {
	std := log.New(os.Stdout, prefix, log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	if conf.RollbarToken == "" {
		return logsvc.NewStdLogger(std)
	}
	logger := logsvc.NewRollbarLogger(std, conf)
	logger.Enable(!conf.Debug)
	return logger
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}
