package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/escolaexpress/backend/core"
	"github.com/escolaexpress/backend/core/directory"
	"github.com/escolaexpress/backend/core/guardian"
	"github.com/escolaexpress/backend/core/pickup"
	"github.com/escolaexpress/backend/core/school"
)

type (
	// Resetter wipes every stored collection. Exposed to the platform admin
	// as a factory reset of the whole directory.
	Resetter interface {
		Reset() error
	}

	ServerDeps struct {
		Conf         *core.Config
		Logger       core.Logger
		SchoolSvc    *school.Service
		GuardianSvc  *guardian.Service
		PickupSvc    *pickup.Service
		DirectorySvc *directory.Service
		Resetter     Resetter
		Validate     *validator.Validate
		Translator   ut.Translator
	}

	Server interface {
		http.Handler
		Start()
		Shutdown(ctx context.Context) error
		Close() error
		Errors() <-chan error
		ShutdownSignal() <-chan os.Signal
	}

	server struct {
		deps       ServerDeps
		app        *echo.Echo
		errorChan  chan error
		shutdownCh chan os.Signal
	}
)

var _ Server = (*server)(nil)

func NewServer(deps ServerDeps) Server {
	s := &server{
		deps:       deps,
		app:        echo.New(),
		errorChan:  make(chan error, 1),
		shutdownCh: make(chan os.Signal, 1),
	}
	signal.Notify(s.shutdownCh, os.Interrupt, syscall.SIGTERM)
	initAuth(deps.Conf)
	s.setup()
	return s
}

func (s *server) setup() {
	conf := s.deps.Conf

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !conf.TestMode {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger, s.deps.Translator, s.signalShutdown)
	s.app.Debug = conf.Debug

	s.app.GET("/", s.home)

	v1 := s.app.Group("/v1")
	jwt := middleware.JWTWithConfig(appJWTConfig)

	registerSchoolAPI(v1, jwt, s.deps)
	registerGuardianAPI(v1, jwt, s.deps)
	registerSessionAPI(v1, jwt, s.deps)
	registerPickupAPI(v1, jwt, s.deps)
	registerDirectoryAPI(v1, jwt, s.deps)
}

func (s *server) Start() {
	if err := s.app.Start(s.deps.Conf.Server.Addr); err != nil && err != http.ErrServerClosed {
		s.errorChan <- err
	}
}

func (s *server) Shutdown(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) Close() error {
	return s.app.Close()
}

func (s *server) Errors() <-chan error {
	return s.errorChan
}

func (s *server) ShutdownSignal() <-chan os.Signal {
	return s.shutdownCh
}

// signalShutdown lets the error handler trigger the same graceful shutdown
// path as SIGTERM when it catches an unrecoverable error.
func (s *server) signalShutdown() {
	s.shutdownCh <- syscall.SIGTERM
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func (s *server) home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to "+s.deps.Conf.AppName+" API!")
}
