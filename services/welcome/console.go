package welcomesvc

import (
	"context"
	"log"

	"github.com/escolaexpress/backend/core"
)

// consoleService skips the generation API entirely and uses the fallback
// message. Used in debug mode and tests so registration never depends on the
// network.
type consoleService struct {
	appName       string
	disableOutput bool
}

var _ core.WelcomeService = (*consoleService)(nil)

func NewConsoleService(conf *core.Config) core.WelcomeService {
	return &consoleService{appName: conf.AppName}
}

// NewConsoleServiceMock is NewConsoleService without the log output.
func NewConsoleServiceMock(conf *core.Config) core.WelcomeService {
	return &consoleService{appName: conf.AppName, disableOutput: true}
}

func (svc *consoleService) Generate(_ context.Context, req core.WelcomeRequest) string {
	msg := core.FallbackWelcomeMessage(svc.appName, req)
	if !svc.disableOutput {
		log.Printf("welcome message for %s: %s", req.GuardianName, msg)
	}
	return msg
}
