package core

// Logger reports application events, optionally shipping them to an external
// tracker. Implementations live in services/logger.
type Logger interface {
	// Enable toggles shipping to the external tracker; stdout output stays on.
	Enable(enabled bool)

	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}
