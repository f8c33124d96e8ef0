package glshader

import (
	"log/slog"
	"os"
)

// logLevel controls the log level for shader lifecycle logging.
// Default is LevelInfo, which suppresses Debug messages.
// SetVerbose(true) sets it to LevelDebug.
var logLevel = new(slog.LevelVar)

// SetVerbose enables or disables debug logging of program lifecycle
// transitions. Call this from main() after parsing flags.
func SetVerbose(v bool) {
	if v {
		logLevel.Set(slog.LevelDebug)
	} else {
		logLevel.Set(slog.LevelInfo)
	}
}

// defaultLogger is used by programs and caches created without WithLogger.
var defaultLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

// Logger returns the package's default logger. Its level follows SetVerbose.
func Logger() *slog.Logger { return defaultLogger }
