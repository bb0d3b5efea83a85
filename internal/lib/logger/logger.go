package logger

import (
	"log/slog"
	"os"
	"path/filepath"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

// SetupLogger builds the process logger for the given environment.
// Local runs log human-readable text to stdout at debug level; dev and
// prod write JSON to a file under logPath, falling back to stderr when
// the file cannot be opened.
func SetupLogger(env, logPath string) *slog.Logger {
	switch env {
	case envLocal:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	case envDev:
		return slog.New(slog.NewJSONHandler(logWriter(logPath), &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	default:
		return slog.New(slog.NewJSONHandler(logWriter(logPath), &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
	}
}

func logWriter(logPath string) *os.File {
	file, err := os.OpenFile(
		filepath.Join(logPath, "claudbot.log"),
		os.O_CREATE|os.O_APPEND|os.O_WRONLY,
		0o644,
	)
	if err != nil {
		return os.Stderr
	}
	return file
}
