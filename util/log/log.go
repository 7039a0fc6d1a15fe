package log

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"
)

/*
Structured logging for the compiler toolchain, built on slog. Log output goes
to stderr so generated artifacts written to stdout stay clean. Verbose mode
lowers the threshold to debug for tracing schema resolution.
*/

////////////////////////////////////////////////////////////////////////////////

// nolint:gochecknoglobals
var level = new(slog.LevelVar)

// Configure installs the default handler. Called once at CLI startup.
func Configure(verbose bool) {
	if verbose {
		level.Set(slog.LevelDebug)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))
}

func levelf(ctx context.Context, lvl slog.Level, format string, args ...any) {
	handler := slog.Default().Handler()
	if !handler.Enabled(ctx, lvl) {
		return
	}
	var pcs [1]uintptr
	runtime.Callers(3, pcs[:])
	r := slog.NewRecord(time.Now(), lvl, fmt.Sprintf(format, args...), pcs[0])
	if err := handler.Handle(ctx, r); err != nil {
		slog.ErrorContext(ctx, "error handling log record", "error", err)
	}
}

func Debugf(ctx context.Context, format string, args ...any) {
	levelf(ctx, slog.LevelDebug, format, args...)
}

func Infof(ctx context.Context, format string, args ...any) {
	levelf(ctx, slog.LevelInfo, format, args...)
}

func Warnf(ctx context.Context, format string, args ...any) {
	levelf(ctx, slog.LevelWarn, format, args...)
}

func Errorf(ctx context.Context, format string, args ...any) {
	levelf(ctx, slog.LevelError, format, args...)
}
