package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/structviz/pkg/observability"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs the elapsed time of an operation when it completes.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time, e.g. "Rendered 4 frames (12ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// =============================================================================
// Observability
// =============================================================================

// logHooks reports session, render, cache and HTTP events at debug level.
type logHooks struct {
	logger *log.Logger
}

// registerLogHooks routes every observability event to l.
func registerLogHooks(l *log.Logger) {
	h := logHooks{logger: l}
	observability.SetSessionHooks(h)
	observability.SetRenderHooks(h)
	observability.SetCacheHooks(h)
	observability.SetHTTPHooks(h)
}

func (h logHooks) OnAction(_ context.Context, structure, action string) {
	h.logger.Debug("action", "structure", structure, "action", action)
}

func (h logHooks) OnActionComplete(_ context.Context, structure, action string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("action failed", "structure", structure, "action", action, "duration", d, "error", err)
		return
	}
	h.logger.Debug("action done", "structure", structure, "action", action, "duration", d)
}

func (h logHooks) OnRenderStart(_ context.Context, structure string) {
	h.logger.Debug("render", "structure", structure)
}

func (h logHooks) OnRenderComplete(_ context.Context, structure string, cached bool, d time.Duration, err error) {
	h.logger.Debug("render done", "structure", structure, "cached", cached, "duration", d, "error", err)
}

func (h logHooks) OnSnapshotError(_ context.Context, structure string, err error) {
	h.logger.Warn("malformed snapshot", "structure", structure, "error", err)
}

func (h logHooks) OnCacheHit(_ context.Context, kind string) {
	h.logger.Debug("cache hit", "kind", kind)
}

func (h logHooks) OnCacheMiss(_ context.Context, kind string) {
	h.logger.Debug("cache miss", "kind", kind)
}

func (h logHooks) OnCacheSet(_ context.Context, kind string, size int) {
	h.logger.Debug("cache set", "kind", kind, "bytes", size)
}

func (h logHooks) OnRequest(_ context.Context, method, path string) {
	h.logger.Debug("http request", "method", method, "path", path)
}

func (h logHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	h.logger.Debug("http response", "method", method, "path", path, "status", status, "duration", d)
}
