package telemetry

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"gopkg.in/natefinch/lumberjack.v2"
)

var countGauge, _ = otel.Meter("iidxbot.telemetry").Int64Gauge("report_count")

// SlogAPI implements API using the log/slog package. Counts also go to the
// global otel meter.
type SlogAPI struct{}

func (SlogAPI) formatParams(out *[]any, params []any) {
	for i, p := range params {
		*out = append(
			*out,
			fmt.Sprintf("params.%d", i),
			p,
		)
	}
}

func (s SlogAPI) ReportBroken(id string, params ...any) {
	remainingPairs := []any{"id", id}
	s.formatParams(&remainingPairs, params)
	slog.Error("broken component", remainingPairs...)
}

func (s SlogAPI) ReportWarning(id string, params ...any) {
	remainingPairs := []any{"id", id}
	s.formatParams(&remainingPairs, params)
	slog.Warn("warning", remainingPairs...)
}

func (s SlogAPI) ReportDebug(message string, params ...any) {
	remainingPairs := []any{}
	s.formatParams(&remainingPairs, params)
	slog.Debug(message, remainingPairs...)
}

func (s SlogAPI) ReportCount(id string, count int64) {
	slog.Debug("count", "id", id, "n", count)
	countGauge.Record(context.Background(), count, metric.WithAttributes(attribute.String("id", id)))
}

// LogOptions controls where InitSlog writes.
type LogOptions struct {
	// Level is one of debug, info, warn, error. Defaults to info.
	Level string
	// File is the log file, rotated by size. Empty means stderr only.
	File string
	// MaxSizeMB is the size at which the log file rotates.
	MaxSizeMB int
	// MaxBackups is how many rotated files are kept.
	MaxBackups int
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimPrefix(level, "logging.")) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// InitSlog installs the default slog logger. The returned closer flushes and
// closes the log file, if there is one.
func InitSlog(opts LogOptions) io.Closer {
	var out io.Writer = os.Stderr
	var closer io.Closer = nopCloser{}

	if opts.File != "" {
		file := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
		}
		out = io.MultiWriter(os.Stderr, file)
		closer = file
	}

	handler := slog.NewTextHandler(out, &slog.HandlerOptions{
		Level: parseLevel(opts.Level),
	})
	slog.SetDefault(slog.New(handler))

	return closer
}
