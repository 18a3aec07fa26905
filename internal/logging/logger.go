package logging

import (
	"fmt"

	"github.com/meikuraledutech/procgraph"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New creates the application logger. It writes to stderr so command output
// on stdout stays machine readable. format is "json" or "console".
func New(level, format string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("logging: %w", err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.EncoderConfig.TimeKey = "time"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	switch format {
	case "", "json":
		cfg.Encoding = "json"
	case "console":
		cfg.Encoding = "console"
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	default:
		return nil, fmt.Errorf("logging: unknown format %q", format)
	}

	return cfg.Build()
}

// NewNop returns a no-op logger.
func NewNop() *zap.Logger {
	return zap.NewNop()
}

// Err logs an error under the "err" key.
func Err(err error) zap.Field {
	return zap.NamedError("err", err)
}

// Skipped logs every link a resolution pass dropped, at debug level.
func Skipped(log *zap.Logger, processID string, skipped []procgraph.SkippedLink) {
	for _, s := range skipped {
		log.Debug("link skipped",
			zap.String("process", processID),
			zap.String("source", s.SourceID),
			zap.String("link", s.LinkID),
			zap.Int("ordinal", s.Ordinal),
			zap.String("target", s.TargetID),
			zap.String("reason", string(s.Reason)),
		)
	}
}
