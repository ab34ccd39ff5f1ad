// internal/logging/logging.go
package logging

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/tamzrod/inspection-station/internal/config"
)

// Service is attached to every entry.
const Service = "inspection-station"

// New builds the process logger. Output goes to stderr.
func New(cfg config.LoggingConfig, station string) (*zap.Logger, error) {
	return newWithWriter(cfg, station, os.Stderr)
}

func newWithWriter(cfg config.LoggingConfig, station string, w io.Writer) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(orDefault(cfg.Level, config.DefaultLogLevel))
	if err != nil {
		return nil, fmt.Errorf("logging: %w", err)
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:      "timestamp",
		LevelKey:     "level",
		NameKey:      "logger",
		MessageKey:   "message",
		EncodeTime:   zapcore.RFC3339NanoTimeEncoder,
		EncodeLevel:  zapcore.LowercaseLevelEncoder,
		EncodeName:   zapcore.FullNameEncoder,
		EncodeCaller: zapcore.ShortCallerEncoder,
	}

	var enc zapcore.Encoder
	switch orDefault(cfg.Format, config.DefaultLogFormat) {
	case "json":
		enc = zapcore.NewJSONEncoder(encoderConfig)
	case "console":
		encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		enc = zapcore.NewConsoleEncoder(encoderConfig)
	default:
		return nil, fmt.Errorf("logging: unknown format %q", cfg.Format)
	}

	core := zapcore.NewCore(enc, zapcore.AddSync(w), level)

	fields := []zap.Field{zap.String("service", Service)}
	if station != "" {
		fields = append(fields, zap.String("station", station))
	}

	return zap.New(core).With(fields...), nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
