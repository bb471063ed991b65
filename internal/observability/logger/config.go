package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config configura el logger.
type Config struct {
	// Env: "dev" (consola con colores) o "prod" (JSON). Default: "dev".
	Env string

	// Level: "debug", "info", "warn", "error". Default: "info".
	Level string

	// ServiceName y Version se agregan como campos base a todos los logs.
	ServiceName string
	Version     string
}

func build(cfg Config) *zap.Logger {
	level := parseLevel(cfg.Level)

	var (
		l   *zap.Logger
		err error
	)
	if strings.ToLower(cfg.Env) == "prod" {
		l, err = buildProd(level)
	} else {
		l, err = buildDev(level)
	}
	if err != nil {
		l, _ = zap.NewProduction()
	}

	if cfg.ServiceName != "" {
		l = l.With(zap.String("service", cfg.ServiceName))
	}
	if cfg.Version != "" {
		l = l.With(zap.String("version", cfg.Version))
	}
	return l
}

// buildDev: consola legible para desarrollo local.
func buildDev(level zapcore.Level) (*zap.Logger, error) {
	zcfg := zap.NewDevelopmentConfig()
	zcfg.Level = zap.NewAtomicLevelAt(level)
	zcfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	zcfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	zcfg.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
	zcfg.DisableStacktrace = true
	return zcfg.Build(zap.AddCaller(), zap.AddCallerSkip(1))
}

// buildProd: JSON estructurado, stacktrace desde error.
func buildProd(level zapcore.Level) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(level)
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zcfg.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
	return zcfg.Build(
		zap.AddCaller(),
		zap.AddCallerSkip(1),
		zap.AddStacktrace(zapcore.ErrorLevel),
	)
}

func parseLevel(lvl string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(lvl)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
