package logger

import (
	"log"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LOG_LEVEL_ENV overrides the default 'debug' level e.g. ROLODEX_LOG_LEVEL=warn
const LOG_LEVEL_ENV = "ROLODEX_LOG_LEVEL"

// NewLogger returns a sugared zap logger named after the calling package.
func NewLogger(name string) *zap.SugaredLogger {
	config := zap.NewDevelopmentConfig()
	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder

	if lvl := os.Getenv(LOG_LEVEL_ENV); lvl != "" {
		var level zapcore.Level
		if err := level.UnmarshalText([]byte(lvl)); err == nil {
			config.Level = zap.NewAtomicLevelAt(level)
		}
	}

	logger, err := config.Build()
	if err != nil {
		log.Panic(err)
	}

	// flushes buffer, if any
	defer logger.Sync()

	return logger.Named(name).Sugar()
}
