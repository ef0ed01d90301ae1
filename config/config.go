package config

import (
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var (
	DB  *gorm.DB
	Log *zap.Logger
)

// NewLogger builds the process logger. LOG_LEVEL picks the threshold
// (debug, info, warn, error); anything unset or unknown means info.
func NewLogger() *zap.Logger {
	cfg := zap.NewProductionConfig()
	switch os.Getenv("LOG_LEVEL") {
	case "debug":
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	case "warn":
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	case "error":
		cfg.Level = zap.NewAtomicLevelAt(zapcore.ErrorLevel)
	default:
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}
	log, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return log
}

// Connect opens the database named by DB_DSN and keeps the handle in DB.
// Schema migrations are a separate step; callers that serve traffic run
// Migrations right after connecting.
func Connect(log *zap.Logger) error {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Info("no .env file found, using system environment variables")
	}
	Log = log

	dsn := os.Getenv("DB_DSN")
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return err
	}
	DB = db
	return nil
}
