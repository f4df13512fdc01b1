package main

import (
	"time"

	"github.com/DominicBeniamin/brewcode-sub000/config"
	"github.com/DominicBeniamin/brewcode-sub000/internal/store"
	"github.com/DominicBeniamin/brewcode-sub000/pkg/database/postgres"
	"github.com/DominicBeniamin/brewcode-sub000/pkg/database/sqlite"
	"github.com/DominicBeniamin/brewcode-sub000/pkg/logger"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load() // Load .env file if it exists
	cfg := config.LoadEnv()

	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     cfg.AppEnv != "production",
		Encoding:          cfg.Logger.Encoding,
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}
	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	var db *sqlx.DB
	var err error
	switch cfg.Store.Driver {
	case "postgres":
		db, err = postgres.NewPostgres(&postgres.Config{
			Host:            cfg.Postgres.Host,
			Port:            cfg.Postgres.Port,
			User:            cfg.Postgres.User,
			Password:        cfg.Postgres.Password,
			DBName:          cfg.Postgres.DBName,
			SSLMode:         cfg.Postgres.SSLMode,
			MaxOpenConns:    cfg.Postgres.MaxOpenConns,
			MaxIdleConns:    cfg.Postgres.MaxIdleConns,
			ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
			ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
		})
	default:
		db, err = sqlite.NewSQLite(cfg.SQLite.Path)
	}
	if err != nil {
		appLogger.Fatal("could not connect to database", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("connected to database", zap.String("driver", cfg.Store.Driver))

	if err := store.Migrate(db); err != nil {
		appLogger.Fatal("migration failed", zap.Error(err))
	}
	appLogger.Info("schema up to date")
}
