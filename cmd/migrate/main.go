package main

import (
	"github.com/chickenviken/backend/internal/infrastructure/config"
	"github.com/chickenviken/backend/internal/infrastructure/logger"
	"github.com/chickenviken/backend/internal/infrastructure/persistence"
	"go.uber.org/zap"
)

// Applies the schema to both namespace databases and exits.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.NewForEnvironment(cfg.App.Env)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	namespaces, err := persistence.NewNamespaces(cfg)
	if err != nil {
		log.Fatal("Failed to connect to databases", zap.Error(err))
	}
	defer namespaces.Close()

	if err := namespaces.Migrate(); err != nil {
		log.Fatal("Migration failed", zap.Error(err))
	}

	log.Info("Migrations applied",
		zap.String("admin_db", cfg.DatabaseAdmin.DBName),
		zap.String("user_db", cfg.DatabaseUser.DBName),
	)
}
