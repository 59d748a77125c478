package commands

import (
	"context"

	"go.uber.org/zap"

	"github.com/jakechorley/camp-quarters/internal/config"
	"github.com/jakechorley/camp-quarters/pkg/postgres"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg      *config.Config
	Database *postgres.Store
	Logger   *zap.Logger
	Ctx      context.Context
}
