package commands

import (
	"context"

	"go.uber.org/zap"

	"github.com/hbiaou/crop-rotation/internal/config"
	"github.com/hbiaou/crop-rotation/pkg/postgres"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg      *config.Config
	Database *postgres.DB
	Logger   *zap.Logger
	Ctx      context.Context
}
