package commands

import (
	"context"

	"go.uber.org/zap"

	"github.com/careops/careshift/internal/config"
	"github.com/careops/careshift/pkg/core/assignment"
	"github.com/careops/careshift/pkg/db"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg     *config.Config
	Store   db.Store
	Manager *assignment.Manager
	Logger  *zap.Logger
	Ctx     context.Context
}
