package logger

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/aliskhannn/kids-number-trainer-bot/internal/config"
)

const appName = "kids-number-trainer-bot"

// New builds a JSON logger in production and a console logger elsewhere.
// Every entry carries the application and environment names.
func New(cfg *config.Config) (*zap.Logger, error) {
	zcfg := zap.NewDevelopmentConfig()
	if cfg.Env == "production" {
		zcfg = zap.NewProductionConfig()
	}

	zcfg.InitialFields = map[string]any{
		"app": appName,
		"env": cfg.Env,
	}

	lg, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	return lg, nil
}
