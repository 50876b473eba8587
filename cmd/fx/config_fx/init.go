package config_fx

import (
	"time"

	"go.uber.org/fx"

	"foodbridge/internal/config"
	"foodbridge/pkg/utils"
)

var Module = fx.Provide(
	config.Load, provideTokenIssuer)

func provideTokenIssuer(cfg *config.Config) *utils.TokenIssuer {
	ttl := cfg.SessionTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return utils.NewTokenIssuer(cfg.JWTSecret, ttl)
}
