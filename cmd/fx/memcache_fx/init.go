package memcache_fx

import (
	"context"
	"time"

	"go.uber.org/fx"

	mem "foodbridge/pkg/memcache"
)

const sweepInterval = time.Minute

var Module = fx.Provide(provideMemcacheClient)

func provideMemcacheClient(lc fx.Lifecycle) mem.TokenStore {
	tokens := mem.NewTokens()
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			tokens.StartJanitor(sweepInterval)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			tokens.Stop()
			return nil
		},
	})
	return tokens
}
