package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"foodbridge/cmd/fx/account_fx"
	"foodbridge/cmd/fx/config_fx"
	"foodbridge/cmd/fx/controllers_fx"
	"foodbridge/cmd/fx/dashboard"
	"foodbridge/cmd/fx/db_fx"
	"foodbridge/cmd/fx/embedding_fx"
	"foodbridge/cmd/fx/logger_fx"
	"foodbridge/cmd/fx/mail_fx"
	"foodbridge/cmd/fx/memcache_fx"
	"foodbridge/cmd/fx/menu_fx"
	"foodbridge/cmd/fx/preference_fx"
	"foodbridge/cmd/fx/rating_fx"
	"foodbridge/cmd/fx/request_fx"
	"foodbridge/internal/api"
	"foodbridge/internal/config"
	"foodbridge/internal/services"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "foodbridge",
		Short:        "Surplus food, packing and pickup coordination API",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP API",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runServe()
			},
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Create or update the database schema and exit",
			RunE: func(cmd *cobra.Command, args []string) error {
				// db_fx migrates while providing the connection
				return runOnce(cmd.Context(), fx.Invoke(func(*gorm.DB, *zap.Logger) {}), func(logger *zap.Logger) {
					logger.Info("migration finished")
				})
			},
		},
		newCreateAdminCmd(),
	)
	return root
}

func newCreateAdminCmd() *cobra.Command {
	var name, email, password string

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an admin account",
		RunE: func(cmd *cobra.Command, args []string) error {
			var created error
			err := runOnce(cmd.Context(), fx.Invoke(func(svc services.AccountServiceInterface, logger *zap.Logger) {
				account, err := svc.CreateAdmin(context.Background(), name, email, password)
				if err != nil {
					created = err
					return
				}
				logger.Info("admin created", zap.Uint("account_id", account.ID), zap.String("email", account.Email))
			}), nil)
			if err != nil {
				return err
			}
			return created
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "login email")
	cmd.Flags().StringVar(&password, "password", "", "password (at least 6 characters)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func coreModules() fx.Option {
	return fx.Options(
		config_fx.Module,
		logger_fx.Module,
		db_fx.Module,
		memcache_fx.Module,
		mail_fx.Module,
		account_fx.Module,
	)
}

func runServe() error {
	app := fx.New(
		coreModules(),
		embedding_fx.Module,
		menu_fx.Module,
		rating_fx.Module,
		preference_fx.Module,
		request_fx.Module,
		dashboard.Module,
		controllers_fx.Module,

		fx.Provide(api.ProvideRouter),
		fx.Invoke(StartServer),
	)
	if err := app.Err(); err != nil {
		return err
	}

	app.Run()
	return nil
}

// runOnce starts the core graph, runs invoke, and shuts down again.
func runOnce(ctx context.Context, invoke fx.Option, done func(*zap.Logger)) error {
	if ctx == nil {
		ctx = context.Background()
	}

	var logger *zap.Logger
	app := fx.New(
		coreModules(),
		fx.Populate(&logger),
		invoke,
	)
	if err := app.Err(); err != nil {
		return err
	}

	startCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		return err
	}
	if done != nil {
		done(logger)
	}

	stopCtx, cancelStop := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelStop()
	return app.Stop(stopCtx)
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine, cfg *config.Config, logger *zap.Logger) {
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				logger.Info(fmt.Sprintf("Starting HTTP server at :%s", cfg.Port))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Fatal("Failed to start server", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Stopping HTTP server")
			return srv.Shutdown(ctx)
		},
	})
}
