package mail_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"foodbridge/internal/config"
	"foodbridge/internal/services"
)

var Module = fx.Provide(provideMailService)

func provideMailService(cfg *config.Config, logger *zap.Logger) services.IMailService {
	if !cfg.SMTP.Enabled() {
		logger.Warn("SMTP not configured, mails will only be logged")
		return services.NewLogMailService(logger.Named("mail"))
	}
	return services.NewSMTPMailService(cfg.SMTP)
}
