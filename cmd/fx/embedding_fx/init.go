package embedding_fx

import (
	"context"
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"foodbridge/internal/config"
	"foodbridge/internal/repositories"
	"foodbridge/internal/services"
	"foodbridge/pkg/utils"
)

var Module = fx.Provide(
	provideEmbeddingClient, provideEmbeddingRepo, provideMenuIndexer, provideSuggestionService)

// provideEmbeddingClient returns nil when no provider is configured; the
// suggestion service then ranks by rules only.
func provideEmbeddingClient(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger) (utils.EmbeddingClient, error) {
	ec := cfg.Embedding
	switch ec.Provider {
	case "":
		logger.Info("no embedding provider, suggestions use rule ranking")
		return nil, nil
	case "openai":
		if ec.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required for the openai embedding provider")
		}
		return utils.NewOpenAIEmbeddingClient(ec.APIKey, ec.Model), nil
	case "gemini":
		if ec.APIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is required for the gemini embedding provider")
		}
		client, err := utils.NewGeminiEmbeddingClient(context.Background(), ec.APIKey, ec.Model)
		if err != nil {
			return nil, err
		}
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				return client.Close()
			},
		})
		return client, nil
	}
	return nil, fmt.Errorf("unknown embedding provider %q", ec.Provider)
}

func provideEmbeddingRepo(db *gorm.DB) repositories.IMenuEmbeddingRepository {
	return repositories.NewMenuEmbeddingRepository(db)
}

func provideMenuIndexer(embedder utils.EmbeddingClient, repo repositories.IMenuEmbeddingRepository) services.MenuIndexer {
	if embedder == nil {
		return nil
	}
	return services.NewMenuEmbeddingIndexer(embedder, repo)
}

func provideSuggestionService(
	prefRepo repositories.PreferenceRepository,
	menuRepo repositories.MenuRepository,
	accountRepo repositories.AccountRepository,
	embedder utils.EmbeddingClient,
	embeddingRepo repositories.IMenuEmbeddingRepository,
	logger *zap.Logger,
) services.SuggestionServiceInterface {
	return services.NewSuggestionService(prefRepo, menuRepo, accountRepo, embedder, embeddingRepo, logger.Named("suggestions"))
}
