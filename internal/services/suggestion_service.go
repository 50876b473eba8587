package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"foodbridge/internal/models/db_models"
	"foodbridge/internal/models/response_models"
	"foodbridge/internal/repositories"
	"foodbridge/pkg/utils"
)

const (
	defaultSuggestionLimit = 10
	maxSuggestionLimit     = 50
)

type SuggestionServiceInterface interface {
	SuggestMenu(ctx context.Context, userID uint, limit int) ([]response_models.SuggestionResponse, error)
}

type SuggestionService struct {
	prefRepo      repositories.PreferenceRepository
	menuRepo      repositories.MenuRepository
	accountRepo   repositories.AccountRepository
	embedder      utils.EmbeddingClient
	embeddingRepo repositories.IMenuEmbeddingRepository
	logger        *zap.Logger
}

// NewSuggestionService ranks by embedding similarity when embedder is set,
// and by favorite foods and carbon footprint otherwise.
func NewSuggestionService(
	prefRepo repositories.PreferenceRepository,
	menuRepo repositories.MenuRepository,
	accountRepo repositories.AccountRepository,
	embedder utils.EmbeddingClient,
	embeddingRepo repositories.IMenuEmbeddingRepository,
	logger *zap.Logger,
) SuggestionServiceInterface {
	return &SuggestionService{
		prefRepo:      prefRepo,
		menuRepo:      menuRepo,
		accountRepo:   accountRepo,
		embedder:      embedder,
		embeddingRepo: embeddingRepo,
		logger:        logger,
	}
}

type dietFilter struct {
	vegan      bool
	vegetarian bool
}

func newDietFilter(restrictions []string) dietFilter {
	var f dietFilter
	for _, r := range restrictions {
		switch strings.ToLower(strings.TrimSpace(r)) {
		case "vegan":
			f.vegan = true
		case "vegetarian":
			f.vegetarian = true
		}
	}
	return f
}

func (f dietFilter) allows(item db_models.MenuItem) bool {
	if f.vegan {
		return item.IsVegan
	}
	if f.vegetarian {
		return item.IsVegetarian || item.IsVegan
	}
	return true
}

type rankedItem struct {
	item   db_models.MenuItem
	reason string
}

func (s *SuggestionService) SuggestMenu(ctx context.Context, userID uint, limit int) ([]response_models.SuggestionResponse, error) {
	if limit <= 0 {
		limit = defaultSuggestionLimit
	}
	if limit > maxSuggestionLimit {
		limit = maxSuggestionLimit
	}

	prefs, err := s.prefRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, dbError(err)
	}
	if prefs == nil {
		prefs = &db_models.UserPreferences{UserID: userID}
	}
	diet := newDietFilter(prefs.DietaryRestrictions)

	var ranked []rankedItem
	if s.embedder != nil && len(prefs.FavoriteFoods) > 0 {
		ranked, err = s.rankByEmbedding(ctx, prefs, diet, limit)
		if err != nil {
			s.logger.Warn("embedding suggestions failed, using rules", zap.Uint("user_id", userID), zap.Error(err))
			ranked = nil
		}
	}
	if len(ranked) == 0 {
		ranked, err = s.rankByRules(ctx, prefs, diet)
		if err != nil {
			return nil, err
		}
	}
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	restaurantIDs := make([]uint, 0, len(ranked))
	for _, r := range ranked {
		restaurantIDs = append(restaurantIDs, r.item.RestaurantID)
	}
	names, err := s.accountRepo.FindNamesByIds(ctx, restaurantIDs)
	if err != nil {
		return nil, dbError(err)
	}

	out := make([]response_models.SuggestionResponse, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, response_models.SuggestionResponse{
			MenuItemID:      r.item.ID,
			RestaurantID:    r.item.RestaurantID,
			RestaurantName:  names[r.item.RestaurantID],
			Name:            r.item.Name,
			Price:           r.item.Price,
			IsVegetarian:    r.item.IsVegetarian,
			IsVegan:         r.item.IsVegan,
			CarbonFootprint: r.item.CarbonFootprint,
			Reason:          r.reason,
		})
	}
	return out, nil
}

func (s *SuggestionService) rankByEmbedding(ctx context.Context, prefs *db_models.UserPreferences, diet dietFilter, limit int) ([]rankedItem, error) {
	vector, err := s.embedder.Embed(ctx, preferenceText(prefs))
	if err != nil {
		return nil, err
	}

	// over-fetch so the diet filter still leaves enough
	scored, err := s.embeddingRepo.Nearest(ctx, vector, s.embedder.Model(), limit*4)
	if err != nil {
		return nil, err
	}
	if len(scored) == 0 {
		return nil, nil
	}

	ids := make([]uint, len(scored))
	for i, sc := range scored {
		ids[i] = sc.MenuItemID
	}
	items, err := s.menuRepo.ListByIds(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]db_models.MenuItem, len(items))
	for _, it := range items {
		byID[it.ID] = it
	}

	var ranked []rankedItem
	for _, sc := range scored {
		item, ok := byID[sc.MenuItemID]
		if !ok || !item.IsAvailable || !diet.allows(item) {
			continue
		}
		ranked = append(ranked, rankedItem{
			item:   item,
			reason: fmt.Sprintf("similar to your favorites (%.2f)", sc.Similarity),
		})
	}
	return ranked, nil
}

func (s *SuggestionService) rankByRules(ctx context.Context, prefs *db_models.UserPreferences, diet dietFilter) ([]rankedItem, error) {
	items, err := s.menuRepo.ListAvailable(ctx)
	if err != nil {
		return nil, dbError(err)
	}

	type scoredItem struct {
		rankedItem
		matches int
	}
	var candidates []scoredItem
	for _, item := range items {
		if !diet.allows(item) {
			continue
		}
		matched := matchFavorites(item, prefs.FavoriteFoods)
		reason := "low carbon footprint"
		if len(matched) > 0 {
			reason = "matches " + strings.Join(matched, ", ")
		}
		candidates = append(candidates, scoredItem{
			rankedItem: rankedItem{item: item, reason: reason},
			matches:    len(matched),
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.matches != b.matches {
			return a.matches > b.matches
		}
		if a.item.CarbonFootprint != b.item.CarbonFootprint {
			return a.item.CarbonFootprint < b.item.CarbonFootprint
		}
		return a.item.ID < b.item.ID
	})

	ranked := make([]rankedItem, len(candidates))
	for i, c := range candidates {
		ranked[i] = c.rankedItem
	}
	return ranked, nil
}

func matchFavorites(item db_models.MenuItem, favorites []string) []string {
	text := strings.ToLower(item.Name + " " + item.Description)
	var matched []string
	for _, f := range favorites {
		f = strings.ToLower(strings.TrimSpace(f))
		if f != "" && strings.Contains(text, f) {
			matched = append(matched, f)
		}
	}
	return matched
}

func preferenceText(prefs *db_models.UserPreferences) string {
	var b strings.Builder
	b.WriteString("Favorite foods: ")
	b.WriteString(strings.Join(prefs.FavoriteFoods, ", "))
	if len(prefs.DietaryRestrictions) > 0 {
		b.WriteString(". Dietary restrictions: ")
		b.WriteString(strings.Join(prefs.DietaryRestrictions, ", "))
	}
	return b.String()
}

func menuItemText(item *db_models.MenuItem) string {
	parts := []string{item.Name}
	if item.Description != "" {
		parts = append(parts, item.Description)
	}
	if item.IsVegan {
		parts = append(parts, "vegan")
	} else if item.IsVegetarian {
		parts = append(parts, "vegetarian")
	}
	return strings.Join(parts, ". ")
}

// MenuEmbeddingIndexer stores one embedding per available menu item.
type MenuEmbeddingIndexer struct {
	embedder utils.EmbeddingClient
	repo     repositories.IMenuEmbeddingRepository
}

func NewMenuEmbeddingIndexer(embedder utils.EmbeddingClient, repo repositories.IMenuEmbeddingRepository) *MenuEmbeddingIndexer {
	return &MenuEmbeddingIndexer{embedder: embedder, repo: repo}
}

func (m *MenuEmbeddingIndexer) Refresh(ctx context.Context, item *db_models.MenuItem) error {
	if !item.IsAvailable {
		return m.repo.Delete(ctx, item.ID)
	}

	vector, err := m.embedder.Embed(ctx, menuItemText(item))
	if err != nil {
		return err
	}
	return m.repo.Upsert(ctx, &db_models.MenuEmbedding{
		MenuItemID:   item.ID,
		RestaurantID: item.RestaurantID,
		Model:        m.embedder.Model(),
		Embedding:    vector,
	})
}

func (m *MenuEmbeddingIndexer) Remove(ctx context.Context, id uint) error {
	return m.repo.Delete(ctx, id)
}
