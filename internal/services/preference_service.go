package services

import (
	"context"
	"strings"

	"foodbridge/internal/models/db_models"
	"foodbridge/internal/models/request_models"
	"foodbridge/internal/repositories"
)

type PreferenceServiceInterface interface {
	GetPreferences(ctx context.Context, userID uint) (*db_models.UserPreferences, error)
	SavePreferences(ctx context.Context, userID uint, request request_models.PreferencesRequest) (*db_models.UserPreferences, error)
}

type PreferenceService struct {
	prefRepo repositories.PreferenceRepository
}

func NewPreferenceService(prefRepo repositories.PreferenceRepository) PreferenceServiceInterface {
	return &PreferenceService{prefRepo: prefRepo}
}

// GetPreferences returns empty defaults for a user who never saved any.
func (s *PreferenceService) GetPreferences(ctx context.Context, userID uint) (*db_models.UserPreferences, error) {
	prefs, err := s.prefRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, dbError(err)
	}
	if prefs == nil {
		return &db_models.UserPreferences{
			UserID:              userID,
			FavoriteFoods:       db_models.StringList{},
			DietaryRestrictions: db_models.StringList{},
		}, nil
	}
	return prefs, nil
}

func (s *PreferenceService) SavePreferences(ctx context.Context, userID uint, request request_models.PreferencesRequest) (*db_models.UserPreferences, error) {
	prefs := &db_models.UserPreferences{
		UserID:              userID,
		FavoriteFoods:       cleanList(request.FavoriteFoods),
		DietaryRestrictions: cleanList(request.DietaryRestrictions),
		AverageQuantity:     request.AverageQuantity,
		FamilySize:          request.FamilySize,
		PrefersAC:           request.PrefersAC,
	}
	if err := s.prefRepo.Upsert(ctx, prefs); err != nil {
		return nil, dbError(err)
	}
	// re-read so an update keeps the original created_at
	return s.GetPreferences(ctx, userID)
}

// cleanList trims entries and drops blanks and case-insensitive repeats.
func cleanList(in []string) db_models.StringList {
	out := make(db_models.StringList, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, v := range in {
		v = strings.TrimSpace(v)
		key := strings.ToLower(v)
		if v == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, v)
	}
	return out
}
