package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodbridge/internal/models/db_models"
	"foodbridge/internal/testutil"
)

func TestPreferenceRepository(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPreferenceRepository(db)
	ctx := context.Background()

	got, err := repo.FindByUser(ctx, 5)
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, repo.Upsert(ctx, &db_models.UserPreferences{
		UserID:              5,
		FavoriteFoods:       db_models.StringList{"dal", "paneer tikka", `say "cheese"`},
		DietaryRestrictions: db_models.StringList{"vegetarian"},
		FamilySize:          4,
	}))
	require.NoError(t, repo.Upsert(ctx, &db_models.UserPreferences{
		UserID:              5,
		FavoriteFoods:       db_models.StringList{"dal", "paneer tikka", `say "cheese"`},
		DietaryRestrictions: db_models.StringList{"vegan"},
		FamilySize:          5,
		PrefersAC:           true,
	}))

	got, err = repo.FindByUser(ctx, 5)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, db_models.StringList{"dal", "paneer tikka", `say "cheese"`}, got.FavoriteFoods)
	assert.Equal(t, db_models.StringList{"vegan"}, got.DietaryRestrictions)
	assert.Equal(t, 5, got.FamilySize)
	assert.True(t, got.PrefersAC)

	var n int64
	require.NoError(t, db.Model(&db_models.UserPreferences{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}
