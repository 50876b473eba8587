package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodbridge/internal/models/db_models"
	"foodbridge/internal/testutil"
)

func TestMenuRepository(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewMenuRepository(db)
	ctx := context.Background()

	soup := &db_models.MenuItem{RestaurantID: 3, Name: "Lentil soup", Price: 4.5, IsVegetarian: true, IsVegan: true, IsAvailable: true}
	stew := &db_models.MenuItem{RestaurantID: 3, Name: "Beef stew", Price: 9.25, IsAvailable: false}
	require.NoError(t, repo.Create(ctx, soup))
	require.NoError(t, repo.Create(ctx, stew))
	require.NoError(t, repo.Create(ctx, &db_models.MenuItem{RestaurantID: 4, Name: "Rice", Price: 1, IsAvailable: true}))

	all, err := repo.ListByRestaurant(ctx, 3, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	available, err := repo.ListByRestaurant(ctx, 3, true)
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, "Lentil soup", available[0].Name)
	assert.InDelta(t, 4.5, available[0].Price, 0.0001)
	assert.False(t, all[1].IsAvailable)

	deleted, err := repo.Delete(ctx, 4, soup.ID)
	require.NoError(t, err)
	assert.False(t, deleted, "restaurant 4 does not own the soup")

	deleted, err = repo.Delete(ctx, 3, soup.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	got, err := repo.FindById(ctx, soup.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}
