package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodbridge/internal/models/db_models"
	"foodbridge/internal/models/request_models"
	"foodbridge/internal/repositories"
	"foodbridge/internal/testutil"
	"foodbridge/pkg/utils"
)

func TestRatingService(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewRatingService(repositories.NewRatingRepository(db), repositories.NewAccountRepository(db))
	ctx := context.Background()

	rest := testutil.CreateAccount(t, db, "Green Fork", "rest@x.com", "secret1", db_models.RoleRestaurant)
	quiet := testutil.CreateAccount(t, db, "Quiet Place", "quiet@x.com", "secret1", db_models.RoleRestaurant)
	alice := testutil.CreateAccount(t, db, "Alice", "alice@x.com", "secret1", db_models.RoleUser)
	bob := testutil.CreateAccount(t, db, "Bob", "bob@x.com", "secret1", db_models.RoleUser)

	_, err := svc.RateRestaurant(ctx, alice.ID, request_models.RateRestaurantRequest{RestaurantID: rest.ID, Rating: 2})
	require.NoError(t, err)
	_, err = svc.RateRestaurant(ctx, alice.ID, request_models.RateRestaurantRequest{RestaurantID: rest.ID, Rating: 4, Review: "Better now"})
	require.NoError(t, err)
	_, err = svc.RateRestaurant(ctx, bob.ID, request_models.RateRestaurantRequest{RestaurantID: rest.ID, Rating: 5})
	require.NoError(t, err)

	t.Run("one rating per user and restaurant", func(t *testing.T) {
		got, err := svc.GetRatings(ctx, rest.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 2, got.Count)
		assert.InDelta(t, 4.5, got.Average, 0.0001)
		require.Len(t, got.Ratings, 2)
	})

	t.Run("rating bounds", func(t *testing.T) {
		_, err := svc.RateRestaurant(ctx, bob.ID, request_models.RateRestaurantRequest{RestaurantID: rest.ID, Rating: 6})
		assert.ErrorIs(t, err, utils.ErrValidation)
	})

	t.Run("only restaurants can be rated", func(t *testing.T) {
		_, err := svc.RateRestaurant(ctx, bob.ID, request_models.RateRestaurantRequest{RestaurantID: alice.ID, Rating: 3})
		assert.ErrorIs(t, err, utils.ErrAccountNotFound)
	})

	t.Run("restaurant list carries summaries", func(t *testing.T) {
		list, total, err := svc.ListRestaurants(ctx, 1, 20)
		require.NoError(t, err)
		assert.EqualValues(t, 2, total)
		require.Len(t, list, 2)
		assert.Equal(t, rest.ID, list[0].ID)
		assert.EqualValues(t, 2, list[0].RatingCount)
		assert.Equal(t, quiet.ID, list[1].ID)
		assert.Zero(t, list[1].RatingCount)
	})
}
