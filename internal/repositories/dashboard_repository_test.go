package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodbridge/internal/models/db_models"
	"foodbridge/internal/testutil"
)

func TestDashboardRepository_Counts(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewDashboardRepository(db)
	requests := NewRequestRepository(db)
	ctx := context.Background()

	testutil.CreateAccount(t, db, "R", "r@x.com", "secret", db_models.RoleRestaurant)
	testutil.CreateAccount(t, db, "N1", "n1@x.com", "secret", db_models.RoleNGO)
	testutil.CreateAccount(t, db, "N2", "n2@x.com", "secret", db_models.RoleNGO)

	byRole, err := repo.CountAccountsByRole(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), byRole[db_models.RoleRestaurant])
	assert.Equal(t, int64(2), byRole[db_models.RoleNGO])

	for i := 0; i < 3; i++ {
		require.NoError(t, requests.Create(ctx, &RequestRecord{Kind: db_models.KindFood, RequestBody: newBody("x"), RequesterID: 2, AddresseeID: 1}))
	}
	_, err = requests.UpdateStatus(ctx, db_models.KindFood, 1, db_models.StatusPending, db_models.StatusRejected)
	require.NoError(t, err)

	byStatus, err := repo.CountRequestsByStatus(ctx, db_models.KindFood)
	require.NoError(t, err)
	assert.Equal(t, int64(2), byStatus[db_models.StatusPending])
	assert.Equal(t, int64(1), byStatus[db_models.StatusRejected])

	n, err := repo.CountMenuItems(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}
