package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodbridge/internal/models/db_models"
	"foodbridge/internal/testutil"
)

func newBody(title string) db_models.RequestBody {
	return db_models.RequestBody{
		Title:    title,
		Quantity: 10,
		DueDate:  time.Now().Add(48 * time.Hour).UTC().Truncate(time.Second),
		Status:   db_models.StatusPending,
	}
}

func TestRequestRepository_CreateAndFind(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewRequestRepository(db)
	ctx := context.Background()

	rec := &RequestRecord{
		Kind:          db_models.KindPacking,
		RequestBody:   newBody("Boxes"),
		RequesterID:   4,
		RequesterRole: db_models.RoleNGO,
		AddresseeID:   9,
	}
	require.NoError(t, repo.Create(ctx, rec))
	require.NotZero(t, rec.ID)
	assert.Equal(t, db_models.RolePackingCompany, rec.AddresseeRole)

	got, err := repo.FindById(ctx, db_models.KindPacking, rec.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Boxes", got.Title)
	assert.Equal(t, db_models.RoleNGO, got.RequesterRole)
	assert.Equal(t, uint(9), got.AddresseeID)

	// same id, different table
	missing, err := repo.FindById(ctx, db_models.KindFood, rec.ID)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestRequestRepository_ListByParty(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewRequestRepository(db)
	ctx := context.Background()

	for _, r := range []struct {
		ngo, restaurant uint
		title           string
	}{{7, 3, "a"}, {7, 4, "b"}, {8, 3, "c"}} {
		rec := &RequestRecord{Kind: db_models.KindFood, RequestBody: newBody(r.title), RequesterID: r.ngo, AddresseeID: r.restaurant}
		require.NoError(t, repo.Create(ctx, rec))
	}

	outgoing, err := repo.List(ctx, db_models.KindFood, PartyRequester, 7, "")
	require.NoError(t, err)
	assert.Len(t, outgoing, 2)
	for _, rec := range outgoing {
		assert.Equal(t, uint(7), rec.RequesterID)
		assert.Equal(t, db_models.RoleNGO, rec.RequesterRole)
	}

	incoming, err := repo.List(ctx, db_models.KindFood, PartyAddressee, 3, "")
	require.NoError(t, err)
	require.Len(t, incoming, 2)
	assert.Equal(t, "c", incoming[0].Title, "newest first")

	none, err := repo.List(ctx, db_models.KindFood, PartyAddressee, 3, db_models.StatusAccepted)
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = repo.List(ctx, "bogus", PartyRequester, 7, "")
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestRequestRepository_UpdateStatusIsConditional(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewRequestRepository(db)
	ctx := context.Background()

	rec := &RequestRecord{Kind: db_models.KindPickup, RequestBody: newBody("Surplus bread"), RequesterID: 3, AddresseeID: 7}
	require.NoError(t, repo.Create(ctx, rec))

	ok, err := repo.UpdateStatus(ctx, db_models.KindPickup, rec.ID, db_models.StatusPending, db_models.StatusAccepted)
	require.NoError(t, err)
	assert.True(t, ok)

	// a second tab still thinks the request is pending
	ok, err = repo.UpdateStatus(ctx, db_models.KindPickup, rec.ID, db_models.StatusPending, db_models.StatusRejected)
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := repo.FindById(ctx, db_models.KindPickup, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, db_models.StatusAccepted, got.Status)
}
