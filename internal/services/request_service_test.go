package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"foodbridge/internal/models/db_models"
	"foodbridge/internal/models/request_models"
	"foodbridge/internal/repositories"
	"foodbridge/internal/testutil"
	"foodbridge/pkg/utils"
)

type requestFixture struct {
	db     *gorm.DB
	svc    RequestServiceInterface
	repo   repositories.RequestRepository
	mailer *fakeMailer
}

func newRequestFixture(t *testing.T) *requestFixture {
	t.Helper()
	db := testutil.NewDB(t)
	repo := repositories.NewRequestRepository(db)
	mailer := &fakeMailer{}
	return &requestFixture{
		db:     db,
		svc:    NewRequestService(repo, repositories.NewAccountRepository(db), mailer, zap.NewNop()),
		repo:   repo,
		mailer: mailer,
	}
}

func foodRequest(counterparty uint) request_models.CreateRequest {
	return request_models.CreateRequest{
		CounterpartyID: counterparty,
		Title:          "Rice for shelter",
		Description:    "Dinner for 50 people",
		Quantity:       50,
		DueDate:        time.Now().Add(24 * time.Hour),
	}
}

func TestRequestLifecycle_FoodScenario(t *testing.T) {
	f := newRequestFixture(t)
	ctx := context.Background()

	// ids 1..7: restaurant 3, ngo 7
	var restaurant, ngo *db_models.Account
	for i := 1; i <= 7; i++ {
		role := db_models.RoleUser
		switch i {
		case 3:
			role = db_models.RoleRestaurant
		case 7:
			role = db_models.RoleNGO
		}
		acc := testutil.CreateAccount(t, f.db, "Account", "a@x.com", "secret1", role)
		switch i {
		case 3:
			restaurant = acc
		case 7:
			ngo = acc
		}
	}
	require.NoError(t, f.db.Model(restaurant).Update("name", "Green Fork").Error)
	require.EqualValues(t, 3, restaurant.ID)
	require.EqualValues(t, 7, ngo.ID)

	req := foodRequest(3)
	req.Status = "completed"
	created, err := f.svc.CreateRequest(ctx, "food", 7, db_models.RoleNGO, req)
	require.NoError(t, err)
	assert.Equal(t, "pending", created.Status)
	assert.EqualValues(t, 7, created.RequesterID)
	assert.EqualValues(t, 3, created.CounterpartyID)
	assert.Equal(t, 50, created.Quantity)
	assert.ElementsMatch(t, []string{"accepted", "rejected"}, created.ValidNextStates)

	var row db_models.FoodRequest
	require.NoError(t, f.db.First(&row, created.ID).Error)
	assert.EqualValues(t, 7, row.NgoID)
	assert.EqualValues(t, 3, row.RestaurantID)
	assert.Equal(t, db_models.StatusPending, row.Status)

	accepted, err := f.svc.Transition(ctx, "food", created.ID, 3, db_models.RoleRestaurant, db_models.StatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, "accepted", accepted.Status)

	completed, err := f.svc.Transition(ctx, "food", created.ID, 3, db_models.RoleRestaurant, db_models.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, "completed", completed.Status)
	assert.Empty(t, completed.ValidNextStates)

	history, err := f.svc.ListOutgoing(ctx, "food", 7, db_models.RoleNGO, "")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, created.ID, history[0].ID)
	assert.Equal(t, "completed", history[0].Status)
	assert.Equal(t, "Green Fork", history[0].CounterpartyName)

	// one mail to the restaurant on create, two to the ngo on transitions
	assert.Len(t, f.mailer.Sent(), 3)
}

func TestRequestCreate_Validation(t *testing.T) {
	f := newRequestFixture(t)
	ctx := context.Background()
	ngo := testutil.CreateAccount(t, f.db, "Helping Hands", "ngo@x.com", "secret1", db_models.RoleNGO)
	rest := testutil.CreateAccount(t, f.db, "Green Fork", "rest@x.com", "secret1", db_models.RoleRestaurant)
	user := testutil.CreateAccount(t, f.db, "Eve", "eve@x.com", "secret1", db_models.RoleUser)

	t.Run("unknown kind", func(t *testing.T) {
		_, err := f.svc.CreateRequest(ctx, "laundry", ngo.ID, ngo.Role, foodRequest(rest.ID))
		assert.ErrorIs(t, err, utils.ErrValidation)
	})

	t.Run("role without the capability", func(t *testing.T) {
		_, err := f.svc.CreateRequest(ctx, "food", user.ID, user.Role, foodRequest(rest.ID))
		assert.ErrorIs(t, err, utils.ErrForbidden)
	})

	t.Run("counterparty with the wrong role", func(t *testing.T) {
		_, err := f.svc.CreateRequest(ctx, "food", ngo.ID, ngo.Role, foodRequest(user.ID))
		assert.ErrorIs(t, err, utils.ErrCounterpartyNotFound)
	})

	t.Run("requester account is gone or changed role", func(t *testing.T) {
		_, err := f.svc.CreateRequest(ctx, "food", 9999, db_models.RoleNGO, foodRequest(rest.ID))
		assert.ErrorIs(t, err, utils.ErrUnauthorized)
		_, err = f.svc.CreateRequest(ctx, "food", user.ID, db_models.RoleNGO, foodRequest(rest.ID))
		assert.ErrorIs(t, err, utils.ErrUnauthorized)
	})

	t.Run("missing counterparty", func(t *testing.T) {
		_, err := f.svc.CreateRequest(ctx, "food", ngo.ID, ngo.Role, foodRequest(9999))
		assert.ErrorIs(t, err, utils.ErrCounterpartyNotFound)
	})

	t.Run("quantity must be positive", func(t *testing.T) {
		req := foodRequest(rest.ID)
		req.Quantity = 0
		_, err := f.svc.CreateRequest(ctx, "food", ngo.ID, ngo.Role, req)
		assert.ErrorIs(t, err, utils.ErrValidation)
	})

	t.Run("due date must be in the future", func(t *testing.T) {
		req := foodRequest(rest.ID)
		req.DueDate = time.Now().Add(-time.Hour)
		_, err := f.svc.CreateRequest(ctx, "food", ngo.ID, ngo.Role, req)
		assert.ErrorIs(t, err, utils.ErrValidation)
	})

	t.Run("duplicates are not deduplicated", func(t *testing.T) {
		_, err := f.svc.CreateRequest(ctx, "food", ngo.ID, ngo.Role, foodRequest(rest.ID))
		require.NoError(t, err)
		_, err = f.svc.CreateRequest(ctx, "food", ngo.ID, ngo.Role, foodRequest(rest.ID))
		require.NoError(t, err)

		incoming, err := f.svc.ListIncoming(ctx, "food", rest.ID, rest.Role, "pending")
		require.NoError(t, err)
		assert.Len(t, incoming, 2)
	})
}

func TestRequestTransition_Authority(t *testing.T) {
	f := newRequestFixture(t)
	ctx := context.Background()
	ngo := testutil.CreateAccount(t, f.db, "Helping Hands", "ngo@x.com", "secret1", db_models.RoleNGO)
	rest := testutil.CreateAccount(t, f.db, "Green Fork", "rest@x.com", "secret1", db_models.RoleRestaurant)
	other := testutil.CreateAccount(t, f.db, "Blue Plate", "blue@x.com", "secret1", db_models.RoleRestaurant)

	created, err := f.svc.CreateRequest(ctx, "food", ngo.ID, ngo.Role, foodRequest(rest.ID))
	require.NoError(t, err)

	t.Run("requester cannot transition", func(t *testing.T) {
		_, err := f.svc.Transition(ctx, "food", created.ID, ngo.ID, ngo.Role, db_models.StatusAccepted)
		assert.ErrorIs(t, err, utils.ErrForbidden)
	})

	t.Run("another restaurant cannot transition", func(t *testing.T) {
		_, err := f.svc.Transition(ctx, "food", created.ID, other.ID, other.Role, db_models.StatusAccepted)
		assert.ErrorIs(t, err, utils.ErrForbidden)
	})

	t.Run("missing request", func(t *testing.T) {
		_, err := f.svc.Transition(ctx, "food", 9999, rest.ID, rest.Role, db_models.StatusAccepted)
		assert.ErrorIs(t, err, utils.ErrRequestNotFound)
	})

	t.Run("pending cannot complete", func(t *testing.T) {
		_, err := f.svc.Transition(ctx, "food", created.ID, rest.ID, rest.Role, db_models.StatusCompleted)
		assert.ErrorIs(t, err, utils.ErrInvalidTransition)
	})

	t.Run("terminal states stay terminal", func(t *testing.T) {
		_, err := f.svc.Transition(ctx, "food", created.ID, rest.ID, rest.Role, db_models.StatusRejected)
		require.NoError(t, err)

		for _, to := range []db_models.RequestStatus{db_models.StatusPending, db_models.StatusAccepted, db_models.StatusCompleted} {
			_, err := f.svc.Transition(ctx, "food", created.ID, rest.ID, rest.Role, to)
			assert.ErrorIs(t, err, utils.ErrInvalidTransition, "rejected → %s", to)
		}
	})
}

// staleRequestRepo reports the row as pending while the store has moved on.
type staleRequestRepo struct {
	repositories.RequestRepository
}

func (s staleRequestRepo) FindById(ctx context.Context, kind db_models.RequestKind, id uint) (*repositories.RequestRecord, error) {
	rec, err := s.RequestRepository.FindById(ctx, kind, id)
	if rec != nil {
		rec.Status = db_models.StatusPending
	}
	return rec, err
}

func TestRequestTransition_StaleWriteConflicts(t *testing.T) {
	f := newRequestFixture(t)
	ctx := context.Background()
	ngo := testutil.CreateAccount(t, f.db, "Helping Hands", "ngo@x.com", "secret1", db_models.RoleNGO)
	rest := testutil.CreateAccount(t, f.db, "Green Fork", "rest@x.com", "secret1", db_models.RoleRestaurant)

	created, err := f.svc.CreateRequest(ctx, "food", ngo.ID, ngo.Role, foodRequest(rest.ID))
	require.NoError(t, err)
	_, err = f.svc.Transition(ctx, "food", created.ID, rest.ID, rest.Role, db_models.StatusRejected)
	require.NoError(t, err)

	stale := NewRequestService(staleRequestRepo{f.repo}, repositories.NewAccountRepository(f.db), f.mailer, zap.NewNop())
	_, err = stale.Transition(ctx, "food", created.ID, rest.ID, rest.Role, db_models.StatusAccepted)
	assert.ErrorIs(t, err, utils.ErrStatusConflict)

	rec, err := f.repo.FindById(ctx, db_models.KindFood, created.ID)
	require.NoError(t, err)
	assert.Equal(t, db_models.StatusRejected, rec.Status)
}

func TestRequestKinds_PackingAndPickup(t *testing.T) {
	f := newRequestFixture(t)
	ctx := context.Background()
	ngo := testutil.CreateAccount(t, f.db, "Helping Hands", "ngo@x.com", "secret1", db_models.RoleNGO)
	rest := testutil.CreateAccount(t, f.db, "Green Fork", "rest@x.com", "secret1", db_models.RoleRestaurant)
	packer := testutil.CreateAccount(t, f.db, "BoxCo", "box@x.com", "secret1", db_models.RolePackingCompany)

	packing, err := f.svc.CreateRequest(ctx, "packing", ngo.ID, ngo.Role, foodRequest(packer.ID))
	require.NoError(t, err)
	assert.Equal(t, "ngo", packing.RequesterRole)
	assert.Equal(t, "packing_company", packing.CounterpartyRole)

	_, err = f.svc.CreateRequest(ctx, "packing", rest.ID, rest.Role, foodRequest(packer.ID))
	require.NoError(t, err)

	incoming, err := f.svc.ListIncoming(ctx, "packing", packer.ID, packer.Role, "")
	require.NoError(t, err)
	require.Len(t, incoming, 2)
	assert.Equal(t, "Green Fork", incoming[0].RequesterName, "newest first")

	_, err = f.svc.Transition(ctx, "packing", packing.ID, packer.ID, packer.Role, db_models.StatusAccepted)
	require.NoError(t, err)

	pickup, err := f.svc.CreateRequest(ctx, "pickup", rest.ID, rest.Role, foodRequest(ngo.ID))
	require.NoError(t, err)

	_, err = f.svc.ListIncoming(ctx, "pickup", rest.ID, rest.Role, "")
	assert.ErrorIs(t, err, utils.ErrForbidden)

	accepted, err := f.svc.Transition(ctx, "pickup", pickup.ID, ngo.ID, ngo.Role, db_models.StatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, "Helping Hands", accepted.CounterpartyName)

	filtered, err := f.svc.ListOutgoing(ctx, "pickup", rest.ID, rest.Role, "approved")
	require.NoError(t, err)
	assert.Len(t, filtered, 1)

	_, err = f.svc.ListOutgoing(ctx, "pickup", rest.ID, rest.Role, "lost")
	assert.ErrorIs(t, err, utils.ErrValidation)
}

func TestRequestNotifyFailureDoesNotFail(t *testing.T) {
	f := newRequestFixture(t)
	f.mailer.err = assert.AnError
	ngo := testutil.CreateAccount(t, f.db, "Helping Hands", "ngo@x.com", "secret1", db_models.RoleNGO)
	rest := testutil.CreateAccount(t, f.db, "Green Fork", "rest@x.com", "secret1", db_models.RoleRestaurant)

	_, err := f.svc.CreateRequest(context.Background(), "food", ngo.ID, ngo.Role, foodRequest(rest.ID))
	assert.NoError(t, err)
}

func TestRequestLifecycleDescription(t *testing.T) {
	f := newRequestFixture(t)
	lc := f.svc.Lifecycle()

	assert.Equal(t, "pending", lc.Initial)
	require.Len(t, lc.Statuses, 4)

	byStatus := make(map[string]bool, len(lc.Statuses))
	for _, st := range lc.Statuses {
		byStatus[st.Status] = st.Terminal
	}
	assert.Equal(t, map[string]bool{
		"pending": false, "accepted": false, "rejected": true, "completed": true,
	}, byStatus)

	actions := make(map[string]string)
	for _, tr := range lc.Transitions {
		actions[tr.From+">"+tr.To] = tr.Action
		assert.NotEqual(t, "pending", tr.To)
	}
	assert.Equal(t, map[string]string{
		"pending>accepted":   "accept",
		"pending>rejected":   "reject",
		"accepted>completed": "complete",
	}, actions)
}
