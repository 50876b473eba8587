package services

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	dbm "foodbridge/internal/models/db_models"
	resp "foodbridge/internal/models/response_models"
	"foodbridge/internal/repositories"
)

type DashboardService interface {
	BuildOverview(ctx context.Context) (*resp.AdminOverview, error)
}

type dashboardService struct {
	repo repositories.DashboardRepository
}

func NewDashboardService(repo repositories.DashboardRepository) DashboardService {
	return &dashboardService{repo: repo}
}

// BuildOverview runs every count concurrently; the first failure cancels
// the rest.
func (s *dashboardService) BuildOverview(ctx context.Context) (*resp.AdminOverview, error) {
	g, gctx := errgroup.WithContext(ctx)

	var (
		byRole    map[dbm.Role]int64
		menuItems int64
		ratings   int64
	)

	// ---------- Core counts ----------
	g.Go(func() error {
		var err error
		byRole, err = s.repo.CountAccountsByRole(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		menuItems, err = s.repo.CountMenuItems(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		ratings, err = s.repo.CountRatings(gctx)
		return err
	})

	// ---------- Requests per kind ----------
	var mu sync.Mutex
	requests := make(map[string]map[string]int64, 3)
	for _, kind := range []dbm.RequestKind{dbm.KindFood, dbm.KindPacking, dbm.KindPickup} {
		kind := kind
		g.Go(func() error {
			counts, err := s.repo.CountRequestsByStatus(gctx, kind)
			if err != nil {
				return err
			}
			perStatus := map[string]int64{
				string(dbm.StatusPending):   0,
				string(dbm.StatusAccepted):  0,
				string(dbm.StatusRejected):  0,
				string(dbm.StatusCompleted): 0,
			}
			for st, n := range counts {
				perStatus[string(st)] = n
			}
			mu.Lock()
			requests[string(kind)] = perStatus
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, dbError(err)
	}

	overview := &resp.AdminOverview{
		AccountsByRole: make(map[string]int64, len(byRole)),
		MenuItems:      menuItems,
		Ratings:        ratings,
		Requests:       requests,
	}
	for role, n := range byRole {
		overview.AccountsByRole[string(role)] = n
		overview.TotalAccounts += n
	}
	return overview, nil
}
