package competitionservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/x67digital/raffle/internal/cache"
	"github.com/x67digital/raffle/internal/domain"
	"go.uber.org/zap"
)

var ErrCompetitionNotFound = errors.New("competition not found")

type CompetitionRepo interface {
	FindByID(ctx context.Context, id int) (*domain.Competition, error)
	List(ctx context.Context, onlyVisible bool) ([]domain.Competition, error)
	Create(ctx context.Context, c *domain.Competition) (*domain.Competition, error)
	Update(ctx context.Context, c *domain.Competition) (*domain.Competition, error)
	Delete(ctx context.Context, id int) error
	Count(ctx context.Context) (total int, visible int, err error)
}

type OrderRepo interface {
	FindAll(ctx context.Context) ([]domain.Order, error)
	CompletedStats(ctx context.Context) (count int, revenue float64, err error)
	TicketsSoldSince(ctx context.Context, since time.Time) (int, error)
}

type UserRepo interface {
	List(ctx context.Context) ([]domain.User, error)
	Count(ctx context.Context) (int, error)
}

type Service struct {
	competitionRepo CompetitionRepo
	orderRepo       OrderRepo
	userRepo        UserRepo
	cache           *cache.Cache
}

func New(competitionRepo CompetitionRepo, orderRepo OrderRepo, userRepo UserRepo, listingCache *cache.Cache) *Service {
	return &Service{
		competitionRepo: competitionRepo,
		orderRepo:       orderRepo,
		userRepo:        userRepo,
		cache:           listingCache,
	}
}

// List returns visible competitions, optionally filtered by derived status
// and category. Status is computed at read time, so a filter on "live" can
// see a different set minute to minute without any stored state changing.
func (s *Service) List(ctx context.Context, status, category string) ([]domain.Competition, error) {
	key := fmt.Sprintf("%slist:%s:%s", cache.ListingPrefix, status, category)
	var cached []domain.Competition
	if s.cache.GetJSON(ctx, key, &cached) {
		return cached, nil
	}

	comps, err := s.competitionRepo.List(ctx, true)
	if err != nil {
		zap.L().Error("failed to list competitions", zap.Error(err))
		return nil, err
	}

	now := time.Now()
	filtered := make([]domain.Competition, 0, len(comps))
	for _, comp := range comps {
		if status != "" && comp.Status(now) != status {
			continue
		}
		if category != "" && comp.Category != category {
			continue
		}
		filtered = append(filtered, comp)
	}

	s.cache.SetJSON(ctx, key, filtered)
	return filtered, nil
}

// Featured returns featured competitions still open for purchase.
func (s *Service) Featured(ctx context.Context) ([]domain.Competition, error) {
	key := cache.ListingPrefix + "featured"
	var cached []domain.Competition
	if s.cache.GetJSON(ctx, key, &cached) {
		return cached, nil
	}

	comps, err := s.competitionRepo.List(ctx, true)
	if err != nil {
		zap.L().Error("failed to list competitions", zap.Error(err))
		return nil, err
	}

	now := time.Now()
	featured := make([]domain.Competition, 0)
	for _, comp := range comps {
		if comp.Featured && comp.OpenForPurchase(now) {
			featured = append(featured, comp)
		}
	}

	s.cache.SetJSON(ctx, key, featured)
	return featured, nil
}

func (s *Service) Get(ctx context.Context, id int) (*domain.Competition, error) {
	comp, err := s.competitionRepo.FindByID(ctx, id)
	if err != nil {
		zap.L().Error("failed to get competition", zap.Error(err))
		return nil, err
	}
	if comp == nil {
		return nil, ErrCompetitionNotFound
	}
	return comp, nil
}

func (s *Service) ListAll(ctx context.Context) ([]domain.Competition, error) {
	return s.competitionRepo.List(ctx, false)
}

func (s *Service) Create(ctx context.Context, comp *domain.Competition) (*domain.Competition, error) {
	created, err := s.competitionRepo.Create(ctx, comp)
	if err != nil {
		zap.L().Error("failed to create competition", zap.Error(err))
		return nil, err
	}
	s.cache.DeletePrefix(ctx, cache.ListingPrefix)
	zap.L().Info("competition created", zap.Int("competitionID", created.ID), zap.String("title", created.Title))
	return created, nil
}

func (s *Service) Update(ctx context.Context, comp *domain.Competition) (*domain.Competition, error) {
	updated, err := s.competitionRepo.Update(ctx, comp)
	if err != nil {
		zap.L().Error("failed to update competition", zap.Error(err))
		return nil, err
	}
	if updated == nil {
		return nil, ErrCompetitionNotFound
	}
	s.cache.DeletePrefix(ctx, cache.ListingPrefix)
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id int) error {
	if err := s.competitionRepo.Delete(ctx, id); err != nil {
		zap.L().Error("failed to delete competition", zap.Error(err))
		return err
	}
	s.cache.DeletePrefix(ctx, cache.ListingPrefix)
	return nil
}

func (s *Service) ListOrders(ctx context.Context) ([]domain.Order, error) {
	return s.orderRepo.FindAll(ctx)
}

func (s *Service) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.userRepo.List(ctx)
}

func (s *Service) Stats(ctx context.Context) (*domain.AdminStats, error) {
	users, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	total, visible, err := s.competitionRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	orders, revenue, err := s.orderRepo.CompletedStats(ctx)
	if err != nil {
		return nil, err
	}
	todayStart := time.Now().UTC().Truncate(24 * time.Hour)
	soldToday, err := s.orderRepo.TicketsSoldSince(ctx, todayStart)
	if err != nil {
		return nil, err
	}

	return &domain.AdminStats{
		TotalUsers:         users,
		TotalCompetitions:  total,
		ActiveCompetitions: visible,
		TotalOrders:        orders,
		TotalRevenue:       revenue,
		TicketsSoldToday:   soldToday,
	}, nil
}
