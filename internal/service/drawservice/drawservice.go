package drawservice

import (
	"context"
	"errors"
	"time"

	"github.com/x67digital/raffle/internal/domain"
	"github.com/x67digital/raffle/internal/notify"
	"github.com/x67digital/raffle/pkg/random"
	"go.uber.org/zap"
)

const recentWinnersLimit = 50

var (
	ErrCompetitionNotFound = errors.New("competition not found")
	ErrAlreadyDrawn        = errors.New("winner already drawn")
	ErrNoEntries           = errors.New("no tickets sold yet")
)

type CompetitionRepo interface {
	FindByIDForUpdate(ctx context.Context, id int) (*domain.Competition, error)
	SetWinner(ctx context.Context, id, userID, ticket int) error
}

type OrderRepo interface {
	FindCompletedByCompetition(ctx context.Context, competitionID int) ([]domain.Order, error)
}

type WinnerRepo interface {
	Create(ctx context.Context, winner *domain.Winner) (*domain.Winner, error)
	ListRecent(ctx context.Context, limit int) ([]domain.Winner, error)
}

type UserRepo interface {
	FindByID(ctx context.Context, id int) (*domain.User, error)
}

type TXManager interface {
	Begin(ctx context.Context, fn func(ctx context.Context) error) error
}

type Notifier interface {
	WinnerDrawn(ctx context.Context, event notify.WinnerDrawnEvent) error
}

type Service struct {
	competitionRepo CompetitionRepo
	orderRepo       OrderRepo
	winnerRepo      WinnerRepo
	userRepo        UserRepo
	txManager       TXManager
	notifier        Notifier
}

func New(competitionRepo CompetitionRepo, orderRepo OrderRepo, winnerRepo WinnerRepo, userRepo UserRepo, txManager TXManager, notifier Notifier) *Service {
	return &Service{
		competitionRepo: competitionRepo,
		orderRepo:       orderRepo,
		winnerRepo:      winnerRepo,
		userRepo:        userRepo,
		txManager:       txManager,
		notifier:        notifier,
	}
}

// entry is a single ticket in the draw pool. A user holding five tickets has
// five entries, which is what makes win probability proportional.
type entry struct {
	userID int
	ticket int
}

// Draw selects one winning ticket uniformly at random among all sold tickets
// and finalizes the competition. The competition row lock plus the winner_id
// IS NULL guard make the transition one-way: a concurrent second draw
// observes ErrAlreadyDrawn.
func (s *Service) Draw(ctx context.Context, competitionID int) (*domain.Winner, error) {
	var (
		winner *domain.Winner
		user   *domain.User
	)
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		comp, err := s.competitionRepo.FindByIDForUpdate(ctx, competitionID)
		if err != nil {
			return err
		}
		if comp == nil {
			return ErrCompetitionNotFound
		}
		if comp.WinnerID != nil {
			return ErrAlreadyDrawn
		}

		orders, err := s.orderRepo.FindCompletedByCompetition(ctx, competitionID)
		if err != nil {
			return err
		}
		entries := expandEntries(orders)
		if len(entries) == 0 {
			return ErrNoEntries
		}

		winning, err := pickEntry(entries)
		if err != nil {
			return err
		}

		user, err = s.userRepo.FindByID(ctx, winning.userID)
		if err != nil {
			return err
		}
		userName := "Anonymous"
		if user != nil {
			userName = user.FullName
		}

		if err := s.competitionRepo.SetWinner(ctx, competitionID, winning.userID, winning.ticket); err != nil {
			return err
		}

		winner = &domain.Winner{
			CompetitionID:    competitionID,
			CompetitionTitle: comp.Title,
			UserID:           winning.userID,
			UserName:         userName,
			WinningTicket:    winning.ticket,
			PrizeValue:       comp.PrizeValue,
		}
		winner, err = s.winnerRepo.Create(ctx, winner)
		return err
	})
	if err != nil {
		return nil, err
	}

	zap.L().Info("winner drawn",
		zap.Int("competitionID", competitionID),
		zap.Int("userID", winner.UserID),
		zap.Int("ticket", winner.WinningTicket),
	)
	s.notifyWinner(ctx, winner, user)
	return winner, nil
}

func expandEntries(orders []domain.Order) []entry {
	var entries []entry
	for _, order := range orders {
		for _, ticket := range order.TicketNumbers {
			entries = append(entries, entry{userID: order.UserID, ticket: ticket})
		}
	}
	return entries
}

// pickEntry draws uniformly with crypto/rand. Predictable PRNGs are off the
// table here: the draw must be unmanipulable.
func pickEntry(entries []entry) (entry, error) {
	i, err := random.Intn(len(entries))
	if err != nil {
		return entry{}, err
	}
	return entries[i], nil
}

// notifyWinner is fire-and-forget; the draw stands even if delivery fails.
func (s *Service) notifyWinner(ctx context.Context, winner *domain.Winner, user *domain.User) {
	if user == nil {
		return
	}
	event := notify.WinnerDrawnEvent{
		CompetitionID:    winner.CompetitionID,
		CompetitionTitle: winner.CompetitionTitle,
		UserID:           winner.UserID,
		Email:            user.Email,
		FullName:         user.FullName,
		WinningTicket:    winner.WinningTicket,
		PrizeValue:       winner.PrizeValue,
		DrawnAt:          winner.DrawnAt.UTC().Format(time.RFC3339),
	}
	if err := s.notifier.WinnerDrawn(ctx, event); err != nil {
		zap.L().Error("failed to publish winner drawn event", zap.Int("competitionID", winner.CompetitionID), zap.Error(err))
	}
}

func (s *Service) Winners(ctx context.Context) ([]domain.Winner, error) {
	winners, err := s.winnerRepo.ListRecent(ctx, recentWinnersLimit)
	if err != nil {
		zap.L().Error("failed to list winners", zap.Error(err))
		return nil, err
	}
	return winners, nil
}
