package ticketservice

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/x67digital/raffle/internal/domain"
	"github.com/x67digital/raffle/internal/notify"
	orderrepo "github.com/x67digital/raffle/internal/repo/order-repo"
	"github.com/x67digital/raffle/pkg/random"
	"go.uber.org/zap"
)

// MaxTicketsPerOrder caps a single purchase.
const MaxTicketsPerOrder = 100

var (
	ErrCompetitionNotFound    = errors.New("competition not found")
	ErrCompetitionUnavailable = errors.New("competition is not available for purchase")
	ErrInsufficientTickets    = errors.New("not enough tickets available")
	ErrQuantityInvalid        = errors.New("invalid ticket quantity")
	ErrOrderNotFound          = errors.New("order not found")
	ErrOrderAlreadyCompleted  = errors.New("order already completed")
	ErrOrderNotRefundable     = errors.New("order is not eligible for refund")
	ErrTicketsTaken           = errors.New("ticket numbers no longer available")
)

type CompetitionRepo interface {
	FindByID(ctx context.Context, id int) (*domain.Competition, error)
	FindByIDForUpdate(ctx context.Context, id int) (*domain.Competition, error)
	AddTicketsSold(ctx context.Context, id int, delta int) error
}

type OrderRepo interface {
	FindByIDForUpdate(ctx context.Context, id int) (*domain.Order, error)
	FindByUserID(ctx context.Context, userID int) ([]domain.Order, error)
	FindCompletedByUserID(ctx context.Context, userID int) ([]domain.Order, error)
	Save(ctx context.Context, order *domain.Order) error
	MarkCompleted(ctx context.Context, id int, paymentID string) error
	MarkRefunded(ctx context.Context, id int) error
	UsedNumbers(ctx context.Context, competitionID int) ([]int, error)
	ClaimTickets(ctx context.Context, competitionID, orderID int, numbers []int) error
	ReleaseTickets(ctx context.Context, orderID int) error
}

type UserRepo interface {
	FindByID(ctx context.Context, id int) (*domain.User, error)
}

type TXManager interface {
	Begin(ctx context.Context, fn func(ctx context.Context) error) error
}

type Notifier interface {
	OrderConfirmed(ctx context.Context, event notify.OrderConfirmedEvent) error
}

type Service struct {
	competitionRepo CompetitionRepo
	orderRepo       OrderRepo
	userRepo        UserRepo
	txManager       TXManager
	notifier        Notifier
}

func New(competitionRepo CompetitionRepo, orderRepo OrderRepo, userRepo UserRepo, txManager TXManager, notifier Notifier) *Service {
	return &Service{
		competitionRepo: competitionRepo,
		orderRepo:       orderRepo,
		userRepo:        userRepo,
		txManager:       txManager,
		notifier:        notifier,
	}
}

// Allocate picks quantity previously-unissued ticket numbers for the
// competition and records a pending order carrying them. The whole
// read-sample-insert sequence runs under the competition row lock, so two
// concurrent allocations for the same competition are serialized and each
// sees a fresh used-number set. tickets_sold is not touched here; numbers
// become permanently consumed only at confirmation.
func (s *Service) Allocate(ctx context.Context, userID, competitionID, quantity int) (*domain.Order, error) {
	if quantity < 1 || quantity > MaxTicketsPerOrder {
		return nil, ErrQuantityInvalid
	}

	var order *domain.Order
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		comp, err := s.competitionRepo.FindByIDForUpdate(ctx, competitionID)
		if err != nil {
			return err
		}
		if comp == nil {
			return ErrCompetitionNotFound
		}
		if !comp.OpenForPurchase(time.Now()) {
			return ErrCompetitionUnavailable
		}
		if quantity > comp.TotalTickets-comp.TicketsSold {
			return ErrInsufficientTickets
		}

		used, err := s.orderRepo.UsedNumbers(ctx, competitionID)
		if err != nil {
			return err
		}
		usedSet := make(map[int]bool, len(used))
		for _, n := range used {
			usedSet[n] = true
		}
		available := make([]int, 0, comp.TotalTickets-len(used))
		for n := 1; n <= comp.TotalTickets; n++ {
			if !usedSet[n] {
				available = append(available, n)
			}
		}
		if len(available) < quantity {
			return ErrInsufficientTickets
		}

		// Uniform over all remaining numbers, not just the first free ones.
		numbers, err := random.Sample(available, quantity)
		if err != nil {
			return err
		}
		sort.Ints(numbers)

		order = &domain.Order{
			UserID:        userID,
			CompetitionID: competitionID,
			TicketNumbers: numbers,
			Quantity:      quantity,
			TotalPrice:    comp.TicketPrice * float64(quantity),
			PaymentStatus: domain.PaymentPending,
		}
		return s.orderRepo.Save(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	zap.L().Info("tickets allocated",
		zap.Int("orderID", order.ID),
		zap.Int("competitionID", competitionID),
		zap.Int("quantity", quantity),
	)
	return order, nil
}

// Confirm completes the order's payment and permanently consumes its ticket
// numbers. Claim insertion, the status flip and the tickets_sold increment
// are one transaction; the unique constraint on claims guarantees that no
// two completed orders of a competition ever share a number, even if their
// pending allocations overlapped.
func (s *Service) Confirm(ctx context.Context, orderID, userID int) (*domain.Order, error) {
	var (
		order *domain.Order
		comp  *domain.Competition
	)
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		var err error
		order, err = s.orderRepo.FindByIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil || order.UserID != userID {
			return ErrOrderNotFound
		}
		if order.PaymentStatus == domain.PaymentCompleted {
			return ErrOrderAlreadyCompleted
		}

		comp, err = s.competitionRepo.FindByIDForUpdate(ctx, order.CompetitionID)
		if err != nil {
			return err
		}
		if comp == nil {
			return ErrCompetitionNotFound
		}

		err = s.orderRepo.ClaimTickets(ctx, order.CompetitionID, order.ID, order.TicketNumbers)
		if errors.Is(err, orderrepo.ErrDuplicateTicket) {
			return ErrTicketsTaken
		}
		if err != nil {
			return err
		}

		ref, err := random.Hex(4)
		if err != nil {
			return err
		}
		paymentID := "viva_" + ref
		if err := s.orderRepo.MarkCompleted(ctx, order.ID, paymentID); err != nil {
			return err
		}
		order.PaymentStatus = domain.PaymentCompleted
		order.PaymentID = &paymentID

		return s.competitionRepo.AddTicketsSold(ctx, order.CompetitionID, order.Quantity)
	})
	if err != nil {
		return nil, err
	}

	s.notifyConfirmed(ctx, order, comp)
	return order, nil
}

// notifyConfirmed is fire-and-forget: a delivery failure never rolls back
// the confirmation.
func (s *Service) notifyConfirmed(ctx context.Context, order *domain.Order, comp *domain.Competition) {
	user, err := s.userRepo.FindByID(ctx, order.UserID)
	if err != nil || user == nil {
		zap.L().Error("can't load user for confirmation notice", zap.Int("userID", order.UserID), zap.Error(err))
		return
	}
	event := notify.OrderConfirmedEvent{
		OrderID:          order.ID,
		UserID:           user.ID,
		Email:            user.Email,
		FullName:         user.FullName,
		CompetitionTitle: comp.Title,
		TicketNumbers:    order.TicketNumbers,
		Quantity:         order.Quantity,
		TotalPrice:       order.TotalPrice,
		ConfirmedAt:      time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.notifier.OrderConfirmed(ctx, event); err != nil {
		zap.L().Error("failed to publish order confirmed event", zap.Int("orderID", order.ID), zap.Error(err))
	}
}

// Refund returns a completed order's money and recycles its ticket numbers:
// releasing the claims makes them eligible for future allocations.
func (s *Service) Refund(ctx context.Context, orderID int) (*domain.Order, error) {
	var order *domain.Order
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		var err error
		order, err = s.orderRepo.FindByIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return ErrOrderNotFound
		}
		if order.PaymentStatus != domain.PaymentCompleted {
			return ErrOrderNotRefundable
		}

		if err := s.orderRepo.ReleaseTickets(ctx, order.ID); err != nil {
			return err
		}
		if err := s.orderRepo.MarkRefunded(ctx, order.ID); err != nil {
			return err
		}
		order.PaymentStatus = domain.PaymentRefunded

		return s.competitionRepo.AddTicketsSold(ctx, order.CompetitionID, -order.Quantity)
	})
	if err != nil {
		return nil, err
	}

	zap.L().Info("order refunded", zap.Int("orderID", order.ID), zap.Int("quantity", order.Quantity))
	return order, nil
}

func (s *Service) GetOrders(ctx context.Context, userID int) ([]domain.Order, error) {
	orders, err := s.orderRepo.FindByUserID(ctx, userID)
	if err != nil {
		zap.L().Error("failed to get orders", zap.Error(err))
		return nil, err
	}
	return orders, nil
}

// GetMyTickets groups a user's completed tickets by competition.
func (s *Service) GetMyTickets(ctx context.Context, userID int) ([]domain.TicketGroup, error) {
	orders, err := s.orderRepo.FindCompletedByUserID(ctx, userID)
	if err != nil {
		zap.L().Error("failed to get completed orders", zap.Error(err))
		return nil, err
	}

	now := time.Now()
	groups := make([]domain.TicketGroup, 0)
	index := make(map[int]int)
	for _, order := range orders {
		i, ok := index[order.CompetitionID]
		if !ok {
			comp, err := s.competitionRepo.FindByID(ctx, order.CompetitionID)
			if err != nil {
				return nil, err
			}
			group := domain.TicketGroup{CompetitionID: order.CompetitionID}
			if comp != nil {
				group.CompetitionTitle = comp.Title
				group.DrawDate = comp.DrawDate
				group.Status = comp.Status(now)
			}
			groups = append(groups, group)
			i = len(groups) - 1
			index[order.CompetitionID] = i
		}
		groups[i].Tickets = append(groups[i].Tickets, order.TicketNumbers...)
	}
	for i := range groups {
		sort.Ints(groups[i].Tickets)
	}
	return groups, nil
}
