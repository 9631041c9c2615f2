package orderrepo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/x67digital/raffle/internal/domain"
	"github.com/x67digital/raffle/internal/pg"
	"go.uber.org/zap"
)

// ErrDuplicateTicket is returned by ClaimTickets when one of the numbers is
// already claimed for the competition. The unique constraint on ticket_claims
// is what makes completed orders collision-free.
var ErrDuplicateTicket = errors.New("ticket number already claimed")

const orderColumns = `
        id, user_id, competition_id, ticket_numbers, quantity,
        total_price, payment_status, payment_id, created_at`

type Repository struct {
	db        pg.Database
	txManager pg.TXManager
}

func New(db pg.Database, txManager pg.TXManager) *Repository {
	return &Repository{
		db:        db,
		txManager: txManager,
	}
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	err := row.Scan(
		&o.ID, &o.UserID, &o.CompetitionID, &o.TicketNumbers, &o.Quantity,
		&o.TotalPrice, &o.PaymentStatus, &o.PaymentID, &o.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *Repository) FindByID(ctx context.Context, id int) (*domain.Order, error) {
	query := `
        SELECT` + orderColumns + `
        FROM orders
        WHERE id = $1
    `
	order, err := scanOrder(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't find order", zap.Error(err))
		return nil, err
	}
	return order, nil
}

// FindByIDForUpdate locks the order row so a confirm/refund pair or a retried
// confirm cannot apply its transition twice.
func (r *Repository) FindByIDForUpdate(ctx context.Context, id int) (*domain.Order, error) {
	query := `
        SELECT` + orderColumns + `
        FROM orders
        WHERE id = $1
        FOR UPDATE
    `
	order, err := scanOrder(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't lock order", zap.Error(err))
		return nil, err
	}
	return order, nil
}

func (r *Repository) FindByUserID(ctx context.Context, userID int) ([]domain.Order, error) {
	query := `
        SELECT` + orderColumns + `
        FROM orders
        WHERE user_id = $1
        ORDER BY created_at DESC
    `
	return r.queryOrders(ctx, query, userID)
}

func (r *Repository) FindCompletedByUserID(ctx context.Context, userID int) ([]domain.Order, error) {
	query := `
        SELECT` + orderColumns + `
        FROM orders
        WHERE user_id = $1 AND payment_status = 'completed'
        ORDER BY created_at DESC
    `
	return r.queryOrders(ctx, query, userID)
}

func (r *Repository) FindCompletedByCompetition(ctx context.Context, competitionID int) ([]domain.Order, error) {
	query := `
        SELECT` + orderColumns + `
        FROM orders
        WHERE competition_id = $1 AND payment_status = 'completed'
        ORDER BY created_at ASC
    `
	return r.queryOrders(ctx, query, competitionID)
}

func (r *Repository) FindAll(ctx context.Context) ([]domain.Order, error) {
	query := `
        SELECT` + orderColumns + `
        FROM orders
        ORDER BY created_at DESC
    `
	return r.queryOrders(ctx, query)
}

func (r *Repository) queryOrders(ctx context.Context, query string, args ...any) ([]domain.Order, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		zap.L().Error("can't get orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			zap.L().Error("can't scan order row", zap.Error(err))
			return nil, err
		}
		orders = append(orders, *order)
	}
	return orders, nil
}

func (r *Repository) Save(ctx context.Context, order *domain.Order) error {
	query := `
        INSERT INTO orders (user_id, competition_id, ticket_numbers, quantity, total_price, payment_status)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at
    `
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		row := r.db.QueryRow(ctx, query,
			order.UserID, order.CompetitionID, order.TicketNumbers,
			order.Quantity, order.TotalPrice, order.PaymentStatus,
		)
		if err := row.Scan(&order.ID, &order.CreatedAt); err != nil {
			zap.L().Error("can't save order", zap.Error(err))
			return err
		}
		return nil
	})
	return err
}

func (r *Repository) MarkCompleted(ctx context.Context, id int, paymentID string) error {
	query := `
        UPDATE orders
        SET payment_status = 'completed', payment_id = $1
        WHERE id = $2
    `
	_, err := r.db.Exec(ctx, query, paymentID, id)
	if err != nil {
		zap.L().Error("failed to mark order completed", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) MarkRefunded(ctx context.Context, id int) error {
	query := `
        UPDATE orders
        SET payment_status = 'refunded'
        WHERE id = $1
    `
	_, err := r.db.Exec(ctx, query, id)
	if err != nil {
		zap.L().Error("failed to mark order refunded", zap.Error(err))
		return err
	}
	return nil
}

// UsedNumbers returns every ticket number currently claimed for the
// competition, i.e. numbers held by completed orders.
func (r *Repository) UsedNumbers(ctx context.Context, competitionID int) ([]int, error) {
	query := `
        SELECT ticket_number
        FROM ticket_claims
        WHERE competition_id = $1
    `
	rows, err := r.db.Query(ctx, query, competitionID)
	if err != nil {
		zap.L().Error("can't get used ticket numbers", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var numbers []int
	for rows.Next() {
		var n int
		if err := rows.Scan(&n); err != nil {
			zap.L().Error("can't scan ticket number", zap.Error(err))
			return nil, err
		}
		numbers = append(numbers, n)
	}
	return numbers, nil
}

// ClaimTickets inserts one claim row per number. A unique violation means
// some racing order completed with an overlapping number first; that is
// reported as ErrDuplicateTicket so the caller can fail the confirmation.
func (r *Repository) ClaimTickets(ctx context.Context, competitionID, orderID int, numbers []int) error {
	query := `
        INSERT INTO ticket_claims (competition_id, ticket_number, order_id)
        SELECT $1, unnest($2::int[]), $3
    `
	_, err := r.db.Exec(ctx, query, competitionID, numbers, orderID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrDuplicateTicket
		}
		zap.L().Error("can't claim tickets", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) ReleaseTickets(ctx context.Context, orderID int) error {
	query := `
        DELETE FROM ticket_claims
        WHERE order_id = $1
    `
	_, err := r.db.Exec(ctx, query, orderID)
	if err != nil {
		zap.L().Error("can't release tickets", zap.Error(err))
		return err
	}
	return nil
}

// CompletedStats returns the number of completed orders and their revenue.
func (r *Repository) CompletedStats(ctx context.Context) (count int, revenue float64, err error) {
	query := `
        SELECT count(*), coalesce(sum(total_price), 0)
        FROM orders
        WHERE payment_status = 'completed'
    `
	if err = r.db.QueryRow(ctx, query).Scan(&count, &revenue); err != nil {
		zap.L().Error("can't get completed order stats", zap.Error(err))
		return 0, 0, err
	}
	return count, revenue, nil
}

func (r *Repository) TicketsSoldSince(ctx context.Context, since time.Time) (int, error) {
	query := `
        SELECT coalesce(sum(quantity), 0)
        FROM orders
        WHERE payment_status = 'completed' AND created_at >= $1
    `
	var sold int
	if err := r.db.QueryRow(ctx, query, since).Scan(&sold); err != nil {
		zap.L().Error("can't count tickets sold", zap.Error(err))
		return 0, err
	}
	return sold, nil
}
