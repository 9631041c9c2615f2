package competitionrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/x67digital/raffle/internal/domain"
	"github.com/x67digital/raffle/internal/pg"
	"go.uber.org/zap"
)

const competitionColumns = `
        id, title, description, category, prize_value, ticket_price,
        total_tickets, tickets_sold, draw_date, image_url, featured,
        is_visible, winner_id, winner_ticket, created_at`

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

func scanCompetition(row pgx.Row) (*domain.Competition, error) {
	var c domain.Competition
	err := row.Scan(
		&c.ID, &c.Title, &c.Description, &c.Category, &c.PrizeValue, &c.TicketPrice,
		&c.TotalTickets, &c.TicketsSold, &c.DrawDate, &c.ImageURL, &c.Featured,
		&c.IsVisible, &c.WinnerID, &c.WinnerTicket, &c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *Repository) FindByID(ctx context.Context, id int) (*domain.Competition, error) {
	query := `
        SELECT` + competitionColumns + `
        FROM competitions
        WHERE id = $1
    `
	comp, err := scanCompetition(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't find competition", zap.Error(err))
		return nil, err
	}
	return comp, nil
}

// FindByIDForUpdate locks the competition row for the rest of the enclosing
// transaction. This is the per-competition serialization point for ticket
// allocation, confirmation, refund and the draw.
func (r *Repository) FindByIDForUpdate(ctx context.Context, id int) (*domain.Competition, error) {
	query := `
        SELECT` + competitionColumns + `
        FROM competitions
        WHERE id = $1
        FOR UPDATE
    `
	comp, err := scanCompetition(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't lock competition", zap.Error(err))
		return nil, err
	}
	return comp, nil
}

func (r *Repository) List(ctx context.Context, onlyVisible bool) ([]domain.Competition, error) {
	query := `
        SELECT` + competitionColumns + `
        FROM competitions
        WHERE is_visible = true OR $1 = false
        ORDER BY created_at DESC
    `
	rows, err := r.db.Query(ctx, query, onlyVisible)
	if err != nil {
		zap.L().Error("can't list competitions", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var comps []domain.Competition
	for rows.Next() {
		comp, err := scanCompetition(rows)
		if err != nil {
			zap.L().Error("can't scan competition row", zap.Error(err))
			return nil, err
		}
		comps = append(comps, *comp)
	}
	return comps, nil
}

func (r *Repository) Create(ctx context.Context, c *domain.Competition) (*domain.Competition, error) {
	query := `
        INSERT INTO competitions (title, description, category, prize_value, ticket_price,
                                  total_tickets, draw_date, image_url, featured, is_visible)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        RETURNING` + competitionColumns + `
    `
	created, err := scanCompetition(r.db.QueryRow(ctx, query,
		c.Title, c.Description, c.Category, c.PrizeValue, c.TicketPrice,
		c.TotalTickets, c.DrawDate, c.ImageURL, c.Featured, c.IsVisible,
	))
	if err != nil {
		zap.L().Error("can't create competition", zap.Error(err))
		return nil, err
	}
	return created, nil
}

func (r *Repository) Update(ctx context.Context, c *domain.Competition) (*domain.Competition, error) {
	query := `
        UPDATE competitions
        SET title = $1, description = $2, category = $3, prize_value = $4,
            ticket_price = $5, total_tickets = $6, draw_date = $7,
            image_url = $8, featured = $9, is_visible = $10
        WHERE id = $11
        RETURNING` + competitionColumns + `
    `
	var updated *domain.Competition
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		var err error
		updated, err = scanCompetition(r.db.QueryRow(ctx, query,
			c.Title, c.Description, c.Category, c.PrizeValue, c.TicketPrice,
			c.TotalTickets, c.DrawDate, c.ImageURL, c.Featured, c.IsVisible, c.ID,
		))
		if err != nil {
			zap.L().Error("can't update competition", zap.Error(err))
			return err
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return updated, nil
}

func (r *Repository) Delete(ctx context.Context, id int) error {
	query := `
        DELETE FROM competitions
        WHERE id = $1
    `
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		tag, err := r.db.Exec(ctx, query, id)
		if err != nil {
			zap.L().Error("can't delete competition", zap.Error(err))
			return err
		}
		if tag.RowsAffected() == 0 {
			return pgx.ErrNoRows
		}
		return nil
	})
	return err
}

// AddTicketsSold shifts the sold counter. Callers run it inside the same
// transaction that changes the order's payment status.
func (r *Repository) AddTicketsSold(ctx context.Context, id int, delta int) error {
	query := `
        UPDATE competitions
        SET tickets_sold = tickets_sold + $1
        WHERE id = $2
    `
	_, err := r.db.Exec(ctx, query, delta, id)
	if err != nil {
		zap.L().Error("can't update tickets_sold", zap.Error(err))
		return err
	}
	return nil
}

// SetWinner records the draw outcome. Winner fields are write-once: the WHERE
// clause refuses to overwrite an existing winner.
func (r *Repository) SetWinner(ctx context.Context, id, userID, ticket int) error {
	query := `
        UPDATE competitions
        SET winner_id = $1, winner_ticket = $2
        WHERE id = $3 AND winner_id IS NULL
    `
	tag, err := r.db.Exec(ctx, query, userID, ticket, id)
	if err != nil {
		zap.L().Error("can't set winner", zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *Repository) Count(ctx context.Context) (total int, visible int, err error) {
	query := `
        SELECT count(*), count(*) FILTER (WHERE is_visible)
        FROM competitions
    `
	if err = r.db.QueryRow(ctx, query).Scan(&total, &visible); err != nil {
		zap.L().Error("can't count competitions", zap.Error(err))
		return 0, 0, err
	}
	return total, visible, nil
}
