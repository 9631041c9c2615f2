package winnerrepo

import (
	"context"

	"github.com/x67digital/raffle/internal/domain"
	"github.com/x67digital/raffle/internal/pg"
	"go.uber.org/zap"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{db: db}
}

// Create appends the draw snapshot. Winners are never updated or deleted.
func (r *Repository) Create(ctx context.Context, winner *domain.Winner) (*domain.Winner, error) {
	query := `
        INSERT INTO winners (competition_id, competition_title, user_id, user_name, winning_ticket, prize_value)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, drawn_at
    `
	row := r.db.QueryRow(ctx, query,
		winner.CompetitionID, winner.CompetitionTitle, winner.UserID,
		winner.UserName, winner.WinningTicket, winner.PrizeValue,
	)
	if err := row.Scan(&winner.ID, &winner.DrawnAt); err != nil {
		zap.L().Error("can't create winner record", zap.Error(err))
		return nil, err
	}
	return winner, nil
}

func (r *Repository) ListRecent(ctx context.Context, limit int) ([]domain.Winner, error) {
	query := `
        SELECT id, competition_id, competition_title, user_id, user_name, winning_ticket, prize_value, drawn_at
        FROM winners
        ORDER BY drawn_at DESC
        LIMIT $1
    `
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		zap.L().Error("can't list winners", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var winners []domain.Winner
	for rows.Next() {
		var w domain.Winner
		err := rows.Scan(&w.ID, &w.CompetitionID, &w.CompetitionTitle, &w.UserID, &w.UserName, &w.WinningTicket, &w.PrizeValue, &w.DrawnAt)
		if err != nil {
			zap.L().Error("can't scan winner row", zap.Error(err))
			return nil, err
		}
		winners = append(winners, w)
	}
	return winners, nil
}
