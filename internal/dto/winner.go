package dto

import (
	"time"

	"github.com/x67digital/raffle/internal/domain"
)

type WinnerResponseDTO struct {
	ID               int     `json:"id" example:"1"`
	CompetitionID    int     `json:"competition_id" example:"1"`
	CompetitionTitle string  `json:"competition_title" example:"Win a MacBook Pro"`
	UserID           int     `json:"user_id" example:"1"`
	UserName         string  `json:"user_name" example:"Jane Doe"`
	WinningTicket    int     `json:"winning_ticket" example:"42"`
	PrizeValue       float64 `json:"prize_value" example:"2499"`
	DrawnAt          string  `json:"drawn_at"`
}

func FromWinner(w *domain.Winner) WinnerResponseDTO {
	return WinnerResponseDTO{
		ID:               w.ID,
		CompetitionID:    w.CompetitionID,
		CompetitionTitle: w.CompetitionTitle,
		UserID:           w.UserID,
		UserName:         w.UserName,
		WinningTicket:    w.WinningTicket,
		PrizeValue:       w.PrizeValue,
		DrawnAt:          w.DrawnAt.Format(time.RFC3339),
	}
}

type AdminStatsDTO struct {
	TotalUsers         int     `json:"total_users"`
	TotalCompetitions  int     `json:"total_competitions"`
	ActiveCompetitions int     `json:"active_competitions"`
	TotalOrders        int     `json:"total_orders"`
	TotalRevenue       float64 `json:"total_revenue"`
	TicketsSoldToday   int     `json:"tickets_sold_today"`
}
