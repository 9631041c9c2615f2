package dto

import (
	"time"

	"github.com/x67digital/raffle/internal/domain"
)

type CompetitionResponseDTO struct {
	ID           int     `json:"id" example:"1"`
	Title        string  `json:"title" example:"Win a MacBook Pro"`
	Description  string  `json:"description"`
	Category     string  `json:"category" example:"tech"`
	PrizeValue   float64 `json:"prize_value" example:"2499"`
	TicketPrice  float64 `json:"ticket_price" example:"4.99"`
	TotalTickets int     `json:"total_tickets" example:"1000"`
	TicketsSold  int     `json:"tickets_sold" example:"250"`
	DrawDate     string  `json:"draw_date" example:"2025-07-01T20:00:00Z"`
	ImageURL     string  `json:"image_url"`
	Featured     bool    `json:"featured"`
	IsVisible    bool    `json:"is_visible"`
	Status       string  `json:"status" example:"live"`
	WinnerID     *int    `json:"winner_id,omitempty"`
	WinnerTicket *int    `json:"winner_ticket,omitempty"`
	CreatedAt    string  `json:"created_at"`
}

// FromCompetition derives status at response time; it is never stored.
func FromCompetition(c *domain.Competition, now time.Time) CompetitionResponseDTO {
	return CompetitionResponseDTO{
		ID:           c.ID,
		Title:        c.Title,
		Description:  c.Description,
		Category:     c.Category,
		PrizeValue:   c.PrizeValue,
		TicketPrice:  c.TicketPrice,
		TotalTickets: c.TotalTickets,
		TicketsSold:  c.TicketsSold,
		DrawDate:     c.DrawDate.Format(time.RFC3339),
		ImageURL:     c.ImageURL,
		Featured:     c.Featured,
		IsVisible:    c.IsVisible,
		Status:       c.Status(now),
		WinnerID:     c.WinnerID,
		WinnerTicket: c.WinnerTicket,
		CreatedAt:    c.CreatedAt.Format(time.RFC3339),
	}
}

func FromCompetitions(comps []domain.Competition, now time.Time) []CompetitionResponseDTO {
	out := make([]CompetitionResponseDTO, 0, len(comps))
	for i := range comps {
		out = append(out, FromCompetition(&comps[i], now))
	}
	return out
}

type CreateCompetitionRequestDTO struct {
	Title        string  `json:"title" validate:"required"`
	Description  string  `json:"description"`
	Category     string  `json:"category"`
	PrizeValue   float64 `json:"prize_value" validate:"required,gt=0"`
	TicketPrice  float64 `json:"ticket_price" validate:"required,gt=0"`
	TotalTickets int     `json:"total_tickets" validate:"required,gt=0"`
	DrawDate     string  `json:"draw_date" validate:"required"`
	ImageURL     string  `json:"image_url"`
	Featured     bool    `json:"featured"`
	IsVisible    bool    `json:"is_visible"`
}

// UpdateCompetitionRequestDTO carries partial updates; nil means unchanged.
type UpdateCompetitionRequestDTO struct {
	Title        *string  `json:"title,omitempty"`
	Description  *string  `json:"description,omitempty"`
	Category     *string  `json:"category,omitempty"`
	PrizeValue   *float64 `json:"prize_value,omitempty"`
	TicketPrice  *float64 `json:"ticket_price,omitempty"`
	TotalTickets *int     `json:"total_tickets,omitempty"`
	DrawDate     *string  `json:"draw_date,omitempty"`
	ImageURL     *string  `json:"image_url,omitempty"`
	Featured     *bool    `json:"featured,omitempty"`
	IsVisible    *bool    `json:"is_visible,omitempty"`
}
