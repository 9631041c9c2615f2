package dto

import (
	"time"

	"github.com/x67digital/raffle/internal/domain"
)

type PurchaseRequestDTO struct {
	CompetitionID int `json:"competition_id" validate:"required"`
	Quantity      int `json:"quantity" validate:"required,min=1,max=100"`
}

type OrderResponseDTO struct {
	ID            int     `json:"id" example:"1"`
	UserID        int     `json:"user_id" example:"1"`
	CompetitionID int     `json:"competition_id" example:"1"`
	TicketNumbers []int   `json:"ticket_numbers" example:"3,17,42"`
	Quantity      int     `json:"quantity" example:"3"`
	TotalPrice    float64 `json:"total_price" example:"14.97"`
	PaymentStatus string  `json:"payment_status" example:"pending"`
	PaymentID     *string `json:"payment_id,omitempty"`
	CreatedAt     string  `json:"created_at"`
}

func FromOrder(o *domain.Order) OrderResponseDTO {
	return OrderResponseDTO{
		ID:            o.ID,
		UserID:        o.UserID,
		CompetitionID: o.CompetitionID,
		TicketNumbers: o.TicketNumbers,
		Quantity:      o.Quantity,
		TotalPrice:    o.TotalPrice,
		PaymentStatus: o.PaymentStatus,
		PaymentID:     o.PaymentID,
		CreatedAt:     o.CreatedAt.Format(time.RFC3339),
	}
}

func FromOrders(orders []domain.Order) []OrderResponseDTO {
	out := make([]OrderResponseDTO, 0, len(orders))
	for i := range orders {
		out = append(out, FromOrder(&orders[i]))
	}
	return out
}

type TicketGroupDTO struct {
	CompetitionID    int    `json:"competition_id"`
	CompetitionTitle string `json:"competition_title"`
	DrawDate         string `json:"draw_date"`
	Status           string `json:"status"`
	Tickets          []int  `json:"tickets"`
}
