// Package notify carries the fire-and-forget notification pipeline: state
// transitions publish events to the broker, a background consumer turns them
// into emails. Delivery failure never affects the originating transaction.
package notify

const (
	OrderConfirmedQueue = "order.confirmed"
	WinnerDrawnQueue    = "winner.drawn"
)

// OrderConfirmedEvent is published when an order's payment completes. It
// carries everything the email needs so the consumer never queries the
// database.
type OrderConfirmedEvent struct {
	OrderID          int     `json:"order_id"`
	UserID           int     `json:"user_id"`
	Email            string  `json:"email"`
	FullName         string  `json:"full_name"`
	CompetitionTitle string  `json:"competition_title"`
	TicketNumbers    []int   `json:"ticket_numbers"`
	Quantity         int     `json:"quantity"`
	TotalPrice       float64 `json:"total_price"`
	ConfirmedAt      string  `json:"confirmed_at"`
}

// WinnerDrawnEvent is published exactly once per competition, at draw time.
type WinnerDrawnEvent struct {
	CompetitionID    int     `json:"competition_id"`
	CompetitionTitle string  `json:"competition_title"`
	UserID           int     `json:"user_id"`
	Email            string  `json:"email"`
	FullName         string  `json:"full_name"`
	WinningTicket    int     `json:"winning_ticket"`
	PrizeValue       float64 `json:"prize_value"`
	DrawnAt          string  `json:"drawn_at"`
}
