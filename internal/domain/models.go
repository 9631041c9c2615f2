package domain

import "time"

type User struct {
	ID           int       `db:"id"`
	Email        string    `db:"email"`
	FullName     string    `db:"full_name"`
	PasswordHash string    `db:"password_hash"`
	Role         string    `db:"role"`
	CreatedAt    time.Time `db:"created_at"`
}

type Competition struct {
	ID           int       `db:"id"`
	Title        string    `db:"title"`
	Description  string    `db:"description"`
	Category     string    `db:"category"`
	PrizeValue   float64   `db:"prize_value"`
	TicketPrice  float64   `db:"ticket_price"`
	TotalTickets int       `db:"total_tickets"`
	TicketsSold  int       `db:"tickets_sold"`
	DrawDate     time.Time `db:"draw_date"`
	ImageURL     string    `db:"image_url"`
	Featured     bool      `db:"featured"`
	IsVisible    bool      `db:"is_visible"`
	WinnerID     *int      `db:"winner_id"`
	WinnerTicket *int      `db:"winner_ticket"`
	CreatedAt    time.Time `db:"created_at"`
}

type Order struct {
	ID            int       `db:"id"`
	UserID        int       `db:"user_id"`
	CompetitionID int       `db:"competition_id"`
	TicketNumbers []int     `db:"ticket_numbers"`
	Quantity      int       `db:"quantity"`
	TotalPrice    float64   `db:"total_price"`
	PaymentStatus string    `db:"payment_status"`
	PaymentID     *string   `db:"payment_id"`
	CreatedAt     time.Time `db:"created_at"`
}

// Winner is an append-only snapshot of a draw outcome. Title and name are
// copied at draw time so the record stays readable after later edits.
type Winner struct {
	ID               int       `db:"id"`
	CompetitionID    int       `db:"competition_id"`
	CompetitionTitle string    `db:"competition_title"`
	UserID           int       `db:"user_id"`
	UserName         string    `db:"user_name"`
	WinningTicket    int       `db:"winning_ticket"`
	PrizeValue       float64   `db:"prize_value"`
	DrawnAt          time.Time `db:"drawn_at"`
}

// TicketGroup is a user's completed tickets for one competition.
type TicketGroup struct {
	CompetitionID    int
	CompetitionTitle string
	DrawDate         time.Time
	Status           string
	Tickets          []int
}

type AdminStats struct {
	TotalUsers         int
	TotalCompetitions  int
	ActiveCompetitions int
	TotalOrders        int
	TotalRevenue       float64
	TicketsSoldToday   int
}
