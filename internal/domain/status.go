package domain

import "time"

const (
	// StatusLive competition is open for purchase;
	StatusLive string = "live"
	// StatusEndingSoon draw is within 24 hours, still open for purchase;
	StatusEndingSoon string = "ending_soon"
	// StatusSoldOut every ticket is sold, waiting for the draw;
	StatusSoldOut string = "sold_out"
	// StatusCompleted winner drawn or draw date passed;
	StatusCompleted string = "completed"
)

const (
	PaymentPending   string = "pending"
	PaymentCompleted string = "completed"
	PaymentFailed    string = "failed"
	PaymentRefunded  string = "refunded"
)

const (
	RoleUser  string = "user"
	RoleAdmin string = "admin"
)

const endingSoonWindow = 24 * time.Hour

// Status derives the competition lifecycle state from its fields. It is never
// stored. Precedence: winner set, capacity reached, draw time passed,
// within the 24h window, live.
func (c *Competition) Status(now time.Time) string {
	if c.WinnerID != nil {
		return StatusCompleted
	}
	if c.TicketsSold >= c.TotalTickets {
		return StatusSoldOut
	}
	if !c.DrawDate.After(now) {
		return StatusCompleted
	}
	if c.DrawDate.Sub(now) <= endingSoonWindow {
		return StatusEndingSoon
	}
	return StatusLive
}

// OpenForPurchase reports whether tickets can still be allocated.
func (c *Competition) OpenForPurchase(now time.Time) bool {
	s := c.Status(now)
	return s == StatusLive || s == StatusEndingSoon
}
