package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCompetitionStatus(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	winnerID := 7
	winnerTicket := 3

	tests := []struct {
		name     string
		comp     Competition
		expected string
	}{
		{
			name:     "Winner set overrides everything",
			comp:     Competition{TotalTickets: 10, TicketsSold: 2, DrawDate: now.Add(72 * time.Hour), WinnerID: &winnerID, WinnerTicket: &winnerTicket},
			expected: StatusCompleted,
		},
		{
			name:     "Winner set wins over sold out",
			comp:     Competition{TotalTickets: 10, TicketsSold: 10, DrawDate: now.Add(72 * time.Hour), WinnerID: &winnerID},
			expected: StatusCompleted,
		},
		{
			name:     "Sold out before draw date",
			comp:     Competition{TotalTickets: 10, TicketsSold: 10, DrawDate: now.Add(72 * time.Hour)},
			expected: StatusSoldOut,
		},
		{
			name:     "Draw date passed",
			comp:     Competition{TotalTickets: 10, TicketsSold: 5, DrawDate: now.Add(-time.Minute)},
			expected: StatusCompleted,
		},
		{
			name:     "Draw date exactly now",
			comp:     Competition{TotalTickets: 10, TicketsSold: 5, DrawDate: now},
			expected: StatusCompleted,
		},
		{
			name:     "Draw in 23 hours is ending soon",
			comp:     Competition{TotalTickets: 10, TicketsSold: 5, DrawDate: now.Add(23 * time.Hour)},
			expected: StatusEndingSoon,
		},
		{
			name:     "Draw in exactly 24 hours is ending soon",
			comp:     Competition{TotalTickets: 10, TicketsSold: 5, DrawDate: now.Add(24 * time.Hour)},
			expected: StatusEndingSoon,
		},
		{
			name:     "Draw in 25 hours is live",
			comp:     Competition{TotalTickets: 10, TicketsSold: 5, DrawDate: now.Add(25 * time.Hour)},
			expected: StatusLive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.comp.Status(now))
		})
	}
}

func TestOpenForPurchase(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	winnerID := 1

	live := Competition{TotalTickets: 10, DrawDate: now.Add(48 * time.Hour)}
	endingSoon := Competition{TotalTickets: 10, DrawDate: now.Add(time.Hour)}
	soldOut := Competition{TotalTickets: 10, TicketsSold: 10, DrawDate: now.Add(48 * time.Hour)}
	drawn := Competition{TotalTickets: 10, DrawDate: now.Add(48 * time.Hour), WinnerID: &winnerID}

	assert.True(t, live.OpenForPurchase(now))
	assert.True(t, endingSoon.OpenForPurchase(now))
	assert.False(t, soldOut.OpenForPurchase(now))
	assert.False(t, drawn.OpenForPurchase(now))
}
