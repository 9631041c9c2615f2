package drawservice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/x67digital/raffle/internal/domain"
)

type mocks struct {
	competitionRepo *MockCompetitionRepo
	orderRepo       *MockOrderRepo
	winnerRepo      *MockWinnerRepo
	userRepo        *MockUserRepo
	txManager       *MockTXManager
	notifier        *MockNotifier
}

func NewMock(t *testing.T) (*Service, *mocks) {
	ctrl := gomock.NewController(t)
	m := &mocks{
		competitionRepo: NewMockCompetitionRepo(ctrl),
		orderRepo:       NewMockOrderRepo(ctrl),
		winnerRepo:      NewMockWinnerRepo(ctrl),
		userRepo:        NewMockUserRepo(ctrl),
		txManager:       NewMockTXManager(ctrl),
		notifier:        NewMockNotifier(ctrl),
	}
	service := New(m.competitionRepo, m.orderRepo, m.winnerRepo, m.userRepo, m.txManager, m.notifier)
	defer ctrl.Finish()
	return service, m
}

func passThroughTx(m *mocks) {
	m.txManager.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		})
}

func TestDraw(t *testing.T) {
	tests := []struct {
		name          string
		prepareMock   func(m *mocks)
		expectedError error
	}{
		{
			name: "Competition not found",
			prepareMock: func(m *mocks) {
				passThroughTx(m)
				m.competitionRepo.EXPECT().FindByIDForUpdate(gomock.Any(), 1).Return(nil, nil)
			},
			expectedError: ErrCompetitionNotFound,
		},
		{
			name: "Winner already drawn",
			prepareMock: func(m *mocks) {
				passThroughTx(m)
				winnerID := 7
				m.competitionRepo.EXPECT().FindByIDForUpdate(gomock.Any(), 1).Return(&domain.Competition{
					ID:       1,
					WinnerID: &winnerID,
				}, nil)
			},
			expectedError: ErrAlreadyDrawn,
		},
		{
			name: "No tickets sold",
			prepareMock: func(m *mocks) {
				passThroughTx(m)
				m.competitionRepo.EXPECT().FindByIDForUpdate(gomock.Any(), 1).Return(&domain.Competition{ID: 1}, nil)
				m.orderRepo.EXPECT().FindCompletedByCompetition(gomock.Any(), 1).Return(nil, nil)
			},
			expectedError: ErrNoEntries,
		},
		{
			name: "Database error",
			prepareMock: func(m *mocks) {
				passThroughTx(m)
				m.competitionRepo.EXPECT().FindByIDForUpdate(gomock.Any(), 1).Return(nil, errors.New("database error"))
			},
			expectedError: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, m := NewMock(t)
			tt.prepareMock(m)

			winner, err := service.Draw(context.Background(), 1)
			assert.Error(t, err)
			assert.Equal(t, tt.expectedError.Error(), err.Error())
			assert.Nil(t, winner)
		})
	}
}

func TestDraw_Success(t *testing.T) {
	service, m := NewMock(t)

	passThroughTx(m)
	m.competitionRepo.EXPECT().FindByIDForUpdate(gomock.Any(), 1).Return(&domain.Competition{
		ID:         1,
		Title:      "Win a MacBook Pro",
		PrizeValue: 2499,
	}, nil)
	m.orderRepo.EXPECT().FindCompletedByCompetition(gomock.Any(), 1).Return([]domain.Order{
		{UserID: 5, TicketNumbers: []int{3, 17}},
		{UserID: 9, TicketNumbers: []int{42}},
	}, nil)
	m.userRepo.EXPECT().FindByID(gomock.Any(), gomock.Any()).Return(&domain.User{
		ID: 5, Email: "user@example.com", FullName: "Test User",
	}, nil)
	m.competitionRepo.EXPECT().SetWinner(gomock.Any(), 1, gomock.Any(), gomock.Any()).Return(nil)
	m.winnerRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, winner *domain.Winner) (*domain.Winner, error) {
			winner.ID = 1
			winner.DrawnAt = time.Now()
			return winner, nil
		})
	m.notifier.EXPECT().WinnerDrawn(gomock.Any(), gomock.Any()).Return(nil)

	winner, err := service.Draw(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, 1, winner.CompetitionID)
	assert.Equal(t, "Win a MacBook Pro", winner.CompetitionTitle)
	assert.InDelta(t, 2499, winner.PrizeValue, 0.001)
	assert.Contains(t, []int{3, 17, 42}, winner.WinningTicket)
}

func TestDraw_OneWayTransition(t *testing.T) {
	service, m := NewMock(t)

	// A concurrent draw lost the race: the winner_id IS NULL guard reports
	// no rows and the transaction must fail.
	passThroughTx(m)
	m.competitionRepo.EXPECT().FindByIDForUpdate(gomock.Any(), 1).Return(&domain.Competition{ID: 1}, nil)
	m.orderRepo.EXPECT().FindCompletedByCompetition(gomock.Any(), 1).Return([]domain.Order{
		{UserID: 5, TicketNumbers: []int{3}},
	}, nil)
	m.userRepo.EXPECT().FindByID(gomock.Any(), 5).Return(&domain.User{ID: 5}, nil)
	m.competitionRepo.EXPECT().SetWinner(gomock.Any(), 1, 5, 3).Return(errors.New("winner already set"))

	winner, err := service.Draw(context.Background(), 1)
	assert.Error(t, err)
	assert.Nil(t, winner)
}

func TestExpandEntries(t *testing.T) {
	entries := expandEntries([]domain.Order{
		{UserID: 5, TicketNumbers: []int{3, 17}},
		{UserID: 9, TicketNumbers: []int{42}},
	})
	assert.Len(t, entries, 3)
	assert.Equal(t, entry{userID: 5, ticket: 3}, entries[0])
	assert.Equal(t, entry{userID: 9, ticket: 42}, entries[2])

	assert.Empty(t, expandEntries(nil))
}

// A holder of three of four tickets should win roughly three quarters of
// the time.
func TestPickEntry_Proportional(t *testing.T) {
	entries := []entry{
		{userID: 5, ticket: 1},
		{userID: 5, ticket: 2},
		{userID: 5, ticket: 3},
		{userID: 9, ticket: 4},
	}

	const iterations = 20000
	wins := 0
	for i := 0; i < iterations; i++ {
		picked, err := pickEntry(entries)
		assert.NoError(t, err)
		if picked.userID == 5 {
			wins++
		}
	}
	assert.InDelta(t, 0.75, float64(wins)/iterations, 0.02)
}

func TestWinners(t *testing.T) {
	service, m := NewMock(t)

	m.winnerRepo.EXPECT().ListRecent(gomock.Any(), recentWinnersLimit).Return([]domain.Winner{{ID: 1}}, nil)
	winners, err := service.Winners(context.Background())
	assert.NoError(t, err)
	assert.Len(t, winners, 1)

	m.winnerRepo.EXPECT().ListRecent(gomock.Any(), recentWinnersLimit).Return(nil, errors.New("database error"))
	_, err = service.Winners(context.Background())
	assert.Error(t, err)
}
