package competitionservice

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
	userRepo        *MockUserRepo
}

func NewMock(t *testing.T) (*Service, *mocks) {
	ctrl := gomock.NewController(t)
	m := &mocks{
		competitionRepo: NewMockCompetitionRepo(ctrl),
		orderRepo:       NewMockOrderRepo(ctrl),
		userRepo:        NewMockUserRepo(ctrl),
	}
	// A nil cache behaves as a pass-through, so every lookup hits the repo.
	service := New(m.competitionRepo, m.orderRepo, m.userRepo, nil)
	defer ctrl.Finish()
	return service, m
}

func TestList(t *testing.T) {
	drawSoon := time.Now().Add(2 * time.Hour)
	drawLater := time.Now().Add(72 * time.Hour)

	comps := []domain.Competition{
		{ID: 1, Category: "tech", TotalTickets: 100, DrawDate: drawLater},
		{ID: 2, Category: "tech", TotalTickets: 100, DrawDate: drawSoon},
		{ID: 3, Category: "cash", TotalTickets: 100, TicketsSold: 100, DrawDate: drawLater},
	}

	tests := []struct {
		name        string
		status      string
		category    string
		expectedIDs []int
	}{
		{name: "No filters", expectedIDs: []int{1, 2, 3}},
		{name: "Filter live", status: "live", expectedIDs: []int{1}},
		{name: "Filter ending soon", status: "ending_soon", expectedIDs: []int{2}},
		{name: "Filter sold out", status: "sold_out", expectedIDs: []int{3}},
		{name: "Filter category", category: "tech", expectedIDs: []int{1, 2}},
		{name: "Combined filters", status: "live", category: "cash", expectedIDs: []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, m := NewMock(t)
			m.competitionRepo.EXPECT().List(gomock.Any(), true).Return(comps, nil)

			result, err := service.List(context.Background(), tt.status, tt.category)
			assert.NoError(t, err)

			ids := make([]int, 0, len(result))
			for _, c := range result {
				ids = append(ids, c.ID)
			}
			assert.Equal(t, tt.expectedIDs, ids)
		})
	}

	t.Run("Repo error", func(t *testing.T) {
		service, m := NewMock(t)
		m.competitionRepo.EXPECT().List(gomock.Any(), true).Return(nil, errors.New("database error"))

		_, err := service.List(context.Background(), "", "")
		assert.Error(t, err)
	})
}

func TestFeatured(t *testing.T) {
	service, m := NewMock(t)

	drawLater := time.Now().Add(72 * time.Hour)
	winnerID := 7
	m.competitionRepo.EXPECT().List(gomock.Any(), true).Return([]domain.Competition{
		{ID: 1, Featured: true, TotalTickets: 100, DrawDate: drawLater},
		{ID: 2, Featured: false, TotalTickets: 100, DrawDate: drawLater},
		{ID: 3, Featured: true, TotalTickets: 100, TicketsSold: 100, DrawDate: drawLater},
		{ID: 4, Featured: true, TotalTickets: 100, DrawDate: drawLater, WinnerID: &winnerID},
	}, nil)

	result, err := service.Featured(context.Background())
	assert.NoError(t, err)
	assert.Len(t, result, 1)
	assert.Equal(t, 1, result[0].ID)
}

func TestGet(t *testing.T) {
	service, m := NewMock(t)

	m.competitionRepo.EXPECT().FindByID(gomock.Any(), 1).Return(&domain.Competition{ID: 1}, nil)
	comp, err := service.Get(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, 1, comp.ID)

	m.competitionRepo.EXPECT().FindByID(gomock.Any(), 2).Return(nil, nil)
	_, err = service.Get(context.Background(), 2)
	assert.ErrorIs(t, err, ErrCompetitionNotFound)
}

func TestCreateUpdateDelete(t *testing.T) {
	service, m := NewMock(t)

	comp := &domain.Competition{Title: "Win a MacBook Pro"}
	m.competitionRepo.EXPECT().Create(gomock.Any(), comp).DoAndReturn(
		func(ctx context.Context, c *domain.Competition) (*domain.Competition, error) {
			c.ID = 1
			return c, nil
		})
	created, err := service.Create(context.Background(), comp)
	assert.NoError(t, err)
	assert.Equal(t, 1, created.ID)

	m.competitionRepo.EXPECT().Update(gomock.Any(), created).Return(created, nil)
	updated, err := service.Update(context.Background(), created)
	assert.NoError(t, err)
	assert.Equal(t, 1, updated.ID)

	m.competitionRepo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil, nil)
	_, err = service.Update(context.Background(), &domain.Competition{ID: 99})
	assert.ErrorIs(t, err, ErrCompetitionNotFound)

	m.competitionRepo.EXPECT().Delete(gomock.Any(), 1).Return(nil)
	assert.NoError(t, service.Delete(context.Background(), 1))
}

func TestStats(t *testing.T) {
	service, m := NewMock(t)

	m.userRepo.EXPECT().Count(gomock.Any()).Return(120, nil)
	m.competitionRepo.EXPECT().Count(gomock.Any()).Return(10, 7, nil)
	m.orderRepo.EXPECT().CompletedStats(gomock.Any()).Return(450, 2245.50, nil)
	m.orderRepo.EXPECT().TicketsSoldSince(gomock.Any(), gomock.Any()).Return(31, nil)

	stats, err := service.Stats(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, &domain.AdminStats{
		TotalUsers:         120,
		TotalCompetitions:  10,
		ActiveCompetitions: 7,
		TotalOrders:        450,
		TotalRevenue:       2245.50,
		TicketsSoldToday:   31,
	}, stats)
}

func TestStats_Error(t *testing.T) {
	service, m := NewMock(t)

	m.userRepo.EXPECT().Count(gomock.Any()).Return(0, errors.New("database error"))
	_, err := service.Stats(context.Background())
	assert.Error(t, err)
}
