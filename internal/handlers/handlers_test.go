package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	_ "github.com/x67digital/raffle/docs"
	"github.com/x67digital/raffle/internal/notify"
	"github.com/x67digital/raffle/internal/pg"
	"github.com/x67digital/raffle/internal/repo"
	"github.com/x67digital/raffle/internal/service"
)

func TestNew(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	defer mockDB.Close()

	mockTxManager := pg.NewMockTXManager(ctrl)
	repos := repo.New(mockDB, mockTxManager)
	services := service.New(repos, mockTxManager, nil, notify.NopPublisher{})

	h := New(services)
	assert.NotNil(t, h, "Handlers should not be nil")
}

func TestInitRoutes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuthHandler := NewMockAuthHandler(ctrl)
	mockCompetitionHandler := NewMockCompetitionHandler(ctrl)
	mockOrderHandler := NewMockOrderHandler(ctrl)
	mockWinnerHandler := NewMockWinnerHandler(ctrl)
	mockAdminHandler := NewMockAdminHandler(ctrl)

	mockAuthHandler.EXPECT().Register(gomock.Any(), gomock.Any()).AnyTimes()
	mockAuthHandler.EXPECT().Login(gomock.Any(), gomock.Any()).AnyTimes()
	mockAuthHandler.EXPECT().Me(gomock.Any(), gomock.Any()).AnyTimes()
	mockCompetitionHandler.EXPECT().List(gomock.Any(), gomock.Any()).AnyTimes()
	mockCompetitionHandler.EXPECT().Featured(gomock.Any(), gomock.Any()).AnyTimes()
	mockCompetitionHandler.EXPECT().Get(gomock.Any(), gomock.Any()).AnyTimes()
	mockOrderHandler.EXPECT().Purchase(gomock.Any(), gomock.Any()).AnyTimes()
	mockOrderHandler.EXPECT().Confirm(gomock.Any(), gomock.Any()).AnyTimes()
	mockOrderHandler.EXPECT().GetOrders(gomock.Any(), gomock.Any()).AnyTimes()
	mockOrderHandler.EXPECT().GetMyTickets(gomock.Any(), gomock.Any()).AnyTimes()
	mockWinnerHandler.EXPECT().List(gomock.Any(), gomock.Any()).AnyTimes()
	mockAdminHandler.EXPECT().Stats(gomock.Any(), gomock.Any()).AnyTimes()

	h := &Handlers{
		AuthHandler:        mockAuthHandler,
		CompetitionHandler: mockCompetitionHandler,
		OrderHandler:       mockOrderHandler,
		WinnerHandler:      mockWinnerHandler,
		AdminHandler:       mockAdminHandler,
	}

	router := chi.NewRouter()
	h.InitRoutes(router)

	tests := []struct {
		method string
		url    string
		status int
	}{
		{"POST", "/api/auth/register", http.StatusOK},
		{"POST", "/api/auth/login", http.StatusOK},
		{"GET", "/api/auth/me", http.StatusUnauthorized},
		{"GET", "/api/competitions/featured", http.StatusOK},
		{"GET", "/api/competitions/1", http.StatusOK},
		{"GET", "/api/winners", http.StatusOK},
		{"POST", "/api/tickets/purchase", http.StatusUnauthorized},
		{"GET", "/api/tickets/my", http.StatusUnauthorized},
		{"GET", "/api/orders/", http.StatusUnauthorized},
		{"POST", "/api/orders/1/confirm", http.StatusUnauthorized},
		{"GET", "/api/admin/stats", http.StatusUnauthorized},
		{"POST", "/api/admin/competitions/1/draw", http.StatusUnauthorized},
		{"GET", "/api/admin/users", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.url, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.url, nil)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
