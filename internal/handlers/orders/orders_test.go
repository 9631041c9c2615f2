package orders

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/x67digital/raffle/internal/domain"
	"github.com/x67digital/raffle/internal/service/ticketservice"
	"github.com/x67digital/raffle/pkg/auth"
	"github.com/x67digital/raffle/pkg/utils"
)

func NewMock(t *testing.T) (*OrderHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service)
	defer ctrl.Finish()
	return handler, service
}

func authed(req *http.Request, userID int) *http.Request {
	return req.WithContext(context.WithValue(req.Context(), auth.UserIDKey, userID))
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestPurchaseHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name          string
		body          string
		prepareMock   func()
		expectedCode  int
		expectedError string
	}{
		{
			name: "Successful purchase",
			body: `{"competition_id":1,"quantity":3}`,
			prepareMock: func() {
				service.EXPECT().Allocate(gomock.Any(), 5, 1, 3).Return(&domain.Order{
					ID:            42,
					UserID:        5,
					CompetitionID: 1,
					TicketNumbers: []int{3, 17, 42},
					Quantity:      3,
					TotalPrice:    14.97,
					PaymentStatus: domain.PaymentPending,
					CreatedAt:     time.Now(),
				}, nil)
			},
			expectedCode: http.StatusCreated,
		},
		{
			name: "Competition not found",
			body: `{"competition_id":99,"quantity":1}`,
			prepareMock: func() {
				service.EXPECT().Allocate(gomock.Any(), 5, 99, 1).Return(nil, ticketservice.ErrCompetitionNotFound)
			},
			expectedCode:  http.StatusNotFound,
			expectedError: "competition not found",
		},
		{
			name: "Competition unavailable",
			body: `{"competition_id":1,"quantity":1}`,
			prepareMock: func() {
				service.EXPECT().Allocate(gomock.Any(), 5, 1, 1).Return(nil, ticketservice.ErrCompetitionUnavailable)
			},
			expectedCode:  http.StatusBadRequest,
			expectedError: "competition is not available for purchase",
		},
		{
			name: "Not enough tickets",
			body: `{"competition_id":1,"quantity":50}`,
			prepareMock: func() {
				service.EXPECT().Allocate(gomock.Any(), 5, 1, 50).Return(nil, ticketservice.ErrInsufficientTickets)
			},
			expectedCode:  http.StatusBadRequest,
			expectedError: "not enough tickets available",
		},
		{
			name: "Invalid quantity",
			body: `{"competition_id":1,"quantity":0}`,
			prepareMock: func() {
				service.EXPECT().Allocate(gomock.Any(), 5, 1, 0).Return(nil, ticketservice.ErrQuantityInvalid)
			},
			expectedCode:  http.StatusBadRequest,
			expectedError: "invalid ticket quantity",
		},
		{
			name:          "Invalid request body",
			body:          `{invalid json`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Invalid request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := httptest.NewRequest("POST", "/api/tickets/purchase", bytes.NewReader([]byte(tt.body)))
			rr := httptest.NewRecorder()

			handler.Purchase(rr, authed(req, 5))

			assert.Equal(t, tt.expectedCode, rr.Code)

			if tt.expectedError != "" {
				var resp utils.Response
				err := json.NewDecoder(rr.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedError, resp.Message)
			}
		})
	}
}

func TestConfirmHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name          string
		orderID       string
		prepareMock   func()
		expectedCode  int
		expectedError string
	}{
		{
			name:    "Successful confirmation",
			orderID: "42",
			prepareMock: func() {
				paymentID := "viva_abcd1234"
				service.EXPECT().Confirm(gomock.Any(), 42, 5).Return(&domain.Order{
					ID:            42,
					UserID:        5,
					PaymentStatus: domain.PaymentCompleted,
					PaymentID:     &paymentID,
					CreatedAt:     time.Now(),
				}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:    "Order not found",
			orderID: "99",
			prepareMock: func() {
				service.EXPECT().Confirm(gomock.Any(), 99, 5).Return(nil, ticketservice.ErrOrderNotFound)
			},
			expectedCode:  http.StatusNotFound,
			expectedError: "order not found",
		},
		{
			name:    "Order already completed",
			orderID: "42",
			prepareMock: func() {
				service.EXPECT().Confirm(gomock.Any(), 42, 5).Return(nil, ticketservice.ErrOrderAlreadyCompleted)
			},
			expectedCode:  http.StatusConflict,
			expectedError: "order already completed",
		},
		{
			name:    "Tickets taken by a racing order",
			orderID: "42",
			prepareMock: func() {
				service.EXPECT().Confirm(gomock.Any(), 42, 5).Return(nil, ticketservice.ErrTicketsTaken)
			},
			expectedCode:  http.StatusConflict,
			expectedError: "ticket numbers no longer available",
		},
		{
			name:          "Invalid order id",
			orderID:       "abc",
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Invalid order id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := httptest.NewRequest("POST", "/api/orders/"+tt.orderID+"/confirm", nil)
			req = withURLParam(authed(req, 5), "id", tt.orderID)
			rr := httptest.NewRecorder()

			handler.Confirm(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			if tt.expectedError != "" {
				var resp utils.Response
				err := json.NewDecoder(rr.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedError, resp.Message)
			}
		})
	}
}

func TestGetOrdersHandler(t *testing.T) {
	handler, service := NewMock(t)

	service.EXPECT().GetOrders(gomock.Any(), 5).Return([]domain.Order{
		{ID: 42, UserID: 5, CreatedAt: time.Now()},
	}, nil)

	req := httptest.NewRequest("GET", "/api/orders", nil)
	rr := httptest.NewRecorder()

	handler.GetOrders(rr, authed(req, 5))

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp []map[string]any
	err := json.NewDecoder(rr.Body).Decode(&resp)
	assert.NoError(t, err)
	assert.Len(t, resp, 1)
}

func TestGetMyTicketsHandler(t *testing.T) {
	handler, service := NewMock(t)

	service.EXPECT().GetMyTickets(gomock.Any(), 5).Return([]domain.TicketGroup{
		{
			CompetitionID:    1,
			CompetitionTitle: "Win a MacBook Pro",
			DrawDate:         time.Now().Add(48 * time.Hour),
			Status:           domain.StatusLive,
			Tickets:          []int{3, 17, 42},
		},
	}, nil)

	req := httptest.NewRequest("GET", "/api/tickets/my", nil)
	rr := httptest.NewRecorder()

	handler.GetMyTickets(rr, authed(req, 5))

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp []map[string]any
	err := json.NewDecoder(rr.Body).Decode(&resp)
	assert.NoError(t, err)
	assert.Len(t, resp, 1)
	assert.Equal(t, "Win a MacBook Pro", resp[0]["competition_title"])
}
