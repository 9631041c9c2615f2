package winners

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/x67digital/raffle/internal/domain"
)

func NewMock(t *testing.T) (*WinnerHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service)
	defer ctrl.Finish()
	return handler, service
}

func TestListHandler(t *testing.T) {
	handler, service := NewMock(t)

	service.EXPECT().Winners(gomock.Any()).Return([]domain.Winner{
		{
			ID:               1,
			CompetitionID:    1,
			CompetitionTitle: "Win a MacBook Pro",
			UserID:           5,
			UserName:         "Test User",
			WinningTicket:    42,
			PrizeValue:       2499,
			DrawnAt:          time.Now(),
		},
	}, nil)

	req := httptest.NewRequest("GET", "/api/winners", nil)
	rr := httptest.NewRecorder()

	handler.List(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp []map[string]any
	err := json.NewDecoder(rr.Body).Decode(&resp)
	assert.NoError(t, err)
	assert.Len(t, resp, 1)
	assert.Equal(t, float64(42), resp[0]["winning_ticket"])
}

func TestListHandler_Error(t *testing.T) {
	handler, service := NewMock(t)

	service.EXPECT().Winners(gomock.Any()).Return(nil, errors.New("database error"))

	req := httptest.NewRequest("GET", "/api/winners", nil)
	rr := httptest.NewRecorder()

	handler.List(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
