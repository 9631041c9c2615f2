package orderrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/x67digital/raffle/internal/domain"
	"github.com/x67digital/raffle/internal/pg"
)

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface, *pg.MockTXManager) {
	ctrl := gomock.NewController(t)
	mockTxManager := pg.NewMockTXManager(ctrl)

	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB, mockTxManager)
	defer mockDB.Close()
	defer ctrl.Finish()

	return repo, mockDB, mockTxManager
}

func orderRows(t time.Time) *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"id", "user_id", "competition_id", "ticket_numbers", "quantity",
		"total_price", "payment_status", "payment_id", "created_at",
	}).AddRow(42, 5, 1, []int{3, 17, 42}, 3, 14.97, "pending", (*string)(nil), t)
}

func TestRepository_FindByID(t *testing.T) {
	repo, mock, _ := NewMock(t)
	now := time.Now()

	tests := []struct {
		name      string
		id        int
		mockSetup func()
		expectErr bool
		result    *domain.Order
	}{
		{
			name: "Order exists",
			id:   42,
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("FROM orders")).
					WithArgs(42).
					WillReturnRows(orderRows(now))
			},
			expectErr: false,
			result: &domain.Order{
				ID:            42,
				UserID:        5,
				CompetitionID: 1,
				TicketNumbers: []int{3, 17, 42},
				Quantity:      3,
				TotalPrice:    14.97,
				PaymentStatus: "pending",
				CreatedAt:     now,
			},
		},
		{
			name: "Order does not exist",
			id:   99,
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("FROM orders")).
					WithArgs(99).
					WillReturnError(pgx.ErrNoRows)
			},
			expectErr: false,
			result:    nil,
		},
		{
			name: "Database error",
			id:   42,
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("FROM orders")).
					WithArgs(42).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
			result:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.FindByID(context.Background(), tt.id)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.result, result)
		})
	}
}

func TestRepository_Save(t *testing.T) {
	repo, mock, txManager := NewMock(t)
	now := time.Now()

	txManager.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		})
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO orders")).
		WithArgs(5, 1, []int{3, 17, 42}, 3, 14.97, "pending").
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(42, now))

	order := &domain.Order{
		UserID:        5,
		CompetitionID: 1,
		TicketNumbers: []int{3, 17, 42},
		Quantity:      3,
		TotalPrice:    14.97,
		PaymentStatus: "pending",
	}
	err := repo.Save(context.Background(), order)
	assert.NoError(t, err)
	assert.Equal(t, 42, order.ID)
	assert.Equal(t, now, order.CreatedAt)
}

func TestRepository_UsedNumbers(t *testing.T) {
	repo, mock, _ := NewMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM ticket_claims")).
		WithArgs(1).
		WillReturnRows(pgxmock.NewRows([]string{"ticket_number"}).
			AddRow(3).AddRow(17).AddRow(42))

	numbers, err := repo.UsedNumbers(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, []int{3, 17, 42}, numbers)
}

func TestRepository_ClaimTickets(t *testing.T) {
	repo, mock, _ := NewMock(t)

	tests := []struct {
		name        string
		mockSetup   func()
		expectedErr error
	}{
		{
			name: "Claims inserted",
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta("INSERT INTO ticket_claims")).
					WithArgs(1, []int{3, 17, 42}, 42).
					WillReturnResult(pgxmock.NewResult("INSERT", 3))
			},
			expectedErr: nil,
		},
		{
			name: "Number already claimed",
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta("INSERT INTO ticket_claims")).
					WithArgs(1, []int{3, 17, 42}, 42).
					WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})
			},
			expectedErr: ErrDuplicateTicket,
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta("INSERT INTO ticket_claims")).
					WithArgs(1, []int{3, 17, 42}, 42).
					WillReturnError(errors.New("database error"))
			},
			expectedErr: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			err := repo.ClaimTickets(context.Background(), 1, 42, []int{3, 17, 42})
			if tt.expectedErr != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedErr.Error(), err.Error())
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRepository_ReleaseTickets(t *testing.T) {
	repo, mock, _ := NewMock(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM ticket_claims")).
		WithArgs(42).
		WillReturnResult(pgxmock.NewResult("DELETE", 3))

	assert.NoError(t, repo.ReleaseTickets(context.Background(), 42))
}

func TestRepository_MarkCompleted(t *testing.T) {
	repo, mock, _ := NewMock(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE orders")).
		WithArgs("viva_abcd1234", 42).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	assert.NoError(t, repo.MarkCompleted(context.Background(), 42, "viva_abcd1234"))
}

func TestRepository_MarkRefunded(t *testing.T) {
	repo, mock, _ := NewMock(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE orders")).
		WithArgs(42).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	assert.NoError(t, repo.MarkRefunded(context.Background(), 42))
}

func TestRepository_FindCompletedByCompetition(t *testing.T) {
	repo, mock, _ := NewMock(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("payment_status = 'completed'")).
		WithArgs(1).
		WillReturnRows(orderRows(now))

	orders, err := repo.FindCompletedByCompetition(context.Background(), 1)
	assert.NoError(t, err)
	assert.Len(t, orders, 1)
	assert.Equal(t, []int{3, 17, 42}, orders[0].TicketNumbers)
}

func TestRepository_CompletedStats(t *testing.T) {
	repo, mock, _ := NewMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("coalesce(sum(total_price), 0)")).
		WillReturnRows(pgxmock.NewRows([]string{"count", "coalesce"}).AddRow(450, 2245.50))

	count, revenue, err := repo.CompletedStats(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 450, count)
	assert.InDelta(t, 2245.50, revenue, 0.001)
}

func TestRepository_TicketsSoldSince(t *testing.T) {
	repo, mock, _ := NewMock(t)
	since := time.Now().UTC().Truncate(24 * time.Hour)

	mock.ExpectQuery(regexp.QuoteMeta("coalesce(sum(quantity), 0)")).
		WithArgs(since).
		WillReturnRows(pgxmock.NewRows([]string{"coalesce"}).AddRow(31))

	sold, err := repo.TicketsSoldSince(context.Background(), since)
	assert.NoError(t, err)
	assert.Equal(t, 31, sold)
}
