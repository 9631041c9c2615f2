package userrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"

	"github.com/x67digital/raffle/internal/domain"
)

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB)
	defer mockDB.Close()

	return repo, mockDB
}

func userRows(t time.Time) *pgxmock.Rows {
	return pgxmock.NewRows([]string{"id", "email", "full_name", "password_hash", "role", "created_at"}).
		AddRow(1, "user@example.com", "Test User", "hashedpassword", "user", t)
}

func TestRepository_FindByEmail(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()

	tests := []struct {
		name      string
		email     string
		mockSetup func()
		expectErr bool
		result    *domain.User
	}{
		{
			name:  "User exists",
			email: "user@example.com",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("WHERE email = $1")).
					WithArgs("user@example.com").
					WillReturnRows(userRows(now))
			},
			result: &domain.User{
				ID:           1,
				Email:        "user@example.com",
				FullName:     "Test User",
				PasswordHash: "hashedpassword",
				Role:         "user",
				CreatedAt:    now,
			},
		},
		{
			name:  "User does not exist",
			email: "nobody@example.com",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("WHERE email = $1")).
					WithArgs("nobody@example.com").
					WillReturnError(pgx.ErrNoRows)
			},
			result: nil,
		},
		{
			name:  "Database error",
			email: "user@example.com",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("WHERE email = $1")).
					WithArgs("user@example.com").
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.FindByEmail(context.Background(), tt.email)
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.result, result)
		})
	}
}

func TestRepository_Create(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs("user@example.com", "Test User", "hashedpassword", "user").
		WillReturnRows(userRows(now))

	created, err := repo.Create(context.Background(), &domain.User{
		Email:        "user@example.com",
		FullName:     "Test User",
		PasswordHash: "hashedpassword",
		Role:         "user",
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, created.ID)
}

func TestRepository_List(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("FROM users")).
		WillReturnRows(userRows(now))

	users, err := repo.List(context.Background())
	assert.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestRepository_Count(t *testing.T) {
	repo, mock := NewMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("count(*)")).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(120))

	count, err := repo.Count(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 120, count)
}
