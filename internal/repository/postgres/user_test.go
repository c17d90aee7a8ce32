package postgres

import (
	"database/sql"
	"fmt"
	"testing"

	"custombot/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestUserRepo_EnsureUserExists(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewUserRepo(db)

	userID := int64(123)
	idle, err := domain.EncodeState(domain.Idle{})
	assert.NoError(t, err)

	mock.ExpectExec("INSERT INTO users").
		WithArgs(userID, idle).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = repo.EnsureUserExists(userID)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_Exists(t *testing.T) {
	tests := []struct {
		name          string
		userID        int64
		mockRows      *sqlmock.Rows
		mockError     error
		expected      bool
		expectedError bool
	}{
		{
			name:     "user exists",
			userID:   123,
			mockRows: sqlmock.NewRows([]string{"?column?"}).AddRow(1),
			expected: true,
		},
		{
			name:      "user does not exist",
			userID:    456,
			mockError: sql.ErrNoRows,
			expected:  false,
		},
		{
			name:          "query error",
			userID:        789,
			mockError:     fmt.Errorf("connection lost"),
			expected:      false,
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			assert.NoError(t, err)
			defer db.Close()

			repo := NewUserRepo(db)

			query := "SELECT 1 FROM users WHERE user_id = \\$1"
			if tt.mockError != nil {
				mock.ExpectQuery(query).WithArgs(tt.userID).WillReturnError(tt.mockError)
			} else {
				mock.ExpectQuery(query).WithArgs(tt.userID).WillReturnRows(tt.mockRows)
			}

			exists, err := repo.Exists(tt.userID)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.expected, exists)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepo_GetState(t *testing.T) {
	tests := []struct {
		name          string
		userID        int64
		mockRows      *sqlmock.Rows
		mockError     error
		expected      domain.ConversationState
		expectedError bool
	}{
		{
			name:     "idle state",
			userID:   123,
			mockRows: sqlmock.NewRows([]string{"state"}).AddRow(`{"phase":"idle"}`),
			expected: domain.Idle{},
		},
		{
			name:     "state with key",
			userID:   123,
			mockRows: sqlmock.NewRows([]string{"state"}).AddRow(`{"phase":"adding_response","key":"greet"}`),
			expected: domain.AddingResponse{Key: "greet"},
		},
		{
			name:      "unknown user is idle",
			userID:    456,
			mockError: sql.ErrNoRows,
			expected:  domain.Idle{},
		},
		{
			name:          "corrupted state",
			userID:        123,
			mockRows:      sqlmock.NewRows([]string{"state"}).AddRow("garbage"),
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			assert.NoError(t, err)
			defer db.Close()

			repo := NewUserRepo(db)

			query := "SELECT state FROM users WHERE user_id = \\$1"
			if tt.mockError != nil {
				mock.ExpectQuery(query).WithArgs(tt.userID).WillReturnError(tt.mockError)
			} else {
				mock.ExpectQuery(query).WithArgs(tt.userID).WillReturnRows(tt.mockRows)
			}

			state, err := repo.GetState(tt.userID)

			if tt.expectedError {
				assert.Error(t, err)
				assert.Nil(t, state)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, state)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepo_SetState(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewUserRepo(db)

	userID := int64(123)
	encoded, err := domain.EncodeState(domain.AddingLink{Key: "greet"})
	assert.NoError(t, err)

	mock.ExpectExec("UPDATE users SET state").
		WithArgs(userID, encoded).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.SetState(userID, domain.AddingLink{Key: "greet"})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
