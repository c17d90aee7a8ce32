package postgres

import (
	"database/sql"

	"custombot/internal/domain"
)

// UserRepo implements repository.UserRepository
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

// EnsureUserExists creates the user with an idle conversation state if
// it doesn't exist yet
func (r *UserRepo) EnsureUserExists(userID int64) error {
	idle, err := domain.EncodeState(domain.Idle{})
	if err != nil {
		return err
	}

	query := `
		INSERT INTO users (user_id, state)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO NOTHING
	`
	_, err = r.db.Exec(query, userID, idle)
	return err
}

// Exists reports whether the user has ever registered with the bot
func (r *UserRepo) Exists(userID int64) (bool, error) {
	var one int
	query := `SELECT 1 FROM users WHERE user_id = $1`
	err := r.db.QueryRow(query, userID).Scan(&one)

	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return true, nil
}

// GetState returns the user's persisted conversation state.
// Unknown users are idle.
func (r *UserRepo) GetState(userID int64) (domain.ConversationState, error) {
	var raw string
	query := `SELECT state FROM users WHERE user_id = $1`
	err := r.db.QueryRow(query, userID).Scan(&raw)

	if err == sql.ErrNoRows {
		return domain.Idle{}, nil
	}
	if err != nil {
		return nil, err
	}

	return domain.DecodeState(raw)
}

// SetState persists the user's conversation state
func (r *UserRepo) SetState(userID int64, state domain.ConversationState) error {
	raw, err := domain.EncodeState(state)
	if err != nil {
		return err
	}

	query := `UPDATE users SET state = $2 WHERE user_id = $1`
	_, err = r.db.Exec(query, userID, raw)
	return err
}
