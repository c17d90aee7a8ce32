package postgres

import (
	"database/sql"
	"errors"

	"custombot/internal/domain"

	"github.com/lib/pq"
)

// pq error code for unique constraint violations.
const uniqueViolation = "23505"

// CommandRepo implements repository.CommandRepository
type CommandRepo struct {
	db *sql.DB
}

// NewCommandRepo creates a new command repository
func NewCommandRepo(db *sql.DB) *CommandRepo {
	return &CommandRepo{db: db}
}

// Create inserts a new command. Returns domain.ErrDuplicateKey when the
// user already owns a command with this key.
func (r *CommandRepo) Create(userID int64, key string, kind domain.ResponseKind, data string) error {
	query := `
		INSERT INTO commands (user_id, key, response_kind, response_data)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.db.Exec(query, userID, key, string(kind), data)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return domain.ErrDuplicateKey
	}

	return err
}

// Delete removes the user's command with the given key. Returns
// domain.ErrCommandNotFound when there is no such command.
func (r *CommandRepo) Delete(userID int64, key string) error {
	query := `DELETE FROM commands WHERE user_id = $1 AND key = $2`
	res, err := r.db.Exec(query, userID, key)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrCommandNotFound
	}

	return nil
}

// Find returns the user's command with the given key, or nil when there
// is none
func (r *CommandRepo) Find(userID int64, key string) (*domain.Command, error) {
	var c domain.Command
	var link sql.NullString
	query := `
		SELECT id, user_id, key, response_kind, response_data, response_link, created_at
		FROM commands
		WHERE user_id = $1 AND key = $2
	`
	err := r.db.QueryRow(query, userID, key).Scan(
		&c.ID, &c.UserID, &c.Key, &c.Kind, &c.Data, &link, &c.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if link.Valid {
		c.Link = &link.String
	}

	return &c, nil
}

// ListByUser returns all commands owned by the user, oldest first
func (r *CommandRepo) ListByUser(userID int64) ([]domain.Command, error) {
	query := `
		SELECT id, user_id, key, response_kind, response_data, response_link, created_at
		FROM commands
		WHERE user_id = $1
		ORDER BY created_at, id
	`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var commands []domain.Command
	for rows.Next() {
		var c domain.Command
		var link sql.NullString
		if err := rows.Scan(&c.ID, &c.UserID, &c.Key, &c.Kind, &c.Data, &link, &c.CreatedAt); err != nil {
			return nil, err
		}
		if link.Valid {
			c.Link = &link.String
		}
		commands = append(commands, c)
	}

	return commands, rows.Err()
}

// AttachLink sets the link of the user's command with the given key.
// Returns domain.ErrCommandNotFound when there is no such command.
func (r *CommandRepo) AttachLink(userID int64, key, url string) error {
	query := `UPDATE commands SET response_link = $3 WHERE user_id = $1 AND key = $2`
	res, err := r.db.Exec(query, userID, key, url)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrCommandNotFound
	}

	return nil
}
