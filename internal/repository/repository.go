package repository

import (
	"custombot/internal/domain"
)

// UserRepository defines user data operations. Conversation state is
// persisted here so an open flow survives process restarts.
type UserRepository interface {
	EnsureUserExists(userID int64) error
	Exists(userID int64) (bool, error)
	GetState(userID int64) (domain.ConversationState, error)
	SetState(userID int64, state domain.ConversationState) error
}

// CommandRepository defines command data operations. Keys passed in are
// expected to be normalized already (see domain.NormalizeKey).
type CommandRepository interface {
	Create(userID int64, key string, kind domain.ResponseKind, data string) error
	Delete(userID int64, key string) error
	Find(userID int64, key string) (*domain.Command, error)
	ListByUser(userID int64) ([]domain.Command, error)
	AttachLink(userID int64, key, url string) error
}
