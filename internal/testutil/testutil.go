package testutil

import (
	"time"

	"custombot/internal/domain"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestCommand creates a test command
func NewTestCommand(id, userID int64, key string, kind domain.ResponseKind, data string) domain.Command {
	return domain.Command{
		ID:        id,
		UserID:    userID,
		Key:       key,
		Kind:      kind,
		Data:      data,
		CreatedAt: time.Now(),
	}
}

// WithLink returns a copy of the command with the link set
func WithLink(c domain.Command, url string) domain.Command {
	c.Link = &url
	return c
}
