package service

import (
	"fmt"

	"custombot/internal/domain"
	"custombot/internal/repository"

	"go.uber.org/zap"
)

// DispatcherService resolves a plain-text message with no open flow to
// the command it triggers, if any.
type DispatcherService struct {
	commands   repository.CommandRepository
	aggregator *AdminAggregator
	logger     *zap.Logger
}

// NewDispatcherService creates a new dispatcher service
func NewDispatcherService(
	commands repository.CommandRepository,
	aggregator *AdminAggregator,
	logger *zap.Logger,
) *DispatcherService {
	return &DispatcherService{
		commands:   commands,
		aggregator: aggregator,
		logger:     logger,
	}
}

// Resolve returns the first command whose key matches the text, or nil
// when nothing matches. In private chats only the sender's own commands
// are considered; in groups the chat's aggregated set is.
func (s *DispatcherService) Resolve(chatID, senderID int64, private bool, text string) (*domain.Command, error) {
	var candidates []domain.Command
	var err error

	if private {
		candidates, err = s.commands.ListByUser(senderID)
		if err != nil {
			return nil, fmt.Errorf("failed to list commands: %w", err)
		}
	} else {
		candidates, err = s.aggregator.ChatCommands(chatID)
		if err != nil {
			return nil, err
		}
	}

	key := domain.NormalizeKey(text)
	for i := range candidates {
		if candidates[i].Key == key {
			s.logger.Debug("Matched command",
				zap.Int64("chat_id", chatID),
				zap.Int64("owner_id", candidates[i].UserID),
				zap.String("key", key),
			)
			return &candidates[i], nil
		}
	}

	return nil, nil
}
