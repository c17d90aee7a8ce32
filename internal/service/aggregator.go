package service

import (
	"fmt"

	"custombot/internal/domain"
	"custombot/internal/repository"

	"go.uber.org/zap"
)

// ChatAdminProvider returns the current administrator ids of a group
// chat. Implemented by the transport; always a live query, the core
// never caches admin lists across updates.
type ChatAdminProvider interface {
	ListAdmins(chatID int64) ([]int64, error)
}

// AdminAggregator computes the effective command set of a group chat:
// the union of commands owned by those chat administrators that have
// registered with the bot.
type AdminAggregator struct {
	users    repository.UserRepository
	commands repository.CommandRepository
	admins   ChatAdminProvider
	logger   *zap.Logger
}

// NewAdminAggregator creates a new admin aggregator
func NewAdminAggregator(
	users repository.UserRepository,
	commands repository.CommandRepository,
	admins ChatAdminProvider,
	logger *zap.Logger,
) *AdminAggregator {
	return &AdminAggregator{
		users:    users,
		commands: commands,
		admins:   admins,
		logger:   logger,
	}
}

// HasRegisteredAdmins reports whether at least one current admin of the
// chat has registered with the bot.
func (a *AdminAggregator) HasRegisteredAdmins(chatID int64) (bool, error) {
	admins, err := a.admins.ListAdmins(chatID)
	if err != nil {
		return false, fmt.Errorf("failed to list chat admins: %w", err)
	}

	for _, adminID := range admins {
		registered, err := a.users.Exists(adminID)
		if err != nil {
			return false, fmt.Errorf("failed to check registration: %w", err)
		}
		if registered {
			return true, nil
		}
	}

	return false, nil
}

// ChatCommands returns the aggregated command set of the chat, in
// admin-list order. The order across admins owning the same key is
// whatever the platform returned; no priority is defined.
func (a *AdminAggregator) ChatCommands(chatID int64) ([]domain.Command, error) {
	admins, err := a.admins.ListAdmins(chatID)
	if err != nil {
		return nil, fmt.Errorf("failed to list chat admins: %w", err)
	}

	var commands []domain.Command
	for _, adminID := range admins {
		registered, err := a.users.Exists(adminID)
		if err != nil {
			return nil, fmt.Errorf("failed to check registration: %w", err)
		}
		if !registered {
			a.logger.Debug("Skipping unregistered admin",
				zap.Int64("chat_id", chatID),
				zap.Int64("admin_id", adminID),
			)
			continue
		}

		owned, err := a.commands.ListByUser(adminID)
		if err != nil {
			return nil, fmt.Errorf("failed to list admin commands: %w", err)
		}
		commands = append(commands, owned...)
	}

	return commands, nil
}
