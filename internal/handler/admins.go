package handler

import (
	tele "gopkg.in/telebot.v3"
)

// AdminProvider queries the live administrator list of a group chat.
// It implements service.ChatAdminProvider on top of the bot API; every
// call hits the platform, nothing is cached.
type AdminProvider struct {
	bot *tele.Bot
}

// NewAdminProvider creates a new admin provider
func NewAdminProvider(bot *tele.Bot) *AdminProvider {
	return &AdminProvider{bot: bot}
}

// ListAdmins returns the user ids of the chat's current administrators
func (p *AdminProvider) ListAdmins(chatID int64) ([]int64, error) {
	members, err := p.bot.AdminsOf(&tele.Chat{ID: chatID})
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(members))
	for _, m := range members {
		if m.User != nil {
			ids = append(ids, m.User.ID)
		}
	}

	return ids, nil
}
