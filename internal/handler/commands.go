package handler

import (
	"strings"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const helpText = `Available commands:

/add - Add a new command
/remove - Remove a command
/commands - Show commands of all admins of the chat
/mycommands - Show my commands

/cancel - Cancel current action

/help - Show this message
/start - Start the bot`

// handleStart handles /start. Reaching it in private already registered
// the user.
func (h *Handler) handleStart(c tele.Context) error {
	h.logger.Info("User started bot",
		zap.Int64("user_id", c.Sender().ID),
		zap.String("username", c.Sender().Username),
	)

	return h.reply(c, "Welcome! Use /help for command list", nil)
}

func (h *Handler) handleHelp(c tele.Context) error {
	return h.reply(c, helpText, nil)
}

func (h *Handler) handleCancel(c tele.Context) error {
	res, err := h.conversation.Cancel(c.Sender().ID)
	if err != nil {
		h.logger.Error("Failed to cancel flow", zap.Error(err))
		return nil
	}
	return h.sendStep(c, res)
}

func (h *Handler) handleAdd(c tele.Context) error {
	res, err := h.conversation.StartAdd(c.Sender().ID)
	if err != nil {
		h.logger.Error("Failed to start add flow", zap.Error(err))
		return nil
	}
	return h.sendStep(c, res)
}

// handleRemove handles /remove. An inline argument removes that key
// directly; without one the remove flow opens.
func (h *Handler) handleRemove(c tele.Context) error {
	inline := ""
	if m := c.Message(); m != nil {
		inline = strings.TrimSpace(m.Payload)
	}

	res, err := h.conversation.StartRemove(c.Sender().ID, inline)
	if err != nil {
		h.logger.Error("Failed to handle remove", zap.Error(err))
		return nil
	}
	return h.sendStep(c, res)
}

// handleMyCommands lists the sender's own command keys.
func (h *Handler) handleMyCommands(c tele.Context) error {
	owned, err := h.commands.ListByUser(c.Sender().ID)
	if err != nil {
		h.logger.Error("Failed to list commands", zap.Error(err))
		return nil
	}

	if len(owned) == 0 {
		return h.reply(c, "You have no commands. You can create one with command /add", nil)
	}

	keys := make([]string, 0, len(owned))
	for _, cmd := range owned {
		keys = append(keys, cmd.Key)
	}

	return h.reply(c, "Your commands: "+strings.Join(keys, ", "), nil)
}

// handleChatCommands lists the chat's effective command set: the
// sender's own commands in private, the aggregated admin set in groups.
func (h *Handler) handleChatCommands(c tele.Context) error {
	var keys []string

	if isPrivate(c) {
		owned, err := h.commands.ListByUser(c.Sender().ID)
		if err != nil {
			h.logger.Error("Failed to list commands", zap.Error(err))
			return nil
		}
		for _, cmd := range owned {
			keys = append(keys, cmd.Key)
		}
	} else {
		aggregated, err := h.aggregator.ChatCommands(c.Chat().ID)
		if err != nil {
			h.logger.Error("Failed to aggregate chat commands", zap.Error(err))
			return nil
		}
		for _, cmd := range aggregated {
			keys = append(keys, cmd.Key)
		}
	}

	if len(keys) == 0 {
		return h.reply(c, "No one of chat admins have added commands", nil)
	}

	return h.reply(c, "Commands of this chat: "+strings.Join(keys, ", "), nil)
}
