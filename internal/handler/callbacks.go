package handler

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Callback payloads are newline-delimited: command, then arguments.
const callbackAddLink = "add_link"

func encodeCallback(command string, args ...string) string {
	return strings.Join(append([]string{command}, args...), "\n")
}

func parseCallback(data string) (string, []string, error) {
	parts := strings.Split(data, "\n")
	if parts[0] == "" {
		return "", nil, fmt.Errorf("empty callback command")
	}
	return parts[0], parts[1:], nil
}

// handleCallback handles inline button presses
func (h *Handler) handleCallback(c tele.Context) error {
	cb := c.Callback()
	if cb == nil {
		return nil
	}

	command, args, err := parseCallback(cb.Data)
	if err != nil {
		h.logger.Warn("Malformed callback data",
			zap.String("data", cb.Data),
			zap.Error(err),
		)
		return c.Respond()
	}

	switch command {
	case callbackAddLink:
		return h.handleAddLinkCallback(c, args)
	default:
		h.logger.Warn("Unhandled callback command", zap.String("command", command))
		return c.Respond()
	}
}

// handleAddLinkCallback opens the link sub-flow. The button sits on the
// bot's reply to the message that finished the add flow, so only the
// author of that message may press it; anyone else is ignored without a
// reply.
func (h *Handler) handleAddLinkCallback(c tele.Context, args []string) error {
	if len(args) != 1 {
		h.logger.Warn("Malformed add_link callback", zap.Strings("args", args))
		return c.Respond()
	}

	origin := c.Callback().Message
	if origin == nil || origin.ReplyTo == nil || origin.ReplyTo.Sender == nil ||
		origin.ReplyTo.Sender.ID != c.Sender().ID {
		h.logger.Warn("Ignoring add_link callback from non-author",
			zap.Int64("from_id", c.Sender().ID),
			zap.String("key", args[0]),
		)
		return nil
	}

	res, err := h.conversation.BeginAttachLink(c.Sender().ID, args[0])
	if err != nil {
		h.logger.Error("Failed to start link flow",
			zap.Int64("user_id", c.Sender().ID),
			zap.Error(err),
		)
		return c.Respond()
	}

	if err := h.sendStep(c, res); err != nil {
		h.logger.Error("Failed to send link prompt", zap.Error(err))
	}
	return c.Respond()
}
