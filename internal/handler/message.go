package handler

import (
	"custombot/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleText handles plain text: an open flow consumes it, otherwise it
// is dispatched as a custom command trigger.
func (h *Handler) handleText(c tele.Context) error {
	proceed, err := h.precheck(c)
	if !proceed || err != nil {
		return err
	}

	return h.handleInbound(c, domain.TextIn{Text: c.Text()})
}

func (h *Handler) handleSticker(c tele.Context) error {
	proceed, err := h.precheck(c)
	if !proceed || err != nil {
		return err
	}

	return h.handleInbound(c, domain.StickerIn{FileID: c.Message().Sticker.FileID})
}

func (h *Handler) handlePhoto(c tele.Context) error {
	proceed, err := h.precheck(c)
	if !proceed || err != nil {
		return err
	}

	// telebot already keeps the last (largest) of the size variants the
	// platform sent.
	return h.handleInbound(c, domain.PhotoIn{Sizes: []string{c.Message().Photo.FileID}})
}

func (h *Handler) handleInbound(c tele.Context, in domain.Inbound) error {
	res, handled, err := h.conversation.HandleMessage(c.Sender().ID, in)
	if err != nil {
		h.logger.Error("Failed to handle flow message",
			zap.Int64("user_id", c.Sender().ID),
			zap.Error(err),
		)
		return nil
	}
	if handled {
		return h.sendStep(c, res)
	}

	// Only text can trigger a custom command.
	if text, ok := in.(domain.TextIn); ok {
		return h.dispatchText(c, text.Text)
	}
	return nil
}

// dispatchText resolves text to a custom command and sends its response.
// No match means no reply.
func (h *Handler) dispatchText(c tele.Context, text string) error {
	cmd, err := h.dispatcher.Resolve(c.Chat().ID, c.Sender().ID, isPrivate(c), text)
	if err != nil {
		h.logger.Error("Failed to dispatch message",
			zap.Int64("chat_id", c.Chat().ID),
			zap.Error(err),
		)
		return nil
	}
	if cmd == nil {
		return nil
	}

	return h.sendResponse(c, cmd)
}

// sendResponse renders a command response by kind. Only text responses
// reattach the stored link as a URL button; sticker and photo sends
// carry no button.
func (h *Handler) sendResponse(c tele.Context, cmd *domain.Command) error {
	switch cmd.Kind {
	case domain.ResponseText:
		var markup *tele.ReplyMarkup
		if cmd.Link != nil {
			markup = &tele.ReplyMarkup{
				InlineKeyboard: [][]tele.InlineButton{{
					{Text: "Link", URL: *cmd.Link},
				}},
			}
		}
		return h.reply(c, cmd.Data, markup)
	case domain.ResponseSticker:
		return h.reply(c, &tele.Sticker{File: tele.File{FileID: cmd.Data}}, nil)
	case domain.ResponsePhoto:
		return h.reply(c, &tele.Photo{File: tele.File{FileID: cmd.Data}}, nil)
	default:
		h.logger.Warn("Unknown response kind",
			zap.Int64("owner_id", cmd.UserID),
			zap.String("key", cmd.Key),
			zap.String("kind", string(cmd.Kind)),
		)
		return nil
	}
}
