package handler

import (
	"fmt"

	"custombot/internal/repository"
	"custombot/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Handler manages all bot interactions
type Handler struct {
	bot          *tele.Bot
	conversation *service.ConversationService
	dispatcher   *service.DispatcherService
	aggregator   *service.AdminAggregator
	users        repository.UserRepository
	commands     repository.CommandRepository
	logger       *zap.Logger
}

// NewHandler creates a new handler instance
func NewHandler(
	bot *tele.Bot,
	conversation *service.ConversationService,
	dispatcher *service.DispatcherService,
	aggregator *service.AdminAggregator,
	users repository.UserRepository,
	commands repository.CommandRepository,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		bot:          bot,
		conversation: conversation,
		dispatcher:   dispatcher,
		aggregator:   aggregator,
		users:        users,
		commands:     commands,
		logger:       logger,
	}
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	// Commands
	h.bot.Handle("/start", h.command(h.handleStart))
	h.bot.Handle("/help", h.command(h.handleHelp))
	h.bot.Handle("/cancel", h.command(h.handleCancel))
	h.bot.Handle("/add", h.command(h.handleAdd))
	h.bot.Handle("/remove", h.command(h.handleRemove))
	h.bot.Handle("/mycommands", h.command(h.handleMyCommands))
	h.bot.Handle("/commands", h.command(h.handleChatCommands))

	// Plain messages
	h.bot.Handle(tele.OnText, h.handleText)
	h.bot.Handle(tele.OnSticker, h.handleSticker)
	h.bot.Handle(tele.OnPhoto, h.handlePhoto)

	// Inline buttons
	h.bot.Handle(tele.OnCallback, h.handleCallback)
}

// SetupCommands publishes the bot command menu
func (h *Handler) SetupCommands() error {
	return h.bot.SetCommands([]tele.Command{
		{Text: "add", Description: "Add a new command"},
		{Text: "remove", Description: "Remove a command"},
		{Text: "commands", Description: "Show commands of all admins of the chat"},
		{Text: "mycommands", Description: "Show my commands"},
		{Text: "cancel", Description: "Cancel current action"},
		{Text: "help", Description: "Show help"},
		{Text: "start", Description: "Start the bot"},
	})
}

// command wraps a /command handler with the group gate, lazy private
// registration and the group rule that commands from unregistered
// senders fall through to plain dispatch.
func (h *Handler) command(fn tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		proceed, err := h.precheck(c)
		if !proceed || err != nil {
			return err
		}

		if !isPrivate(c) {
			registered, err := h.users.Exists(c.Sender().ID)
			if err != nil {
				h.logger.Error("Failed to check registration", zap.Error(err))
				return nil
			}
			if !registered {
				return h.dispatchText(c, c.Text())
			}
		}

		return fn(c)
	}
}

// precheck enforces the per-chat entry rules: lazy user registration in
// private chats, the registered-admins gate in groups. Returns false
// when processing must stop.
func (h *Handler) precheck(c tele.Context) (bool, error) {
	if c.Sender() == nil {
		return false, nil
	}

	if isPrivate(c) {
		if err := h.users.EnsureUserExists(c.Sender().ID); err != nil {
			h.logger.Error("Failed to ensure user exists",
				zap.Int64("user_id", c.Sender().ID),
				zap.Error(err),
			)
			return false, nil
		}
		return true, nil
	}

	ok, err := h.aggregator.HasRegisteredAdmins(c.Chat().ID)
	if err != nil {
		h.logger.Error("Failed to check chat admins",
			zap.Int64("chat_id", c.Chat().ID),
			zap.Error(err),
		)
		return false, nil
	}
	if !ok {
		text := fmt.Sprintf(
			"No one of admins of this chat has registered. Please, start the bot: @%s",
			h.bot.Me.Username,
		)
		return false, h.reply(c, text, nil)
	}

	return true, nil
}

func isPrivate(c tele.Context) bool {
	return c.Chat() != nil && c.Chat().Type == tele.ChatPrivate
}

// reply sends a message threaded to the originating one.
func (h *Handler) reply(c tele.Context, what interface{}, markup *tele.ReplyMarkup) error {
	opts := &tele.SendOptions{}
	if m := c.Message(); m != nil {
		opts.ReplyTo = m
		opts.ThreadID = m.ThreadID
	}
	if markup != nil {
		opts.ReplyMarkup = markup
	}
	return c.Send(what, opts)
}

// sendStep renders a conversation step reply.
func (h *Handler) sendStep(c tele.Context, res *service.StepResult) error {
	if res == nil {
		return nil
	}

	var markup *tele.ReplyMarkup
	switch {
	case len(res.RemoveKeyboard) > 0:
		markup = removeKeyboard(res.RemoveKeyboard)
	case res.OfferLinkKey != "":
		markup = addLinkMarkup(res.OfferLinkKey)
	}

	return h.reply(c, res.Text, markup)
}

// removeKeyboard builds the selectable key list shown by the remove
// prompt, one key per row.
func removeKeyboard(keys []string) *tele.ReplyMarkup {
	rows := make([][]tele.ReplyButton, 0, len(keys))
	for _, key := range keys {
		rows = append(rows, []tele.ReplyButton{{Text: key}})
	}

	return &tele.ReplyMarkup{
		ReplyKeyboard:   rows,
		ResizeKeyboard:  true,
		OneTimeKeyboard: true,
		Selective:       true,
	}
}

// addLinkMarkup builds the inline "Add link" button attached to the
// saved-command confirmation.
func addLinkMarkup(key string) *tele.ReplyMarkup {
	return &tele.ReplyMarkup{
		InlineKeyboard: [][]tele.InlineButton{{
			{Text: "Add link", Data: encodeCallback(callbackAddLink, key)},
		}},
	}
}
