package service

import (
	"fmt"
	"strings"

	"custombot/internal/domain"
	"custombot/internal/repository"

	"go.uber.org/zap"
)

// StepResult describes the reply a flow step wants sent back to the user.
type StepResult struct {
	Text string

	// RemoveKeyboard holds the user's command keys to offer as a
	// selectable reply keyboard (remove prompt).
	RemoveKeyboard []string

	// OfferLinkKey, when set, asks the transport to attach an inline
	// "Add link" button referencing this command key.
	OfferLinkKey string
}

// ConversationService is the state machine behind the multi-step
// command authoring and removal flows. Each step reads the persisted
// state, applies a transition and answers with a StepResult; nothing is
// kept in memory between steps, so flows survive restarts.
type ConversationService struct {
	users    repository.UserRepository
	commands repository.CommandRepository
	logger   *zap.Logger
}

// NewConversationService creates a new conversation service
func NewConversationService(
	users repository.UserRepository,
	commands repository.CommandRepository,
	logger *zap.Logger,
) *ConversationService {
	return &ConversationService{
		users:    users,
		commands: commands,
		logger:   logger,
	}
}

// StartAdd opens the add flow. An already open flow is discarded.
func (s *ConversationService) StartAdd(userID int64) (*StepResult, error) {
	if err := s.users.SetState(userID, domain.AddingKey{}); err != nil {
		return nil, fmt.Errorf("failed to start add flow: %w", err)
	}

	return &StepResult{Text: "Send me a key or /cancel"}, nil
}

// Cancel closes any open flow. Cancelling while idle is a no-op that
// still confirms.
func (s *ConversationService) Cancel(userID int64) (*StepResult, error) {
	if err := s.users.SetState(userID, domain.Idle{}); err != nil {
		return nil, fmt.Errorf("failed to cancel flow: %w", err)
	}

	return &StepResult{Text: "Cancelled"}, nil
}

// StartRemove handles /remove. With an inline key argument the command
// is deleted immediately; without one the remove flow is opened and the
// user's keys are offered as a keyboard.
func (s *ConversationService) StartRemove(userID int64, inlineKey string) (*StepResult, error) {
	commands, err := s.commands.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list commands: %w", err)
	}
	if len(commands) == 0 {
		return &StepResult{Text: "You have no commands"}, nil
	}

	if inlineKey != "" {
		key := domain.NormalizeKey(inlineKey)
		switch err := s.commands.Delete(userID, key); err {
		case nil:
			return &StepResult{Text: fmt.Sprintf("Command %q removed", key)}, nil
		case domain.ErrCommandNotFound:
			return &StepResult{Text: "No such command"}, nil
		default:
			return nil, fmt.Errorf("failed to remove command: %w", err)
		}
	}

	if err := s.users.SetState(userID, domain.RemovingKey{}); err != nil {
		return nil, fmt.Errorf("failed to start remove flow: %w", err)
	}

	keys := make([]string, 0, len(commands))
	for _, c := range commands {
		keys = append(keys, c.Key)
	}

	return &StepResult{
		Text:           "Send me a key of a command to remove or /cancel",
		RemoveKeyboard: keys,
	}, nil
}

// BeginAttachLink opens the link sub-flow for an already saved command.
func (s *ConversationService) BeginAttachLink(userID int64, key string) (*StepResult, error) {
	key = domain.NormalizeKey(key)

	cmd, err := s.commands.Find(userID, key)
	if err != nil {
		return nil, fmt.Errorf("failed to look up command: %w", err)
	}
	if cmd == nil {
		return &StepResult{Text: "No such command"}, nil
	}

	if err := s.users.SetState(userID, domain.AddingLink{Key: key}); err != nil {
		return nil, fmt.Errorf("failed to start link flow: %w", err)
	}

	return &StepResult{Text: "Send me a link or /cancel"}, nil
}

// HandleMessage interprets an inbound message against the user's open
// flow. The second return value reports whether a flow consumed the
// message; when false the message should go to command dispatch instead.
func (s *ConversationService) HandleMessage(userID int64, in domain.Inbound) (*StepResult, bool, error) {
	state, err := s.users.GetState(userID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load conversation state: %w", err)
	}

	switch st := state.(type) {
	case domain.Idle:
		return nil, false, nil
	case domain.AddingKey:
		res, err := s.submitKey(userID, in)
		return res, true, err
	case domain.AddingResponse:
		res, err := s.submitResponse(userID, st.Key, in)
		return res, true, err
	case domain.AddingLink:
		res, err := s.submitLink(userID, st.Key, in)
		return res, true, err
	case domain.RemovingKey:
		res, err := s.submitRemoveKey(userID, in)
		return res, true, err
	default:
		return nil, false, fmt.Errorf("unknown conversation state %T", state)
	}
}

func (s *ConversationService) submitKey(userID int64, in domain.Inbound) (*StepResult, error) {
	text, ok := in.(domain.TextIn)
	if !ok {
		return &StepResult{Text: "Key must be a text, try again or /cancel"}, nil
	}

	key := domain.NormalizeKey(text.Text)
	if key == "" {
		return &StepResult{Text: "Key must be a text, try again or /cancel"}, nil
	}

	existing, err := s.commands.Find(userID, key)
	if err != nil {
		return nil, fmt.Errorf("failed to look up command: %w", err)
	}
	if existing != nil {
		// Stay in AddingKey so the user can pick another key.
		return &StepResult{Text: "You already have a command with this key, try again or /cancel"}, nil
	}

	if err := s.users.SetState(userID, domain.AddingResponse{Key: key}); err != nil {
		return nil, fmt.Errorf("failed to advance add flow: %w", err)
	}

	return &StepResult{Text: fmt.Sprintf("Key: %s\nNow send me what to response or /cancel", key)}, nil
}

func (s *ConversationService) submitResponse(userID int64, key string, in domain.Inbound) (*StepResult, error) {
	kind, data, err := deriveResponse(in)
	if err != nil {
		return &StepResult{Text: "Unsupported message type, try again or /cancel"}, nil
	}

	if err := s.commands.Create(userID, key, kind, data); err != nil {
		s.logger.Warn("Failed to save command",
			zap.Int64("user_id", userID),
			zap.String("key", key),
			zap.Error(err),
		)
		return &StepResult{Text: "Failed to save command with this response, try again or /cancel"}, nil
	}

	if err := s.users.SetState(userID, domain.Idle{}); err != nil {
		return nil, fmt.Errorf("failed to close add flow: %w", err)
	}

	res := &StepResult{Text: "Command saved"}
	// Stickers carry no caption or URL button, so no link offer for them.
	if kind == domain.ResponseText || kind == domain.ResponsePhoto {
		res.OfferLinkKey = key
	}

	return res, nil
}

func (s *ConversationService) submitLink(userID int64, key string, in domain.Inbound) (*StepResult, error) {
	text, ok := in.(domain.TextIn)
	if !ok {
		return &StepResult{Text: "Link must be a text, try again or /cancel"}, nil
	}

	switch err := s.commands.AttachLink(userID, key, strings.TrimSpace(text.Text)); err {
	case nil:
	case domain.ErrCommandNotFound:
		// The command may have been removed concurrently; leaving the
		// flow open lets the user /cancel explicitly.
		return &StepResult{Text: "Failed to attach link, try again or /cancel"}, nil
	default:
		return nil, fmt.Errorf("failed to attach link: %w", err)
	}

	if err := s.users.SetState(userID, domain.Idle{}); err != nil {
		return nil, fmt.Errorf("failed to close link flow: %w", err)
	}

	return &StepResult{Text: "Link attached"}, nil
}

func (s *ConversationService) submitRemoveKey(userID int64, in domain.Inbound) (*StepResult, error) {
	text, ok := in.(domain.TextIn)
	if !ok {
		return &StepResult{Text: "No such command, try again or /cancel"}, nil
	}

	key := domain.NormalizeKey(text.Text)
	switch err := s.commands.Delete(userID, key); err {
	case nil:
	case domain.ErrCommandNotFound:
		// Stay in RemovingKey so the user can retry.
		return &StepResult{Text: "No such command, try again or /cancel"}, nil
	default:
		return nil, fmt.Errorf("failed to remove command: %w", err)
	}

	if err := s.users.SetState(userID, domain.Idle{}); err != nil {
		return nil, fmt.Errorf("failed to close remove flow: %w", err)
	}

	return &StepResult{Text: "Command removed"}, nil
}

// deriveResponse turns an inbound message into a command response
// payload. Photos keep only their highest-resolution variant, which the
// platform delivers last in the size list.
func deriveResponse(in domain.Inbound) (domain.ResponseKind, string, error) {
	switch m := in.(type) {
	case domain.TextIn:
		if strings.TrimSpace(m.Text) == "" {
			return "", "", domain.ErrUnsupportedResponse
		}
		return domain.ResponseText, m.Text, nil
	case domain.StickerIn:
		if m.FileID == "" {
			return "", "", domain.ErrUnsupportedResponse
		}
		return domain.ResponseSticker, m.FileID, nil
	case domain.PhotoIn:
		if len(m.Sizes) == 0 {
			return "", "", domain.ErrUnsupportedResponse
		}
		return domain.ResponsePhoto, m.Sizes[len(m.Sizes)-1], nil
	default:
		return "", "", domain.ErrUnsupportedResponse
	}
}
