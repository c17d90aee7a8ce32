package domain

import (
	"encoding/json"
	"fmt"
)

// Phase names a step of a conversation flow.
type Phase string

const (
	PhaseIdle           Phase = "idle"
	PhaseAddingKey      Phase = "adding_key"
	PhaseAddingResponse Phase = "adding_response"
	PhaseAddingLink     Phase = "adding_link"
	PhaseRemovingKey    Phase = "removing_key"
)

// ConversationState is the per-user flow state. It is a closed set of
// variants; the ones that reference a command key carry it explicitly,
// so the key can never be read in the wrong phase.
type ConversationState interface {
	Phase() Phase
}

// Idle means no flow is open.
type Idle struct{}

// AddingKey means the user was asked for a key of a new command.
type AddingKey struct{}

// AddingResponse means the key is chosen and the user was asked for the
// response payload.
type AddingResponse struct {
	Key string
}

// AddingLink means the user was asked for a URL to attach to an already
// saved command.
type AddingLink struct {
	Key string
}

// RemovingKey means the user was asked which of their commands to remove.
type RemovingKey struct{}

func (Idle) Phase() Phase           { return PhaseIdle }
func (AddingKey) Phase() Phase      { return PhaseAddingKey }
func (AddingResponse) Phase() Phase { return PhaseAddingResponse }
func (AddingLink) Phase() Phase     { return PhaseAddingLink }
func (RemovingKey) Phase() Phase    { return PhaseRemovingKey }

// stateRecord is the persisted form of a ConversationState.
type stateRecord struct {
	Phase Phase  `json:"phase"`
	Key   string `json:"key,omitempty"`
}

// EncodeState serializes a state for storage in a single column.
func EncodeState(st ConversationState) (string, error) {
	rec := stateRecord{Phase: st.Phase()}

	switch s := st.(type) {
	case Idle, AddingKey, RemovingKey:
	case AddingResponse:
		rec.Key = s.Key
	case AddingLink:
		rec.Key = s.Key
	default:
		return "", fmt.Errorf("unknown conversation state %T", st)
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// DecodeState restores a state from its stored form.
func DecodeState(data string) (ConversationState, error) {
	var rec stateRecord
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		return nil, fmt.Errorf("invalid conversation state: %w", err)
	}

	switch rec.Phase {
	case PhaseIdle:
		return Idle{}, nil
	case PhaseAddingKey:
		return AddingKey{}, nil
	case PhaseAddingResponse:
		if rec.Key == "" {
			return nil, fmt.Errorf("conversation state %q has no key", rec.Phase)
		}
		return AddingResponse{Key: rec.Key}, nil
	case PhaseAddingLink:
		if rec.Key == "" {
			return nil, fmt.Errorf("conversation state %q has no key", rec.Phase)
		}
		return AddingLink{Key: rec.Key}, nil
	case PhaseRemovingKey:
		return RemovingKey{}, nil
	default:
		return nil, fmt.Errorf("unknown conversation state %q", rec.Phase)
	}
}
