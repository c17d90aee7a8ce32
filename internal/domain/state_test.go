package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeState(t *testing.T) {
	tests := []struct {
		name  string
		state ConversationState
	}{
		{
			name:  "idle",
			state: Idle{},
		},
		{
			name:  "adding key",
			state: AddingKey{},
		},
		{
			name:  "adding response",
			state: AddingResponse{Key: "greet"},
		},
		{
			name:  "adding link",
			state: AddingLink{Key: "greet"},
		},
		{
			name:  "removing key",
			state: RemovingKey{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded, err := EncodeState(tt.state)
			assert.NoError(t, err)

			decoded, err := DecodeState(encoded)
			assert.NoError(t, err)
			assert.Equal(t, tt.state, decoded)
		})
	}
}

func TestDecodeState_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{
			name: "not json",
			data: "remove",
		},
		{
			name: "unknown phase",
			data: `{"phase":"waiting"}`,
		},
		{
			name: "adding response without key",
			data: `{"phase":"adding_response"}`,
		},
		{
			name: "adding link without key",
			data: `{"phase":"adding_link"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state, err := DecodeState(tt.data)
			assert.Error(t, err)
			assert.Nil(t, state)
		})
	}
}

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "already normalized",
			input:    "ping",
			expected: "ping",
		},
		{
			name:     "mixed case",
			input:    "PiNg",
			expected: "ping",
		},
		{
			name:     "surrounding whitespace",
			input:    "  Ping \n",
			expected: "ping",
		},
		{
			name:     "inner whitespace kept",
			input:    "Good Morning",
			expected: "good morning",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeKey(tt.input))
		})
	}
}
