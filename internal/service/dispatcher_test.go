package service

import (
	"testing"

	"custombot/internal/domain"
	"custombot/internal/testutil"

	"github.com/stretchr/testify/assert"
)

func TestDispatcherService_ResolvePrivate(t *testing.T) {
	owned := []domain.Command{
		testutil.NewTestCommand(1, 123, "ping", domain.ResponseText, "pong"),
		testutil.NewTestCommand(2, 123, "bye", domain.ResponseText, "see you"),
	}

	tests := []struct {
		name     string
		text     string
		expected string // expected key, "" for no match
	}{
		{
			name:     "exact match",
			text:     "ping",
			expected: "ping",
		},
		{
			name:     "case insensitive match",
			text:     "PiNg",
			expected: "ping",
		},
		{
			name:     "match with surrounding whitespace",
			text:     " bye ",
			expected: "bye",
		},
		{
			name:     "no match is silent",
			text:     "hello",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(testutil.MockUserRepository)
			commands := new(testutil.MockCommandRepository)
			admins := new(testutil.MockChatAdminProvider)

			senderID := int64(123)
			commands.On("ListByUser", senderID).Return(owned, nil)

			agg := NewAdminAggregator(users, commands, admins, testutil.NewTestLogger())
			svc := NewDispatcherService(commands, agg, testutil.NewTestLogger())

			cmd, err := svc.Resolve(senderID, senderID, true, tt.text)

			assert.NoError(t, err)
			if tt.expected == "" {
				assert.Nil(t, cmd)
			} else {
				assert.NotNil(t, cmd)
				assert.Equal(t, tt.expected, cmd.Key)
			}
			admins.AssertNotCalled(t, "ListAdmins", senderID)
		})
	}
}

func TestDispatcherService_ResolveGroup(t *testing.T) {
	users := new(testutil.MockUserRepository)
	commands := new(testutil.MockCommandRepository)
	admins := new(testutil.MockChatAdminProvider)

	chatID := int64(-100500)
	senderID := int64(999) // a plain member, not an admin

	// Two admins, only one registered and owning "ping".
	admins.On("ListAdmins", chatID).Return([]int64{10, 20}, nil)
	users.On("Exists", int64(10)).Return(false, nil)
	users.On("Exists", int64(20)).Return(true, nil)
	commands.On("ListByUser", int64(20)).Return([]domain.Command{
		testutil.NewTestCommand(1, 20, "ping", domain.ResponseText, "pong"),
	}, nil)

	agg := NewAdminAggregator(users, commands, admins, testutil.NewTestLogger())
	svc := NewDispatcherService(commands, agg, testutil.NewTestLogger())

	cmd, err := svc.Resolve(chatID, senderID, false, "PING")

	assert.NoError(t, err)
	assert.NotNil(t, cmd)
	assert.Equal(t, "ping", cmd.Key)
	assert.Equal(t, int64(20), cmd.UserID)
	commands.AssertNotCalled(t, "ListByUser", senderID)
}

func TestDispatcherService_FirstMatchWins(t *testing.T) {
	users := new(testutil.MockUserRepository)
	commands := new(testutil.MockCommandRepository)
	admins := new(testutil.MockChatAdminProvider)

	chatID := int64(-100500)

	// Both registered admins own "ping"; whichever the aggregation
	// yields first answers. The order across owners is unspecified,
	// only "exactly one answer" is guaranteed.
	admins.On("ListAdmins", chatID).Return([]int64{10, 20}, nil)
	users.On("Exists", int64(10)).Return(true, nil)
	users.On("Exists", int64(20)).Return(true, nil)
	commands.On("ListByUser", int64(10)).Return([]domain.Command{
		testutil.NewTestCommand(1, 10, "ping", domain.ResponseText, "pong from 10"),
	}, nil)
	commands.On("ListByUser", int64(20)).Return([]domain.Command{
		testutil.NewTestCommand(2, 20, "ping", domain.ResponseText, "pong from 20"),
	}, nil)

	agg := NewAdminAggregator(users, commands, admins, testutil.NewTestLogger())
	svc := NewDispatcherService(commands, agg, testutil.NewTestLogger())

	cmd, err := svc.Resolve(chatID, 999, false, "ping")

	assert.NoError(t, err)
	assert.NotNil(t, cmd)
	assert.Equal(t, "ping", cmd.Key)
	assert.Contains(t, []int64{10, 20}, cmd.UserID)
}
