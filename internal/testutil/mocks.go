package testutil

import (
	"custombot/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock for UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) EnsureUserExists(userID int64) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockUserRepository) Exists(userID int64) (bool, error) {
	args := m.Called(userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) GetState(userID int64) (domain.ConversationState, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.ConversationState), args.Error(1)
}

func (m *MockUserRepository) SetState(userID int64, state domain.ConversationState) error {
	args := m.Called(userID, state)
	return args.Error(0)
}

// MockCommandRepository is a mock for CommandRepository
type MockCommandRepository struct {
	mock.Mock
}

func (m *MockCommandRepository) Create(userID int64, key string, kind domain.ResponseKind, data string) error {
	args := m.Called(userID, key, kind, data)
	return args.Error(0)
}

func (m *MockCommandRepository) Delete(userID int64, key string) error {
	args := m.Called(userID, key)
	return args.Error(0)
}

func (m *MockCommandRepository) Find(userID int64, key string) (*domain.Command, error) {
	args := m.Called(userID, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Command), args.Error(1)
}

func (m *MockCommandRepository) ListByUser(userID int64) ([]domain.Command, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Command), args.Error(1)
}

func (m *MockCommandRepository) AttachLink(userID int64, key, url string) error {
	args := m.Called(userID, key, url)
	return args.Error(0)
}

// MockChatAdminProvider is a mock for service.ChatAdminProvider
type MockChatAdminProvider struct {
	mock.Mock
}

func (m *MockChatAdminProvider) ListAdmins(chatID int64) ([]int64, error) {
	args := m.Called(chatID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}
