package services

import (
	"errors"
	"sort"

	"github.com/lib/pq"

	"tourhub_backend/internal/models/chat"
	"tourhub_backend/internal/repositories"
	"tourhub_backend/pkg/apperrors"
)

type ChatService interface {
	// CreateOrGet returns the pair's chat; created reports whether this
	// call made it.
	CreateOrGet(firstID, secondID string) (c *chat.Chat, created bool, err error)
	UserChats(userID string) ([]chat.Chat, error)
	PairChat(firstID, secondID string) (*chat.Chat, error)
	SendMessage(chatID, senderID, text string) (*chat.Message, error)
	Messages(chatID string) ([]chat.Message, error)
}

type ChatServiceImpl struct {
	chats repositories.ChatRepository
	users repositories.UserRepository
}

func NewChatService(chats repositories.ChatRepository, users repositories.UserRepository) ChatService {
	return &ChatServiceImpl{chats: chats, users: users}
}

// CreateOrGet returns the direct chat between two users, creating it on
// first contact. Members are stored sorted so the pair has one canonical
// representation.
func (s *ChatServiceImpl) CreateOrGet(firstID, secondID string) (*chat.Chat, bool, error) {
	if firstID == "" || secondID == "" || firstID == secondID {
		return nil, false, apperrors.NewBadRequestError("A chat needs two distinct members")
	}

	existing, err := s.chats.FindByMembers(firstID, secondID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, repositories.ErrChatNotFound) {
		return nil, false, apperrors.InternalError(err)
	}

	for _, id := range []string{firstID, secondID} {
		if _, err := s.users.FindActiveByID(id); err != nil {
			if errors.Is(err, repositories.ErrUserNotFound) {
				return nil, false, apperrors.NewNotFoundError("user", "No user found with that ID")
			}
			return nil, false, apperrors.InternalError(err)
		}
	}

	members := []string{firstID, secondID}
	sort.Strings(members)

	c := &chat.Chat{Members: pq.StringArray(members)}
	if err := s.chats.Create(c); err != nil {
		return nil, false, apperrors.InternalError(err)
	}
	return c, true, nil
}

func (s *ChatServiceImpl) UserChats(userID string) ([]chat.Chat, error) {
	chats, err := s.chats.FindByUser(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return chats, nil
}

func (s *ChatServiceImpl) PairChat(firstID, secondID string) (*chat.Chat, error) {
	c, err := s.chats.FindByMembers(firstID, secondID)
	if err != nil {
		if errors.Is(err, repositories.ErrChatNotFound) {
			return nil, apperrors.NewNotFoundError("chat", "No chat found between these users")
		}
		return nil, apperrors.InternalError(err)
	}
	return c, nil
}

// SendMessage appends a message. The sender must be a member of the chat.
func (s *ChatServiceImpl) SendMessage(chatID, senderID, text string) (*chat.Message, error) {
	if text == "" {
		return nil, apperrors.NewBadRequestError("Message text cannot be empty")
	}

	c, err := s.chats.FindByID(chatID)
	if err != nil {
		if errors.Is(err, repositories.ErrChatNotFound) {
			return nil, apperrors.NewNotFoundError("chat", "No chat found with that ID")
		}
		return nil, apperrors.InternalError(err)
	}

	member := false
	for _, id := range c.Members {
		if id == senderID {
			member = true
			break
		}
	}
	if !member {
		return nil, apperrors.ErrInsufficientPermissions
	}

	m := &chat.Message{ChatID: chatID, SenderID: senderID, Text: text}
	if err := s.chats.CreateMessage(m); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return m, nil
}

func (s *ChatServiceImpl) Messages(chatID string) ([]chat.Message, error) {
	if _, err := s.chats.FindByID(chatID); err != nil {
		if errors.Is(err, repositories.ErrChatNotFound) {
			return nil, apperrors.NewNotFoundError("chat", "No chat found with that ID")
		}
		return nil, apperrors.InternalError(err)
	}

	messages, err := s.chats.FindMessages(chatID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return messages, nil
}
