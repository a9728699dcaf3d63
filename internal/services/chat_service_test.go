package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tourhub_backend/internal/models"
	"tourhub_backend/internal/models/chat"
	"tourhub_backend/internal/repositories"
	"tourhub_backend/pkg/apperrors"
)

// fakeChatRepo is an in-memory ChatRepository.
type fakeChatRepo struct {
	chats    map[string]*chat.Chat
	messages []chat.Message
	nextID   int
}

func newFakeChatRepo() *fakeChatRepo {
	return &fakeChatRepo{chats: make(map[string]*chat.Chat)}
}

func (r *fakeChatRepo) Create(c *chat.Chat) error {
	r.nextID++
	c.ID = fmt.Sprintf("chat-%d", r.nextID)
	c.CreatedAt = time.Now()
	r.chats[c.ID] = c
	return nil
}

func (r *fakeChatRepo) FindByMembers(firstID, secondID string) (*chat.Chat, error) {
	for _, c := range r.chats {
		if contains(c.Members, firstID) && contains(c.Members, secondID) {
			return c, nil
		}
	}
	return nil, repositories.ErrChatNotFound
}

func (r *fakeChatRepo) FindByUser(userID string) ([]chat.Chat, error) {
	var out []chat.Chat
	for _, c := range r.chats {
		if contains(c.Members, userID) {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeChatRepo) FindByID(id string) (*chat.Chat, error) {
	c, ok := r.chats[id]
	if !ok {
		return nil, repositories.ErrChatNotFound
	}
	return c, nil
}

func (r *fakeChatRepo) CreateMessage(m *chat.Message) error {
	r.nextID++
	m.ID = fmt.Sprintf("msg-%d", r.nextID)
	m.CreatedAt = time.Now()
	r.messages = append(r.messages, *m)
	return nil
}

func (r *fakeChatRepo) FindMessages(chatID string) ([]chat.Message, error) {
	var out []chat.Message
	for _, m := range r.messages {
		if m.ChatID == chatID {
			out = append(out, m)
		}
	}
	return out, nil
}

func contains(members []string, id string) bool {
	for _, m := range members {
		if m == id {
			return true
		}
	}
	return false
}

func newChatFixture(userIDs ...string) (*fakeChatRepo, ChatService) {
	chatRepo := newFakeChatRepo()
	userRepo := newFakeUserRepo()
	for _, id := range userIDs {
		u := &models.User{Active: true, EmailVerified: true}
		u.ID = id
		u.Email = id + "@example.com"
		userRepo.users[id] = u
	}
	return chatRepo, NewChatService(chatRepo, userRepo)
}

func TestCreateOrGet_CreatesOnce(t *testing.T) {
	_, svc := newChatFixture("alice", "bob")

	first, created, err := svc.CreateOrGet("alice", "bob")
	require.NoError(t, err)
	assert.True(t, created)
	assert.ElementsMatch(t, []string{"alice", "bob"}, []string(first.Members))

	// Same pair in either order resolves the same chat.
	second, created, err := svc.CreateOrGet("bob", "alice")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
}

func TestCreateOrGet_RejectsSelfChat(t *testing.T) {
	_, svc := newChatFixture("alice")

	_, _, err := svc.CreateOrGet("alice", "alice")

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.HTTPCode)
}

func TestCreateOrGet_UnknownMember(t *testing.T) {
	_, svc := newChatFixture("alice")

	_, _, err := svc.CreateOrGet("alice", "ghost")

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.HTTPCode)
}

func TestSendMessage(t *testing.T) {
	_, svc := newChatFixture("alice", "bob")

	c, _, err := svc.CreateOrGet("alice", "bob")
	require.NoError(t, err)

	msg, err := svc.SendMessage(c.ID, "alice", "hello")
	require.NoError(t, err)
	assert.Equal(t, "hello", msg.Text)
	assert.Equal(t, "alice", msg.SenderID)

	messages, err := svc.Messages(c.ID)
	require.NoError(t, err)
	require.Len(t, messages, 1)
}

func TestSendMessage_NonMemberForbidden(t *testing.T) {
	_, svc := newChatFixture("alice", "bob", "eve")

	c, _, err := svc.CreateOrGet("alice", "bob")
	require.NoError(t, err)

	_, err = svc.SendMessage(c.ID, "eve", "let me in")
	assert.ErrorIs(t, err, apperrors.ErrInsufficientPermissions)
}

func TestSendMessage_EmptyText(t *testing.T) {
	_, svc := newChatFixture("alice", "bob")

	c, _, err := svc.CreateOrGet("alice", "bob")
	require.NoError(t, err)

	_, err = svc.SendMessage(c.ID, "alice", "")
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.HTTPCode)
}

func TestMessages_UnknownChat(t *testing.T) {
	_, svc := newChatFixture()

	_, err := svc.Messages("no-such-chat")
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.HTTPCode)
}

func TestUserChats(t *testing.T) {
	_, svc := newChatFixture("alice", "bob", "carol")

	_, _, err := svc.CreateOrGet("alice", "bob")
	require.NoError(t, err)
	_, _, err = svc.CreateOrGet("alice", "carol")
	require.NoError(t, err)

	chats, err := svc.UserChats("alice")
	require.NoError(t, err)
	assert.Len(t, chats, 2)

	chats, err = svc.UserChats("bob")
	require.NoError(t, err)
	assert.Len(t, chats, 1)
}

func TestPairChat_NotFound(t *testing.T) {
	_, svc := newChatFixture("alice", "bob")

	_, err := svc.PairChat("alice", "bob")
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.HTTPCode)
}
