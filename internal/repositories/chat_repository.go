package repositories

import (
	"errors"

	"tourhub_backend/internal/models/chat"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

var ErrChatNotFound = errors.New("chat not found")

type ChatRepository interface {
	Create(c *chat.Chat) error
	FindByMembers(firstID, secondID string) (*chat.Chat, error)
	FindByUser(userID string) ([]chat.Chat, error)
	FindByID(id string) (*chat.Chat, error)
	CreateMessage(m *chat.Message) error
	FindMessages(chatID string) ([]chat.Message, error)
}

type ChatRepositoryImpl struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) ChatRepository {
	return &ChatRepositoryImpl{db: db}
}

func (r *ChatRepositoryImpl) Create(c *chat.Chat) error {
	return r.db.Create(c).Error
}

// FindByMembers resolves the chat containing both users.
func (r *ChatRepositoryImpl) FindByMembers(firstID, secondID string) (*chat.Chat, error) {
	var c chat.Chat
	err := r.db.Where("members @> ?", pq.StringArray{firstID, secondID}).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChatNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *ChatRepositoryImpl) FindByUser(userID string) ([]chat.Chat, error) {
	var chats []chat.Chat
	err := r.db.Where("? = ANY(members)", userID).Order("updated_at DESC").Find(&chats).Error
	return chats, err
}

func (r *ChatRepositoryImpl) FindByID(id string) (*chat.Chat, error) {
	var c chat.Chat
	err := r.db.First(&c, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChatNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *ChatRepositoryImpl) CreateMessage(m *chat.Message) error {
	return r.db.Create(m).Error
}

func (r *ChatRepositoryImpl) FindMessages(chatID string) ([]chat.Message, error) {
	var messages []chat.Message
	err := r.db.Where("chat_id = ?", chatID).Order("created_at ASC").Find(&messages).Error
	return messages, err
}
