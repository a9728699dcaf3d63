package chat

import "time"

type Message struct {
	ID        string    `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	ChatID    string    `gorm:"type:uuid;index;not null" json:"chat_id" validate:"required"`
	SenderID  string    `gorm:"type:uuid;index;not null" json:"sender_id" validate:"required"`
	Text      string    `gorm:"type:text;not null" json:"text" validate:"required"`
	CreatedAt time.Time `json:"created_at"`

	Chat *Chat `gorm:"foreignKey:ChatID" json:"-"`
}

func (Message) TableName() string {
	return "chat.messages"
}
