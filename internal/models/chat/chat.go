package chat

import (
	"time"

	"github.com/lib/pq"
)

type Chat struct {
	ID        string         `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Members   pq.StringArray `gorm:"type:text[];not null" json:"members"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func (Chat) TableName() string {
	return "chat.chats"
}
