package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tourhub_backend/internal/services"
	"tourhub_backend/pkg/apperrors"
)

type ChatHandler struct {
	BaseHandler
	chats services.ChatService
}

func NewChatHandler(base BaseHandler, chats services.ChatService) *ChatHandler {
	return &ChatHandler{BaseHandler: base, chats: chats}
}

type createChatInput struct {
	FirstID  string `json:"first_id" validate:"required,uuid"`
	SecondID string `json:"second_id" validate:"required,uuid"`
}

type sendMessageInput struct {
	ChatID string `json:"chat_id" validate:"required,uuid"`
	// SenderID is optional; when present it must match the session user.
	SenderID string `json:"sender_id" validate:"omitempty,uuid"`
	Text     string `json:"text" validate:"required"`
}

// CreateChat opens the direct chat between two users: 200 when the pair
// already has one, 201 when this call created it.
// POST /api/v1/chats
func (h *ChatHandler) CreateChat(c *gin.Context) {
	var input createChatInput
	if !h.BindAndValidateJSON(c, &input) {
		return
	}

	chat, created, err := h.chats.CreateOrGet(input.FirstID, input.SecondID)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	code := http.StatusOK
	if created {
		code = http.StatusCreated
	}
	Success(c, code, gin.H{"chat": chat})
}

// UserChats lists a user's chats, most recently active first.
// GET /api/v1/chats/:userID
func (h *ChatHandler) UserChats(c *gin.Context) {
	chats, err := h.chats.UserChats(c.Param("userID"))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	SuccessList(c, len(chats), gin.H{"chats": chats})
}

// PairChat resolves the chat between two users.
// GET /api/v1/chats/chat/:firstID/:secondID
func (h *ChatHandler) PairChat(c *gin.Context) {
	chat, err := h.chats.PairChat(c.Param("firstID"), c.Param("secondID"))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	Success(c, http.StatusOK, gin.H{"chat": chat})
}

// SendMessage appends a message to a chat the caller belongs to.
// POST /api/v1/messages
func (h *ChatHandler) SendMessage(c *gin.Context) {
	user, ok := h.CurrentUser(c)
	if !ok {
		return
	}

	var input sendMessageInput
	if !h.BindAndValidateJSON(c, &input) {
		return
	}

	// Clients may echo their own id; they may not speak as someone else.
	if input.SenderID != "" && input.SenderID != user.ID {
		apperrors.HandleError(c, apperrors.ErrInsufficientPermissions)
		return
	}

	message, err := h.chats.SendMessage(input.ChatID, user.ID, input.Text)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	Success(c, http.StatusCreated, gin.H{"message": message})
}

// Messages lists a chat's messages oldest first.
// GET /api/v1/messages/:chatID
func (h *ChatHandler) Messages(c *gin.Context) {
	messages, err := h.chats.Messages(c.Param("chatID"))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	SuccessList(c, len(messages), gin.H{"messages": messages})
}
