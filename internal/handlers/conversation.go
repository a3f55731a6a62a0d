package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"messaging-service/internal/models"
	"messaging-service/internal/repositories"
	"messaging-service/internal/telemetry"
	userpb "messaging-service/pb/user"
)

// userClient is the slice of the user-service surface the handlers need.
type userClient interface {
	UserExists(ctx context.Context, userID int) (bool, error)
	BulkUsers(ctx context.Context, ids []int) ([]*userpb.GetUserResponse, error)
}

// messageSender runs the send pipeline. Implemented by delivery.Service.
type messageSender interface {
	Send(ctx context.Context, conversationID int, from int, to int, content string) (models.Message, error)
}

// ConversationHandler manages the conversation and message endpoints.
type ConversationHandler struct {
	convRepo    repositories.ConversationRepository
	messageRepo repositories.MessageRepository
	userClient  userClient
	sender      messageSender
	audit       *telemetry.AuditEmitter
}

// NewConversationHandler builds a ConversationHandler.
func NewConversationHandler(convRepo repositories.ConversationRepository, messageRepo repositories.MessageRepository, userClient userClient, sender messageSender, audit *telemetry.AuditEmitter) *ConversationHandler {
	return &ConversationHandler{
		convRepo:    convRepo,
		messageRepo: messageRepo,
		userClient:  userClient,
		sender:      sender,
		audit:       audit,
	}
}

// GetConversationWithPeer returns the conversation with the given peer,
// creating it on first contact.
func (h *ConversationHandler) GetConversationWithPeer(c *gin.Context) {
	peerID, err := strconv.Atoi(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	userID := c.GetInt("userID")
	if peerID == userID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot start conversation with yourself"})
		return
	}

	exists, err := h.userClient.UserExists(c.Request.Context(), peerID)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to resolve user"})
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	conv, err := h.convRepo.GetOrCreate(c.Request.Context(), userID, peerID)
	if err != nil {
		if errors.Is(err, repositories.ErrSelfConversation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "cannot start conversation with yourself"})
			return
		}
		h.emitAudit(c, "ERROR", "internal error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load conversation"})
		return
	}

	c.JSON(http.StatusOK, conv)
}

// ListConversations returns the caller's conversation list, newest activity
// first, enriched with peer identity from the user-service.
func (h *ConversationHandler) ListConversations(c *gin.Context) {
	userID := c.GetInt("userID")

	summaries, err := h.convRepo.ListForUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load conversations"})
		return
	}

	peerIDs := make([]int, 0, len(summaries))
	for _, s := range summaries {
		peerIDs = append(peerIDs, s.PeerID)
	}

	users, err := h.userClient.BulkUsers(c.Request.Context(), peerIDs)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to load user info"})
		return
	}

	userByID := map[int]*userpb.GetUserResponse{}
	for _, u := range users {
		userByID[int(u.GetId())] = u
	}

	for i := range summaries {
		if u, ok := userByID[summaries[i].PeerID]; ok {
			summaries[i].PeerUsername = u.GetUsername()
			summaries[i].PeerDisplayPic = u.GetDisplayPicture()
		}
	}

	c.JSON(http.StatusOK, gin.H{"conversations": summaries})
}

// GetConversationMessages returns the full ordered message log of a
// conversation. Side effect: the caller's unread count resets to zero and
// messages addressed to the caller are flagged read.
func (h *ConversationHandler) GetConversationMessages(c *gin.Context) {
	conversationID, err := strconv.Atoi(c.Param("conversation_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid conversation id"})
		return
	}

	userID := c.GetInt("userID")
	member, err := h.convRepo.IsParticipant(c.Request.Context(), conversationID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to verify membership"})
		return
	}
	if !member {
		c.JSON(http.StatusForbidden, gin.H{"error": "not a conversation participant"})
		return
	}

	if err := h.convRepo.MarkRead(c.Request.Context(), conversationID, userID); err != nil {
		h.emitAudit(c, "ERROR", "internal error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to mark conversation read"})
		return
	}
	if err := h.messageRepo.MarkMessagesRead(c.Request.Context(), conversationID, userID); err != nil {
		h.emitAudit(c, "ERROR", "internal error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to mark messages read"})
		return
	}

	msgs, err := h.messageRepo.ListByConversation(c.Request.Context(), conversationID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load messages"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": msgs})
}

// PostConversationMessage stores a message and pushes it to the recipient's
// live sessions.
func (h *ConversationHandler) PostConversationMessage(c *gin.Context) {
	conversationID, err := strconv.Atoi(c.Param("conversation_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid conversation id"})
		return
	}

	userID := c.GetInt("userID")
	conv, err := h.convRepo.GetConversation(c.Request.Context(), conversationID)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, repositories.ErrConversationNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": "conversation not found"})
		return
	}
	if !conv.HasParticipant(userID) {
		h.emitAudit(c, "ERROR", "not a participant")
		c.JSON(http.StatusForbidden, gin.H{"error": "not a conversation participant"})
		return
	}

	var req struct {
		To      int    `json:"to" binding:"required"`
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.To != conv.PeerOf(userID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "recipient is not the other participant"})
		return
	}

	msg, err := h.sender.Send(c.Request.Context(), conversationID, userID, req.To, req.Content)
	if err != nil {
		if errors.Is(err, repositories.ErrInvalidMessage) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid message"})
			return
		}
		h.emitAudit(c, "ERROR", "message send failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to send message"})
		return
	}

	h.emitAudit(c, "INFO", "Message sent")
	c.JSON(http.StatusCreated, msg)
}

func (h *ConversationHandler) emitAudit(c *gin.Context, level, text string) {
	if h.audit == nil {
		return
	}
	h.audit.Emit(c.Request.Context(), level, text, requestIDFromContext(c), userIDFromContext(c))
}
