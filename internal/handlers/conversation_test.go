package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"messaging-service/internal/mocks"
	"messaging-service/internal/models"
	"messaging-service/internal/repositories"
	userpb "messaging-service/pb/user"
)

func setupConversationRouter(handler *ConversationHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userID", 1)
		c.Next()
	})
	r.GET("/conversations", handler.ListConversations)
	r.GET("/conversations/with/:user_id", handler.GetConversationWithPeer)
	r.GET("/conversations/:conversation_id/messages", handler.GetConversationMessages)
	r.POST("/conversations/:conversation_id/messages", handler.PostConversationMessage)
	return r
}

func TestGetConversationWithPeerCreates(t *testing.T) {
	convRepo := new(mocks.ConversationRepositoryMock)
	userClient := new(mocks.UserClientMock)
	handler := NewConversationHandler(convRepo, nil, userClient, nil, nil)
	router := setupConversationRouter(handler)

	userClient.On("UserExists", mock.Anything, 2).Return(true, nil).Once()
	convRepo.On("GetOrCreate", mock.Anything, 1, 2).
		Return(models.Conversation{ID: 10, UserLow: 1, UserHigh: 2, UnreadCounts: map[int]int{1: 0, 2: 0}}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/conversations/with/2", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.EqualValues(t, 10, resp["id"])

	userClient.AssertExpectations(t)
	convRepo.AssertExpectations(t)
}

func TestGetConversationWithPeerUnknownUser(t *testing.T) {
	convRepo := new(mocks.ConversationRepositoryMock)
	userClient := new(mocks.UserClientMock)
	handler := NewConversationHandler(convRepo, nil, userClient, nil, nil)
	router := setupConversationRouter(handler)

	userClient.On("UserExists", mock.Anything, 9).Return(false, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/conversations/with/9", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	convRepo.AssertNotCalled(t, "GetOrCreate", mock.Anything, mock.Anything, mock.Anything)
	userClient.AssertExpectations(t)
}

func TestGetConversationWithSelf(t *testing.T) {
	handler := NewConversationHandler(new(mocks.ConversationRepositoryMock), nil, new(mocks.UserClientMock), nil, nil)
	router := setupConversationRouter(handler)

	req := httptest.NewRequest(http.MethodGet, "/conversations/with/1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListConversationsSuccess(t *testing.T) {
	convRepo := new(mocks.ConversationRepositoryMock)
	userClient := new(mocks.UserClientMock)
	handler := NewConversationHandler(convRepo, nil, userClient, nil, nil)
	router := setupConversationRouter(handler)

	preview := "hey"
	convRepo.On("ListForUser", mock.Anything, 1).Return([]models.ConversationSummary{
		{ConversationID: 3, PeerID: 2, LastMessage: &preview, UnreadCount: 4},
	}, nil).Once()
	userClient.On("BulkUsers", mock.Anything, []int{2}).
		Return([]*userpb.GetUserResponse{{Id: 2, Username: "bob", DisplayPicture: "bob.png"}}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/conversations", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Conversations []models.ConversationSummary `json:"conversations"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Conversations, 1)
	assert.Equal(t, "bob", resp.Conversations[0].PeerUsername)
	assert.Equal(t, "bob.png", resp.Conversations[0].PeerDisplayPic)
	assert.Equal(t, 4, resp.Conversations[0].UnreadCount)

	convRepo.AssertExpectations(t)
	userClient.AssertExpectations(t)
}

func TestListConversationsRepoError(t *testing.T) {
	convRepo := new(mocks.ConversationRepositoryMock)
	handler := NewConversationHandler(convRepo, nil, new(mocks.UserClientMock), nil, nil)
	router := setupConversationRouter(handler)

	convRepo.On("ListForUser", mock.Anything, 1).Return(([]models.ConversationSummary)(nil), assert.AnError).Once()

	req := httptest.NewRequest(http.MethodGet, "/conversations", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	convRepo.AssertExpectations(t)
}

func TestGetConversationMessagesMarksCallerRead(t *testing.T) {
	convRepo := new(mocks.ConversationRepositoryMock)
	messageRepo := new(mocks.MessageRepositoryMock)
	handler := NewConversationHandler(convRepo, messageRepo, new(mocks.UserClientMock), nil, nil)
	router := setupConversationRouter(handler)

	convRepo.On("IsParticipant", mock.Anything, 5, 1).Return(true, nil).Once()
	convRepo.On("MarkRead", mock.Anything, 5, 1).Return(nil).Once()
	messageRepo.On("MarkMessagesRead", mock.Anything, 5, 1).Return(nil).Once()
	messageRepo.On("ListByConversation", mock.Anything, 5).Return([]models.Message{
		{ID: 1, ConversationID: 5, From: 2, To: 1, Content: "hi"},
	}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/conversations/5/messages", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	convRepo.AssertExpectations(t)
	messageRepo.AssertExpectations(t)
	// The other participant's counter is never touched on this path.
	convRepo.AssertNotCalled(t, "MarkRead", mock.Anything, 5, 2)
}

func TestGetConversationMessagesForbidden(t *testing.T) {
	convRepo := new(mocks.ConversationRepositoryMock)
	messageRepo := new(mocks.MessageRepositoryMock)
	handler := NewConversationHandler(convRepo, messageRepo, new(mocks.UserClientMock), nil, nil)
	router := setupConversationRouter(handler)

	convRepo.On("IsParticipant", mock.Anything, 5, 1).Return(false, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/conversations/5/messages", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
	convRepo.AssertNotCalled(t, "MarkRead", mock.Anything, mock.Anything, mock.Anything)
	messageRepo.AssertNotCalled(t, "ListByConversation", mock.Anything, mock.Anything)
}

func TestPostConversationMessageSuccess(t *testing.T) {
	convRepo := new(mocks.ConversationRepositoryMock)
	sender := new(mocks.SenderMock)
	handler := NewConversationHandler(convRepo, nil, new(mocks.UserClientMock), sender, nil)
	router := setupConversationRouter(handler)

	convRepo.On("GetConversation", mock.Anything, 5).Return(models.Conversation{ID: 5, UserLow: 1, UserHigh: 2}, nil).Once()
	sender.On("Send", mock.Anything, 5, 1, 2, "hi").Return(models.Message{ID: 7, ConversationID: 5, From: 1, To: 2, Content: "hi"}, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/conversations/5/messages", bytes.NewBufferString(`{"to":2,"content":"hi"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	convRepo.AssertExpectations(t)
	sender.AssertExpectations(t)
}

func TestPostConversationMessageWrongRecipient(t *testing.T) {
	convRepo := new(mocks.ConversationRepositoryMock)
	sender := new(mocks.SenderMock)
	handler := NewConversationHandler(convRepo, nil, new(mocks.UserClientMock), sender, nil)
	router := setupConversationRouter(handler)

	convRepo.On("GetConversation", mock.Anything, 5).Return(models.Conversation{ID: 5, UserLow: 1, UserHigh: 2}, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/conversations/5/messages", bytes.NewBufferString(`{"to":3,"content":"hi"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPostConversationMessageInvalidContent(t *testing.T) {
	convRepo := new(mocks.ConversationRepositoryMock)
	sender := new(mocks.SenderMock)
	handler := NewConversationHandler(convRepo, nil, new(mocks.UserClientMock), sender, nil)
	router := setupConversationRouter(handler)

	convRepo.On("GetConversation", mock.Anything, 5).Return(models.Conversation{ID: 5, UserLow: 1, UserHigh: 2}, nil).Once()
	sender.On("Send", mock.Anything, 5, 1, 2, " ").Return(models.Message{}, repositories.ErrInvalidMessage).Once()

	req := httptest.NewRequest(http.MethodPost, "/conversations/5/messages", bytes.NewBufferString(`{"to":2,"content":" "}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	sender.AssertExpectations(t)
}

func TestPostConversationMessageConversationNotFound(t *testing.T) {
	convRepo := new(mocks.ConversationRepositoryMock)
	handler := NewConversationHandler(convRepo, nil, new(mocks.UserClientMock), new(mocks.SenderMock), nil)
	router := setupConversationRouter(handler)

	convRepo.On("GetConversation", mock.Anything, 5).Return(models.Conversation{}, repositories.ErrConversationNotFound).Once()

	req := httptest.NewRequest(http.MethodPost, "/conversations/5/messages", bytes.NewBufferString(`{"to":2,"content":"hi"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	convRepo.AssertExpectations(t)
}

func TestPostConversationMessageNotParticipant(t *testing.T) {
	convRepo := new(mocks.ConversationRepositoryMock)
	sender := new(mocks.SenderMock)
	handler := NewConversationHandler(convRepo, nil, new(mocks.UserClientMock), sender, nil)
	router := setupConversationRouter(handler)

	convRepo.On("GetConversation", mock.Anything, 5).Return(models.Conversation{ID: 5, UserLow: 2, UserHigh: 3}, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/conversations/5/messages", bytes.NewBufferString(`{"to":2,"content":"hi"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
	sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
