package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mgregerson/sharebnb/internal/domain"
	"github.com/mgregerson/sharebnb/internal/repository/repositorytest"
	"github.com/mgregerson/sharebnb/internal/service"
	"github.com/mgregerson/sharebnb/internal/transport/http/handlers"
	"github.com/mgregerson/sharebnb/internal/transport/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jwtSecret = "handler-test-secret"

type testServer struct {
	mux  *http.ServeMux
	auth *service.AuthService
}

func newTestServer(t *testing.T, usernames ...string) *testServer {
	t.Helper()

	users := repositorytest.NewFakeUserRepo()
	for _, username := range usernames {
		require.NoError(t, users.Create(context.Background(), &domain.User{
			Username: username,
			Email:    username + "@example.com",
		}))
	}

	messagingService := service.NewMessagingService(
		users,
		repositorytest.NewFakeConversationRepo(),
		repositorytest.NewFakeMessageRepo(),
	)
	h := handlers.NewMessagingHandler(messagingService)
	auth := middleware.Auth(jwtSecret)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /messages/{username}", h.UserMessages)
	mux.HandleFunc("GET /messages/{username}/{id}", h.UserMessage)
	mux.Handle("POST /messages", auth(http.HandlerFunc(h.SendMessage)))
	mux.Handle("POST /conversations", auth(http.HandlerFunc(h.CreateConversation)))
	mux.HandleFunc("GET /conversations/{username}", h.UserConversations)
	mux.HandleFunc("GET /conversations/{id}/messages", h.ConversationMessages)
	mux.HandleFunc("GET /conversations/{sender}/{recipient}/messages", h.PairMessages)

	return &testServer{
		mux:  mux,
		auth: service.NewAuthService(users, jwtSecret),
	}
}

func (s *testServer) do(t *testing.T, method, path, body, tokenUser string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))

	if tokenUser != "" {
		token, err := s.auth.CreateToken(tokenUser)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.mux.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]json.RawMessage {
	t.Helper()
	out := make(map[string]json.RawMessage)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestSendMessageRequiresToken(t *testing.T) {
	srv := newTestServer(t, "john_doe", "jane_doe")

	rec := srv.do(t, "POST", "/messages", `{"sender":"john_doe","recipient":"jane_doe","content":"hi"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSendMessageSenderMustMatchToken(t *testing.T) {
	srv := newTestServer(t, "john_doe", "jane_doe")

	rec := srv.do(t, "POST", "/messages", `{"sender":"john_doe","recipient":"jane_doe","content":"hi"}`, "jane_doe")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestSendMessageValidation(t *testing.T) {
	srv := newTestServer(t, "john_doe", "jane_doe")

	rec := srv.do(t, "POST", "/messages", `{"sender":"john_doe","recipient":"jane_doe"}`, "john_doe")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
}

func TestSendMessageUnknownRecipient(t *testing.T) {
	srv := newTestServer(t, "john_doe")

	rec := srv.do(t, "POST", "/messages", `{"sender":"john_doe","recipient":"ghost","content":"hi"}`, "john_doe")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSendMessageReturnsConversationTranscript(t *testing.T) {
	srv := newTestServer(t, "john_doe", "jane_doe")

	rec := srv.do(t, "POST", "/messages", `{"sender":"john_doe","recipient":"jane_doe","content":"hi"}`, "john_doe")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = srv.do(t, "POST", "/messages", `{"sender":"jane_doe","recipient":"john_doe","content":"hey"}`, "jane_doe")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Conversation []domain.Message `json:"conversation"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Conversation, 2, "send must answer with the full transcript")
	assert.Equal(t, "hi", resp.Conversation[0].Content)
	assert.Equal(t, "hey", resp.Conversation[1].Content)

	// Both sends landed in the same conversation.
	assert.Equal(t, resp.Conversation[0].ConversationID, resp.Conversation[1].ConversationID)
}

func TestCreateConversationEndpoint(t *testing.T) {
	srv := newTestServer(t, "john_doe", "jane_doe")

	rec := srv.do(t, "POST", "/conversations", `{"user1":"john_doe","user2":"jane_doe"}`, "john_doe")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Conversation domain.Conversation `json:"conversation"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	first := resp.Conversation.ID

	// Same pair, other direction, other caller: same conversation.
	rec = srv.do(t, "POST", "/conversations", `{"user1":"jane_doe","user2":"john_doe"}`, "jane_doe")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, first, resp.Conversation.ID)
}

func TestCreateConversationRequiresParticipation(t *testing.T) {
	srv := newTestServer(t, "john_doe", "jane_doe", "bob")

	rec := srv.do(t, "POST", "/conversations", `{"user1":"john_doe","user2":"jane_doe"}`, "bob")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestPairMessagesMissIsEmptyList(t *testing.T) {
	srv := newTestServer(t, "john_doe", "jane_doe")

	rec := srv.do(t, "GET", "/conversations/john_doe/jane_doe/messages", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.JSONEq(t, `[]`, string(body["messages"]))
}

func TestConversationMessagesUnknownIDIs404(t *testing.T) {
	srv := newTestServer(t, "john_doe")

	rec := srv.do(t, "GET", "/conversations/42/messages", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUserMessageMissIsNull(t *testing.T) {
	srv := newTestServer(t, "john_doe")

	rec := srv.do(t, "GET", "/messages/john_doe/123", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.JSONEq(t, `null`, string(body["message"]))
}

func TestUserMessagesUnknownUserIs404(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, "GET", "/messages/ghost", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUserConversationsEndpoint(t *testing.T) {
	srv := newTestServer(t, "john_doe", "jane_doe")

	rec := srv.do(t, "POST", "/messages", `{"sender":"john_doe","recipient":"jane_doe","content":"hi"}`, "john_doe")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = srv.do(t, "GET", "/conversations/john_doe", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Conversations []domain.Conversation `json:"conversations"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Conversations, 1)
	assert.True(t, resp.Conversations[0].Involves("jane_doe"))
}
