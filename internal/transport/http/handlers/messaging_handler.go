package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/mgregerson/sharebnb/internal/service"
	"github.com/mgregerson/sharebnb/internal/transport/http/middleware"
	"github.com/mgregerson/sharebnb/pkg/validator"
)

type MessagingHandler struct {
	messagingService *service.MessagingService
}

func NewMessagingHandler(messagingService *service.MessagingService) *MessagingHandler {
	return &MessagingHandler{messagingService: messagingService}
}

// SendMessage appends a message and answers with the conversation's full
// updated transcript.
func (h *MessagingHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	username := middleware.GetUsername(r.Context())

	var input struct {
		Sender    string `json:"sender"`
		Recipient string `json:"recipient"`
		Content   string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if errs := validator.ValidateMessage(input.Sender, input.Recipient, input.Content); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	if input.Sender != username {
		writeError(w, http.StatusForbidden, "FORBIDDEN", "You can only send messages as yourself")
		return
	}

	transcript, err := h.messagingService.SendMessage(r.Context(), input.Sender, input.Recipient, input.Content)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "User not found")
		case errors.Is(err, service.ErrSelfConversation):
			writeError(w, http.StatusBadRequest, "SELF_CONVERSATION", "Cannot message yourself")
		case errors.Is(err, service.ErrEmptyContent):
			writeError(w, http.StatusBadRequest, "MISSING_CONTENT", "Message content is required")
		default:
			log.Printf("ERROR send message: %v", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"conversation": transcript})
}

func (h *MessagingHandler) CreateConversation(w http.ResponseWriter, r *http.Request) {
	username := middleware.GetUsername(r.Context())

	var input struct {
		User1 string `json:"user1"`
		User2 string `json:"user2"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if errs := validator.ValidateConversation(input.User1, input.User2); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	if input.User1 != username && input.User2 != username {
		writeError(w, http.StatusForbidden, "FORBIDDEN", "You must be a participant of the conversation")
		return
	}

	conv, err := h.messagingService.CreateConversation(r.Context(), input.User1, input.User2)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "User not found")
		case errors.Is(err, service.ErrSelfConversation):
			writeError(w, http.StatusBadRequest, "SELF_CONVERSATION", "Participants must be two different users")
		default:
			log.Printf("ERROR create conversation: %v", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"conversation": conv})
}

func (h *MessagingHandler) UserConversations(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")

	convs, err := h.messagingService.UserConversations(r.Context(), username)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "User not found")
		} else {
			log.Printf("ERROR list conversations: %v", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"conversations": convs})
}

func (h *MessagingHandler) ConversationMessages(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid conversation ID")
		return
	}

	messages, err := h.messagingService.ConversationMessages(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrConversationNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Conversation not found")
		} else {
			log.Printf("ERROR conversation messages: %v", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"messages": messages})
}

// PairMessages serves the transcript between two users. A pair that never
// conversed gets an empty list, not a 404.
func (h *MessagingHandler) PairMessages(w http.ResponseWriter, r *http.Request) {
	sender := r.PathValue("sender")
	recipient := r.PathValue("recipient")

	messages, err := h.messagingService.ConversationMessagesBetween(r.Context(), sender, recipient)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "User not found")
		} else {
			log.Printf("ERROR pair messages: %v", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"messages": messages})
}

func (h *MessagingHandler) UserMessages(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")

	messages, err := h.messagingService.UserMessages(r.Context(), username)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "User not found")
		} else {
			log.Printf("ERROR user messages: %v", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"messages": messages})
}

func (h *MessagingHandler) UserMessage(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid message ID")
		return
	}

	msg, err := h.messagingService.UserMessage(r.Context(), username, id)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "User not found")
		} else {
			log.Printf("ERROR user message: %v", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	// Miss answers with a null message, not a 404.
	writeJSON(w, http.StatusOK, map[string]any{"message": msg})
}
