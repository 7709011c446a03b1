package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/mgregerson/sharebnb/internal/domain"
	"github.com/mgregerson/sharebnb/internal/repository"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrConversationNotFound = errors.New("conversation not found")
	ErrSelfConversation     = errors.New("cannot start a conversation with yourself")
	ErrEmptyContent         = errors.New("message content is required")
	ErrNotParticipant       = errors.New("sender and recipient must be the conversation participants")
)

// MessagingService is the read-and-write surface over conversations and
// their message logs. Every operation resolves the usernames involved
// before touching conversation or message state, so an unknown user aborts
// the whole request with nothing written.
type MessagingService struct {
	userRepo         repository.UserRepository
	conversationRepo repository.ConversationRepository
	messageRepo      repository.MessageRepository
}

func NewMessagingService(
	userRepo repository.UserRepository,
	conversationRepo repository.ConversationRepository,
	messageRepo repository.MessageRepository,
) *MessagingService {
	return &MessagingService{
		userRepo:         userRepo,
		conversationRepo: conversationRepo,
		messageRepo:      messageRepo,
	}
}

// SendMessage appends a message from sender to recipient, creating their
// conversation on first contact, and returns the full updated transcript.
// Returning the whole history is deliberate: the client never needs a
// follow-up fetch after sending.
func (s *MessagingService) SendMessage(ctx context.Context, sender, recipient, content string) ([]domain.Message, error) {
	if content == "" {
		return nil, ErrEmptyContent
	}
	if sender == recipient {
		return nil, ErrSelfConversation
	}
	if err := s.resolveAll(ctx, sender, recipient); err != nil {
		return nil, err
	}

	conv, err := s.conversationRepo.FindOrCreate(ctx, sender, recipient)
	if err != nil {
		return nil, fmt.Errorf("finding conversation: %w", err)
	}

	if !conv.Involves(sender) || !conv.Involves(recipient) {
		return nil, ErrNotParticipant
	}

	msg := &domain.Message{
		ConversationID: conv.ID,
		Sender:         sender,
		Recipient:      recipient,
		Content:        content,
	}
	if err := s.messageRepo.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("creating message: %w", err)
	}

	return s.transcript(ctx, conv.ID)
}

// CreateConversation explicitly opens (or returns the existing) conversation
// between two users.
func (s *MessagingService) CreateConversation(ctx context.Context, user1, user2 string) (*domain.Conversation, error) {
	if user1 == user2 {
		return nil, ErrSelfConversation
	}
	if err := s.resolveAll(ctx, user1, user2); err != nil {
		return nil, err
	}

	conv, err := s.conversationRepo.FindOrCreate(ctx, user1, user2)
	if err != nil {
		return nil, fmt.Errorf("finding conversation: %w", err)
	}
	return conv, nil
}

// ConversationMessages returns the transcript of a conversation by id.
func (s *MessagingService) ConversationMessages(ctx context.Context, conversationID int64) ([]domain.Message, error) {
	conv, err := s.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if conv == nil {
		return nil, ErrConversationNotFound
	}
	return s.transcript(ctx, conv.ID)
}

// ConversationMessagesBetween returns the transcript for an unordered pair
// of users. A pair that never conversed is not an error; the transcript is
// simply empty.
func (s *MessagingService) ConversationMessagesBetween(ctx context.Context, userA, userB string) ([]domain.Message, error) {
	if err := s.resolveAll(ctx, userA, userB); err != nil {
		return nil, err
	}

	conv, err := s.conversationRepo.GetByPair(ctx, userA, userB)
	if err != nil {
		return nil, err
	}
	if conv == nil {
		return []domain.Message{}, nil
	}
	return s.transcript(ctx, conv.ID)
}

// UserConversations returns every conversation the user participates in.
func (s *MessagingService) UserConversations(ctx context.Context, username string) ([]domain.Conversation, error) {
	if err := s.resolveAll(ctx, username); err != nil {
		return nil, err
	}

	convs, err := s.conversationRepo.ListByUser(ctx, username)
	if err != nil {
		return nil, err
	}
	if convs == nil {
		convs = []domain.Conversation{}
	}
	return convs, nil
}

// UserMessages returns everything the user sent or received, grouped by
// conversation and chronological within each.
func (s *MessagingService) UserMessages(ctx context.Context, username string) ([]domain.Message, error) {
	if err := s.resolveAll(ctx, username); err != nil {
		return nil, err
	}

	messages, err := s.messageRepo.ListByUser(ctx, username)
	if err != nil {
		return nil, err
	}
	if messages == nil {
		messages = []domain.Message{}
	}
	return messages, nil
}

// UserMessage looks up a single message by id, scoped to its sender. The
// recipient cannot fetch through this path; that is the published contract.
func (s *MessagingService) UserMessage(ctx context.Context, username string, id int64) (*domain.Message, error) {
	if err := s.resolveAll(ctx, username); err != nil {
		return nil, err
	}
	return s.messageRepo.GetBySenderAndID(ctx, username, id)
}

func (s *MessagingService) transcript(ctx context.Context, conversationID int64) ([]domain.Message, error) {
	messages, err := s.messageRepo.ListByConversation(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("listing messages: %w", err)
	}
	if messages == nil {
		messages = []domain.Message{}
	}
	return messages, nil
}

func (s *MessagingService) resolveAll(ctx context.Context, usernames ...string) error {
	for _, username := range usernames {
		user, err := s.userRepo.GetByUsername(ctx, username)
		if err != nil {
			return err
		}
		if user == nil {
			return ErrUserNotFound
		}
	}
	return nil
}
