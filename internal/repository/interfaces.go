package repository

import (
	"context"

	"github.com/mgregerson/sharebnb/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type RentalRepository interface {
	Create(ctx context.Context, rental *domain.Rental) error
	GetByID(ctx context.Context, id int64) (*domain.Rental, error)
	ListAll(ctx context.Context) ([]domain.Rental, error)
	ListByOwner(ctx context.Context, username string) ([]domain.Rental, error)
}

type ReservationRepository interface {
	// Create persists the reservation and, when it carries a rating,
	// the rating row, in one transaction.
	Create(ctx context.Context, reservation *domain.Reservation) error
	GetByRenterAndID(ctx context.Context, renter string, id int64) (*domain.Reservation, error)
	ListByRenter(ctx context.Context, renter string) ([]domain.Reservation, error)
}

type ConversationRepository interface {
	// FindOrCreate returns the one conversation for the unordered pair
	// {userA, userB}, creating it on first contact. Concurrent calls for
	// the same pair converge on a single row.
	FindOrCreate(ctx context.Context, userA, userB string) (*domain.Conversation, error)
	GetByPair(ctx context.Context, userA, userB string) (*domain.Conversation, error)
	GetByID(ctx context.Context, id int64) (*domain.Conversation, error)
	ListByUser(ctx context.Context, username string) ([]domain.Conversation, error)
}

type MessageRepository interface {
	Create(ctx context.Context, msg *domain.Message) error
	GetBySenderAndID(ctx context.Context, sender string, id int64) (*domain.Message, error)
	ListByConversation(ctx context.Context, conversationID int64) ([]domain.Message, error)
	ListByUser(ctx context.Context, username string) ([]domain.Message, error)
}
