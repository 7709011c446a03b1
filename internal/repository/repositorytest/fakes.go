// Package repositorytest provides in-memory fakes of the repository
// interfaces for service and handler tests. The conversation fake enforces
// the same unordered-pair uniqueness the database index does, under a lock,
// so concurrent find-or-create behaves like the real store.
package repositorytest

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/mgregerson/sharebnb/internal/domain"
)

type FakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func NewFakeUserRepo() *FakeUserRepo {
	return &FakeUserRepo{users: make(map[string]*domain.User)}
}

func (r *FakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.Username]; ok {
		return fmt.Errorf("duplicate username %q", user.Username)
	}
	copied := *user
	r.users[user.Username] = &copied
	return nil
}

func (r *FakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[username]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (r *FakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

type FakeConversationRepo struct {
	mu     sync.Mutex
	nextID int64
	convs  []domain.Conversation
}

func NewFakeConversationRepo() *FakeConversationRepo {
	return &FakeConversationRepo{}
}

func orderPair(a, b string) (string, string) {
	if a > b {
		return b, a
	}
	return a, b
}

func (r *FakeConversationRepo) FindOrCreate(_ context.Context, userA, userB string) (*domain.Conversation, error) {
	p1, p2 := orderPair(userA, userB)

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.convs {
		if c.ParticipantOne == p1 && c.ParticipantTwo == p2 {
			copied := c
			return &copied, nil
		}
	}

	r.nextID++
	c := domain.Conversation{
		ID:             r.nextID,
		ParticipantOne: p1,
		ParticipantTwo: p2,
		CreatedAt:      time.Now(),
	}
	r.convs = append(r.convs, c)
	copied := c
	return &copied, nil
}

func (r *FakeConversationRepo) GetByPair(_ context.Context, userA, userB string) (*domain.Conversation, error) {
	p1, p2 := orderPair(userA, userB)

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.convs {
		if c.ParticipantOne == p1 && c.ParticipantTwo == p2 {
			copied := c
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *FakeConversationRepo) GetByID(_ context.Context, id int64) (*domain.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.convs {
		if c.ID == id {
			copied := c
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *FakeConversationRepo) ListByUser(_ context.Context, username string) ([]domain.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Conversation
	for _, c := range r.convs {
		if c.Involves(username) {
			out = append(out, c)
		}
	}
	return out, nil
}

// Count reports the number of stored conversations.
func (r *FakeConversationRepo) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.convs)
}

type FakeMessageRepo struct {
	mu     sync.Mutex
	nextID int64
	msgs   []domain.Message

	// Now supplies message timestamps; override it to force ties.
	Now func() time.Time
}

func NewFakeMessageRepo() *FakeMessageRepo {
	return &FakeMessageRepo{Now: time.Now}
}

func (r *FakeMessageRepo) Create(_ context.Context, msg *domain.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	msg.ID = r.nextID
	msg.CreatedAt = r.Now()
	r.msgs = append(r.msgs, *msg)
	return nil
}

func (r *FakeMessageRepo) GetBySenderAndID(_ context.Context, sender string, id int64) (*domain.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.msgs {
		if m.ID == id && m.Sender == sender {
			copied := m
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *FakeMessageRepo) ListByConversation(_ context.Context, conversationID int64) ([]domain.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Message
	for _, m := range r.msgs {
		if m.ConversationID == conversationID {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *FakeMessageRepo) ListByUser(_ context.Context, username string) ([]domain.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Message
	for _, m := range r.msgs {
		if m.Sender == username || m.Recipient == username {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].ConversationID != out[j].ConversationID {
			return out[i].ConversationID < out[j].ConversationID
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

type FakeRentalRepo struct {
	mu      sync.Mutex
	nextID  int64
	rentals []domain.Rental
}

func NewFakeRentalRepo() *FakeRentalRepo {
	return &FakeRentalRepo{}
}

func (r *FakeRentalRepo) Create(_ context.Context, rental *domain.Rental) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	rental.ID = r.nextID
	r.rentals = append(r.rentals, *rental)
	return nil
}

func (r *FakeRentalRepo) GetByID(_ context.Context, id int64) (*domain.Rental, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rental := range r.rentals {
		if rental.ID == id {
			copied := rental
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *FakeRentalRepo) ListAll(_ context.Context) ([]domain.Rental, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Rental, len(r.rentals))
	copy(out, r.rentals)
	return out, nil
}

func (r *FakeRentalRepo) ListByOwner(_ context.Context, username string) ([]domain.Rental, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Rental
	for _, rental := range r.rentals {
		if rental.OwnerUsername == username {
			out = append(out, rental)
		}
	}
	return out, nil
}

type FakeReservationRepo struct {
	mu           sync.Mutex
	nextID       int64
	reservations []domain.Reservation
}

func NewFakeReservationRepo() *FakeReservationRepo {
	return &FakeReservationRepo{}
}

func (r *FakeReservationRepo) Create(_ context.Context, reservation *domain.Reservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	reservation.ID = r.nextID
	r.reservations = append(r.reservations, *reservation)
	return nil
}

func (r *FakeReservationRepo) GetByRenterAndID(_ context.Context, renter string, id int64) (*domain.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, res := range r.reservations {
		if res.Renter == renter && res.ID == id {
			copied := res
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *FakeReservationRepo) ListByRenter(_ context.Context, renter string) ([]domain.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Reservation
	for _, res := range r.reservations {
		if res.Renter == renter {
			out = append(out, res)
		}
	}
	return out, nil
}
