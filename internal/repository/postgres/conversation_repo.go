package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mgregerson/sharebnb/internal/domain"
)

type ConversationRepo struct {
	pool *pgxpool.Pool
}

func NewConversationRepo(pool *pgxpool.Pool) *ConversationRepo {
	return &ConversationRepo{pool: pool}
}

// orderPair puts the two usernames in the canonical (lexicographic) order
// the conversations table stores them in, so every lookup is a single
// equality check regardless of which way round the caller passed them.
func orderPair(userA, userB string) (string, string) {
	if userA > userB {
		return userB, userA
	}
	return userA, userB
}

func (r *ConversationRepo) FindOrCreate(ctx context.Context, userA, userB string) (*domain.Conversation, error) {
	p1, p2 := orderPair(userA, userB)

	conv, err := r.getByOrderedPair(ctx, p1, p2)
	if err != nil {
		return nil, err
	}
	if conv != nil {
		return conv, nil
	}

	// ON CONFLICT DO NOTHING returns no row when a concurrent request won
	// the insert race; re-read the winner in that case.
	query := `
		INSERT INTO conversations (participant_one, participant_two)
		VALUES ($1, $2)
		ON CONFLICT (participant_one, participant_two) DO NOTHING
		RETURNING id, participant_one, participant_two, created_at`

	var c domain.Conversation
	err = r.pool.QueryRow(ctx, query, p1, p2).Scan(
		&c.ID, &c.ParticipantOne, &c.ParticipantTwo, &c.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		conv, err = r.getByOrderedPair(ctx, p1, p2)
		if err != nil {
			return nil, err
		}
		if conv == nil {
			return nil, fmt.Errorf("conversation for %s/%s vanished after insert conflict", p1, p2)
		}
		return conv, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ConversationRepo) GetByPair(ctx context.Context, userA, userB string) (*domain.Conversation, error) {
	p1, p2 := orderPair(userA, userB)
	return r.getByOrderedPair(ctx, p1, p2)
}

func (r *ConversationRepo) getByOrderedPair(ctx context.Context, p1, p2 string) (*domain.Conversation, error) {
	query := `
		SELECT id, participant_one, participant_two, created_at
		FROM conversations
		WHERE participant_one = $1 AND participant_two = $2`
	return r.scanConversation(ctx, query, p1, p2)
}

func (r *ConversationRepo) GetByID(ctx context.Context, id int64) (*domain.Conversation, error) {
	query := `
		SELECT id, participant_one, participant_two, created_at
		FROM conversations
		WHERE id = $1`
	return r.scanConversation(ctx, query, id)
}

func (r *ConversationRepo) ListByUser(ctx context.Context, username string) ([]domain.Conversation, error) {
	query := `
		SELECT id, participant_one, participant_two, created_at
		FROM conversations
		WHERE participant_one = $1 OR participant_two = $1
		ORDER BY id`

	rows, err := r.pool.Query(ctx, query, username)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var convs []domain.Conversation
	for rows.Next() {
		var c domain.Conversation
		if err := rows.Scan(&c.ID, &c.ParticipantOne, &c.ParticipantTwo, &c.CreatedAt); err != nil {
			return nil, err
		}
		convs = append(convs, c)
	}
	return convs, rows.Err()
}

func (r *ConversationRepo) scanConversation(ctx context.Context, query string, args ...any) (*domain.Conversation, error) {
	var c domain.Conversation
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&c.ID, &c.ParticipantOne, &c.ParticipantTwo, &c.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}
