package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mgregerson/sharebnb/internal/domain"
)

type MessageRepo struct {
	pool *pgxpool.Pool
}

func NewMessageRepo(pool *pgxpool.Pool) *MessageRepo {
	return &MessageRepo{pool: pool}
}

func (r *MessageRepo) Create(ctx context.Context, msg *domain.Message) error {
	query := `
		INSERT INTO messages (conversation_id, sender, recipient, content)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		msg.ConversationID, msg.Sender, msg.Recipient, msg.Content,
	).Scan(&msg.ID, &msg.CreatedAt)
}

func (r *MessageRepo) GetBySenderAndID(ctx context.Context, sender string, id int64) (*domain.Message, error) {
	query := `
		SELECT id, conversation_id, sender, recipient, content, created_at
		FROM messages
		WHERE id = $1 AND sender = $2`

	var m domain.Message
	err := r.pool.QueryRow(ctx, query, id, sender).Scan(
		&m.ID, &m.ConversationID, &m.Sender, &m.Recipient, &m.Content, &m.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// ListByConversation returns the transcript in chronological order; the id
// tiebreak keeps insertion order when timestamps collide.
func (r *MessageRepo) ListByConversation(ctx context.Context, conversationID int64) ([]domain.Message, error) {
	query := `
		SELECT id, conversation_id, sender, recipient, content, created_at
		FROM messages
		WHERE conversation_id = $1
		ORDER BY created_at, id`
	return r.listMessages(ctx, query, conversationID)
}

func (r *MessageRepo) ListByUser(ctx context.Context, username string) ([]domain.Message, error) {
	query := `
		SELECT id, conversation_id, sender, recipient, content, created_at
		FROM messages
		WHERE sender = $1 OR recipient = $1
		ORDER BY conversation_id, created_at, id`
	return r.listMessages(ctx, query, username)
}

func (r *MessageRepo) listMessages(ctx context.Context, query string, arg any) ([]domain.Message, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []domain.Message
	for rows.Next() {
		var m domain.Message
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.Sender, &m.Recipient, &m.Content, &m.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}
