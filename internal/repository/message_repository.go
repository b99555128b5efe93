package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"socialfeed/internal/identity"
	"socialfeed/internal/models"
)

type messageRepository struct {
	db *sqlx.DB
}

func NewMessageRepository(db *sqlx.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, message *models.Message) error {
	query := `
		INSERT INTO messages (sender, receiver, content, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING message_id
	`

	err := r.db.QueryRowxContext(ctx, query,
		message.Sender,
		message.Receiver,
		message.Content,
		message.CreatedAt,
	).Scan(&message.MessageID)
	if err != nil {
		return fmt.Errorf("ошибка при отправке сообщения: %w", err)
	}

	return nil
}

// GetConversation returns messages between a and b in both directions, oldest first.
func (r *messageRepository) GetConversation(ctx context.Context, a, b identity.Principal) ([]models.Message, error) {
	query := `
		SELECT message_id, sender, receiver, content, created_at
		FROM messages
		WHERE (sender = $1 AND receiver = $2) OR (sender = $2 AND receiver = $1)
		ORDER BY message_id
	`

	messages := []models.Message{}
	if err := r.db.SelectContext(ctx, &messages, query, a, b); err != nil {
		return nil, fmt.Errorf("ошибка при получении сообщений: %w", err)
	}

	return messages, nil
}
