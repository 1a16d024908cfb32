package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/SoporteChat-api/internal/domain/entity"
	"github.com/jhoicas/SoporteChat-api/internal/domain/repository"
)

var _ repository.MessageRepository = (*MessageRepo)(nil)

// MessageRepo implementación del puerto MessageRepository sobre PostgreSQL (usable con pool o tx).
type MessageRepo struct {
	q Querier
}

// NewMessageRepository construye el adaptador de persistencia para mensajes.
func NewMessageRepository(q Querier) *MessageRepo {
	return &MessageRepo{q: q}
}

// Create persiste un nuevo mensaje (append-only; nunca hay update ni delete).
func (r *MessageRepo) Create(message *entity.Message) error {
	query := `
		INSERT INTO messages (id, chat_id, role, content, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		message.ID, message.ChatID, message.Role, message.Content, message.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	return nil
}

// ListByChat devuelve los mensajes de un chat ordenados por created_at ascendente.
func (r *MessageRepo) ListByChat(chatID string) ([]*entity.Message, error) {
	query := `
		SELECT id, chat_id, role, content, created_at
		FROM messages WHERE chat_id = $1 ORDER BY created_at ASC`
	rows, err := r.q.Query(context.Background(), query, chatID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()
	var list []*entity.Message
	for rows.Next() {
		var m entity.Message
		if err := rows.Scan(&m.ID, &m.ChatID, &m.Role, &m.Content, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// CountByChat cuenta los mensajes de un chat (para el umbral de resumen).
func (r *MessageRepo) CountByChat(chatID string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM messages WHERE chat_id = $1`, chatID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count messages: %w", err)
	}
	return n, nil
}
