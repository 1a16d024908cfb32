package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/SoporteChat-api/internal/domain/entity"
	"github.com/jhoicas/SoporteChat-api/internal/domain/repository"
)

var _ repository.ChatRepository = (*ChatRepo)(nil)

// ChatRepo implementación del puerto ChatRepository sobre PostgreSQL (usable con pool o tx).
type ChatRepo struct {
	q Querier
}

// NewChatRepository construye el adaptador de persistencia para chats.
func NewChatRepository(q Querier) *ChatRepo {
	return &ChatRepo{q: q}
}

const chatColumns = `id, user_id, company_id, title, summary, created_at, updated_at`

// Create persiste un nuevo chat.
func (r *ChatRepo) Create(chat *entity.Chat) error {
	query := `
		INSERT INTO chats (id, user_id, company_id, title, summary, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		chat.ID, chat.UserID, chat.CompanyID, chat.Title, chat.Summary,
		chat.CreatedAt, chat.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert chat: %w", err)
	}
	return nil
}

// GetByID obtiene un chat por ID.
func (r *ChatRepo) GetByID(id string) (*entity.Chat, error) {
	query := `SELECT ` + chatColumns + ` FROM chats WHERE id = $1`
	var c entity.Chat
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&c.ID, &c.UserID, &c.CompanyID, &c.Title, &c.Summary, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get chat: %w", err)
	}
	return &c, nil
}

// ListByUser devuelve los chats de un cliente, el más reciente primero.
func (r *ChatRepo) ListByUser(userID string, limit, offset int) ([]*entity.Chat, error) {
	query := `
		SELECT ` + chatColumns + `
		FROM chats WHERE user_id = $1 ORDER BY updated_at DESC LIMIT $2 OFFSET $3`
	return r.scanMany(query, userID, limit, offset)
}

// ListByCompany devuelve los chats de una empresa, el más reciente primero.
func (r *ChatRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Chat, error) {
	query := `
		SELECT ` + chatColumns + `
		FROM chats WHERE company_id = $1 ORDER BY updated_at DESC LIMIT $2 OFFSET $3`
	return r.scanMany(query, companyID, limit, offset)
}

func (r *ChatRepo) scanMany(query string, args ...any) ([]*entity.Chat, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list chats: %w", err)
	}
	defer rows.Close()
	var list []*entity.Chat
	for rows.Next() {
		var c entity.Chat
		if err := rows.Scan(&c.ID, &c.UserID, &c.CompanyID, &c.Title, &c.Summary, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan chat: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Touch actualiza updated_at del chat (llega un mensaje nuevo).
func (r *ChatRepo) Touch(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE chats SET updated_at = $2 WHERE id = $1`, id, time.Now())
	if err != nil {
		return fmt.Errorf("touch chat: %w", err)
	}
	return nil
}

// SetSummary escribe el resumen del chat. Última escritura gana.
func (r *ChatRepo) SetSummary(id, summary string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE chats SET summary = $2 WHERE id = $1`, id, summary)
	if err != nil {
		return fmt.Errorf("set chat summary: %w", err)
	}
	return nil
}
