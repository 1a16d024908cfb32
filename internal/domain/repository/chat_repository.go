package repository

import "github.com/jhoicas/SoporteChat-api/internal/domain/entity"

// ChatRepository define el puerto de persistencia para Chat.
type ChatRepository interface {
	Create(chat *entity.Chat) error
	GetByID(id string) (*entity.Chat, error)
	// ListByUser devuelve los chats de un cliente, el más reciente primero.
	ListByUser(userID string, limit, offset int) ([]*entity.Chat, error)
	// ListByCompany devuelve los chats de una empresa, el más reciente primero.
	ListByCompany(companyID string, limit, offset int) ([]*entity.Chat, error)
	// Touch actualiza updated_at del chat (se llama al agregar mensajes).
	Touch(id string) error
	// SetSummary escribe el resumen. Última escritura gana: el resumen es
	// texto consultivo, no un campo crítico de consistencia.
	SetSummary(id, summary string) error
}
