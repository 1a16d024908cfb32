package repository

import "github.com/jhoicas/SoporteChat-api/internal/domain/entity"

// MessageRepository define el puerto de persistencia para Message (append-only).
type MessageRepository interface {
	Create(message *entity.Message) error
	// ListByChat devuelve los mensajes de un chat ordenados por created_at ascendente.
	ListByChat(chatID string) ([]*entity.Message, error)
	CountByChat(chatID string) (int, error)
}
