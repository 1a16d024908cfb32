package dto

import "time"

// CreateChatRequest entrada para abrir un chat con una empresa (solo clientes).
type CreateChatRequest struct {
	CompanySlug string `json:"company_slug" validate:"required"`
}

// CreateChatResponse salida de la creación de un chat.
type CreateChatResponse struct {
	ChatID      string `json:"chat_id"`
	CompanySlug string `json:"company_slug"`
}

// SendMessageRequest entrada para enviar un mensaje a un chat existente.
type SendMessageRequest struct {
	Message string `json:"message" validate:"required,min=1"`
}

// SendMessageResponse salida del envío: el ID del mensaje del asistente y su texto.
type SendMessageResponse struct {
	ChatID    string `json:"chat_id"`
	MessageID string `json:"message_id"`
	Response  string `json:"response"`
}

// SummaryResponse salida del resumen de un chat.
type SummaryResponse struct {
	Summary string `json:"summary"`
}

// ChatMessageResponse un turno de la conversación.
type ChatMessageResponse struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// ChatResponse un chat con sus mensajes ordenados cronológicamente.
type ChatResponse struct {
	ID        string                `json:"id"`
	UserID    string                `json:"user_id"`
	CompanyID string                `json:"company_id"`
	Title     string                `json:"title"`
	Summary   *string               `json:"summary,omitempty"`
	CreatedAt time.Time             `json:"created_at"`
	UpdatedAt time.Time             `json:"updated_at"`
	Messages  []ChatMessageResponse `json:"messages,omitempty"`
}

// ChatListResponse listado de chats (sin mensajes).
type ChatListResponse struct {
	Items []ChatResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// CompanyChatResponse vista de un chat para el staff de la empresa (solo lectura):
// incluye datos del cliente, el primer mensaje y el total de mensajes.
type CompanyChatResponse struct {
	ChatResponse
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	FirstMessage  string `json:"first_message,omitempty"`
	MessageCount  int    `json:"message_count"`
}

// CompanyChatListResponse listado de chats de la empresa para el staff.
type CompanyChatListResponse struct {
	Items []CompanyChatResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}
