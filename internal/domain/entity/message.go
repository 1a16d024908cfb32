package entity

import "time"

// Roles válidos para Message.
const (
	MessageRoleUser      = "user"
	MessageRoleAssistant = "assistant"
)

// Message es un turno dentro de un Chat. Append-only: nunca se edita ni borra.
// El orden dentro del chat es por CreatedAt ascendente.
type Message struct {
	ID        string
	ChatID    string
	Role      string // user, assistant
	Content   string
	CreatedAt time.Time
}
