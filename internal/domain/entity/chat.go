package entity

import "time"

// Chat es una conversación entre un cliente y el asistente de una empresa.
// Pertenece a exactamente un usuario y una empresa; esa propiedad es inmutable.
// Summary se escribe una sola vez (nil hasta que el disparador lo genere).
type Chat struct {
	ID        string
	UserID    string
	CompanyID string
	Title     string
	Summary   *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
