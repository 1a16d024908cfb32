package entity

import "time"

// InvitationTTL vigencia de una invitación desde su emisión.
const InvitationTTL = 7 * 24 * time.Hour

// Invitation invita a un email a unirse al staff de una empresa.
// El token es de un solo uso: al aceptar, la fila se elimina.
type Invitation struct {
	ID        string
	CompanyID string
	Email     string
	Role      string // company_admin, company_member
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired informa si la invitación ya venció respecto a now.
func (i *Invitation) Expired(now time.Time) bool {
	return now.After(i.ExpiresAt)
}
