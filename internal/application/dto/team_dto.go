package dto

import "time"

// CreateInvitationRequest entrada para invitar a un email al staff de la empresa.
type CreateInvitationRequest struct {
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"required,oneof=company_admin company_member"`
}

// InvitationResponse salida de una invitación. Incluye el token para que el
// admin construya el enlace de aceptación.
type InvitationResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// VerifyInvitationResponse salida de la verificación de un token de invitación.
type VerifyInvitationResponse struct {
	Email       string `json:"email"`
	Role        string `json:"role"`
	CompanyName string `json:"company_name"`
}

// AcceptInvitationRequest entrada para aceptar una invitación.
type AcceptInvitationRequest struct {
	Token    string `json:"token" validate:"required"`
	Name     string `json:"name" validate:"required,min=1,max=200"`
	Password string `json:"password" validate:"required,min=8"`
}

// TeamMemberListResponse staff actual de la empresa.
type TeamMemberListResponse struct {
	Items []UserResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// InvitationListResponse invitaciones pendientes de la empresa.
type InvitationListResponse struct {
	Items []InvitationResponse `json:"items"`
}
