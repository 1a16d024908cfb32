package repository

import "github.com/jhoicas/SoporteChat-api/internal/domain/entity"

// InvitationRepository define el puerto de persistencia para Invitation.
type InvitationRepository interface {
	Create(invitation *entity.Invitation) error
	GetByToken(token string) (*entity.Invitation, error)
	GetByID(id string) (*entity.Invitation, error)
	GetByEmailAndCompany(email, companyID string) (*entity.Invitation, error)
	ListByCompany(companyID string) ([]*entity.Invitation, error)
	Delete(id string) error
}
