package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/SoporteChat-api/internal/domain"
	"github.com/jhoicas/SoporteChat-api/internal/domain/entity"
	"github.com/jhoicas/SoporteChat-api/internal/domain/repository"
)

var _ repository.InvitationRepository = (*InvitationRepo)(nil)

// InvitationRepo implementación del puerto InvitationRepository sobre PostgreSQL (usable con pool o tx).
type InvitationRepo struct {
	q Querier
}

// NewInvitationRepository construye el adaptador de persistencia para invitaciones.
func NewInvitationRepository(q Querier) *InvitationRepo {
	return &InvitationRepo{q: q}
}

const invitationColumns = `id, company_id, email, role, token, expires_at, created_at`

// Create persiste una nueva invitación. El token tiene constraint único.
func (r *InvitationRepo) Create(invitation *entity.Invitation) error {
	query := `
		INSERT INTO invitations (id, company_id, email, role, token, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		invitation.ID, invitation.CompanyID, invitation.Email, invitation.Role,
		invitation.Token, invitation.ExpiresAt, invitation.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert invitation: %w", err)
	}
	return nil
}

// GetByToken obtiene una invitación por su token.
func (r *InvitationRepo) GetByToken(token string) (*entity.Invitation, error) {
	query := `SELECT ` + invitationColumns + ` FROM invitations WHERE token = $1`
	return r.scanOne(query, token)
}

// GetByID obtiene una invitación por ID.
func (r *InvitationRepo) GetByID(id string) (*entity.Invitation, error) {
	query := `SELECT ` + invitationColumns + ` FROM invitations WHERE id = $1`
	return r.scanOne(query, id)
}

// GetByEmailAndCompany obtiene la invitación pendiente de un email en una empresa.
func (r *InvitationRepo) GetByEmailAndCompany(email, companyID string) (*entity.Invitation, error) {
	query := `SELECT ` + invitationColumns + ` FROM invitations WHERE email = $1 AND company_id = $2`
	return r.scanOne(query, email, companyID)
}

func (r *InvitationRepo) scanOne(query string, args ...any) (*entity.Invitation, error) {
	var i entity.Invitation
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&i.ID, &i.CompanyID, &i.Email, &i.Role, &i.Token, &i.ExpiresAt, &i.CreatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invitation: %w", err)
	}
	return &i, nil
}

// ListByCompany lista las invitaciones pendientes de una empresa.
func (r *InvitationRepo) ListByCompany(companyID string) ([]*entity.Invitation, error) {
	query := `SELECT ` + invitationColumns + ` FROM invitations WHERE company_id = $1 ORDER BY created_at DESC`
	rows, err := r.q.Query(context.Background(), query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list invitations: %w", err)
	}
	defer rows.Close()
	var list []*entity.Invitation
	for rows.Next() {
		var i entity.Invitation
		if err := rows.Scan(&i.ID, &i.CompanyID, &i.Email, &i.Role, &i.Token, &i.ExpiresAt, &i.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan invitation: %w", err)
		}
		list = append(list, &i)
	}
	return list, rows.Err()
}

// Delete elimina una invitación (aceptada o revocada por el admin).
func (r *InvitationRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM invitations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete invitation: %w", err)
	}
	return nil
}
