package team

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/SoporteChat-api/internal/application/access"
	"github.com/jhoicas/SoporteChat-api/internal/application/auth"
	"github.com/jhoicas/SoporteChat-api/internal/application/dto"
	"github.com/jhoicas/SoporteChat-api/internal/domain"
	"github.com/jhoicas/SoporteChat-api/internal/domain/entity"
	"github.com/jhoicas/SoporteChat-api/internal/domain/repository"
	"golang.org/x/crypto/bcrypt"
)

// AcceptTxRunner ejecuta la aceptación de una invitación (crear-o-promover el
// usuario staff + eliminar la invitación) como una sola transacción.
type AcceptTxRunner interface {
	RunAccept(ctx context.Context, fn func(
		userRepo repository.UserRepository,
		invitationRepo repository.InvitationRepository,
	) error) error
}

// TeamUseCase gestiona el staff de una empresa vía invitaciones con token.
// Solo existe el flujo por token: emitir → verificar → aceptar (o expirar).
type TeamUseCase struct {
	invitationRepo repository.InvitationRepository
	userRepo       repository.UserRepository
	companyRepo    repository.CompanyRepository
	txRunner       AcceptTxRunner
}

// NewTeamUseCase construye el caso de uso de equipo.
func NewTeamUseCase(
	invitationRepo repository.InvitationRepository,
	userRepo repository.UserRepository,
	companyRepo repository.CompanyRepository,
	txRunner AcceptTxRunner,
) *TeamUseCase {
	return &TeamUseCase{
		invitationRepo: invitationRepo,
		userRepo:       userRepo,
		companyRepo:    companyRepo,
		txRunner:       txRunner,
	}
}

// newToken genera el token de invitación: 32 bytes aleatorios en hex.
// Alta entropía y un solo uso; la unicidad la garantiza el constraint de DB.
func newToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generar token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// Invite emite una invitación para un email con rol de staff. Solo el admin.
// Devuelve domain.ErrDuplicate si el email ya es miembro o ya tiene invitación pendiente.
func (uc *TeamUseCase) Invite(p access.Principal, in dto.CreateInvitationRequest) (*dto.InvitationResponse, error) {
	if !access.CanManageCompany(p) {
		return nil, domain.ErrForbidden
	}
	member, err := uc.userRepo.GetByEmailAndCompany(in.Email, p.CompanyID)
	if err != nil {
		return nil, err
	}
	if member != nil {
		return nil, domain.ErrDuplicate
	}
	pending, err := uc.invitationRepo.GetByEmailAndCompany(in.Email, p.CompanyID)
	if err != nil {
		return nil, err
	}
	if pending != nil {
		return nil, domain.ErrDuplicate
	}

	token, err := newToken()
	if err != nil {
		return nil, err
	}
	now := time.Now()
	invitation := &entity.Invitation{
		ID:        uuid.New().String(),
		CompanyID: p.CompanyID,
		Email:     in.Email,
		Role:      in.Role,
		Token:     token,
		ExpiresAt: now.Add(entity.InvitationTTL),
		CreatedAt: now,
	}
	if err := uc.invitationRepo.Create(invitation); err != nil {
		return nil, err
	}
	return toInvitationResponse(invitation), nil
}

// Verify valida un token de invitación sin consumirlo.
// Devuelve domain.ErrNotFound si no existe y domain.ErrInvitationExpired si venció.
func (uc *TeamUseCase) Verify(token string) (*dto.VerifyInvitationResponse, error) {
	invitation, err := uc.invitationRepo.GetByToken(token)
	if err != nil {
		return nil, err
	}
	if invitation == nil {
		return nil, domain.ErrNotFound
	}
	if invitation.Expired(time.Now()) {
		return nil, domain.ErrInvitationExpired
	}
	company, err := uc.companyRepo.GetByID(invitation.CompanyID)
	if err != nil {
		return nil, err
	}
	companyName := ""
	if company != nil {
		companyName = company.Name
	}
	return &dto.VerifyInvitationResponse{
		Email:       invitation.Email,
		Role:        invitation.Role,
		CompanyName: companyName,
	}, nil
}

// Accept consume una invitación: crea el usuario staff (o promueve el registro
// existente sin password) y elimina la invitación, todo en UNA transacción.
// Un token expirado falla siempre, sin importar el password; un segundo intento
// con el mismo token falla porque la fila ya no existe.
func (uc *TeamUseCase) Accept(ctx context.Context, in dto.AcceptInvitationRequest) error {
	invitation, err := uc.invitationRepo.GetByToken(in.Token)
	if err != nil {
		return err
	}
	if invitation == nil {
		return domain.ErrNotFound
	}
	if invitation.Expired(time.Now()) {
		return domain.ErrInvitationExpired
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	hashStr := string(hash)

	return uc.txRunner.RunAccept(ctx, func(
		userRepo repository.UserRepository,
		invitationRepo repository.InvitationRepository,
	) error {
		now := time.Now()
		existing, err := userRepo.GetByEmailAndCompany(invitation.Email, invitation.CompanyID)
		if err != nil {
			return err
		}
		if existing != nil {
			if existing.PasswordHash != nil {
				// Miembro ya activo: la invitación quedó obsoleta
				return domain.ErrConflict
			}
			existing.Name = in.Name
			existing.PasswordHash = &hashStr
			existing.Role = invitation.Role
			existing.UpdatedAt = now
			if err := userRepo.Update(existing); err != nil {
				return err
			}
		} else {
			companyID := invitation.CompanyID
			user := &entity.User{
				ID:           uuid.New().String(),
				CompanyID:    &companyID,
				Email:        invitation.Email,
				PasswordHash: &hashStr,
				Name:         in.Name,
				Role:         invitation.Role,
				CreatedAt:    now,
				UpdatedAt:    now,
			}
			if err := userRepo.Create(user); err != nil {
				return err
			}
		}
		return invitationRepo.Delete(invitation.ID)
	})
}

// ListMembers staff actual de la empresa. Solo el admin.
func (uc *TeamUseCase) ListMembers(p access.Principal, page dto.PageRequest) (*dto.TeamMemberListResponse, error) {
	if !access.CanManageCompany(p) {
		return nil, domain.ErrForbidden
	}
	page.DefaultPage()
	users, err := uc.userRepo.ListByCompany(p.CompanyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		items = append(items, *auth.ToUserResponse(u))
	}
	return &dto.TeamMemberListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}, nil
}

// ListInvitations invitaciones pendientes de la empresa. Solo el admin.
func (uc *TeamUseCase) ListInvitations(p access.Principal) (*dto.InvitationListResponse, error) {
	if !access.CanManageCompany(p) {
		return nil, domain.ErrForbidden
	}
	invitations, err := uc.invitationRepo.ListByCompany(p.CompanyID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.InvitationResponse, 0, len(invitations))
	for _, inv := range invitations {
		items = append(items, *toInvitationResponse(inv))
	}
	return &dto.InvitationListResponse{Items: items}, nil
}

// DeleteInvitation revoca una invitación pendiente. Solo el admin, y solo de su
// propia empresa: una invitación ajena responde NotFound.
func (uc *TeamUseCase) DeleteInvitation(p access.Principal, id string) error {
	if !access.CanManageCompany(p) {
		return domain.ErrForbidden
	}
	invitation, err := uc.invitationRepo.GetByID(id)
	if err != nil {
		return err
	}
	if invitation == nil || invitation.CompanyID != p.CompanyID {
		return domain.ErrNotFound
	}
	return uc.invitationRepo.Delete(invitation.ID)
}

func toInvitationResponse(i *entity.Invitation) *dto.InvitationResponse {
	return &dto.InvitationResponse{
		ID:        i.ID,
		Email:     i.Email,
		Role:      i.Role,
		Token:     i.Token,
		ExpiresAt: i.ExpiresAt,
		CreatedAt: i.CreatedAt,
	}
}
