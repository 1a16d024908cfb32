package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/SoporteChat-api/internal/application/dto"
	"github.com/jhoicas/SoporteChat-api/internal/application/team"
	"github.com/jhoicas/SoporteChat-api/internal/domain"
	"github.com/jhoicas/SoporteChat-api/internal/domain/entity"
)

// TeamHandler maneja el staff de la empresa y el ciclo de vida de invitaciones.
type TeamHandler struct {
	uc *team.TeamUseCase
}

// NewTeamHandler construye el handler de equipo.
func NewTeamHandler(uc *team.TeamUseCase) *TeamHandler {
	return &TeamHandler{uc: uc}
}

// Invite godoc
// @Summary      Invitar a un miembro al staff (solo admin)
// @Tags         team
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInvitationRequest  true  "email, role"
// @Success      201  {object}  dto.InvitationResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/team/invitations [post]
func (h *TeamHandler) Invite(c *fiber.Ctx) error {
	var in dto.CreateInvitationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email es requerido"})
	}
	if in.Role == "" {
		in.Role = entity.RoleCompanyMember
	}
	if in.Role != entity.RoleCompanyMember && in.Role != entity.RoleCompanyAdmin {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "role debe ser company_member o company_admin"})
	}
	out, err := h.uc.Invite(GetPrincipal(c), in)
	if err != nil {
		switch err {
		case domain.ErrForbidden:
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado"})
		case domain.ErrDuplicate:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "el email ya es miembro o tiene invitación pendiente"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Verify godoc
// @Summary      Verificar un token de invitación (público, no lo consume)
// @Tags         team
// @Produce      json
// @Param        token  query  string  true  "token de invitación"
// @Success      200  {object}  dto.VerifyInvitationResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/team/invitations/verify [get]
func (h *TeamHandler) Verify(c *fiber.Ctx) error {
	token := c.Query("token")
	if token == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "token es requerido"})
	}
	out, err := h.uc.Verify(token)
	if err != nil {
		switch err {
		case domain.ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "invitación no encontrada"})
		case domain.ErrInvitationExpired:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVITATION_EXPIRED", Message: "invitación expirada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
	return c.JSON(out)
}

// Accept godoc
// @Summary      Aceptar una invitación (público, consume el token)
// @Tags         team
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AcceptInvitationRequest  true  "token, name, password"
// @Success      200  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/team/invitations/accept [post]
func (h *TeamHandler) Accept(c *fiber.Ctx) error {
	var in dto.AcceptInvitationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Token == "" || in.Name == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "token, name y password son requeridos"})
	}
	if len(in.Password) < 8 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "password debe tener al menos 8 caracteres"})
	}
	if err := h.uc.Accept(c.Context(), in); err != nil {
		switch err {
		case domain.ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "invitación no encontrada"})
		case domain.ErrInvitationExpired:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVITATION_EXPIRED", Message: "invitación expirada"})
		case domain.ErrConflict:
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "el usuario ya es miembro activo"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
	return c.JSON(dto.MessageResponse{Message: "invitación aceptada"})
}

// ListMembers godoc
// @Summary      Staff de la empresa (solo admin)
// @Tags         team
// @Produce      json
// @Param        limit   query  int  false  "máx. resultados"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {object}  dto.TeamMemberListResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/team/members [get]
func (h *TeamHandler) ListMembers(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	out, err := h.uc.ListMembers(GetPrincipal(c), page)
	if err != nil {
		if err == domain.ErrForbidden {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
	return c.JSON(out)
}

// ListInvitations godoc
// @Summary      Invitaciones pendientes (solo admin)
// @Tags         team
// @Produce      json
// @Success      200  {object}  dto.InvitationListResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/team/invitations [get]
func (h *TeamHandler) ListInvitations(c *fiber.Ctx) error {
	out, err := h.uc.ListInvitations(GetPrincipal(c))
	if err != nil {
		if err == domain.ErrForbidden {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
	return c.JSON(out)
}

// DeleteInvitation godoc
// @Summary      Revocar una invitación pendiente (solo admin)
// @Tags         team
// @Produce      json
// @Param        id  path  string  true  "ID de la invitación"
// @Success      200  {object}  dto.MessageResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/team/invitations/{id} [delete]
func (h *TeamHandler) DeleteInvitation(c *fiber.Ctx) error {
	if err := h.uc.DeleteInvitation(GetPrincipal(c), c.Params("id")); err != nil {
		switch err {
		case domain.ErrForbidden:
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado"})
		case domain.ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "invitación no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
	return c.JSON(dto.MessageResponse{Message: "invitación eliminada"})
}
