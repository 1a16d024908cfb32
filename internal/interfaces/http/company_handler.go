package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/SoporteChat-api/internal/application/dto"
	"github.com/jhoicas/SoporteChat-api/internal/application/usecase"
	"github.com/jhoicas/SoporteChat-api/internal/domain"
)

// CompanyHandler maneja el directorio público de empresas y el documento de conocimiento.
type CompanyHandler struct {
	uc *usecase.CompanyUseCase
}

// NewCompanyHandler construye el handler inyectando el caso de uso.
func NewCompanyHandler(uc *usecase.CompanyUseCase) *CompanyHandler {
	return &CompanyHandler{uc: uc}
}

// List godoc
// @Summary      Directorio de empresas
// @Tags         companies
// @Produce      json
// @Param        q       query  string  false  "búsqueda por nombre"
// @Param        limit   query  int     false  "máx. resultados"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200  {object}  dto.CompanyListResponse
// @Router       /api/companies [get]
func (h *CompanyHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	out, err := h.uc.List(c.Query("q"), page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
	return c.JSON(out)
}

// GetBySlug godoc
// @Summary      Perfil público de una empresa
// @Tags         companies
// @Produce      json
// @Param        slug  path  string  true  "slug de la empresa"
// @Success      200  {object}  dto.CompanyResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/companies/{slug} [get]
func (h *CompanyHandler) GetBySlug(c *fiber.Ctx) error {
	slug := c.Params("slug")
	if slug == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_SLUG", Message: "slug es requerido"})
	}
	out, err := h.uc.GetBySlug(slug)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "empresa no encontrada"})
	}
	return c.JSON(out)
}

// GetData godoc
// @Summary      Documento de conocimiento de la empresa (staff)
// @Tags         company
// @Produce      json
// @Success      200  {object}  dto.CompanyDataResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/company/data [get]
func (h *CompanyHandler) GetData(c *fiber.Ctx) error {
	out, err := h.uc.GetData(GetPrincipal(c))
	if err != nil {
		switch err {
		case domain.ErrForbidden:
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado"})
		case domain.ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "documento no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
	return c.JSON(out)
}

// UpsertData godoc
// @Summary      Reemplazar el documento de conocimiento (solo admin)
// @Tags         company
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CompanyDataRequest  true  "features, pricing, usage, common_issues"
// @Success      200  {object}  dto.CompanyDataResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/company/data [put]
func (h *CompanyHandler) UpsertData(c *fiber.Ctx) error {
	var in dto.CompanyDataRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.UpsertData(GetPrincipal(c), in)
	if err != nil {
		if err == domain.ErrForbidden {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
	return c.JSON(out)
}
