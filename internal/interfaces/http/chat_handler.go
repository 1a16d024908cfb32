package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/SoporteChat-api/internal/application/chat"
	"github.com/jhoicas/SoporteChat-api/internal/application/dto"
	"github.com/jhoicas/SoporteChat-api/internal/domain"
)

// ChatHandler maneja los chats del cliente y la vista de chats del staff.
type ChatHandler struct {
	uc *chat.ChatUseCase
}

// NewChatHandler construye el handler de chats.
func NewChatHandler(uc *chat.ChatUseCase) *ChatHandler {
	return &ChatHandler{uc: uc}
}

// Create godoc
// @Summary      Abrir un chat con una empresa
// @Tags         chats
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateChatRequest  true  "company_slug"
// @Success      201   {object}  dto.CreateChatResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/chats [post]
func (h *ChatHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateChatRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.CompanySlug == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "company_slug es requerido"})
	}
	out, err := h.uc.CreateChat(GetPrincipal(c), in)
	if err != nil {
		switch err {
		case domain.ErrForbidden:
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "solo clientes pueden abrir chats"})
		case domain.ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "empresa no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar mis chats
// @Tags         chats
// @Produce      json
// @Param        limit   query  int  false  "máx. resultados"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {object}  dto.ChatListResponse
// @Security     BearerAuth
// @Router       /api/chats [get]
func (h *ChatHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	out, err := h.uc.ListMyChats(GetPrincipal(c), page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener un chat con su transcripción
// @Tags         chats
// @Produce      json
// @Param        id  path  string  true  "ID del chat"
// @Success      200  {object}  dto.ChatResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/chats/{id} [get]
func (h *ChatHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.GetChat(GetPrincipal(c), c.Params("id"))
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "chat no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
	return c.JSON(out)
}

// SendMessage godoc
// @Summary      Enviar un mensaje y obtener la respuesta del asistente
// @Tags         chats
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del chat"
// @Param        body  body  dto.SendMessageRequest  true  "message"
// @Success      200  {object}  dto.SendMessageResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/chats/{id}/messages [post]
func (h *ChatHandler) SendMessage(c *fiber.Ctx) error {
	var in dto.SendMessageRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if strings.TrimSpace(in.Message) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "message no puede estar vacío"})
	}
	out, err := h.uc.SendMessage(c.Context(), GetPrincipal(c), c.Params("id"), in)
	if err != nil {
		switch err {
		case domain.ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "chat no encontrado"})
		case domain.ErrForbidden:
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "solo el dueño del chat puede escribir"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
	return c.JSON(out)
}

// Summary godoc
// @Summary      Resumen del chat (se genera si no existe)
// @Tags         chats
// @Produce      json
// @Param        id  path  string  true  "ID del chat"
// @Success      200  {object}  dto.SummaryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/chats/{id}/summary [post]
func (h *ChatHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.Summary(c.Context(), GetPrincipal(c), c.Params("id"))
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "chat no encontrado"})
		}
		// A diferencia del envío de mensajes, aquí no hay fallback: el caller
		// puede reintentar sin efectos secundarios.
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "LLM_ERROR", Message: "no se pudo generar el resumen"})
	}
	return c.JSON(out)
}

// ListCompanyChats godoc
// @Summary      Chats de la empresa (staff)
// @Tags         company
// @Produce      json
// @Param        limit   query  int  false  "máx. resultados"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {object}  dto.CompanyChatListResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/company/chats [get]
func (h *ChatHandler) ListCompanyChats(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	out, err := h.uc.ListCompanyChats(GetPrincipal(c), page)
	if err != nil {
		if err == domain.ErrForbidden {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
	return c.JSON(out)
}

// GetCompanyChat godoc
// @Summary      Ver un chat de la empresa con su transcripción (staff, solo lectura)
// @Tags         company
// @Produce      json
// @Param        id  path  string  true  "ID del chat"
// @Success      200  {object}  dto.CompanyChatResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/company/chats/{id} [get]
func (h *ChatHandler) GetCompanyChat(c *fiber.Ctx) error {
	out, err := h.uc.GetCompanyChat(GetPrincipal(c), c.Params("id"))
	if err != nil {
		switch err {
		case domain.ErrForbidden:
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado"})
		case domain.ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "chat no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
	return c.JSON(out)
}
