package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/SoporteChat-api/internal/application/auth"
	"github.com/jhoicas/SoporteChat-api/internal/application/chat"
	"github.com/jhoicas/SoporteChat-api/internal/application/team"
	"github.com/jhoicas/SoporteChat-api/internal/application/usecase"
	"github.com/jhoicas/SoporteChat-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	CompanyUC *usecase.CompanyUseCase
	ChatUC    *chat.ChatUseCase
	TeamUC    *team.TeamUseCase
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Companies (público: directorio y perfil por slug)
	companies := api.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Get("/", companyHandler.List)
	companies.Get("/:slug", companyHandler.GetBySlug)

	// Invitaciones por token (público: quien acepta aún no tiene cuenta)
	teamHandler := NewTeamHandler(deps.TeamUC)
	api.Get("/team/invitations/verify", teamHandler.Verify)
	api.Post("/team/invitations/accept", teamHandler.Accept)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Chats del cliente (protegido; el guard de escritura vive en el caso de uso)
	chats := protected.Group("/chats")
	chatHandler := NewChatHandler(deps.ChatUC)
	chats.Post("/", chatHandler.Create)
	chats.Get("/", chatHandler.List)
	chats.Get("/:id", chatHandler.Get)
	chats.Post("/:id/messages", chatHandler.SendMessage)
	chats.Post("/:id/summary", chatHandler.Summary)

	// Panel de la empresa (protegido, solo staff)
	company := protected.Group("/company", RequireRole(entity.RoleCompanyAdmin, entity.RoleCompanyMember))
	company.Get("/data", companyHandler.GetData)
	company.Get("/chats", chatHandler.ListCompanyChats)
	company.Get("/chats/:id", chatHandler.GetCompanyChat)

	// Documento de conocimiento: solo el admin escribe
	companyAdmin := protected.Group("/company", RequireRole(entity.RoleCompanyAdmin))
	companyAdmin.Put("/data", companyHandler.UpsertData)

	// Gestión de equipo (protegido, solo admin)
	teamGroup := protected.Group("/team", RequireRole(entity.RoleCompanyAdmin))
	teamGroup.Get("/members", teamHandler.ListMembers)
	teamGroup.Post("/invitations", teamHandler.Invite)
	teamGroup.Get("/invitations", teamHandler.ListInvitations)
	teamGroup.Delete("/invitations/:id", teamHandler.DeleteInvitation)
}
