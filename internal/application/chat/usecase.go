package chat

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/SoporteChat-api/internal/application/access"
	"github.com/jhoicas/SoporteChat-api/internal/application/dto"
	"github.com/jhoicas/SoporteChat-api/internal/application/ports"
	"github.com/jhoicas/SoporteChat-api/internal/domain"
	"github.com/jhoicas/SoporteChat-api/internal/domain/entity"
	"github.com/jhoicas/SoporteChat-api/internal/domain/repository"
	"github.com/jhoicas/SoporteChat-api/pkg/logger"
)

// Parámetros de generación del pipeline de conversación (mismos del producto original).
var (
	replyGenConfig   = ports.GenerationConfig{Temperature: 0.7, MaxOutputTokens: 1000}
	summaryGenConfig = ports.GenerationConfig{Temperature: 0.7, MaxOutputTokens: 200}
)

// llmTimeout tope por llamada al proveedor; las llamadas a LLMs pueden demorar varios segundos.
const llmTimeout = 30 * time.Second

// ChatUseCase orquesta el pipeline de conversación: persistencia de mensajes,
// construcción de contexto desde el documento de conocimiento, llamada al LLM
// y disparo del resumen en segundo plano.
type ChatUseCase struct {
	chatRepo    repository.ChatRepository
	messageRepo repository.MessageRepository
	dataRepo    repository.CompanyDataRepository
	companyRepo repository.CompanyRepository
	userRepo    repository.UserRepository
	llm         ports.LLMService
	log         *logger.Logger
}

// NewChatUseCase construye el caso de uso inyectando puertos de persistencia y LLM.
// El cliente LLM se construye una sola vez al arrancar el proceso; aquí solo se recibe.
func NewChatUseCase(
	chatRepo repository.ChatRepository,
	messageRepo repository.MessageRepository,
	dataRepo repository.CompanyDataRepository,
	companyRepo repository.CompanyRepository,
	userRepo repository.UserRepository,
	llm ports.LLMService,
	log *logger.Logger,
) *ChatUseCase {
	return &ChatUseCase{
		chatRepo:    chatRepo,
		messageRepo: messageRepo,
		dataRepo:    dataRepo,
		companyRepo: companyRepo,
		userRepo:    userRepo,
		llm:         llm,
		log:         log,
	}
}

// CreateChat abre un chat de un cliente con una empresa (por slug).
// Devuelve domain.ErrForbidden si el caller no es cliente y domain.ErrNotFound
// si la empresa no existe.
func (uc *ChatUseCase) CreateChat(p access.Principal, in dto.CreateChatRequest) (*dto.CreateChatResponse, error) {
	if !access.CanCreateChat(p) {
		return nil, domain.ErrForbidden
	}
	company, err := uc.companyRepo.GetBySlug(in.CompanySlug)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	chat := &entity.Chat{
		ID:        uuid.New().String(),
		UserID:    p.UserID,
		CompanyID: company.ID,
		Title:     "Chat with " + company.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.chatRepo.Create(chat); err != nil {
		return nil, err
	}
	return &dto.CreateChatResponse{ChatID: chat.ID, CompanySlug: company.Slug}, nil
}

// ListMyChats devuelve los chats del cliente, el más reciente primero.
func (uc *ChatUseCase) ListMyChats(p access.Principal, page dto.PageRequest) (*dto.ChatListResponse, error) {
	page.DefaultPage()
	chats, err := uc.chatRepo.ListByUser(p.UserID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ChatResponse, 0, len(chats))
	for _, c := range chats {
		items = append(items, *toChatResponse(c, nil))
	}
	return &dto.ChatListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}, nil
}

// GetChat devuelve un chat con sus mensajes en orden cronológico.
// Un chat fuera del alcance del caller responde NotFound, nunca Forbidden:
// no se filtra la existencia de recursos de otros tenants.
func (uc *ChatUseCase) GetChat(p access.Principal, chatID string) (*dto.ChatResponse, error) {
	chat, err := uc.loadReadable(p, chatID)
	if err != nil {
		return nil, err
	}
	messages, err := uc.messageRepo.ListByChat(chat.ID)
	if err != nil {
		return nil, err
	}
	return toChatResponse(chat, messages), nil
}

// SendMessage es el pipeline central:
// guard → persistir mensaje del usuario → armar contexto → LLM → persistir
// respuesta → bump de updated_at → disparo condicional del resumen.
// El mensaje del usuario se guarda ANTES de llamar al proveedor: un fallo del
// LLM nunca pierde lo que el cliente escribió; el turno del asistente pasa a
// ser la respuesta fija de disculpa.
func (uc *ChatUseCase) SendMessage(ctx context.Context, p access.Principal, chatID string, in dto.SendMessageRequest) (*dto.SendMessageResponse, error) {
	chat, err := uc.loadReadable(p, chatID)
	if err != nil {
		return nil, err
	}
	if !access.CanWriteChat(p, chat) {
		// El staff puede leer el chat pero no escribir en él
		return nil, domain.ErrForbidden
	}

	// Historia previa (turnos anteriores al mensaje entrante)
	history, err := uc.messageRepo.ListByChat(chat.ID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	userMsg := &entity.Message{
		ID:        uuid.New().String(),
		ChatID:    chat.ID,
		Role:      entity.MessageRoleUser,
		Content:   in.Message,
		CreatedAt: now,
	}
	if err := uc.messageRepo.Create(userMsg); err != nil {
		return nil, err
	}

	data, err := uc.dataRepo.GetByCompanyID(chat.CompanyID)
	if err != nil {
		return nil, err
	}

	prompt := BuildChatPrompt(data, history, in.Message)

	llmCtx, cancel := context.WithTimeout(ctx, llmTimeout)
	defer cancel()

	response, err := uc.llm.GenerateText(llmCtx, prompt, replyGenConfig)
	if err != nil {
		// Un solo intento, sin retry: el error se registra y el usuario ve la
		// respuesta fija; su propio mensaje ya quedó persistido.
		uc.log.Error().Err(err).Str("chat_id", chat.ID).Msg("generación LLM fallida")
		response = FallbackResponse
	}

	assistantMsg := &entity.Message{
		ID:        uuid.New().String(),
		ChatID:    chat.ID,
		Role:      entity.MessageRoleAssistant,
		Content:   response,
		CreatedAt: time.Now(),
	}
	if err := uc.messageRepo.Create(assistantMsg); err != nil {
		return nil, err
	}
	if err := uc.chatRepo.Touch(chat.ID); err != nil {
		return nil, err
	}

	uc.maybeTriggerSummary(chat)

	return &dto.SendMessageResponse{
		ChatID:    chat.ID,
		MessageID: assistantMsg.ID,
		Response:  response,
	}, nil
}

// Summary devuelve el resumen del chat, generándolo si aún no existe.
// Idempotente: si el resumen ya está escrito se devuelve sin llamar al proveedor.
func (uc *ChatUseCase) Summary(ctx context.Context, p access.Principal, chatID string) (*dto.SummaryResponse, error) {
	chat, err := uc.loadReadable(p, chatID)
	if err != nil {
		return nil, err
	}
	if chat.Summary != nil {
		return &dto.SummaryResponse{Summary: *chat.Summary}, nil
	}

	messages, err := uc.messageRepo.ListByChat(chat.ID)
	if err != nil {
		return nil, err
	}

	llmCtx, cancel := context.WithTimeout(ctx, llmTimeout)
	defer cancel()

	summary, err := uc.llm.GenerateText(llmCtx, BuildSummaryPrompt(messages), summaryGenConfig)
	if err != nil {
		return nil, err
	}
	if err := uc.chatRepo.SetSummary(chat.ID, summary); err != nil {
		return nil, err
	}
	return &dto.SummaryResponse{Summary: summary}, nil
}

// ListCompanyChats vista del staff: chats de la empresa, el más reciente
// primero, con datos del cliente, primer mensaje y total de mensajes.
func (uc *ChatUseCase) ListCompanyChats(p access.Principal, page dto.PageRequest) (*dto.CompanyChatListResponse, error) {
	if !p.IsStaff() {
		return nil, domain.ErrForbidden
	}
	page.DefaultPage()
	chats, err := uc.chatRepo.ListByCompany(p.CompanyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CompanyChatResponse, 0, len(chats))
	for _, c := range chats {
		view, err := uc.companyChatView(c, false)
		if err != nil {
			return nil, err
		}
		items = append(items, *view)
	}
	return &dto.CompanyChatListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}, nil
}

// GetCompanyChat vista de solo lectura de un chat para el staff, con la
// transcripción completa.
func (uc *ChatUseCase) GetCompanyChat(p access.Principal, chatID string) (*dto.CompanyChatResponse, error) {
	if !p.IsStaff() {
		return nil, domain.ErrForbidden
	}
	chat, err := uc.chatRepo.GetByID(chatID)
	if err != nil {
		return nil, err
	}
	if chat == nil || !access.CanReadChat(p, chat) {
		return nil, domain.ErrNotFound
	}
	return uc.companyChatView(chat, true)
}

// loadReadable carga el chat y aplica el guard de lectura.
// Chat inexistente y chat de otro tenant responden lo mismo: NotFound.
func (uc *ChatUseCase) loadReadable(p access.Principal, chatID string) (*entity.Chat, error) {
	chat, err := uc.chatRepo.GetByID(chatID)
	if err != nil {
		return nil, err
	}
	if chat == nil || !access.CanReadChat(p, chat) {
		return nil, domain.ErrNotFound
	}
	return chat, nil
}

func (uc *ChatUseCase) companyChatView(chat *entity.Chat, withMessages bool) (*dto.CompanyChatResponse, error) {
	customer, err := uc.userRepo.GetByID(chat.UserID)
	if err != nil {
		return nil, err
	}
	messages, err := uc.messageRepo.ListByChat(chat.ID)
	if err != nil {
		return nil, err
	}

	view := &dto.CompanyChatResponse{MessageCount: len(messages)}
	if customer != nil {
		view.CustomerName = customer.Name
		view.CustomerEmail = customer.Email
	}
	if len(messages) > 0 {
		view.FirstMessage = messages[0].Content
	}
	if withMessages {
		view.ChatResponse = *toChatResponse(chat, messages)
	} else {
		view.ChatResponse = *toChatResponse(chat, nil)
	}
	return view, nil
}

func toChatResponse(c *entity.Chat, messages []*entity.Message) *dto.ChatResponse {
	resp := &dto.ChatResponse{
		ID:        c.ID,
		UserID:    c.UserID,
		CompanyID: c.CompanyID,
		Title:     c.Title,
		Summary:   c.Summary,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	for _, m := range messages {
		resp.Messages = append(resp.Messages, dto.ChatMessageResponse{
			ID:        m.ID,
			Role:      m.Role,
			Content:   m.Content,
			CreatedAt: m.CreatedAt,
		})
	}
	return resp
}
