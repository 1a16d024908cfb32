package chat

import (
	"context"

	"github.com/jhoicas/SoporteChat-api/internal/domain/entity"
)

// summaryThreshold mensajes totales (usuario + asistente) a partir de los
// cuales se dispara la generación automática del resumen.
const summaryThreshold = 5

// maybeTriggerSummary dispara el resumen en segundo plano cuando el chat cruza
// el umbral y aún no tiene resumen. Fire-and-forget: la respuesta al cliente
// no espera la summarización; un fallo se registra y se descarta.
//
// Dos mensajes rápidos pueden cruzar el umbral a la vez y llamar al proveedor
// dos veces; la última escritura gana. Carrera benigna: el resumen es texto
// consultivo, no un campo crítico de consistencia.
func (uc *ChatUseCase) maybeTriggerSummary(chat *entity.Chat) {
	if chat.Summary != nil {
		return
	}
	count, err := uc.messageRepo.CountByChat(chat.ID)
	if err != nil {
		uc.log.Error().Err(err).Str("chat_id", chat.ID).Msg("conteo de mensajes para resumen")
		return
	}
	if count < summaryThreshold {
		return
	}
	go uc.generateSummary(chat.ID)
}

// generateSummary corre desatada del request: contexto propio con timeout,
// relee el chat (otro disparo pudo ganar la carrera) y escribe el resumen.
// El resumen refleja la foto de la conversación al momento del disparo;
// mensajes que lleguen durante la generación no se incluyen ni re-resumen.
func (uc *ChatUseCase) generateSummary(chatID string) {
	ctx, cancel := context.WithTimeout(context.Background(), llmTimeout)
	defer cancel()

	chat, err := uc.chatRepo.GetByID(chatID)
	if err != nil {
		uc.log.Error().Err(err).Str("chat_id", chatID).Msg("releer chat para resumen")
		return
	}
	if chat == nil || chat.Summary != nil {
		return
	}

	messages, err := uc.messageRepo.ListByChat(chatID)
	if err != nil {
		uc.log.Error().Err(err).Str("chat_id", chatID).Msg("leer mensajes para resumen")
		return
	}
	if len(messages) == 0 {
		return
	}

	summary, err := uc.llm.GenerateText(ctx, BuildSummaryPrompt(messages), summaryGenConfig)
	if err != nil {
		uc.log.Error().Err(err).Str("chat_id", chatID).Msg("generación de resumen fallida")
		return
	}
	if err := uc.chatRepo.SetSummary(chatID, summary); err != nil {
		uc.log.Error().Err(err).Str("chat_id", chatID).Msg("guardar resumen")
	}
}
