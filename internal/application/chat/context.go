package chat

import (
	"strings"

	"github.com/jhoicas/SoporteChat-api/internal/domain/entity"
)

// Preámbulo fijo del asistente de soporte. El resto del prompt se arma con el
// documento de conocimiento de la empresa y la conversación previa.
const systemPreamble = "You are a helpful support assistant for a company. Answer questions based on the company's information provided."

// summaryPreamble instrucción para el resumen (sin contexto de empresa: solo transcripción).
const summaryPreamble = "You are a helpful assistant that creates concise summaries of conversations. Create a brief summary (2-3 sentences) of the following conversation:"

// FallbackResponse respuesta fija cuando el proveedor LLM falla: el mensaje del
// usuario ya quedó persistido y el turno del asistente nunca queda ausente.
const FallbackResponse = "I'm sorry, I couldn't generate a response."

// roleLabel etiqueta del turno en el prompt: "User" / "Assistant".
func roleLabel(role string) string {
	if role == entity.MessageRoleAssistant {
		return "Assistant"
	}
	return "User"
}

// BuildChatPrompt arma el prompt completo para el LLM: preámbulo, campos del
// documento de conocimiento (solo los no vacíos, como bloques etiquetados con
// su JSON serializado), la conversación previa en orden cronológico y el nuevo
// mensaje del usuario bajo el cue final "User: ... / Assistant:".
//
// No hay truncado: la historia completa entra siempre, por lo que el prompt
// crece sin límite con la longitud de la conversación.
func BuildChatPrompt(data *entity.CompanyData, history []*entity.Message, newMessage string) string {
	parts := []string{systemPreamble}

	if data != nil {
		if data.HasFeatures() {
			parts = append(parts, "Company Features: "+string(data.Features))
		}
		if data.HasPricing() {
			parts = append(parts, "Pricing Information: "+string(data.Pricing))
		}
		if data.HasUsage() {
			parts = append(parts, "Usage Documentation: "+string(data.Usage))
		}
		if data.HasCommonIssues() {
			parts = append(parts, "Common Issues and Solutions: "+string(data.CommonIssues))
		}
	}

	var b strings.Builder
	b.WriteString(strings.Join(parts, "\n\n"))

	if len(history) > 0 {
		turns := make([]string, 0, len(history))
		for _, msg := range history {
			turns = append(turns, roleLabel(msg.Role)+": "+msg.Content)
		}
		b.WriteString("\n\nPrevious conversation:\n")
		b.WriteString(strings.Join(turns, "\n\n"))
	}

	b.WriteString("\n\nUser: ")
	b.WriteString(newMessage)
	b.WriteString("\n\nAssistant:")
	return b.String()
}

// BuildSummaryPrompt arma el prompt de resumen: solo la transcripción del chat
// con los roles tal como están almacenados, sin documento de conocimiento.
func BuildSummaryPrompt(messages []*entity.Message) string {
	turns := make([]string, 0, len(messages))
	for _, msg := range messages {
		turns = append(turns, msg.Role+": "+msg.Content)
	}
	return summaryPreamble + "\n\n" + strings.Join(turns, "\n\n")
}
