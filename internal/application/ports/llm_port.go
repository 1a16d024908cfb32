package ports

import "context"

// GenerationConfig parámetros de generación para una llamada al LLM.
type GenerationConfig struct {
	Temperature     float32
	MaxOutputTokens int
}

// LLMService define el puerto de salida hacia el proveedor de generación de texto.
// Cualquier adaptador (Gemini, OpenAI, Ollama, mock) debe implementar esta interfaz.
// Siguiendo el principio de inversión de dependencias (DIP), la aplicación
// solo conoce este contrato, no la implementación concreta.
type LLMService interface {
	// GenerateText envía el prompt al proveedor y devuelve el texto generado.
	// Una sola llamada, sin reintentos ni backoff: los errores se propagan al caller.
	// El contexto debe llevar un timeout para evitar bloqueos en llamadas externas.
	GenerateText(ctx context.Context, prompt string, cfg GenerationConfig) (string, error)
}
