package interpreter

import (
	"os"
	"strings"
)

// New selects the backing provider from the AI_PROVIDER environment variable.
// Gemini when asked for, OpenAI otherwise.
func New() (IInterpreter, error) {
	provider := strings.ToLower(os.Getenv("AI_PROVIDER"))

	if provider == "gemini" {
		return NewGeminiInterpreter()
	}
	return NewOpenAIInterpreter(), nil
}
