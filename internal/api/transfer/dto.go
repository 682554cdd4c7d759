package transfer

import (
	"VoiceTransfer/internal/entity"
)

type ProcessCommandRequest struct {
	Command      string            `json:"command" validate:"max=500"`
	CurrentState map[string]string `json:"currentState,omitempty"`
	SessionID    string            `json:"sessionId,omitempty"`

	// ClientID keys the fixed-window rate limit; the handler fills it from
	// the connection, it is never taken from the body.
	ClientID string `json:"-"`
}

// ProcessResult is the contract between the interpreter layer and the
// command processor, and the wire shape of POST /commands.
type ProcessResult struct {
	FieldUpdates         map[string]string `json:"fieldUpdates,omitempty"`
	Confirmation         string            `json:"confirmation,omitempty"`
	Intent               string            `json:"intent,omitempty"`
	RequiresConfirmation bool              `json:"requiresConfirmation,omitempty"`
	Error                string            `json:"error,omitempty"`
	AudioURL             string            `json:"audioUrl,omitempty"`
}

type SubmitTransferRequest struct {
	entity.TransferFormData
}

type SubmitTransferResponse struct {
	Success   bool   `json:"success"`
	Reference string `json:"reference"`
	Timestamp string `json:"timestamp"`
}

type HistoryResponse struct {
	SessionID string                `json:"session_id"`
	Commands  []entity.VoiceCommand `json:"commands"`
}

// Error codes carried in ProcessResult.Error.
const (
	CodeEmptyCommand    = "empty_command"
	CodeRateLimit       = "rate_limit"
	CodeNetworkError    = "network_error"
	CodeParseError      = "parse_error"
	CodeValidationError = "validation_error"
	CodeNotFound        = "not_found"
	CodeProcessingError = "processing_error"
)

// Spoken feedback fixed lines.
const (
	MsgEmptyCommand  = "I didn't hear anything. Please try again."
	MsgRateLimited   = "I'm getting too many requests. Please wait a moment and try again."
	MsgNetworkError  = "I'm having trouble connecting to the service. Please check your internet connection."
	MsgProcessing    = "I'm having technical difficulties. Please try again later."
	MsgApology       = "Sorry, I couldn't process that. Please try again."
	MsgUnknownIntent = "I didn't understand that. Please try again or say 'help'."
	MsgHelp          = `Try: "Transfer 5000 NGN to John Doe", "Account 12345678", or "Submit"`
	MsgSubmitPrompt  = `Confirm transfer? Say "confirm" to proceed.`
	MsgResetPrompt   = `This will clear all form data. Say "confirm" to reset.`
	MsgRetryPrompt   = "I didn't catch that. Please say 'confirm' to proceed or 'cancel' to stop."
	MsgCancelled     = "Transfer cancelled. No action has been taken."
	MsgResetDone     = "The form has been cleared."
	MsgFieldInvalid  = "That account number doesn't look right. Please repeat it."
	MsgFieldUnknown  = "I couldn't tell which field you meant. Please try again."
	MsgGaveUp        = "I still didn't catch that. Cancelling the pending action."
	MsgFormInvalid   = "Please fix the errors in the form before submitting."
)
