package entity

type CommandStatus string

const (
	CommandProcessing CommandStatus = "processing"
	CommandSuccess    CommandStatus = "success"
	CommandError      CommandStatus = "error"
)

type CommandResult struct {
	FieldUpdates map[string]string `json:"fieldUpdates,omitempty"`
	Confirmation string            `json:"confirmation,omitempty"`
}

// VoiceCommand is one history entry. Timestamp is unique and monotonic within
// a session and doubles as the mutation key once the interpreter resolves.
type VoiceCommand struct {
	Command   string         `json:"command"`
	Timestamp string         `json:"timestamp"`
	Status    CommandStatus  `json:"status"`
	Result    *CommandResult `json:"result,omitempty"`
	Error     string         `json:"error,omitempty"`
}
