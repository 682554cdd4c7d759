package entity

import (
	"context"
	"time"
)

// HistoryCap bounds the per-session command log; the oldest entry is evicted
// first.
const HistoryCap = 10

// PendingConfirmation is the awaiting-confirmation arm of the confirmation
// state. A nil *PendingConfirmation on the session means no confirmation is
// pending; a new request overwrites the previous pair, last request wins.
type PendingConfirmation struct {
	Prompt    string
	Attempts  int
	OnConfirm func(ctx context.Context) (string, error)
	OnCancel  func(ctx context.Context) (string, error)
}

type VoiceSession struct {
	ID           string           `json:"id"`
	Form         TransferFormData `json:"form"`
	ActiveField  string           `json:"active_field,omitempty"`
	History      []VoiceCommand   `json:"history"`
	Pending      *PendingConfirmation
	LastCommand  time.Time
	CreatedAt    time.Time `json:"created_at"`
	LastActivity time.Time `json:"last_activity"`
}

// AppendHistory adds a new entry, evicting the oldest past HistoryCap.
func (s *VoiceSession) AppendHistory(cmd VoiceCommand) {
	s.History = append(s.History, cmd)
	if len(s.History) > HistoryCap {
		s.History = s.History[len(s.History)-HistoryCap:]
	}
}

// ResolveHistory mutates the entry with the matching timestamp key in place.
func (s *VoiceSession) ResolveHistory(timestamp string, status CommandStatus, result *CommandResult, errMsg string) {
	for i := range s.History {
		if s.History[i].Timestamp == timestamp {
			s.History[i].Status = status
			s.History[i].Result = result
			s.History[i].Error = errMsg
			return
		}
	}
}
