package transferService

import (
	"context"

	"VoiceTransfer/internal/api/transfer"
	"VoiceTransfer/internal/entity"
	"VoiceTransfer/pkg/nlp"

	"github.com/sirupsen/logrus"
)

// processConfirmationTurn consumes one transcript while a confirmation is
// pending. The pending action runs at most once: it is detached from the
// session before either callback is invoked.
func (s *transferService) processConfirmationTurn(ctx context.Context, state *sessionState, command string) (*transfer.ProcessResult, error) {
	timestamp := s.appendProcessing(state, command)

	decision := nlp.MatchConfirmation(command)

	state.mu.Lock()
	pending := state.session.Pending

	switch decision {
	case nlp.DecisionConfirm:
		state.session.Pending = nil
		state.mu.Unlock()

		text, err := pending.OnConfirm(ctx)
		result := &transfer.ProcessResult{Confirmation: text, Intent: "confirm"}
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"session_id": state.session.ID,
				"error":      err.Error(),
			}).Error("Confirmed action failed")
			result.Error = transfer.CodeProcessingError
			s.resolveHistory(state, timestamp, entity.CommandError, nil, result.Error)
			s.speakResult(ctx, state, result)
			return result, transfer.ErrProcessingFailed
		}

		s.resolveHistory(state, timestamp, entity.CommandSuccess, result, "")
		s.speakResult(ctx, state, result)
		return result, nil

	case nlp.DecisionCancel:
		state.session.Pending = nil
		state.mu.Unlock()

		text, err := pending.OnCancel(ctx)
		if err != nil {
			text = transfer.MsgCancelled
		}
		result := &transfer.ProcessResult{Confirmation: text, Intent: "cancel"}
		s.resolveHistory(state, timestamp, entity.CommandSuccess, result, "")
		s.speakResult(ctx, state, result)
		return result, nil

	default:
		pending.Attempts++
		if pending.Attempts >= s.config.MaxConfirmationAttempts {
			state.session.Pending = nil
			state.mu.Unlock()

			result := &transfer.ProcessResult{Confirmation: transfer.MsgGaveUp, Intent: "cancel"}
			s.resolveHistory(state, timestamp, entity.CommandSuccess, result, "")
			s.speakResult(ctx, state, result)
			return result, nil
		}
		state.mu.Unlock()

		result := &transfer.ProcessResult{
			Confirmation:         transfer.MsgRetryPrompt,
			RequiresConfirmation: true,
			Intent:               "confirm_retry",
		}
		s.resolveHistory(state, timestamp, entity.CommandSuccess, result, "")
		s.speakResult(ctx, state, result)
		return result, nil
	}
}

func (s *transferService) setPending(state *sessionState, prompt string, onConfirm, onCancel func(ctx context.Context) (string, error)) {
	state.mu.Lock()
	defer state.mu.Unlock()

	state.session.Pending = &entity.PendingConfirmation{
		Prompt:    prompt,
		OnConfirm: onConfirm,
		OnCancel:  onCancel,
	}
}
