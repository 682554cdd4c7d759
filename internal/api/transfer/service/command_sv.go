package transferService

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"VoiceTransfer/internal/api/transfer"
	"VoiceTransfer/internal/entity"
	contextPkg "VoiceTransfer/pkg/context"
	"VoiceTransfer/pkg/interpreter"
	redisPkg "VoiceTransfer/pkg/redis"
	"VoiceTransfer/pkg/retry"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// fieldOrder fixes the sequence in which extracted updates are applied so
// field highlighting walks the form top to bottom.
var fieldOrder = []string{
	"recipientName",
	"recipientAccount",
	"bankName",
	"amount",
	"currency",
	"reference",
	"transferDate",
	"termsAccepted",
}

func (s *transferService) ProcessCommand(ctx context.Context, req transfer.ProcessCommandRequest) (*transfer.ProcessResult, error) {
	requestID := contextPkg.GetRequestID(ctx)

	command := strings.TrimSpace(req.Command)
	if command == "" {
		return &transfer.ProcessResult{
			Confirmation: transfer.MsgEmptyCommand,
			Error:        transfer.CodeEmptyCommand,
		}, transfer.ErrEmptyCommand
	}

	state := s.sessions.getOrCreate(req.SessionID)

	state.mu.Lock()
	now := time.Now()
	if state.processing || now.Sub(state.session.LastCommand) < s.config.Cooldown {
		state.mu.Unlock()
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"session_id": state.session.ID,
		}).Debug("Command dropped by cooldown")
		return &transfer.ProcessResult{}, nil
	}
	state.processing = true
	state.session.LastCommand = now
	state.session.LastActivity = now
	pending := state.session.Pending
	state.mu.Unlock()

	defer s.releaseAfterTrailing(state)

	if pending != nil {
		return s.processConfirmationTurn(ctx, state, command)
	}

	clientID := req.ClientID
	if clientID == "" {
		clientID = state.session.ID
	}
	count, err := s.store.ConsumeRateLimit(ctx, clientID, s.config.RateLimitWindow)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Rate limit store unavailable, letting request through")
	} else if count > s.config.RateLimitMax {
		return &transfer.ProcessResult{
			Confirmation: transfer.MsgRateLimited,
			Error:        transfer.CodeRateLimit,
		}, transfer.ErrRateLimited
	}

	if cached, cerr := s.store.GetCachedResult(ctx, req.SessionID, command); cerr == nil && cached != "" {
		var result transfer.ProcessResult
		if uerr := json.UnmarshalFromString(cached, &result); uerr == nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"session_id": state.session.ID,
			}).Debug("Serving command result from cache")

			timestamp := s.appendProcessing(state, command)
			s.replayCachedEffects(ctx, state, &result)
			s.resolveHistory(state, timestamp, entity.CommandSuccess, &result, "")
			s.speakResult(ctx, state, &result)
			return &result, nil
		}
	} else if cerr != nil && !errors.Is(cerr, redisPkg.Nil) {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      cerr.Error(),
		}).Warn("Cache read failed, recomputing")
	}

	timestamp := s.appendProcessing(state, command)

	result, procErr := s.executeIntent(ctx, state, req, command)
	if procErr != nil {
		s.resolveHistory(state, timestamp, entity.CommandError, nil, result.Error)
		s.speakResult(ctx, state, result)
		return result, procErr
	}

	if result.Error == "" {
		if payload, merr := json.MarshalToString(result); merr == nil {
			if serr := s.store.SetCachedResult(ctx, req.SessionID, command, payload, s.config.CacheTTL); serr != nil {
				s.log.WithFields(logrus.Fields{
					"request_id": requestID,
					"error":      serr.Error(),
				}).Warn("Failed to cache command result")
			}
		}
	}

	s.resolveHistory(state, timestamp, entity.CommandSuccess, result, "")
	s.speakResult(ctx, state, result)

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"session_id": state.session.ID,
		"intent":     result.Intent,
	}).Info("Processed voice command")

	return result, nil
}

// replayCachedEffects re-runs the session side effects a cached result stands
// for. The cache only short-circuits the interpreter call; form mutation and
// confirmation arming must happen on warm hits exactly as on cold ones.
func (s *transferService) replayCachedEffects(ctx context.Context, state *sessionState, result *transfer.ProcessResult) {
	switch result.Intent {
	case string(interpreter.IntentSetField):
		s.applyFieldUpdates(ctx, state, result.FieldUpdates)
	case string(interpreter.IntentFocusField):
		state.mu.Lock()
		for field := range result.FieldUpdates {
			state.session.ActiveField = field
		}
		state.mu.Unlock()
	case string(interpreter.IntentSubmitForm):
		s.raiseSubmitConfirmation(state)
	case string(interpreter.IntentResetForm):
		s.raiseResetConfirmation(state)
	}
}

func (s *transferService) executeIntent(ctx context.Context, state *sessionState, req transfer.ProcessCommandRequest, command string) (*transfer.ProcessResult, error) {
	var intent interpreter.Intent
	err := s.retryPolicy.Do(ctx, func(ctx context.Context) error {
		var cerr error
		intent, cerr = s.interpreter.ClassifyIntent(ctx, command)
		return cerr
	})
	if err != nil {
		return &transfer.ProcessResult{
			Confirmation: transfer.MsgNetworkError,
			Error:        transfer.CodeNetworkError,
		}, transfer.ErrUpstreamUnavailable
	}

	switch intent {
	case interpreter.IntentSetField:
		return s.handleSetField(ctx, state, command)
	case interpreter.IntentFocusField:
		return s.handleFocusField(ctx, state, req, command)
	case interpreter.IntentSubmitForm:
		return s.raiseSubmitConfirmation(state), nil
	case interpreter.IntentResetForm:
		return s.raiseResetConfirmation(state), nil
	case interpreter.IntentHelp:
		return &transfer.ProcessResult{Confirmation: transfer.MsgHelp, Intent: string(interpreter.IntentHelp)}, nil
	default:
		return &transfer.ProcessResult{Confirmation: transfer.MsgUnknownIntent, Intent: string(interpreter.IntentUnknown)}, nil
	}
}

func (s *transferService) handleSetField(ctx context.Context, state *sessionState, command string) (*transfer.ProcessResult, error) {
	var extraction *interpreter.Extraction
	err := s.retryPolicy.Do(ctx, func(ctx context.Context) error {
		var eerr error
		extraction, eerr = s.interpreter.ExtractFields(ctx, command)
		if errors.Is(eerr, interpreter.ErrInvalidAccount) {
			return retry.MarkTerminal(eerr)
		}
		return eerr
	})
	if err != nil {
		switch {
		case errors.Is(err, interpreter.ErrInvalidAccount):
			return &transfer.ProcessResult{
				Confirmation: transfer.MsgFieldInvalid,
				Error:        transfer.CodeValidationError,
			}, transfer.ErrFieldValidation
		case errors.Is(err, interpreter.ErrMalformedResponse):
			return &transfer.ProcessResult{
				Confirmation: transfer.MsgProcessing,
				Error:        transfer.CodeParseError,
			}, transfer.ErrParseFailure
		default:
			return &transfer.ProcessResult{
				Confirmation: transfer.MsgNetworkError,
				Error:        transfer.CodeNetworkError,
			}, transfer.ErrUpstreamUnavailable
		}
	}

	s.applyFieldUpdates(ctx, state, extraction.FieldUpdates)

	return &transfer.ProcessResult{
		FieldUpdates: extraction.FieldUpdates,
		Confirmation: extraction.Confirmation,
		Intent:       string(interpreter.IntentSetField),
	}, nil
}

// applyFieldUpdates writes each update in form order, moving the active field
// along and pacing between fields so highlighting is perceptible.
func (s *transferService) applyFieldUpdates(ctx context.Context, state *sessionState, updates map[string]string) {
	applied := 0
	for _, field := range fieldOrder {
		value, ok := updates[field]
		if !ok {
			continue
		}

		if applied > 0 {
			s.pace(ctx)
		}
		applied++

		state.mu.Lock()
		if !state.session.Form.SetField(field, value) {
			state.mu.Unlock()
			continue
		}
		state.session.ActiveField = field
		state.mu.Unlock()
	}
}

func (s *transferService) pace(ctx context.Context) {
	if s.config.FieldPacing <= 0 {
		return
	}
	timer := time.NewTimer(s.config.FieldPacing)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

func (s *transferService) handleFocusField(ctx context.Context, state *sessionState, req transfer.ProcessCommandRequest, command string) (*transfer.ProcessResult, error) {
	currentState := req.CurrentState
	if len(currentState) == 0 {
		currentState = s.formSnapshot(state)
	}

	var extraction *interpreter.Extraction
	err := s.retryPolicy.Do(ctx, func(ctx context.Context) error {
		var ferr error
		extraction, ferr = s.interpreter.FocusField(ctx, command, currentState)
		if errors.Is(ferr, interpreter.ErrUnknownField) {
			return retry.MarkTerminal(ferr)
		}
		return ferr
	})
	if err != nil {
		if errors.Is(err, interpreter.ErrUnknownField) {
			return &transfer.ProcessResult{
				Confirmation: transfer.MsgFieldUnknown,
				Error:        transfer.CodeNotFound,
			}, transfer.ErrFieldNotFound
		}
		return &transfer.ProcessResult{
			Confirmation: transfer.MsgNetworkError,
			Error:        transfer.CodeNetworkError,
		}, transfer.ErrUpstreamUnavailable
	}

	state.mu.Lock()
	for field := range extraction.FieldUpdates {
		state.session.ActiveField = field
	}
	state.mu.Unlock()

	return &transfer.ProcessResult{
		FieldUpdates: extraction.FieldUpdates,
		Confirmation: extraction.Confirmation,
		Intent:       string(interpreter.IntentFocusField),
	}, nil
}

func (s *transferService) formSnapshot(state *sessionState) map[string]string {
	state.mu.Lock()
	defer state.mu.Unlock()

	snapshot := make(map[string]string, len(fieldOrder))
	for _, field := range fieldOrder {
		if value, ok := state.session.Form.FieldValue(field); ok {
			snapshot[field] = value
		}
	}
	return snapshot
}

func (s *transferService) raiseSubmitConfirmation(state *sessionState) *transfer.ProcessResult {
	onConfirm := func(ctx context.Context) (string, error) {
		state.mu.Lock()
		form := state.session.Form
		state.mu.Unlock()

		resp, err := s.SubmitTransfer(ctx, form)
		if err != nil {
			switch {
			case errors.Is(err, transfer.ErrLargeTransfer):
				return "Large transfers require manual approval. Please contact support.", nil
			case errors.Is(err, transfer.ErrInvalidSubmission):
				return transfer.MsgFormInvalid, nil
			default:
				return transfer.MsgProcessing, err
			}
		}

		return fmt.Sprintf(
			"Transfer confirmed. Processing your transfer of %s %s to %s. Your reference is %s.",
			form.Amount, form.Currency, form.RecipientName, resp.Reference,
		), nil
	}

	onCancel := func(ctx context.Context) (string, error) {
		return transfer.MsgCancelled, nil
	}

	s.setPending(state, transfer.MsgSubmitPrompt, onConfirm, onCancel)

	return &transfer.ProcessResult{
		RequiresConfirmation: true,
		Confirmation:         transfer.MsgSubmitPrompt,
		Intent:               string(interpreter.IntentSubmitForm),
	}
}

func (s *transferService) raiseResetConfirmation(state *sessionState) *transfer.ProcessResult {
	onConfirm := func(ctx context.Context) (string, error) {
		state.mu.Lock()
		state.session.Form = entity.NewTransferForm()
		state.session.ActiveField = ""
		state.mu.Unlock()
		return transfer.MsgResetDone, nil
	}

	onCancel := func(ctx context.Context) (string, error) {
		return "Reset cancelled. Your form is unchanged.", nil
	}

	s.setPending(state, transfer.MsgResetPrompt, onConfirm, onCancel)

	return &transfer.ProcessResult{
		RequiresConfirmation: true,
		Confirmation:         transfer.MsgResetPrompt,
		Intent:               string(interpreter.IntentResetForm),
	}
}

func (s *transferService) appendProcessing(state *sessionState, command string) string {
	state.mu.Lock()
	defer state.mu.Unlock()

	timestamp := state.nextTimestamp()
	state.session.AppendHistory(entity.VoiceCommand{
		Command:   command,
		Timestamp: timestamp,
		Status:    entity.CommandProcessing,
	})
	return timestamp
}

func (s *transferService) resolveHistory(state *sessionState, timestamp string, status entity.CommandStatus, result *transfer.ProcessResult, errCode string) {
	state.mu.Lock()
	defer state.mu.Unlock()

	var cmdResult *entity.CommandResult
	if result != nil && status == entity.CommandSuccess {
		cmdResult = &entity.CommandResult{
			FieldUpdates: result.FieldUpdates,
			Confirmation: result.Confirmation,
		}
	}
	state.session.ResolveHistory(timestamp, status, cmdResult, errCode)
}

// speakResult voices the result's confirmation line and, when generation
// succeeds, attaches the audio URL. TTS failure never fails the command.
func (s *transferService) speakResult(ctx context.Context, state *sessionState, result *transfer.ProcessResult) {
	if result == nil || result.Confirmation == "" {
		return
	}

	audioID, err := s.speaker.Speak(ctx, state.session.ID, result.Confirmation)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"session_id": state.session.ID,
			"error":      err.Error(),
		}).Warn("Failed to generate spoken feedback, continuing without audio")
		return
	}
	if audioID != "" {
		result.AudioURL = "/api/v1/transfer/audio/" + audioID
	}
}

func (s *transferService) releaseAfterTrailing(state *sessionState) {
	release := func() {
		state.mu.Lock()
		state.processing = false
		state.mu.Unlock()
	}

	if s.config.TrailingRelease <= 0 {
		release()
		return
	}
	time.AfterFunc(s.config.TrailingRelease, release)
}
