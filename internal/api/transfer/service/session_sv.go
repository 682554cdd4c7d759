package transferService

import (
	"context"
	"strconv"
	"sync"
	"time"

	"VoiceTransfer/internal/api/transfer"
	"VoiceTransfer/internal/entity"
	contextPkg "VoiceTransfer/pkg/context"

	"github.com/sirupsen/logrus"
)

// sessionState wraps a VoiceSession with the serialization machinery: the
// processing flag keeps one command in flight per session and the timestamp
// counter keeps history keys unique and monotonic.
type sessionState struct {
	mu            sync.Mutex
	session       entity.VoiceSession
	processing    bool
	lastTimestamp int64
}

// sessionIdleTTL bounds how long an inactive session keeps its form and
// history before the registry drops it.
const sessionIdleTTL = 30 * time.Minute

type sessionRegistry struct {
	mu       sync.Mutex
	sessions map[string]*sessionState
}

func newSessionRegistry() *sessionRegistry {
	return &sessionRegistry{
		sessions: make(map[string]*sessionState),
	}
}

// pruneLocked drops sessions idle past the TTL. Callers hold r.mu.
func (r *sessionRegistry) pruneLocked(now time.Time) {
	for id, state := range r.sessions {
		state.mu.Lock()
		idle := !state.processing && now.Sub(state.session.LastActivity) > sessionIdleTTL
		state.mu.Unlock()
		if idle {
			delete(r.sessions, id)
		}
	}
}

func (r *sessionRegistry) getOrCreate(sessionID string) *sessionState {
	if sessionID == "" {
		sessionID = "anon"
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.pruneLocked(time.Now())

	state, ok := r.sessions[sessionID]
	if !ok {
		now := time.Now()
		state = &sessionState{
			session: entity.VoiceSession{
				ID:           sessionID,
				Form:         entity.NewTransferForm(),
				CreatedAt:    now,
				LastActivity: now,
			},
		}
		r.sessions[sessionID] = state
	}
	return state
}

func (r *sessionRegistry) get(sessionID string) (*sessionState, bool) {
	if sessionID == "" {
		sessionID = "anon"
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	state, ok := r.sessions[sessionID]
	return state, ok
}

// nextTimestamp returns a millisecond timestamp key, bumped past the previous
// one when two commands land in the same millisecond.
func (st *sessionState) nextTimestamp() string {
	ms := time.Now().UnixMilli()
	if ms <= st.lastTimestamp {
		ms = st.lastTimestamp + 1
	}
	st.lastTimestamp = ms
	return strconv.FormatInt(ms, 10)
}

func (s *transferService) GetHistory(ctx context.Context, sessionID string) (*transfer.HistoryResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	state, ok := s.sessions.get(sessionID)
	if !ok {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"session_id": sessionID,
		}).Warn("History requested for unknown session")
		return nil, transfer.ErrSessionNotFound
	}

	state.mu.Lock()
	defer state.mu.Unlock()

	commands := make([]entity.VoiceCommand, len(state.session.History))
	copy(commands, state.session.History)

	return &transfer.HistoryResponse{
		SessionID: state.session.ID,
		Commands:  commands,
	}, nil
}

func (s *transferService) GetAudio(ctx context.Context, audioID string) ([]byte, error) {
	data, ok := s.speaker.Audio(audioID)
	if !ok {
		return nil, transfer.ErrAudioNotFound
	}
	return data, nil
}
