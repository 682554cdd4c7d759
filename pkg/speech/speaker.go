package speech

import (
	"context"
	"strings"
	"sync"
	"time"

	"VoiceTransfer/pkg/utils"
)

// ISpeaker produces one-shot spoken feedback. Starting a new utterance for a
// session cancels any in-flight generation for that session; Speak returns
// only once the utterance is fully generated so callers can sequence
// multi-field announcements.
type ISpeaker interface {
	Speak(ctx context.Context, sessionID string, text string) (string, error)
	Audio(audioID string) ([]byte, bool)
}

type pendingUtterance struct {
	cancel context.CancelFunc
}

type speaker struct {
	tts   ITTS
	utils utils.IUtils

	mu       sync.Mutex
	pending  map[string]*pendingUtterance
	audio    map[string][]byte
	order    []string
	maxAudio int
}

func NewSpeaker(tts ITTS) ISpeaker {
	return &speaker{
		tts:      tts,
		utils:    utils.New(),
		pending:  make(map[string]*pendingUtterance),
		audio:    make(map[string][]byte),
		maxAudio: 32,
	}
}

func (s *speaker) Speak(ctx context.Context, sessionID string, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}

	speakCtx, cancel := context.WithCancel(ctx)
	utterance := &pendingUtterance{cancel: cancel}

	s.mu.Lock()
	if prev, ok := s.pending[sessionID]; ok {
		prev.cancel()
	}
	s.pending[sessionID] = utterance
	s.mu.Unlock()

	data, err := s.tts.GenerateAudio(speakCtx, text)

	s.mu.Lock()
	// A newer utterance may have replaced this entry already.
	if s.pending[sessionID] == utterance {
		delete(s.pending, sessionID)
	}
	s.mu.Unlock()
	cancel()

	if err != nil {
		return "", err
	}

	audioID, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		return "", err
	}

	s.store(audioID, data)
	return audioID, nil
}

func (s *speaker) Audio(audioID string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.audio[audioID]
	return data, ok
}

func (s *speaker) store(audioID string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.audio[audioID] = data
	s.order = append(s.order, audioID)
	for len(s.order) > s.maxAudio {
		evicted := s.order[0]
		s.order = s.order[1:]
		delete(s.audio, evicted)
	}
}
