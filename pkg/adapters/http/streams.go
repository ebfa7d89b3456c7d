package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/aretw0/goap/pkg/domain"
)

// StreamManager handles active SSE connections, grouped by topic.
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan<- string]struct{} // Topic -> Set of Channels
	logger      *slog.Logger
}

func NewStreamManager() *StreamManager {
	return &StreamManager{
		subscribers: make(map[string]map[chan<- string]struct{}),
		logger:      slog.Default(),
	}
}

func (sm *StreamManager) Subscribe(topic string) (chan string, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan string, 64)
	if _, ok := sm.subscribers[topic]; !ok {
		sm.subscribers[topic] = make(map[chan<- string]struct{})
	}
	sm.subscribers[topic][ch] = struct{}{}

	return ch, func() {
		sm.mu.Lock()
		defer sm.mu.Unlock()
		if subs, ok := sm.subscribers[topic]; ok {
			delete(subs, ch)
			close(ch)
			if len(subs) == 0 {
				delete(sm.subscribers, topic)
			}
		}
	}
}

// HasSubscribers reports whether anyone listens on topic.
func (sm *StreamManager) HasSubscribers(topic string) bool {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.subscribers[topic]) > 0
}

func (sm *StreamManager) Broadcast(topic string, msg string) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	for ch := range sm.subscribers[topic] {
		select {
		case ch <- msg:
		default:
			// Drop message if channel is full (slow client)
			sm.logger.Warn("SSE: Client buffer full, dropping message", "topic", topic)
		}
	}
}

// Hooks returns lifecycle hooks that publish step events on TopicSteps and
// run outcomes on TopicRuns. Events are only encoded when someone listens.
func (sm *StreamManager) Hooks() domain.LifecycleHooks {
	publish := func(topic string, v any) {
		if !sm.HasSubscribers(topic) {
			return
		}
		if bytes, err := json.Marshal(v); err == nil {
			sm.Broadcast(topic, string(bytes))
		}
	}
	return domain.LifecycleHooks{
		OnStep: func(ctx context.Context, e *domain.StepEvent) {
			publish(TopicSteps, e)
		},
		OnSolved: func(ctx context.Context, e *domain.SolvedEvent) {
			publish(TopicRuns, e)
		},
		OnFailed: func(ctx context.Context, e *domain.FailedEvent) {
			publish(TopicRuns, struct {
				*domain.FailedEvent
				Error string `json:"error"`
			}{e, e.Err.Error()})
		},
	}
}
