// Package session remembers who is signed in for the lifetime of the process.
// Nothing is persisted.
package session

import (
	"context"
	"fmt"
	"sync"

	"sigma_app/internal/auth"
	"sigma_app/internal/auth/transport"
	"sigma_app/internal/chat"
	"sigma_app/platform/events"
)

// Store holds the current session and the questions asked during it.
type Store struct {
	mu        sync.RWMutex
	current   *transport.SessionInfo
	questions int
}

func NewStore() *Store {
	return &Store{}
}

// Current returns a copy of the signed-in session, if any.
func (s *Store) Current() (transport.SessionInfo, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return transport.SessionInfo{}, false
	}
	return *s.current, true
}

// Set replaces the current session.
func (s *Store) Set(info transport.SessionInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = &info
}

// Clear signs out and resets the question count.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
	s.questions = 0
}

// Questions returns how many chat messages were sent since the last Clear.
func (s *Store) Questions() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.questions
}

// Handler records the session carried by auth.LoginSucceeded events.
func (s *Store) Handler() events.Handler {
	return events.HandlerFunc(func(ctx context.Context, event events.Event) error {
		e, ok := event.(auth.LoginSucceeded)
		if !ok {
			return fmt.Errorf("session: unexpected event %s", event.EventName())
		}
		s.Set(e.Session)
		return nil
	})
}

// QuestionHandler counts chat.MessageSent events.
func (s *Store) QuestionHandler() events.Handler {
	return events.HandlerFunc(func(ctx context.Context, event events.Event) error {
		if _, ok := event.(chat.MessageSent); !ok {
			return fmt.Errorf("session: unexpected event %s", event.EventName())
		}
		s.mu.Lock()
		s.questions++
		s.mu.Unlock()
		return nil
	})
}

// Subscribe registers the store on bus.
func (s *Store) Subscribe(bus events.Bus) {
	bus.Subscribe(auth.EventLoginSucceeded, s.Handler())
	bus.Subscribe(chat.EventMessageSent, s.QuestionHandler())
}
