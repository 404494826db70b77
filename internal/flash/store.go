// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package flash holds user-visible notifications grouped by topic, such as
// "server:network" for the network page or "schedule:edit" for the schedule
// form. Screens render the messages of their own topic.
package flash

import (
	"sync"

	"github.com/MKhiriev/go-panel-client/internal/adapter"
	"github.com/MKhiriev/go-panel-client/internal/logger"
	"github.com/MKhiriev/go-panel-client/models"
)

// Store coordinates concurrent posts to the notification topics.
type Store struct {
	mu       sync.RWMutex
	messages map[string][]models.FlashMessage
	changes  chan struct{}

	logger *logger.Logger
}

func New(log *logger.Logger) *Store {
	return &Store{
		messages: make(map[string][]models.FlashMessage),
		changes:  make(chan struct{}, 1),
		logger:   log.WithComponent("flash"),
	}
}

// Messages returns a copy of the messages posted under topic, oldest first.
func (s *Store) Messages(topic string) []models.FlashMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()

	msgs := s.messages[topic]
	if len(msgs) == 0 {
		return nil
	}
	dup := make([]models.FlashMessage, len(msgs))
	copy(dup, msgs)
	return dup
}

// Add posts msg under msg.Key.
func (s *Store) Add(msg models.FlashMessage) {
	s.mu.Lock()
	s.messages[msg.Key] = append(s.messages[msg.Key], msg)
	s.mu.Unlock()

	s.notify()
}

// AddError posts an error message under topic.
func (s *Store) AddError(topic, message string) {
	s.Add(models.FlashMessage{Key: topic, Type: models.FlashError, Title: "Error", Message: message})
}

// ClearAndAddError replaces the messages of topic with the human readable
// form of err.
func (s *Store) ClearAndAddError(topic string, err error) {
	if err == nil {
		return
	}
	s.logger.Debug().Err(err).Str("topic", topic).Msg("posting error")

	msg := models.FlashMessage{Key: topic, Type: models.FlashError, Title: "Error", Message: adapter.HumanMessage(err)}

	s.mu.Lock()
	s.messages[topic] = []models.FlashMessage{msg}
	s.mu.Unlock()

	s.notify()
}

// Clear removes every message of topic.
func (s *Store) Clear(topic string) {
	s.mu.Lock()
	_, had := s.messages[topic]
	delete(s.messages, topic)
	s.mu.Unlock()

	if had {
		s.notify()
	}
}

// ClearAll removes every message of every topic.
func (s *Store) ClearAll() {
	s.mu.Lock()
	had := len(s.messages) > 0
	s.messages = make(map[string][]models.FlashMessage)
	s.mu.Unlock()

	if had {
		s.notify()
	}
}

// Changes signals after any modification. Signals are coalesced: a reader
// that falls behind receives one signal for many changes.
func (s *Store) Changes() <-chan struct{} {
	return s.changes
}

func (s *Store) notify() {
	select {
	case s.changes <- struct{}{}:
	default:
	}
}
