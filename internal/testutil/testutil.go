package testutil

import (
	"context"
	"sync"
	"time"

	"flashstudy/internal/domain"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestSet creates a set from term/definition pairs
func NewTestSet(id int64, name string, pairs ...string) *domain.FlashcardSet {
	set := &domain.FlashcardSet{
		ID:        id,
		Name:      name,
		Cards:     domain.Deck{},
		CreatedAt: time.Now(),
	}
	for i := 0; i+1 < len(pairs); i += 2 {
		set.Cards = append(set.Cards, domain.Card{Term: pairs[i], Definition: pairs[i+1]})
	}
	return set
}

// MemoryPreferences is an in-memory preference store
type MemoryPreferences struct {
	mu     sync.Mutex
	values map[domain.PreferenceKey]bool
	// Err is returned by Set when non-nil
	Err error
}

// NewMemoryPreferences creates an empty store
func NewMemoryPreferences() *MemoryPreferences {
	return &MemoryPreferences{values: make(map[domain.PreferenceKey]bool)}
}

func (p *MemoryPreferences) Get(_ context.Context, key domain.PreferenceKey) (bool, bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	v, ok := p.values[key]
	return v, ok, nil
}

func (p *MemoryPreferences) Set(_ context.Context, key domain.PreferenceKey, value bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return p.Err
	}
	p.values[key] = value
	return nil
}

// RecordingSpeaker collects spoken texts
type RecordingSpeaker struct {
	mu     sync.Mutex
	Spoken []string
}

func (s *RecordingSpeaker) Speak(_ context.Context, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Spoken = append(s.Spoken, text)
	return nil
}

// Texts returns a copy of everything spoken so far
func (s *RecordingSpeaker) Texts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.Spoken...)
}
