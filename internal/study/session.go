package study

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"flashstudy/internal/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Mode is the active study experience
type Mode string

const (
	ModeNone       Mode = "none"
	ModeFlashcards Mode = "flashcards"
	ModeQuiz       Mode = "quiz"
	ModeRecall     Mode = "recall"
)

// View is what a UI shell renders. Exactly one of Navigator, Quiz and
// Recall is set while a mode is active.
type View struct {
	SessionID     uuid.UUID
	SetID         int64
	SetName       string
	Mode          Mode
	Empty         bool
	ConfirmDelete bool
	Navigator     *domain.NavigatorState
	Quiz          *domain.QuizState
	Recall        *domain.RecallState
}

// Deps are the collaborators shared by every mode of a session
type Deps struct {
	Preferences Preferences
	Speaker     Speaker
	Deleter     SetDeleter
	Scheduler   Scheduler
	Timing      Timing
	Shuffle     ShuffleFunc
	Logger      *zap.Logger
	// OnChange receives every state change. It is called while the mode is
	// locked and must not call back into the session.
	OnChange func(View)
}

type mode interface {
	keyHandler
	publish()
	close()
}

// Session studies one flashcard set with one mode active at a time
type Session struct {
	id     uuid.UUID
	set    domain.FlashcardSet
	deps   Deps
	logger *zap.Logger

	mu            sync.Mutex
	mode          Mode
	active        mode
	navigator     *Navigator
	quiz          *Quiz
	recall        *Recall
	confirmDelete atomic.Bool
	cancel        context.CancelFunc
}

// NewSession creates a session with no active mode
func NewSession(set domain.FlashcardSet, deps Deps) *Session {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Timing == (Timing{}) {
		deps.Timing = DefaultTiming()
	}
	id := uuid.New()
	return &Session{
		id:   id,
		set:  set,
		deps: deps,
		logger: deps.Logger.With(
			zap.String("session_id", id.String()),
			zap.Int64("set_id", set.ID),
		),
		mode: ModeNone,
	}
}

// ID returns the session id
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Set returns the studied set
func (s *Session) Set() domain.FlashcardSet {
	return s.set
}

// Mode returns the active mode
func (s *Session) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Enter leaves the current mode, if any, and starts m from the first card
func (s *Session) Enter(ctx context.Context, m Mode) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if m != ModeFlashcards && m != ModeQuiz && m != ModeRecall {
		return ErrUnknownMode
	}

	s.exitLocked()

	modeCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.cancel = cancel
	s.mode = m

	switch m {
	case ModeFlashcards:
		s.navigator = NewNavigator(modeCtx, NavigatorConfig{
			SetID:       s.set.ID,
			Deck:        s.set.Cards,
			Preferences: s.deps.Preferences,
			Speaker:     s.deps.Speaker,
			Scheduler:   s.deps.Scheduler,
			Timing:      s.deps.Timing,
			Logger:      s.logger,
			OnChange: func(st domain.NavigatorState) {
				s.emit(ModeFlashcards, func(v *View) { v.Navigator = &st })
			},
		})
		s.active = s.navigator
	case ModeQuiz:
		s.quiz = NewQuiz(QuizConfig{
			Deck:      s.set.Cards,
			Scheduler: s.deps.Scheduler,
			Timing:    s.deps.Timing,
			Shuffle:   s.deps.Shuffle,
			OnChange: func(st domain.QuizState) {
				s.emit(ModeQuiz, func(v *View) { v.Quiz = &st })
			},
		})
		s.active = s.quiz
	case ModeRecall:
		s.recall = NewRecall(RecallConfig{
			Deck:      s.set.Cards,
			Scheduler: s.deps.Scheduler,
			Timing:    s.deps.Timing,
			OnChange: func(st domain.RecallState) {
				s.emit(ModeRecall, func(v *View) { v.Recall = &st })
			},
		})
		s.active = s.recall
	}

	s.logger.Info("Study mode entered", zap.String("mode", string(m)))
	s.active.publish()
	return nil
}

// Exit leaves the active mode. Pending timers of that mode never fire.
func (s *Session) Exit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.exitLocked()
}

func (s *Session) exitLocked() {
	if s.active == nil {
		return
	}

	s.active.close()
	s.cancel()
	s.logger.Info("Study mode exited", zap.String("mode", string(s.mode)))

	s.active = nil
	s.navigator = nil
	s.quiz = nil
	s.recall = nil
	s.cancel = nil
	s.confirmDelete.Store(false)
	s.mode = ModeNone
}

// HandleKey routes a key press to the active mode. It reports whether the
// key was consumed.
func (s *Session) HandleKey(k Key) bool {
	s.mu.Lock()
	active := s.active
	s.mu.Unlock()

	if active == nil {
		return false
	}
	return active.HandleKey(k)
}

// Navigator returns the flashcard navigator, or nil in other modes
func (s *Session) Navigator() *Navigator {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.navigator
}

// Quiz returns the quiz, or nil in other modes
func (s *Session) Quiz() *Quiz {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.quiz
}

// Recall returns the recall session, or nil in other modes
func (s *Session) Recall() *Recall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recall
}

// RequestDelete asks for confirmation before deleting the set. Only the
// flashcard mode offers deletion.
func (s *Session) RequestDelete() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mode != ModeFlashcards {
		return false
	}
	s.confirmDelete.Store(true)
	s.navigator.publish()
	return true
}

// CancelDelete dismisses the confirmation
func (s *Session) CancelDelete() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.confirmDelete.Swap(false) {
		return
	}
	if s.navigator != nil {
		s.navigator.publish()
	}
}

// ConfirmDelete deletes the set. On success the mode is exited; on failure
// the session is left as it was so the user can retry.
func (s *Session) ConfirmDelete(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.confirmDelete.Load() || s.mode != ModeFlashcards {
		return ErrNoDeletePending
	}
	if s.deps.Deleter == nil {
		return errors.New("set deletion is not available")
	}

	if err := s.deps.Deleter.DeleteSet(ctx, s.set.ID); err != nil {
		s.logger.Warn("Failed to delete set", zap.Error(err))
		return err
	}

	s.logger.Info("Set deleted")
	s.exitLocked()
	return nil
}

// Close ends the session
func (s *Session) Close() {
	s.Exit()
}

// emit wraps a mode snapshot into a View. It runs under the mode lock and
// must not take the session lock.
func (s *Session) emit(m Mode, fill func(*View)) {
	if s.deps.OnChange == nil {
		return
	}
	v := View{
		SessionID:     s.id,
		SetID:         s.set.ID,
		SetName:       s.set.Name,
		Mode:          m,
		Empty:         s.set.Cards.Empty(),
		ConfirmDelete: m == ModeFlashcards && s.confirmDelete.Load(),
	}
	fill(&v)
	s.deps.OnChange(v)
}
