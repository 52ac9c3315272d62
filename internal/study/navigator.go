package study

import (
	"context"
	"sync"

	"flashstudy/internal/domain"

	"go.uber.org/zap"
)

// NavigatorConfig holds the collaborators of a Navigator
type NavigatorConfig struct {
	SetID       int64
	Deck        domain.Deck
	Preferences Preferences
	Speaker     Speaker
	Scheduler   Scheduler
	Timing      Timing
	Logger      *zap.Logger
	OnChange    func(domain.NavigatorState)
}

// Navigator is a circular cursor over a deck with flip state and a
// two-phase slide transition.
type Navigator struct {
	mu     sync.Mutex
	ctx    context.Context
	setID  int64
	deck   domain.Deck
	prefs  Preferences
	speak  Speaker
	timers *Timers
	timing Timing
	logger *zap.Logger
	notify func(domain.NavigatorState)

	index     int
	flipped   bool
	animating bool
	slide     domain.Slide
	termFront bool
	termVoice bool
	defVoice  bool
}

// NewNavigator creates a navigator at the first card, reading the stored
// side and voice preferences for the set. ctx bounds the speech calls the
// navigator makes on its own.
func NewNavigator(ctx context.Context, cfg NavigatorConfig) *Navigator {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	n := &Navigator{
		ctx:    ctx,
		setID:  cfg.SetID,
		deck:   cfg.Deck,
		prefs:  cfg.Preferences,
		speak:  cfg.Speaker,
		timing: cfg.Timing,
		logger: cfg.Logger,
		notify: cfg.OnChange,
		slide:  domain.SlideNone,
	}
	n.timers = NewTimers(cfg.Scheduler, &n.mu)

	n.termFront = n.readFlag(ctx, domain.FlagTermFront)
	n.termVoice = n.readFlag(ctx, domain.FlagTermVoice)
	n.defVoice = n.readFlag(ctx, domain.FlagDefVoice)

	return n
}

func (n *Navigator) readFlag(ctx context.Context, flag domain.PreferenceFlag) bool {
	if n.prefs == nil {
		return false
	}
	value, ok, err := n.prefs.Get(ctx, domain.PreferenceKey{Flag: flag, SetID: n.setID})
	if err != nil {
		n.logger.Warn("Failed to read preference, using default",
			zap.String("flag", string(flag)),
			zap.Int64("set_id", n.setID),
			zap.Error(err),
		)
		return false
	}
	return ok && value
}

// State returns a snapshot of the navigator
func (n *Navigator) State() domain.NavigatorState {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.stateLocked()
}

func (n *Navigator) stateLocked() domain.NavigatorState {
	s := domain.NavigatorState{
		Index:     n.index,
		Total:     len(n.deck),
		Flipped:   n.flipped,
		Animating: n.animating,
		Slide:     n.slide,
		TermFront: n.termFront,
		TermVoice: n.termVoice,
		DefVoice:  n.defVoice,
	}
	if len(n.deck) > 0 {
		s.Card = n.deck[n.index]
	}
	return s
}

func (n *Navigator) changedLocked() {
	if n.notify != nil {
		n.notify(n.stateLocked())
	}
}

// Next moves to the following card, wrapping to the first.
// It reports false when the deck is empty or a transition is running.
func (n *Navigator) Next() bool {
	return n.move(domain.SlideNext, domain.SlidePrev, func(i, total int) int {
		return (i + 1) % total
	})
}

// Prev moves to the preceding card, wrapping to the last.
func (n *Navigator) Prev() bool {
	return n.move(domain.SlidePrev, domain.SlideNext, func(i, total int) int {
		if i == 0 {
			return total - 1
		}
		return i - 1
	})
}

// move runs the transition: leave tagged out, swap the card and arrive
// tagged in, then settle.
func (n *Navigator) move(out, in domain.Slide, step func(i, total int) int) bool {
	n.mu.Lock()
	defer n.timers.Unlock()

	if len(n.deck) == 0 || n.animating {
		return false
	}

	n.flipped = false
	n.animating = true
	n.slide = out
	n.changedLocked()

	n.timers.After(n.timing.SlideDelay, func() {
		n.index = step(n.index, len(n.deck))
		n.slide = in
		n.changedLocked()
		n.autoSpeakLocked(false)

		n.timers.After(n.timing.SettleDelay, func() {
			n.animating = false
			n.slide = domain.SlideNone
			n.changedLocked()
		})
	})
	return true
}

// ToggleFlip turns the current card over unless a transition is running
func (n *Navigator) ToggleFlip() bool {
	n.mu.Lock()
	defer n.timers.Unlock()

	if len(n.deck) == 0 || n.animating {
		return false
	}
	n.flipped = !n.flipped
	n.changedLocked()
	n.autoSpeakLocked(n.flipped)
	return true
}

// ToggleSide swaps which field is the front face and stores the choice
func (n *Navigator) ToggleSide(ctx context.Context) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	return n.toggleFlagLocked(ctx, domain.FlagTermFront, &n.termFront)
}

// ToggleTermVoice switches automatic speaking of terms
func (n *Navigator) ToggleTermVoice(ctx context.Context) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	return n.toggleFlagLocked(ctx, domain.FlagTermVoice, &n.termVoice)
}

// ToggleDefinitionVoice switches automatic speaking of definitions
func (n *Navigator) ToggleDefinitionVoice(ctx context.Context) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	return n.toggleFlagLocked(ctx, domain.FlagDefVoice, &n.defVoice)
}

// Voices returns the automatic speech flags for terms and definitions
func (n *Navigator) Voices() (term, definition bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.termVoice, n.defVoice
}

func (n *Navigator) toggleFlagLocked(ctx context.Context, flag domain.PreferenceFlag, field *bool) error {
	next := !*field
	if n.prefs != nil {
		key := domain.PreferenceKey{Flag: flag, SetID: n.setID}
		if err := n.prefs.Set(ctx, key, next); err != nil {
			return err
		}
	}
	*field = next
	n.changedLocked()
	return nil
}

// Speak reads out the face that is currently visible
func (n *Navigator) Speak(ctx context.Context) error {
	n.mu.Lock()
	if len(n.deck) == 0 || n.speak == nil {
		n.mu.Unlock()
		return nil
	}
	text := n.stateLocked().Visible()
	n.mu.Unlock()

	return n.speak.Speak(ctx, text)
}

// autoSpeakLocked queues speech for the face that just became visible if
// the voice flag for its field is on. Speech runs after the lock is
// released.
func (n *Navigator) autoSpeakLocked(back bool) {
	if n.speak == nil || len(n.deck) == 0 {
		return
	}

	showingTerm := n.termFront != back
	card := n.deck[n.index]

	var text string
	switch {
	case showingTerm && n.termVoice:
		text = card.Term
	case !showingTerm && n.defVoice:
		text = card.Definition
	default:
		return
	}

	index := n.index
	n.timers.Defer(func() {
		if err := n.speak.Speak(n.ctx, text); err != nil {
			n.logger.Warn("Failed to speak card",
				zap.Int64("set_id", n.setID),
				zap.Int("index", index),
				zap.Error(err),
			)
		}
	})
}

// HandleKey maps arrows and space onto navigation
func (n *Navigator) HandleKey(k Key) bool {
	switch k {
	case KeyArrowRight:
		n.Next()
	case KeyArrowLeft:
		n.Prev()
	case KeySpace, KeyArrowUp:
		n.ToggleFlip()
	default:
		return false
	}
	return true
}

// close cancels pending transitions
func (n *Navigator) close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.timers.Stop()
}

func (n *Navigator) publish() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.changedLocked()
}
