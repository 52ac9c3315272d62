package study

import (
	"strings"
	"sync"
	"unicode/utf8"

	"flashstudy/internal/domain"
)

// RecallConfig holds the collaborators of a Recall session
type RecallConfig struct {
	Deck      domain.Deck
	Scheduler Scheduler
	Timing    Timing
	OnChange  func(domain.RecallState)
}

// Recall is a write-the-term session: the definition is shown and the
// user types the term.
type Recall struct {
	mu     sync.Mutex
	deck   domain.Deck
	timers *Timers
	timing Timing
	notify func(domain.RecallState)

	index      int
	typed      string
	hintLength int
	errorCount int
	lastResult domain.Result
	completed  bool
	advancing  bool
	feedback   uint64
	focus      bool
}

// NewRecall creates a recall session at the first card
func NewRecall(cfg RecallConfig) *Recall {
	r := &Recall{
		deck:       cfg.Deck,
		timing:     cfg.Timing,
		notify:     cfg.OnChange,
		lastResult: domain.ResultNone,
		focus:      true,
	}
	r.timers = NewTimers(cfg.Scheduler, &r.mu)
	return r
}

// MatchesTerm compares a typed answer with a term. Only surrounding
// whitespace of the answer and letter case are ignored.
func MatchesTerm(typed, term string) bool {
	return strings.ToLower(strings.TrimSpace(typed)) == strings.ToLower(term)
}

// SetAnswer replaces the typed answer
func (r *Recall) SetAnswer(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.completed {
		return
	}
	r.typed = text
}

// Submit checks the typed answer against the current term
func (r *Recall) Submit() domain.Result {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.deck) == 0 || r.completed || r.advancing {
		return domain.ResultNone
	}

	r.focus = true

	if MatchesTerm(r.typed, r.deck[r.index].Term) {
		r.lastResult = domain.ResultCorrect
		r.advancing = true
		r.feedback++
		r.changedLocked()

		r.timers.After(r.timing.FeedbackDelay, func() {
			r.advancing = false
			r.lastResult = domain.ResultNone
			if r.index+1 < len(r.deck) {
				r.moveToLocked(r.index + 1)
			} else {
				r.completed = true
			}
			r.changedLocked()
		})
		return domain.ResultCorrect
	}

	r.errorCount++
	r.lastResult = domain.ResultIncorrect
	r.feedback++
	shown := r.feedback
	r.changedLocked()

	r.timers.After(r.timing.FeedbackDelay, func() {
		if r.feedback != shown {
			return
		}
		r.lastResult = domain.ResultNone
		r.changedLocked()
	})
	return domain.ResultIncorrect
}

// Hint reveals one more leading letter of the current term
func (r *Recall) Hint() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.deck) == 0 || r.completed {
		return ""
	}

	if r.hintLength < utf8.RuneCountInString(r.deck[r.index].Term) {
		r.hintLength++
	}
	r.focus = true
	r.changedLocked()
	return r.hintLocked()
}

func (r *Recall) moveToLocked(i int) {
	r.index = i
	r.typed = ""
	r.hintLength = 0
	r.focus = true
}

func (r *Recall) hintLocked() string {
	if len(r.deck) == 0 || r.hintLength == 0 {
		return ""
	}
	runes := []rune(r.deck[r.index].Term)
	return string(runes[:r.hintLength])
}

// State returns a snapshot of the session
func (r *Recall) State() domain.RecallState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stateLocked()
}

func (r *Recall) stateLocked() domain.RecallState {
	s := domain.RecallState{
		Index:       r.index,
		Total:       len(r.deck),
		TypedAnswer: r.typed,
		HintLength:  r.hintLength,
		Hint:        r.hintLocked(),
		ErrorCount:  r.errorCount,
		LastResult:  r.lastResult,
		Completed:   r.completed,
	}
	if len(r.deck) > 0 {
		s.Prompt = r.deck[r.index].Definition
	}
	return s
}

// changedLocked publishes the state and hands over any pending focus
// request with the caret after the typed text.
func (r *Recall) changedLocked() {
	if r.notify == nil {
		return
	}
	s := r.stateLocked()
	if r.focus && !r.completed {
		caret := utf8.RuneCountInString(r.typed)
		s.CaretAt = &caret
		r.focus = false
	}
	r.notify(s)
}

// HandleKey submits on Enter
func (r *Recall) HandleKey(k Key) bool {
	if k != KeyEnter {
		return false
	}
	r.Submit()
	return true
}

func (r *Recall) close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.timers.Stop()
}

func (r *Recall) publish() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.changedLocked()
}
