package study

import (
	"sync"

	"flashstudy/internal/domain"
)

// QuizConfig holds the collaborators of a Quiz
type QuizConfig struct {
	Deck      domain.Deck
	Scheduler Scheduler
	Timing    Timing
	// Shuffle defaults to rand.Shuffle
	Shuffle  ShuffleFunc
	OnChange func(domain.QuizState)
}

// Quiz is a multiple-choice session over a deck
type Quiz struct {
	mu      sync.Mutex
	deck    domain.Deck
	timers  *Timers
	timing  Timing
	shuffle ShuffleFunc
	notify  func(domain.QuizState)

	phase      domain.QuizPhase
	direction  domain.QuizDirection
	index      int
	options    []string
	errorCount int
	lastResult domain.Result
	// advancing is set while a correct answer waits to move on
	advancing bool
	// feedback identifies the message a clear timer belongs to
	feedback uint64
	// deal identifies the current option list
	deal uint64
}

// NewQuiz creates a quiz waiting for a direction
func NewQuiz(cfg QuizConfig) *Quiz {
	q := &Quiz{
		deck:       cfg.Deck,
		timing:     cfg.Timing,
		shuffle:    cfg.Shuffle,
		notify:     cfg.OnChange,
		phase:      domain.QuizSelectingDirection,
		lastResult: domain.ResultNone,
	}
	if q.shuffle == nil {
		q.shuffle = defaultShuffle
	}
	q.timers = NewTimers(cfg.Scheduler, &q.mu)
	return q
}

// SelectDirection starts answering at the first card. It is a no-op on an
// empty deck.
func (q *Quiz) SelectDirection(d domain.QuizDirection) error {
	if !d.Valid() {
		return ErrInvalidDirection
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.deck) == 0 || q.phase != domain.QuizSelectingDirection {
		return nil
	}

	q.direction = d
	q.phase = domain.QuizAnswering
	q.index = 0
	q.errorCount = 0
	q.lastResult = domain.ResultNone
	q.dealLocked()
	q.changedLocked()
	return nil
}

// Reselect drops the current run and goes back to choosing a direction
func (q *Quiz) Reselect() {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.timers.Stop()
	q.timers = NewTimers(q.timers.sched, &q.mu)

	q.phase = domain.QuizSelectingDirection
	q.index = 0
	q.options = nil
	q.deal++
	q.errorCount = 0
	q.lastResult = domain.ResultNone
	q.advancing = false
	q.changedLocked()
}

// Answer scores a chosen option. A correct answer moves on after the
// feedback delay; a wrong one keeps the same question and options.
// It returns ResultNone when the answer is not accepted.
func (q *Quiz) Answer(answer string) domain.Result {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.answerLocked(answer)
}

func (q *Quiz) answerLocked(answer string) domain.Result {
	if q.phase != domain.QuizAnswering || q.advancing {
		return domain.ResultNone
	}

	if answer == q.correctLocked() {
		q.lastResult = domain.ResultCorrect
		q.advancing = true
		q.feedback++
		q.changedLocked()

		q.timers.After(q.timing.FeedbackDelay, func() {
			q.advancing = false
			q.lastResult = domain.ResultNone
			if q.index+1 < len(q.deck) {
				q.index++
				q.dealLocked()
			} else {
				q.phase = domain.QuizCompleted
			}
			q.changedLocked()
		})
		return domain.ResultCorrect
	}

	q.errorCount++
	q.lastResult = domain.ResultIncorrect
	q.feedback++
	shown := q.feedback
	q.changedLocked()

	q.timers.After(q.timing.FeedbackDelay, func() {
		if q.feedback != shown {
			return
		}
		q.lastResult = domain.ResultNone
		q.changedLocked()
	})
	return domain.ResultIncorrect
}

// AnswerOption scores the option at position i of the current option list
func (q *Quiz) AnswerOption(i int) domain.Result {
	q.mu.Lock()
	defer q.mu.Unlock()

	if i < 0 || i >= len(q.options) {
		return domain.ResultNone
	}
	return q.answerLocked(q.options[i])
}

// AnswerAt scores option i of the option list identified by deal, as
// reported in QuizState.Deal. Choices made on an option list that has since
// been replaced return ResultNone.
func (q *Quiz) AnswerAt(deal uint64, i int) domain.Result {
	q.mu.Lock()
	defer q.mu.Unlock()

	if deal != q.deal || i < 0 || i >= len(q.options) {
		return domain.ResultNone
	}
	return q.answerLocked(q.options[i])
}

func (q *Quiz) dealLocked() {
	q.options = GenerateOptions(q.deck, q.index, q.direction, q.shuffle)
	q.deal++
}

// State returns a snapshot of the quiz
func (q *Quiz) State() domain.QuizState {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.stateLocked()
}

func (q *Quiz) stateLocked() domain.QuizState {
	s := domain.QuizState{
		Phase:      q.phase,
		Direction:  q.direction,
		Index:      q.index,
		Total:      len(q.deck),
		Options:    append([]string(nil), q.options...),
		Deal:       q.deal,
		ErrorCount: q.errorCount,
		LastResult: q.lastResult,
		Completed:  q.phase == domain.QuizCompleted,
	}
	if q.phase != domain.QuizSelectingDirection && len(q.deck) > 0 {
		card := q.deck[q.index]
		if q.direction == domain.DefinitionToTerm {
			s.Prompt = card.Definition
		} else {
			s.Prompt = card.Term
		}
	}
	return s
}

func (q *Quiz) correctLocked() string {
	return answerField(q.deck[q.index], q.direction)
}

func (q *Quiz) changedLocked() {
	if q.notify != nil {
		q.notify(q.stateLocked())
	}
}

// HandleKey accepts no keys; options are chosen directly
func (q *Quiz) HandleKey(Key) bool {
	return false
}

func (q *Quiz) close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.timers.Stop()
}

func answerField(c domain.Card, d domain.QuizDirection) string {
	if d == domain.DefinitionToTerm {
		return c.Term
	}
	return c.Definition
}

// GenerateOptions builds the answer choices for the card at index: the
// correct answer plus up to three distinct distractors, in random order.
// Distractors never repeat and never equal the correct answer, so small
// decks get fewer options instead of padding.
func GenerateOptions(deck domain.Deck, index int, d domain.QuizDirection, shuffle ShuffleFunc) []string {
	if index < 0 || index >= len(deck) {
		return nil
	}
	if shuffle == nil {
		shuffle = defaultShuffle
	}

	correct := answerField(deck[index], d)

	seen := map[string]bool{correct: true}
	var pool []string
	for _, c := range deck {
		value := answerField(c, d)
		if seen[value] {
			continue
		}
		seen[value] = true
		pool = append(pool, value)
	}

	shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	if len(pool) > 3 {
		pool = pool[:3]
	}

	options := append(pool, correct)
	shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
	return options
}

func (q *Quiz) publish() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.changedLocked()
}
