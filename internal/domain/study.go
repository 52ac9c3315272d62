package domain

// Slide tags the direction of a card transition
type Slide string

const (
	SlideNone Slide = "none"
	SlideNext Slide = "next"
	SlidePrev Slide = "prev"
)

// Result is the outcome of the most recent answer
type Result string

const (
	ResultNone      Result = "none"
	ResultCorrect   Result = "correct"
	ResultIncorrect Result = "incorrect"
)

// QuizDirection selects what is asked and what is answered
type QuizDirection string

const (
	TermToDefinition QuizDirection = "term_to_definition"
	DefinitionToTerm QuizDirection = "definition_to_term"
)

// Valid reports whether d is a known direction
func (d QuizDirection) Valid() bool {
	return d == TermToDefinition || d == DefinitionToTerm
}

// QuizPhase is the quiz state machine position
type QuizPhase string

const (
	QuizSelectingDirection QuizPhase = "selecting_direction"
	QuizAnswering          QuizPhase = "answering"
	QuizCompleted          QuizPhase = "completed"
)

// NavigatorState is a snapshot of the flashcard navigator
type NavigatorState struct {
	Index     int
	Total     int
	Flipped   bool
	Animating bool
	Slide     Slide
	TermFront bool
	TermVoice bool
	DefVoice  bool
	Card      Card
}

// Front returns the text on the visible face of the current card
func (s NavigatorState) Front() string {
	if s.TermFront {
		return s.Card.Term
	}
	return s.Card.Definition
}

// Back returns the text on the hidden face of the current card
func (s NavigatorState) Back() string {
	if s.TermFront {
		return s.Card.Definition
	}
	return s.Card.Term
}

// Visible returns whichever face is currently showing
func (s NavigatorState) Visible() string {
	if s.Flipped {
		return s.Back()
	}
	return s.Front()
}

// QuizState is a snapshot of a multiple-choice quiz
type QuizState struct {
	Phase      QuizPhase
	Direction  QuizDirection
	Index      int
	Total      int
	Prompt     string
	Options    []string
	// Deal changes every time Options is replaced
	Deal       uint64
	ErrorCount int
	LastResult Result
	Completed  bool
}

// RecallState is a snapshot of a write-the-term session
type RecallState struct {
	Index       int
	Total       int
	Prompt      string
	TypedAnswer string
	HintLength  int
	Hint        string
	ErrorCount  int
	LastResult  Result
	Completed   bool
	// CaretAt is set when the answer input should regain focus
	CaretAt *int
}
