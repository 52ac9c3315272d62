package domain

import "time"

// Card is a single term/definition pair. Cards are identified by their
// position in the deck, so duplicates are allowed.
type Card struct {
	Term       string
	Definition string
}

// Deck is the ordered list of cards being studied
type Deck []Card

// Len returns the number of cards
func (d Deck) Len() int {
	return len(d)
}

// Empty reports whether the deck has no cards
func (d Deck) Empty() bool {
	return len(d) == 0
}

// FlashcardSet is a named deck as stored by the set repository
type FlashcardSet struct {
	ID        int64
	Name      string
	Cards     Deck
	CreatedAt time.Time
}
