package domain

import (
	"fmt"
	"time"
)

// PreferenceFlag names a per-set boolean preference
type PreferenceFlag string

const (
	// FlagTermFront means the term is shown on the front face
	FlagTermFront PreferenceFlag = "term_front"
	// FlagTermVoice means the term is spoken when a card is shown
	FlagTermVoice PreferenceFlag = "term_voice"
	// FlagDefVoice means the definition is spoken when a card is shown
	FlagDefVoice PreferenceFlag = "def_voice"
)

// PreferenceRetention is how long a stored preference survives without being rewritten
const PreferenceRetention = 365 * 24 * time.Hour

// PreferenceKey identifies one stored preference
type PreferenceKey struct {
	Flag  PreferenceFlag
	SetID int64
}

// String returns the key in flag_setID form
func (k PreferenceKey) String() string {
	return fmt.Sprintf("%s_%d", k.Flag, k.SetID)
}
