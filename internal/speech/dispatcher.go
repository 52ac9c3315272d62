package speech

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Synthesizer is one speech output channel
type Synthesizer interface {
	Speak(ctx context.Context, text string, locale Locale) error
	// CancelAll stops whatever is being spoken
	CancelAll(ctx context.Context) error
}

// Dispatcher speaks texts on a single channel. A new request cancels the
// one in flight; requests are never queued.
type Dispatcher struct {
	synth   Synthesizer
	guesser Guesser
	logger  *zap.Logger

	mu sync.Mutex
}

// NewDispatcher creates a dispatcher
func NewDispatcher(synth Synthesizer, guesser Guesser, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{
		synth:   synth,
		guesser: guesser,
		logger:  logger,
	}
}

// Speak cancels current speech and speaks text in its detected locale.
// Empty text is ignored and does not interrupt anything.
func (d *Dispatcher) Speak(ctx context.Context, text string) error {
	if text == "" {
		return nil
	}

	locale := Detect(text, d.guesser)

	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.synth.CancelAll(ctx); err != nil {
		d.logger.Warn("Failed to cancel speech", zap.Error(err))
	}

	d.logger.Debug("Speaking text",
		zap.String("locale", string(locale)),
		zap.Int("length", len(text)),
	)

	if err := d.synth.Speak(ctx, text, locale); err != nil {
		return fmt.Errorf("failed to speak text: %w", err)
	}
	return nil
}
