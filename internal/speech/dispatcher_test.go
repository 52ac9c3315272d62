package speech_test

import (
	"context"
	"errors"
	"testing"

	"flashstudy/internal/speech"
	"flashstudy/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

var englishGuesser = speech.GuesserFunc(func(string) string { return "eng" })

func TestDispatcher_Speak(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		locale speech.Locale
	}{
		{name: "russian", text: "привет", locale: speech.Russian},
		{name: "french", text: "café", locale: speech.French},
		{name: "german", text: "über", locale: speech.German},
		{name: "english fallback", text: "hello", locale: speech.English},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls []string
			synth := new(testutil.MockSynthesizer)
			synth.On("CancelAll", mock.Anything).Return(nil).Once().
				Run(func(mock.Arguments) { calls = append(calls, "cancel") })
			synth.On("Speak", mock.Anything, tt.text, tt.locale).Return(nil).Once().
				Run(func(mock.Arguments) { calls = append(calls, "speak") })

			d := speech.NewDispatcher(synth, englishGuesser, testutil.NewTestLogger())

			assert.NoError(t, d.Speak(context.Background(), tt.text))
			assert.Equal(t, []string{"cancel", "speak"}, calls)
			synth.AssertExpectations(t)
		})
	}
}

func TestDispatcher_EmptyTextIsNoop(t *testing.T) {
	synth := new(testutil.MockSynthesizer)
	d := speech.NewDispatcher(synth, englishGuesser, nil)

	assert.NoError(t, d.Speak(context.Background(), ""))

	synth.AssertNotCalled(t, "CancelAll", mock.Anything)
	synth.AssertNotCalled(t, "Speak", mock.Anything, mock.Anything, mock.Anything)
}

func TestDispatcher_CancelFailureStillSpeaks(t *testing.T) {
	synth := new(testutil.MockSynthesizer)
	synth.On("CancelAll", mock.Anything).Return(errors.New("nothing to cancel"))
	synth.On("Speak", mock.Anything, "hello", speech.English).Return(nil)

	d := speech.NewDispatcher(synth, englishGuesser, testutil.NewTestLogger())

	assert.NoError(t, d.Speak(context.Background(), "hello"))
	synth.AssertExpectations(t)
}

func TestDispatcher_SpeakError(t *testing.T) {
	synth := new(testutil.MockSynthesizer)
	synth.On("CancelAll", mock.Anything).Return(nil)
	synth.On("Speak", mock.Anything, "hello", speech.English).Return(errors.New("channel closed"))

	d := speech.NewDispatcher(synth, englishGuesser, testutil.NewTestLogger())

	err := d.Speak(context.Background(), "hello")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "channel closed")
}
