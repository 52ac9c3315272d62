package handler

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"flashstudy/internal/speech"

	tele "gopkg.in/telebot.v3"
)

// messenger is the part of the bot API the chat synthesizer needs
type messenger interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
	Delete(msg tele.Editable) error
}

// chatSynth speaks into a chat. With a TTS URL template it sends a voice
// message, otherwise a text line tagged with the locale. Only the latest
// utterance is kept in the chat.
type chatSynth struct {
	api    messenger
	chat   tele.Recipient
	ttsURL string

	mu   sync.Mutex
	last *tele.Message
}

func newChatSynth(api messenger, chat tele.Recipient, ttsURL string) *chatSynth {
	return &chatSynth{
		api:    api,
		chat:   chat,
		ttsURL: ttsURL,
	}
}

// Speak sends text to the chat
func (s *chatSynth) Speak(_ context.Context, text string, locale speech.Locale) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var what interface{}
	if s.ttsURL != "" {
		what = &tele.Voice{File: tele.FromURL(ttsURL(s.ttsURL, text, locale))}
	} else {
		what = fmt.Sprintf("🔊 [%s] %s", locale, text)
	}

	msg, err := s.api.Send(s.chat, what)
	if err != nil {
		return fmt.Errorf("failed to send speech: %w", err)
	}
	s.last = msg
	return nil
}

// CancelAll removes the previous utterance
func (s *chatSynth) CancelAll(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.last == nil {
		return nil
	}
	msg := s.last
	s.last = nil
	if err := s.api.Delete(msg); err != nil {
		return fmt.Errorf("failed to delete speech: %w", err)
	}
	return nil
}

// ttsURL fills the {lang} and {text} placeholders of a TTS URL template
func ttsURL(template, text string, locale speech.Locale) string {
	return strings.NewReplacer(
		"{lang}", url.QueryEscape(string(locale)),
		"{text}", url.QueryEscape(text),
	).Replace(template)
}
