package handler

import (
	"sync"

	tele "gopkg.in/telebot.v3"
)

// fakeChat records what would be sent to Telegram
type fakeChat struct {
	mu       sync.Mutex
	nextID   int
	sent     []interface{}
	sendOpts [][]interface{}
	edited   []interface{}
	deleted  []tele.Editable

	sendErr   error
	editErr   error
	deleteErr error
}

func (f *fakeChat) Send(_ tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	f.nextID++
	f.sent = append(f.sent, what)
	f.sendOpts = append(f.sendOpts, opts)
	return &tele.Message{ID: f.nextID}, nil
}

func (f *fakeChat) Edit(msg tele.Editable, what interface{}, _ ...interface{}) (*tele.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.editErr != nil {
		return nil, f.editErr
	}
	f.edited = append(f.edited, what)
	m, _ := msg.(*tele.Message)
	return m, nil
}

func (f *fakeChat) Delete(msg tele.Editable) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, msg)
	return nil
}
