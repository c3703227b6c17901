package testutil

import (
	"fmt"

	tele "gopkg.in/telebot.v3"
)

// FakeContext implements the parts of tele.Context the handlers touch
// and records everything sent through it. The embedded interface covers
// the rest; calling an unimplemented method panics, which is what a test
// wants.
type FakeContext struct {
	tele.Context

	User        *tele.User
	MessageText string
	CB          *tele.Callback
	Msg         *tele.Message

	Sent      []string
	Edited    []string
	Responded int
}

// NewFakeContext builds a context for a plain text message.
func NewFakeContext(userID int64, text string) *FakeContext {
	return &FakeContext{
		User:        &tele.User{ID: userID},
		MessageText: text,
		Msg:         &tele.Message{Text: text},
	}
}

// NewFakeCallback builds a context for a button press carrying payload
// data.
func NewFakeCallback(userID int64, data string) *FakeContext {
	return &FakeContext{
		User: &tele.User{ID: userID},
		CB:   &tele.Callback{Data: data},
		Msg:  &tele.Message{},
	}
}

func (c *FakeContext) Sender() *tele.User { return c.User }

func (c *FakeContext) Text() string { return c.MessageText }

func (c *FakeContext) Data() string {
	if c.CB != nil {
		return c.CB.Data
	}
	return ""
}

func (c *FakeContext) Callback() *tele.Callback { return c.CB }

func (c *FakeContext) Message() *tele.Message { return c.Msg }

func (c *FakeContext) Send(what interface{}, opts ...interface{}) error {
	c.Sent = append(c.Sent, fmt.Sprint(what))
	return nil
}

func (c *FakeContext) Edit(what interface{}, opts ...interface{}) error {
	c.Edited = append(c.Edited, fmt.Sprint(what))
	return nil
}

func (c *FakeContext) Respond(resp ...*tele.CallbackResponse) error {
	c.Responded++
	return nil
}

// FakeSender records outbound notifications keyed by recipient.
type FakeSender struct {
	Messages map[string][]string
	Err      error
}

func NewFakeSender() *FakeSender {
	return &FakeSender{Messages: make(map[string][]string)}
}

func (s *FakeSender) Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.Messages[to.Recipient()] = append(s.Messages[to.Recipient()], fmt.Sprint(what))
	return &tele.Message{}, nil
}
