// Package chat keeps the assistant transcript shown on the chat screen.
package chat

import (
	"context"
	"slices"
	"sync"

	"sigma_app/internal/catalog"
	"sigma_app/platform/apperr"
	"sigma_app/platform/logger"
	"sigma_app/platform/sanitize"

	"github.com/google/uuid"
)

// Responder produces the assistant's reply to the latest user message.
// history includes that message as its last element.
type Responder interface {
	Reply(ctx context.Context, history []catalog.ChatMessage) (string, error)
}

// Conversation is a chat transcript. It is safe for concurrent use.
type Conversation struct {
	mu        sync.Mutex
	messages  []catalog.ChatMessage
	responder Responder
	log       *logger.Logger
}

// NewConversation starts a transcript with the given greeting. responder may
// be nil, in which case Send only records the user's message.
func NewConversation(greeting []catalog.ChatMessage, responder Responder, log *logger.Logger) *Conversation {
	if log == nil {
		log = logger.Nop()
	}
	return &Conversation{
		messages:  slices.Clone(greeting),
		responder: responder,
		log:       log,
	}
}

// Messages returns a copy of the transcript.
func (c *Conversation) Messages() []catalog.ChatMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.messages)
}

// Send appends the user's message and, when a responder is set, its reply.
// It returns the messages added by this call. Input that is blank after
// sanitizing is rejected and nothing is appended. A responder failure keeps
// the user's message.
func (c *Conversation) Send(ctx context.Context, text string) ([]catalog.ChatMessage, error) {
	clean := sanitize.Text(text)
	if clean == "" {
		return nil, apperr.Validation("메시지를 입력해 주세요.").WithOp("chat.Send")
	}

	userMsg := catalog.ChatMessage{ID: uuid.NewString(), Text: clean, Sender: catalog.SenderUser}

	c.mu.Lock()
	c.messages = append(c.messages, userMsg)
	history := slices.Clone(c.messages)
	c.mu.Unlock()

	if c.responder == nil {
		return []catalog.ChatMessage{userMsg}, nil
	}

	reply, err := c.responder.Reply(ctx, history)
	if err != nil {
		c.log.Error("chat responder failed", "error", err)
		return []catalog.ChatMessage{userMsg}, apperr.Wrap(apperr.KindInternal, "답변을 가져오지 못했습니다.", err).WithOp("chat.Send")
	}

	replyMsg := catalog.ChatMessage{ID: uuid.NewString(), Text: reply, Sender: catalog.SenderAI}
	c.mu.Lock()
	c.messages = append(c.messages, replyMsg)
	c.mu.Unlock()

	return []catalog.ChatMessage{userMsg, replyMsg}, nil
}
