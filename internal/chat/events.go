package chat

import "sigma_app/platform/events"

// EventMessageSent is published for every user message added to a transcript.
const EventMessageSent = "chat.message_sent"

type MessageSent struct {
	events.BaseEvent
	MessageID string
}

func (MessageSent) EventName() string { return EventMessageSent }
