package session

import (
	"context"
	"testing"

	"sigma_app/internal/auth"
	"sigma_app/internal/auth/transport"
	"sigma_app/internal/chat"
	"sigma_app/platform/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreFollowsLoginEvents(t *testing.T) {
	store := NewStore()
	bus := events.NewInMemoryBus(nil)
	store.Subscribe(bus)

	_, ok := store.Current()
	assert.False(t, ok)

	err := bus.PublishSync(context.Background(), auth.LoginSucceeded{
		BaseEvent: events.NewBaseEvent(),
		Session:   transport.SessionInfo{UserID: "20231234", Name: "홍길동"},
	})
	require.NoError(t, err)

	got, ok := store.Current()
	require.True(t, ok)
	assert.Equal(t, "홍길동", got.Name)

	store.Clear()
	_, ok = store.Current()
	assert.False(t, ok)
}

func TestHandlerRejectsOtherEvents(t *testing.T) {
	err := NewStore().Handler().Handle(context.Background(), auth.LoginFailed{BaseEvent: events.NewBaseEvent()})
	assert.Error(t, err)
}

func TestStoreCountsQuestions(t *testing.T) {
	store := NewStore()
	bus := events.NewInMemoryBus(nil)
	store.Subscribe(bus)

	for i := 0; i < 3; i++ {
		bus.Publish(context.Background(), chat.MessageSent{BaseEvent: events.NewBaseEvent(), MessageID: "m"})
	}
	bus.Wait()
	assert.Equal(t, 3, store.Questions())

	store.Clear()
	assert.Equal(t, 0, store.Questions())

	err := store.QuestionHandler().Handle(context.Background(), auth.LoginFailed{BaseEvent: events.NewBaseEvent()})
	assert.Error(t, err)
}
