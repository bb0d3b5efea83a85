package ws

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ClaudBot/entity"
)

func TestHub_BroadcastsChatEvents(t *testing.T) {
	hub := NewHub(nil)
	go hub.Run()

	client := &Client{hub: hub, send: make(chan []byte, 16)}
	hub.register <- client

	hub.BroadcastChat(entity.ChatEvent{
		Sender:    "15550001111",
		Direction: "incoming",
		Text:      "hello",
		CreatedAt: time.Now(),
	})

	select {
	case raw := <-client.send:
		var event struct {
			Type string           `json:"type"`
			Data entity.ChatEvent `json:"data"`
		}
		require.NoError(t, json.Unmarshal(raw, &event))
		assert.Equal(t, "chat_message", event.Type)
		assert.Equal(t, "15550001111", event.Data.Sender)
		assert.Equal(t, "incoming", event.Data.Direction)
		assert.Equal(t, "hello", event.Data.Text)
	case <-time.After(time.Second):
		t.Fatal("no event received")
	}
}

func TestHub_DropsSlowClients(t *testing.T) {
	hub := NewHub(nil)
	go hub.Run()

	client := &Client{hub: hub, send: make(chan []byte)} // unbuffered, never read
	hub.register <- client

	hub.BroadcastChat(entity.ChatEvent{Sender: "1", Direction: "incoming", Text: "x"})

	require.Eventually(t, func() bool {
		hub.mu.RLock()
		defer hub.mu.RUnlock()
		return len(hub.clients) == 0
	}, time.Second, 10*time.Millisecond)
}
