package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dromero/aulasync/internal/app/models"
)

// deliverPush runs on the hub goroutine, so dropping a slow client must not
// go through the unregister channel that only this goroutine drains. This
// would deadlock the hub; the drop has to complete inline.
func TestDeliverPushDropsSlowClientWithoutBlocking(t *testing.T) {
	h := NewHub(zerolog.Nop())

	fast := &Client{hub: h, send: make(chan []byte, 1), userID: 7}
	slow := &Client{hub: h, send: make(chan []byte), userID: 7}
	h.clients[7] = map[*Client]bool{fast: true, slow: true}

	refID := int64(3)
	done := make(chan struct{})
	go func() {
		h.deliverPush(&Push{
			RecipientID: 7,
			ID:          11,
			Type:        models.NotificationInvitation,
			Content:     "you have been invited",
			ReferenceID: &refID,
			Timestamp:   time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC),
		})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("deliverPush did not return; slow client drop blocked the hub")
	}

	// The fast client got the payload, the slow one was disconnected
	assert.Equal(t, 1, h.GetClientsCount(7))

	var payload struct {
		ID      int64  `json:"id"`
		Type    string `json:"type"`
		Content string `json:"content"`
	}
	select {
	case data := <-fast.send:
		require.NoError(t, json.Unmarshal(data, &payload))
		assert.Equal(t, int64(11), payload.ID)
		assert.Equal(t, "INVITATION", payload.Type)
		assert.Equal(t, "you have been invited", payload.Content)
	default:
		t.Fatal("fast client did not receive the push")
	}

	_, open := <-slow.send
	assert.False(t, open, "slow client's send channel should be closed")
}

func TestDeliverPushIgnoresUnknownRecipient(t *testing.T) {
	h := NewHub(zerolog.Nop())

	done := make(chan struct{})
	go func() {
		h.deliverPush(&Push{RecipientID: 99, ID: 1, Type: models.NotificationNewTask})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("deliverPush did not return for a recipient with no connections")
	}
}
