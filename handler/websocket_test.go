package handler

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"game_marketplace/database"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()

	mr := miniredis.RunT(t)
	database.Redis = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { database.Redis = nil })
	return mr
}

func waitForSubscribers(t *testing.T, want int64) {
	t.Helper()

	require.Eventually(t, func() bool {
		counts, err := database.Redis.PubSubNumSub(context.Background(), orderEventsChannel).Result()
		return err == nil && counts[orderEventsChannel] == want
	}, 2*time.Second, 10*time.Millisecond)
}

// Mọi publisher bắn cùng 1 format: orderId numeric + status + timestamp
func TestPublishOrderEventPayload(t *testing.T) {
	setupTestRedis(t)

	sub := database.Redis.Subscribe(context.Background(), orderEventsChannel)
	defer sub.Close()
	ch := sub.Channel()
	waitForSubscribers(t, 1)

	PublishOrderEvent("42", "Pending")

	select {
	case msg := <-ch:
		var event OrderEvent
		require.NoError(t, json.Unmarshal([]byte(msg.Payload), &event))
		assert.Equal(t, "42", event.OrderId)
		assert.Equal(t, "Pending", event.Status)
		assert.False(t, event.At.IsZero())
	case <-time.After(2 * time.Second):
		t.Fatal("không nhận được order event")
	}
}

// Broadcaster giữ đúng 1 subscription Redis cho cả process. Sub theo
// từng connection sẽ nhân bản mỗi event N lần cho N client.
func TestOrderFeedSingleSubscription(t *testing.T) {
	setupTestRedis(t)

	ensureOrderFeedBroadcaster()
	ensureOrderFeedBroadcaster()

	waitForSubscribers(t, 1)
}
