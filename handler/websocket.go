package handler

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"game_marketplace/database"

	"github.com/gofiber/contrib/websocket"
)

const orderEventsChannel = "orders:events"

var (
	orderClients  = make(map[*websocket.Conn]bool)
	orderMu       sync.Mutex
	orderFeedOnce sync.Once
)

// OrderEvent payload đẩy lên kênh realtime cho dashboard admin.
// OrderId là id numeric của đơn, mọi publisher dùng chung format này.
type OrderEvent struct {
	OrderId string    `json:"orderId"`
	Status  string    `json:"status"`
	At      time.Time `json:"at"`
}

// PublishOrderEvent bắn event trạng thái đơn lên Redis, lỗi chỉ log
// vì event realtime không được phép chặn flow thanh toán
func PublishOrderEvent(orderId string, status string) {
	if database.Redis == nil {
		return
	}

	payload, err := json.Marshal(OrderEvent{
		OrderId: orderId,
		Status:  status,
		At:      time.Now(),
	})
	if err != nil {
		log.Printf("Lỗi marshal order event: %v", err)
		return
	}

	if err := database.Redis.Publish(context.Background(), orderEventsChannel, payload).Err(); err != nil {
		log.Printf("Lỗi publish order event: %v", err)
	}
}

// ensureOrderFeedBroadcaster sub kênh Redis đúng 1 lần cho cả process.
// Sub theo từng connection sẽ nhân bản event N lần cho N client.
func ensureOrderFeedBroadcaster() {
	if database.Redis == nil {
		return
	}

	orderFeedOnce.Do(func() {
		pubsub := database.Redis.Subscribe(context.Background(), orderEventsChannel)

		go func() {
			for msg := range pubsub.Channel() {
				payload := []byte(msg.Payload)

				orderMu.Lock()
				for conn := range orderClients {
					// Nếu client lỗi → xoá
					if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
						conn.Close()
						delete(orderClients, conn)
					}
				}
				orderMu.Unlock()
			}
		}()
	})
}

// OrderFeedConnection xử lý WS connection cho feed đơn hàng admin
func OrderFeedConnection(c *websocket.Conn) {
	ensureOrderFeedBroadcaster()

	// Khi WS disconnect → xoá client
	defer func() {
		orderMu.Lock()
		delete(orderClients, c)
		orderMu.Unlock()
		c.Close()
	}()

	// Thêm client mới
	orderMu.Lock()
	orderClients[c] = true
	orderMu.Unlock()

	// Giữ connection, chỉ đọc để phát hiện client đóng
	for {
		if _, _, err := c.ReadMessage(); err != nil {
			break
		}
	}
}
