package helper

import (
	"log"
	"time"

	"game_marketplace/constants"
	"game_marketplace/database"
	"game_marketplace/model"

	"github.com/go-co-op/gocron/v2"
	"github.com/robfig/cron/v3"
)

var orderExpiryScheduler *cron.Cron
var refundRetentionScheduler gocron.Scheduler

// StartOrderExpiryScheduler quét mỗi phút, xoá đơn có to_expire đã tới
// hạn (đơn bị retire sau khi refund Succeeded, hoặc record cũ bị huỷ)
func StartOrderExpiryScheduler() {
	orderExpiryScheduler = cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DefaultLogger),
	))

	_, err := orderExpiryScheduler.AddFunc("* * * * *", ExpireOrders)
	if err != nil {
		log.Printf("Lỗi khởi tạo scheduler expire đơn: %v", err)
		return
	}

	orderExpiryScheduler.Start()
	log.Println("Scheduler expire đơn hàng đã khởi động (mỗi phút)")
}

func ExpireOrders() {
	now := time.Now()
	result := database.DB.
		Where("to_expire IS NOT NULL AND to_expire <= ?", now).
		Delete(&model.Order{})

	if result.Error != nil {
		log.Printf("Lỗi xoá đơn hết hạn: %v", result.Error)
		return
	}

	if result.RowsAffected > 0 {
		log.Printf("Đã xoá %d đơn hết hạn", result.RowsAffected)
	}
}

// Dừng scheduler khi tắt server
func StopOrderExpiryScheduler() {
	if orderExpiryScheduler != nil {
		orderExpiryScheduler.Stop()
		log.Println("Scheduler expire đơn đã dừng")
	}
}

// PurgeCompletedRefunds xoá refund đã Completed quá kỳ giữ 14 ngày,
// độc lập với expiry của đơn gốc
func PurgeCompletedRefunds() {
	log.Println("[CRON] PurgeCompletedRefunds triggered")

	cutoff := time.Now().AddDate(0, 0, -constants.REFUND_RETENTION_DAYS)
	result := database.DB.
		Where("status = ? AND updated_at < ?", model.RefundStatusCompleted, cutoff).
		Delete(&model.Refund{})

	if result.Error != nil {
		log.Printf("Lỗi dọn refund: %v", result.Error)
		return
	}

	if result.RowsAffected > 0 {
		log.Printf("Đã dọn %d refund quá hạn giữ", result.RowsAffected)
	}
}

func StartRefundRetentionScheduler() {
	s, err := gocron.NewScheduler()
	if err != nil {
		log.Fatal(err)
	}

	refundRetentionScheduler = s

	_, err = s.NewJob(
		gocron.DailyJob(
			1,
			gocron.NewAtTimes(
				gocron.NewAtTime(0, 10, 0),
			),
		),
		gocron.NewTask(PurgeCompletedRefunds),
	)
	if err != nil {
		log.Fatal(err)
	}

	s.Start()
	log.Println("✅ Refund retention scheduler started (00:10)")
}
