package main

import (
	"log"

	"game_marketplace/database"
	"game_marketplace/helper"
	"game_marketplace/router"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	app := fiber.New(fiber.Config{
		BodyLimit: 20 * 1024 * 1024, // ✅ cho phép upload ảnh bằng chứng tối đa 20MB
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:5173",
		AllowMethods:     "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Authorization, Accept",
		AllowCredentials: true,
		ExposeHeaders:    "Set-Cookie",
		MaxAge:           600,
	}))

	database.ConnectDB()
	database.ConnectRedis()

	// Sweep đơn hết hạn mỗi phút + dọn refund Completed mỗi ngày
	helper.StartOrderExpiryScheduler()
	defer helper.StopOrderExpiryScheduler()
	helper.StartRefundRetentionScheduler()

	router.SetupRoutes(app)
	log.Fatal(app.Listen(":8002"))
}
