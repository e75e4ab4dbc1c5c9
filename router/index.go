package router

import (
	"game_marketplace/handler"
	"game_marketplace/middleware"
	"game_marketplace/validate"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func SetupRoutes(app *fiber.App) {
	api := app.Group("/api", logger.New())
	v1 := api.Group("/v1", logger.New())

	auth := v1.Group("/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Post("/refresh-token", handler.RefreshToken)
	auth.Post("/logout", handler.Logout)
	auth.Get("/me", middleware.Protected(), handler.Me)

	// Public: catalog, login không bắt buộc
	product := v1.Group("/product", logger.New())
	product.Get("/", middleware.OptionalAuth(), handler.GetProducts)
	product.Get("/:slug", middleware.OptionalAuth(), handler.GetProductBySlug)
	product.Post("/", middleware.Protected(), middleware.AdminOnly(), handler.CreateProduct)
	product.Delete("/", middleware.Protected(), middleware.AdminOnly(), validate.Delete(), handler.DeleteProducts)

	service := v1.Group("/service", logger.New())
	service.Get("/:cname", middleware.OptionalAuth(), handler.GetServiceCatalog)

	currency := v1.Group("/currency", logger.New())
	currency.Get("/", middleware.OptionalAuth(), handler.GetCurrencies)
	currency.Post("/", middleware.Protected(), middleware.AdminOnly(), handler.CreateCurrency)
	currency.Put("/default", middleware.Protected(), middleware.AdminOnly(), handler.SetDefaultCurrency)

	cart := v1.Group("/cart", logger.New())
	cart.Get("/", middleware.Protected(), handler.GetMyCart)
	cart.Post("/", middleware.Protected(), handler.AddToCart)
	cart.Delete("/:prodId", middleware.Protected(), validate.GetById("prodId"), handler.RemoveFromCart)

	// Thanh toán: init → redirect Paystack → verify tạo đơn
	payment := v1.Group("/payment", logger.New())
	payment.Post("/initialize", middleware.Protected(), handler.InitializePayment)
	payment.Post("/verify", middleware.Protected(), handler.VerifyPayment)
	payment.Post("/verify-offline", middleware.Protected(), middleware.AdminOnly(), handler.VerifyOfflinePayment)

	order := v1.Group("/order", logger.New())
	order.Get("/me", middleware.Protected(), handler.GetMyOrders)
	order.Post("/pod", middleware.Protected(), handler.CreatePodOrder)
	order.Post("/pod/:cname", middleware.Protected(), handler.CreatePodOrder)
	order.Get("/progress-options", middleware.Protected(), middleware.AdminOnly(), handler.GetOrderProgressOptions)
	order.Get("/", middleware.Protected(), middleware.AdminOnly(), handler.GetOrders)
	order.Get("/:orderId", middleware.Protected(), middleware.AdminOnly(), validate.GetById("orderId"), handler.GetOrderDetail)
	order.Patch("/:orderId/status", middleware.Protected(), middleware.AdminOnly(), validate.GetById("orderId"), handler.UpdateOrderStatus)
	order.Delete("/:orderId", middleware.Protected(), middleware.AdminOnly(), validate.GetById("orderId"), handler.DeleteOrder)

	refund := v1.Group("/refund", logger.New())
	refund.Get("/me", middleware.Protected(), handler.GetMyRefundInfo)
	refund.Post("/evidence", middleware.Protected(), handler.UploadRefundEvidence)
	refund.Get("/order/:orderId", middleware.Protected(), validate.GetById("orderId"), handler.GetOrderRefundPreview)
	refund.Post("/order/:orderId", middleware.Protected(), validate.GetById("orderId"), handler.RequestRefund)
	refund.Get("/", middleware.Protected(), middleware.AdminOnly(), handler.GetRefunds)
	refund.Get("/:refundId", middleware.Protected(), middleware.AdminOnly(), validate.GetById("refundId"), handler.GetRefundInfo)
	refund.Patch("/:refundId/progress", middleware.Protected(), middleware.AdminOnly(), validate.GetById("refundId"), handler.UpdateRefundProgress)

	// Feed realtime trạng thái đơn cho dashboard admin
	v1.Get("/ws/orders", websocket.New(handler.OrderFeedConnection))
}
