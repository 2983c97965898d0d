package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/campusbites/canteen/internal/server/http/handlers"
	"github.com/campusbites/canteen/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.CanteenFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	menuHandler := handlers.NewMenuHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	paymentHandler := handlers.NewPaymentHandler(facade)
	walletHandler := handlers.NewWalletHandler(facade)
	feedbackHandler := handlers.NewFeedbackHandler(facade)
	kitchenHandler := handlers.NewKitchenHandler(facade)
	chatHandler := handlers.NewChatHandler(facade)

	api := engine.Group("/api")

	api.GET("/menu", menuHandler.List)
	api.GET("/menu/specials", menuHandler.Specials)
	api.POST("/webhook/stripe", paymentHandler.Webhook)

	user := api.Group("/user")
	user.POST("/register", authHandler.Register)
	user.POST("/login", authHandler.Login)
	user.POST("/otp/request", authHandler.RequestOTP)
	user.POST("/otp/verify", authHandler.VerifyOTP)

	userAuth := user.Group("")
	userAuth.Use(middleware.AuthRequired(facade))
	userAuth.POST("/orders", orderHandler.Place)
	userAuth.GET("/orders", orderHandler.List)
	userAuth.GET("/orders/:token", orderHandler.Detail)
	userAuth.POST("/orders/:token/cancel", orderHandler.Cancel)
	userAuth.POST("/orders/:token/pay/cash", paymentHandler.PayCash)
	userAuth.POST("/orders/:token/pay/wallet", paymentHandler.PayWallet)
	userAuth.POST("/orders/:token/pay/online", paymentHandler.PayOnline)
	userAuth.GET("/orders/:token/pay/online/success", paymentHandler.OnlineSuccess)
	userAuth.GET("/orders/:token/payments", paymentHandler.History)
	userAuth.GET("/wallet", walletHandler.Summary)
	userAuth.GET("/wallet/transactions", walletHandler.Transactions)
	userAuth.POST("/wallet/topup", walletHandler.TopUp)
	userAuth.POST("/feedback", feedbackHandler.Submit)
	userAuth.GET("/feedback", feedbackHandler.List)

	chat := api.Group("/chatbot")
	chat.Use(middleware.AuthRequired(facade))
	chat.POST("", chatHandler.Message)

	kitchen := api.Group("/kitchen")
	kitchen.Use(middleware.AuthRequired(facade))
	kitchen.Use(middleware.StaffOnly(facade))
	kitchen.GET("/orders", kitchenHandler.Active)
	kitchen.POST("/orders/:token/status", kitchenHandler.Advance)
	kitchen.POST("/feedback/:id/triage", feedbackHandler.Triage)

	menuAdmin := api.Group("/menu")
	menuAdmin.Use(middleware.AuthRequired(facade))
	menuAdmin.Use(middleware.StaffOnly(facade))
	menuAdmin.POST("/items/:id/toggle", menuHandler.Toggle)

	return engine
}
