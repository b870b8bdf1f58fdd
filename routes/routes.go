package routes

import (
	"time"

	"hotelops/handlers"
	"hotelops/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterFolioRoutes registers the staff-facing folio endpoints.
func RegisterFolioRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/folios/:bookingID")
	{
		api.Use(middleware.JWTAuthStaffMiddleware())

		api.GET("", middleware.RequireCapability(middleware.CapFolioRead), hb.GetFolioHandler)
		api.GET("/statement", middleware.RequireCapability(middleware.CapFolioRead), hb.DownloadStatementHandler)
		api.GET("/statement/link", middleware.RequireCapability(middleware.CapFolioRead), hb.StatementLinkHandler)
		api.POST("/statement", middleware.RequireCapability(middleware.CapFolioRead), hb.RequestStatementHandler)
		api.GET("/checkouts", middleware.RequireCapability(middleware.CapFolioRead), hb.CheckoutHistoryHandler)

		api.POST("/transactions", middleware.RequireCapability(middleware.CapFolioPost), hb.PostTransactionHandler)
		api.POST("/food-orders", middleware.RequireCapability(middleware.CapKitchenPost), hb.AddFoodOrderHandler)
		api.POST("/guest-services", middleware.RequireCapability(middleware.CapServicesPost), hb.AddGuestServiceHandler)
		api.POST("/payment-intent", middleware.RequireCapability(middleware.CapCashierCollect), hb.CreatePaymentIntent)
		api.POST("/checkout", middleware.RequireCapability(middleware.CapFrontdeskCheckout), hb.CheckoutHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.HealthHandler)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "Idempotency-Key", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r, hb)
	RegisterFolioRoutes(r, hb)
}
