package routes

import (
	"time"

	"simba/handlers"
	"simba/middleware"
	"simba/services/auth"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterTourRoutes registers the public catalog endpoints.
func RegisterTourRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/tours")
	{
		api.GET("", hb.Tours.ListToursHandler)
		api.GET("/featured", hb.Tours.FeaturedToursHandler)
		api.GET("/slug/:slug", hb.Tours.GetTourBySlugHandler)
		api.POST("/:id/views", hb.Tours.RecordViewHandler)
	}
}

// RegisterBookingRoutes registers storefront booking endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.POST("", middleware.OptionalCustomer(hb.Authn), hb.Bookings.CreateBookingHandler)
		// The full list carries customer contact data.
		api.GET("", middleware.AdminAuth(hb.Authn, auth.ActionBookingsRead), hb.Bookings.ListBookingsHandler)
	}
}

// RegisterCustomerRoutes registers customer auth and the customer's own bookings.
func RegisterCustomerRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	authGroup := r.Group("/api/auth")
	{
		authGroup.POST("/register", hb.Customers.RegisterHandler)
		authGroup.POST("/login", hb.Customers.LoginHandler)
	}

	userGroup := r.Group("/api/user")
	{
		userGroup.Use(middleware.CustomerAuth(hb.Authn))
		userGroup.GET("/bookings", hb.Bookings.MyBookingsHandler)
	}
}

// RegisterPublicRoutes registers the storefront tracker and analytics feed.
func RegisterPublicRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/api/activity/log", hb.Activity.TrackHandler)
	r.GET("/api/analytics", middleware.AdminAuth(hb.Authn, auth.ActionAnalyticsRead), hb.Analytics.RecentHandler)
}

// RegisterAdminRoutes sets up the back-office endpoints. Each route names
// the action its role guard checks.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	guard := func(action string) gin.HandlerFunc {
		return middleware.AdminAuth(hb.Authn, action)
	}

	admin := r.Group("/api/admin")
	{
		admin.POST("/login", hb.Admin.LoginHandler)
		admin.GET("/dashboard/stats", guard(auth.ActionDashboardRead), hb.Admin.DashboardStatsHandler)

		pos := admin.Group("/pos")
		pos.POST("/sale", guard(auth.ActionPOSSale), hb.POS.SaleHandler)
		pos.POST("/refund", guard(auth.ActionPOSRefund), hb.POS.RefundHandler)
		pos.GET("/summary", guard(auth.ActionPOSRead), hb.POS.SummaryHandler)
		pos.GET("/transactions", guard(auth.ActionPOSRead), hb.POS.ListTransactionsHandler)
		pos.GET("/transactions/:id", guard(auth.ActionPOSRead), hb.POS.GetTransactionHandler)

		tours := admin.Group("/tours")
		tours.GET("/:id", guard(auth.ActionToursWrite), hb.Tours.GetTourHandler)
		tours.POST("", guard(auth.ActionToursWrite), hb.Tours.CreateTourHandler)
		tours.PUT("/:id", guard(auth.ActionToursWrite), hb.Tours.UpdateTourHandler)
		tours.DELETE("/:id", guard(auth.ActionToursDelete), hb.Tours.DeleteTourHandler)
		tours.POST("/:id/image", guard(auth.ActionToursWrite), hb.Tours.UploadImageHandler)

		bookings := admin.Group("/bookings")
		bookings.GET("", guard(auth.ActionBookingsRead), hb.Bookings.AdminListBookingsHandler)
		bookings.PATCH("/:id", guard(auth.ActionBookingsWrite), hb.Bookings.UpdateBookingHandler)
		bookings.DELETE("/:id", guard(auth.ActionBookingsDelete), hb.Bookings.DeleteBookingHandler)

		logs := admin.Group("/activity-logs")
		logs.GET("", guard(auth.ActionActivityRead), hb.Activity.ListHandler)
		logs.GET("/summary", guard(auth.ActionActivityRead), hb.Activity.SummaryHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", handlers.HealthHandler)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, allowedOrigins []string) {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: allowedOrigins[0] != "*",
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterTourRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterCustomerRoutes(r, hb)
	RegisterPublicRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
}
