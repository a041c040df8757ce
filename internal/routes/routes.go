package routes

import (
	"strings"
	"time"

	"wellnexus_back_end/internal/config"
	"wellnexus_back_end/internal/handlers/community"
	paymenthandler "wellnexus_back_end/internal/handlers/payment"
	"wellnexus_back_end/internal/handlers/practitioner"
	"wellnexus_back_end/internal/handlers/product"
	"wellnexus_back_end/internal/handlers/recommendation"
	"wellnexus_back_end/internal/handlers/user"
	"wellnexus_back_end/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	origins := strings.Split(config.Get("CORS_ORIGINS", "http://localhost:3000"), ",")
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Auth
	auth := r.Group("/api/auth")
	{
		auth.POST("/register", user.Register)
		auth.POST("/login", user.Login)
		auth.GET("/:provider", user.BeginAuth)
		auth.GET("/:provider/callback", user.CallbackAuth)
		auth.GET("/me", middleware.AuthRequired(), user.Me)
	}

	// Cart
	cart := r.Group("/api/cart", middleware.AuthRequired())
	{
		cart.GET("", user.GetCart)
		cart.POST("/products", user.AddToCart)
		cart.POST("/sessions", user.AddSessionToCart)
		cart.DELETE("/products/:index", user.RemoveFromCart)
		cart.DELETE("/sessions/:index", user.RemoveSessionFromCart)
		cart.PUT("/products/:index/quantity", user.UpdateQuantity)
		cart.DELETE("", user.ClearCart)
	}
	r.GET("/ws/cart", middleware.AuthRequired(), user.CartWebSocket)

	// Products
	products := r.Group("/api/products")
	{
		products.GET("", product.GetProducts)
		products.GET("/available", product.GetAvailableProducts)
		products.GET("/search", product.SearchProducts)
		products.GET("/category/:category", product.GetProductsByCategory)
		products.GET("/:id", product.GetProductByID)
		products.POST("", middleware.AuthRequired(), middleware.RequireAdmin(), product.CreateProduct)
		products.PUT("/:id/stock", middleware.AuthRequired(), middleware.RequireAdmin(), product.UpdateStock)
		products.GET("/:id/stock-movements", middleware.AuthRequired(), middleware.RequireAdmin(), product.GetStockMovements)
	}

	// Practitioners
	practitioners := r.Group("/api/practitioners")
	{
		practitioners.GET("", practitioner.GetPractitioners)
		practitioners.GET("/search", practitioner.SearchPractitioners)
		practitioners.GET("/specialization/:specialization", practitioner.GetBySpecialization)
		practitioners.GET("/pending", middleware.AuthRequired(), middleware.RequireAdmin(), practitioner.GetPendingPractitioners)
		practitioners.GET("/:id", practitioner.GetPractitionerByID)
		practitioners.PUT("/:id/profile", middleware.AuthRequired(), practitioner.UpdateProfile)
		practitioners.PUT("/:id/verify", middleware.AuthRequired(), middleware.RequireAdmin(), practitioner.VerifyPractitioner)
		practitioners.POST("/:id/documents", middleware.AuthRequired(), practitioner.UploadDocument)
	}

	// Sessions
	sessions := r.Group("/api/sessions", middleware.AuthRequired())
	{
		sessions.POST("", user.BookSession)
		sessions.GET("/slots", user.GetAvailableSlots)
		sessions.GET("/user/:userId", user.GetUserSessions)
		sessions.GET("/practitioner/:practitionerId", user.GetPractitionerSessions)
		sessions.PUT("/:id/status", user.UpdateSessionStatus)
	}

	// Orders
	orders := r.Group("/api/orders", middleware.AuthRequired())
	{
		orders.GET("/my", user.GetMyOrders)
		orders.GET("/:id", user.GetOrderByID)
	}

	// Reviews
	reviews := r.Group("/api/reviews")
	{
		reviews.POST("", middleware.AuthRequired(), user.CreateReview)
		reviews.GET("/practitioner/:practitionerId", user.GetPractitionerReviews)
	}

	// Notifications
	notifications := r.Group("/api/notifications", middleware.AuthRequired())
	{
		notifications.GET("", user.GetNotifications)
		notifications.PUT("/:id/read", user.MarkNotificationRead)
	}

	// Community Q&A
	communityGroup := r.Group("/api/community")
	{
		communityGroup.GET("/questions", community.GetQuestions)
		communityGroup.GET("/questions/:questionId/answers", community.GetQuestionAnswers)
		communityGroup.POST("/questions", middleware.AuthRequired(), community.CreateQuestion)
		communityGroup.POST("/answers", middleware.AuthRequired(), community.CreateAnswer)
	}

	// Recommendations
	recommendations := r.Group("/api/recommendations", middleware.AuthRequired())
	{
		recommendations.POST("", recommendation.CreateRecommendation)
		recommendations.GET("/user/:userId", recommendation.GetUserRecommendations)
		recommendations.GET("/therapy/:therapy", recommendation.GetByTherapy)
	}

	// Checkout + payments
	r.POST("/api/checkout", middleware.AuthRequired(), paymenthandler.RunCheckout)
	r.GET("/api/payments/qr", middleware.AuthRequired(), paymenthandler.GetPaymentQR)
}
