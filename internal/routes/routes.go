package routes

import (
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"velora_back_end/internal/cart"
	"velora_back_end/internal/checkout"
	"velora_back_end/internal/database"
	"velora_back_end/internal/handlers"
	"velora_back_end/internal/handlers/payement"
	"velora_back_end/internal/handlers/product"
	"velora_back_end/internal/handlers/user"
	"velora_back_end/internal/middleware"
	"velora_back_end/internal/store"
)

// RegisterRoutes construit les services une fois et les injecte dans les
// handlers qui en dépendent.
func RegisterRoutes(r *gin.Engine) {
	r.Use(corsMiddleware())

	carts := cart.NewService(cart.NewRedisRepository(database.Redis))
	orders := store.NewOrderStore(database.Orders())
	sessions := checkout.NewSessionStore(database.Redis)
	processor := checkout.NewProcessor(checkout.StripeClient{}, orders)

	cartHandler := user.NewCartHandler(carts)
	orderHandler := user.NewOrderHandler(orders)
	checkoutHandler := handlers.NewCheckoutHandler(sessions, carts, processor)
	webhookHandler := payement.NewWebhookHandler(orders, carts, sessions)
	adminOrders := payement.NewAdminOrderHandler(orders)

	api := r.Group("/api")

	// Auth
	api.POST("/auth/register", middleware.RegisterRateLimit(), handlers.Register)
	api.POST("/auth/login", middleware.LoginRateLimit(), handlers.Login)
	api.GET("/auth/me", middleware.AuthRequired(), handlers.Me)

	// Catalogue (public)
	api.GET("/products", product.ListProducts)
	api.GET("/products/search", product.SearchProducts)
	api.GET("/products/:id", product.GetProduct)
	api.GET("/colors/normalize", product.NormalizeColor)
	api.GET("/shipping/options", payement.GetShippingOptions)

	// Newsletter (double opt-in, public)
	api.POST("/newsletter", handlers.SubscribeNewsletter)
	api.GET("/newsletter/verify", handlers.VerifyNewsletter)

	// Webhook Stripe (signé, pas de JWT)
	api.POST("/payment/webhook", webhookHandler.StripeWebhook)

	// Espace connecté
	auth := api.Group("")
	auth.Use(middleware.AuthRequired())
	{
		// Carnet d'adresses
		auth.GET("/addresses", user.ListAddresses)
		auth.POST("/addresses", user.CreateAddress)
		auth.PUT("/addresses/:id", user.UpdateAddress)
		auth.DELETE("/addresses/:id", user.DeleteAddress)

		// Panier
		auth.GET("/cart", cartHandler.GetCart)
		auth.POST("/cart", middleware.CartRateLimit(), cartHandler.AddToCart)
		auth.PATCH("/cart/:index", cartHandler.UpdateQuantity)
		auth.DELETE("/cart/:index", cartHandler.RemoveFromCart)
		auth.DELETE("/cart", cartHandler.ClearCart)

		// Liste d'envies
		auth.GET("/wishlist", user.GetWishlist)
		auth.POST("/wishlist", user.AddToWishlist)
		auth.DELETE("/wishlist/:productId", user.RemoveFromWishlist)

		// Tunnel de commande
		auth.GET("/checkout", checkoutHandler.GetCheckout)
		auth.POST("/checkout/start", checkoutHandler.StartCheckout)
		auth.POST("/checkout/address", checkoutHandler.SelectAddress)
		auth.POST("/checkout/shipping", checkoutHandler.SelectShipping)
		auth.POST("/checkout/continue", checkoutHandler.Continue)
		auth.POST("/checkout/back", checkoutHandler.Back)
		auth.POST("/checkout/pay", checkoutHandler.Pay)

		// Paiement direct (Stripe.js)
		auth.POST("/payment/create-intent", payement.CreatePaymentIntent)

		// Commandes
		auth.POST("/orders", orderHandler.CreateOrder)
		auth.GET("/orders/my", orderHandler.GetMyOrders)
		auth.GET("/orders/:id", orderHandler.GetOrderByID)
	}

	// Back-office
	admin := api.Group("/admin")
	admin.Use(middleware.AuthRequired(), middleware.RequireAdmin)
	{
		admin.POST("/products", product.CreateProduct)
		admin.PUT("/products/:id", product.UpdateProduct)
		admin.DELETE("/products/:id", product.DeleteProduct)
		admin.POST("/products/images", product.UploadProductImage)

		admin.GET("/users", user.ListUsers)
		admin.GET("/users/:id", user.GetUserDetail)

		admin.GET("/orders", adminOrders.ListAllOrders)
		admin.PATCH("/orders/:id/status", adminOrders.UpdateOrderStatus)
	}
}

func corsMiddleware() gin.HandlerFunc {
	origins := []string{"http://localhost:3000"}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		origins = strings.Split(env, ",")
	}

	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Stripe-Signature"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}
