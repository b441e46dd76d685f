package user

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"velora_back_end/internal/models"
	"velora_back_end/internal/store"
	"velora_back_end/internal/utils"
)

type OrderHandler struct {
	Orders *store.OrderStore
}

func NewOrderHandler(orders *store.OrderStore) *OrderHandler {
	return &OrderHandler{Orders: orders}
}

// 🟢 POST /api/orders — création directe (le client a déjà confirmé le
// paiement côté Stripe.js et fournit la référence du PaymentIntent)
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	var input struct {
		Items               []models.OrderItem `json:"items" binding:"required"`
		Subtotal            float64            `json:"subtotal"`
		ShippingPrice       float64            `json:"shippingPrice"`
		Currency            string             `json:"currency"`
		ShippingMethodID    string             `json:"shippingMethodId"`
		ShippingMethodLabel string             `json:"shippingMethodLabel"`
		ShippingAddress     models.Address     `json:"shippingAddress"`
		PaymentIntentID     string             `json:"paymentIntentId"`
	}

	if err := c.ShouldBindJSON(&input); err != nil || len(input.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Articles de commande requis"})
		return
	}

	order, err := h.Orders.Create(c.Request.Context(), store.OrderDraft{
		UserID:              userID,
		Items:               input.Items,
		Subtotal:            input.Subtotal,
		ShippingPrice:       input.ShippingPrice,
		Currency:            input.Currency,
		ShippingMethodID:    input.ShippingMethodID,
		ShippingMethodLabel: input.ShippingMethodLabel,
		ShippingAddress:     input.ShippingAddress,
		PaymentIntentID:     input.PaymentIntentID,
	})
	if err != nil {
		log.Printf("❌ Erreur création commande: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Création de commande impossible"})
		return
	}

	// Confirmation e-mail en arrière-plan, jamais bloquante
	if email := c.GetString("email"); email != "" {
		go sendOrderConfirmation(*order, email)
	}

	c.JSON(http.StatusCreated, gin.H{"order": order})
}

// 🟢 GET /api/orders/my
func (h *OrderHandler) GetMyOrders(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	orders, err := h.Orders.ListByUser(c.Request.Context(), userID)
	if err != nil {
		log.Println("❌ Erreur MongoDB Find:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération commandes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// 🟢 GET /api/orders/:id
func (h *OrderHandler) GetOrderByID(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	order, err := h.Orders.GetForUser(c.Request.Context(), c.Param("id"), userID)
	if errors.Is(err, store.ErrOrderNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération commande"})
		return
	}

	c.JSON(http.StatusOK, order)
}

func sendOrderConfirmation(order models.Order, email string) {
	html := utils.GenerateOrderConfirmationHTML(order, email)

	pdf, err := utils.GenerateInvoicePDF(order, email)
	if err != nil {
		log.Println("❌ Erreur génération PDF :", err)
		pdf = nil
	}

	if err := utils.SendConfirmationEmail(email, "Confirmation de votre commande Velora", html, pdf); err != nil {
		log.Println("❌ Erreur envoi e-mail confirmation :", err)
	} else {
		log.Println("📧 E-mail de confirmation envoyé à", email)
	}
}
