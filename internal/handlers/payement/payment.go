package payement

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/paymentintent"
	"github.com/stripe/stripe-go/v83/webhook"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"velora_back_end/internal/cart"
	"velora_back_end/internal/checkout"
	"velora_back_end/internal/database"
	"velora_back_end/internal/models"
	"velora_back_end/internal/store"
	"velora_back_end/internal/utils"
)

// 🟢 POST /api/payment/create-intent
// Création directe d'un PaymentIntent pour le flux Stripe.js côté client.
// Le tunnel serveur (handlers.CheckoutHandler) passe par checkout.Processor.
func CreatePaymentIntent(c *gin.Context) {
	var input struct {
		Amount   int64  `json:"amount" binding:"required"`
		Currency string `json:"currency"`
		Name     string `json:"name"`
		Email    string `json:"email"`
	}

	if err := c.ShouldBindJSON(&input); err != nil || input.Amount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Montant invalide"})
		return
	}

	currency := strings.ToLower(input.Currency)
	if currency == "" {
		currency = "usd"
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(input.Amount),
		Currency: stripe.String(currency),
		Metadata: map[string]string{
			"user_id": c.GetString("user_id"),
			"email":   input.Email,
		},
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	if input.Name != "" {
		params.Description = stripe.String("Order for " + input.Name)
	}

	intent, err := paymentintent.New(params)
	if err != nil {
		log.Printf("❌ Erreur création PaymentIntent: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Création du paiement impossible"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"clientSecret":    intent.ClientSecret,
		"paymentIntentId": intent.ID,
	})
}

// WebhookHandler réconcilie les paiements confirmés côté Stripe avec les
// commandes : filet de sécurité quand la persistance synchrone a échoué.
type WebhookHandler struct {
	Orders   *store.OrderStore
	Carts    *cart.Service
	Sessions *checkout.SessionStore
}

func NewWebhookHandler(orders *store.OrderStore, carts *cart.Service, sessions *checkout.SessionStore) *WebhookHandler {
	return &WebhookHandler{Orders: orders, Carts: carts, Sessions: sessions}
}

// 🔁 POST /api/payment/webhook
func (h *WebhookHandler) StripeWebhook(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, 65536))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Lecture du corps impossible"})
		return
	}

	secret := os.Getenv("STRIPE_WEBHOOK_SECRET")
	event, err := webhook.ConstructEvent(payload, c.GetHeader("Stripe-Signature"), secret)
	if err != nil {
		log.Printf("⚠️ Signature webhook Stripe invalide: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Signature invalide"})
		return
	}

	if event.Type != "payment_intent.succeeded" {
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	var intent stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
		log.Printf("❌ Webhook: PaymentIntent illisible: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Événement illisible"})
		return
	}

	go h.reconcile(intent)

	c.JSON(http.StatusOK, gin.H{"received": true})
}

// reconcile recrée la commande depuis la session checkout encore en Redis.
// La déduplication sur paymentIntentId rend l'opération rejouable : si le
// chemin synchrone a déjà persisté, on retrouve la même commande.
func (h *WebhookHandler) reconcile(intent stripe.PaymentIntent) {
	userID := intent.Metadata["user_id"]
	if userID == "" {
		log.Printf("⚠️ Webhook %s sans user_id, réconciliation impossible", intent.ID)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	sess, err := h.Sessions.Load(ctx, userID)
	if err != nil || sess == nil {
		log.Printf("🔁 Webhook %s: session checkout absente, rien à réconcilier", intent.ID)
		return
	}

	items, err := h.Carts.Get(ctx, userID)
	if err != nil || len(items) == 0 {
		log.Printf("🔁 Webhook %s: panier vide ou illisible, rien à réconcilier", intent.ID)
		return
	}

	addr := lookupAddress(ctx, userID, sess.SelectedAddressID)

	order, err := h.Orders.Create(ctx, store.OrderDraft{
		UserID:              userID,
		Items:               checkout.SnapshotItems(items),
		Subtotal:            cart.Total(items),
		ShippingPrice:       sess.ShippingPrice,
		Currency:            sess.Currency,
		ShippingMethodID:    sess.ShippingMethodID,
		ShippingMethodLabel: sess.ShippingLabel,
		ShippingAddress:     addr,
		PaymentIntentID:     intent.ID,
	})
	if err != nil {
		log.Printf("❌ Webhook %s: réconciliation échouée: %v", intent.ID, err)
		return
	}

	if err := h.Carts.Clear(ctx, userID); err != nil {
		log.Printf("⚠️ Webhook %s: panier non vidé: %v", intent.ID, err)
	}
	if err := h.Sessions.Delete(ctx, userID); err != nil {
		log.Printf("⚠️ Webhook %s: session non supprimée: %v", intent.ID, err)
	}

	if email := intent.Metadata["email"]; email != "" {
		html := utils.GenerateOrderConfirmationHTML(*order, email)
		pdf, err := utils.GenerateInvoicePDF(*order, email)
		if err != nil {
			pdf = nil
		}
		if err := utils.SendConfirmationEmail(email, "Confirmation de votre commande Velora", html, pdf); err != nil {
			log.Println("❌ Erreur envoi e-mail confirmation :", err)
		}
	}

	log.Printf("✅ Webhook %s: commande %s réconciliée", intent.ID, order.ID.Hex())
}

// lookupAddress retrouve l'adresse sélectionnée dans le carnet de
// l'utilisateur. Adresse vide si introuvable : la commande reste créée.
func lookupAddress(ctx context.Context, userID, addressID string) models.Address {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return models.Address{}
	}

	var u models.User
	if err := database.Users().FindOne(ctx, bson.M{"_id": oid}).Decode(&u); err != nil {
		return models.Address{}
	}

	for _, a := range u.Addresses {
		if a.ID.Hex() == addressID {
			return a
		}
	}
	return models.Address{}
}
