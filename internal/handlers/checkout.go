package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"velora_back_end/internal/cart"
	"velora_back_end/internal/checkout"
	"velora_back_end/internal/database"
	"velora_back_end/internal/models"
	"velora_back_end/internal/utils"
)

// CheckoutHandler expose le tunnel Adresse → Livraison → Paiement.
// Tout l'état vit dans la session Redis, la requête ne porte que l'action.
type CheckoutHandler struct {
	Sessions  *checkout.SessionStore
	Carts     *cart.Service
	Processor *checkout.Processor
}

func NewCheckoutHandler(sessions *checkout.SessionStore, carts *cart.Service, processor *checkout.Processor) *CheckoutHandler {
	return &CheckoutHandler{Sessions: sessions, Carts: carts, Processor: processor}
}

// session charge la session en cours ou en crée une à l'étape adresse
func (h *CheckoutHandler) session(c *gin.Context, userID string) (*checkout.Session, error) {
	sess, err := h.Sessions.Load(c.Request.Context(), userID)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		sess = checkout.NewSession(userID, "usd")
	}
	return sess, nil
}

func (h *CheckoutHandler) respond(c *gin.Context, sess *checkout.Session) {
	items, err := h.Carts.Get(c.Request.Context(), sess.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture panier"})
		return
	}

	subtotal := cart.Total(items)
	c.JSON(http.StatusOK, gin.H{
		"stage":             sess.Stage,
		"selectedAddressId": sess.SelectedAddressID,
		"shippingMethodId":  sess.ShippingMethodID,
		"shippingLabel":     sess.ShippingLabel,
		"shippingPrice":     sess.ShippingPrice,
		"currency":          sess.Currency,
		"subtotal":          subtotal,
		"total":             sess.GrandTotal(subtotal),
		"items":             items,
	})
}

// 🟢 GET /api/checkout
func (h *CheckoutHandler) GetCheckout(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	sess, err := h.session(c, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture session"})
		return
	}
	h.respond(c, sess)
}

// 🟢 POST /api/checkout/start
func (h *CheckoutHandler) StartCheckout(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	items, err := h.Carts.Get(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture panier"})
		return
	}
	if len(items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le panier est vide"})
		return
	}

	var input struct {
		Currency string `json:"currency"`
	}
	_ = c.ShouldBindJSON(&input)

	sess := checkout.NewSession(userID, input.Currency)
	if err := h.Sessions.Save(c.Request.Context(), sess); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur sauvegarde session"})
		return
	}
	h.respond(c, sess)
}

// 🟢 POST /api/checkout/address
func (h *CheckoutHandler) SelectAddress(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	var input struct {
		AddressID string `json:"addressId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "addressId requis"})
		return
	}

	if _, ok := h.findAddress(c, userID, input.AddressID); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Adresse introuvable dans votre carnet"})
		return
	}

	sess, err := h.session(c, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture session"})
		return
	}
	if err := sess.SelectAddress(input.AddressID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.Sessions.Save(c.Request.Context(), sess); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur sauvegarde session"})
		return
	}
	h.respond(c, sess)
}

// 🟢 POST /api/checkout/continue — avance d'une étape
func (h *CheckoutHandler) Continue(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	sess, err := h.session(c, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture session"})
		return
	}

	switch sess.Stage {
	case checkout.StageAddress:
		err = sess.ContinueToDelivery()
	case checkout.StageDelivery:
		err = sess.ContinueToPayment()
	default:
		err = checkout.ErrWrongStage
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Sessions.Save(c.Request.Context(), sess); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur sauvegarde session"})
		return
	}
	h.respond(c, sess)
}

// 🟢 POST /api/checkout/back — retour Livraison → Adresse uniquement
func (h *CheckoutHandler) Back(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	sess, err := h.session(c, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture session"})
		return
	}
	if err := sess.BackToAddress(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.Sessions.Save(c.Request.Context(), sess); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur sauvegarde session"})
		return
	}
	h.respond(c, sess)
}

// 🟢 POST /api/checkout/shipping
func (h *CheckoutHandler) SelectShipping(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	var input struct {
		MethodID string `json:"methodId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "methodId requis"})
		return
	}

	sess, err := h.session(c, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture session"})
		return
	}
	if err := sess.SelectShipping(input.MethodID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.Sessions.Save(c.Request.Context(), sess); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur sauvegarde session"})
		return
	}
	h.respond(c, sess)
}

// 🟢 POST /api/checkout/pay
// Un paiement réussi vide le panier et clôt la session, même si la
// persistance de la commande a échoué : le client est redirigé vers ses
// commandes dans tous les cas (le paiement a bien eu lieu).
func (h *CheckoutHandler) Pay(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	var input struct {
		PaymentMethodID string `json:"paymentMethodId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "paymentMethodId requis"})
		return
	}

	sess, err := h.session(c, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture session"})
		return
	}

	addr, ok := h.findAddress(c, userID, sess.SelectedAddressID)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Adresse de livraison introuvable"})
		return
	}

	items, err := h.Carts.Get(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture panier"})
		return
	}

	result, err := h.Processor.Pay(c.Request.Context(), sess, items, addr, c.GetString("email"), checkout.CardDetails{
		PaymentMethodID: input.PaymentMethodID,
	})
	switch {
	case errors.Is(err, checkout.ErrPaymentInFlight):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	case errors.Is(err, checkout.ErrPaymentNotInStep), errors.Is(err, checkout.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case err != nil:
		// échec de paiement : la session reste à l'étape paiement
		c.JSON(http.StatusPaymentRequired, gin.H{"error": err.Error()})
		return
	}

	if err := h.Carts.Clear(c.Request.Context(), userID); err != nil {
		log.Println("⚠️ Panier non vidé après paiement:", err)
	}
	if err := h.Sessions.Delete(c.Request.Context(), userID); err != nil {
		log.Println("⚠️ Session checkout non supprimée:", err)
	}

	if result.OrderPersisted {
		if email := c.GetString("email"); email != "" {
			order := *result.Order
			go func() {
				html := utils.GenerateOrderConfirmationHTML(order, email)
				pdf, err := utils.GenerateInvoicePDF(order, email)
				if err != nil {
					log.Println("❌ Erreur génération PDF :", err)
					pdf = nil
				}
				if err := utils.SendConfirmationEmail(email, "Confirmation de votre commande Velora", html, pdf); err != nil {
					log.Println("❌ Erreur envoi e-mail confirmation :", err)
				}
			}()
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"paymentIntentId": result.PaymentIntentID,
		"total":           result.GrandTotal,
		"order":           result.Order,
		"orderPersisted":  result.OrderPersisted,
		"redirect":        "/orders",
	})
}

// findAddress cherche l'adresse dans le carnet de l'utilisateur
func (h *CheckoutHandler) findAddress(c *gin.Context, userID, addressID string) (models.Address, bool) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return models.Address{}, false
	}

	var u models.User
	if err := database.Users().FindOne(c.Request.Context(), bson.M{"_id": oid}).Decode(&u); err != nil {
		return models.Address{}, false
	}

	for _, a := range u.Addresses {
		if a.ID.Hex() == addressID {
			return a, true
		}
	}
	return models.Address{}, false
}
