package user

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"velora_back_end/internal/cart"
	"velora_back_end/internal/database"
	"velora_back_end/internal/models"
)

// CartHandler : le service panier est injecté explicitement, pas de
// singleton ambiant
type CartHandler struct {
	Carts *cart.Service
}

func NewCartHandler(carts *cart.Service) *CartHandler {
	return &CartHandler{Carts: carts}
}

// 🟢 GET /api/cart
func (h *CartHandler) GetCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	items, err := h.Carts.Get(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture panier"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"total": cart.Total(items),
	})
}

// 🟢 POST /api/cart
func (h *CartHandler) AddToCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Connectez-vous pour ajouter des articles au panier"})
		return
	}

	var input struct {
		ProductID     string   `json:"productId" binding:"required"`
		Color         string   `json:"color"`
		Size          string   `json:"size"`
		Quantity      int      `json:"quantity"`
		VariantID     string   `json:"variantId"`
		PriceOverride *float64 `json:"priceOverride"`
		ColorLabel    string   `json:"colorLabel"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}
	if input.Quantity <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quantité invalide"})
		return
	}

	productID, err := primitive.ObjectIDFromHex(input.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	var product models.Product
	err = database.Products().FindOne(ctx, bson.M{"_id": productID}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	variant := product.FindVariant(input.VariantID, input.Color)

	items, err := h.Carts.AddLine(ctx, userID, cart.AddLineInput{
		Product:       &product,
		Variant:       variant,
		Color:         input.Color,
		Size:          input.Size,
		Quantity:      input.Quantity,
		PriceOverride: input.PriceOverride,
		ColorLabel:    input.ColorLabel,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// cartOpen : signal UI pour ouvrir le tiroir panier, pas une donnée panier
	c.JSON(http.StatusOK, gin.H{
		"message":  "Produit ajouté au panier",
		"items":    items,
		"total":    cart.Total(items),
		"cartOpen": true,
	})
}

// 🟢 PATCH /api/cart/:index
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Index invalide"})
		return
	}

	var input struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	items, err := h.Carts.SetQuantity(c.Request.Context(), userID, index, input.Quantity)
	if errors.Is(err, cart.ErrInvalidIndex) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Ligne de panier inexistante"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour panier"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items, "total": cart.Total(items)})
}

// ❌ DELETE /api/cart/:index
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Index invalide"})
		return
	}

	items, err := h.Carts.RemoveLine(c.Request.Context(), userID, index)
	if errors.Is(err, cart.ErrInvalidIndex) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Ligne de panier inexistante"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Produit supprimé du panier",
		"items":   items,
		"total":   cart.Total(items),
	})
}

// 🧹 DELETE /api/cart (déconnexion ou commande validée)
func (h *CartHandler) ClearCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	if err := h.Carts.Clear(c.Request.Context(), userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors du vidage du panier"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Panier vidé avec succès"})
}
