package user

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"velora_back_end/internal/database"
	"velora_back_end/internal/models"
)

const wishlistTTL = 90 * 24 * time.Hour

func wishlistKey(userID string) string {
	return "wishlist:" + userID
}

func loadWishlist(ctx context.Context, userID string) []models.WishlistItem {
	data, err := database.Redis.Get(ctx, wishlistKey(userID)).Result()
	if err != nil || data == "" {
		return []models.WishlistItem{}
	}
	var items []models.WishlistItem
	if json.Unmarshal([]byte(data), &items) != nil {
		return []models.WishlistItem{}
	}
	return items
}

func saveWishlist(ctx context.Context, userID string, items []models.WishlistItem) error {
	data, _ := json.Marshal(items)
	return database.Redis.Set(ctx, wishlistKey(userID), data, wishlistTTL).Err()
}

// 🟢 GET /api/wishlist
func GetWishlist(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": loadWishlist(c.Request.Context(), userID)})
}

// 🟢 POST /api/wishlist
func AddToWishlist(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	var input models.WishlistItem
	if err := c.ShouldBindJSON(&input); err != nil || input.ProductID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	ctx := c.Request.Context()
	items := loadWishlist(ctx, userID)

	for _, it := range items {
		if it.ProductID == input.ProductID {
			c.JSON(http.StatusOK, gin.H{"items": items}) // déjà présent
			return
		}
	}

	items = append(items, input)
	if err := saveWishlist(ctx, userID, items); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur sauvegarde wishlist"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// ❌ DELETE /api/wishlist/:productId
func RemoveFromWishlist(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	productID := c.Param("productId")
	ctx := c.Request.Context()

	items := loadWishlist(ctx, userID)
	kept := make([]models.WishlistItem, 0, len(items))
	for _, it := range items {
		if it.ProductID != productID {
			kept = append(kept, it)
		}
	}

	if err := saveWishlist(ctx, userID, kept); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur sauvegarde wishlist"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": kept})
}
