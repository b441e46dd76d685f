package payement

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"velora_back_end/internal/checkout"
)

// 🟢 GET /api/shipping/options
func GetShippingOptions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"options": checkout.ShippingOptions()})
}
