package product

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"velora_back_end/internal/services"
)

const productImageBucket = "product-images"

// 📤 POST /api/admin/products/images (multipart, champ "image")
func UploadProductImage(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Fichier image manquant"})
		return
	}

	url, err := services.UploadFile(productImageBucket, fileHeader)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload impossible: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}
