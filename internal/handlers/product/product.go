package product

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"velora_back_end/internal/database"
	"velora_back_end/internal/models"
	"velora_back_end/internal/service"
	"velora_back_end/internal/utils"
)

// 🟢 GET /api/products
// Filtrage linéaire simple : category, subcategory, type, sale, search
func ListProducts(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	filter := bson.M{}
	if v := c.Query("category"); v != "" {
		filter["category"] = v
	}
	if v := c.Query("subcategory"); v != "" {
		filter["subcategory"] = v
	}
	if v := c.Query("type"); v != "" {
		filter["type"] = v
	}
	if c.Query("sale") == "true" {
		filter["isSale"] = true
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := database.Products().Find(ctx, filter, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur décodage produits"})
		return
	}

	// Recherche texte : filtre linéaire sur nom/description
	if q := strings.ToLower(strings.TrimSpace(c.Query("search"))); q != "" {
		matched := products[:0]
		for _, p := range products {
			if strings.Contains(strings.ToLower(p.Name), q) ||
				strings.Contains(strings.ToLower(p.Description), q) {
				matched = append(matched, p)
			}
		}
		products = matched
	}

	c.JSON(http.StatusOK, gin.H{"products": products})
}

// 🟢 GET /api/products/:id
func GetProduct(c *gin.Context) {
	oid, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	var product models.Product
	err = database.Products().FindOne(ctx, bson.M{"_id": oid}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	c.JSON(http.StatusOK, product)
}

// 🟢 GET /api/products/search?q=
// Recherche Elasticsearch, repli sur le filtre linéaire Mongo si absent
func SearchProducts(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Paramètre q requis"})
		return
	}

	if database.Elastic != nil {
		results, err := service.SearchProducts(q)
		if err == nil {
			c.JSON(http.StatusOK, gin.H{"results": results})
			return
		}
	}

	c.Request.URL.RawQuery = fallbackQuery(q)
	ListProducts(c)
}

// fallbackQuery reconstruit la query string du filtre linéaire en
// échappant le terme de recherche
func fallbackQuery(q string) string {
	return url.Values{"search": {q}}.Encode()
}

// 🟢 GET /api/colors/normalize?input=
// Normalisation couleur : hex affichable + libellé lisible
func NormalizeColor(c *gin.Context) {
	input := c.Query("input")
	if input == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Paramètre input requis"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"hex":   utils.NameToColor(input),
		"label": utils.ColorLabel(input),
	})
}
