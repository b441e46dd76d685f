package product

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"velora_back_end/internal/database"
	"velora_back_end/internal/models"
	"velora_back_end/internal/service"
)

//
// --- BACK-OFFICE PRODUITS (admin) ---
//

// 🟢 POST /api/admin/products
func CreateProduct(c *gin.Context) {
	var input models.Product
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides: " + err.Error()})
		return
	}
	if input.Name == "" || input.Category == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nom et catégorie requis"})
		return
	}
	if input.Price < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le prix de base doit être positif"})
		return
	}

	input.ID = primitive.NewObjectID()
	for i := range input.Variants {
		if input.Variants[i].ID.IsZero() {
			input.Variants[i].ID = primitive.NewObjectID()
		}
	}
	now := time.Now()
	input.CreatedAt = now
	input.UpdatedAt = now

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if _, err := database.Products().InsertOne(ctx, input); err != nil {
		log.Printf("❌ Erreur insertion produit: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Création produit impossible"})
		return
	}

	go service.IndexProduct(input)

	c.JSON(http.StatusCreated, gin.H{"message": "Produit créé", "product": input})
}

// 🟢 PUT /api/admin/products/:id
func UpdateProduct(c *gin.Context) {
	oid, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	var input models.Product
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	input.ID = oid
	for i := range input.Variants {
		if input.Variants[i].ID.IsZero() {
			input.Variants[i].ID = primitive.NewObjectID()
		}
	}
	input.UpdatedAt = time.Now()

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	res, err := database.Products().ReplaceOne(ctx, bson.M{"_id": oid}, input)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Mise à jour impossible"})
		return
	}
	if res.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	go service.IndexProduct(input)

	c.JSON(http.StatusOK, gin.H{"message": "Produit mis à jour", "product": input})
}

// ❌ DELETE /api/admin/products/:id
// Aucune cascade : les commandes gardent leur snapshot
func DeleteProduct(c *gin.Context) {
	oid, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	res, err := database.Products().DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Suppression impossible"})
		return
	}
	if res.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	go service.RemoveProduct(oid.Hex())

	c.JSON(http.StatusOK, gin.H{"message": "Produit supprimé"})
}
