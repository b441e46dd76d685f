package user

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"velora_back_end/internal/database"
	"velora_back_end/internal/models"
)

//
// --- HANDLERS ADRESSES ---
//
// Les adresses sont embarquées dans le document utilisateur : poser un
// flag par défaut et retirer celui des autres adresses se fait en une
// seule écriture du tableau complet, donc atomiquement.
//

func loadUser(ctx context.Context, userID string) (*models.User, primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, primitive.NilObjectID, err
	}
	var u models.User
	if err := database.Users().FindOne(ctx, bson.M{"_id": oid}).Decode(&u); err != nil {
		return nil, primitive.NilObjectID, err
	}
	return &u, oid, nil
}

func saveAddresses(ctx context.Context, oid primitive.ObjectID, addresses []models.Address) error {
	_, err := database.Users().UpdateByID(ctx, oid, bson.M{"$set": bson.M{"addresses": addresses}})
	return err
}

// clearDefaults retire les flags des autres adresses quand une nouvelle
// adresse les prend. Au plus un defaultDelivery et un defaultBilling.
func clearDefaults(addresses []models.Address, takesDelivery, takesBilling bool) {
	for i := range addresses {
		if takesDelivery {
			addresses[i].DefaultDelivery = false
		}
		if takesBilling {
			addresses[i].DefaultBilling = false
		}
	}
}

// 🟢 GET /api/addresses
func ListAddresses(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	u, _, err := loadUser(ctx, userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur introuvable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"addresses": u.Addresses})
}

// 🟢 POST /api/addresses
func CreateAddress(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	var input models.Address
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	u, oid, err := loadUser(ctx, userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur introuvable"})
		return
	}

	input.ID = primitive.NewObjectID()

	// La première adresse devient livraison ET facturation par défaut
	if len(u.Addresses) == 0 {
		input.DefaultDelivery = true
		input.DefaultBilling = true
	}

	clearDefaults(u.Addresses, input.DefaultDelivery, input.DefaultBilling)
	u.Addresses = append(u.Addresses, input)

	if err := saveAddresses(ctx, oid, u.Addresses); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Impossible d'ajouter l'adresse"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"addresses": u.Addresses})
}

// 🟢 PUT /api/addresses/:id
func UpdateAddress(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	addressID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID invalide"})
		return
	}

	var input models.Address
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	u, oid, err := loadUser(ctx, userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur introuvable"})
		return
	}

	idx := -1
	for i := range u.Addresses {
		if u.Addresses[i].ID == addressID {
			idx = i
			break
		}
	}
	if idx < 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Adresse non trouvée"})
		return
	}

	if input.DefaultDelivery || input.DefaultBilling {
		clearDefaults(u.Addresses, input.DefaultDelivery, input.DefaultBilling)
	}

	input.ID = addressID
	u.Addresses[idx] = input

	if err := saveAddresses(ctx, oid, u.Addresses); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Impossible de mettre à jour l'adresse"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"addresses": u.Addresses})
}

// 🟢 DELETE /api/addresses/:id
func DeleteAddress(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	addressID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID invalide"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	u, oid, err := loadUser(ctx, userID)
	if errors.Is(err, mongo.ErrNoDocuments) || err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur introuvable"})
		return
	}

	kept := make([]models.Address, 0, len(u.Addresses))
	found := false
	for _, a := range u.Addresses {
		if a.ID == addressID {
			found = true
			continue
		}
		kept = append(kept, a)
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Adresse non trouvée"})
		return
	}

	if err := saveAddresses(ctx, oid, kept); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Suppression impossible"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"addresses": kept})
}
