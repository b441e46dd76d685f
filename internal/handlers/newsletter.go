package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"velora_back_end/internal/database"
	"velora_back_end/internal/utils"
)

//
// --- NEWSLETTER (double opt-in) ---
//

// 🟢 POST /api/newsletter
// Upsert de l'abonné avec un token frais, puis e-mail de vérification.
// Re-souscrire régénère le token et repasse verified à false.
func SubscribeNewsletter(c *gin.Context) {
	var input struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Adresse e-mail invalide"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	token := uuid.NewString()

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"email":     email,
		"token":     token,
		"verified":  false,
		"updatedAt": time.Now(),
	}}
	opts := options.Update().SetUpsert(true)
	if _, err := database.Newsletter().UpdateOne(ctx, bson.M{"email": email}, update, opts); err != nil {
		log.Println("❌ Erreur upsert newsletter:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Inscription impossible"})
		return
	}

	go sendNewsletterVerification(email, token)

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// 🟢 GET /api/newsletter/verify?token=
// Un token valide confirme l'abonnement et redirige vers la boutique.
func VerifyNewsletter(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Token manquant"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	res := database.Newsletter().FindOneAndUpdate(ctx, bson.M{"token": token},
		bson.M{"$set": bson.M{"verified": true, "updatedAt": time.Now()}})
	if err := res.Err(); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Token invalide ou expiré"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur vérification"})
		return
	}

	shop := os.Getenv("COMPANY_URL")
	if shop == "" {
		shop = "http://localhost:3000"
	}
	c.Redirect(http.StatusFound, shop+"?verified=true")
}

func sendNewsletterVerification(email, token string) {
	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	verifyURL := fmt.Sprintf("%s/api/newsletter/verify?token=%s", baseURL, token)

	html := fmt.Sprintf(`
<div style="font-family:sans-serif;">
	<h2>Bonjour,</h2>
	<p>Cliquez sur le bouton ci-dessous pour confirmer votre adresse e-mail.</p>
	<p>
		<a href="%s" style="display:inline-block;margin:16px 0;padding:10px 18px;background:#3176d6;color:#fff;text-decoration:none;border-radius:4px;">Confirmer mon adresse</a>
	</p>
	<p>Si le bouton ne fonctionne pas, copiez-collez ce lien :<br>
		<a href="%s">%s</a>
	</p>
	<p>Si vous n'êtes pas à l'origine de cette demande, ignorez cet e-mail.<br>
	Merci,<br>
	L'équipe Velora</p>
</div>`, verifyURL, verifyURL, verifyURL)

	if err := utils.SendConfirmationEmail(email, "Confirmez votre adresse e-mail", html, nil); err != nil {
		log.Println("❌ Erreur envoi e-mail newsletter :", err)
	}
}
