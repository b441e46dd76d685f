package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NewsletterSubscriber : abonnement en double opt-in. Le token n'est
// valable que pour la dernière demande : re-souscrire le régénère.
type NewsletterSubscriber struct {
	ID        primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Email     string             `json:"email" bson:"email"`
	Token     string             `json:"-" bson:"token"`
	Verified  bool               `json:"verified" bson:"verified"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}
