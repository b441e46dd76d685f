// Package store persiste les commandes dans MongoDB.
package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"velora_back_end/internal/models"
)

var (
	ErrOrderNotFound     = errors.New("commande introuvable")
	ErrInvalidStatus     = errors.New("statut de commande invalide")
	ErrInvalidTransition = errors.New("transition de statut non autorisée")
)

// OrderDraft : données nécessaires à la création d'une commande.
// Le total et le texte d'estimation de livraison sont calculés ici.
type OrderDraft struct {
	UserID              string
	Items               []models.OrderItem
	Subtotal            float64
	ShippingPrice       float64
	Currency            string
	ShippingMethodID    string
	ShippingMethodLabel string
	ShippingAddress     models.Address
	PaymentIntentID     string
}

type OrderStore struct {
	Col *mongo.Collection
}

func NewOrderStore(col *mongo.Collection) *OrderStore {
	return &OrderStore{Col: col}
}

// DeliveryEstimateText : texte d'estimation dérivé uniquement de la
// méthode de livraison. Un id inconnu retombe sur le texte générique,
// jamais une erreur.
func DeliveryEstimateText(methodID string) string {
	switch methodID {
	case "standard":
		return "Delivers in 3-5 business days"
	case "premium":
		return "Delivers in 2-3 business days"
	case "nextday":
		return "Delivers in 1-2 business days"
	default:
		return "Delivery time not specified"
	}
}

// Create persiste la commande. La création n'arrive qu'après confirmation
// de paiement : paymentStatus démarre à "paid", status à "processing".
// Déduplication sur paymentIntentId : un double submit retourne la
// commande déjà enregistrée au lieu d'en créer une seconde.
func (s *OrderStore) Create(ctx context.Context, draft OrderDraft) (*models.Order, error) {
	if len(draft.Items) == 0 {
		return nil, errors.New("commande sans articles")
	}

	if draft.PaymentIntentID != "" {
		var existing models.Order
		err := s.Col.FindOne(ctx, bson.M{"paymentIntentId": draft.PaymentIntentID}).Decode(&existing)
		if err == nil {
			log.Printf("🔁 Commande déjà enregistrée pour %s, on ignore", draft.PaymentIntentID)
			return &existing, nil
		}
		if !errors.Is(err, mongo.ErrNoDocuments) {
			return nil, err
		}
	}

	currency := draft.Currency
	if currency == "" {
		currency = "usd"
	}

	now := time.Now()
	order := models.Order{
		ID:                   primitive.NewObjectID(),
		UserID:               draft.UserID,
		Items:                draft.Items,
		Subtotal:             draft.Subtotal,
		ShippingPrice:        draft.ShippingPrice,
		Total:                draft.Subtotal + draft.ShippingPrice,
		Currency:             currency,
		ShippingMethodID:     draft.ShippingMethodID,
		ShippingMethodLabel:  draft.ShippingMethodLabel,
		DeliveryEstimateText: DeliveryEstimateText(draft.ShippingMethodID),
		ShippingAddress:      draft.ShippingAddress,
		PaymentStatus:        "paid",
		PaymentIntentID:      draft.PaymentIntentID,
		Status:               models.OrderStatusProcessing,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	if _, err := s.Col.InsertOne(ctx, order); err != nil {
		return nil, fmt.Errorf("insertion commande: %w", err)
	}

	return &order, nil
}

// ListByUser retourne les commandes d'un utilisateur, plus récentes d'abord
func (s *OrderStore) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := s.Col.Find(ctx, bson.M{"user": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// GetForUser retourne une commande si elle appartient bien à l'utilisateur
func (s *OrderStore) GetForUser(ctx context.Context, orderID, userID string) (*models.Order, error) {
	oid, err := primitive.ObjectIDFromHex(orderID)
	if err != nil {
		return nil, ErrOrderNotFound
	}

	var order models.Order
	err = s.Col.FindOne(ctx, bson.M{"_id": oid, "user": userID}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// ListAll retourne toutes les commandes (back-office admin)
func (s *OrderStore) ListAll(ctx context.Context) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := s.Col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateStatus fait avancer le statut d'une commande (action admin).
// Seules les transitions du graphe sont acceptées.
func (s *OrderStore) UpdateStatus(ctx context.Context, orderID, newStatus string) (*models.Order, error) {
	if !ValidStatus(newStatus) {
		return nil, ErrInvalidStatus
	}

	oid, err := primitive.ObjectIDFromHex(orderID)
	if err != nil {
		return nil, ErrOrderNotFound
	}

	var order models.Order
	err = s.Col.FindOne(ctx, bson.M{"_id": oid}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	if !CanTransition(order.Status, newStatus) {
		return nil, ErrInvalidTransition
	}

	update := bson.M{"$set": bson.M{"status": newStatus, "updatedAt": time.Now()}}
	if _, err := s.Col.UpdateByID(ctx, oid, update); err != nil {
		return nil, err
	}

	order.Status = newStatus
	return &order, nil
}
