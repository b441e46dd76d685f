package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Statuts de commande : énumération fermée, avancée uniquement par un admin
const (
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// OrderItem : snapshot immuable d'une ligne de panier au moment de la commande.
// Indépendant des éditions/suppressions ultérieures du catalogue.
type OrderItem struct {
	ProductID    string  `json:"productId" bson:"productId"`
	Name         string  `json:"name" bson:"name"`
	Price        float64 `json:"price" bson:"price"`
	Quantity     int     `json:"quantity" bson:"quantity"`
	Image        string  `json:"image" bson:"image"`
	Color        string  `json:"color" bson:"color"`
	ColorName    string  `json:"colorName" bson:"colorName"`
	Size         string  `json:"size" bson:"size"`
	Category     string  `json:"category" bson:"category"`
	CategorySlug string  `json:"categorySlug" bson:"categorySlug"`
	CategoryName string  `json:"categoryName" bson:"categoryName"`
}

type Order struct {
	ID                   primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	UserID               string             `json:"user" bson:"user"`
	Items                []OrderItem        `json:"items" bson:"items"`
	Subtotal             float64            `json:"subtotal" bson:"subtotal"`
	ShippingPrice        float64            `json:"shippingPrice" bson:"shippingPrice"`
	Total                float64            `json:"total" bson:"total"`
	Currency             string             `json:"currency" bson:"currency"`
	ShippingMethodID     string             `json:"shippingMethodId" bson:"shippingMethodId"`
	ShippingMethodLabel  string             `json:"shippingMethodLabel" bson:"shippingMethodLabel"`
	DeliveryEstimateText string             `json:"deliveryEstimateText" bson:"deliveryEstimateText"`
	ShippingAddress      Address            `json:"shippingAddress" bson:"shippingAddress"`
	PaymentStatus        string             `json:"paymentStatus" bson:"paymentStatus"`
	PaymentIntentID      string             `json:"paymentIntentId" bson:"paymentIntentId"`
	Status               string             `json:"status" bson:"status"`
	CreatedAt            time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt            time.Time          `json:"updatedAt" bson:"updatedAt"`
}
