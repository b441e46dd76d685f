package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Address : adresse embarquée dans le document utilisateur.
// Un seul defaultDelivery et un seul defaultBilling par utilisateur :
// poser un flag doit retirer le même flag sur toutes les autres adresses.
type Address struct {
	ID              primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	FirstName       string             `json:"firstName,omitempty" bson:"firstName,omitempty"`
	LastName        string             `json:"lastName,omitempty" bson:"lastName,omitempty"`
	FullName        string             `json:"fullName,omitempty" bson:"fullName,omitempty"`
	Street          string             `json:"street" bson:"street"`
	Apt             string             `json:"apt,omitempty" bson:"apt,omitempty"`
	City            string             `json:"city" bson:"city"`
	State           string             `json:"state,omitempty" bson:"state,omitempty"`
	PostalCode      string             `json:"postalCode" bson:"postalCode"`
	Country         string             `json:"country" bson:"country"`
	Phone           string             `json:"phone,omitempty" bson:"phone,omitempty"`
	DefaultDelivery bool               `json:"defaultDelivery" bson:"defaultDelivery"`
	DefaultBilling  bool               `json:"defaultBilling" bson:"defaultBilling"`
}

type User struct {
	ID        primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	FirstName string             `json:"firstName,omitempty" bson:"firstName,omitempty"`
	LastName  string             `json:"lastName,omitempty" bson:"lastName,omitempty"`
	Email     string             `json:"email" bson:"email"`
	Password  string             `json:"-" bson:"password"`
	Phone     string             `json:"phone,omitempty" bson:"phone,omitempty"`
	Addresses []Address          `json:"addresses" bson:"addresses"`
	Role      string             `json:"role" bson:"role"` // "user" ou "admin"
}
