package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Size : taille au sein d'une variante (ex: "S", "500g")
// Price = 0 signifie "pas de prix spécifique" → on retombe sur le prix de base
type Size struct {
	Size     string  `json:"size" bson:"size"`
	InStock  bool    `json:"inStock" bson:"inStock"`
	Quantity int     `json:"quantity" bson:"quantity"`
	Price    float64 `json:"price" bson:"price"`
}

// Variant : déclinaison couleur d'un produit, avec ses propres images et tailles
type Variant struct {
	ID     primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Color  string             `json:"color" bson:"color"`
	Images []string           `json:"images" bson:"images"`
	Sizes  []Size             `json:"sizes" bson:"sizes"`
}

type Product struct {
	ID          primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Description string             `json:"description" bson:"description"`
	Price       float64            `json:"price" bson:"price"` // prix de base (fallback si size.Price = 0)
	Image       string             `json:"image,omitempty" bson:"image,omitempty"`
	Category    string             `json:"category" bson:"category"`
	Subcategory string             `json:"subcategory,omitempty" bson:"subcategory,omitempty"`
	Type        string             `json:"type,omitempty" bson:"type,omitempty"`
	IsSale      bool               `json:"isSale" bson:"isSale"`
	Variants    []Variant          `json:"variants" bson:"variants"`
	CreatedAt   time.Time          `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
	UpdatedAt   time.Time          `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

// FindVariant retourne la variante correspondant à l'ID (hex), sinon à la couleur
func (p *Product) FindVariant(variantID, color string) *Variant {
	for i := range p.Variants {
		if variantID != "" && p.Variants[i].ID.Hex() == variantID {
			return &p.Variants[i]
		}
	}
	for i := range p.Variants {
		if p.Variants[i].Color == color {
			return &p.Variants[i]
		}
	}
	return nil
}

// FindSize retourne la taille demandée dans une variante, nil si absente
func (v *Variant) FindSize(size string) *Size {
	if v == nil {
		return nil
	}
	for i := range v.Sizes {
		if v.Sizes[i].Size == size {
			return &v.Sizes[i]
		}
	}
	return nil
}
