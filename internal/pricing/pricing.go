// Package pricing détermine le prix unitaire faisant foi pour un
// couple variante+taille. La conversion devise est un sujet d'affichage,
// jamais appliquée ici ni persistée.
package pricing

import (
	"math"

	"velora_back_end/internal/models"
)

// ResolvePrice retourne le prix de la taille si c'est un nombre fini
// strictement positif, sinon le prix de base du produit.
// Un prix de taille à 0 signifie "non défini", pas "article gratuit".
func ResolvePrice(product *models.Product, size *models.Size) float64 {
	if size != nil && isFinite(size.Price) && size.Price > 0 {
		return size.Price
	}
	if product == nil || !isFinite(product.Price) {
		return 0
	}
	return product.Price
}

// ResolveLinePrice calcule le prix candidat d'une ligne de panier :
// override explicite s'il est fourni, fini et strictement positif, sinon
// résolution par taille, sinon prix de base. Même règle que les tailles :
// 0 veut dire "non défini".
func ResolveLinePrice(override *float64, product *models.Product, size *models.Size) float64 {
	if override != nil && isFinite(*override) && *override > 0 {
		return *override
	}
	return ResolvePrice(product, size)
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
