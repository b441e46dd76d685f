package checkout

import "velora_back_end/internal/models"

// Méthodes de livraison proposées au checkout. Ensemble fixe :
// la sélection d'une méthode fige shippingPrice pour le reste du flux.
var shippingOptions = []models.ShippingOption{
	{ID: "standard", Label: "Standard", Description: "Delivery in 3-5 business days", Price: 5},
	{ID: "premium", Label: "Premium", Description: "Delivery in 2-3 business days", Price: 10},
	{ID: "nextday", Label: "Next Day", Description: "Delivery in 1-2 business days", Price: 15},
}

// ShippingOptions retourne les méthodes de livraison disponibles
func ShippingOptions() []models.ShippingOption {
	out := make([]models.ShippingOption, len(shippingOptions))
	copy(out, shippingOptions)
	return out
}

// ShippingOptionByID retourne la méthode correspondante, false si inconnue
func ShippingOptionByID(id string) (models.ShippingOption, bool) {
	for _, opt := range shippingOptions {
		if opt.ID == id {
			return opt, true
		}
	}
	return models.ShippingOption{}, false
}
