package store

import "velora_back_end/internal/models"

// Graphe des transitions de statut autorisées pour une commande.
// processing → shipped → delivered, annulation possible depuis tout
// état non terminal. Aucune chaîne libre acceptée.
var allowedTransitions = map[string][]string{
	models.OrderStatusProcessing: {models.OrderStatusShipped, models.OrderStatusCancelled},
	models.OrderStatusShipped:    {models.OrderStatusDelivered, models.OrderStatusCancelled},
	models.OrderStatusDelivered:  {},
	models.OrderStatusCancelled:  {},
}

// ValidStatus indique si la valeur appartient à l'énumération
func ValidStatus(status string) bool {
	_, ok := allowedTransitions[status]
	return ok
}

// CanTransition indique si le passage from → to est autorisé
func CanTransition(from, to string) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
