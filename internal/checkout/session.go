// Package checkout orchestre le tunnel de commande en trois étapes :
// Adresse → Livraison → Paiement, linéaire, retour autorisé uniquement
// de Livraison vers Adresse. La confirmation de paiement réussie sort
// du tunnel : il n'y a pas d'étape "terminé".
package checkout

import "errors"

type Stage string

const (
	StageAddress  Stage = "address"
	StageDelivery Stage = "delivery"
	StagePayment  Stage = "payment"
)

var (
	ErrNoAddressSelected  = errors.New("aucune adresse sélectionnée")
	ErrNoShippingSelected = errors.New("aucune méthode de livraison sélectionnée")
	ErrUnknownShipping    = errors.New("méthode de livraison inconnue")
	ErrWrongStage         = errors.New("transition d'étape non autorisée")
)

// Session : état du tunnel pour un utilisateur. Sérialisée en JSON dans
// Redis entre deux requêtes.
type Session struct {
	UserID            string  `json:"userId"`
	Stage             Stage   `json:"stage"`
	SelectedAddressID string  `json:"selectedAddressId"`
	ShippingMethodID  string  `json:"shippingMethodId"`
	ShippingLabel     string  `json:"shippingLabel"`
	ShippingPrice     float64 `json:"shippingPrice"`
	Currency          string  `json:"currency"`
}

func NewSession(userID, currency string) *Session {
	if currency == "" {
		currency = "usd"
	}
	return &Session{
		UserID:   userID,
		Stage:    StageAddress,
		Currency: currency,
	}
}

// SelectAddress mémorise l'adresse choisie. Changer d'adresse ne modifie
// aucun total déjà calculé.
func (s *Session) SelectAddress(addressID string) error {
	if addressID == "" {
		return ErrNoAddressSelected
	}
	s.SelectedAddressID = addressID
	return nil
}

// ContinueToDelivery avance vers le choix de livraison.
// Refusé tant qu'aucune adresse n'est sélectionnée.
func (s *Session) ContinueToDelivery() error {
	if s.Stage != StageAddress {
		return ErrWrongStage
	}
	if s.SelectedAddressID == "" {
		return ErrNoAddressSelected
	}
	s.Stage = StageDelivery
	return nil
}

// BackToAddress : seul retour autorisé, ré-entrant (sélections conservées)
func (s *Session) BackToAddress() error {
	if s.Stage != StageDelivery {
		return ErrWrongStage
	}
	s.Stage = StageAddress
	return nil
}

// SelectShipping fixe la méthode et le prix de livraison pour le reste
// du flux
func (s *Session) SelectShipping(methodID string) error {
	if s.Stage != StageDelivery {
		return ErrWrongStage
	}
	opt, ok := ShippingOptionByID(methodID)
	if !ok {
		return ErrUnknownShipping
	}
	s.ShippingMethodID = opt.ID
	s.ShippingLabel = opt.Label
	s.ShippingPrice = opt.Price
	return nil
}

// ContinueToPayment avance vers le paiement
func (s *Session) ContinueToPayment() error {
	if s.Stage != StageDelivery {
		return ErrWrongStage
	}
	if s.ShippingMethodID == "" {
		return ErrNoShippingSelected
	}
	s.Stage = StagePayment
	return nil
}

// GrandTotal : sous-total + livraison. La livraison compte pour 0 tant
// qu'on est à l'étape adresse ("calculée à l'étape suivante").
func (s *Session) GrandTotal(subtotal float64) float64 {
	if s.Stage == StageAddress {
		return subtotal
	}
	return subtotal + s.ShippingPrice
}
