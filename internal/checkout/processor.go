package checkout

import (
	"context"
	"errors"
	"log"
	"math"
	"strings"
	"sync"

	"velora_back_end/internal/cart"
	"velora_back_end/internal/models"
	"velora_back_end/internal/store"
)

var (
	ErrEmptyCart        = errors.New("panier vide")
	ErrPaymentInFlight  = errors.New("un paiement est déjà en cours pour cette session")
	ErrMissingAddress   = errors.New("adresse de livraison manquante")
	ErrPaymentFailed    = errors.New("le paiement a échoué")
	ErrPaymentNotInStep = errors.New("le tunnel n'est pas à l'étape paiement")
)

// Message réécrit quand Stripe refuse un paiement international faute
// d'adresse complète. La chaîne détectée vient telle quelle de Stripe.
const (
	exportComplianceSubstring = "export transactions require a customer name and address"
	exportComplianceMessage   = "Stripe needs customer name and full address for international payments. Please check your address and try again."
)

// PaymentHandle : référence opaque d'autorisation de paiement
type PaymentHandle struct {
	ID           string
	ClientSecret string
}

// CardDetails : jeton de moyen de paiement. Les données carte brutes ne
// transitent jamais par ce serveur.
type CardDetails struct {
	PaymentMethodID string
}

// Customer : charge utile client construite depuis l'adresse sélectionnée
type Customer struct {
	UserID  string
	Name    string
	Email   string
	Address models.Address
}

// PaymentClient : collaborateur paiement externe
type PaymentClient interface {
	CreateIntent(ctx context.Context, amountMinor int64, currency string, customer Customer) (PaymentHandle, error)
	Confirm(ctx context.Context, handle PaymentHandle, card CardDetails) error
}

// OrderCreator : persistance des commandes
type OrderCreator interface {
	Create(ctx context.Context, draft store.OrderDraft) (*models.Order, error)
}

// Processor exécute l'étape paiement. Une seule soumission concurrente
// par session : la seconde est rejetée tant que la première est en vol.
type Processor struct {
	Payments PaymentClient
	Orders   OrderCreator

	inflight sync.Map // userID → struct{}
}

func NewProcessor(payments PaymentClient, orders OrderCreator) *Processor {
	return &Processor{Payments: payments, Orders: orders}
}

// PayResult : issue d'une tentative de paiement
type PayResult struct {
	PaymentIntentID string
	Order           *models.Order
	OrderPersisted  bool
	GrandTotal      float64
}

// BuildCustomer construit la charge utile client depuis l'adresse
func BuildCustomer(addr models.Address, email string) Customer {
	name := strings.TrimSpace(addr.FirstName + " " + addr.LastName)
	if name == "" {
		name = addr.FullName
	}
	if name == "" {
		name = "Test Customer"
	}
	return Customer{Name: name, Email: email, Address: addr}
}

// Pay crée l'autorisation de paiement pour le total TTC converti en
// centimes, la confirme, puis persiste la commande. L'échec de la
// persistance APRÈS un paiement confirmé n'est pas fatal pour le client :
// il est journalisé pour reprise par un opérateur, jamais présenté comme
// un échec (le paiement a bien eu lieu).
func (p *Processor) Pay(
	ctx context.Context,
	sess *Session,
	items []models.CartItem,
	addr models.Address,
	email string,
	card CardDetails,
) (*PayResult, error) {
	if sess.Stage != StagePayment {
		return nil, ErrPaymentNotInStep
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}
	if addr.Street == "" && addr.FullName == "" && addr.FirstName == "" {
		return nil, ErrMissingAddress
	}

	if _, busy := p.inflight.LoadOrStore(sess.UserID, struct{}{}); busy {
		return nil, ErrPaymentInFlight
	}
	defer p.inflight.Delete(sess.UserID)

	subtotal := cart.Total(items)
	grandTotal := sess.GrandTotal(subtotal)
	amountMinor := int64(math.Round(grandTotal * 100))

	customer := BuildCustomer(addr, email)
	customer.UserID = sess.UserID

	handle, err := p.Payments.CreateIntent(ctx, amountMinor, sess.Currency, customer)
	if err != nil {
		// échec réseau/collaborateur : aucune transition, l'utilisateur peut réessayer
		return nil, err
	}

	if err := p.Payments.Confirm(ctx, handle, card); err != nil {
		return nil, rewritePaymentError(err)
	}

	// Paiement confirmé — la création de commande est best-effort
	result := &PayResult{PaymentIntentID: handle.ID, GrandTotal: grandTotal}

	draft := store.OrderDraft{
		UserID:              sess.UserID,
		Items:               SnapshotItems(items),
		Subtotal:            subtotal,
		ShippingPrice:       sess.ShippingPrice,
		Currency:            sess.Currency,
		ShippingMethodID:    sess.ShippingMethodID,
		ShippingMethodLabel: sess.ShippingLabel,
		ShippingAddress:     addr,
		PaymentIntentID:     handle.ID,
	}

	order, err := p.Orders.Create(ctx, draft)
	if err != nil {
		log.Printf("❌ Paiement %s confirmé mais commande non persistée: %v — reprise opérateur requise", handle.ID, err)
		return result, nil
	}

	result.Order = order
	result.OrderPersisted = true
	return result, nil
}

// SnapshotItems copie les lignes du panier : la commande reste figée,
// indépendante des éditions ultérieures du catalogue
func SnapshotItems(items []models.CartItem) []models.OrderItem {
	out := make([]models.OrderItem, 0, len(items))
	for _, it := range items {
		out = append(out, models.OrderItem{
			ProductID:    it.ProductID,
			Name:         it.Name,
			Price:        it.Price,
			Quantity:     it.Quantity,
			Image:        it.Image,
			Color:        it.Color,
			ColorName:    it.ColorName,
			Size:         it.Size,
			Category:     it.Category,
			CategorySlug: it.CategorySlug,
			CategoryName: it.CategoryName,
		})
	}
	return out
}

// rewritePaymentError laisse passer les erreurs carte telles quelles,
// sauf celle sur la conformité export, reformulée plus clairement
func rewritePaymentError(err error) error {
	if strings.Contains(err.Error(), exportComplianceSubstring) {
		return errors.New(exportComplianceMessage)
	}
	return err
}
