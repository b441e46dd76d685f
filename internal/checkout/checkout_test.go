package checkout

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"velora_back_end/internal/models"
	"velora_back_end/internal/store"
)

func TestSessionLinearFlow(t *testing.T) {
	sess := NewSession("u1", "")
	assert.Equal(t, StageAddress, sess.Stage)
	assert.Equal(t, "usd", sess.Currency)

	// impossible d'avancer sans adresse
	assert.ErrorIs(t, sess.ContinueToDelivery(), ErrNoAddressSelected)

	require.NoError(t, sess.SelectAddress("addr-1"))
	require.NoError(t, sess.ContinueToDelivery())
	assert.Equal(t, StageDelivery, sess.Stage)

	// impossible d'avancer sans méthode de livraison
	assert.ErrorIs(t, sess.ContinueToPayment(), ErrNoShippingSelected)

	require.NoError(t, sess.SelectShipping("premium"))
	assert.Equal(t, 10.0, sess.ShippingPrice)
	require.NoError(t, sess.ContinueToPayment())
	assert.Equal(t, StagePayment, sess.Stage)
}

func TestSessionBackOnlyFromDelivery(t *testing.T) {
	sess := NewSession("u1", "eur")
	assert.ErrorIs(t, sess.BackToAddress(), ErrWrongStage)

	require.NoError(t, sess.SelectAddress("addr-1"))
	require.NoError(t, sess.ContinueToDelivery())
	require.NoError(t, sess.SelectShipping("standard"))

	// retour ré-entrant : les sélections survivent
	require.NoError(t, sess.BackToAddress())
	assert.Equal(t, StageAddress, sess.Stage)
	assert.Equal(t, "addr-1", sess.SelectedAddressID)
	assert.Equal(t, "standard", sess.ShippingMethodID)

	// pas de retour depuis l'étape paiement
	require.NoError(t, sess.ContinueToDelivery())
	require.NoError(t, sess.ContinueToPayment())
	assert.ErrorIs(t, sess.BackToAddress(), ErrWrongStage)
}

func TestSessionRejectsUnknownShipping(t *testing.T) {
	sess := NewSession("u1", "usd")
	require.NoError(t, sess.SelectAddress("addr-1"))
	require.NoError(t, sess.ContinueToDelivery())

	assert.ErrorIs(t, sess.SelectShipping("drone"), ErrUnknownShipping)
}

func TestGrandTotalIgnoresShippingAtAddressStage(t *testing.T) {
	sess := NewSession("u1", "usd")
	assert.Equal(t, 77.97, sess.GrandTotal(77.97))

	require.NoError(t, sess.SelectAddress("addr-1"))
	require.NoError(t, sess.ContinueToDelivery())
	require.NoError(t, sess.SelectShipping("nextday"))
	assert.InDelta(t, 92.97, sess.GrandTotal(77.97), 1e-9)

	require.NoError(t, sess.ContinueToPayment())
	assert.InDelta(t, 92.97, sess.GrandTotal(77.97), 1e-9)
}

func TestShippingOptions(t *testing.T) {
	opts := ShippingOptions()
	require.Len(t, opts, 3)

	prices := map[string]float64{}
	for _, o := range opts {
		prices[o.ID] = o.Price
	}
	assert.Equal(t, 5.0, prices["standard"])
	assert.Equal(t, 10.0, prices["premium"])
	assert.Equal(t, 15.0, prices["nextday"])

	_, ok := ShippingOptionByID("standard")
	assert.True(t, ok)
	_, ok = ShippingOptionByID("pigeon")
	assert.False(t, ok)
}

// --- Processor ---

type fakePayments struct {
	createErr  error
	confirmErr error
	created    []int64
	entered    chan struct{}
	release    chan struct{}
}

func (f *fakePayments) CreateIntent(_ context.Context, amountMinor int64, _ string, _ Customer) (PaymentHandle, error) {
	if f.entered != nil {
		f.entered <- struct{}{}
		<-f.release
	}
	if f.createErr != nil {
		return PaymentHandle{}, f.createErr
	}
	f.created = append(f.created, amountMinor)
	return PaymentHandle{ID: "pi_test_123", ClientSecret: "secret"}, nil
}

func (f *fakePayments) Confirm(context.Context, PaymentHandle, CardDetails) error {
	return f.confirmErr
}

type fakeOrders struct {
	err    error
	drafts []store.OrderDraft
}

func (f *fakeOrders) Create(_ context.Context, draft store.OrderDraft) (*models.Order, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.drafts = append(f.drafts, draft)
	return &models.Order{PaymentIntentID: draft.PaymentIntentID, Status: models.OrderStatusProcessing}, nil
}

func paymentReadySession() *Session {
	sess := NewSession("u1", "usd")
	_ = sess.SelectAddress("addr-1")
	_ = sess.ContinueToDelivery()
	_ = sess.SelectShipping("premium")
	_ = sess.ContinueToPayment()
	return sess
}

func testItems() []models.CartItem {
	return []models.CartItem{{ProductID: "p1", Name: "T-shirt", Price: 25.99, Quantity: 3}}
}

func testAddr() models.Address {
	return models.Address{FirstName: "Ada", LastName: "Lovelace", Street: "1 rue de la Paix", City: "Paris", PostalCode: "75002", Country: "FR"}
}

func TestPayHappyPath(t *testing.T) {
	payments := &fakePayments{}
	orders := &fakeOrders{}
	p := NewProcessor(payments, orders)

	result, err := p.Pay(context.Background(), paymentReadySession(), testItems(), testAddr(), "ada@example.com", CardDetails{PaymentMethodID: "pm_card"})
	require.NoError(t, err)

	assert.Equal(t, "pi_test_123", result.PaymentIntentID)
	assert.True(t, result.OrderPersisted)
	assert.InDelta(t, 87.97, result.GrandTotal, 1e-9)

	// montant converti en centimes, arrondi
	require.Len(t, payments.created, 1)
	assert.Equal(t, int64(8797), payments.created[0])

	require.Len(t, orders.drafts, 1)
	draft := orders.drafts[0]
	assert.Equal(t, "u1", draft.UserID)
	assert.Equal(t, "premium", draft.ShippingMethodID)
	assert.InDelta(t, 77.97, draft.Subtotal, 1e-9)
	assert.Equal(t, 10.0, draft.ShippingPrice)
	assert.Equal(t, "pi_test_123", draft.PaymentIntentID)
}

func TestPayRequiresPaymentStage(t *testing.T) {
	p := NewProcessor(&fakePayments{}, &fakeOrders{})

	sess := NewSession("u1", "usd")
	_, err := p.Pay(context.Background(), sess, testItems(), testAddr(), "a@b.c", CardDetails{})
	assert.ErrorIs(t, err, ErrPaymentNotInStep)
}

func TestPayRejectsEmptyCart(t *testing.T) {
	p := NewProcessor(&fakePayments{}, &fakeOrders{})

	_, err := p.Pay(context.Background(), paymentReadySession(), nil, testAddr(), "a@b.c", CardDetails{})
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestPayConfirmFailureIsReturned(t *testing.T) {
	payments := &fakePayments{confirmErr: errors.New("Your card was declined.")}
	orders := &fakeOrders{}
	p := NewProcessor(payments, orders)

	_, err := p.Pay(context.Background(), paymentReadySession(), testItems(), testAddr(), "a@b.c", CardDetails{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "declined")
	assert.Empty(t, orders.drafts)
}

func TestPayRewritesExportComplianceError(t *testing.T) {
	payments := &fakePayments{confirmErr: errors.New("As per Indian regulations, export transactions require a customer name and address.")}
	p := NewProcessor(payments, &fakeOrders{})

	_, err := p.Pay(context.Background(), paymentReadySession(), testItems(), testAddr(), "a@b.c", CardDetails{})
	require.Error(t, err)
	assert.Equal(t, exportComplianceMessage, err.Error())
}

func TestPayOrderPersistenceFailureIsNotFatal(t *testing.T) {
	payments := &fakePayments{}
	orders := &fakeOrders{err: errors.New("mongo down")}
	p := NewProcessor(payments, orders)

	result, err := p.Pay(context.Background(), paymentReadySession(), testItems(), testAddr(), "a@b.c", CardDetails{})
	require.NoError(t, err)

	// le paiement a eu lieu : l'appelant reçoit un succès sans commande
	assert.Equal(t, "pi_test_123", result.PaymentIntentID)
	assert.False(t, result.OrderPersisted)
	assert.Nil(t, result.Order)
}

func TestPayRejectsConcurrentSubmit(t *testing.T) {
	payments := &fakePayments{
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	p := NewProcessor(payments, &fakeOrders{})

	done := make(chan error, 1)
	go func() {
		_, err := p.Pay(context.Background(), paymentReadySession(), testItems(), testAddr(), "a@b.c", CardDetails{})
		done <- err
	}()

	// attend que le premier paiement soit en vol
	select {
	case <-payments.entered:
	case <-time.After(2 * time.Second):
		t.Fatal("premier paiement jamais démarré")
	}

	_, err := p.Pay(context.Background(), paymentReadySession(), testItems(), testAddr(), "a@b.c", CardDetails{})
	assert.ErrorIs(t, err, ErrPaymentInFlight)

	close(payments.release)
	require.NoError(t, <-done)

	// le verrou est relâché après la fin du premier
	payments.entered = nil
	_, err = p.Pay(context.Background(), paymentReadySession(), testItems(), testAddr(), "a@b.c", CardDetails{})
	require.NoError(t, err)
}

func TestSnapshotItemsCopiesLines(t *testing.T) {
	items := []models.CartItem{{ProductID: "p1", Name: "Tee", Price: 9.99, Quantity: 2, Color: "#000000", ColorName: "Black", Size: "M"}}

	snap := SnapshotItems(items)
	require.Len(t, snap, 1)
	assert.Equal(t, "p1", snap[0].ProductID)
	assert.Equal(t, 9.99, snap[0].Price)
	assert.Equal(t, "Black", snap[0].ColorName)

	items[0].Price = 1.0
	assert.Equal(t, 9.99, snap[0].Price)
}
