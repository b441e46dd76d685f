package checkout

import (
	"context"
	"strings"

	"github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/paymentintent"
)

// StripeClient : implémentation Stripe du collaborateur paiement
type StripeClient struct{}

func (StripeClient) CreateIntent(_ context.Context, amountMinor int64, currency string, customer Customer) (PaymentHandle, error) {
	country := strings.ToUpper(customer.Address.Country)
	if country == "" {
		country = "IN"
	}

	params := &stripe.PaymentIntentParams{
		Amount:      stripe.Int64(amountMinor),
		Currency:    stripe.String(currency),
		Description: stripe.String("Order for " + customer.Name),
		Shipping: &stripe.ShippingDetailsParams{
			Name: stripe.String(customer.Name),
			Address: &stripe.AddressParams{
				Line1:      stripe.String(customer.Address.Street),
				Line2:      stripe.String(customer.Address.Apt),
				City:       stripe.String(customer.Address.City),
				State:      stripe.String(customer.Address.State),
				PostalCode: stripe.String(customer.Address.PostalCode),
				Country:    stripe.String(country),
			},
		},
		Metadata: map[string]string{
			"user_id":       customer.UserID,
			"email":         customer.Email,
			"customer_name": customer.Name,
			"customer_city": customer.Address.City,
		},
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}

	intent, err := paymentintent.New(params)
	if err != nil {
		return PaymentHandle{}, err
	}

	return PaymentHandle{ID: intent.ID, ClientSecret: intent.ClientSecret}, nil
}

func (StripeClient) Confirm(_ context.Context, handle PaymentHandle, card CardDetails) error {
	params := &stripe.PaymentIntentConfirmParams{
		PaymentMethod: stripe.String(card.PaymentMethodID),
	}

	intent, err := paymentintent.Confirm(handle.ID, params)
	if err != nil {
		return err
	}
	if intent.Status != stripe.PaymentIntentStatusSucceeded {
		return ErrPaymentFailed
	}
	return nil
}
