package utils

import (
	"context"

	"github.com/pkg/errors"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// PaymentProcessor issues client secrets the frontend uses to confirm a card charge.
type PaymentProcessor interface {
	CreatePaymentIntent(ctx context.Context, amountCents int64, plantID string) (string, error)
}

type StripeProcessor struct {
	api      *client.API
	currency stripe.Currency
}

func NewStripeProcessor(secretKey string) (*StripeProcessor, error) {
	if secretKey == "" {
		return nil, errors.New("stripe secret key must be provided")
	}
	return &StripeProcessor{
		api:      client.New(secretKey, nil),
		currency: stripe.CurrencyUSD,
	}, nil
}

func (p *StripeProcessor) CreatePaymentIntent(ctx context.Context, amountCents int64, plantID string) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amountCents),
		Currency:           stripe.String(string(p.currency)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx
	params.AddMetadata("plantId", plantID)

	intent, err := p.api.PaymentIntents.New(params)
	if err != nil {
		return "", errors.Wrap(err, "create stripe payment intent")
	}
	return intent.ClientSecret, nil
}

// UnconfiguredProcessor refuses every request; it stands in when no
// processor key is configured so the rest of the API still runs.
type UnconfiguredProcessor struct{}

var ErrPaymentsDisabled = errors.New("payment processor is not configured")

func (UnconfiguredProcessor) CreatePaymentIntent(context.Context, int64, string) (string, error) {
	return "", ErrPaymentsDisabled
}
