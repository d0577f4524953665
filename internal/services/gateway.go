package services

import "context"

// PaymentGateway is the card processor the service charges through.
type PaymentGateway interface {
	CreatePaymentIntent(ctx context.Context, req IntentRequest) (*PaymentIntent, error)
	GetPaymentIntent(ctx context.Context, id string) (*PaymentIntent, error)
}

// IntentRequest describes a charge. Amount is in minor units.
type IntentRequest struct {
	Amount       int64
	Currency     string
	Description  string
	ReceiptEmail string
	Metadata     map[string]string
}

type PaymentIntent struct {
	ID           string            `json:"paymentIntentId"`
	ClientSecret string            `json:"clientSecret,omitempty"`
	Amount       int64             `json:"amount"`
	Currency     string            `json:"currency"`
	Status       string            `json:"status"`
	Metadata     map[string]string `json:"-"`
}
