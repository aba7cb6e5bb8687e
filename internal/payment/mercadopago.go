package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/preference"
)

var ErrDisabled = errors.New("payments are not configured")

type CheckoutItem struct {
	Reference   string
	Title       string
	Description string
	UnitPrice   float64
	Currency    string
	PayerEmail  string
}

type Checkout struct {
	PreferenceID string `json:"preference_id"`
	CheckoutURL  string `json:"checkout_url"`
}

type preferenceCreator interface {
	Create(ctx context.Context, request preference.Request) (*preference.Response, error)
}

// MercadoPago creates checkout preferences. The zero value is disabled.
type MercadoPago struct {
	client  preferenceCreator
	backURL string
}

func NewMercadoPago(accessToken, backURL string) (*MercadoPago, error) {
	if accessToken == "" {
		return &MercadoPago{}, nil
	}
	cfg, err := config.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago config: %w", err)
	}
	return &MercadoPago{client: preference.NewClient(cfg), backURL: backURL}, nil
}

func (m *MercadoPago) Enabled() bool {
	return m != nil && m.client != nil
}

func (m *MercadoPago) CreateCheckout(ctx context.Context, item CheckoutItem) (*Checkout, error) {
	if !m.Enabled() {
		return nil, ErrDisabled
	}

	currency := item.Currency
	if currency == "" {
		currency = "COP"
	}

	req := preference.Request{
		ExternalReference: item.Reference,
		Items: []preference.ItemRequest{{
			ID:          item.Reference,
			Title:       item.Title,
			Description: item.Description,
			Quantity:    1,
			UnitPrice:   item.UnitPrice,
			CurrencyID:  currency,
		}},
	}
	if item.PayerEmail != "" {
		req.Payer = &preference.PayerRequest{Email: item.PayerEmail}
	}
	if m.backURL != "" {
		req.BackURLs = &preference.BackURLsRequest{
			Success: m.backURL,
			Pending: m.backURL,
			Failure: m.backURL,
		}
	}

	res, err := m.client.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create preference: %w", err)
	}
	return &Checkout{PreferenceID: res.ID, CheckoutURL: res.InitPoint}, nil
}
