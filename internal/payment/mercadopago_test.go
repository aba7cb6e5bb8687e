package payment

import (
	"context"
	"errors"
	"testing"

	"github.com/mercadopago/sdk-go/pkg/preference"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePreferences struct {
	got preference.Request
	err error
}

func (f *fakePreferences) Create(_ context.Context, req preference.Request) (*preference.Response, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &preference.Response{ID: "pref-1", InitPoint: "https://mp.example/checkout/pref-1"}, nil
}

func TestCreateCheckout(t *testing.T) {
	fake := &fakePreferences{}
	mp := &MercadoPago{client: fake, backURL: "https://app.example/appointments"}

	out, err := mp.CreateCheckout(context.Background(), CheckoutItem{
		Reference:  "appointment-7",
		Title:      "Haircut",
		UnitPrice:  25000,
		PayerEmail: "ana@x.com",
	})
	require.NoError(t, err)

	assert.Equal(t, &Checkout{PreferenceID: "pref-1", CheckoutURL: "https://mp.example/checkout/pref-1"}, out)
	assert.Equal(t, "appointment-7", fake.got.ExternalReference)
	require.Len(t, fake.got.Items, 1)
	assert.Equal(t, "COP", fake.got.Items[0].CurrencyID)
	assert.Equal(t, 25000.0, fake.got.Items[0].UnitPrice)
	assert.Equal(t, "ana@x.com", fake.got.Payer.Email)
	assert.Equal(t, "https://app.example/appointments", fake.got.BackURLs.Success)
}

func TestCreateCheckoutErrors(t *testing.T) {
	_, err := (&MercadoPago{}).CreateCheckout(context.Background(), CheckoutItem{})
	assert.ErrorIs(t, err, ErrDisabled)

	disabled, err := NewMercadoPago("", "")
	require.NoError(t, err)
	assert.False(t, disabled.Enabled())

	mp := &MercadoPago{client: &fakePreferences{err: errors.New("401")}}
	_, err = mp.CreateCheckout(context.Background(), CheckoutItem{Title: "x"})
	assert.ErrorContains(t, err, "401")
}
