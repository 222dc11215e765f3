package checkout

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pravinale/pantonefrontend/store"
)

func newPayableFlow(t *testing.T) *Flow {
	t.Helper()
	local := store.OpenLocalStore(filepath.Join(t.TempDir(), "session.json"))
	cart := store.NewCartStore(local, unlimitedStock{})
	flow := NewFlow(cart, &fakeBackend{}, Config{
		DeliveryCharge:   2,
		EsewaFormURL:     "https://rc-epay.esewa.com.np/api/epay/main/v2/form",
		EsewaProductCode: "EPAYTEST",
		SuccessURL:       "http://localhost:5000/api/complete-payment",
		FailureURL:       "https://pantonenp.com/checkout",
	}, nil)
	init := signedInit()
	flow.payment = &init
	return flow
}

func TestPayNow_FieldOrderAndValues(t *testing.T) {
	flow := newPayableFlow(t)

	action, fields, err := flow.PayNow()
	require.NoError(t, err)
	assert.Equal(t, "https://rc-epay.esewa.com.np/api/epay/main/v2/form", action)

	want := []FormField{
		{"amount", "258"},
		{"tax_amount", "0"},
		{"total_amount", "258"},
		{"transaction_uuid", "txn-1"},
		{"product_code", "EPAYTEST"},
		{"product_service_charge", "0"},
		{"product_delivery_charge", "0"},
		{"success_url", "http://localhost:5000/api/complete-payment"},
		{"failure_url", "https://pantonenp.com/checkout"},
		{"signature", "sig=="},
		{"signed_field_names", "total_amount,transaction_uuid,product_code"},
	}
	assert.Equal(t, want, fields)
}

func TestPayNow_WithoutPaymentDetails(t *testing.T) {
	flow, _ := newTestFlow(t, &fakeBackend{})
	_, _, err := flow.PayNow()
	assert.ErrorIs(t, err, ErrNoPaymentDetails)
}

func TestRenderPayPage_Golden(t *testing.T) {
	flow := newPayableFlow(t)
	action, fields, err := flow.PayNow()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, RenderPayPage(&buf, action, fields))

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "paynow", buf.Bytes())
}
