package payment

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCheckoutSession(t *testing.T) {
	var gotForm map[string]string
	var gotAuth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/checkout/sessions", r.URL.Path)
		require.NoError(t, r.ParseForm())

		gotAuth = r.Header.Get("Authorization")
		gotForm = map[string]string{}
		for key := range r.PostForm {
			gotForm[key] = r.PostForm.Get(key)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"cs_test_123","url":"https://checkout.stripe.com/pay/cs_test_123","payment_status":"unpaid","amount_total":49700,"currency":"usd"}`))
	}))
	defer srv.Close()

	client := NewStripeClient("sk_test_key", srv.URL, "usd")

	session, err := client.CreateCheckoutSession(CheckoutParams{
		SuccessURL:        "https://example.com/success",
		CancelURL:         "https://example.com/cancel",
		CustomerEmail:     "laura@example.com",
		ClientReferenceID: "tour-1",
		ProductName:       "The Forest Hiker Tour",
		AmountCents:       49700,
	})
	require.NoError(t, err)

	assert.Equal(t, "cs_test_123", session.ID)
	assert.Equal(t, "https://checkout.stripe.com/pay/cs_test_123", session.URL)
	assert.Equal(t, int64(49700), session.AmountTotal)

	assert.Equal(t, "Bearer sk_test_key", gotAuth)
	assert.Equal(t, "payment", gotForm["mode"])
	assert.Equal(t, "https://example.com/success", gotForm["success_url"])
	assert.Equal(t, "laura@example.com", gotForm["customer_email"])
	assert.Equal(t, "tour-1", gotForm["client_reference_id"])
	assert.Equal(t, "usd", gotForm["line_items[0][price_data][currency]"])
	assert.Equal(t, "49700", gotForm["line_items[0][price_data][unit_amount]"])
	assert.Equal(t, "The Forest Hiker Tour", gotForm["line_items[0][price_data][product_data][name]"])
	assert.Equal(t, "1", gotForm["line_items[0][quantity]"], "quantity defaults to 1")
}

func TestCreateCheckoutSession_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		w.Write([]byte(`{"error":{"type":"card_error","message":"Your card was declined."}}`))
	}))
	defer srv.Close()

	client := NewStripeClient("sk_test_key", srv.URL, "usd")

	_, err := client.CreateCheckoutSession(CheckoutParams{AmountCents: 100})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Your card was declined.")
}

func TestCreateCheckoutSession_MalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	client := NewStripeClient("sk_test_key", srv.URL, "usd")

	_, err := client.CreateCheckoutSession(CheckoutParams{AmountCents: 100})
	assert.Error(t, err)
}
