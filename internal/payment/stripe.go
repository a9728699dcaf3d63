package payment

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// StripeClient talks to the Stripe Checkout API directly over its
// form-encoded HTTP interface.
type StripeClient struct {
	secretKey  string
	apiBase    string
	currency   string
	httpClient *http.Client
}

func NewStripeClient(secretKey, apiBase, currency string) *StripeClient {
	return &StripeClient{
		secretKey: secretKey,
		apiBase:   strings.TrimRight(apiBase, "/"),
		currency:  currency,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// CheckoutParams describes a single-item payment session.
type CheckoutParams struct {
	SuccessURL        string
	CancelURL         string
	CustomerEmail     string
	ClientReferenceID string
	ProductName       string
	Description       string
	ImageURL          string
	AmountCents       int64
	Quantity          int
}

// CheckoutSession is the subset of Stripe's session object the API exposes.
type CheckoutSession struct {
	ID            string `json:"id"`
	URL           string `json:"url"`
	PaymentStatus string `json:"payment_status"`
	AmountTotal   int64  `json:"amount_total"`
	Currency      string `json:"currency"`
	CustomerEmail string `json:"customer_email"`
}

type stripeError struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// CreateCheckoutSession opens a payment-mode checkout session.
func (c *StripeClient) CreateCheckoutSession(params CheckoutParams) (*CheckoutSession, error) {
	if params.Quantity <= 0 {
		params.Quantity = 1
	}

	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("success_url", params.SuccessURL)
	form.Set("cancel_url", params.CancelURL)
	form.Set("customer_email", params.CustomerEmail)
	form.Set("client_reference_id", params.ClientReferenceID)
	form.Set("payment_method_types[0]", "card")
	form.Set("line_items[0][quantity]", strconv.Itoa(params.Quantity))
	form.Set("line_items[0][price_data][currency]", c.currency)
	form.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(params.AmountCents, 10))
	form.Set("line_items[0][price_data][product_data][name]", params.ProductName)
	if params.Description != "" {
		form.Set("line_items[0][price_data][product_data][description]", params.Description)
	}
	if params.ImageURL != "" {
		form.Set("line_items[0][price_data][product_data][images][0]", params.ImageURL)
	}

	req, err := http.NewRequest(http.MethodPost,
		c.apiBase+"/v1/checkout/sessions", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("stripe request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read stripe response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var stripeErr stripeError
		if json.Unmarshal(body, &stripeErr) == nil && stripeErr.Error.Message != "" {
			return nil, fmt.Errorf("stripe error (%d): %s", resp.StatusCode, stripeErr.Error.Message)
		}
		return nil, fmt.Errorf("stripe error: status %d", resp.StatusCode)
	}

	var session CheckoutSession
	if err := json.Unmarshal(body, &session); err != nil {
		return nil, fmt.Errorf("failed to decode stripe session: %w", err)
	}
	return &session, nil
}
