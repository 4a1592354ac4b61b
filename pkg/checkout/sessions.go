package checkout

import (
	"context"
	"net/http"
)

// Session is the processor's canonical view of a hosted checkout session.
//
// Metadata is attached at creation time and echoed back on retrieval; it is how a
// paid session is correlated back to its originating booking without a separate
// mapping table.
type Session struct {
	ID            string            `json:"id"`
	URL           string            `json:"url"`
	PaymentStatus string            `json:"payment_status"`
	PaymentIntent string            `json:"payment_intent"`
	AmountTotal   string            `json:"amount_total"`
	Currency      string            `json:"currency"`
	CustomerEmail string            `json:"customer_email"`
	Metadata      map[string]string `json:"metadata"`
}

func (s Session) Paid() bool {
	return s.PaymentStatus == "paid"
}

type CreateSessionParams struct {
	Amount        string            `json:"amount"`
	Currency      string            `json:"currency"`
	CustomerEmail string            `json:"customer_email"`
	ProductName   string            `json:"product_name"`
	SuccessURL    string            `json:"success_url"`
	CancelURL     string            `json:"cancel_url"`
	Metadata      map[string]string `json:"metadata,omitempty"`
}

// CreateSession opens a hosted checkout session. The idempotency key keeps a
// double-submitted form from opening two sessions for the same click.
func (c Client) CreateSession(ctx context.Context, idempotencyKey string, params CreateSessionParams) (*Session, error) {
	var s Session
	if _, err := c.doJSON(ctx, http.MethodPost, "/v1/checkout/sessions", idempotencyKey, params, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// RetrieveSession fetches the canonical session state by id. Reconciliation trusts
// this response, never the redirect that delivered the id.
func (c Client) RetrieveSession(ctx context.Context, sessionID string) (*Session, error) {
	var s Session
	if _, err := c.doJSON(ctx, http.MethodGet, "/v1/checkout/sessions/"+sessionID, "", nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}
