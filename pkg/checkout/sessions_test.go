package checkout

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCreateSession_SendsAuthAndIdempotencyKey(t *testing.T) {
	var gotAuth, gotIdem string
	var gotParams CreateSessionParams

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/checkout/sessions" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		gotIdem = r.Header.Get("Idempotency-Key")
		if err := json.NewDecoder(r.Body).Decode(&gotParams); err != nil {
			t.Fatalf("decode params: %v", err)
		}
		_ = json.NewEncoder(w).Encode(Session{
			ID:            "cs_test_1",
			URL:           "https://pay.example.com/cs_test_1",
			PaymentStatus: "unpaid",
		})
	}))
	defer srv.Close()

	c := Client{BaseURL: srv.URL, SecretKey: "sk_test"}
	s, err := c.CreateSession(context.Background(), "idem-1", CreateSessionParams{
		Amount:   "500.00",
		Currency: "USD",
		Metadata: map[string]string{"bookingId": "b1", "trackingId": "TSD-20260101-DEADBEEF"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.ID != "cs_test_1" || s.URL == "" {
		t.Fatalf("unexpected session: %+v", s)
	}
	if gotAuth != "Bearer sk_test" {
		t.Fatalf("expected bearer auth, got %q", gotAuth)
	}
	if gotIdem != "idem-1" {
		t.Fatalf("expected idempotency key, got %q", gotIdem)
	}
	if gotParams.Metadata["trackingId"] != "TSD-20260101-DEADBEEF" {
		t.Fatalf("metadata not forwarded: %+v", gotParams.Metadata)
	}
}

func TestRetrieveSession_PaidAndErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/checkout/sessions/cs_paid":
			_ = json.NewEncoder(w).Encode(Session{ID: "cs_paid", PaymentStatus: "paid", PaymentIntent: "pi_1"})
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"no such session"}`))
		}
	}))
	defer srv.Close()

	c := Client{BaseURL: srv.URL, SecretKey: "sk_test"}

	s, err := c.RetrieveSession(context.Background(), "cs_paid")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !s.Paid() || s.PaymentIntent != "pi_1" {
		t.Fatalf("unexpected session: %+v", s)
	}

	if _, err := c.RetrieveSession(context.Background(), "cs_missing"); err == nil {
		t.Fatalf("expected error for missing session")
	}
}

func TestClient_MissingConfig(t *testing.T) {
	c := Client{}
	if _, err := c.RetrieveSession(context.Background(), "cs_1"); err == nil {
		t.Fatalf("expected error for missing config")
	}
}
