// simcheckout is a local stand-in for the payment processor's hosted-checkout API.
//
// Point the API server at it with CHECKOUT_BASE_URL=http://localhost:4242 and every
// session it creates is immediately "paid", so the full reconciliation path can be
// exercised without processor credentials:
//
//	go run ./cmd/dev/simcheckout
//	curl -X PATCH "http://localhost:8081/v1/payment-success?session_id=<id>"
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"

	"styledecor/pkg/checkout"
)

func main() {
	var (
		addr = flag.String("addr", ":4242", "listen address")
	)
	flag.Parse()

	s := &store{sessions: map[string]checkout.Session{}}

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/checkout/sessions", s.create)
	mux.HandleFunc("/v1/checkout/sessions/", s.retrieve)

	log.Printf("simcheckout listening on %s", *addr)
	if err := http.ListenAndServe(*addr, mux); err != nil {
		log.Fatalf("serve: %v", err)
	}
}

type store struct {
	mu       sync.Mutex
	sessions map[string]checkout.Session
}

func (s *store) create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var params checkout.CreateSessionParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	id := "cs_sim_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:24]
	sess := checkout.Session{
		ID:  id,
		URL: fmt.Sprintf("http://localhost%s/pay/%s", addrSuffix(r.Host), id),
		// Paid immediately; this tool exists to drive the success path.
		PaymentStatus: "paid",
		PaymentIntent: "pi_sim_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:24],
		AmountTotal:   params.Amount,
		Currency:      params.Currency,
		CustomerEmail: params.CustomerEmail,
		Metadata:      params.Metadata,
	}

	s.mu.Lock()
	s.sessions[id] = sess
	s.mu.Unlock()

	log.Printf("created session %s amount=%s metadata=%v", id, params.Amount, params.Metadata)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(sess)
}

func (s *store) retrieve(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/v1/checkout/sessions/")

	s.mu.Lock()
	sess, ok := s.sessions[id]
	s.mu.Unlock()

	if !ok {
		http.Error(w, `{"error":"no such session"}`, http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(sess)
}

func addrSuffix(host string) string {
	if i := strings.LastIndex(host, ":"); i >= 0 {
		return host[i:]
	}
	return ":4242"
}
