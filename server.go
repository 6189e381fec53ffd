package heytaco

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Envelope types of the slack events API
const (
	urlVerificationType = "url_verification"
	eventCallbackType   = "event_callback"
)

// eventEnvelope is the outer payload of an events API delivery
type eventEnvelope struct {
	Type      string `json:"type"`
	Challenge string `json:"challenge,omitempty"`
	Event     *Event `json:"event,omitempty"`
}

// NewRouter returns the HTTP shell mapping the slack events subscription
// contract onto the dispatcher. Inbound signature verification is left to
// a fronting proxy
func (ht *HeyTaco) NewRouter() (router http.Handler) {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Post("/slack/events", ht.handleEventRequest)

	return r
}

// handleEventRequest decodes one events API delivery. URL verification
// challenges are echoed back; event callbacks are acknowledged right away
// and dispatched in the background since delivery acknowledgment must not
// wait on award flows (slack retries slow acknowledgments)
func (ht *HeyTaco) handleEventRequest(w http.ResponseWriter, r *http.Request) {
	var envelope eventEnvelope
	if err := json.NewDecoder(r.Body).Decode(&envelope); err != nil {
		ht.logger.Printf("Error decoding event payload: %v\n", err)
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}

	switch envelope.Type {
	case urlVerificationType:
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte(envelope.Challenge))

	case eventCallbackType:
		if envelope.Event != nil {
			go ht.HandleEvent(envelope.Event)
		}

		w.WriteHeader(http.StatusOK)

	default:
		ht.logger.Printf("Ignoring payload of type [%s]\n", envelope.Type)
		w.WriteHeader(http.StatusOK)
	}
}
