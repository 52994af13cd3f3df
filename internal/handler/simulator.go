package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mesero-nana/api/internal/simulator"
	"github.com/mesero-nana/api/internal/ws"
)

// CandidateSource defines the generator methods needed by simulator
// handlers. Satisfied by *simulator.Generator; narrow interface for
// testability.
type CandidateSource interface {
	Generate(source string) (simulator.Candidate, error)
	Pending() []simulator.Candidate
	Take(id string) (simulator.Candidate, error)
}

// SimulatorHandler drives the incoming-order simulator.
type SimulatorHandler struct {
	gen   CandidateSource
	store OrderStore
	hub   Broadcaster
}

// NewSimulatorHandler creates a new SimulatorHandler.
func NewSimulatorHandler(gen CandidateSource, store OrderStore, hub Broadcaster) *SimulatorHandler {
	return &SimulatorHandler{gen: gen, store: store, hub: hub}
}

// RegisterRoutes registers simulator endpoints on the given Chi router.
func (h *SimulatorHandler) RegisterRoutes(r chi.Router) {
	r.Post("/simulator/orders", h.Generate)
	r.Get("/simulator/orders", h.List)
	r.Post("/simulator/orders/{id}/accept", h.Accept)
	r.Post("/simulator/orders/{id}/reject", h.Reject)
}

type generateRequest struct {
	Source string `json:"source"`
}

// Generate handles POST /simulator/orders.
func (h *SimulatorHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	candidate, err := h.gen.Generate(req.Source)
	if err != nil {
		if errors.Is(err, simulator.ErrUnsupportedSource) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "source cannot be simulated"})
			return
		}
		log.Printf("ERROR: generate candidate: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusCreated, candidate)
}

// List handles GET /simulator/orders.
func (h *SimulatorHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"candidates": h.gen.Pending()})
}

// Accept handles POST /simulator/orders/{id}/accept. The candidate becomes
// a real order on the board.
func (h *SimulatorHandler) Accept(w http.ResponseWriter, r *http.Request) {
	candidate, err := h.gen.Take(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "candidate not found"})
		return
	}

	order, err := h.store.Create(r.Context(), candidate.Items, candidate.CustomerInfo, candidate.Source)
	if err != nil {
		if isValidationError(err) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		log.Printf("ERROR: accept candidate: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	if h.hub != nil {
		if raw, err := json.Marshal(order); err == nil {
			h.hub.Broadcast(ws.Event{Type: "order.created", Payload: raw})
		}
	}
	writeJSON(w, http.StatusCreated, order)
}

// Reject handles POST /simulator/orders/{id}/reject.
func (h *SimulatorHandler) Reject(w http.ResponseWriter, r *http.Request) {
	if _, err := h.gen.Take(chi.URLParam(r, "id")); err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "candidate not found"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
