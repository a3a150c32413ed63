package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/elonfeng/aihub/internal/refresh"
	"github.com/elonfeng/aihub/internal/store"
	"github.com/elonfeng/aihub/pkg/source"
)

// Server provides the HTTP API: catalog reads, refresh triggers and the
// mock subscription flow.
type Server struct {
	store        store.Store
	orchestrator *refresh.Orchestrator
	port         int
	log          zerolog.Logger
}

// New creates a new HTTP server.
func New(s store.Store, orch *refresh.Orchestrator, port int, log zerolog.Logger) *Server {
	if port == 0 {
		port = 8080
	}
	return &Server{
		store:        s,
		orchestrator: orch,
		port:         port,
		log:          log.With().Str("component", "server").Logger(),
	}
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	mux.HandleFunc("POST /refresh", s.handleRefresh)
	mux.HandleFunc("POST /refresh-replace", s.handleRefreshReplace)
	mux.HandleFunc("GET /status", s.handleStatus)

	mux.HandleFunc("GET /api/content", s.handleListContent)
	mux.HandleFunc("GET /api/content/{id}", s.handleGetContent)
	mux.HandleFunc("GET /api/topics", s.handleTopics)

	mux.HandleFunc("POST /api/create-subscription", s.handleCreateSubscription)
	mux.HandleFunc("POST /api/confirm-payment", s.handleConfirmPayment)
	mux.HandleFunc("POST /api/check-subscription", s.handleCheckSubscription)

	return mux
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.log.Info().Str("addr", addr).Msg("listening")
	return http.ListenAndServe(addr, s.Handler())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Refresh responses are success-shaped even when nothing was added; only
// an unreachable store turns into an error status.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	summary, err := s.orchestrator.Refresh(r.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("additive refresh")
		writeError(w, http.StatusInternalServerError, "Error refreshing content: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleRefreshReplace(w http.ResponseWriter, r *http.Request) {
	summary, err := s.orchestrator.RefreshReplace(r.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("replace refresh")
		writeError(w, http.StatusInternalServerError, "Error refreshing content: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	status, err := s.orchestrator.Status(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Error fetching status: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, status)
}

func (s *Server) handleListContent(w http.ResponseWriter, r *http.Request) {
	opts := store.ListOpts{
		Category: source.Category(r.URL.Query().Get("category")),
		Search:   r.URL.Query().Get("search"),
	}

	content, err := s.store.ListContent(r.Context(), opts)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Error fetching content: "+err.Error())
		return
	}
	if content == nil {
		content = []store.Content{}
	}
	writeJSON(w, http.StatusOK, content)
}

// handleGetContent reads one item by id and counts the view, exactly once
// per read.
func (s *Server) handleGetContent(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid content id")
		return
	}

	content, err := s.store.GetContent(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Content not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Error fetching content: "+err.Error())
		return
	}

	if err := s.store.IncrementViewCount(r.Context(), id); err != nil {
		s.log.Warn().Err(err).Int64("id", id).Msg("increment view count")
	} else {
		content.ViewCount++
	}

	writeJSON(w, http.StatusOK, content)
}

func (s *Server) handleTopics(w http.ResponseWriter, r *http.Request) {
	topics, err := s.store.ListTopics(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Error fetching topics: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, topics)
}

// Mock subscription flow. No real payment processor is attached; the
// handlers simulate a successful setup so the premium gate can be
// exercised end to end.

func (s *Server) handleCreateSubscription(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Name == "" {
		writeError(w, http.StatusBadRequest, "Email and name are required")
		return
	}

	now := time.Now().UnixMilli()
	writeJSON(w, http.StatusOK, map[string]string{
		"subscriptionId": fmt.Sprintf("sub_%d_%s", now, randomToken(9)),
		"customerId":     fmt.Sprintf("cus_%d_%s", now, randomToken(9)),
		"clientSecret":   fmt.Sprintf("pi_%d_secret_%s", now, randomToken(9)),
		"status":         "requires_payment_method",
	})
}

func (s *Server) handleConfirmPayment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SubscriptionID string `json:"subscriptionId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.SubscriptionID == "" {
		writeError(w, http.StatusBadRequest, "Subscription ID is required")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status":             "succeeded",
		"subscriptionStatus": "active",
		"message":            "Payment successful! Welcome to AI Hub Pro!",
	})
}

func (s *Server) handleCheckSubscription(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SubscriptionID string `json:"subscriptionId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.SubscriptionID == "" {
		writeError(w, http.StatusBadRequest, "Subscription ID is required")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status": "active",
		"active": true,
	})
}

const tokenAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

func randomToken(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = tokenAlphabet[rand.Intn(len(tokenAlphabet))]
	}
	return string(b)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}
