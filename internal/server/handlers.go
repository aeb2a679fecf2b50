package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/hyperjump/erabu/internal/guide"
	"github.com/hyperjump/erabu/internal/models"
	"go.uber.org/zap"
)

// QueryRequest is the body for the query endpoints. The plan arrives
// pre-structured; turning free text into a plan is the external planning
// collaborator's job.
type QueryRequest struct {
	Plan models.BuyingGuidePlan `json:"plan"`
	TopK int                    `json:"top_k,omitempty"`
}

// QueryResponse is the response for a query.
type QueryResponse struct {
	Results []*models.RankedProduct `json:"results"`
	// Compact is the bounded view suitable for handing to the explanation
	// collaborator.
	Compact   []guide.CompactProduct `json:"compact"`
	Total     int                    `json:"total"`
	Reused    bool                   `json:"reused,omitempty"`
	SessionID string                 `json:"session_id,omitempty"`
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	topK := req.TopK
	if topK <= 0 {
		topK = s.config.Retrieval.TopK
	}
	s.logger.Debug("query request", zap.Int("top_k", topK), zap.String("use_case", req.Plan.UseCase))

	ranked := s.engine.Retrieve(&req.Plan, topK)
	s.respondJSON(w, http.StatusOK, &QueryResponse{
		Results: ranked,
		Compact: guide.CompactViews(ranked, s.config.Retrieval.MaxExplainerProducts),
		Total:   len(ranked),
	})
}

func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	product := s.store.Get(id)
	if product == nil {
		s.respondError(w, http.StatusNotFound, "product not found")
		return
	}
	s.respondJSON(w, http.StatusOK, product)
}

func (s *Server) handleBrowse(w http.ResponseWriter, r *http.Request) {
	if s.browse == nil {
		s.respondError(w, http.StatusServiceUnavailable, "catalog browsing is not enabled")
		return
	}
	query := r.URL.Query().Get("q")
	if query == "" {
		s.respondError(w, http.StatusBadRequest, "missing query parameter q")
		return
	}
	limit := s.config.Retrieval.BrowseLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	hits, err := s.browse.Search(query, limit)
	if err != nil {
		s.logger.Error("browse search failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]any{"hits": hits, "total": len(hits)})
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	session := s.sessions.Create()
	s.logger.Debug("session created", zap.String("id", session.ID))
	s.respondJSON(w, http.StatusCreated, map[string]string{"id": session.ID})
}

func (s *Server) handleSessionQuery(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	session, err := s.sessions.Get(id)
	if err != nil {
		s.respondError(w, http.StatusNotFound, "session not found")
		return
	}

	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	topK := req.TopK
	if topK <= 0 {
		topK = s.config.Retrieval.TopK
	}

	// A follow-up that does not change retrieval-relevant plan fields reuses
	// the previous turn's results.
	var ranked []*models.RankedProduct
	reused := false
	if !session.NeedsRetrieval(&req.Plan) {
		if last := session.LastTurn(); last != nil {
			ranked = last.Results
			reused = true
		}
	}
	if ranked == nil {
		ranked = s.engine.Retrieve(&req.Plan, topK)
	}

	plan := req.Plan
	session.AddTurn(guide.Turn{Query: plan.RawQuery, Plan: &plan, Results: ranked})

	s.respondJSON(w, http.StatusOK, &QueryResponse{
		Results:   ranked,
		Compact:   guide.CompactViews(ranked, s.config.Retrieval.MaxExplainerProducts),
		Total:     len(ranked),
		Reused:    reused,
		SessionID: session.ID,
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	resp := map[string]any{
		"products":         s.store.Len(),
		"browse_enabled":   s.browse != nil,
		"aggregated_index": s.config.Data.AggregatedIndexPath,
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode response", zap.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
