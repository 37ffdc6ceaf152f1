// Package report provides the HTTP handlers for match management, delivery
// ingestion, and the derived-analytics panels (manhattan, worm, scoring,
// run rates, partnerships, phases, wagon wheel).
//
// The handlers own no computation: they assemble the ledger and snapshot
// from the store, hand both to the analytics package, and serve the result.
// Chart rendering stays entirely client-side.
package report

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/crickd/insights-engine/internal/analytics"
	"github.com/crickd/insights-engine/internal/ingest"
	"github.com/crickd/insights-engine/internal/metrics"
	"github.com/crickd/insights-engine/internal/model"
	"github.com/crickd/insights-engine/internal/store"
)

// Service handles match and insights operations. Pass nil for cache and hub
// when Redis or WebSocket broadcasting is not configured.
type Service struct {
	store      store.Store
	cache      *store.InsightsCache
	normalizer *ingest.Normalizer
	hub        *WSHub
}

// NewService creates a new report service.
func NewService(st store.Store, cache *store.InsightsCache, normalizer *ingest.Normalizer, hub *WSHub) *Service {
	if normalizer == nil {
		normalizer = ingest.NewNormalizer(analytics.DefaultInning)
	}
	return &Service{
		store:      st,
		cache:      cache,
		normalizer: normalizer,
		hub:        hub,
	}
}

// --- Request/Response types ---

// CreateMatchRequest is the JSON body for match creation.
type CreateMatchRequest struct {
	HomeTeam   string         `json:"home_team"`
	AwayTeam   string         `json:"away_team"`
	Venue      string         `json:"venue"`
	OversLimit int            `json:"overs_limit"`
	Roster     []model.Player `json:"roster"`
}

// IngestResponse is the JSON body returned from delivery ingestion.
type IngestResponse struct {
	MatchID       string `json:"match_id"`
	Accepted      int    `json:"accepted"`
	DeliveryCount int    `json:"delivery_count"`
}

// seriesResponse is one innings' values for a single-panel chart endpoint.
type seriesResponse struct {
	Inning int    `json:"inning"`
	Values []*int `json:"values"`
}

// --- HTTP Handlers ---

// CreateMatch handles POST /api/v1/matches
func (s *Service) CreateMatch(w http.ResponseWriter, r *http.Request) {
	var req CreateMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.HomeTeam == "" || req.AwayTeam == "" {
		writeError(w, "home_team and away_team are required", http.StatusBadRequest)
		return
	}
	if req.OversLimit <= 0 {
		writeError(w, "overs_limit must be positive", http.StatusBadRequest)
		return
	}

	match := &model.Match{
		ID:         uuid.New().String(),
		HomeTeam:   req.HomeTeam,
		AwayTeam:   req.AwayTeam,
		Venue:      req.Venue,
		OversLimit: req.OversLimit,
		Status:     "live",
		Roster:     req.Roster,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.store.CreateMatch(r.Context(), match); err != nil {
		writeError(w, err.Error(), http.StatusConflict)
		return
	}
	metrics.LiveMatches.Inc()

	slog.Info("match created",
		"id", match.ID,
		"home", match.HomeTeam,
		"away", match.AwayTeam,
		"overs_limit", match.OversLimit,
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(match)
}

// GetMatch handles GET /api/v1/matches/{matchID}
func (s *Service) GetMatch(w http.ResponseWriter, r *http.Request) {
	matchID := chi.URLParam(r, "matchID")

	match, err := s.store.GetMatch(r.Context(), matchID)
	if err != nil {
		writeError(w, "match not found", http.StatusNotFound)
		return
	}
	respondJSON(w, match)
}

// ListMatches handles GET /api/v1/matches
func (s *Service) ListMatches(w http.ResponseWriter, r *http.Request) {
	matches, err := s.store.ListMatches(r.Context())
	if err != nil {
		writeError(w, "failed to list matches", http.StatusInternalServerError)
		return
	}
	if matches == nil {
		matches = []model.Match{}
	}
	respondJSON(w, matches)
}

// CompleteMatch handles POST /api/v1/matches/{matchID}/complete
func (s *Service) CompleteMatch(w http.ResponseWriter, r *http.Request) {
	matchID := chi.URLParam(r, "matchID")

	match, err := s.store.GetMatch(r.Context(), matchID)
	if err != nil {
		writeError(w, "match not found", http.StatusNotFound)
		return
	}
	if match.Status == "completed" {
		respondJSON(w, match)
		return
	}

	if err := s.store.SetMatchStatus(r.Context(), matchID, "completed"); err != nil {
		writeError(w, "failed to update match", http.StatusInternalServerError)
		return
	}
	metrics.LiveMatches.Dec()
	match.Status = "completed"

	slog.Info("match completed", "id", matchID)
	respondJSON(w, match)
}

// IngestDeliveries handles POST /api/v1/matches/{matchID}/deliveries
// Accepts a raw delivery batch, normalizes it onto the canonical model, and
// appends it to the match ledger.
func (s *Service) IngestDeliveries(w http.ResponseWriter, r *http.Request) {
	matchID := chi.URLParam(r, "matchID")
	ctx := r.Context()

	var raws []ingest.RawDelivery
	if err := json.NewDecoder(r.Body).Decode(&raws); err != nil {
		writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if len(raws) == 0 {
		writeError(w, "delivery batch is empty", http.StatusBadRequest)
		return
	}

	deliveries := s.normalizer.NormalizeBatch(raws)
	if err := s.store.AppendDeliveries(ctx, matchID, deliveries); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, "match not found", http.StatusNotFound)
			return
		}
		writeError(w, "failed to append deliveries", http.StatusInternalServerError)
		return
	}
	metrics.DeliveriesIngested.Add(float64(len(deliveries)))

	count, err := s.store.CountDeliveries(ctx, matchID)
	if err != nil {
		count = len(deliveries)
	}

	slog.Info("deliveries ingested",
		"match", matchID,
		"accepted", len(deliveries),
		"ledger_size", count,
	)

	if s.hub != nil {
		s.hub.Broadcast(WSMessage{
			Type:          "deliveries_ingested",
			MatchID:       matchID,
			DeliveryCount: count,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(IngestResponse{
		MatchID:       matchID,
		Accepted:      len(deliveries),
		DeliveryCount: count,
	})
}

// PutSnapshot handles PUT /api/v1/matches/{matchID}/snapshot
// Stores the latest aggregate state pushed by the external match-state
// service, DLS panel included.
func (s *Service) PutSnapshot(w http.ResponseWriter, r *http.Request) {
	matchID := chi.URLParam(r, "matchID")
	ctx := r.Context()

	var snap model.MatchSnapshot
	if err := json.NewDecoder(r.Body).Decode(&snap); err != nil {
		writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := s.store.PutSnapshot(ctx, matchID, &snap); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, "match not found", http.StatusNotFound)
			return
		}
		writeError(w, "failed to store snapshot", http.StatusInternalServerError)
		return
	}

	slog.Info("snapshot updated", "match", matchID, "version", snap.Version)

	if s.hub != nil {
		count, _ := s.store.CountDeliveries(ctx, matchID)
		s.hub.Broadcast(WSMessage{
			Type:            "snapshot_updated",
			MatchID:         matchID,
			DeliveryCount:   count,
			SnapshotVersion: snap.Version,
			CurrentRunRate:  analytics.RunRates(snap).CurrentRunRate.String(),
		})
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetInsights handles GET /api/v1/matches/{matchID}/insights
// Returns the full derived-analytics bundle, recomputed from the complete
// ledger and latest snapshot (or served from the idempotency cache).
func (s *Service) GetInsights(w http.ResponseWriter, r *http.Request) {
	ins, ok := s.panelInsights(w, r)
	if !ok {
		return
	}
	respondJSON(w, ins)
}

// GetManhattan handles GET /api/v1/matches/{matchID}/insights/manhattan
func (s *Service) GetManhattan(w http.ResponseWriter, r *http.Request) {
	ins, ok := s.panelInsights(w, r)
	if !ok {
		return
	}
	series := make([]seriesResponse, len(ins.Charts.Innings))
	for i, in := range ins.Charts.Innings {
		series[i] = seriesResponse{Inning: in.Inning, Values: in.PerOver}
	}
	respondJSON(w, series)
}

// GetWorm handles GET /api/v1/matches/{matchID}/insights/worm
func (s *Service) GetWorm(w http.ResponseWriter, r *http.Request) {
	ins, ok := s.panelInsights(w, r)
	if !ok {
		return
	}
	series := make([]seriesResponse, len(ins.Charts.Innings))
	for i, in := range ins.Charts.Innings {
		series[i] = seriesResponse{Inning: in.Inning, Values: in.Cumulative}
	}
	respondJSON(w, series)
}

// GetScoring handles GET /api/v1/matches/{matchID}/insights/scoring
func (s *Service) GetScoring(w http.ResponseWriter, r *http.Request) {
	ins, ok := s.panelInsights(w, r)
	if !ok {
		return
	}
	respondJSON(w, ins.Scoring)
}

// GetRunRate handles GET /api/v1/matches/{matchID}/insights/runrate
func (s *Service) GetRunRate(w http.ResponseWriter, r *http.Request) {
	ins, ok := s.panelInsights(w, r)
	if !ok {
		return
	}
	respondJSON(w, ins.RunRate)
}

// GetPartnerships handles GET /api/v1/matches/{matchID}/insights/partnerships
func (s *Service) GetPartnerships(w http.ResponseWriter, r *http.Request) {
	ins, ok := s.panelInsights(w, r)
	if !ok {
		return
	}
	respondJSON(w, ins.Partnerships)
}

// GetPhases handles GET /api/v1/matches/{matchID}/insights/phases
func (s *Service) GetPhases(w http.ResponseWriter, r *http.Request) {
	ins, ok := s.panelInsights(w, r)
	if !ok {
		return
	}
	respondJSON(w, ins.Phases)
}

// GetWagonWheel handles GET /api/v1/matches/{matchID}/insights/wagonwheel
func (s *Service) GetWagonWheel(w http.ResponseWriter, r *http.Request) {
	ins, ok := s.panelInsights(w, r)
	if !ok {
		return
	}
	respondJSON(w, ins.WagonWheel)
}

// panelInsights assembles the bundle for a panel handler, writing the error
// response itself on failure. A missing match reports as such; anything else
// is a store failure, not a lookup miss.
func (s *Service) panelInsights(w http.ResponseWriter, r *http.Request) (*model.Insights, bool) {
	ins, status := s.insights(r)
	if ins == nil {
		msg := "failed to assemble insights"
		if status == http.StatusNotFound {
			msg = "match not found"
		}
		writeError(w, msg, status)
		return nil, false
	}
	return ins, true
}

// insights assembles the ledger and snapshot for the requested match and
// returns the derived bundle, consulting the idempotency cache first. A nil
// result carries the HTTP status to report.
func (s *Service) insights(r *http.Request) (*model.Insights, int) {
	matchID := chi.URLParam(r, "matchID")
	ctx := r.Context()

	match, err := s.store.GetMatch(ctx, matchID)
	if err != nil {
		return nil, http.StatusNotFound
	}

	deliveries, err := s.store.GetDeliveries(ctx, matchID)
	if err != nil {
		return nil, http.StatusInternalServerError
	}

	snap, err := s.store.GetSnapshot(ctx, matchID)
	if err != nil {
		// No snapshot yet: derive what we can from the ledger alone.
		snap = &model.MatchSnapshot{}
	}
	if snap.OversLimit == 0 {
		snap.OversLimit = match.OversLimit
	}

	if cached, ok := s.cache.Get(ctx, matchID, len(deliveries), snap.Version); ok {
		metrics.InsightsRequests.WithLabelValues("cache").Inc()
		return cached, http.StatusOK
	}

	start := time.Now()
	ins := analytics.BuildInsights(matchID, deliveries, *snap, match.RosterLookup())
	metrics.RecomputeDuration.Observe(time.Since(start).Seconds())
	metrics.InsightsRequests.WithLabelValues("fresh").Inc()

	s.cache.Put(ctx, &ins)
	return &ins, http.StatusOK
}

// respondJSON writes a JSON 200 response.
func respondJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
