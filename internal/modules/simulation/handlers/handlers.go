// Package handlers provides HTTP handlers for the simulation API.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/aristath/qsignal/internal/events"
	"github.com/aristath/qsignal/internal/modules/runs"
	"github.com/aristath/qsignal/internal/modules/simulation"
	"github.com/aristath/qsignal/pkg/formulas"
)

// PipelineRunner defines the contract for executing pipeline runs.
// Used to enable testing with mocks.
type PipelineRunner interface {
	Run(qubits, shots int) (*simulation.RunResult, error)
}

// CommentaryProvider defines the contract for generating run commentary.
type CommentaryProvider interface {
	Enabled() bool
	ForRun(ctx context.Context, qubits int, accuracy float64) (string, error)
}

// Handler provides HTTP handlers for the simulation module
type Handler struct {
	svc           PipelineRunner
	repo          *runs.Repository
	bus           *events.Bus
	commentary    CommentaryProvider
	defaultQubits int
	defaultShots  int
	runTTL        time.Duration
	log           zerolog.Logger
}

// NewHandler creates a new simulation handler instance
func NewHandler(
	svc PipelineRunner,
	repo *runs.Repository,
	bus *events.Bus,
	commentary CommentaryProvider,
	defaultQubits int,
	defaultShots int,
	runTTL time.Duration,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		svc:           svc,
		repo:          repo,
		bus:           bus,
		commentary:    commentary,
		defaultQubits: defaultQubits,
		defaultShots:  defaultShots,
		runTTL:        runTTL,
		log:           log.With().Str("module", "simulation_handlers").Logger(),
	}
}

// RunRequest represents a request to execute the pipeline
type RunRequest struct {
	Qubits int `json:"qubits"`
	Shots  int `json:"shots"`
}

// RunResponse is the serialized form of a stored run
type RunResponse struct {
	ID        string                    `json:"id"`
	Qubits    int                       `json:"qubits"`
	Shots     int                       `json:"shots"`
	Input     []int                     `json:"input"`
	Output    []int                     `json:"output"`
	Spectrum  []float64                 `json:"spectrum"`
	History   []simulation.HistoryPoint `json:"history"`
	Accuracy  float64                   `json:"accuracy"`
	CreatedAt time.Time                 `json:"created_at"`
}

// TrendResponse summarizes stored run accuracies for the dashboard
type TrendResponse struct {
	Accuracies []float64 `json:"accuracies"`
	SMA        []float64 `json:"sma"`
	EMA        []float64 `json:"ema"`
	Mean       float64   `json:"mean"`
	StdDev     float64   `json:"std_dev"`
	Count      int       `json:"count"`
	Period     int       `json:"period"`
}

// HandleRun handles POST /api/simulation/run
// Executes the pipeline, stores the result and broadcasts it.
func (h *Handler) HandleRun(w http.ResponseWriter, r *http.Request) {
	var req RunRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.log.Error().Err(err).Msg("Failed to decode run request")
			h.writeError(w, "Invalid request body", http.StatusBadRequest)
			return
		}
	}

	// Zero values fall back to configured defaults; explicit negatives are
	// passed through so the pipeline rejects them.
	if req.Qubits == 0 {
		req.Qubits = h.defaultQubits
	}
	if req.Shots == 0 {
		req.Shots = h.defaultShots
	}

	result, err := h.svc.Run(req.Qubits, req.Shots)
	if err != nil {
		if errors.Is(err, simulation.ErrInvalidArgument) {
			h.writeError(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.log.Error().Err(err).Msg("Pipeline run failed")
		h.writeError(w, "Pipeline run failed", http.StatusInternalServerError)
		return
	}

	record, err := h.repo.Save(req.Qubits, req.Shots, result, h.runTTL)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to store run")
		h.writeError(w, "Failed to store run", http.StatusInternalServerError)
		return
	}

	h.bus.Publish(events.RunCompleted, record)

	h.writeJSON(w, http.StatusCreated, toRunResponse(record))
}

// HandleListRuns handles GET /api/simulation/runs
func (h *Handler) HandleListRuns(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			h.writeError(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	records, err := h.repo.List(limit)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list runs")
		h.writeError(w, "Failed to list runs", http.StatusInternalServerError)
		return
	}

	responses := make([]RunResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, toRunResponse(record))
	}
	h.writeJSON(w, http.StatusOK, responses)
}

// HandleGetRun handles GET /api/simulation/runs/{id}
func (h *Handler) HandleGetRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	record, err := h.repo.Get(id)
	if err != nil {
		h.log.Error().Err(err).Str("run_id", id).Msg("Failed to get run")
		h.writeError(w, "Failed to get run", http.StatusInternalServerError)
		return
	}
	if record == nil {
		h.writeError(w, "Run not found", http.StatusNotFound)
		return
	}

	h.writeJSON(w, http.StatusOK, toRunResponse(record))
}

// HandleTrend handles GET /api/simulation/trend
// Returns smoothed accuracy series over stored runs.
func (h *Handler) HandleTrend(w http.ResponseWriter, r *http.Request) {
	period := 5
	if raw := r.URL.Query().Get("period"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			h.writeError(w, "period must be a positive integer", http.StatusBadRequest)
			return
		}
		period = parsed
	}

	accuracies, err := h.repo.Accuracies(200)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to load accuracies")
		h.writeError(w, "Failed to load accuracies", http.StatusInternalServerError)
		return
	}

	response := TrendResponse{
		Accuracies: accuracies,
		SMA:        formulas.SMA(accuracies, period),
		EMA:        formulas.EMA(accuracies, period),
		Mean:       formulas.Mean(accuracies),
		StdDev:     formulas.StdDev(accuracies),
		Count:      len(accuracies),
		Period:     period,
	}
	h.writeJSON(w, http.StatusOK, response)
}

// HandleCommentary handles GET /api/simulation/runs/{id}/commentary
func (h *Handler) HandleCommentary(w http.ResponseWriter, r *http.Request) {
	if h.commentary == nil || !h.commentary.Enabled() {
		h.writeError(w, "Commentary service is not configured", http.StatusServiceUnavailable)
		return
	}

	id := chi.URLParam(r, "id")
	record, err := h.repo.Get(id)
	if err != nil {
		h.log.Error().Err(err).Str("run_id", id).Msg("Failed to get run for commentary")
		h.writeError(w, "Failed to get run", http.StatusInternalServerError)
		return
	}
	if record == nil {
		h.writeError(w, "Run not found", http.StatusNotFound)
		return
	}

	text, err := h.commentary.ForRun(r.Context(), record.Qubits, record.Accuracy)
	if err != nil {
		h.log.Error().Err(err).Str("run_id", id).Msg("Commentary generation failed")
		h.writeError(w, "Commentary generation failed", http.StatusBadGateway)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"run_id":     record.ID,
		"commentary": text,
	})
}

func toRunResponse(record *runs.Record) RunResponse {
	return RunResponse{
		ID:        record.ID,
		Qubits:    record.Qubits,
		Shots:     record.Shots,
		Input:     record.Result.Input,
		Output:    record.Result.Output,
		Spectrum:  record.Result.Spectrum,
		History:   record.Result.History,
		Accuracy:  record.Result.Accuracy,
		CreatedAt: record.CreatedAt,
	}
}

// writeJSON writes a JSON response with status code
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// writeError writes an error response
func (h *Handler) writeError(w http.ResponseWriter, message string, status int) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
