package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/rpgo/portfolio-simulator/internal/calculation"
	"github.com/rpgo/portfolio-simulator/internal/config"
	"github.com/rpgo/portfolio-simulator/internal/output"
)

const (
	// DefaultMaxSimulations caps NumSimulations per request.
	DefaultMaxSimulations = 10000
	// DefaultMaxSimulatedMonths caps NumSimulations times months per request.
	DefaultMaxSimulatedMonths = 2_000_000
	maxRequestBytes           = 1 << 20
)

// Handler serves the simulation endpoints.
type Handler struct {
	runner         *calculation.BatchRunner
	parser         *config.InputParser
	log            *logrus.Logger
	maxSimulations int
	maxWork        int
}

// NewHandler creates a handler whose batch runner logs through log.
func NewHandler(log *logrus.Logger) *Handler {
	runner := calculation.NewBatchRunner()
	runner.SetLogger(log.WithField("component", "batch"))
	return &Handler{
		runner:         runner,
		parser:         config.NewInputParser(),
		log:            log,
		maxSimulations: DefaultMaxSimulations,
		maxWork:        DefaultMaxSimulatedMonths,
	}
}

// Health handles GET /health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Defaults handles GET /api/v1/defaults
func (h *Handler) Defaults(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, DefaultsResponse{
		Parameters:     h.parser.CreateExampleConfiguration().Simulation,
		CrashPreset:    *config.DefaultCrashConfig(),
		MaxSimulations: h.maxSimulations,
	})
}

// RunSimulation handles POST /api/v1/simulations
func (h *Handler) RunSimulation(w http.ResponseWriter, r *http.Request) {
	req := SimulationRequest{SimulationParameters: h.parser.CreateExampleConfiguration().Simulation}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeInvalidRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	if req.NumSimulations > h.maxSimulations {
		writeError(w, http.StatusBadRequest, CodeInvalidParameter,
			fmt.Sprintf("num_simulations must be at most %d, got %d", h.maxSimulations, req.NumSimulations))
		return
	}
	if err := calculation.ValidateParameters(req.SimulationParameters); err != nil {
		writeError(w, http.StatusBadRequest, CodeInvalidParameter, err.Error())
		return
	}
	if work := req.NumSimulations * req.NumMonths(); work > h.maxWork {
		writeError(w, http.StatusBadRequest, CodeInvalidParameter,
			fmt.Sprintf("num_simulations × months must be at most %d, got %d", h.maxWork, work))
		return
	}

	batch, err := h.runner.Run(r.Context(), req.SimulationParameters)
	if err != nil {
		switch {
		case errors.Is(err, calculation.ErrInvalidParameter):
			writeError(w, http.StatusBadRequest, CodeInvalidParameter, err.Error())
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			h.log.WithError(err).Warn("simulation request cancelled")
			writeError(w, http.StatusServiceUnavailable, CodeCancelled, err.Error())
		default:
			h.log.WithError(err).Error("simulation failed")
			writeError(w, http.StatusInternalServerError, CodeInternal, err.Error())
		}
		return
	}

	report := calculation.NewBatchReport(batch, req.IncludePaths)
	h.log.WithFields(logrus.Fields{
		"simulations": report.Statistics.NumSimulations,
		"months":      report.Statistics.NumMonths,
		"seed":        batch.Seed,
	}).Info("simulation completed")
	writeJSON(w, http.StatusOK, output.NewReportDocument(report))
}

// NotFound returns the JSON error envelope for unknown routes.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, CodeNotFound, fmt.Sprintf("no route for %s %s", r.Method, r.URL.Path))
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: ErrorDetail{Code: code, Message: message}})
}
