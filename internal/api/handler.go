package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rgehrsitz/rtgo/internal/breakeven"
	"github.com/rgehrsitz/rtgo/internal/calculation"
	"github.com/rgehrsitz/rtgo/internal/compare"
	"github.com/rgehrsitz/rtgo/internal/config"
	"github.com/rgehrsitz/rtgo/internal/domain"
	"github.com/rgehrsitz/rtgo/internal/legal"
	"github.com/rgehrsitz/rtgo/internal/logging"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

// Handler holds dependencies for API handlers.
type Handler struct {
	registry *legal.Registry
	iss      calculation.ISSLookup
	logger   *zap.Logger
	parser   *config.InputParser
	version  string

	mu      sync.Mutex
	engines map[int]*calculation.CalculationEngine
}

// NewHandler creates a new API handler.
func NewHandler(registry *legal.Registry, iss calculation.ISSLookup, logger *zap.Logger, version string) *Handler {
	if registry == nil {
		registry = legal.Default()
	}
	return &Handler{
		registry: registry,
		iss:      iss,
		logger:   logger,
		parser:   config.NewInputParser(),
		version:  version,
		engines:  make(map[int]*calculation.CalculationEngine),
	}
}

// ResponseMetadata is attached to every evaluation response.
type ResponseMetadata struct {
	RequestID string `json:"requestId"`
	TraceID   string `json:"traceId"`
	TotalMs   int64  `json:"totalMs"`
	Version   string `json:"version"`
}

// ScenariosResponse is the response for POST /v1/scenarios.
type ScenariosResponse struct {
	Report   *domain.ScenarioReport `json:"report"`
	Metadata ResponseMetadata       `json:"metadata"`
}

// CompareResponse is the response for POST /v1/compare.
type CompareResponse struct {
	Comparison *compare.ComparisonSet `json:"comparison"`
	Metadata   ResponseMetadata       `json:"metadata"`
}

// Health returns service status.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "healthy",
		"version":     h.version,
		"fiscalYears": h.registry.Years(),
	})
}

// Scenarios handles POST /v1/scenarios?year=2025.
func (h *Handler) Scenarios(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	engine, status, err := h.engineFor(r)
	if err != nil {
		writeError(w, status, err.Error())
		return
	}

	req, err := h.decodeRequest(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	report, err := engine.Run(r.Context(), req)
	if err != nil {
		h.writeEngineError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, ScenariosResponse{
		Report:   report,
		Metadata: h.metadata(r, start),
	})
}

// Compare handles POST /v1/compare?year=2025&base=clt.
func (h *Handler) Compare(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	engine, status, err := h.engineFor(r)
	if err != nil {
		writeError(w, status, err.Error())
		return
	}

	req, err := h.decodeRequest(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	opts := compare.CompareOptions{BaseKind: domain.RegimeKind(r.URL.Query().Get("base"))}
	compSet, err := compare.NewCompareEngine(engine).Compare(r.Context(), req, opts)
	if err != nil {
		h.writeEngineError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, CompareResponse{
		Comparison: compSet,
		Metadata:   h.metadata(r, start),
	})
}

// BreakevenResponse is the response for POST /v1/breakeven. Exactly one of Result and
// Crossovers is set, depending on whether ?against= was given.
type BreakevenResponse struct {
	Result     *breakeven.Result      `json:"result,omitempty"`
	Crossovers *breakeven.MultiResult `json:"crossovers,omitempty"`
	Metadata   ResponseMetadata       `json:"metadata"`
}

// Breakeven handles POST /v1/breakeven?regime=simples_single&against=presumed&dimension=revenue&min=&max=.
func (h *Handler) Breakeven(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	engine, status, err := h.engineFor(r)
	if err != nil {
		writeError(w, status, err.Error())
		return
	}

	req, err := h.decodeRequest(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	in, err := engine.Normalizer.Normalize(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	q := r.URL.Query()
	solveReq := breakeven.Request{
		Input:     in,
		Dimension: breakeven.DimensionRevenue,
		Regime:    domain.RegimeSimplesSingle,
		Against:   domain.RegimeKind(q.Get("against")),
	}
	if v := q.Get("dimension"); v != "" {
		solveReq.Dimension = breakeven.Dimension(v)
	}
	if v := q.Get("regime"); v != "" {
		solveReq.Regime = domain.RegimeKind(v)
	}
	for name, dst := range map[string]*decimal.Decimal{"min": &solveReq.Min, "max": &solveReq.Max} {
		if v := q.Get(name); v != "" {
			if *dst, err = decimal.NewFromString(v); err != nil {
				writeError(w, http.StatusBadRequest, fmt.Sprintf("%s must be a number", name))
				return
			}
		}
	}

	resp := BreakevenResponse{}
	solver := breakeven.NewDefaultSolver(engine)
	if solveReq.Against == "" {
		resp.Crossovers, err = solver.Crossovers(r.Context(), solveReq)
	} else {
		resp.Result, err = solver.Solve(r.Context(), solveReq)
	}
	if err != nil {
		h.writeEngineError(w, r, err)
		return
	}

	resp.Metadata = h.metadata(r, start)
	writeJSON(w, http.StatusOK, resp)
}

// ListConstants returns the fiscal years with built-in or loaded tables.
func (h *Handler) ListConstants(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"fiscalYears": h.registry.Years(),
		"default":     legal.DefaultFiscalYear,
	})
}

// GetConstants returns the legal tables of one fiscal year.
func (h *Handler) GetConstants(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "year must be a number")
		return
	}

	lc, err := h.registry.Get(year)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, lc)
}

// engineFor resolves the ?year= parameter to an engine, building it once per year
func (h *Handler) engineFor(r *http.Request) (*calculation.CalculationEngine, int, error) {
	year := legal.DefaultFiscalYear
	if v := r.URL.Query().Get("year"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return nil, http.StatusBadRequest, fmt.Errorf("year must be a number")
		}
		year = parsed
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if engine, ok := h.engines[year]; ok {
		return engine, 0, nil
	}

	lc, err := h.registry.Get(year)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownFiscalYear) {
			return nil, http.StatusNotFound, err
		}
		return nil, http.StatusInternalServerError, err
	}

	engine := calculation.NewCalculationEngine(lc)
	engine.SetLogger(logging.NewEngineLogger(h.logger))
	if h.iss != nil {
		engine.SetISSLookup(h.iss)
	}
	h.engines[year] = engine
	return engine, 0, nil
}

func (h *Handler) decodeRequest(w http.ResponseWriter, r *http.Request) (*domain.ScenarioRequest, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req domain.ScenarioRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return nil, fmt.Errorf("invalid JSON request body: %w", err)
	}

	if err := h.parser.ValidateRequest(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

func (h *Handler) writeEngineError(w http.ResponseWriter, r *http.Request, err error) {
	if r.Context().Err() != nil {
		h.logger.Warn("request cancelled", zap.String("request_id", GetRequestID(r.Context())), zap.Error(err))
		writeError(w, http.StatusServiceUnavailable, "request cancelled")
		return
	}
	writeError(w, http.StatusBadRequest, err.Error())
}

func (h *Handler) metadata(r *http.Request, start time.Time) ResponseMetadata {
	return ResponseMetadata{
		RequestID: GetRequestID(r.Context()),
		TraceID:   GetTraceID(r.Context()),
		TotalMs:   time.Since(start).Milliseconds(),
		Version:   h.version,
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
