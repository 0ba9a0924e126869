// Package server exposes the buy versus rent simulation over HTTP.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/finaly55/opti-credit/internal/config"
	"github.com/finaly55/opti-credit/internal/optimizer"
	"github.com/finaly55/opti-credit/internal/simulation"
	"github.com/finaly55/opti-credit/pkg/appreciation"
	"github.com/finaly55/opti-credit/pkg/constants"
	"github.com/finaly55/opti-credit/pkg/expenses"
	"github.com/finaly55/opti-credit/pkg/optimization"
	"github.com/finaly55/opti-credit/pkg/output"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type handler struct {
	logger        *zap.Logger
	maxUploadSize int64
	version       string
	sim           simulation.Runner
}

// NewHandler constructs the HTTP handler serving the simulation API. A nil
// sim runs projections directly on the engine.
func NewHandler(logger *zap.Logger, maxUploadSize int64, version string, sim simulation.Runner) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	if sim == nil {
		sim = simulation.NewEngine(logger)
	}

	h := &handler{logger: logger, maxUploadSize: maxUploadSize, version: trimmedVersion, sim: sim}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/simulate", h.handleSimulate)
	mux.HandleFunc("/api/simulate/upload", h.handleSimulateUpload)
	mux.HandleFunc("/api/report", h.handleReport)
	mux.HandleFunc("/api/appreciation", h.handleAppreciation)
	mux.HandleFunc("/api/version", h.handleVersion)

	return mux
}

type simulateRequest struct {
	Params         simulation.Params        `json:"params"`
	CustomExpenses []expenses.CustomExpense `json:"customExpenses"`
	TargetYear     int                      `json:"targetYear"`
	Optimizer      *config.OptimizerConfig  `json:"optimizer,omitempty"`
}

func (req simulateRequest) configuration() *config.Configuration {
	conf := &config.Configuration{
		Simulation: config.SimulationConfig{
			TargetYear:     req.TargetYear,
			Params:         req.Params,
			CustomExpenses: req.CustomExpenses,
		},
		Optimizer: req.Optimizer,
	}
	conf.Normalize()
	return conf
}

type simulateResponse struct {
	Analysis     simulation.Analysis    `json:"analysis"`
	Optimization *optimization.Summary  `json:"optimization,omitempty"`
	Warnings     []string               `json:"warnings,omitempty"`
	Duration     string                 `json:"duration"`
	Config       map[string]interface{} `json:"config,omitempty"`
}

type appreciationRequest struct {
	CurrentPrice float64  `json:"currentPrice"`
	FuturePrice  *float64 `json:"futurePrice,omitempty"`
	Rate         *float64 `json:"rate,omitempty"`
	Years        float64  `json:"years"`
}

type appreciationResponse struct {
	Rate        *float64 `json:"rate,omitempty"`
	FuturePrice *float64 `json:"futurePrice,omitempty"`
}

func (h *handler) handleSimulate(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleSimulate"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	req, ok := h.decodeSimulateRequest(w, r, op)
	if !ok {
		return
	}

	h.runSimulation(w, r, req.configuration(), nil, start, op)
}

func (h *handler) handleSimulateUpload(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleSimulateUpload"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds limit of %d bytes", h.maxUploadSize), op)
			return
		}
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to parse upload: %v", err), op)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "missing configuration file", op)
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			h.logger.Warn("failed to close uploaded file",
				zap.String("op", op),
				zap.Error(closeErr),
			)
		}
	}()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to read configuration: %v", err), op)
		return
	}

	configMap, err := decodeYAMLToMap(buf.Bytes())
	if err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("error reading config data, %v", err), op)
		return
	}

	conf, err := config.LoadConfigurationFromReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	h.runSimulation(w, r, conf, configMap, start, op)
}

func (h *handler) handleReport(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleReport"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	req, ok := h.decodeSimulateRequest(w, r, op)
	if !ok {
		return
	}

	conf := req.configuration()
	report := output.Report{Analysis: h.analyze(r.Context(), conf)}
	report.Optimization = h.optimize(r.Context(), conf, op)

	data, err := output.PDFReport(report)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error(), op)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", constants.DefaultPDFFile))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.logger.Error("failed to write pdf response", zap.String("op", op), zap.Error(err))
	}
}

func (h *handler) handleAppreciation(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleAppreciation"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	var req appreciationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op)
		return
	}
	if req.FuturePrice == nil && req.Rate == nil {
		h.respondError(w, http.StatusBadRequest, "either futurePrice or rate is required", op)
		return
	}
	if req.FuturePrice != nil && *req.FuturePrice <= 0 {
		h.respondError(w, http.StatusBadRequest, "futurePrice must be positive", op)
		return
	}
	if req.Rate != nil && *req.Rate <= -constants.PercentageMultiplier {
		h.respondError(w, http.StatusBadRequest, "rate must be greater than -100", op)
		return
	}

	var resp appreciationResponse
	if req.FuturePrice != nil {
		rate := appreciation.RateFromPrices(req.CurrentPrice, *req.FuturePrice, req.Years)
		resp.Rate = &rate
	}
	if req.Rate != nil {
		price := appreciation.FuturePriceFromRate(req.CurrentPrice, *req.Rate, req.Years)
		resp.FuturePrice = &price
	}

	h.writeJSON(w, http.StatusOK, resp)
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) decodeSimulateRequest(w http.ResponseWriter, r *http.Request, op string) (simulateRequest, bool) {
	var req simulateRequest
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxUploadSize), op)
			return req, false
		}
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to decode simulation request: %v", err), op)
		return req, false
	}
	return req, true
}

func (h *handler) analyze(ctx context.Context, conf *config.Configuration) simulation.Analysis {
	sim := conf.Simulation
	return simulation.Analyze(simulation.WithContext(ctx, h.sim), sim.Params, sim.CustomExpenses, sim.TargetYear)
}

// optimize runs the configured search, or returns nil when none is set or
// the directive is unusable.
func (h *handler) optimize(ctx context.Context, conf *config.Configuration, op string) *optimization.Summary {
	if conf.Optimizer == nil {
		return nil
	}

	runner, err := optimizer.NewRunner(h.logger, simulation.WithContext(ctx, h.sim), conf.Optimizer)
	if err != nil {
		h.logger.Warn("optimizer skipped",
			zap.String("op", op),
			zap.Error(err),
		)
		return nil
	}

	sim := conf.Simulation
	summary := runner.Run(sim.Params, sim.CustomExpenses, sim.TargetYear)
	return &summary
}

func (h *handler) runSimulation(w http.ResponseWriter, r *http.Request, conf *config.Configuration, configMap map[string]interface{}, start time.Time, op string) {
	response := simulateResponse{
		Analysis:     h.analyze(r.Context(), conf),
		Optimization: h.optimize(r.Context(), conf, op),
		Warnings:     conf.ValidateConfiguration(),
		Config:       configMap,
	}

	elapsed := time.Since(start)
	response.Duration = elapsed.String()

	h.logger.Info("simulation computed",
		zap.String("op", op),
		zap.Int("months", len(response.Analysis.Result.MonthlyData)),
		zap.Int("warnings", len(response.Warnings)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, response)
}

func decodeYAMLToMap(data []byte) (map[string]interface{}, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return make(map[string]interface{}), nil
	}

	var result map[string]interface{}
	if err := yaml.Unmarshal(trimmed, &result); err != nil {
		return nil, err
	}
	if result == nil {
		result = make(map[string]interface{})
	}
	return result, nil
}

func (h *handler) respondError(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("simulation request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

// writeJSON encodes payload in full before the status line is written.
func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		var unsupported *json.UnsupportedValueError
		if errors.As(err, &unsupported) {
			h.respondError(w, http.StatusUnprocessableEntity,
				fmt.Sprintf("inputs produce a non-finite result (%s)", unsupported.Str), "server.writeJSON")
			return
		}
		h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to encode response: %v", err), "server.writeJSON")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
