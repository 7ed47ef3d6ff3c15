// Package server exposes the reference data fetch and rent calculation as a
// small JSON API.
package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/swissrent/mietzins/internal/refdata"
	"github.com/swissrent/mietzins/internal/rent"
)

type handler struct {
	logger  *zap.Logger
	fetcher rent.ReferenceFetcher
	version string
}

// NewHandler constructs the HTTP handler that serves the reference data and
// rent adjustment API.
func NewHandler(logger *zap.Logger, fetcher rent.ReferenceFetcher, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{logger: logger, fetcher: fetcher, version: trimmedVersion}

	mux := http.NewServeMux()

	// Reference data snapshot
	mux.HandleFunc("/api/reference", h.handleReference)

	// Rent adjustment calculation
	mux.HandleFunc("/api/rent", h.handleRent)

	// Version endpoint for client metadata
	mux.HandleFunc("/api/version", h.handleVersion)

	return mux
}

type rentRequest struct {
	rent.Input
	// MortgageRate overrides the fetched reference rate when set.
	MortgageRate *float64 `json:"mortgageRate,omitempty"`
}

type rentResponse struct {
	Reference *refdata.ReferenceData `json:"reference,omitempty"`
	Result    rent.Result            `json:"result"`
	Duration  string                 `json:"duration"`
}

func (h *handler) handleReference(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeError(w, http.StatusMethodNotAllowed, fmt.Errorf("method %s not allowed", r.Method))
		return
	}

	data, err := h.fetcher.Fetch(r.Context())
	if err != nil {
		h.logger.Error("reference data fetch failed",
			zap.String("op", "server.handleReference"),
			zap.Error(err),
		)
		h.writeError(w, http.StatusBadGateway, err)
		return
	}

	h.writeJSON(w, http.StatusOK, data)
}

func (h *handler) handleRent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writeError(w, http.StatusMethodNotAllowed, fmt.Errorf("method %s not allowed", r.Method))
		return
	}

	start := time.Now()

	var req rentRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	resp := rentResponse{}
	mortgageRate := 0.0
	if req.MortgageRate != nil {
		mortgageRate = *req.MortgageRate
	} else {
		data, err := h.fetcher.Fetch(r.Context())
		if err != nil {
			h.logger.Error("reference data fetch failed",
				zap.String("op", "server.handleRent"),
				zap.Error(err),
			)
			h.writeError(w, http.StatusBadGateway, err)
			return
		}
		mortgageRate = data.MortgageRate
		resp.Reference = &data
	}

	result, err := rent.Calculate(h.logger, req.Input, mortgageRate)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	resp.Result = result
	resp.Duration = time.Since(start).String()
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeError(w, http.StatusMethodNotAllowed, fmt.Errorf("method %s not allowed", r.Method))
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"version": h.version})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to encode response",
			zap.String("op", "server.writeJSON"),
			zap.Error(err),
		)
	}
}

func (h *handler) writeError(w http.ResponseWriter, status int, err error) {
	h.writeJSON(w, status, map[string]string{"error": err.Error()})
}
