package server

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/swissrent/mietzins/internal/refdata"
	"github.com/swissrent/mietzins/internal/rent"
)

type stubFetcher struct {
	data refdata.ReferenceData
	err  error
}

func (s stubFetcher) Fetch(ctx context.Context) (refdata.ReferenceData, error) {
	return s.data, s.err
}

func snapshot() refdata.ReferenceData {
	return refdata.ReferenceData{
		MortgageRate:   1.25,
		AsOf:           time.Date(2025, 8, 31, 0, 0, 0, 0, time.UTC),
		InflationIndex: 107.1,
	}
}

func TestHandleReferenceSuccess(t *testing.T) {
	handler := NewHandler(zap.NewNop(), stubFetcher{data: snapshot()}, "test")

	req := httptest.NewRequest(http.MethodGet, "/api/reference", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var data refdata.ReferenceData
	if err := json.Unmarshal(rr.Body.Bytes(), &data); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if data.MortgageRate != 1.25 {
		t.Errorf("mortgage rate = %v, expected 1.25", data.MortgageRate)
	}
}

func TestHandleReferenceFetchFailure(t *testing.T) {
	fetchErr := errors.New("mortgage reference rate source: timeout")
	handler := NewHandler(zap.NewNop(), stubFetcher{err: fetchErr}, "test")

	req := httptest.NewRequest(http.MethodGet, "/api/reference", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadGateway {
		t.Fatalf("expected status 502, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "mortgage reference rate source") {
		t.Errorf("error response should name the failing stage: %s", rr.Body.String())
	}
}

func TestHandleReferenceMethodNotAllowed(t *testing.T) {
	handler := NewHandler(zap.NewNop(), stubFetcher{data: snapshot()}, "test")

	req := httptest.NewRequest(http.MethodPost, "/api/reference", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected status 405, got %d", rr.Code)
	}
}

func TestHandleRentWithFetchedRate(t *testing.T) {
	handler := NewHandler(zap.NewNop(), stubFetcher{data: snapshot()}, "test")

	body := `{"currentRent": 1000, "investment": 100000, "valueShareRate": 50, "lifespanYears": 12}`
	req := httptest.NewRequest(http.MethodPost, "/api/rent", strings.NewReader(body))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp struct {
		Reference *refdata.ReferenceData `json:"reference"`
		Result    rent.Result            `json:"result"`
		Duration  string                 `json:"duration"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Reference == nil || resp.Reference.MortgageRate != 1.25 {
		t.Errorf("expected reference snapshot in response, got %+v", resp.Reference)
	}
	if math.Abs(resp.Result.MonthlyIncrease-422.05) > 0.001 {
		t.Errorf("monthly increase = %v, expected 422.05", resp.Result.MonthlyIncrease)
	}
	if resp.Duration == "" {
		t.Error("expected duration in response")
	}
}

func TestHandleRentWithRateOverride(t *testing.T) {
	// The override skips the fetch entirely; a failing fetcher proves it.
	handler := NewHandler(zap.NewNop(), stubFetcher{err: errors.New("unreachable")}, "test")

	body := `{"currentRent": 1000, "investment": 100000, "valueShareRate": 50, "lifespanYears": 12, "mortgageRate": 1.25}`
	req := httptest.NewRequest(http.MethodPost, "/api/rent", strings.NewReader(body))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp struct {
		Reference *refdata.ReferenceData `json:"reference"`
		Result    rent.Result            `json:"result"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Reference != nil {
		t.Error("no reference snapshot expected when the rate is overridden")
	}
	if math.Abs(resp.Result.ValueIncreasingShare-50000) > 0.001 {
		t.Errorf("value-increasing share = %v, expected 50000", resp.Result.ValueIncreasingShare)
	}
}

func TestHandleRentValidationError(t *testing.T) {
	handler := NewHandler(zap.NewNop(), stubFetcher{data: snapshot()}, "test")

	body := `{"currentRent": 1000, "investment": 100000, "valueShareRate": 50, "lifespanYears": 0, "mortgageRate": 1.25}`
	req := httptest.NewRequest(http.MethodPost, "/api/rent", strings.NewReader(body))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d: %s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), "lifespanYears") {
		t.Errorf("error should name the offending field: %s", rr.Body.String())
	}
}

func TestHandleRentMalformedBody(t *testing.T) {
	handler := NewHandler(zap.NewNop(), stubFetcher{data: snapshot()}, "test")

	req := httptest.NewRequest(http.MethodPost, "/api/rent", strings.NewReader(`{"currentRent": `))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rr.Code)
	}
}

func TestHandleVersion(t *testing.T) {
	handler := NewHandler(zap.NewNop(), stubFetcher{data: snapshot()}, "1.2.3")

	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "1.2.3") {
		t.Errorf("expected version in response: %s", rr.Body.String())
	}
}
