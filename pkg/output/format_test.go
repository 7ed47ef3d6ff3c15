package output

import (
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/swissrent/mietzins/internal/refdata"
	"github.com/swissrent/mietzins/internal/rent"
)

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	orig := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	fn()

	if err := w.Close(); err != nil {
		t.Fatalf("failed to close pipe: %v", err)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("failed to read captured output: %v", err)
	}
	return string(data)
}

func referenceFixture() refdata.ReferenceData {
	return refdata.ReferenceData{
		MortgageRate:   1.25,
		AsOf:           time.Date(2025, 8, 31, 0, 0, 0, 0, time.UTC),
		InflationIndex: 107.1,
	}
}

func TestReferencePretty(t *testing.T) {
	out := captureStdout(t, func() {
		ReferencePretty(referenceFixture())
	})

	for _, expected := range []string{"1.25%", "31.08.2025", "107.1"} {
		if !strings.Contains(out, expected) {
			t.Errorf("report missing %q:\n%s", expected, out)
		}
	}
	if len(strings.Split(strings.TrimSpace(out), "\n")) != 4 {
		t.Errorf("expected header plus three rows:\n%s", out)
	}
}

func TestReferenceCsv(t *testing.T) {
	out := captureStdout(t, func() {
		ReferenceCsv(referenceFixture())
	})

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header and one data line:\n%s", out)
	}
	if !strings.Contains(lines[1], `"1.25"`) || !strings.Contains(lines[1], `"107.1"`) {
		t.Errorf("unexpected data line: %s", lines[1])
	}
}

func TestRentPretty(t *testing.T) {
	adj := rent.Adjustment{
		Reference: referenceFixture(),
		Result: rent.Result{
			ValueIncreasingShare: 50000.00,
			Depreciation:         4166.65,
			Interest:             437.50,
			Maintenance:          460.40,
			MonthlyIncrease:      422.05,
			MonthlyRent:          1422.05,
		},
	}

	out := captureStdout(t, func() {
		RentPretty(adj)
	})

	for _, expected := range []string{"CHF 50'000.00", "CHF 4'166.65", "CHF 437.50", "CHF 422.05", "CHF 1'422.05"} {
		if !strings.Contains(out, expected) {
			t.Errorf("report missing %q:\n%s", expected, out)
		}
	}
}

func TestRentCsv(t *testing.T) {
	adj := rent.Adjustment{
		Reference: referenceFixture(),
		Result: rent.Result{
			ValueIncreasingShare: 50000.00,
			MonthlyIncrease:      422.05,
		},
	}

	out := captureStdout(t, func() {
		RentCsv(adj)
	})

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header and one data line:\n%s", out)
	}
	if !strings.Contains(lines[1], `"50'000.00"`) || !strings.Contains(lines[1], `"422.05"`) {
		t.Errorf("unexpected data line: %s", lines[1])
	}
}
