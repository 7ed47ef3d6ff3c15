package refdata

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/swissrent/mietzins/pkg/datetime"
)

// FetchInflationIndex downloads the index spreadsheet and returns the most
// recent index point. The download stays in memory; no file is written.
func (f *Fetcher) FetchInflationIndex(ctx context.Context) (float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.inflationURL, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInflationSource, err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInflationSource, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("%w: unexpected status %s", ErrInflationSource, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInflationSource, err)
	}

	workbook, err := excelize.OpenReader(bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInflationSource, err)
	}
	defer func() {
		_ = workbook.Close()
	}()

	rows, err := workbook.GetRows(f.inflationSheet)
	if err != nil {
		return 0, fmt.Errorf("%w: sheet %q: %v", ErrInflationSource, f.inflationSheet, err)
	}

	index, year, err := LastNonMissingInLatestYear(rows)
	if err != nil {
		return 0, fmt.Errorf("%w: sheet %q: %v", ErrInflationSource, f.inflationSheet, err)
	}

	f.logger.Debug("fetched inflation index",
		zap.String("op", "refdata.FetchInflationIndex"),
		zap.Float64("index", index),
		zap.Int("year", year),
	)

	return index, nil
}

// LastNonMissingInLatestYear keeps only rows whose first cell parses as a
// year, picks the row with the highest year, and returns the rightmost
// parseable value in it together with that year. Columns after the year
// label hold the periodic index points for that year.
func LastNonMissingInLatestYear(rows [][]string) (float64, int, error) {
	latestYear := 0
	var latestRow []string
	for _, row := range rows {
		if len(row) < 2 {
			continue
		}
		year, err := datetime.ParseYearLabel(row[0])
		if err != nil {
			continue
		}
		if year > latestYear {
			latestYear = year
			latestRow = row
		}
	}
	if latestRow == nil {
		return 0, 0, fmt.Errorf("no rows with a parseable year label")
	}

	for i := len(latestRow) - 1; i >= 1; i-- {
		cell := strings.ReplaceAll(strings.TrimSpace(latestRow[i]), ",", ".")
		if cell == "" || cell == "..." {
			continue
		}
		value, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			continue
		}
		return value, latestYear, nil
	}
	return 0, 0, fmt.Errorf("no usable index value in row for year %d", latestYear)
}
