package refdata

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/swissrent/mietzins/pkg/datetime"
)

// FetchMortgageRate scrapes the published reference-rate table and returns
// the currently valid rate in percent.
func (f *Fetcher) FetchMortgageRate(ctx context.Context) (float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.mortgageURL, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrMortgageSource, err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrMortgageSource, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("%w: unexpected status %s", ErrMortgageSource, resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrMortgageSource, err)
	}

	rows, err := parseRateTable(doc)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrMortgageSource, err)
	}

	current, err := MostRecentCompleteRow(rows)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrMortgageSource, err)
	}

	f.logger.Debug("fetched mortgage reference rate",
		zap.String("op", "refdata.FetchMortgageRate"),
		zap.Float64("rate", current.Rate),
		zap.String("effectiveDate", current.EffectiveDate.Format(datetime.ReportDateLayout)),
	)

	return current.Rate, nil
}

// parseRateTable reads the first table on the page into rate rows. The rate
// is expected in the first column and the effective date in the second; rows
// missing either are dropped.
func parseRateTable(doc *goquery.Document) ([]RateRow, error) {
	table := doc.Find("table").First()
	if table.Length() == 0 {
		return nil, fmt.Errorf("no table found in document")
	}

	var rows []RateRow
	narrow := false
	table.Find("tr").Each(func(i int, tr *goquery.Selection) {
		cells := tr.Find("td")
		if cells.Length() == 0 {
			// header row
			return
		}
		if cells.Length() < 2 {
			narrow = true
			return
		}
		rate, err := parsePercent(cells.Eq(0).Text())
		if err != nil {
			return
		}
		effective, err := datetime.ParseSwissDate(cells.Eq(1).Text())
		if err != nil {
			return
		}
		rows = append(rows, RateRow{Rate: rate, EffectiveDate: effective})
	})

	if len(rows) == 0 {
		if narrow {
			return nil, fmt.Errorf("rate table has fewer than 2 columns")
		}
		return nil, fmt.Errorf("no complete rows in rate table")
	}
	return rows, nil
}

// MostRecentCompleteRow sorts the filtered rows by effective date descending
// and returns the first one. The source publishes newest-first, but that
// ordering is not trusted.
func MostRecentCompleteRow(rows []RateRow) (RateRow, error) {
	if len(rows) == 0 {
		return RateRow{}, fmt.Errorf("no complete rows in rate table")
	}
	sorted := make([]RateRow, len(rows))
	copy(sorted, rows)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].EffectiveDate.After(sorted[j].EffectiveDate)
	})
	return sorted[0], nil
}

// parsePercent converts cell text such as "1,75%" or "1.25 %" into a float.
func parsePercent(value string) (float64, error) {
	cleaned := strings.TrimSpace(value)
	cleaned = strings.TrimSuffix(cleaned, "%")
	cleaned = strings.ReplaceAll(cleaned, ",", ".")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return 0, fmt.Errorf("empty rate cell")
	}
	return strconv.ParseFloat(cleaned, 64)
}
