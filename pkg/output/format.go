// Package output provides utilities for formatting and displaying fetched
// reference data and rent adjustment results. Presentation only: the core
// functions return plain records and never print.
package output

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/swissrent/mietzins/internal/refdata"
	"github.com/swissrent/mietzins/internal/rent"
	"github.com/swissrent/mietzins/pkg/datetime"
	"github.com/swissrent/mietzins/pkg/format"
)

var swissGerman = language.MustParse("de-CH")

// ReferencePretty outputs the three-row reference data report.
func ReferencePretty(data refdata.ReferenceData) {
	p := message.NewPrinter(swissGerman)
	fmt.Printf("--- Reference data ---\n")
	_, _ = p.Printf("Mortgage reference rate | %.2f%%\n", data.MortgageRate)
	fmt.Printf("As of                   | %s\n", data.AsOf.Format(datetime.ReportDateLayout))
	_, _ = p.Printf("Inflation index         | %.1f\n", data.InflationIndex)
}

// ReferenceCsv outputs the reference data in comma-separated value format.
func ReferenceCsv(data refdata.ReferenceData) {
	fmt.Printf("\"mortgage rate (%%)\",\"as of\",\"inflation index\"\n")
	fmt.Printf("\"%.2f\",\"%s\",\"%.1f\"\n",
		data.MortgageRate, data.AsOf.Format(datetime.ReportDateLayout), data.InflationIndex)
}

// RentPretty outputs a human-readable breakdown of the rent adjustment.
func RentPretty(adj rent.Adjustment) {
	rows := []struct {
		label string
		value string
	}{
		{"Mortgage reference rate", fmt.Sprintf("%.2f%% (as of %s)",
			adj.Reference.MortgageRate, adj.Reference.AsOf.Format(datetime.ReportDateLayout))},
		{"Value-increasing share", format.CHF(adj.Result.ValueIncreasingShare)},
		{"Depreciation per year", format.CHF(adj.Result.Depreciation)},
		{"Interest per year", format.CHF(adj.Result.Interest)},
		{"Maintenance surcharge per year", format.CHF(adj.Result.Maintenance)},
		{"Monthly rent increase", format.CHF(adj.Result.MonthlyIncrease)},
		{"New monthly rent", format.CHF(adj.Result.MonthlyRent)},
	}

	fmt.Printf("--- Rent adjustment ---\n")
	for _, row := range rows {
		fmt.Printf("%-30s | %s\n", row.label, row.value)
	}
}

// RentCsv outputs the rent adjustment in comma-separated value format.
func RentCsv(adj rent.Adjustment) {
	fmt.Printf("\"mortgage rate (%%)\",\"value-increasing share\",\"depreciation\",\"interest\",\"maintenance\",\"monthly increase\",\"monthly rent\"\n")
	fmt.Printf("\"%.2f\",\"%s\",\"%s\",\"%s\",\"%s\",\"%s\",\"%s\"\n",
		adj.Reference.MortgageRate,
		format.NumericCHF(adj.Result.ValueIncreasingShare),
		format.NumericCHF(adj.Result.Depreciation),
		format.NumericCHF(adj.Result.Interest),
		format.NumericCHF(adj.Result.Maintenance),
		format.NumericCHF(adj.Result.MonthlyIncrease),
		format.NumericCHF(adj.Result.MonthlyRent))
}
