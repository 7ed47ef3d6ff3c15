// Package constants provides shared constants for the mietzins application.
package constants

// Statutory formula constants for rent adjustments after value-increasing
// investments (art. 269a OR / art. 14 VMWG).
const (
	// InterestMarginPct is the surcharge on the mortgage reference rate
	// before the landlord/tenant split.
	InterestMarginPct = 0.5

	// InterestSplitDivisor halves the surcharged rate, reflecting the 50/50
	// split of interest exposure between landlord and tenant.
	InterestSplitDivisor = 2.0

	// DefaultMaintenanceRatePct is the statutory maintenance surcharge
	// applied on top of depreciation and interest charges.
	DefaultMaintenanceRatePct = 10.0

	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12
)

// Currency constants
const (
	// RappenSteps is the number of 5-centime steps per franc; amounts are
	// rounded to the nearest 0.05 CHF, the smallest coin in circulation.
	RappenSteps = 20.0

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0
)

// Reference data sources
const (
	// DefaultMortgageRateURL is the federal housing office page publishing
	// the mortgage reference rate history as an HTML table.
	DefaultMortgageRateURL = "https://www.bwo.admin.ch/bwo/de/home/mietrecht/referenzzinssatz/entwicklung-referenzzinssatz-und-durchschnittszinssatz.html"

	// DefaultInflationIndexURL is the federal statistical office spreadsheet
	// with the national consumer price index, one sheet per base year.
	DefaultInflationIndexURL = "https://dam-api.bfs.admin.ch/hub/api/dam/assets/32264071/master"

	// DefaultInflationSheet is the sheet label carrying the current-base
	// index series.
	DefaultInflationSheet = "LIK2020"

	// DefaultHTTPTimeoutSeconds bounds each remote fetch.
	DefaultHTTPTimeoutSeconds = 30
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "mietzins.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"
)
