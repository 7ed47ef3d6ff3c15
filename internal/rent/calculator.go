// Package rent implements the statutory rent-adjustment formulas for
// value-increasing investments in Swiss residential property.
package rent

import (
	"context"

	"go.uber.org/zap"

	"github.com/swissrent/mietzins/internal/refdata"
	"github.com/swissrent/mietzins/pkg/constants"
	"github.com/swissrent/mietzins/pkg/mathutil"
	"github.com/swissrent/mietzins/pkg/validation"
)

// Input holds the caller-supplied investment parameters.
type Input struct {
	CurrentRent     float64 `json:"currentRent"`     // CHF per month; an arbitrarily small positive value models "no prior rent"
	Investment      float64 `json:"investment"`      // CHF
	ValueShareRate  float64 `json:"valueShareRate"`  // percent of the investment that increases value
	LifespanYears   float64 `json:"lifespanYears"`   // straight-line amortization period
	MaintenanceRate float64 `json:"maintenanceRate"` // percent; 0 means the statutory default of 10
}

// Result is the monetary breakdown of a permissible rent adjustment. Every
// field is rounded to the nearest 0.05 CHF.
type Result struct {
	ValueIncreasingShare float64 `json:"valueIncreasingShare"` // CHF
	Depreciation         float64 `json:"depreciation"`         // CHF per year
	Interest             float64 `json:"interest"`             // CHF per year
	Maintenance          float64 `json:"maintenance"`          // CHF per year
	MonthlyIncrease      float64 `json:"monthlyIncrease"`      // CHF per month
	MonthlyRent          float64 `json:"monthlyRent"`          // CHF per month
}

// Adjustment pairs a result with the reference data snapshot it used.
type Adjustment struct {
	Reference refdata.ReferenceData `json:"reference"`
	Result    Result                `json:"result"`
}

// ReferenceFetcher is satisfied by refdata.Fetcher.
type ReferenceFetcher interface {
	Fetch(ctx context.Context) (refdata.ReferenceData, error)
}

// ApplyDefaults fills in the statutory maintenance surcharge when the
// caller left it unset.
func (input *Input) ApplyDefaults() {
	if input.MaintenanceRate == 0 {
		input.MaintenanceRate = constants.DefaultMaintenanceRatePct
	}
}

// Validate rejects parameters the formulas would turn into division by zero
// or negative charges.
func (input Input) Validate() error {
	if err := validation.PositiveAmount("currentRent", input.CurrentRent); err != nil {
		return err
	}
	if err := validation.NonNegativeAmount("investment", input.Investment); err != nil {
		return err
	}
	if err := validation.PercentRange("valueShareRate", input.ValueShareRate); err != nil {
		return err
	}
	if err := validation.PositiveAmount("lifespanYears", input.LifespanYears); err != nil {
		return err
	}
	return validation.PercentRange("maintenanceRate", input.MaintenanceRate)
}

// AllowedInterestRate returns the permitted interest rate in percent: half a
// percentage point above the mortgage reference rate, halved again for the
// landlord/tenant split.
func AllowedInterestRate(mortgageRate float64) float64 {
	return (mortgageRate + constants.InterestMarginPct) / constants.InterestSplitDivisor
}

// Calculate applies the statutory formula chain for the given mortgage
// reference rate. Pure with respect to its arguments: no fetching, no
// printing, identical inputs yield identical rounded outputs.
func Calculate(logger *zap.Logger, input Input, mortgageRate float64) (Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	input.ApplyDefaults()
	if err := input.Validate(); err != nil {
		return Result{}, err
	}

	valueShare := mathutil.ApplyPercentage(input.Investment, input.ValueShareRate)
	depreciation := valueShare / input.LifespanYears
	interest := mathutil.ApplyPercentage(valueShare, AllowedInterestRate(mortgageRate))
	yearlyCharges := depreciation + interest
	maintenance := mathutil.ApplyPercentage(yearlyCharges, input.MaintenanceRate)
	monthlyIncrease := (yearlyCharges + maintenance) / constants.MonthsPerYear
	monthlyRent := (constants.MonthsPerYear*input.CurrentRent + yearlyCharges + maintenance) / constants.MonthsPerYear

	logger.Debug("computed rent adjustment",
		zap.String("op", "rent.Calculate"),
		zap.Float64("mortgageRate", mortgageRate),
		zap.Float64("allowedInterestRate", AllowedInterestRate(mortgageRate)),
		zap.Float64("monthlyIncrease", monthlyIncrease),
	)

	return Result{
		ValueIncreasingShare: mathutil.RoundRappen(valueShare),
		Depreciation:         mathutil.RoundRappen(depreciation),
		Interest:             mathutil.RoundRappen(interest),
		Maintenance:          mathutil.RoundRappen(maintenance),
		MonthlyIncrease:      mathutil.RoundRappen(monthlyIncrease),
		MonthlyRent:          mathutil.RoundRappen(monthlyRent),
	}, nil
}

// CalculateCurrent fetches the current reference data and applies the
// formula chain to it.
func CalculateCurrent(ctx context.Context, logger *zap.Logger, fetcher ReferenceFetcher, input Input) (Adjustment, error) {
	data, err := fetcher.Fetch(ctx)
	if err != nil {
		return Adjustment{}, err
	}
	result, err := Calculate(logger, input, data.MortgageRate)
	if err != nil {
		return Adjustment{}, err
	}
	return Adjustment{Reference: data, Result: result}, nil
}
