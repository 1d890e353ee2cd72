package finance

import (
	"math"

	"github.com/bobmcallan/abacus/internal/calc"
)

// ROIResult is the output of the ROI calculator.
type ROIResult struct {
	Gain              float64  `json:"gain"`
	ROIPercent        float64  `json:"roi_percent"`
	AnnualizedPercent *float64 `json:"annualized_percent,omitempty"`
}

// ROI is gain over cost; annualized when a holding period is given.
func ROI(initial, final, years float64) (*ROIResult, error) {
	if err := calc.First(
		calc.Positive("initial_investment", initial),
		calc.NonNegative("final_value", final),
		calc.NonNegative("years", years),
	); err != nil {
		return nil, err
	}
	gain := final - initial
	res := &ROIResult{Gain: gain, ROIPercent: gain / initial * 100}
	if years > 0 {
		ann := (math.Pow(final/initial, 1/years) - 1) * 100
		res.AnnualizedPercent = &ann
	}
	return res, nil
}

// CAGRResult is the output of the CAGR calculator.
type CAGRResult struct {
	CAGRPercent        float64 `json:"cagr_percent"`
	TotalGrowthPercent float64 `json:"total_growth_percent"`
}

// CAGR is (end/start)^(1/years) − 1.
func CAGR(start, end, years float64) (*CAGRResult, error) {
	if err := calc.First(
		calc.Positive("start_value", start),
		calc.NonNegative("end_value", end),
		calc.Positive("years", years),
	); err != nil {
		return nil, err
	}
	return &CAGRResult{
		CAGRPercent:        (math.Pow(end/start, 1/years) - 1) * 100,
		TotalGrowthPercent: (end/start - 1) * 100,
	}, nil
}
