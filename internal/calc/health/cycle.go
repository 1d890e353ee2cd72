package health

import (
	"time"

	"github.com/bobmcallan/abacus/internal/calc"
)

const (
	gestationDays = 280
	standardCycle = 28
	lutealPhase   = 14
	fertileLead   = 5
	dateLayout    = "2006-01-02"
)

func validateCycle(cycleLength int) error {
	if cycleLength < 20 || cycleLength > 45 {
		return calc.Invalid("cycle_length", "must be between 20 and 45 days")
	}
	return nil
}

// DueDateResult is the output of the pregnancy due date calculator.
type DueDateResult struct {
	DueDate        string `json:"due_date"`
	ConceptionDate string `json:"conception_date"`
	GestationWeeks int    `json:"gestation_weeks"`
	GestationDays  int    `json:"gestation_days"`
	Trimester      int    `json:"trimester"`
	DaysRemaining  int    `json:"days_remaining"`
}

// DueDate applies Naegele's rule (LMP + 280 days) adjusted for cycle length,
// and reports progress as of asOf.
func DueDate(lmp time.Time, cycleLength int, asOf time.Time) (*DueDateResult, error) {
	if err := validateCycle(cycleLength); err != nil {
		return nil, err
	}
	if lmp.After(asOf) {
		return nil, calc.Invalid("last_period", "must not be in the future")
	}
	shift := cycleLength - standardCycle
	due := lmp.AddDate(0, 0, gestationDays+shift)
	conception := lmp.AddDate(0, 0, cycleLength-lutealPhase)

	elapsed := daysBetween(lmp, asOf) - shift
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed > gestationDays+14 {
		return nil, calc.Invalid("last_period", "is more than 42 weeks ago")
	}
	trimester := 1
	switch {
	case elapsed >= 27*7:
		trimester = 3
	case elapsed >= 13*7:
		trimester = 2
	}
	return &DueDateResult{
		DueDate:        due.Format(dateLayout),
		ConceptionDate: conception.Format(dateLayout),
		GestationWeeks: elapsed / 7,
		GestationDays:  elapsed % 7,
		Trimester:      trimester,
		DaysRemaining:  daysBetween(asOf, due),
	}, nil
}

// OvulationResult is the output of the ovulation calculator.
type OvulationResult struct {
	OvulationDate string `json:"ovulation_date"`
	FertileStart  string `json:"fertile_window_start"`
	FertileEnd    string `json:"fertile_window_end"`
	NextPeriod    string `json:"next_period"`
}

// Ovulation estimates ovulation 14 days before the next period, with a
// fertile window from five days before to one day after.
func Ovulation(lmp time.Time, cycleLength int) (*OvulationResult, error) {
	if err := validateCycle(cycleLength); err != nil {
		return nil, err
	}
	ovulation := lmp.AddDate(0, 0, cycleLength-lutealPhase)
	return &OvulationResult{
		OvulationDate: ovulation.Format(dateLayout),
		FertileStart:  ovulation.AddDate(0, 0, -fertileLead).Format(dateLayout),
		FertileEnd:    ovulation.AddDate(0, 0, 1).Format(dateLayout),
		NextPeriod:    lmp.AddDate(0, 0, cycleLength).Format(dateLayout),
	}, nil
}

// daysBetween counts calendar days from a to b, ignoring time of day.
func daysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	ua := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	ub := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}
