package catalog

import (
	"context"
	"time"

	"github.com/bobmcallan/abacus/internal/calc"
	"github.com/bobmcallan/abacus/internal/calc/datetime"
	"github.com/bobmcallan/abacus/internal/models"
)

// dateOr parses an optional date parameter, defaulting to today.
func (r *Registry) dateOr(a Args, name string) (time.Time, error) {
	if s := a.String(name); s != "" {
		return calc.ParseDate(name, s)
	}
	return r.today(), nil
}

func (r *Registry) registerDateTime() {
	dt := models.CategoryDateTime

	r.add(models.CalculatorDefinition{
		Name:        "age",
		Title:       "Age Calculator",
		Category:    dt,
		Description: "Exact age in years, months and days, with totals and the next birthday.",
		Formula:     "calendar difference, borrowing days from the previous month",
		Params: []models.ParamDefinition{
			required(str("birth_date", "Date of birth (YYYY-MM-DD)")),
			str("as_of", "Date to measure age on (default today)"),
		},
	}, Args{"birth_date": "1990-05-15", "as_of": "2025-03-10"}, func(_ context.Context, a Args) (interface{}, error) {
		birth, err := calc.ParseDate("birth_date", a.String("birth_date"))
		if err != nil {
			return nil, err
		}
		asOf, err := r.dateOr(a, "as_of")
		if err != nil {
			return nil, err
		}
		return datetime.Age(birth, asOf)
	})

	r.add(models.CalculatorDefinition{
		Name:        "date_diff",
		Title:       "Date Difference Calculator",
		Category:    dt,
		Description: "Days, weeks, and years/months/days between two dates, plus business days.",
		Formula:     "end − start",
		Params: []models.ParamDefinition{
			required(str("start_date", "Start date (YYYY-MM-DD)")),
			str("end_date", "End date (default today)"),
			def(boolean("include_end", "Count the end date"), false),
		},
	}, Args{"start_date": "2025-01-01", "end_date": "2025-12-25"}, func(_ context.Context, a Args) (interface{}, error) {
		start, err := calc.ParseDate("start_date", a.String("start_date"))
		if err != nil {
			return nil, err
		}
		end, err := r.dateOr(a, "end_date")
		if err != nil {
			return nil, err
		}
		return datetime.DateDiff(start, end, a.Bool("include_end")), nil
	})

	r.add(models.CalculatorDefinition{
		Name:        "date_add",
		Title:       "Add or Subtract Dates",
		Category:    dt,
		Description: "Adds (or with negative values subtracts) years, months, weeks and days; optionally counts business days only.",
		Formula:     "date + Δ, month ends clamped",
		Params: []models.ParamDefinition{
			str("start_date", "Start date (default today)"),
			def(integer("years", "Years to add"), 0),
			def(integer("months", "Months to add"), 0),
			def(integer("weeks", "Weeks to add"), 0),
			def(integer("days", "Days to add"), 0),
			def(boolean("business_days", "Treat days as working days"), false),
		},
	}, Args{"start_date": "2025-01-31", "months": 1}, func(_ context.Context, a Args) (interface{}, error) {
		start, err := r.dateOr(a, "start_date")
		if err != nil {
			return nil, err
		}
		return datetime.DateAdd(start, a.Int("years"), a.Int("months"), a.Int("weeks"), a.Int("days"), a.Bool("business_days")), nil
	})

	r.add(models.CalculatorDefinition{
		Name:        "business_days",
		Title:       "Business Days Calculator",
		Category:    dt,
		Description: "Working days (Monday to Friday) between two dates inclusive, excluding listed holidays.",
		Formula:     "calendar days − weekend days − holidays",
		Params: []models.ParamDefinition{
			required(str("start_date", "Start date (YYYY-MM-DD)")),
			required(str("end_date", "End date (YYYY-MM-DD)")),
			array("holidays", `Holiday dates, e.g. ["2025-12-25"]`),
		},
	}, Args{"start_date": "2025-06-02", "end_date": "2025-06-30", "holidays": []interface{}{"2025-06-19"}}, func(_ context.Context, a Args) (interface{}, error) {
		start, err := calc.ParseDate("start_date", a.String("start_date"))
		if err != nil {
			return nil, err
		}
		end, err := calc.ParseDate("end_date", a.String("end_date"))
		if err != nil {
			return nil, err
		}
		var raw []string
		if a.Has("holidays") {
			if err := a.Decode("holidays", &raw); err != nil {
				return nil, err
			}
		}
		holidays := make([]time.Time, 0, len(raw))
		for _, s := range raw {
			h, err := calc.ParseDate("holidays", s)
			if err != nil {
				return nil, err
			}
			holidays = append(holidays, h)
		}
		return datetime.BusinessDays(start, end, holidays)
	})

	r.add(models.CalculatorDefinition{
		Name:        "timezone",
		Title:       "Time Zone Converter",
		Category:    dt,
		Description: "Converts a wall-clock time from one IANA time zone to another, honouring daylight saving.",
		Formula:     "local_to = instant(local_from).In(to)",
		Params: []models.ParamDefinition{
			str("datetime", "Local date and time in the source zone, e.g. 2025-03-10T09:00 (default now)"),
			required(str("from", "Source zone, e.g. America/New_York")),
			required(str("to", "Target zone, e.g. Asia/Tokyo")),
		},
	}, Args{"datetime": "2025-03-10T09:00", "from": "America/New_York", "to": "Asia/Tokyo"}, func(_ context.Context, a Args) (interface{}, error) {
		from, err := datetime.LoadZone("from", a.String("from"))
		if err != nil {
			return nil, err
		}
		to, err := datetime.LoadZone("to", a.String("to"))
		if err != nil {
			return nil, err
		}
		t := r.now()
		if s := a.String("datetime"); s != "" {
			if t, err = datetime.ParseDateTime("datetime", s, from); err != nil {
				return nil, err
			}
		}
		return datetime.ConvertZone(t, from, to), nil
	})

	r.add(models.CalculatorDefinition{
		Name:        "timezones",
		Title:       "World Clock",
		Category:    dt,
		Description: "Current local time and UTC offset in common time zones, west to east.",
	}, nil, func(_ context.Context, _ Args) (interface{}, error) {
		return datetime.Zones(r.now()), nil
	})

	r.add(models.CalculatorDefinition{
		Name:        "unix_timestamp",
		Title:       "Unix Timestamp Converter",
		Category:    dt,
		Description: "Converts a Unix timestamp (seconds or milliseconds) to a date, or a date and time to a timestamp.",
		Formula:     "seconds since 1970-01-01T00:00:00Z",
		Params: []models.ParamDefinition{
			num("timestamp", "Unix time in seconds or milliseconds"),
			str("datetime", "Local date and time to convert to a timestamp"),
			def(str("zone", "IANA zone for display and input"), "UTC"),
		},
	}, Args{"timestamp": 1700000000}, func(_ context.Context, a Args) (interface{}, error) {
		loc, err := datetime.LoadZone("zone", a.String("zone"))
		if err != nil {
			return nil, err
		}
		switch {
		case a.Has("timestamp"):
			return datetime.FromUnix(int64(a.Float("timestamp")), loc)
		case a.String("datetime") != "":
			t, err := datetime.ParseDateTime("datetime", a.String("datetime"), loc)
			if err != nil {
				return nil, err
			}
			return datetime.ToUnix(t, loc), nil
		}
		return datetime.ToUnix(r.now(), loc), nil
	})

	r.add(models.CalculatorDefinition{
		Name:        "week_number",
		Title:       "Week Number Calculator",
		Category:    dt,
		Description: "ISO-8601 week number, weekday, day of year and quarter of a date.",
		Formula:     "ISO weeks start Monday; week 1 contains the first Thursday",
		Params: []models.ParamDefinition{
			str("date", "Date (default today)"),
		},
	}, Args{"date": "2025-03-10"}, func(_ context.Context, a Args) (interface{}, error) {
		d, err := r.dateOr(a, "date")
		if err != nil {
			return nil, err
		}
		return datetime.WeekNumber(d), nil
	})

	r.add(models.CalculatorDefinition{
		Name:        "time_duration",
		Title:       "Time Duration Calculator",
		Category:    dt,
		Description: "Hours and minutes between two clock times, across midnight if needed, less a break.",
		Formula:     "end − start (+24h when end < start) − break",
		Params: []models.ParamDefinition{
			required(str("start_time", "Start time HH:MM")),
			required(str("end_time", "End time HH:MM")),
			def(integer("break_minutes", "Unpaid break in minutes"), 0),
		},
	}, Args{"start_time": "22:00", "end_time": "06:30", "break_minutes": 30}, func(_ context.Context, a Args) (interface{}, error) {
		start, err := datetime.ParseClock("start_time", a.String("start_time"))
		if err != nil {
			return nil, err
		}
		end, err := datetime.ParseClock("end_time", a.String("end_time"))
		if err != nil {
			return nil, err
		}
		return datetime.TimeDuration(start, end, a.Int("break_minutes"))
	})

	r.add(models.CalculatorDefinition{
		Name:        "countdown",
		Title:       "Countdown Calculator",
		Category:    dt,
		Description: "Days, hours, minutes and seconds until a date and time.",
		Formula:     "target − now",
		Params: []models.ParamDefinition{
			required(str("target", "Target date (YYYY-MM-DD) or date and time")),
			def(str("zone", "IANA zone of the target"), "UTC"),
		},
	}, nil, func(_ context.Context, a Args) (interface{}, error) {
		loc, err := datetime.LoadZone("zone", a.String("zone"))
		if err != nil {
			return nil, err
		}
		s := a.String("target")
		t, err := datetime.ParseDateTime("target", s, loc)
		if err != nil {
			d, derr := calc.ParseDate("target", s)
			if derr != nil {
				return nil, err
			}
			t = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
		}
		return datetime.Countdown(t, r.now()), nil
	})
}
