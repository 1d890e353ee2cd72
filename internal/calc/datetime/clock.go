package datetime

import (
	"fmt"
	"slices"
	"strings"
	"time"
	_ "time/tzdata" // zone database for hosts without one

	"github.com/bobmcallan/abacus/internal/calc"
)

// dateTimeLayouts are accepted for zone conversion input, most specific first.
var dateTimeLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// CommonZones is the zone list offered by the timezones calculator.
var CommonZones = []string{
	"UTC",
	"America/Los_Angeles", "America/Denver", "America/Chicago", "America/New_York",
	"America/Anchorage", "Pacific/Honolulu", "America/Toronto", "America/Mexico_City",
	"America/Sao_Paulo", "America/Argentina/Buenos_Aires",
	"Europe/London", "Europe/Dublin", "Europe/Paris", "Europe/Berlin", "Europe/Madrid",
	"Europe/Rome", "Europe/Amsterdam", "Europe/Stockholm", "Europe/Athens",
	"Europe/Istanbul", "Europe/Moscow",
	"Africa/Cairo", "Africa/Johannesburg", "Africa/Lagos", "Africa/Nairobi",
	"Asia/Dubai", "Asia/Karachi", "Asia/Kolkata", "Asia/Kathmandu", "Asia/Dhaka",
	"Asia/Bangkok", "Asia/Jakarta", "Asia/Singapore", "Asia/Hong_Kong", "Asia/Shanghai",
	"Asia/Manila", "Asia/Seoul", "Asia/Tokyo",
	"Australia/Perth", "Australia/Adelaide", "Australia/Brisbane", "Australia/Sydney",
	"Pacific/Auckland",
}

// LoadZone resolves an IANA zone name.
func LoadZone(field, name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, calc.Invalid(field, "is required")
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, calc.Invalid(field, "%q is not a known time zone", name)
	}
	return loc, nil
}

// ParseDateTime parses a local wall-clock time in loc.
func ParseDateTime(field, s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, calc.Invalid(field, "must look like 2006-01-02T15:04")
}

// ZoneTime is a moment rendered in one zone.
type ZoneTime struct {
	Zone         string `json:"zone"`
	Abbreviation string `json:"abbreviation"`
	Local        string `json:"local"`
	UTCOffset    string `json:"utc_offset"`
}

func zoneTime(t time.Time, loc *time.Location) ZoneTime {
	lt := t.In(loc)
	abbr, _ := lt.Zone()
	return ZoneTime{
		Zone:         loc.String(),
		Abbreviation: abbr,
		Local:        lt.Format("2006-01-02 15:04:05 Mon"),
		UTCOffset:    lt.Format("-07:00"),
	}
}

// ConvertResult is the output of the time zone converter.
type ConvertResult struct {
	From          ZoneTime `json:"from"`
	To            ZoneTime `json:"to"`
	DifferenceHrs float64  `json:"difference_hours"`
	UnixTimestamp int64    `json:"unix_timestamp"`
}

// ConvertZone converts a wall-clock time in from to the same instant in to.
func ConvertZone(t time.Time, from, to *time.Location) *ConvertResult {
	t = t.In(from)
	_, fromOff := t.Zone()
	_, toOff := t.In(to).Zone()
	return &ConvertResult{
		From:          zoneTime(t, from),
		To:            zoneTime(t, to),
		DifferenceHrs: float64(toOff-fromOff) / 3600,
		UnixTimestamp: t.Unix(),
	}
}

// Zones lists CommonZones with their current offset at t, west to east.
func Zones(t time.Time) []ZoneTime {
	out := make([]ZoneTime, 0, len(CommonZones))
	offsets := make(map[string]int, len(CommonZones))
	for _, name := range CommonZones {
		loc, err := time.LoadLocation(name)
		if err != nil {
			continue
		}
		_, off := t.In(loc).Zone()
		offsets[name] = off
		out = append(out, zoneTime(t, loc))
	}
	slices.SortStableFunc(out, func(a, b ZoneTime) int {
		return offsets[a.Zone] - offsets[b.Zone]
	})
	return out
}

// TimestampResult is the output of the Unix timestamp converter.
type TimestampResult struct {
	Unix      int64  `json:"unix"`
	UnixMilli int64  `json:"unix_milli"`
	UTC       string `json:"utc"`
	Local     string `json:"local"`
	Zone      string `json:"zone"`
	RFC3339   string `json:"rfc3339"`
}

// maxSeconds bounds timestamps to roughly ±10000 years; values above it are
// taken as milliseconds.
const maxSeconds = 253402300799

// FromUnix interprets ts as seconds, or milliseconds when it is too large to
// be seconds.
func FromUnix(ts int64, loc *time.Location) (*TimestampResult, error) {
	var t time.Time
	switch {
	case ts > maxSeconds || ts < -maxSeconds:
		if ts/1000 > maxSeconds || ts/1000 < -maxSeconds {
			return nil, calc.Invalid("timestamp", "is out of range")
		}
		t = time.UnixMilli(ts)
	default:
		t = time.Unix(ts, 0)
	}
	return timestamp(t, loc), nil
}

// ToUnix converts a wall-clock time to a timestamp.
func ToUnix(t time.Time, loc *time.Location) *TimestampResult {
	return timestamp(t, loc)
}

func timestamp(t time.Time, loc *time.Location) *TimestampResult {
	return &TimestampResult{
		Unix:      t.Unix(),
		UnixMilli: t.UnixMilli(),
		UTC:       t.UTC().Format(time.RFC1123),
		Local:     t.In(loc).Format(time.RFC1123),
		Zone:      loc.String(),
		RFC3339:   t.In(loc).Format(time.RFC3339),
	}
}

// ParseClock parses a 24-hour HH:MM or HH:MM:SS time of day into seconds.
func ParseClock(field, s string) (int, error) {
	var h, m, sec int
	s = strings.TrimSpace(s)
	n, _ := fmt.Sscanf(s, "%d:%d:%d", &h, &m, &sec)
	if n < 2 || h < 0 || h > 23 || m < 0 || m > 59 || sec < 0 || sec > 59 {
		return 0, calc.Invalid(field, "must be a 24-hour time like 09:30")
	}
	return h*3600 + m*60 + sec, nil
}

// DurationResult is the output of the time duration calculator.
type DurationResult struct {
	Hours        int     `json:"hours"`
	Minutes      int     `json:"minutes"`
	Seconds      int     `json:"seconds"`
	TotalMinutes float64 `json:"total_minutes"`
	DecimalHours float64 `json:"decimal_hours"`
	Overnight    bool    `json:"overnight"`
	Text         string  `json:"text"`
}

// TimeDuration measures start→end clock times, wrapping past midnight when end
// is earlier than start. breakMinutes is deducted.
func TimeDuration(startSec, endSec, breakMinutes int) (*DurationResult, error) {
	if breakMinutes < 0 {
		return nil, calc.Invalid("break_minutes", "must not be negative")
	}
	d := endSec - startSec
	res := &DurationResult{}
	if d < 0 {
		d += 24 * 3600
		res.Overnight = true
	}
	d -= breakMinutes * 60
	if d < 0 {
		return nil, calc.Invalid("break_minutes", "exceeds the time worked")
	}
	res.Hours, res.Minutes, res.Seconds = d/3600, d%3600/60, d%60
	res.TotalMinutes = float64(d) / 60
	res.DecimalHours = float64(d) / 3600
	res.Text = fmt.Sprintf("%dh %02dm", res.Hours, res.Minutes)
	return res, nil
}

// CountdownResult is the time remaining until a target moment.
type CountdownResult struct {
	Target       string `json:"target"`
	Days         int    `json:"days"`
	Hours        int    `json:"hours"`
	Minutes      int    `json:"minutes"`
	Seconds      int    `json:"seconds"`
	TotalSeconds int64  `json:"total_seconds"`
	Passed       bool   `json:"passed"`
}

// Countdown reports the time from now until target. A target in the past
// reports the elapsed time with Passed set.
func Countdown(target, now time.Time) *CountdownResult {
	d := target.Sub(now)
	res := &CountdownResult{Target: target.Format(time.RFC3339)}
	if d < 0 {
		d = -d
		res.Passed = true
	}
	secs := int64(d / time.Second)
	res.TotalSeconds = secs
	res.Days = int(secs / 86400)
	res.Hours = int(secs % 86400 / 3600)
	res.Minutes = int(secs % 3600 / 60)
	res.Seconds = int(secs % 60)
	return res
}
