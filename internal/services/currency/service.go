// Package currency converts between currencies using cached live rates,
// falling back to a built-in table when the rate service is unavailable.
package currency

import (
	"context"
	"maps"
	"math"
	"slices"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
	xcurrency "golang.org/x/text/currency"

	"github.com/bobmcallan/abacus/internal/calc"
	"github.com/bobmcallan/abacus/internal/common"
	"github.com/bobmcallan/abacus/internal/models"
)

// DefaultTTL is how long live rates are reused.
const DefaultTTL = time.Hour

// fallbackTTL keeps a failed fetch from being repeated on every request.
const fallbackTTL = time.Minute

// RateSource fetches the latest rates for a base currency.
type RateSource interface {
	Latest(ctx context.Context, base string) (*models.ExchangeRates, error)
}

// FetchObserver is told the outcome of every upstream fetch.
type FetchObserver interface {
	ObserveRateFetch(source string, err error)
}

type cached struct {
	rates   *models.ExchangeRates
	expires time.Time
}

// Service implements catalog.CurrencyConverter.
type Service struct {
	source   RateSource
	logger   *common.Logger
	observer FetchObserver
	ttl      time.Duration
	now      func() time.Time

	mu    sync.Mutex
	cache map[string]cached
	group singleflight.Group
}

// Option configures a Service.
type Option func(*Service)

// WithTTL sets how long live rates are cached.
func WithTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithObserver reports fetch outcomes.
func WithObserver(o FetchObserver) Option {
	return func(s *Service) { s.observer = o }
}

// WithClock overrides the clock used for cache expiry.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a currency service. A nil source runs offline on the
// built-in table.
func NewService(source RateSource, logger *common.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	s := &Service{
		source: source,
		logger: logger,
		ttl:    DefaultTTL,
		now:    time.Now,
		cache:  make(map[string]cached),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// normalizeCode upper-cases and validates an ISO 4217 code.
func normalizeCode(field, code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if _, err := xcurrency.ParseISO(code); err != nil {
		return "", calc.Invalid(field, "%q is not an ISO 4217 currency code", code)
	}
	return code, nil
}

// Rates returns rates quoted against base. Source is "live" for a fresh
// fetch, "cache" when served from memory, and "fallback" when the built-in
// table was used.
func (s *Service) Rates(ctx context.Context, base string) (*models.ExchangeRates, error) {
	base, err := normalizeCode("base", base)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	entry, ok := s.cache[base]
	s.mu.Unlock()
	if ok && s.now().Before(entry.expires) {
		out := copyRates(entry.rates)
		if out.Source == models.RateSourceLive {
			out.Source = models.RateSourceCache
		}
		return out, nil
	}

	v, _, _ := s.group.Do(base, func() (interface{}, error) {
		return s.fetch(ctx, base), nil
	})
	return copyRates(v.(*models.ExchangeRates)), nil
}

// fetch asks the source once; on any failure it logs, records the
// fallback and derives the table for base. It never returns nil.
func (s *Service) fetch(ctx context.Context, base string) *models.ExchangeRates {
	if s.source != nil {
		rates, err := s.source.Latest(ctx, base)
		if s.observer != nil {
			s.observer.ObserveRateFetch(models.RateSourceLive, err)
		}
		if err == nil {
			s.store(base, rates, s.ttl)
			return rates
		}
		s.logger.Warn().Err(err).Str("base", base).Msg("Exchange rate fetch failed, using fallback rates")
	}
	if s.observer != nil {
		s.observer.ObserveRateFetch(models.RateSourceFallback, nil)
	}
	rates := Fallback(base, s.now())
	if s.source != nil {
		s.store(base, rates, fallbackTTL)
	}
	return rates
}

func (s *Service) store(base string, rates *models.ExchangeRates, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache[base] = cached{rates: rates, expires: s.now().Add(ttl)}
}

// Fallback derives the built-in table for base. Bases outside the table
// get a table containing only themselves.
func Fallback(base string, asOf time.Time) *models.ExchangeRates {
	out := &models.ExchangeRates{
		Base:   base,
		Rates:  make(map[string]float64, len(fallbackRates)),
		AsOf:   asOf.UTC(),
		Source: models.RateSourceFallback,
	}
	per, ok := fallbackRates[base]
	if !ok {
		out.Rates[base] = 1
		return out
	}
	for code, r := range fallbackRates {
		out.Rates[code] = r / per
	}
	out.Rates[base] = 1
	return out
}

// FallbackCodes lists the currencies the built-in table covers.
func FallbackCodes() []string {
	return slices.Sorted(maps.Keys(fallbackRates))
}

func copyRates(r *models.ExchangeRates) *models.ExchangeRates {
	out := *r
	out.Rates = maps.Clone(r.Rates)
	return &out
}

// Convert converts amount from one currency to another.
func (s *Service) Convert(ctx context.Context, amount float64, from, to string) (*models.CurrencyConversion, error) {
	if err := calc.Finite("amount", amount); err != nil {
		return nil, err
	}
	from, err := normalizeCode("from", from)
	if err != nil {
		return nil, err
	}
	to, err = normalizeCode("to", to)
	if err != nil {
		return nil, err
	}

	rates, err := s.Rates(ctx, from)
	if err != nil {
		return nil, err
	}
	rate, ok := rates.Rates[to]
	if !ok || rate <= 0 || math.IsNaN(rate) {
		return nil, calc.Invalid("to", "no rate available for %s→%s", from, to)
	}

	return &models.CurrencyConversion{
		Amount:     amount,
		From:       from,
		To:         to,
		Rate:       rate,
		Converted:  amount * rate,
		FromSymbol: common.CurrencySymbol(from),
		ToSymbol:   common.CurrencySymbol(to),
		Source:     rates.Source,
		AsOf:       rates.AsOf,
	}, nil
}
