package currency

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/abacus/internal/calc"
	"github.com/bobmcallan/abacus/internal/models"
)

type fakeSource struct {
	calls atomic.Int32
	err   error
	delay time.Duration
}

func (f *fakeSource) Latest(_ context.Context, base string) (*models.ExchangeRates, error) {
	f.calls.Add(1)
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if f.err != nil {
		return nil, f.err
	}
	return &models.ExchangeRates{
		Base:   base,
		Rates:  map[string]float64{base: 1, "EUR": 0.5, "JPY": 100},
		AsOf:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		Source: models.RateSourceLive,
	}, nil
}

type fetchLog struct {
	mu      sync.Mutex
	sources []string
}

func (l *fetchLog) ObserveRateFetch(source string, _ error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sources = append(l.sources, source)
}

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func TestConvert_LiveThenCached(t *testing.T) {
	src := &fakeSource{}
	clk := &clock{t: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	svc := NewService(src, nil, WithClock(clk.now), WithTTL(time.Hour))

	res, err := svc.Convert(context.Background(), 100, "usd", "EUR")
	require.NoError(t, err)
	assert.Equal(t, 50.0, res.Converted)
	assert.Equal(t, "USD", res.From)
	assert.Equal(t, models.RateSourceLive, res.Source)
	assert.Equal(t, "€", res.ToSymbol)

	res, err = svc.Convert(context.Background(), 2, "USD", "JPY")
	require.NoError(t, err)
	assert.Equal(t, 200.0, res.Converted)
	assert.Equal(t, models.RateSourceCache, res.Source)
	assert.Equal(t, int32(1), src.calls.Load())

	clk.t = clk.t.Add(2 * time.Hour)
	res, err = svc.Convert(context.Background(), 2, "USD", "JPY")
	require.NoError(t, err)
	assert.Equal(t, models.RateSourceLive, res.Source)
	assert.Equal(t, int32(2), src.calls.Load())
}

func TestConvert_FallbackOnError(t *testing.T) {
	src := &fakeSource{err: errors.New("connection refused")}
	log := &fetchLog{}
	svc := NewService(src, nil, WithObserver(log))

	res, err := svc.Convert(context.Background(), 100, "USD", "GBP")
	require.NoError(t, err)
	assert.Equal(t, models.RateSourceFallback, res.Source)
	assert.InDelta(t, 79, res.Converted, 1e-9)
	assert.Equal(t, []string{models.RateSourceLive, models.RateSourceFallback}, log.sources)

	// the fallback is held briefly, so the source is not asked again
	_, err = svc.Convert(context.Background(), 1, "USD", "EUR")
	require.NoError(t, err)
	assert.Equal(t, int32(1), src.calls.Load())
}

func TestConvert_Offline(t *testing.T) {
	svc := NewService(nil, nil)
	res, err := svc.Convert(context.Background(), 92, "EUR", "USD")
	require.NoError(t, err)
	assert.InDelta(t, 100, res.Converted, 1e-9)
	assert.Equal(t, models.RateSourceFallback, res.Source)
}

func TestConvert_InvalidInput(t *testing.T) {
	svc := NewService(nil, nil)
	ctx := context.Background()

	_, err := svc.Convert(ctx, 1, "US", "EUR")
	assert.Equal(t, "from", calc.FieldOf(err))

	_, err = svc.Convert(ctx, 1, "USD", "ZZZ")
	assert.Equal(t, "to", calc.FieldOf(err))

	// valid ISO code missing from the built-in table
	_, err = svc.Convert(ctx, 1, "USD", "ISK")
	assert.True(t, calc.IsInvalidInput(err))
}

func TestRates_Singleflight(t *testing.T) {
	src := &fakeSource{delay: 50 * time.Millisecond}
	svc := NewService(src, nil)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Rates(context.Background(), "USD")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), src.calls.Load())
}

func TestRates_ReturnsCopies(t *testing.T) {
	svc := NewService(&fakeSource{}, nil)
	a, err := svc.Rates(context.Background(), "USD")
	require.NoError(t, err)
	a.Rates["EUR"] = 42

	b, err := svc.Rates(context.Background(), "USD")
	require.NoError(t, err)
	assert.Equal(t, 0.5, b.Rates["EUR"])
}

func TestFallback(t *testing.T) {
	r := Fallback("GBP", time.Now())
	assert.Equal(t, 1.0, r.Rates["GBP"])
	assert.InDelta(t, 1/0.79, r.Rates["USD"], 1e-12)
	assert.Contains(t, FallbackCodes(), "JPY")
	assert.IsIncreasing(t, FallbackCodes())
}
