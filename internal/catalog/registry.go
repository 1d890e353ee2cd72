// Package catalog is the calculator registry: every calculator's definition
// (name, category, typed parameters) paired with the handler that runs it.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/bobmcallan/abacus/internal/calc"
	"github.com/bobmcallan/abacus/internal/models"
)

// ErrNotFound is returned for an unknown calculator name.
var ErrNotFound = errors.New("calculator not found")

// Handler runs a calculator against normalised arguments.
type Handler func(ctx context.Context, args Args) (interface{}, error)

// Calculator is a registered definition with its handler.
type Calculator struct {
	models.CalculatorDefinition
	// Example arguments used by the glossary and documentation.
	Example Args `json:"example,omitempty"`
	run     Handler
}

// CurrencyConverter converts between currencies using live or fallback rates.
type CurrencyConverter interface {
	Convert(ctx context.Context, amount float64, from, to string) (*models.CurrencyConversion, error)
}

// Observer is told about every calculation; telemetry implements it.
type Observer interface {
	ObserveCalculation(name string, category models.Category, elapsed time.Duration, err error)
}

// Registry holds the calculators in registration order.
type Registry struct {
	byName   map[string]*Calculator
	order    []*Calculator
	currency CurrencyConverter
	observer Observer
	now      func() time.Time
}

// Option configures a Registry.
type Option func(*Registry)

// WithCurrency enables the currency calculator.
func WithCurrency(c CurrencyConverter) Option {
	return func(r *Registry) { r.currency = c }
}

// WithObserver reports every Run to o.
func WithObserver(o Observer) Option {
	return func(r *Registry) { r.observer = o }
}

// WithClock overrides the clock used for "today" defaults.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) { r.now = now }
}

// New builds a registry with every built-in calculator.
func New(opts ...Option) *Registry {
	r := &Registry{
		byName: make(map[string]*Calculator),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.registerFinance()
	r.registerHealth()
	r.registerMath()
	r.registerDateTime()
	r.registerUnits()
	r.registerDevTools()
	return r
}

func (r *Registry) add(def models.CalculatorDefinition, example Args, h Handler) {
	if _, dup := r.byName[def.Name]; dup {
		panic(fmt.Sprintf("catalog: duplicate calculator %q", def.Name))
	}
	c := &Calculator{CalculatorDefinition: def, Example: example, run: h}
	r.byName[def.Name] = c
	r.order = append(r.order, c)
}

// today is the registry clock's current date at UTC midnight.
func (r *Registry) today() time.Time {
	t := r.now().UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Get returns a calculator by name.
func (r *Registry) Get(name string) (*Calculator, bool) {
	c, ok := r.byName[name]
	return c, ok
}

// List returns calculators in registration order, optionally filtered by category.
func (r *Registry) List(category models.Category) []*Calculator {
	if category == "" {
		return slices.Clone(r.order)
	}
	var out []*Calculator
	for _, c := range r.order {
		if c.Category == category {
			out = append(out, c)
		}
	}
	return out
}

// Definitions returns the definitions of List(category).
func (r *Registry) Definitions(category models.Category) []models.CalculatorDefinition {
	list := r.List(category)
	defs := make([]models.CalculatorDefinition, len(list))
	for i, c := range list {
		defs[i] = c.CalculatorDefinition
	}
	return defs
}

// Categories summarises how many calculators each category holds.
func (r *Registry) Categories() []models.CategorySummary {
	var out []models.CategorySummary
	for _, cat := range models.Categories() {
		if n := len(r.List(cat)); n > 0 {
			out = append(out, models.CategorySummary{Category: cat, Calculators: n})
		}
	}
	return out
}

// Run validates raw arguments against the named calculator's parameters and
// executes it. Unknown names return ErrNotFound; bad arguments return a
// calc.InputError.
func (r *Registry) Run(ctx context.Context, name string, raw map[string]interface{}) (interface{}, error) {
	c, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	args, err := c.bind(raw)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	res, err := c.run(ctx, args)
	if r.observer != nil {
		r.observer.ObserveCalculation(c.Name, c.Category, time.Since(start), err)
	}
	return res, err
}

// bind checks raw against the parameter list, applies defaults and
// normalises values to their declared types.
func (c *Calculator) bind(raw map[string]interface{}) (Args, error) {
	for k := range raw {
		if _, ok := c.Param(k); !ok {
			return nil, calc.Invalid(k, "is not a parameter of %s", c.Name)
		}
	}
	args := make(Args, len(c.Params))
	for _, p := range c.Params {
		v, ok := raw[p.Name]
		if !ok || v == nil || v == "" {
			if p.Required {
				return nil, calc.Invalid(p.Name, "is required")
			}
			if p.Default == nil {
				continue
			}
			v = p.Default
		}
		nv, err := normalize(p, v)
		if err != nil {
			return nil, err
		}
		if len(p.Enum) > 0 {
			s := fmt.Sprint(nv)
			if !slices.Contains(p.Enum, s) {
				return nil, calc.Invalid(p.Name, "must be one of %v", p.Enum)
			}
		}
		args[p.Name] = nv
	}
	return args, nil
}

// Parameter constructors keep the definitions compact.

func num(name, desc string) models.ParamDefinition {
	return models.ParamDefinition{Name: name, Type: models.ParamNumber, Description: desc}
}

func integer(name, desc string) models.ParamDefinition {
	return models.ParamDefinition{Name: name, Type: models.ParamInteger, Description: desc}
}

func str(name, desc string) models.ParamDefinition {
	return models.ParamDefinition{Name: name, Type: models.ParamString, Description: desc}
}

func boolean(name, desc string) models.ParamDefinition {
	return models.ParamDefinition{Name: name, Type: models.ParamBoolean, Description: desc}
}

func array(name, desc string) models.ParamDefinition {
	return models.ParamDefinition{Name: name, Type: models.ParamArray, Description: desc}
}

func required(p models.ParamDefinition) models.ParamDefinition {
	p.Required = true
	return p
}

func def(p models.ParamDefinition, v interface{}) models.ParamDefinition {
	p.Default = v
	return p
}

func oneOf(p models.ParamDefinition, values ...string) models.ParamDefinition {
	p.Enum = values
	return p
}
