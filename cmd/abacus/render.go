package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/bobmcallan/abacus/internal/common"
)

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	return t
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// renderer prints a calculator result as a field/value table followed by
// one table per list of rows (schedules, yearly breakdowns).
type renderer struct {
	w       io.Writer
	maxRows int
}

type field struct {
	name  string
	value reflect.Value
}

var timeType = reflect.TypeOf(time.Time{})

func (r *renderer) result(res interface{}) {
	v := indirect(reflect.ValueOf(res))
	if !v.IsValid() {
		return
	}
	if v.Kind() != reflect.Struct || v.Type() == timeType {
		fmt.Fprintln(r.w, formatValue(v))
		return
	}

	var lists []field
	t := newTable(r.w)
	t.AppendHeader(table.Row{"Field", "Value"})
	for _, f := range fields(v, "", true) {
		fv := indirect(f.value)
		switch {
		case isRowList(fv):
			lists = append(lists, f)
		case fv.Kind() == reflect.Map:
			for _, k := range sortedKeys(fv) {
				t.AppendRow(table.Row{f.name + "." + k.String(), formatValue(fv.MapIndex(k))})
			}
		default:
			t.AppendRow(table.Row{f.name, formatValue(fv)})
		}
	}
	t.Render()

	for _, l := range lists {
		fmt.Fprintf(r.w, "\n%s\n", strings.ReplaceAll(l.name, "_", " "))
		r.rows(indirect(l.value))
	}
}

// rows renders a slice of structs with a column per field.
func (r *renderer) rows(list reflect.Value) {
	t := newTable(r.w)
	var header table.Row
	for _, f := range fields(reflect.New(elemType(list.Type())).Elem(), "", false) {
		header = append(header, f.name)
	}
	t.AppendHeader(header)

	n := list.Len()
	shown := n
	if r.maxRows > 0 && n > r.maxRows {
		shown = r.maxRows
	}
	for i := 0; i < shown; i++ {
		var row table.Row
		for _, f := range fields(indirect(list.Index(i)), "", false) {
			row = append(row, formatValue(indirect(f.value)))
		}
		t.AppendRow(row)
	}
	if shown < n {
		t.AppendFooter(table.Row{fmt.Sprintf("%d more rows (--rows 0 shows all)", n-shown)})
	}
	t.Render()
}

// fields flattens a struct's exported fields by JSON name, inlining
// embedded structs. With skipEmpty, zero omitempty values are dropped.
func fields(v reflect.Value, prefix string, skipEmpty bool) []field {
	var out []field
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		name, opts, _ := strings.Cut(sf.Tag.Get("json"), ",")
		if name == "-" {
			continue
		}
		fv := v.Field(i)
		if sf.Anonymous && name == "" {
			if inner := indirect(fv); inner.IsValid() && inner.Kind() == reflect.Struct {
				out = append(out, fields(inner, prefix, skipEmpty)...)
			}
			continue
		}
		if name == "" {
			name = sf.Name
		}
		if skipEmpty && strings.Contains(opts, "omitempty") && fv.IsZero() {
			continue
		}
		if inner := indirect(fv); inner.IsValid() && inner.Kind() == reflect.Struct && inner.Type() != timeType {
			out = append(out, fields(inner, prefix+name+".", skipEmpty)...)
			continue
		}
		out = append(out, field{name: prefix + name, value: fv})
	}
	return out
}

func indirect(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

func elemType(t reflect.Type) reflect.Type {
	e := t.Elem()
	for e.Kind() == reflect.Pointer {
		e = e.Elem()
	}
	return e
}

func isRowList(v reflect.Value) bool {
	if !v.IsValid() || v.Kind() != reflect.Slice || v.Len() == 0 {
		return false
	}
	e := elemType(v.Type())
	return e.Kind() == reflect.Struct && e != timeType
}

func sortedKeys(m reflect.Value) []reflect.Value {
	keys := m.MapKeys()
	sort.Slice(keys, func(i, j int) bool { return fmt.Sprint(keys[i]) < fmt.Sprint(keys[j]) })
	return keys
}

func formatValue(v reflect.Value) string {
	v = indirect(v)
	if !v.IsValid() {
		return ""
	}
	if v.Type() == timeType {
		t := v.Interface().(time.Time)
		if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
			return t.Format("2006-01-02")
		}
		return t.Format(time.RFC3339)
	}
	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		return formatFloat(v.Float())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return common.FormatNumber(float64(v.Int()), 0)
	case reflect.Slice, reflect.Array:
		parts := make([]string, v.Len())
		for i := range parts {
			parts[i] = formatValue(v.Index(i))
		}
		return strings.Join(parts, ", ")
	case reflect.Map, reflect.Struct:
		data, _ := json.Marshal(v.Interface())
		return string(data)
	}
	return fmt.Sprint(v.Interface())
}

// formatFloat groups thousands and keeps more decimals for small values.
func formatFloat(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Sprint(f)
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return common.FormatNumber(f, 0)
	}
	decimals := 2
	switch abs := math.Abs(f); {
	case abs < 1:
		decimals = 6
	case abs < 100:
		decimals = 4
	}
	s := common.FormatNumber(f, decimals)
	if strings.Contains(s, ".") {
		s = strings.TrimSuffix(strings.TrimRight(s, "0"), ".")
	}
	return s
}
