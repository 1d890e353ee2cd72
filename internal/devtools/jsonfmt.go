package devtools

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bobmcallan/abacus/internal/calc"
)

// JSON tool actions.
const (
	JSONFormat   = "format"
	JSONMinify   = "minify"
	JSONValidate = "validate"
	JSONToYAML   = "to_yaml"
)

// JSONResult is the output of the JSON formatter.
type JSONResult struct {
	Action string     `json:"action"`
	Valid  bool       `json:"valid"`
	Output string     `json:"output,omitempty"`
	Error  *JSONError `json:"error,omitempty"`
	Bytes  int        `json:"bytes"`
}

// JSONError locates a syntax error (1-based line and column).
type JSONError struct {
	Message string `json:"message"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Offset  int64  `json:"offset"`
}

// FormatJSON formats, minifies, validates or converts a JSON document. Syntax
// errors are reported in the result for validate and as InputErrors otherwise.
func FormatJSON(action, input string, indent int) (*JSONResult, error) {
	data := []byte(strings.TrimSpace(input))
	if len(data) == 0 {
		return nil, calc.Invalid("input", "is empty")
	}
	res := &JSONResult{Action: action}
	if jerr := checkJSON(data); jerr != nil {
		if action == JSONValidate {
			res.Error = jerr
			return res, nil
		}
		return nil, calc.Invalid("input", "is not valid JSON: %s at line %d column %d", jerr.Message, jerr.Line, jerr.Column)
	}
	res.Valid = true

	var buf bytes.Buffer
	switch action {
	case JSONValidate:
		res.Bytes = len(data)
		return res, nil
	case JSONFormat:
		prefix := strings.Repeat(" ", indent)
		if indent <= 0 {
			prefix = "\t"
		}
		if err := json.Indent(&buf, data, "", prefix); err != nil {
			return nil, calc.Invalid("input", "%v", err)
		}
	case JSONMinify:
		if err := json.Compact(&buf, data); err != nil {
			return nil, calc.Invalid("input", "%v", err)
		}
	case JSONToYAML:
		out, err := jsonToYAML(data, indent)
		if err != nil {
			return nil, calc.Invalid("input", "cannot be converted to YAML: %v", err)
		}
		buf.Write(out)
	default:
		return nil, calc.Invalid("action", "must be format, minify, validate or to_yaml")
	}
	res.Output = buf.String()
	res.Bytes = buf.Len()
	return res, nil
}

func checkJSON(data []byte) *JSONError {
	var v interface{}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	err := dec.Decode(&v)
	if err == nil {
		if dec.More() {
			off := dec.InputOffset()
			line, col := position(data, off)
			return &JSONError{Message: "unexpected data after top-level value", Line: line, Column: col, Offset: off}
		}
		return nil
	}
	// SyntaxError.Offset counts the offending byte
	var syn *json.SyntaxError
	off := int64(len(data))
	if errors.As(err, &syn) && syn.Offset > 0 {
		off = syn.Offset - 1
	}
	line, col := position(data, off)
	msg := err.Error()
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		msg = "unexpected end of input"
	}
	return &JSONError{Message: msg, Line: line, Column: col, Offset: off}
}

// position converts a byte offset into a 1-based line and column.
func position(data []byte, off int64) (int, int) {
	if off > int64(len(data)) {
		off = int64(len(data))
	}
	head := data[:off]
	line := bytes.Count(head, []byte{'\n'}) + 1
	col := int(off) - bytes.LastIndexByte(head, '\n')
	return line, col
}

// jsonToYAML re-encodes through a yaml.Node so key order is preserved.
func jsonToYAML(data []byte, indent int) ([]byte, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	blockStyle(&doc)
	if indent < 2 {
		indent = 2
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(indent)
	if err := enc.Encode(&doc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		blockStyle(c)
	}
}
