package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/leapstack-labs/esenrich/internal/table"
)

// Records serializes t as comma-separated JSON objects, one per row, with
// keys in column order and no enclosing brackets. Missing values are null.
// An empty table gives "".
func Records(t *table.Table) (string, error) {
	cols := t.Columns()
	keys := make([][]byte, len(cols))
	for i, c := range cols {
		k, err := marshal(c)
		if err != nil {
			return "", err
		}
		keys[i] = k
	}

	var buf bytes.Buffer
	for r := 0; r < t.Len(); r++ {
		if r > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('{')
		for i, v := range t.Row(r).Values() {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.Write(keys[i])
			buf.WriteByte(':')
			b, err := marshal(v)
			if err != nil {
				return "", fmt.Errorf("row %d column %q: %w", r, cols[i], err)
			}
			buf.Write(b)
		}
		buf.WriteByte('}')
	}

	return strings.ReplaceAll(buf.String(), "}, {", "},{"), nil
}

// marshal encodes one key or cell. Non-finite floats become null. Integral
// floats keep a trailing ".0" and "/" in strings is written as "\/".
func marshal(v any) ([]byte, error) {
	if f, ok := v.(float64); ok {
		switch {
		case math.IsNaN(f) || math.IsInf(f, 0):
			return []byte("null"), nil
		case f == math.Trunc(f) && math.Abs(f) < 1e16:
			return []byte(strconv.FormatFloat(f, 'f', -1, 64) + ".0"), nil
		}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	b := bytes.TrimRight(buf.Bytes(), "\n")
	if _, ok := v.(string); ok {
		b = bytes.ReplaceAll(b, []byte("/"), []byte(`\/`))
	}
	return b, nil
}
