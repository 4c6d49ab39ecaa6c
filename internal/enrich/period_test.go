package enrich

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatPeriod(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"integer", int64(201503), "2015-03"},
		{"string", "201512", "2015-12"},
		{"float", 201503.0, "2015-03"},
		{"no month check", int64(201513), "2015-13"},
		{"longer value", int64(20150301), "2015-03"},
		{"short value", int64(2015), "2015-"},
		{"five digits", "20153", "2015-3"},
		{"empty", "", "-"},
		{"missing", nil, "nan-"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatPeriod(tt.in)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatPeriod_SixDigitsGiveSevenChars(t *testing.T) {
	for _, p := range []int64{190001, 201503, 209912, 999999} {
		got := FormatPeriod(p)
		assert.Len(t, got, 7)
		assert.Equal(t, byte('-'), got[4])
	}
}
