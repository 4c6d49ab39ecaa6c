package output

import (
	"bytes"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func newTestRenderer(isTTY bool, mode OutputMode) (*Renderer, *bytes.Buffer, *bytes.Buffer) {
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	return NewRendererWithTTY(out, errOut, isTTY, mode), out, errOut
}

func TestMode(t *testing.T) {
	assert.Equal(t, ModeText, Mode("text"))
	assert.Equal(t, ModeJSON, Mode("json"))
	assert.Equal(t, ModeAuto, Mode("auto"))
	assert.Equal(t, ModeAuto, Mode("yaml"))
	assert.Equal(t, ModeAuto, Mode(""))
}

func TestEffectiveMode(t *testing.T) {
	tests := []struct {
		name  string
		isTTY bool
		mode  OutputMode
		want  OutputMode
	}{
		{"auto on tty", true, ModeAuto, ModeText},
		{"auto on pipe", false, ModeAuto, ModeJSON},
		{"explicit text on pipe", false, ModeText, ModeText},
		{"explicit json on tty", true, ModeJSON, ModeJSON},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _, _ := newTestRenderer(tt.isTTY, tt.mode)
			assert.Equal(t, tt.want, r.EffectiveMode())
		})
	}
}

func TestStatusLine_NoANSIOffTTY(t *testing.T) {
	r, out, errOut := newTestRenderer(false, ModeAuto)

	r.StatusLine(true, "enriched 3 rows")
	r.StatusLine(false, "Unable to get datafile x")

	assert.Empty(t, out.String())
	assert.False(t, ansiPattern.MatchString(errOut.String()), "got %q", errOut.String())
	assert.Contains(t, errOut.String(), "✓ enriched 3 rows")
	assert.Contains(t, errOut.String(), "✗ Unable to get datafile x")
}

func TestTable(t *testing.T) {
	r, out, _ := newTestRenderer(false, ModeText)

	r.Table([]string{"responder_id", "strata"}, [][]any{
		{int64(123), "C"},
		{int64(456), nil},
	})

	s := out.String()
	assert.Contains(t, s, "RESPONDER_ID")
	assert.Contains(t, s, "123")
	assert.Contains(t, s, "NULL")
	assert.True(t, strings.HasSuffix(s, "(2 rows)\n"))
}

func TestTable_Empty(t *testing.T) {
	r, out, _ := newTestRenderer(false, ModeText)
	r.Table([]string{"a"}, nil)
	assert.Equal(t, "(0 rows)\n", out.String())
}

func TestJSON(t *testing.T) {
	r, out, _ := newTestRenderer(false, ModeJSON)
	require.NoError(t, r.JSON(map[string]any{"error": "a < b"}))
	assert.Equal(t, "{\"error\":\"a < b\"}\n", out.String())
}
