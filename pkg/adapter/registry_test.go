package adapter

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAdapter struct {
	BaseSQLAdapter
	connectErr error
	connected  bool
}

func (f *fakeAdapter) Connect(_ context.Context, cfg Config) error {
	if f.connectErr != nil {
		return f.connectErr
	}
	f.Cfg = cfg
	f.connected = true
	return nil
}

func (f *fakeAdapter) LoadCSV(context.Context, string, string) error { return nil }

func TestUnknownAdapterError_Error(t *testing.T) {
	err := &UnknownAdapterError{
		Type:      "fake_db",
		Available: []string{"duckdb"},
	}

	msg := err.Error()
	assert.Contains(t, msg, "fake_db", "error should mention the unknown type")
	assert.Contains(t, msg, "duckdb", "error should list available adapters")
	assert.Contains(t, msg, "esenrich.yaml", "error should mention config file")
}

func TestRegister(t *testing.T) {
	Register("test_adapter_internal", func(_ *slog.Logger) Adapter { return &fakeAdapter{} })

	assert.True(t, IsRegistered("test_adapter_internal"))
	assert.Contains(t, ListAdapters(), "test_adapter_internal")

	factory, ok := Get("test_adapter_internal")
	assert.True(t, ok)
	assert.NotNil(t, factory)
}

func TestNewAdapter(t *testing.T) {
	t.Run("empty type", func(t *testing.T) {
		_, err := NewAdapter(Config{}, nil)
		require.Error(t, err)
		assert.Equal(t, "adapter type not specified", err.Error())
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := NewAdapter(Config{Type: "oracle"}, nil)
		require.Error(t, err)

		var unknown *UnknownAdapterError
		require.True(t, errors.As(err, &unknown), "expected *UnknownAdapterError, got %T", err)
		assert.Equal(t, "oracle", unknown.Type)
	})
}

func TestOpen(t *testing.T) {
	Register("test_open_ok", func(_ *slog.Logger) Adapter { return &fakeAdapter{} })
	boom := errors.New("cannot connect")
	Register("test_open_fail", func(_ *slog.Logger) Adapter { return &fakeAdapter{connectErr: boom} })

	ctx := context.Background()

	a, err := Open(ctx, Config{Type: "test_open_ok", Path: ":memory:"}, nil)
	require.NoError(t, err)
	fa, ok := a.(*fakeAdapter)
	require.True(t, ok)
	assert.True(t, fa.connected)
	assert.Equal(t, ":memory:", fa.Cfg.Path)

	_, err = Open(ctx, Config{Type: "test_open_fail"}, nil)
	require.ErrorIs(t, err, boom)
}

func TestBaseSQLAdapter_NotConnected(t *testing.T) {
	var b BaseSQLAdapter
	ctx := context.Background()

	assert.Nil(t, b.DB)
	require.ErrorIs(t, b.Exec(ctx, "SELECT 1"), ErrNotConnected)
	_, err := b.Query(ctx, "SELECT 1")
	require.ErrorIs(t, err, ErrNotConnected)
	assert.NoError(t, b.Close())
}

func TestQuote(t *testing.T) {
	assert.Equal(t, `"survey"`, QuoteIdentifier("survey"))
	assert.Equal(t, `"we""ird"`, QuoteIdentifier(`we"ird`))
	assert.Equal(t, `'/tmp/a.csv'`, QuoteString("/tmp/a.csv"))
	assert.Equal(t, `'/tmp/o''brien.csv'`, QuoteString("/tmp/o'brien.csv"))
}
