package duckdb

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
)

// Params holds DuckDB-specific configuration.
// Parsed from adapter.Config.Params using mapstructure.
type Params struct {
	// Extensions to install and load (e.g., "httpfs", "json")
	Extensions []string `mapstructure:"extensions"`

	// Settings to apply at session level (e.g., memory_limit, threads)
	Settings map[string]string `mapstructure:"settings"`

	// CSV controls read_csv_auto when loading files
	CSV CSVOptions `mapstructure:"csv"`
}

// CSVOptions tunes CSV type detection.
type CSVOptions struct {
	// SampleSize is the number of rows sniffed for types; -1 reads every row.
	// Zero means the default of -1.
	SampleSize int `mapstructure:"sample_size"`

	// AllVarchar loads every column as text, disabling type inference.
	AllVarchar bool `mapstructure:"all_varchar"`
}

// parseParams decodes raw adapter params. Scalars are weakly typed so that
// values from YAML or environment variables ("4", 4) are accepted for strings.
func parseParams(raw map[string]any) (*Params, error) {
	p := &Params{}
	if len(raw) == 0 {
		return p, nil
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           p,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create params decoder: %w", err)
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("invalid duckdb params: %w", err)
	}
	return p, nil
}

func (o CSVOptions) sampleSize() int {
	if o.SampleSize == 0 {
		return -1
	}
	return o.SampleSize
}
