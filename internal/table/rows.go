package table

// rows.go - scanning database/sql results into tables

import (
	"database/sql"
	"fmt"
	"math"
	"math/big"
	"time"
)

// FromRows reads every row of rows into a new table. Column order follows
// the result set. The caller still owns rows and must close it.
func FromRows(name string, rows *sql.Rows) (*Table, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}

	t := New(name, cols...)
	for rows.Next() {
		values := make([]any, len(cols))
		valuePtrs := make([]any, len(cols))
		for i := range values {
			valuePtrs[i] = &values[i]
		}

		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		if err := t.Append(values...); err != nil {
			return nil, err
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return t, nil
}

// Normalize converts a driver or Go value into one of the cell types:
// int64, float64, string, bool or nil. Floating NaN becomes nil.
func Normalize(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case int64, string, bool:
		return x
	case float64:
		if math.IsNaN(x) {
			return nil
		}
		return x
	case int:
		return int64(x)
	case int8:
		return int64(x)
	case int16:
		return int64(x)
	case int32:
		return int64(x)
	case uint8:
		return int64(x)
	case uint16:
		return int64(x)
	case uint32:
		return int64(x)
	case uint64:
		if x > math.MaxInt64 {
			return fmt.Sprint(x)
		}
		return int64(x)
	case uint:
		return Normalize(uint64(x))
	case float32:
		return Normalize(float64(x))
	case []byte:
		return string(x)
	case *big.Int:
		if x.IsInt64() {
			return x.Int64()
		}
		return x.String()
	case time.Time:
		if x.Hour() == 0 && x.Minute() == 0 && x.Second() == 0 && x.Nanosecond() == 0 {
			return x.Format(time.DateOnly)
		}
		return x.Format(time.RFC3339Nano)
	default:
		return fmt.Sprint(x)
	}
}
