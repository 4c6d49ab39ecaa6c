package table

import (
	"fmt"
	"strings"
)

// Suffixes applied to non-key columns present on both sides of a join.
const (
	LeftSuffix  = "_x"
	RightSuffix = "_y"
)

// InnerJoin returns the rows of left and right whose key columns are equal.
//
// Keys compare by exact scalar equality: values of different types never
// match and nil never matches. The result holds every left column followed by
// the non-key right columns. Rows are ordered by left row, then by right row.
func InnerJoin(left, right *Table, keys ...string) (*Table, error) {
	if len(keys) == 0 {
		return nil, fmt.Errorf("join %s with %s: no key columns", left.label(), right.label())
	}

	leftKeys, err := keyIndexes(left, keys)
	if err != nil {
		return nil, fmt.Errorf("join %s with %s: %w", left.label(), right.label(), err)
	}
	rightKeys, err := keyIndexes(right, keys)
	if err != nil {
		return nil, fmt.Errorf("join %s with %s: %w", left.label(), right.label(), err)
	}

	isKey := make(map[string]bool, len(keys))
	for _, k := range keys {
		isKey[k] = true
	}

	// Columns carried over from the right side.
	var rightCols []int
	for i, c := range right.columns {
		if !isKey[c] {
			rightCols = append(rightCols, i)
		}
	}

	columns := make([]string, 0, len(left.columns)+len(rightCols))
	for _, c := range left.columns {
		if !isKey[c] && right.Has(c) {
			c += LeftSuffix
		}
		columns = append(columns, c)
	}
	for _, i := range rightCols {
		c := right.columns[i]
		if left.Has(c) {
			c += RightSuffix
		}
		columns = append(columns, c)
	}

	index := make(map[string][]int, len(right.rows))
	for i, row := range right.rows {
		k, ok := joinKey(row, rightKeys)
		if !ok {
			continue
		}
		index[k] = append(index[k], i)
	}

	out := New(left.Name, columns...)
	for _, lrow := range left.rows {
		k, ok := joinKey(lrow, leftKeys)
		if !ok {
			continue
		}
		for _, ri := range index[k] {
			row := make([]any, 0, len(columns))
			row = append(row, lrow...)
			for _, i := range rightCols {
				row = append(row, right.rows[ri][i])
			}
			out.rows = append(out.rows, row)
		}
	}

	return out, nil
}

func keyIndexes(t *Table, keys []string) ([]int, error) {
	idx := make([]int, len(keys))
	for i, k := range keys {
		idx[i] = t.Index(k)
		if idx[i] < 0 {
			return nil, &ColumnError{Table: t.label(), Column: k}
		}
	}
	return idx, nil
}

// joinKey encodes the key cells of row with their types, so that
// int64(5) and "5" produce different keys. ok is false when any key is nil.
func joinKey(row []any, idx []int) (string, bool) {
	var b strings.Builder
	for n, i := range idx {
		v := row[i]
		if v == nil {
			return "", false
		}
		if n > 0 {
			b.WriteByte(0)
		}
		fmt.Fprintf(&b, "%T:%v", v, v)
	}
	return b.String(), true
}
