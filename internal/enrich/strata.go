package enrich

import (
	"fmt"
	"math"

	"github.com/leapstack-labs/esenrich/internal/table"
)

// Strata codes.
const (
	StrataNone   = ""
	StrataMarine = "M"
	StrataE      = "E"
	StrataD      = "D"
	StrataC      = "C"
	StrataB1     = "B1"
	StrataB2     = "B2"
	StrataA      = "A"
)

// predicate reports whether a rule applies to a row.
type predicate func(table.Row) (bool, error)

type strataRule struct {
	value string
	when  predicate
}

// strataRules is evaluated top to bottom on every row. Every rule is tested
// and the last one that matches sets the code, so the higher land bands
// override the lower ones.
var strataRules = []strataRule{
	{StrataMarine, medium("m")},
	{StrataE, all(medium("l"), below(ColTotal, 30000))},
	{StrataD, all(medium("l"), above(ColTotal, 29999))},
	{StrataC, all(medium("l"), above(ColTotal, 79999))},
	{StrataB2, all(medium("l"), above(ColTotal, 129999), above(ColRegion, 9))},
	{StrataB1, all(medium("l"), above(ColTotal, 129999), below(ColRegion, 10))},
	{StrataA, all(medium("l"), above(ColTotal, 200000))},
}

// Strata returns the stratification code for a joined survey row.
func Strata(r table.Row) (string, error) {
	code := StrataNone
	for _, rule := range strataRules {
		ok, err := rule.when(r)
		if err != nil {
			return "", fmt.Errorf("strata %q: %w", rule.value, err)
		}
		if ok {
			code = rule.value
		}
	}
	return code, nil
}

// all matches when every predicate matches. Later predicates are not
// evaluated once one fails, so their columns are only read when needed.
func all(ps ...predicate) predicate {
	return func(r table.Row) (bool, error) {
		for _, p := range ps {
			ok, err := p(r)
			if err != nil || !ok {
				return false, err
			}
		}
		return true, nil
	}
}

func medium(code string) predicate {
	return func(r table.Row) (bool, error) {
		v, err := r.Get(ColLandOrMarine)
		if err != nil {
			return false, err
		}
		s, ok := v.(string)
		return ok && s == code, nil
	}
}

func above(col string, limit float64) predicate {
	return func(r table.Row) (bool, error) {
		n, err := number(r, col)
		if err != nil {
			return false, err
		}
		return n > limit, nil
	}
}

func below(col string, limit float64) predicate {
	return func(r table.Row) (bool, error) {
		n, err := number(r, col)
		if err != nil {
			return false, err
		}
		return n < limit, nil
	}
}

// number reads a numeric cell. Missing values come back as NaN, which fails
// every comparison.
func number(r table.Row, col string) (float64, error) {
	v, err := r.Get(col)
	if err != nil {
		return 0, err
	}
	switch x := v.(type) {
	case nil:
		return math.NaN(), nil
	case int64:
		return float64(x), nil
	case float64:
		return x, nil
	case bool:
		if x {
			return 1, nil
		}
		return 0, nil
	default:
		return 0, fmt.Errorf("column %q: cannot compare %T value %v with a number", col, v, v)
	}
}
