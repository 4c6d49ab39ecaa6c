// Package enrich joins survey returns to the responder, location and county
// lookups and derives the strata and time-series period of every row.
//
// Everything here is a pure function of its input tables.
package enrich

import (
	"errors"
	"fmt"

	"github.com/leapstack-labs/esenrich/internal/table"
)

// Stats describes how many rows survived each join.
type Stats struct {
	SurveyRows      int
	AfterResponders int
	AfterLocations  int
	AfterCounties   int
}

// Dropped returns the number of survey rows lost to unmatched keys.
func (s Stats) Dropped() int {
	return s.SurveyRows - s.AfterCounties
}

// Enrich returns the enriched survey. The input tables have their columns
// renamed in place.
func Enrich(survey, responders, counties, locations *table.Table) (*table.Table, error) {
	out, _, err := EnrichWithStats(survey, responders, counties, locations)
	return out, err
}

// EnrichWithStats is Enrich and also reports row counts per join.
func EnrichWithStats(survey, responders, counties, locations *table.Table) (*table.Table, Stats, error) {
	var stats Stats
	if survey == nil || responders == nil || counties == nil || locations == nil {
		return nil, stats, errors.New("enrich: all four input tables are required")
	}
	stats.SurveyRows = survey.Len()

	responders.Rename(responderRenames)
	counties.Rename(countyRenames)
	survey.Rename(surveyRenames)

	joined, err := table.InnerJoin(survey, responders, ColResponderID)
	if err != nil {
		return nil, stats, fmt.Errorf("merge responder lookup: %w", err)
	}
	stats.AfterResponders = joined.Len()

	joined, err = table.InnerJoin(joined, locations, ColGORCode)
	if err != nil {
		return nil, stats, fmt.Errorf("merge location lookup: %w", err)
	}
	stats.AfterLocations = joined.Len()

	joined, err = table.InnerJoin(joined, counties, ColCounty)
	if err != nil {
		return nil, stats, fmt.Errorf("merge county lookup: %w", err)
	}
	stats.AfterCounties = joined.Len()

	joined.Rename(outputRenames)

	if err := joined.SetColumn(ColStrata, func(r table.Row) (any, error) {
		return Strata(r)
	}); err != nil {
		return nil, stats, fmt.Errorf("calculate strata: %w", err)
	}

	if err := joined.SetColumn(ColTimeSeriesPeriod, func(r table.Row) (any, error) {
		v, err := r.Get(ColPeriod)
		if err != nil {
			return nil, err
		}
		return FormatPeriod(v), nil
	}); err != nil {
		return nil, stats, fmt.Errorf("add time-series period: %w", err)
	}

	return joined, stats, nil
}
