package enrich

// Canonical column names used after normalization.
const (
	ColResponderID      = "responder_id"
	ColCounty           = "county"
	ColGORCode          = "gor_code"
	ColPeriod           = "period"
	ColTotal            = "Q608_total"
	ColLandOrMarine     = "land_or_marine"
	ColRegion           = "region"
	ColRegionName       = "region_name"
	ColStrata           = "strata"
	ColTimeSeriesPeriod = "timeseriesperiod"
)

// Renames applied to the lookups and the survey before joining.
var (
	responderRenames = map[string]string{
		"ref":    ColResponderID,
		"county": ColCounty,
	}
	countyRenames = map[string]string{
		"cty_code": ColCounty,
	}
	surveyRenames = map[string]string{
		"idbr": ColResponderID,
	}
)

// outputRenames maps raw survey and location columns to their domain names.
// Applied to the joined table.
var outputRenames = map[string]string{
	"PERIOD":   ColPeriod,
	"resp":     "response_type",
	"sandcoat": "Q601_asphalting_sand",
	"sandbuil": "Q602_building_soft_sand",
	"sandconc": "Q603_concreting_sand",
	"gravcoat": "Q604_bituminous_gravel",
	"gravagg":  "Q605_concreting_gravel",
	"gravoth":  "Q606_other_gravel",
	"fill":     "Q607_constructional_fill",
	"tot":      ColTotal,
	"lorm":     ColLandOrMarine,
	"entno":    "enterprise_ref",
	"GOR_DESC": ColRegionName,
}

// CanonicalNames returns the complete raw -> canonical rename table.
func CanonicalNames() map[string]string {
	names := make(map[string]string, len(outputRenames)+3)
	for _, m := range []map[string]string{surveyRenames, responderRenames, countyRenames, outputRenames} {
		for from, to := range m {
			if from != to {
				names[from] = to
			}
		}
	}
	return names
}
