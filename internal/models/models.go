package models

import (
	"strings"
	"time"
)

// City is one of the fixed set of locations the backend has data for.
type City string

// Cities is the closed set of monitored locations. The first entry is the
// default selection at startup.
var Cities = []City{"Mumbai", "Delhi", "Chennai", "Kolkata", "Bengaluru"}

func DefaultCity() City { return Cities[0] }

// LookupCity resolves a user-supplied name against the fixed set,
// case-insensitively. ok is false for anything outside the set.
func LookupCity(name string) (City, bool) {
	for _, c := range Cities {
		if strings.EqualFold(string(c), strings.TrimSpace(name)) {
			return c, true
		}
	}
	return "", false
}

// Param is the identifier sent over the wire. The backend matches cities
// lower-cased.
func (c City) Param() string { return strings.ToLower(string(c)) }

// HistoricalPoint is a single dated water-level reading in meters below
// ground level.
type HistoricalPoint struct {
	Date        time.Time
	WaterLevelM float64
}

// DisplayDate normalizes the reading date to the form shown in the chart.
func (p HistoricalPoint) DisplayDate() string { return p.Date.Format("02 Jan 2006") }

// SearchResult is one monitoring station returned by the station search.
// Result sets are rendered in server-provided order.
type SearchResult struct {
	StateName    string  `json:"stateName"`
	DistrictName string  `json:"districtName"`
	StationName  string  `json:"stationName"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
}

// PredictionFeatures are the six numeric inputs the model was trained on.
// The JSON names mirror the backend's training columns exactly.
type PredictionFeatures struct {
	Lat                float64 `json:"Lat"`
	Long               float64 `json:"Long"`
	RainfallMM         float64 `json:"Rainfall_mm"`
	TemperatureC       float64 `json:"Temperature_C"`
	PH                 float64 `json:"pH"`
	DissolvedOxygenMgL float64 `json:"Dissolved_Oxygen_mg_L"`
}

// DefaultFeatures seeds the feature form with plausible values for the
// default city.
func DefaultFeatures() PredictionFeatures {
	return PredictionFeatures{
		Lat:                19.076,
		Long:               72.8777,
		RainfallMM:         120.5,
		TemperatureC:       28.4,
		PH:                 7.2,
		DissolvedOxygenMgL: 5.8,
	}
}
