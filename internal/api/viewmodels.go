package api

import (
	"encoding/json"
	"html/template"
	"strconv"

	"github.com/jeevananthan-98/Hydrointel/internal/dashboard"
	"github.com/jeevananthan-98/Hydrointel/internal/models"
)

// PageData is the full view model for the dashboard page.
type PageData struct {
	Lang              string
	City              models.City
	Cities            []models.City
	PredictionActive  bool
	FeaturePrediction bool
	Features          models.PredictionFeatures
	Search            SearchView
	Historical        HistoricalView
	Prediction        PredictionView
	Performance       PerformanceView
}

type SearchView struct {
	Status  string
	Query   string
	Results []models.SearchResult
	Err     string
}

type HistoricalView struct {
	City      models.City
	Loading   bool
	Fetched   bool
	Empty     bool
	Points    []HistoricalPointView
	ChartJSON template.JS
}

type HistoricalPointView struct {
	DateLabel string
	Level     float64
}

type PredictionView struct {
	HasResult    bool
	Result       string
	Err          string
	Unconfigured bool
}

type PerformanceView struct {
	Tried bool
	Ready bool
}

// chartData feeds the inline line chart on the insights tab.
type chartData struct {
	Labels []string  `json:"labels"`
	Data   []float64 `json:"data"`
	Color  string    `json:"color"`
}

func (s *Server) pageData() PageData {
	snap := s.coord.Snapshot()
	return PageData{
		Lang:              s.tr.Lang(),
		City:              snap.City,
		Cities:            snap.Cities,
		PredictionActive:  snap.Tab == dashboard.TabPrediction,
		FeaturePrediction: s.cfg.FeaturePrediction,
		Features:          snap.Features,
		Search:            searchView(snap.Search),
		Historical:        historicalView(snap.Historical),
		Prediction:        predictionView(snap.Prediction),
		Performance:       PerformanceView{Tried: snap.PlotTried, Ready: snap.PlotReady},
	}
}

func searchView(s dashboard.SearchState) SearchView {
	return SearchView{
		Status:  s.Status.String(),
		Query:   s.Query,
		Results: s.Results,
		Err:     s.Err,
	}
}

func historicalView(h dashboard.HistoricalState) HistoricalView {
	v := HistoricalView{City: h.City, Loading: h.Loading, Fetched: h.Fetched}
	if h.Fetched && len(h.Series) == 0 {
		v.Empty = true
		return v
	}
	chart := chartData{Color: "#3b82f6"}
	for _, p := range h.Series {
		v.Points = append(v.Points, HistoricalPointView{DateLabel: p.DisplayDate(), Level: p.WaterLevelM})
		chart.Labels = append(chart.Labels, p.DisplayDate())
		chart.Data = append(chart.Data, p.WaterLevelM)
	}
	if b, err := json.Marshal(chart); err == nil {
		v.ChartJSON = template.JS(b)
	}
	return v
}

func predictionView(p dashboard.PredictionState) PredictionView {
	v := PredictionView{Err: p.Err, Unconfigured: p.Unconfigured}
	if p.Result != nil {
		v.HasResult = true
		v.Result = strconv.FormatFloat(*p.Result, 'f', 2, 64)
	}
	return v
}
