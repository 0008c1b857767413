package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/jeevananthan-98/Hydrointel/internal/backend"
	"github.com/jeevananthan-98/Hydrointel/internal/models"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write json: %v", err)
	}
}

type apiPoint struct {
	Date        string  `json:"date"`
	WaterLevelM float64 `json:"water_level_m"`
}

// handleAPIHistorical reads a city's series. It is a read: the page's
// selected city is left alone, unlike the POST /city form.
func (s *Server) handleAPIHistorical(w http.ResponseWriter, r *http.Request) {
	city, series, err := s.coord.SeriesFor(r.Context(), r.URL.Query().Get("city"))
	if err != nil {
		var nerr *backend.NetworkError
		if errors.As(err, &nerr) {
			writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	points := make([]apiPoint, 0, len(series))
	for _, p := range series {
		points = append(points, apiPoint{Date: p.Date.Format("2006-01-02"), WaterLevelM: p.WaterLevelM})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"city":   city,
		"points": points,
	})
}

func (s *Server) handleAPISearch(w http.ResponseWriter, r *http.Request) {
	s.coord.Search(r.Context(), r.URL.Query().Get("q"))
	search := s.coord.Snapshot().Search
	resp := map[string]any{
		"status":  search.Status.String(),
		"query":   search.Query,
		"results": search.Results,
	}
	if search.Err != "" {
		resp["error"] = search.Err
	}
	writeJSON(w, http.StatusOK, resp)
}

type predictRequest struct {
	Variant  string                     `json:"variant"`
	Features *models.PredictionFeatures `json:"features,omitempty"`
}

func (s *Server) handleAPIPredict(w http.ResponseWriter, r *http.Request) {
	var req predictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	switch req.Variant {
	case "city", "":
		s.coord.PredictByCity(r.Context())
	case "features":
		if !s.cfg.FeaturePrediction {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "feature prediction is disabled"})
			return
		}
		feat := models.DefaultFeatures()
		if req.Features != nil {
			feat = *req.Features
		}
		s.coord.PredictByFeatures(r.Context(), feat)
	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown prediction variant"})
		return
	}

	pred := s.coord.Snapshot().Prediction
	switch {
	case pred.Unconfigured:
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": s.tr.T("prediction.unconfigured")})
	case pred.Err != "":
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": pred.Err})
	case pred.Result != nil:
		writeJSON(w, http.StatusOK, map[string]float64{"prediction": *pred.Result})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "prediction produced no outcome"})
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	snap := s.coord.Snapshot()
	status := "ok"
	if !s.cfg.BackendConfigured() {
		status = "degraded"
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":             status,
		"backend_configured": s.cfg.BackendConfigured(),
		"language":           s.tr.Lang(),
		"city":               snap.City,
		"plot_available":     snap.PlotReady,
	})
}
