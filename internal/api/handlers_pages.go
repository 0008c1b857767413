package api

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/jeevananthan-98/Hydrointel/internal/dashboard"
	"github.com/jeevananthan-98/Hydrointel/internal/models"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	s.tmpl.render(w, "index.html", s.pageData())
}

func (s *Server) handleSelectCity(w http.ResponseWriter, r *http.Request) {
	if err := s.coord.SelectCity(r.Context(), r.FormValue("city")); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	s.coord.Search(r.Context(), r.FormValue("q"))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleSearchClear(w http.ResponseWriter, r *http.Request) {
	s.coord.ClearSearch()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleTab(w http.ResponseWriter, r *http.Request) {
	tab, ok := dashboard.ParseTab(mux.Vars(r)["tab"])
	if !ok {
		http.NotFound(w, r)
		return
	}
	s.coord.SetTab(tab)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handlePredictCity(w http.ResponseWriter, r *http.Request) {
	s.coord.SetTab(dashboard.TabPrediction)
	s.coord.PredictByCity(r.Context())
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handlePredictFeatures(w http.ResponseWriter, r *http.Request) {
	if !s.cfg.FeaturePrediction {
		http.NotFound(w, r)
		return
	}
	feat, err := featuresFromForm(r)
	if err != nil {
		http.Error(w, "invalid numeric input", http.StatusBadRequest)
		return
	}
	s.coord.SetTab(dashboard.TabPrediction)
	s.coord.PredictByFeatures(r.Context(), feat)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func featuresFromForm(r *http.Request) (models.PredictionFeatures, error) {
	var f models.PredictionFeatures
	for _, field := range []struct {
		name string
		dst  *float64
	}{
		{"lat", &f.Lat},
		{"long", &f.Long},
		{"rainfall_mm", &f.RainfallMM},
		{"temperature_c", &f.TemperatureC},
		{"ph", &f.PH},
		{"dissolved_oxygen_mg_l", &f.DissolvedOxygenMgL},
	} {
		v, err := strconv.ParseFloat(r.FormValue(field.name), 64)
		if err != nil {
			return models.PredictionFeatures{}, err
		}
		*field.dst = v
	}
	return f, nil
}

func (s *Server) handlePlot(w http.ResponseWriter, r *http.Request) {
	data, ok := s.coord.PlotBytes()
	if !ok {
		http.Error(w, "model performance plot unavailable", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(data)
}

func (s *Server) handleSearchPartial(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	s.tmpl.render(w, "search.html", searchView(s.coord.Snapshot().Search))
}

func (s *Server) handleHistoricalPartial(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	s.tmpl.render(w, "historical.html", historicalView(s.coord.Snapshot().Historical))
}

func (s *Server) handlePredictionPartial(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	s.tmpl.render(w, "prediction_result.html", predictionView(s.coord.Snapshot().Prediction))
}
