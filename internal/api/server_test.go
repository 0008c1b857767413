package api_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jeevananthan-98/Hydrointel/internal/api"
	"github.com/jeevananthan-98/Hydrointel/internal/backend"
	"github.com/jeevananthan-98/Hydrointel/internal/config"
	"github.com/jeevananthan-98/Hydrointel/internal/dashboard"
	"github.com/jeevananthan-98/Hydrointel/internal/i18n"
)

// upstream fakes the groundwater service the dashboard talks to.
func upstream(t *testing.T, mux *http.ServeMux) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newDashboard(t *testing.T, backendURL string) (*httptest.Server, *dashboard.Coordinator) {
	t.Helper()
	cfg := &config.Config{Listen: ":0", BackendURL: backendURL, Lang: "en", FeaturePrediction: true}
	tr, err := i18n.New(cfg.Lang)
	if err != nil {
		t.Fatal(err)
	}
	coord := dashboard.New(backend.New(backendURL), cfg.BackendConfigured())
	srv := httptest.NewServer(api.NewServer(coord, cfg, tr).Handler())
	t.Cleanup(srv.Close)
	return srv, coord
}

func get(t *testing.T, url string) string {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return string(body)
}

func postForm(t *testing.T, url string, form map[string]string) string {
	t.Helper()
	values := make([]string, 0, len(form))
	for k, v := range form {
		values = append(values, k+"="+v)
	}
	resp, err := http.Post(url, "application/x-www-form-urlencoded", strings.NewReader(strings.Join(values, "&")))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return string(body)
}

func TestIndexRendersHistoricalSeries(t *testing.T) {
	m := http.NewServeMux()
	m.HandleFunc("/historical_data", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]any{
			{"Date": "2023-01-01", "Water_Level_m": 5.2},
		})
	})
	up := upstream(t, m)

	srv, coord := newDashboard(t, up.URL)
	if err := coord.SelectCity(context.Background(), "Mumbai"); err != nil {
		t.Fatal(err)
	}

	body := get(t, srv.URL+"/")
	if !strings.Contains(body, "01 Jan 2023") {
		t.Error("rendered page missing the reading date")
	}
	if !strings.Contains(body, "5.20 m") {
		t.Error("rendered page missing the water level")
	}
	if !strings.Contains(body, "Mumbai") {
		t.Error("rendered page missing the city")
	}
}

func TestEmptyHistoricalSeriesShowsEmptyState(t *testing.T) {
	m := http.NewServeMux()
	m.HandleFunc("/historical_data", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("[]"))
	})
	up := upstream(t, m)

	srv, coord := newDashboard(t, up.URL)
	if err := coord.SelectCity(context.Background(), "Chennai"); err != nil {
		t.Fatal(err)
	}

	body := get(t, srv.URL+"/")
	if !strings.Contains(body, "No historical readings") {
		t.Error("expected the empty-state message for a zero-point series")
	}
	if strings.Contains(body, "level-chart") {
		t.Error("an empty series must not render a chart")
	}
	if strings.Contains(body, "Loading readings") {
		t.Error("a loaded empty series must not look like loading")
	}
}

func TestAPIHistoricalDoesNotChangeSelection(t *testing.T) {
	m := http.NewServeMux()
	m.HandleFunc("/historical_data", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]any{
			{"Date": "2023-01-01", "Water_Level_m": 5.2},
		})
	})
	up := upstream(t, m)

	srv, coord := newDashboard(t, up.URL)

	var out struct {
		City   string `json:"city"`
		Points []struct {
			Date        string  `json:"date"`
			WaterLevelM float64 `json:"water_level_m"`
		} `json:"points"`
	}
	if err := json.Unmarshal([]byte(get(t, srv.URL+"/api/historical?city=delhi")), &out); err != nil {
		t.Fatal(err)
	}
	if out.City != "Delhi" || len(out.Points) != 1 || out.Points[0].WaterLevelM != 5.2 {
		t.Errorf("unexpected response %+v", out)
	}

	// A JSON read must not commit the queried city as the page selection.
	if coord.City() != "Mumbai" {
		t.Errorf("selection moved to %s on a GET", coord.City())
	}
	if !strings.Contains(get(t, srv.URL+"/"), `value="Mumbai" selected`) {
		t.Error("page no longer renders the default city as selected")
	}
}

func TestEmptySearchShowsMessageNotError(t *testing.T) {
	m := http.NewServeMux()
	m.HandleFunc("/api/search", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("[]"))
	})
	up := upstream(t, m)

	srv, _ := newDashboard(t, up.URL)

	body := get(t, srv.URL+"/search?q=Delhi")
	if !strings.Contains(body, "No stations matched") {
		t.Error("expected the empty-state message")
	}
	if strings.Contains(body, "Station search failed") {
		t.Error("an empty result set must not render as an error")
	}
}

func TestFailedSearchShowsError(t *testing.T) {
	m := http.NewServeMux()
	m.HandleFunc("/api/search", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"boom"}`, http.StatusInternalServerError)
	})
	up := upstream(t, m)

	srv, _ := newDashboard(t, up.URL)

	body := get(t, srv.URL+"/search?q=Delhi")
	if !strings.Contains(body, "Station search failed") {
		t.Error("expected the search error banner")
	}
}

func TestPredictionResultRendered(t *testing.T) {
	m := http.NewServeMux()
	m.HandleFunc("/predict_by_city", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]float64{"prediction": 4.37})
	})
	up := upstream(t, m)

	srv, _ := newDashboard(t, up.URL)

	body := postForm(t, srv.URL+"/predict/city", nil)
	if !strings.Contains(body, "4.37 m") {
		t.Error("expected the prediction rendered with its unit")
	}
}

func TestUnconfiguredBackendShowsConfigurationMessage(t *testing.T) {
	srv, _ := newDashboard(t, config.PlaceholderBaseURL)

	body := postForm(t, srv.URL+"/predict/city", nil)
	if !strings.Contains(body, "has not been configured") {
		t.Error("expected the configuration-error message")
	}
}

func TestFeaturePredictionFormRoundTrip(t *testing.T) {
	m := http.NewServeMux()
	m.HandleFunc("/predict", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]float64{"prediction": 6.05})
	})
	up := upstream(t, m)

	srv, _ := newDashboard(t, up.URL)

	body := postForm(t, srv.URL+"/predict/features", map[string]string{
		"lat": "19.076", "long": "72.8777", "rainfall_mm": "120.5",
		"temperature_c": "28.4", "ph": "7.2", "dissolved_oxygen_mg_l": "5.8",
	})
	if !strings.Contains(body, "6.05 m") {
		t.Error("expected the feature prediction result")
	}
}

func TestFeaturePredictionRejectsGarbage(t *testing.T) {
	srv, _ := newDashboard(t, "http://127.0.0.1:1")

	resp, err := http.Post(srv.URL+"/predict/features", "application/x-www-form-urlencoded",
		strings.NewReader("lat=abc"))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestPlotUnavailableBeforeFetch(t *testing.T) {
	srv, _ := newDashboard(t, "http://127.0.0.1:1")

	resp, err := http.Get(srv.URL + "/plot")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", resp.StatusCode)
	}
}

func TestPlotServedAfterFetch(t *testing.T) {
	png := []byte{0x89, 'P', 'N', 'G'}
	m := http.NewServeMux()
	m.HandleFunc("/model_performance", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(png)
	})
	up := upstream(t, m)

	srv, coord := newDashboard(t, up.URL)
	coord.FetchPlot(context.Background())

	resp, err := http.Get(srv.URL + "/plot")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
		t.Errorf("content type = %q", ct)
	}
	body, _ := io.ReadAll(resp.Body)
	if string(body) != string(png) {
		t.Error("plot bytes mangled")
	}
}

func TestUnknownCityRejected(t *testing.T) {
	srv, _ := newDashboard(t, "http://127.0.0.1:1")

	resp, err := http.Post(srv.URL+"/city", "application/x-www-form-urlencoded",
		strings.NewReader("city=Atlantis"))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestAPIPredictJSON(t *testing.T) {
	m := http.NewServeMux()
	m.HandleFunc("/predict", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]float64{"prediction": 4.37})
	})
	up := upstream(t, m)

	srv, _ := newDashboard(t, up.URL)

	resp, err := http.Post(srv.URL+"/api/predict", "application/json",
		strings.NewReader(`{"variant":"features"}`))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var out map[string]float64
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out["prediction"] != 4.37 {
		t.Errorf("prediction = %v", out["prediction"])
	}
}

func TestHealthReportsDegradedWhenUnconfigured(t *testing.T) {
	srv, _ := newDashboard(t, config.PlaceholderBaseURL)

	var health struct {
		Status            string `json:"status"`
		BackendConfigured bool   `json:"backend_configured"`
	}
	if err := json.Unmarshal([]byte(get(t, srv.URL+"/health")), &health); err != nil {
		t.Fatal(err)
	}
	if health.Status != "degraded" || health.BackendConfigured {
		t.Errorf("health = %+v", health)
	}
}

func TestTabSwitchIsPureViewState(t *testing.T) {
	var calls int
	m := http.NewServeMux()
	m.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "unexpected upstream call", http.StatusInternalServerError)
	})
	up := upstream(t, m)

	srv, _ := newDashboard(t, up.URL)

	body := get(t, srv.URL+"/tab/prediction")
	if !strings.Contains(body, "Water Level Prediction") {
		t.Error("expected the prediction tab content")
	}
	if calls != 0 {
		t.Errorf("tab switch issued %d upstream calls", calls)
	}

	resp, err := http.Get(srv.URL + "/tab/bogus")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("bogus tab status = %d, want 404", resp.StatusCode)
	}
}
