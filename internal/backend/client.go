package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jeevananthan-98/Hydrointel/internal/httputil"
	"github.com/jeevananthan-98/Hydrointel/internal/metrics"
	"github.com/jeevananthan-98/Hydrointel/internal/models"
)

// Client talks to the groundwater prediction backend. One configured base
// address, no retries, no caching.
type Client struct {
	baseURL string
	client  *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  httputil.NewClient(),
	}
}

// errorResponse is the backend's envelope for 4xx/5xx bodies.
type errorResponse struct {
	Error string `json:"error"`
}

// SearchStations queries the station search endpoint. An empty result set
// is returned as-is; it is a valid response, not an error.
func (c *Client) SearchStations(ctx context.Context, q string) ([]models.SearchResult, error) {
	u := fmt.Sprintf("%s/api/search?q=%s", c.baseURL, url.QueryEscape(q))
	var results []models.SearchResult
	if err := c.getJSON(ctx, "search", u, &results); err != nil {
		return nil, err
	}
	return results, nil
}

type historicalRecord struct {
	Date        string  `json:"Date"`
	WaterLevelM float64 `json:"Water_Level_m"`
}

// HistoricalSeries reads the water-level series for a city. The city
// identifier is lower-cased before transmission; the series comes back
// ordered by date and is kept in server-provided order. Records whose
// date fails to parse are skipped.
func (c *Client) HistoricalSeries(ctx context.Context, city models.City) ([]models.HistoricalPoint, error) {
	u := fmt.Sprintf("%s/historical_data?city=%s", c.baseURL, url.QueryEscape(city.Param()))
	var records []historicalRecord
	if err := c.getJSON(ctx, "historical_data", u, &records); err != nil {
		return nil, err
	}
	points := make([]models.HistoricalPoint, 0, len(records))
	for _, rec := range records {
		date, err := time.Parse("2006-01-02", rec.Date)
		if err != nil {
			log.Printf("backend: skipping record with unparseable date %q: %v", rec.Date, err)
			continue
		}
		points = append(points, models.HistoricalPoint{Date: date, WaterLevelM: rec.WaterLevelM})
	}
	return points, nil
}

type predictionResponse struct {
	Prediction float64 `json:"prediction"`
}

// PredictByCity requests a prediction from the city's averaged features.
func (c *Client) PredictByCity(ctx context.Context, city models.City) (float64, error) {
	u := fmt.Sprintf("%s/predict_by_city?city=%s", c.baseURL, url.QueryEscape(city.Param()))
	var resp predictionResponse
	if err := c.getJSON(ctx, "predict_by_city", u, &resp); err != nil {
		return 0, err
	}
	return resp.Prediction, nil
}

// PredictByFeatures posts an explicit feature vector. Field values go out
// verbatim; all domain validation is the backend's job, and a rejection
// comes back as a ValidationError carrying the backend's message.
func (c *Client) PredictByFeatures(ctx context.Context, features models.PredictionFeatures) (float64, error) {
	payload, err := json.Marshal(map[string]models.PredictionFeatures{"features": features})
	if err != nil {
		return 0, &NetworkError{Op: "predict", Err: fmt.Errorf("marshal: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", bytes.NewReader(payload))
	if err != nil {
		return 0, &NetworkError{Op: "predict", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		metrics.BackendCalls.WithLabelValues("predict", "error").Inc()
		return 0, &NetworkError{Op: "predict", Err: err}
	}
	defer resp.Body.Close()
	metrics.BackendLatency.WithLabelValues("predict").Observe(time.Since(start).Seconds())
	metrics.BackendCalls.WithLabelValues("predict", strconv.Itoa(resp.StatusCode)).Inc()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, &NetworkError{Op: "predict", Err: fmt.Errorf("read body: %w", err)}
	}

	switch {
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnprocessableEntity:
		return 0, &ValidationError{Message: rejectionMessage(body)}
	case resp.StatusCode != http.StatusOK:
		return 0, &NetworkError{Op: "predict", Status: resp.StatusCode}
	}

	var out predictionResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return 0, &NetworkError{Op: "predict", Err: fmt.Errorf("unmarshal: %w", err)}
	}
	return out.Prediction, nil
}

// PerformancePlot fetches the precomputed model-performance image as
// opaque bytes.
func (c *Client) PerformancePlot(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/model_performance", nil)
	if err != nil {
		return nil, &NetworkError{Op: "model_performance", Err: err}
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		metrics.BackendCalls.WithLabelValues("model_performance", "error").Inc()
		return nil, &NetworkError{Op: "model_performance", Err: err}
	}
	defer resp.Body.Close()
	metrics.BackendLatency.WithLabelValues("model_performance").Observe(time.Since(start).Seconds())
	metrics.BackendCalls.WithLabelValues("model_performance", strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode != http.StatusOK {
		return nil, &NetworkError{Op: "model_performance", Status: resp.StatusCode}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Op: "model_performance", Err: fmt.Errorf("read body: %w", err)}
	}
	return data, nil
}

// getJSON issues a GET and decodes a JSON body into out.
func (c *Client) getJSON(ctx context.Context, endpoint, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return &NetworkError{Op: endpoint, Err: err}
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		metrics.BackendCalls.WithLabelValues(endpoint, "error").Inc()
		return &NetworkError{Op: endpoint, Err: err}
	}
	defer resp.Body.Close()
	metrics.BackendLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	metrics.BackendCalls.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode != http.StatusOK {
		return &NetworkError{Op: endpoint, Status: resp.StatusCode}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &NetworkError{Op: endpoint, Err: fmt.Errorf("unmarshal: %w", err)}
	}
	return nil
}

func rejectionMessage(body []byte) string {
	var er errorResponse
	if err := json.Unmarshal(body, &er); err == nil && er.Error != "" {
		return er.Error
	}
	return "backend rejected the prediction payload"
}
