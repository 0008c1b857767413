package dashboard

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/jeevananthan-98/Hydrointel/internal/backend"
	"github.com/jeevananthan-98/Hydrointel/internal/models"
)

// Backend is the slice of the API client the coordinator drives.
type Backend interface {
	SearchStations(ctx context.Context, q string) ([]models.SearchResult, error)
	HistoricalSeries(ctx context.Context, city models.City) ([]models.HistoricalPoint, error)
	PredictByCity(ctx context.Context, city models.City) (float64, error)
	PredictByFeatures(ctx context.Context, f models.PredictionFeatures) (float64, error)
	PerformancePlot(ctx context.Context) ([]byte, error)
}

// Coordinator owns the dashboard view state: the selected city, the
// active tab, and the result-or-error state of every panel. Each panel
// reports back as a typed event (see events.go); panels never touch each
// other's state, and there is no shared transaction across fetches.
type Coordinator struct {
	backend    Backend
	configured bool

	mu         sync.Mutex
	city       models.City
	tab        Tab
	historical HistoricalState
	search     SearchState
	prediction PredictionState
	features   models.PredictionFeatures
	plot       PlotState
	plotOnce   sync.Once

	// Per-panel sequence counters. Bumped when a fetch is issued or the
	// panel is reset; events carrying an older value are discarded.
	histSeq   uint64
	searchSeq uint64
	predSeq   uint64
}

func New(b Backend, configured bool) *Coordinator {
	return &Coordinator{
		backend:    b,
		configured: configured,
		city:       models.DefaultCity(),
		tab:        TabInsights,
		features:   models.DefaultFeatures(),
	}
}

// Mount issues the initial side effects: the historical fetch for the
// default city and the one-time performance plot fetch. The two are
// independent and unordered.
func (c *Coordinator) Mount(ctx context.Context) {
	c.mu.Lock()
	city := c.city
	c.histSeq++
	seq := c.histSeq
	c.historical.Loading = true
	c.mu.Unlock()

	go c.fetchHistorical(ctx, city, seq)
	go c.FetchPlot(ctx)
}

func (c *Coordinator) City() models.City {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.city
}

// SelectCity switches the selected city and issues exactly one historical
// fetch for it. Unknown names are rejected without a request.
func (c *Coordinator) SelectCity(ctx context.Context, name string) error {
	city, ok := models.LookupCity(name)
	if !ok {
		return fmt.Errorf("unknown city %q", name)
	}

	c.mu.Lock()
	c.city = city
	c.histSeq++
	seq := c.histSeq
	c.historical.Loading = true
	c.mu.Unlock()

	c.fetchHistorical(ctx, city, seq)
	return nil
}

// SeriesFor fetches a city's series without touching the page selection
// or the historical panel. Read-only callers use this instead of
// SelectCity.
func (c *Coordinator) SeriesFor(ctx context.Context, name string) (models.City, []models.HistoricalPoint, error) {
	city, ok := models.LookupCity(name)
	if !ok {
		return "", nil, fmt.Errorf("unknown city %q", name)
	}
	series, err := c.backend.HistoricalSeries(ctx, city)
	if err != nil {
		return "", nil, err
	}
	return city, series, nil
}

func (c *Coordinator) fetchHistorical(ctx context.Context, city models.City, seq uint64) {
	series, err := c.backend.HistoricalSeries(ctx, city)
	c.apply(historicalEvent{seq: seq, city: city, series: series, err: err})
}

// Search runs one round of the search state machine. An empty or
// whitespace-only term is a no-op: no request, no state change.
func (c *Coordinator) Search(ctx context.Context, term string) {
	term = strings.TrimSpace(term)
	if term == "" {
		return
	}

	c.mu.Lock()
	c.searchSeq++
	seq := c.searchSeq
	c.search = SearchState{Status: SearchSearching, Query: term}
	c.mu.Unlock()

	results, err := c.backend.SearchStations(ctx, term)
	c.apply(searchEvent{seq: seq, query: term, results: results, err: err})
}

// ClearSearch resets the panel to Idle, dropping results and error
// together. Bumping the sequence also voids any in-flight request.
func (c *Coordinator) ClearSearch() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.searchSeq++
	c.search = SearchState{}
}

// PredictByCity submits the currently selected city for a prediction.
func (c *Coordinator) PredictByCity(ctx context.Context) {
	seq, ok := c.beginPrediction("city")
	if !ok {
		return
	}
	level, err := c.backend.PredictByCity(ctx, c.City())
	c.apply(predictionEvent{seq: seq, variant: "city", level: level, err: err})
}

// PredictByFeatures submits an explicit feature vector. The submitted
// values replace the stored form values so the form re-renders with what
// was sent.
func (c *Coordinator) PredictByFeatures(ctx context.Context, f models.PredictionFeatures) {
	seq, ok := c.beginPrediction("features")
	if !ok {
		return
	}
	c.mu.Lock()
	c.features = f
	c.mu.Unlock()

	level, err := c.backend.PredictByFeatures(ctx, f)
	c.apply(predictionEvent{seq: seq, variant: "features", level: level, err: err})
}

// beginPrediction clears the mutually exclusive result/error pair before
// the new request. When the backend address is still the deployment
// placeholder it short-circuits with a ConfigurationError event and no
// network call; this guard exists only on the prediction panels.
func (c *Coordinator) beginPrediction(variant string) (uint64, bool) {
	c.mu.Lock()
	c.predSeq++
	seq := c.predSeq
	c.prediction = PredictionState{Variant: variant, Pending: true}
	configured := c.configured
	c.mu.Unlock()

	if !configured {
		c.apply(predictionEvent{seq: seq, variant: variant, err: &backend.ConfigurationError{}})
		return 0, false
	}
	return seq, true
}

// FetchPlot retrieves the model-performance plot. It runs at most once
// per process regardless of outcome; a failure leaves the panel in its
// unavailable state.
func (c *Coordinator) FetchPlot(ctx context.Context) {
	c.plotOnce.Do(func() {
		data, err := c.backend.PerformancePlot(ctx)
		c.mu.Lock()
		defer c.mu.Unlock()
		c.plot.Attempted = true
		if err != nil {
			log.Printf("dashboard: performance plot unavailable: %v", err)
			return
		}
		c.plot.Data = data
	})
}

// PlotBytes returns the cached plot image, if the one-shot fetch
// succeeded.
func (c *Coordinator) PlotBytes() ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.plot.Data) == 0 {
		return nil, false
	}
	return c.plot.Data, true
}

// SetTab switches the active tab. View state only; no fetch.
func (c *Coordinator) SetTab(t Tab) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tab = t
}

func (c *Coordinator) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		City:       c.city,
		Cities:     models.Cities,
		Tab:        c.tab,
		Historical: c.historical,
		Search:     c.search,
		Prediction: c.prediction,
		Features:   c.features,
		PlotTried:  c.plot.Attempted,
		PlotReady:  len(c.plot.Data) > 0,
	}
}
