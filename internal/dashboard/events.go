package dashboard

import (
	"errors"
	"log"

	"github.com/jeevananthan-98/Hydrointel/internal/backend"
	"github.com/jeevananthan-98/Hydrointel/internal/metrics"
	"github.com/jeevananthan-98/Hydrointel/internal/models"
)

// panelEvent is a typed result-or-error message emitted by a panel fetch
// and consumed by the coordinator. Every fetch is tagged with a sequence
// number when issued; an event whose sequence is no longer the latest for
// its panel is discarded, so a slow superseded response can never
// overwrite newer data.
type panelEvent interface {
	panel() string
	sequence() uint64
	latest(c *Coordinator) uint64
	apply(c *Coordinator) // called with c.mu held
}

// apply routes a panel event through the staleness check. It reports
// whether the event was applied.
func (c *Coordinator) apply(ev panelEvent) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ev.sequence() != ev.latest(c) {
		metrics.PanelEvents.WithLabelValues(ev.panel(), "stale").Inc()
		return false
	}
	ev.apply(c)
	metrics.PanelEvents.WithLabelValues(ev.panel(), "applied").Inc()
	return true
}

type historicalEvent struct {
	seq    uint64
	city   models.City
	series []models.HistoricalPoint
	err    error
}

func (e historicalEvent) panel() string                { return "historical" }
func (e historicalEvent) sequence() uint64             { return e.seq }
func (e historicalEvent) latest(c *Coordinator) uint64 { return c.histSeq }

func (e historicalEvent) apply(c *Coordinator) {
	c.historical.Loading = false
	if e.err != nil {
		// Keep whatever series was already on screen. The historical
		// panel shows stale data in preference to an error banner,
		// unlike the search and prediction panels.
		log.Printf("dashboard: historical fetch for %s failed: %v", e.city, e.err)
		return
	}
	c.historical.City = e.city
	c.historical.Series = e.series
	c.historical.Fetched = true
}

type searchEvent struct {
	seq     uint64
	query   string
	results []models.SearchResult
	err     error
}

func (e searchEvent) panel() string                { return "search" }
func (e searchEvent) sequence() uint64             { return e.seq }
func (e searchEvent) latest(c *Coordinator) uint64 { return c.searchSeq }

func (e searchEvent) apply(c *Coordinator) {
	c.search.Query = e.query
	if e.err != nil {
		c.search.Status = SearchFailed
		c.search.Results = nil
		c.search.Err = displayError(e.err)
		return
	}
	c.search.Err = ""
	if len(e.results) == 0 {
		c.search.Status = SearchEmpty
		c.search.Results = nil
		return
	}
	c.search.Status = SearchPopulated
	c.search.Results = e.results
}

type predictionEvent struct {
	seq     uint64
	variant string
	level   float64
	err     error
}

func (e predictionEvent) panel() string                { return "prediction" }
func (e predictionEvent) sequence() uint64             { return e.seq }
func (e predictionEvent) latest(c *Coordinator) uint64 { return c.predSeq }

func (e predictionEvent) apply(c *Coordinator) {
	c.prediction.Pending = false
	c.prediction.Variant = e.variant
	if e.err != nil {
		c.prediction.Result = nil
		c.prediction.Err = displayError(e.err)
		var cerr *backend.ConfigurationError
		if errors.As(e.err, &cerr) {
			c.prediction.Unconfigured = true
		}
		return
	}
	level := e.level
	c.prediction.Result = &level
	c.prediction.Err = ""
}

// displayError converts a backend failure into the string shown in the
// panel. Validation rejections surface the backend's own message;
// everything else collapses to a generic failure line.
func displayError(err error) string {
	var verr *backend.ValidationError
	if errors.As(err, &verr) {
		return verr.Message
	}
	var cerr *backend.ConfigurationError
	if errors.As(err, &cerr) {
		return cerr.Error()
	}
	return "could not reach the groundwater service"
}
