package dashboard

import "github.com/jeevananthan-98/Hydrointel/internal/models"

// Tab identifies which dashboard view is active. Switching tabs is pure
// view state with no network side effect.
type Tab string

const (
	TabInsights   Tab = "insights"
	TabPrediction Tab = "prediction"
)

// ParseTab validates a tab name from the URL.
func ParseTab(s string) (Tab, bool) {
	switch Tab(s) {
	case TabInsights, TabPrediction:
		return Tab(s), true
	}
	return "", false
}

// SearchStatus is the search panel's position in its state machine:
// Idle -> Searching -> {Populated | Empty | Failed}.
type SearchStatus int

const (
	SearchIdle SearchStatus = iota
	SearchSearching
	SearchPopulated
	SearchEmpty
	SearchFailed
)

func (s SearchStatus) String() string {
	switch s {
	case SearchIdle:
		return "idle"
	case SearchSearching:
		return "searching"
	case SearchPopulated:
		return "populated"
	case SearchEmpty:
		return "empty"
	case SearchFailed:
		return "failed"
	}
	return "unknown"
}

// SearchState holds the search panel's results or error. Results and Err
// are never both set.
type SearchState struct {
	Status  SearchStatus
	Query   string
	Results []models.SearchResult
	Err     string
}

// HistoricalState holds the series currently on screen. A failed refresh
// keeps the previous series; Loading covers the window between a city
// change and its response.
type HistoricalState struct {
	City    models.City
	Series  []models.HistoricalPoint
	Loading bool
	Fetched bool
}

// PredictionState is the mutually exclusive result-or-error pair for the
// prediction panel. Both fields are cleared at the start of every submit.
type PredictionState struct {
	Variant string // "city" or "features"
	Pending bool
	Result  *float64
	Err     string
	// Unconfigured distinguishes the placeholder-address guard from a
	// backend failure so the UI can show its own message for it.
	Unconfigured bool
}

// PlotState tracks the one-shot performance plot fetch. Empty Data after
// an attempt is the "unavailable" display, not an error banner.
type PlotState struct {
	Attempted bool
	Data      []byte
}

// Snapshot is a point-in-time copy of the coordinator state for rendering.
type Snapshot struct {
	City       models.City
	Cities     []models.City
	Tab        Tab
	Historical HistoricalState
	Search     SearchState
	Prediction PredictionState
	Features   models.PredictionFeatures
	PlotTried  bool
	PlotReady  bool
}
