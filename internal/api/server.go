package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jeevananthan-98/Hydrointel/internal/config"
	"github.com/jeevananthan-98/Hydrointel/internal/dashboard"
	"github.com/jeevananthan-98/Hydrointel/internal/i18n"
	"github.com/jeevananthan-98/Hydrointel/internal/metrics"
)

// Server renders the dashboard and forwards panel actions to the
// coordinator. It holds no request state of its own.
type Server struct {
	coord *dashboard.Coordinator
	cfg   *config.Config
	tr    *i18n.Translator
	tmpl  *templateSet
}

func NewServer(coord *dashboard.Coordinator, cfg *config.Config, tr *i18n.Translator) *Server {
	return &Server{
		coord: coord,
		cfg:   cfg,
		tr:    tr,
		tmpl:  newTemplates(tr),
	}
}

func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()

	// Pages and panel actions
	r.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	r.HandleFunc("/city", s.handleSelectCity).Methods(http.MethodPost)
	r.HandleFunc("/search", s.handleSearch).Methods(http.MethodGet)
	r.HandleFunc("/search/clear", s.handleSearchClear).Methods(http.MethodPost)
	r.HandleFunc("/predict/city", s.handlePredictCity).Methods(http.MethodPost)
	r.HandleFunc("/predict/features", s.handlePredictFeatures).Methods(http.MethodPost)
	r.HandleFunc("/tab/{tab}", s.handleTab).Methods(http.MethodGet)
	r.HandleFunc("/plot", s.handlePlot).Methods(http.MethodGet)

	// Fragment refresh
	r.HandleFunc("/partials/search", s.handleSearchPartial).Methods(http.MethodGet)
	r.HandleFunc("/partials/historical", s.handleHistoricalPartial).Methods(http.MethodGet)
	r.HandleFunc("/partials/prediction", s.handlePredictionPartial).Methods(http.MethodGet)

	// JSON mirror of the panel operations
	r.HandleFunc("/api/historical", s.handleAPIHistorical).Methods(http.MethodGet)
	r.HandleFunc("/api/search", s.handleAPISearch).Methods(http.MethodGet)
	r.HandleFunc("/api/predict", s.handleAPIPredict).Methods(http.MethodPost)

	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	r.Use(countRequests)
	return r
}

func (s *Server) Run(ctx context.Context, addr string) error {
	server := &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		path := r.URL.Path
		if route := mux.CurrentRoute(r); route != nil {
			if tpl, err := route.GetPathTemplate(); err == nil {
				path = tpl
			}
		}
		metrics.HTTPRequests.WithLabelValues(path, r.Method, strconv.Itoa(rec.status)).Inc()
	})
}
