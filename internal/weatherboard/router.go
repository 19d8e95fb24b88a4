package weatherboard

import (
	"net/http"

	"github.com/gorilla/mux"
)

// featureImportance is the static ranking the dashboard's analytics tab
// renders; it is not computed from data.
var featureImportance = []featureWeight{
	{Feature: "humidity", Importance: 0.30},
	{Feature: "pressure", Importance: 0.22},
	{Feature: "temp_day", Importance: 0.20},
	{Feature: "wind_speed", Importance: 0.15},
	{Feature: "clouds", Importance: 0.13},
}

type featureWeight struct {
	Feature    string  `json:"feature"`
	Importance float64 `json:"importance"`
}

// Handler builds the full http handler: routes wrapped in request-id,
// logging and CORS middleware.
func (s *Service) Handler() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/weather/summary", s.SummaryHandler).Methods(http.MethodGet)

	// Vestigial analytics surface: the KPI endpoints are disabled in favor of
	// the summary endpoint, only the static feature ranking remains.
	r.HandleFunc("/analytics/metrics", s.analyticsDisabledHandler).Methods(http.MethodGet)
	r.HandleFunc("/analytics/timeseries", s.analyticsDisabledHandler).Methods(http.MethodGet)
	r.HandleFunc("/analytics/forecast", s.analyticsDisabledHandler).Methods(http.MethodGet)
	r.HandleFunc("/analytics/feature-importance", s.featureImportanceHandler).Methods(http.MethodGet)

	r.HandleFunc("/health", s.healthHandler).Methods(http.MethodGet)

	return s.withRequestID(s.withLogging(s.withCORS(r)))
}

func (s *Service) analyticsDisabledHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusBadRequest,
		errorResponse{Error: "Use /weather/summary instead for weather KPIs."})
}

func (s *Service) featureImportanceHandler(w http.ResponseWriter, _ *http.Request) {
	s.writeResponse(w, featureImportance)
}

func (s *Service) healthHandler(w http.ResponseWriter, _ *http.Request) {
	s.writeResponse(w, map[string]string{"status": "ok"})
}
