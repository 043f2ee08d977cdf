package routes

import (
	"net/http"

	"github.com/Radpid/radGPT/pkg/observability/metrics"
	"github.com/gorilla/mux"
)

func RegisterMetrics(r *mux.Router) {
	r.HandleFunc("/metrics", func(w http.ResponseWriter, _ *http.Request) {
		metrics.WritePrometheus(w)
	}).Methods(http.MethodGet)
}
