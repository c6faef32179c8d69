package mockapi

import (
	"net/http"

	"foodhub/internal/logging"
	"foodhub/internal/metrics"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func NewRouter(handler *Handler) http.Handler {
	r := mux.NewRouter()
	handler.RegisterRoutes(r)
	return cors.New(cors.Options{
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete},
		AllowedHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}).Handler(metrics.InstrumentHandler(r))
}

func StartServer(addr string, handler http.Handler) error {
	logging.New("mockapi").Infof("FoodHub mock API starting on %s", addr)
	return http.ListenAndServe(addr, handler)
}
