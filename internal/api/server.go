package api

import (
	"net/http"
	"time"

	"github.com/mtlprog/stockstat/internal/analysis"
)

// NewServer creates an HTTP server with all routes configured.
func NewServer(port string, engine *analysis.Engine) *http.Server {
	return &http.Server{
		Addr:         ":" + port,
		Handler:      NewMux(engine),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// NewMux registers the dashboard routes. Unknown paths get a JSON 404.
func NewMux(engine *analysis.Engine) *http.ServeMux {
	handler := NewHandler(engine)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", handler.Health)
	mux.HandleFunc("GET /api/v1/periods", handler.ListPeriods)
	mux.HandleFunc("GET /api/v1/analysis", handler.GetAnalysis)
	mux.HandleFunc("GET /api/v1/analysis/export.xlsx", handler.ExportWorkbook)
	mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	return mux
}
