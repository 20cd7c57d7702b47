package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/mtlprog/stockstat/internal/analysis"
	"github.com/mtlprog/stockstat/internal/domain"
	"github.com/mtlprog/stockstat/internal/export"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Handler provides HTTP endpoints for the stock analysis dashboard.
type Handler struct {
	engine         *analysis.Engine
	renderWorkbook func(io.Writer, analysis.View) error
}

// NewHandler creates a new API handler.
func NewHandler(engine *analysis.Engine) *Handler {
	return &Handler{engine: engine, renderWorkbook: export.WriteWorkbook}
}

type periodOption struct {
	Token domain.Period `json:"token"`
	Label string        `json:"label"`
}

type periodsResponse struct {
	Default domain.Period  `json:"default"`
	Submit  string         `json:"submit"`
	Periods []periodOption `json:"periods"`
}

// ListPeriods handles GET /api/v1/periods.
func (h *Handler) ListPeriods(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, periodsResponse{
		Default: domain.DefaultPeriod,
		Submit:  domain.SubmitControlID,
		Periods: lo.Map(domain.Periods(), func(p domain.Period, _ int) periodOption {
			return periodOption{Token: p, Label: p.Label()}
		}),
	})
}

// GetAnalysis handles GET /api/v1/analysis.
// Degraded results are still 200 responses; the view's error field carries the message.
func (h *Handler) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	view := h.analyze(r)
	writeJSON(w, http.StatusOK, view)
}

// ExportWorkbook handles GET /api/v1/analysis/export.xlsx.
func (h *Handler) ExportWorkbook(w http.ResponseWriter, r *http.Request) {
	view := h.analyze(r)

	var buf bytes.Buffer
	if err := h.renderWorkbook(&buf, view); err != nil {
		slog.Error("failed to render workbook", "symbol", view.Symbol, "period", view.Period, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to render workbook")
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
		"filename": workbookFilename(view),
	}))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Warn("failed to write workbook response", "symbol", view.Symbol, "error", err)
	}
}

// workbookFilename is "<symbol>-<period>.xlsx" with the symbol reduced to ticker characters.
func workbookFilename(v analysis.View) string {
	symbol := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.', r == '-', r == '^', r == '=':
			return r
		default:
			return -1
		}
	}, strings.ToLower(v.Symbol))
	if symbol == "" {
		symbol = "analysis"
	}
	return fmt.Sprintf("%s-%s.xlsx", symbol, v.Period)
}

// Health handles GET /healthz.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) analyze(r *http.Request) analysis.View {
	q := r.URL.Query()
	req := analysis.Request{
		Symbol:    q.Get("symbol"),
		Trigger:   domain.ParseTrigger(q.Get("trigger")),
		Requested: domain.Period(q.Get("period")),
	}
	return analysis.NewView(h.engine.Analyze(r.Context(), req))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Error("failed to marshal JSON response", "error", err)
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		slog.Warn("failed to write HTTP response body", "error", err)
		return
	}
	_, _ = w.Write([]byte("\n"))
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
