package main

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/xuri/excelize/v2"

	"github.com/mtlprog/stockstat/internal/analysis"
	"github.com/mtlprog/stockstat/internal/config"
	"github.com/mtlprog/stockstat/internal/domain"
)

const chartFixture = `{
  "chart": {
    "result": [{
      "meta": {"symbol": "AAPL", "exchangeTimezoneName": "UTC"},
      "timestamp": [1672756200, 1672842600, 1672929000, 1673015400],
      "indicators": {"quote": [{"close": [100, 110, 90, 120]}]}
    }],
    "error": null
  }
}`

func newYahooStub(t *testing.T) (*httptest.Server, *[]string) {
	t.Helper()
	var paths []string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path+"?range="+r.URL.Query().Get("range"))
		if !strings.HasSuffix(r.URL.Path, "/AAPL") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(chartFixture))
	}))
	t.Cleanup(ts.Close)
	return ts, &paths
}

func testConfig(yahooURL string) config.Config {
	return config.Config{
		DefaultSymbol: "VTI",
		PriceSource:   config.SourceYahoo,
		YahooURL:      yahooURL,
		YahooTimeout:  5 * time.Second,
	}
}

func runApp(t *testing.T, cfg config.Config, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := newApp(cfg, &out).RunContext(context.Background(), append([]string{"stockstat"}, args...))
	return out.String(), err
}

func TestAnalyzeJSON(t *testing.T) {
	ts, paths := newYahooStub(t)

	out, err := runApp(t, testConfig(ts.URL), "analyze", "--symbol", "aapl", "--trigger", "5y", "--json")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}

	var v analysis.View
	if err := json.Unmarshal([]byte(out), &v); err != nil {
		t.Fatalf("decoding output: %v\n%s", err, out)
	}
	if v.Title != "AAPL (5Y) Stock Analysis" {
		t.Errorf("Title = %q", v.Title)
	}
	if v.LatestPrice != "$120.00" || v.AveragePrice != "$105.00" || v.GainLoss != "%-16.67" {
		t.Errorf("headline = %s %s %s", v.LatestPrice, v.AveragePrice, v.GainLoss)
	}
	if len(*paths) != 1 || (*paths)[0] != "/v8/finance/chart/AAPL?range=5y" {
		t.Errorf("yahoo requests = %v", *paths)
	}
}

func TestAnalyzeUnknownSymbol(t *testing.T) {
	ts, _ := newYahooStub(t)

	out, err := runApp(t, testConfig(ts.URL), "analyze", "--symbol", "zzzz", "--json")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}

	var v analysis.View
	if err := json.Unmarshal([]byte(out), &v); err != nil {
		t.Fatalf("decoding output: %v", err)
	}
	if v.Error != domain.NoDataMessage {
		t.Errorf("Error = %q", v.Error)
	}
	if v.Period != domain.Period1Y {
		t.Errorf("Period = %q, want 1y", v.Period)
	}
}

func TestAnalyzeText(t *testing.T) {
	color.NoColor = true
	ts, _ := newYahooStub(t)

	out, err := runApp(t, testConfig(ts.URL), "analyze", "-s", "AAPL", "-t", "ytd")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}

	for _, want := range []string{"AAPL (YTD) Stock Analysis", "$120.00", "%-16.67", "Standard deviation", "-16.67%"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestExportWorkbookFile(t *testing.T) {
	ts, _ := newYahooStub(t)
	path := filepath.Join(t.TempDir(), "aapl.xlsx")

	if _, err := runApp(t, testConfig(ts.URL), "export", "--symbol", "AAPL", "--trigger", "1y", "--out", path); err != nil {
		t.Fatalf("export: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("opening workbook: %v", err)
	}
	defer f.Close()

	title, _ := f.GetCellValue("Summary", "A1")
	if title != "AAPL (1Y) Stock Analysis" {
		t.Errorf("Summary!A1 = %q", title)
	}
}

func TestCommandErrors(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:0")

	tests := []struct {
		name string
		args []string
	}{
		{"export without destination", []string{"export", "--symbol", "AAPL"}},
		{"export to sheets without credentials", []string{"export", "--spreadsheet-id", "abc"}},
		{"migrate without database", []string{"migrate"}},
		{"import bad period", []string{"import", "--symbol", "AAPL", "--period", "7w"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := runApp(t, cfg, tt.args...); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, config.Config{LogLevel: slog.LevelWarn, LogFormat: "json"})

	logger.Info("hidden")
	logger.Warn("shown", "symbol", "VTI")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected a single JSON line, got %q: %v", buf.String(), err)
	}
	if entry["msg"] != "shown" || entry["symbol"] != "VTI" {
		t.Errorf("entry = %v", entry)
	}

	buf.Reset()
	newLogger(&buf, config.Config{LogLevel: slog.LevelInfo}).Info("plain")
	if !strings.Contains(buf.String(), "msg=plain") {
		t.Errorf("text output = %q", buf.String())
	}
}
