package yahoo

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"slices"
	"time"

	"github.com/tidwall/gjson"

	"github.com/mtlprog/stockstat/internal/domain"
)

// Fetch returns the daily closes of symbol over period, oldest first.
// Closes are split and dividend adjusted when Yahoo provides adjusted values.
// Unknown symbols and empty ranges return an error wrapping domain.ErrNoData.
func (c *Client) Fetch(ctx context.Context, symbol string, period domain.Period) (domain.PriceSeries, error) {
	series := domain.PriceSeries{Symbol: symbol}

	q := url.Values{}
	q.Set("interval", "1d")
	q.Set("range", string(period))
	q.Set("events", "div,split")
	path := "/v8/finance/chart/" + url.PathEscape(symbol) + "?" + q.Encode()

	body, err := c.get(ctx, path)
	if err != nil {
		if errors.Is(err, errNotFound) {
			return series, fmt.Errorf("yahoo chart %s: %w", symbol, domain.ErrNoData)
		}
		return series, fmt.Errorf("yahoo chart %s: %w", symbol, err)
	}

	obs, err := parseChart(body)
	if err != nil {
		return series, fmt.Errorf("yahoo chart %s: %w", symbol, err)
	}
	series.Observations = obs
	return series, nil
}

// parseChart extracts one observation per trading day from a chart response.
// Bars with a null close are skipped. Dates are midnight in the exchange's time zone.
func parseChart(body []byte) ([]domain.Observation, error) {
	if !gjson.ValidBytes(body) {
		return nil, errors.New("invalid JSON in chart response")
	}

	chart := gjson.GetBytes(body, "chart")
	if e := chart.Get("error"); e.IsObject() {
		if e.Get("code").String() == "Not Found" {
			return nil, domain.ErrNoData
		}
		return nil, fmt.Errorf("api error: %s", e.Get("description").String())
	}

	result := chart.Get("result.0")
	if !result.Exists() {
		return nil, domain.ErrNoData
	}

	loc := time.UTC
	if tz := result.Get("meta.exchangeTimezoneName").String(); tz != "" {
		if l, err := time.LoadLocation(tz); err == nil {
			loc = l
		}
	}

	timestamps := result.Get("timestamp").Array()
	closes := result.Get("indicators.adjclose.0.adjclose").Array()
	if len(closes) != len(timestamps) {
		closes = result.Get("indicators.quote.0.close").Array()
	}

	obs := make([]domain.Observation, 0, len(timestamps))
	for i, ts := range timestamps {
		if i >= len(closes) || closes[i].Type != gjson.Number {
			continue
		}
		t := time.Unix(ts.Int(), 0).In(loc)
		obs = append(obs, domain.Observation{
			Date:  time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc),
			Close: closes[i].Float(),
		})
	}

	slices.SortStableFunc(obs, func(a, b domain.Observation) int { return a.Date.Compare(b.Date) })

	// The live bar can repeat the last session's date; keep the later value.
	deduped := obs[:0]
	for _, o := range obs {
		if n := len(deduped); n > 0 && deduped[n-1].Date.Equal(o.Date) {
			deduped[n-1] = o
			continue
		}
		deduped = append(deduped, o)
	}
	return deduped, nil
}
