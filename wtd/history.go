package wtd

import (
	"context"
	"fmt"
	"net/url"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/tracker"
	"github.com/etnz/tracker/date"
)

// This file contains functions to access the history endpoints.

// History returns the daily close prices of symbol within r.
func (c *Client) History(ctx context.Context, symbol string, r date.Range) (tracker.Series, error) {
	// https://api.worldtradingdata.com/api/v1/history?symbol=AAPL&sort=oldest&date_from=2018-06-29&date_to=2020-01-03&api_token=demo
	// {
	//   "name": "AAPL",
	//   "history": {
	//     "2018-06-29": {
	//       "open": "186.29",
	//       "close": "185.11",
	//       "high": "187.19",
	//       "low": "182.91",
	//       "volume": "22737666"
	//     },
	params := url.Values{}
	params.Set("symbol", symbol)
	params.Set("sort", "oldest")
	params.Set("date_from", r.From.String())
	params.Set("date_to", r.To.String())

	var content any
	if err := c.jwget(ctx, "history", params, &content); err != nil {
		return tracker.Series{}, err
	}
	history, err := historyOf(content, symbol)
	if err != nil {
		return tracker.Series{}, err
	}

	var prices tracker.Series
	for day, record := range history {
		on, err := date.Parse(day)
		if err != nil {
			return tracker.Series{}, fmt.Errorf("%w: %s history: %v", ErrShape, symbol, err)
		}
		jval, err := jsonpath.Get("$.close", record)
		if err != nil {
			return tracker.Series{}, fmt.Errorf("%w: %s has no close on %s: %v", ErrShape, symbol, day, err)
		}
		price, err := tracker.ParseValue(jval)
		if err != nil {
			return tracker.Series{}, fmt.Errorf("%w: %s close on %s: %v", ErrShape, symbol, day, err)
		}
		prices.Append(on, price)
	}
	c.logger.Info().Str("symbol", symbol).Int("days", prices.Len()).Msg("fetched price history")
	return prices, nil
}

// ForexHistory returns the daily rates to convert base into convertTo within r.
func (c *Client) ForexHistory(ctx context.Context, base, convertTo string, r date.Range) (tracker.Series, error) {
	// https://api.worldtradingdata.com/api/v1/forex_history?base=USD&convert_to=GBP&sort=oldest&api_token=demo
	// {
	//   "symbol": "USDGBP",
	//   "history": {
	//     "2018-01-01": "0.7401",
	//     "2018-01-02": "0.7372",
	params := url.Values{}
	params.Set("base", base)
	params.Set("convert_to", convertTo)
	params.Set("sort", "oldest")
	params.Set("date_from", r.From.String())
	params.Set("date_to", r.To.String())

	pair := base + convertTo
	var content any
	if err := c.jwget(ctx, "forex_history", params, &content); err != nil {
		return tracker.Series{}, err
	}
	history, err := historyOf(content, pair)
	if err != nil {
		return tracker.Series{}, err
	}

	var rates tracker.Series
	for day, jval := range history {
		on, err := date.Parse(day)
		if err != nil {
			return tracker.Series{}, fmt.Errorf("%w: %s history: %v", ErrShape, pair, err)
		}
		rate, err := tracker.ParseValue(jval)
		if err != nil {
			return tracker.Series{}, fmt.Errorf("%w: %s rate on %s: %v", ErrShape, pair, day, err)
		}
		rates.Append(on, rate)
	}
	c.logger.Info().Str("pair", pair).Int("days", rates.Len()).Msg("fetched forex history")
	return rates, nil
}

// historyOf extracts the date keyed 'history' object from a decoded response.
func historyOf(content any, name string) (map[string]any, error) {
	jval, err := jsonpath.Get("$.history", content)
	if err != nil {
		// the API reports errors as a 200 with a 'Message' instead of a 'history'
		if msg, merr := jsonpath.Get("$.Message", content); merr == nil {
			return nil, fmt.Errorf("%w: no history for %s: %v", ErrShape, name, msg)
		}
		return nil, fmt.Errorf("%w: no history for %s: %v", ErrShape, name, err)
	}
	history, ok := jval.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: history for %s is %T, want an object", ErrShape, name, jval)
	}
	return history, nil
}
