// Package sources contains the HTTP adapters for the public agro-climate
// upstreams. Every adapter shares the same breaker-guarded fetch helper and
// the nil-aware numeric helpers used to summarize sparse series.
package sources

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/sony/gobreaker"
)

var (
	errRateLimited = errors.New("rate limited")
	errServerError = errors.New("server error")
	errUnexpected  = errors.New("unexpected status code")
	errCircuitOpen = errors.New("circuit breaker open")
)

// newBreaker builds the per-source circuit breaker. One breaker per upstream
// keeps a flapping source from blocking the others.
func newBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})
}

// fetchJSON executes a single GET through the circuit breaker and decodes the
// response into out. There are no retries; a failed source is reported to the
// caller, which decides what that means for the overall result.
func fetchJSON(ctx context.Context, client *http.Client, cb *gobreaker.CircuitBreaker, rawURL string, out any) error {
	_, err := cb.Execute(func() (interface{}, error) {
		req, reqErr := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if reqErr != nil {
			return nil, reqErr
		}

		resp, doErr := client.Do(req)
		if doErr != nil {
			return nil, doErr
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusTooManyRequests {
			return nil, errRateLimited
		}
		if resp.StatusCode >= 500 {
			return nil, fmt.Errorf("%w: %d", errServerError, resp.StatusCode)
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, fmt.Errorf("%w: %d", errUnexpected, resp.StatusCode)
		}

		if decErr := json.NewDecoder(resp.Body).Decode(out); decErr != nil {
			return nil, fmt.Errorf("decode response: %w", decErr)
		}
		return nil, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return fmt.Errorf("%w: %v", errCircuitOpen, err)
		}
		return err
	}
	return nil
}

func formatCoord(v float64) string {
	return fmt.Sprintf("%f", v)
}

// valueAt returns the i-th element of a nullable series, or nil when the
// series is shorter than the date axis.
func valueAt(vals []*float64, i int) *float64 {
	if i >= len(vals) {
		return nil
	}
	return vals[i]
}

// meanOf averages the non-nil values. Nil when the series has none.
func meanOf(vals []*float64) *float64 {
	var sum float64
	var n int
	for _, v := range vals {
		if v == nil {
			continue
		}
		sum += *v
		n++
	}
	if n == 0 {
		return nil
	}
	m := sum / float64(n)
	return &m
}

// sumOf totals the non-nil values. Nil when the series has none, so a failed
// series and a zero total stay distinguishable.
func sumOf(vals []*float64) *float64 {
	var total float64
	var n int
	for _, v := range vals {
		if v == nil {
			continue
		}
		total += *v
		n++
	}
	if n == 0 {
		return nil
	}
	return &total
}

// latestOf scans from the end of a series and returns the newest non-nil value.
func latestOf(vals []*float64) *float64 {
	for i := len(vals) - 1; i >= 0; i-- {
		if vals[i] != nil {
			return vals[i]
		}
	}
	return nil
}

// sortedValues flattens a date-keyed series in ascending date order. NASA
// POWER keys are yyyymmdd, so lexical order is chronological.
func sortedValues(m map[string]*float64) []*float64 {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]*float64, 0, len(keys))
	for _, k := range keys {
		out = append(out, m[k])
	}
	return out
}
