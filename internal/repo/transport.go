package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"

	"github.com/pulsedash/pulse-aggregator/internal/models"
)

// getJSON issues an HTTP GET and decodes the JSON body. Only a 200 status
// with a parseable body counts as success; everything else is an error for
// the fallback chain to treat as a rejection.
func getJSON(ctx context.Context, client *http.Client, endpoint, bearer string, query url.Values, out any) error {
	if endpoint == "" {
		return fmt.Errorf("empty endpoint")
	}

	if len(query) > 0 {
		endpoint = endpoint + "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("upstream returned %s", resp.Status)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// windowQuery builds the standard metrics query string from a request.
func windowQuery(req models.MetricsRequest) url.Values {
	q := url.Values{}
	if req.TimeWindow != "" {
		q.Set("timeWindow", req.TimeWindow)
	}
	if req.Limit > 0 {
		q.Set("limit", strconv.Itoa(req.Limit))
	}
	return q
}

// resolvePath joins a base URL and an endpoint path.
func resolvePath(baseURL, p string) string {
	if baseURL == "" {
		return ""
	}
	cleaned := "/" + strings.TrimLeft(p, "/")
	u, err := url.Parse(baseURL)
	if err != nil {
		return baseURL + cleaned
	}
	u.Path = path.Join(u.Path, cleaned)
	return u.String()
}
