package suggest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/okessler/sugg/internal/log"
)

// DefaultEndpoint is the public Datamuse suggestion endpoint.
const DefaultEndpoint = "https://api.datamuse.com/sug"

// DefaultTimeout bounds a single suggestion request.
const DefaultTimeout = 5 * time.Second

// Datamuse fetches suggestions from the Datamuse /sug endpoint.
// The response is decoded verbatim; no shape validation beyond JSON.
type Datamuse struct {
	endpoint string
	client   *http.Client
}

// NewDatamuse creates a Datamuse source. An empty endpoint or zero
// timeout selects the defaults.
func NewDatamuse(endpoint string, timeout time.Duration) *Datamuse {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Datamuse{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

func (d *Datamuse) Name() string { return "datamuse" }

// Suggest issues a single GET request for term. The term is always
// URL-encoded. Non-2xx responses and decode failures are returned as
// errors, not swallowed.
func (d *Datamuse) Suggest(ctx context.Context, term string, limit int) ([]Word, error) {
	u, err := url.Parse(d.endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse endpoint: %w", err)
	}
	q := url.Values{}
	q.Set("s", term)
	if limit > 0 {
		q.Set("max", strconv.Itoa(limit))
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	l := log.FromContext(ctx)
	done := l.Request(http.MethodGet, u.String())
	start := time.Now()
	resp, err := d.client.Do(req)
	done(time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("fetch suggestions: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("suggestion endpoint returned %s", resp.Status)
	}

	var words []Word
	if err := json.NewDecoder(resp.Body).Decode(&words); err != nil {
		return nil, fmt.Errorf("decode suggestions: %w", err)
	}
	return words, nil
}
