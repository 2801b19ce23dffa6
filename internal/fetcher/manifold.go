package fetcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"bingo-watch/internal/stats"
)

const (
	marketSlugPath = "/v0/slug/"
	betsPath       = "/v0/bets"
)

// ManifoldOptions parameterise the market API client.
type ManifoldOptions struct {
	BaseURL      string
	Timeout      time.Duration
	UserAgent    string
	BetPageLimit int
}

// Manifold fetches live probabilities and bet histories from a Manifold-style
// REST API.
type Manifold struct {
	opts    ManifoldOptions
	logger  zerolog.Logger
	client  *http.Client
	baseURL string
}

// NewManifold constructs a market API client.
func NewManifold(opts ManifoldOptions, logger zerolog.Logger) *Manifold {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.manifold.markets"
	}

	if opts.BetPageLimit <= 0 {
		opts.BetPageLimit = 1000
	}

	return &Manifold{
		opts:    opts,
		logger:  logger.With().Str("component", "market_fetcher").Logger(),
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

type marketResponse struct {
	ID          string   `json:"id"`
	Probability *float64 `json:"probability"`
	Prob        *float64 `json:"prob"`
	IsResolved  bool     `json:"isResolved"`
	Resolution  string   `json:"resolution"`
}

// FetchMarket retrieves the current state of one market by slug.
func (m *Manifold) FetchMarket(ctx context.Context, slug string) (LiveMarket, error) {
	if slug == "" {
		return LiveMarket{}, errors.New("market slug required")
	}

	payload, err := m.get(ctx, m.baseURL+marketSlugPath+url.PathEscape(slug))
	if err != nil {
		return LiveMarket{}, err
	}

	var res marketResponse
	if err := json.Unmarshal(payload, &res); err != nil {
		return LiveMarket{}, fmt.Errorf("decode market %s: %w", slug, err)
	}

	// The API reports the probability under either key depending on the
	// endpoint version.
	var prob float64
	switch {
	case res.Probability != nil:
		prob = *res.Probability
	case res.Prob != nil:
		prob = *res.Prob
	default:
		return LiveMarket{}, fmt.Errorf("market %s carries no probability", slug)
	}

	return LiveMarket{
		Probability: prob,
		ID:          res.ID,
		IsResolved:  res.IsResolved,
		Resolution:  res.Resolution,
	}, nil
}

type betRecord struct {
	CreatedTime int64    `json:"createdTime"`
	ProbAfter   *float64 `json:"probAfter"`
}

// FetchBets retrieves one bounded page of bet history for a market and
// reduces it to the probability timeline, ascending by time. Records without
// probAfter are skipped.
func (m *Manifold) FetchBets(ctx context.Context, contractID string) ([]stats.BetPoint, error) {
	if contractID == "" {
		return nil, errors.New("contract id required")
	}

	endpoint := m.baseURL + betsPath +
		"?contractId=" + url.QueryEscape(contractID) +
		"&limit=" + strconv.Itoa(m.opts.BetPageLimit)

	payload, err := m.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var records []betRecord
	if err := json.Unmarshal(payload, &records); err != nil {
		return nil, fmt.Errorf("decode bets for %s: %w", contractID, err)
	}

	timeline := make([]stats.BetPoint, 0, len(records))
	for _, rec := range records {
		if rec.ProbAfter == nil {
			continue
		}
		timeline = append(timeline, stats.BetPoint{
			Time: time.UnixMilli(rec.CreatedTime),
			Prob: *rec.ProbAfter,
		})
	}

	sort.SliceStable(timeline, func(i, j int) bool {
		return timeline[i].Time.Before(timeline[j].Time)
	})
	return timeline, nil
}

func (m *Manifold) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if ua := strings.TrimSpace(m.opts.UserAgent); ua != "" {
		req.Header.Set("User-Agent", ua)
	} else {
		req.Header.Set("User-Agent", "bingowatch/1.0")
	}

	resp, err := m.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, parseHTTPError(resp.StatusCode, payload)
	}
	return payload, nil
}

type errorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func parseHTTPError(status int, payload []byte) error {
	var apiErr errorResponse
	if err := json.Unmarshal(payload, &apiErr); err == nil {
		if apiErr.Message != "" {
			return fmt.Errorf("market api error (%d): %s", status, apiErr.Message)
		}
		if apiErr.Error != "" {
			return fmt.Errorf("market api error (%d): %s", status, apiErr.Error)
		}
	}
	if len(payload) > 0 {
		return fmt.Errorf("market api error (%d): %s", status, strings.TrimSpace(string(payload)))
	}
	return fmt.Errorf("market api error (%d)", status)
}

var _ MarketFetcher = (*Manifold)(nil)
