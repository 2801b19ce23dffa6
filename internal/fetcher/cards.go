package fetcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"bingo-watch/internal/bingo"
)

// CardFeedOptions parameterise the static card feed client.
type CardFeedOptions struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
}

// StaticCardFeed loads card snapshots from a static JSON layout:
// {base}/index.json for the card list and {base}/{id}.json per card.
type StaticCardFeed struct {
	opts    CardFeedOptions
	logger  zerolog.Logger
	client  *http.Client
	baseURL string
}

// NewStaticCardFeed constructs the card feed client.
func NewStaticCardFeed(opts CardFeedOptions, logger zerolog.Logger) *StaticCardFeed {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &StaticCardFeed{
		opts:    opts,
		logger:  logger.With().Str("component", "card_feed").Logger(),
		client:  &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
	}
}

type indexResponse struct {
	Cards []bingo.Card `json:"cards"`
}

// FetchIndex loads the full card list.
func (f *StaticCardFeed) FetchIndex(ctx context.Context) ([]bingo.Card, error) {
	payload, err := f.get(ctx, f.baseURL+"/index.json")
	if err != nil {
		return nil, fmt.Errorf("fetch card index: %w", err)
	}

	var res indexResponse
	if err := json.Unmarshal(payload, &res); err != nil {
		return nil, fmt.Errorf("decode card index: %w", err)
	}
	return res.Cards, nil
}

// FetchCard loads a single card snapshot by id.
func (f *StaticCardFeed) FetchCard(ctx context.Context, cardID string) (bingo.Card, error) {
	if cardID == "" {
		return bingo.Card{}, errors.New("card id required")
	}

	payload, err := f.get(ctx, f.baseURL+"/"+url.PathEscape(cardID)+".json")
	if err != nil {
		return bingo.Card{}, fmt.Errorf("fetch card %s: %w", cardID, err)
	}

	var card bingo.Card
	if err := json.Unmarshal(payload, &card); err != nil {
		return bingo.Card{}, fmt.Errorf("decode card %s: %w", cardID, err)
	}
	return card, nil
}

func (f *StaticCardFeed) get(ctx context.Context, endpoint string) ([]byte, error) {
	if f.baseURL == "" {
		return nil, errors.New("card feed base url not configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if ua := strings.TrimSpace(f.opts.UserAgent); ua != "" {
		req.Header.Set("User-Agent", ua)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("card feed error (%d)", resp.StatusCode)
	}
	return payload, nil
}

var _ CardFeed = (*StaticCardFeed)(nil)
