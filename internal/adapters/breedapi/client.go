package breedapi

import (
	"context"
	"net/url"
	"strings"
	"time"

	"dog-breeds-api/internal/domain/breeds"
	"dog-breeds-api/internal/platform/httpclient"
	"dog-breeds-api/internal/platform/logger"
	"dog-breeds-api/internal/platform/metrics"

	"github.com/pkg/errors"
)

const (
	DefaultBaseURL = "https://api.thedogapi.com/v1"
	breedsPath     = "/breeds"
	sourceLabel    = "thedogapi"
)

var (
	ErrNotConfigured = errors.New("breed api client not configured")
)

// Config del cliente de TheDogAPI.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Client implementa breeds.ExternalSource y temperaments.Source sobre TheDogAPI.
type Client struct {
	http    *httpclient.Client
	apiKey  string
	log     logger.Logger
	metrics *metrics.Metrics
}

func NewClient(cfg Config, log logger.Logger, m *metrics.Metrics) (*Client, error) {
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		base = DefaultBaseURL
	}

	hc, err := httpclient.NewWithBaseURL(base, cfg.Timeout)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if log == nil {
		log = logger.NewNop()
	}

	return &Client{
		http:    hc,
		apiKey:  strings.TrimSpace(cfg.APIKey),
		log:     log.With(map[string]any{"component": "breedapi"}),
		metrics: m,
	}, nil
}

// rawBreed es el formato de /breeds. Solo mapeamos lo que usamos.
type rawBreed struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Height      rawSystem `json:"height"`
	Weight      rawSystem `json:"weight"`
	LifeSpan    string    `json:"life_span"`
	Temperament string    `json:"temperament"`
	Image       *struct {
		URL string `json:"url"`
	} `json:"image"`
}

type rawSystem struct {
	Imperial string `json:"imperial"`
	Metric   string `json:"metric"`
}

// ListBreeds trae y normaliza el catálogo completo.
func (c *Client) ListBreeds(ctx context.Context) ([]breeds.Breed, error) {
	raw, err := c.fetch(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]breeds.Breed, 0, len(raw))
	for _, e := range raw {
		out = append(out, normalize(e))
	}
	return out, nil
}

// ListTemperamentNames devuelve el campo temperament crudo de cada raza.
func (c *Client) ListTemperamentNames(ctx context.Context) ([]string, error) {
	raw, err := c.fetch(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(raw))
	for _, e := range raw {
		if e.Temperament == "" {
			continue
		}
		out = append(out, e.Temperament)
	}
	return out, nil
}

func (c *Client) fetch(ctx context.Context) ([]rawBreed, error) {
	if c == nil || c.http == nil {
		return nil, ErrNotConfigured
	}

	q := url.Values{}
	if c.apiKey != "" {
		q.Set("api_key", c.apiKey)
	}

	start := time.Now()
	var raw []rawBreed
	err := c.http.GetJSON(ctx, breedsPath, q, &raw)
	c.observe(start, err)

	if err != nil {
		var (
			httpErr *httpclient.HTTPError
			netErr  *httpclient.NetworkError
		)
		switch {
		case errors.As(err, &httpErr):
			c.log.Error("breed api error response", map[string]any{
				"status": httpErr.StatusCode,
				"body":   httpErr.Body,
			})
		case errors.As(err, &netErr):
			c.log.Error("breed api no response", map[string]any{"error": netErr.Err})
		default:
			c.log.Error("breed api request error", map[string]any{"error": err})
		}
		return nil, err
	}

	return raw, nil
}

func (c *Client) observe(start time.Time, err error) {
	if c.metrics == nil {
		return
	}

	outcome := metrics.OutcomeOK
	if err != nil {
		var (
			httpErr *httpclient.HTTPError
			netErr  *httpclient.NetworkError
		)
		switch {
		case errors.As(err, &httpErr):
			outcome = metrics.OutcomeUpstream
		case errors.As(err, &netErr):
			outcome = metrics.OutcomeNetwork
		default:
			outcome = metrics.OutcomeError
		}
	}

	c.metrics.UpstreamRequests.WithLabelValues(sourceLabel, outcome).Inc()
	c.metrics.UpstreamDuration.WithLabelValues(sourceLabel).Observe(time.Since(start).Seconds())
}

func normalize(e rawBreed) breeds.Breed {
	b := breeds.Breed{
		ID:          breeds.ExternalID(e.ID),
		Name:        e.Name,
		Height:      breeds.ParseRange(e.Height.Metric),
		Weight:      breeds.ParseRange(e.Weight.Metric),
		YearsLife:   e.LifeSpan,
		Image:       breeds.PlaceholderImage,
		Temperament: e.Temperament,
	}

	if b.YearsLife == "" {
		b.YearsLife = breeds.NotFoundText
	}
	if e.Image != nil && e.Image.URL != "" {
		b.Image = e.Image.URL
	}
	if b.Temperament == "" {
		b.Temperament = breeds.NotFoundText
	}
	return b
}
