package breedapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dog-breeds-api/internal/domain/breeds"
	"dog-breeds-api/internal/platform/httpclient"
	"dog-breeds-api/internal/platform/logger"
	"dog-breeds-api/internal/platform/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleBreeds = `[
  {
    "id": 1,
    "name": "Affenpinscher",
    "height": {"imperial": "9 - 11.5", "metric": "20 - 25"},
    "weight": {"imperial": "6 - 13", "metric": "3 - 6"},
    "life_span": "10 - 12 years",
    "temperament": "Stubborn, Curious, Playful",
    "image": {"url": "https://cdn2.thedogapi.com/images/BJa4kxc4X.jpg"}
  },
  {
    "id": 2,
    "name": "Mystery Dog",
    "height": {"imperial": "N/A", "metric": "N/A"},
    "weight": {"imperial": "", "metric": "25"}
  }
]`

func newTestClient(t *testing.T, h http.HandlerFunc) (*Client, *metrics.Metrics) {
	t.Helper()

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	m := metrics.New()
	c, err := NewClient(Config{BaseURL: srv.URL, APIKey: "test-key", Timeout: time.Second}, logger.NewNop(), m)
	require.NoError(t, err)
	return c, m
}

func TestListBreeds_Normalizes(t *testing.T) {
	c, m := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/breeds", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		_, _ = w.Write([]byte(sampleBreeds))
	})

	items, err := c.ListBreeds(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)

	first := items[0]
	n, ok := first.ID.External()
	require.True(t, ok)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, breeds.Some(20), first.Height.Min)
	assert.Equal(t, breeds.Some(25), first.Height.Max)
	assert.Equal(t, breeds.Some(3), first.Weight.Min)
	assert.Equal(t, breeds.Some(6), first.Weight.Max)
	assert.Equal(t, "10 - 12 years", first.YearsLife)
	assert.Equal(t, "https://cdn2.thedogapi.com/images/BJa4kxc4X.jpg", first.Image)
	assert.Equal(t, "Stubborn, Curious, Playful", first.Temperament)

	// Datos faltantes o malformados: sin dato (no cero) y defaults.
	second := items[1]
	assert.False(t, second.Height.Min.Valid)
	assert.False(t, second.Height.Max.Valid)
	assert.Equal(t, breeds.Some(25), second.Weight.Min)
	assert.False(t, second.Weight.Max.Valid)
	assert.Equal(t, breeds.NotFoundText, second.YearsLife)
	assert.Equal(t, breeds.PlaceholderImage, second.Image)
	assert.Equal(t, breeds.NotFoundText, second.Temperament)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.UpstreamRequests.WithLabelValues(sourceLabel, metrics.OutcomeOK)))
}

func TestListTemperamentNames_SkipsMissing(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(sampleBreeds))
	})

	names, err := c.ListTemperamentNames(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Stubborn, Curious, Playful"}, names)
}

func TestListBreeds_UpstreamError(t *testing.T) {
	c, m := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "invalid api key", http.StatusUnauthorized)
	})

	_, err := c.ListBreeds(context.Background())
	require.Error(t, err)

	var httpErr *httpclient.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusUnauthorized, httpErr.StatusCode)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.UpstreamRequests.WithLabelValues(sourceLabel, metrics.OutcomeUpstream)))
}

func TestListBreeds_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	base := srv.URL
	srv.Close()

	c, err := NewClient(Config{BaseURL: base, Timeout: time.Second}, nil, nil)
	require.NoError(t, err)

	_, err = c.ListBreeds(context.Background())
	var netErr *httpclient.NetworkError
	require.True(t, errors.As(err, &netErr), "expected network error, got %v", err)
}
