package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"dog-breeds-api/internal/adapters/breedapi"
	"dog-breeds-api/internal/platform/metrics"
	"dog-breeds-api/internal/router"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const upstreamBreeds = `[
  {
    "id": 1,
    "name": "Affenpinscher",
    "height": {"metric": "23 - 29"},
    "weight": {"metric": "3 - 6"},
    "life_span": "10 - 12 years",
    "temperament": "Stubborn, Curious, Playful",
    "image": {"url": "https://cdn2.thedogapi.com/images/BJa4kxc4X.jpg"}
  },
  {
    "id": 2,
    "name": "Afghan Hound",
    "height": {"metric": "64 - 69"},
    "weight": {"metric": "23 - 27"},
    "life_span": "10 - 13 years",
    "temperament": "Aloof, Clownish, Playful"
  },
  {
    "id": 12345678,
    "name": "Big Number Hound",
    "height": {"metric": "N/A"},
    "weight": {"metric": ""}
  }
]`

type testEnv struct {
	baseURL       string
	upstreamCalls *atomic.Int64
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()

	calls := &atomic.Int64{}
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.URL.Query().Get("api_key") != "test-key" {
			http.Error(w, "bad key", http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(upstreamBreeds))
	}))
	t.Cleanup(upstream.Close)

	h, err := router.NewRouter(router.Options{
		Metrics: metrics.New(),
		BreedAPI: breedapi.Config{
			BaseURL: upstream.URL,
			APIKey:  "test-key",
			Timeout: 2 * time.Second,
		},
	})
	require.NoError(t, err)

	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)

	return testEnv{baseURL: ts.URL, upstreamCalls: calls}
}

func TestHTTP_ListAndSearch(t *testing.T) {
	env := newTestEnv(t)

	// Listado completo: solo externas (no hay locales todavía)
	{
		st, body := doReq(t, env.baseURL, "GET", "/dogs", nil)
		require.Equal(t, http.StatusOK, st, string(body))

		var items []map[string]any
		require.NoError(t, json.Unmarshal(body, &items))
		require.Len(t, items, 3)
		assert.Equal(t, float64(1), items[0]["id"])
		assert.Equal(t, "Stubborn, Curious, Playful", items[0]["temperaments"])
		// malformado => null, no 0
		assert.Nil(t, items[2]["height_min"])
		assert.Nil(t, items[2]["weight_max"])
	}

	// Búsqueda case-insensitive
	{
		st, body := doReq(t, env.baseURL, "GET", "/dogs?name=AFG", nil)
		require.Equal(t, http.StatusOK, st, string(body))

		var items []map[string]any
		require.NoError(t, json.Unmarshal(body, &items))
		require.Len(t, items, 1)
		assert.Equal(t, "Afghan Hound", items[0]["name"])
	}

	// Sin match => 404 con la query en el mensaje
	{
		st, body := doReq(t, env.baseURL, "GET", "/dogs?name=zzz", nil)
		assert.Equal(t, http.StatusNotFound, st)
		assert.Equal(t, "Dog with name zzz not exist!", string(body))
	}
}

func TestHTTP_GetByID_DispatchesOnIDKind(t *testing.T) {
	env := newTestEnv(t)

	{
		st, body := doReq(t, env.baseURL, "GET", "/dogs/2", nil)
		require.Equal(t, http.StatusOK, st, string(body))
		assert.Contains(t, string(body), "Afghan Hound")
	}

	// Numérico largo sigue siendo externo
	{
		st, body := doReq(t, env.baseURL, "GET", "/dogs/12345678", nil)
		require.Equal(t, http.StatusOK, st, string(body))
		assert.Contains(t, string(body), "Big Number Hound")
	}

	{
		st, body := doReq(t, env.baseURL, "GET", "/dogs/999", nil)
		assert.Equal(t, http.StatusNotFound, st)
		assert.Equal(t, "Dog with id 999 not exist in the API!", string(body))
	}

	// UUID va directo al store: no pega a la API
	{
		before := env.upstreamCalls.Load()
		id := uuid.NewString()
		st, body := doReq(t, env.baseURL, "GET", "/dogs/"+id, nil)
		assert.Equal(t, http.StatusNotFound, st)
		assert.Equal(t, "Dog with id "+id+" not exist in the DB!", string(body))
		assert.Equal(t, before, env.upstreamCalls.Load())
	}

	// Lo que no es UUID va por el lado de la API: 404 con el mensaje de la API.
	for _, raw := range []string{"abc", "0", "-5", "1.5"} {
		st, body := doReq(t, env.baseURL, "GET", "/dogs/"+raw, nil)
		assert.Equal(t, http.StatusNotFound, st, raw)
		assert.Equal(t, "Dog with id "+raw+" not exist in the API!", string(body))
	}

	// "1.0" nombra la raza 1.
	{
		st, body := doReq(t, env.baseURL, "GET", "/dogs/1.0", nil)
		require.Equal(t, http.StatusOK, st, string(body))
		assert.Contains(t, string(body), "Affenpinscher")
	}
}

func TestHTTP_Temperaments_SeededOnce(t *testing.T) {
	env := newTestEnv(t)

	st, body := doReq(t, env.baseURL, "GET", "/temperaments", nil)
	require.Equal(t, http.StatusOK, st, string(body))

	var first []struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(body, &first))

	names := make([]string, 0, len(first))
	for _, tm := range first {
		names = append(names, tm.Name)
	}
	assert.Equal(t, []string{"Aloof", "Clownish", "Curious", "Playful", "Stubborn"}, names)
	assert.Equal(t, int64(1), env.upstreamCalls.Load())

	st, body2 := doReq(t, env.baseURL, "GET", "/temperaments", nil)
	require.Equal(t, http.StatusOK, st)
	assert.JSONEq(t, string(body), string(body2))
	assert.Equal(t, int64(1), env.upstreamCalls.Load(), "second call must not hit the API")
}

func TestHTTP_CRUD_LocalDog(t *testing.T) {
	env := newTestEnv(t)
	ids := temperamentIDs(t, env.baseURL)

	// Crear sin temperamentos
	{
		st, body := doReq(t, env.baseURL, "POST", "/dogs", map[string]any{
			"name":       "Plain Dog",
			"height_min": 10,
			"height_max": 20,
		})
		require.Equal(t, http.StatusCreated, st, string(body))

		var resp struct {
			NewDog struct {
				Temperaments []any `json:"temperaments"`
			} `json:"newDog"`
		}
		require.NoError(t, json.Unmarshal(body, &resp))
		assert.Empty(t, resp.NewDog.Temperaments)
	}

	// Crear con [Playful, Curious]
	var dogID string
	{
		st, body := doReq(t, env.baseURL, "POST", "/dogs", map[string]any{
			"name":         "Firulais",
			"height_min":   30,
			"height_max":   40,
			"weight_min":   "10",
			"weight_max":   15,
			"years_life":   "12 years",
			"image":        "https://example.com/firulais.jpg",
			"temperaments": []int64{ids["Playful"], ids["Curious"]},
		})
		require.Equal(t, http.StatusCreated, st, string(body))

		var resp struct {
			SuccMsg string `json:"succMsg"`
			NewDog  struct {
				ID           string `json:"id"`
				Temperaments []struct {
					ID   int64  `json:"id"`
					Name string `json:"name"`
				} `json:"temperaments"`
			} `json:"newDog"`
		}
		require.NoError(t, json.Unmarshal(body, &resp))
		assert.Equal(t, "Dog Created Successfully!", resp.SuccMsg)
		require.Len(t, resp.NewDog.Temperaments, 2)
		dogID = resp.NewDog.ID
		_, err := uuid.Parse(dogID)
		require.NoError(t, err)
	}

	// GET local: temperamentos como string
	{
		st, body := doReq(t, env.baseURL, "GET", "/dogs/"+dogID, nil)
		require.Equal(t, http.StatusOK, st, string(body))

		var got map[string]any
		require.NoError(t, json.Unmarshal(body, &got))
		assert.Equal(t, "Curious, Playful", got["temperaments"])
		assert.Equal(t, float64(10), got["weight_min"])
	}

	// Listado incluye la local después de las externas
	{
		st, body := doReq(t, env.baseURL, "GET", "/dogs?name=firu", nil)
		require.Equal(t, http.StatusOK, st, string(body))
		assert.Contains(t, string(body), dogID)
	}

	// Update reemplaza el set completo
	{
		st, body := doReq(t, env.baseURL, "PUT", "/dogs/"+dogID, map[string]any{
			"name":         "Firulais II",
			"temperaments": []int64{ids["Stubborn"]},
		})
		require.Equal(t, http.StatusOK, st, string(body))

		var resp struct {
			SuccMsg    string `json:"succMsg"`
			UpdatedDog struct {
				Name         string  `json:"name"`
				HeightMin    float64 `json:"height_min"`
				Temperaments []struct {
					Name string `json:"name"`
				} `json:"temperaments"`
			} `json:"updatedDog"`
		}
		require.NoError(t, json.Unmarshal(body, &resp))
		assert.Equal(t, "Dog Updated Successfully!", resp.SuccMsg)
		assert.Equal(t, "Firulais II", resp.UpdatedDog.Name)
		assert.Equal(t, float64(30), resp.UpdatedDog.HeightMin)
		require.Len(t, resp.UpdatedDog.Temperaments, 1)
		assert.Equal(t, "Stubborn", resp.UpdatedDog.Temperaments[0].Name)
	}

	// Update con min > max => 400
	{
		st, _ := doReq(t, env.baseURL, "PUT", "/dogs/"+dogID, map[string]any{"height_min": 99})
		assert.Equal(t, http.StatusBadRequest, st)
	}

	// Delete + delete de nuevo
	{
		st, body := doReq(t, env.baseURL, "DELETE", "/dogs/"+dogID, nil)
		require.Equal(t, http.StatusOK, st, string(body))
		assert.JSONEq(t, `{"succMsg":"Dog Deleted Successfully!"}`, string(body))

		st, body = doReq(t, env.baseURL, "DELETE", "/dogs/"+dogID, nil)
		assert.Equal(t, http.StatusNotFound, st)
		assert.JSONEq(t, `{"error":"Dog not found!"}`, string(body))
	}

	// Update de inexistente / id externo
	{
		st, body := doReq(t, env.baseURL, "PUT", "/dogs/"+uuid.NewString(), map[string]any{"name": "x"})
		assert.Equal(t, http.StatusNotFound, st)
		assert.JSONEq(t, `{"error":"Dog not found!"}`, string(body))

		st, _ = doReq(t, env.baseURL, "DELETE", "/dogs/1", nil)
		assert.Equal(t, http.StatusNotFound, st)
	}
}

func TestHTTP_CreateDog_RejectsMissingName(t *testing.T) {
	env := newTestEnv(t)

	st, body := doReq(t, env.baseURL, "POST", "/dogs", map[string]any{"height_min": 1})
	assert.Equal(t, http.StatusBadRequest, st, string(body))
}

func TestHTTP_CreateDog_BadMeasureNamesField(t *testing.T) {
	env := newTestEnv(t)

	st, body := doReq(t, env.baseURL, "POST", "/dogs", map[string]any{
		"name":       "Firulais",
		"height_min": "abc",
	})
	assert.Equal(t, http.StatusBadRequest, st)

	var resp struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.Contains(t, resp.Error, "height_min")
}

func TestHTTP_UpstreamFailure_Is502(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer upstream.Close()

	h, err := router.NewRouter(router.Options{
		BreedAPI: breedapi.Config{BaseURL: upstream.URL, Timeout: time.Second},
	})
	require.NoError(t, err)
	ts := httptest.NewServer(h)
	defer ts.Close()

	st, body := doReq(t, ts.URL, "GET", "/dogs", nil)
	assert.Equal(t, http.StatusBadGateway, st)
	assert.True(t, strings.Contains(string(body), "500"), string(body))
}

func TestHTTP_HealthAndMetrics(t *testing.T) {
	env := newTestEnv(t)

	st, body := doReq(t, env.baseURL, "GET", "/health", nil)
	assert.Equal(t, http.StatusOK, st)
	assert.Equal(t, "ok", string(body))

	_, _ = doReq(t, env.baseURL, "GET", "/dogs", nil)

	st, body = doReq(t, env.baseURL, "GET", "/metrics", nil)
	require.Equal(t, http.StatusOK, st)
	assert.Contains(t, string(body), "dogs_upstream_requests_total")
	assert.Contains(t, string(body), "dogs_http_requests_total")
}

func temperamentIDs(t *testing.T, baseURL string) map[string]int64 {
	t.Helper()

	st, body := doReq(t, baseURL, "GET", "/temperaments", nil)
	require.Equal(t, http.StatusOK, st, string(body))

	var items []struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(body, &items))

	out := map[string]int64{}
	for _, tm := range items {
		out[tm.Name] = tm.ID
	}
	return out
}

func doReq(t *testing.T, baseURL, method, path string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
