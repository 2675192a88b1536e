package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const (
	DefaultTimeout = 10 * time.Second

	maxBodyBytes = 8 << 20
)

var ErrRelativeURL = errors.New("httpclient: relative url requires a base url")

// Client hace GETs JSON contra una base opcional. Header se agrega a cada request.
type Client struct {
	HTTP   *http.Client
	Base   *url.URL
	Header http.Header
}

func New(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		HTTP:   &http.Client{Timeout: timeout},
		Header: http.Header{"Accept": {"application/json"}},
	}
}

// NewWithBaseURL: los paths relativos se resuelven contra baseURL (sin perder su path, ej. /v1).
func NewWithBaseURL(baseURL string, timeout time.Duration) (*Client, error) {
	c := New(timeout)

	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return c, nil
	}

	u, err := url.ParseRequestURI(baseURL)
	if err != nil {
		return nil, errors.Wrap(err, "invalid base url")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, errors.Errorf("invalid base url scheme %q", u.Scheme)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	c.Base = u
	return c, nil
}

// HTTPError: el upstream respondió, pero no con 2xx.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("upstream responded %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("upstream responded %d %s: %s", e.StatusCode, http.StatusText(e.StatusCode), e.Body)
}

// NetworkError: el request salió pero no hubo respuesta (dns, conexión, timeout, cancelación).
// URL va sin query string.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("no response received from %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// GetJSON hace GET a ref (absoluta o relativa a Base) con query y decodifica en out.
// Devuelve *HTTPError o *NetworkError según el caso.
func (c *Client) GetJSON(ctx context.Context, ref string, query url.Values, out any) error {
	if c == nil || c.HTTP == nil {
		return errors.New("httpclient: nil client")
	}

	target, err := c.resolve(ref)
	if err != nil {
		return err
	}
	if len(query) > 0 {
		q := target.Query()
		for k, vs := range query {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		target.RawQuery = q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return errors.Wrap(err, "httpclient: new request")
	}
	for k, vs := range c.Header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return networkError(target, err)
	}
	defer resp.Body.Close()

	body := io.LimitReader(resp.Body, maxBodyBytes)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(body, 4<<10))
		return &HTTPError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, body)
		return nil
	}

	if err := json.NewDecoder(body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return errors.Wrap(err, "httpclient: decode json")
	}
	return nil
}

func (c *Client) resolve(ref string) (*url.URL, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, errors.New("httpclient: empty url")
	}

	u, err := url.Parse(ref)
	if err != nil {
		return nil, errors.Wrap(err, "httpclient: parse url")
	}
	if u.IsAbs() {
		return u, nil
	}
	if c.Base == nil {
		return nil, errors.WithStack(ErrRelativeURL)
	}

	// "/breeds" y "breeds" cuelgan ambos de la base.
	u.Path = strings.TrimPrefix(u.Path, "/")
	return c.Base.ResolveReference(u), nil
}

// networkError saca la query (api keys) del error antes de devolverlo.
func networkError(target *url.URL, err error) *NetworkError {
	clean := *target
	clean.RawQuery = ""
	redacted := clean.String()

	var ue *url.Error
	if errors.As(err, &ue) {
		ue.URL = redacted
	}
	return &NetworkError{URL: redacted, Err: err}
}
