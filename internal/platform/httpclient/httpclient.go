package httpclient

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	DefaultTimeout = 10 * time.Second
)

// Client envuelve resty con los defaults comunes para adapters.
type Client struct {
	r *resty.Client
}

type Options struct {
	BaseURL string
	Timeout time.Duration

	// Retries solo aplica a errores de red y 5xx.
	Retries int

	Headers map[string]string
}

// New crea un Client; BaseURL opcional (permite paths relativos en DoJSON).
func New(opts Options) (*Client, error) {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	r := resty.New().
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	if base := strings.TrimSpace(opts.BaseURL); base != "" {
		if _, err := url.ParseRequestURI(base); err != nil {
			return nil, fmt.Errorf("invalid base url: %w", err)
		}
		r.SetBaseURL(strings.TrimRight(base, "/"))
	}

	if opts.Retries > 0 {
		r.SetRetryCount(opts.Retries).
			SetRetryWaitTime(200 * time.Millisecond).
			SetRetryMaxWaitTime(2 * time.Second).
			AddRetryCondition(func(resp *resty.Response, err error) bool {
				return err != nil || (resp != nil && resp.StatusCode() >= 500)
			})
	}

	for k, v := range opts.Headers {
		if strings.TrimSpace(k) == "" {
			continue
		}
		r.SetHeader(k, v)
	}

	return &Client{r: r}, nil
}

// HTTPError representa una respuesta no-2xx.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("http error: status=%d", e.StatusCode)
	}
	return fmt.Sprintf("http error: status=%d body=%s", e.StatusCode, e.Body)
}

// DoJSON hace un request JSON.
// - in: body (opcional). out: destino del JSON de respuesta (opcional).
// Retorna *HTTPError si el status no es 2xx.
func (c *Client) DoJSON(
	ctx context.Context,
	method string,
	pathOrURL string,
	headers map[string]string,
	in any,
	out any,
) error {
	if c == nil || c.r == nil {
		return errors.New("httpclient: nil client")
	}
	pathOrURL = strings.TrimSpace(pathOrURL)
	if pathOrURL == "" {
		return errors.New("httpclient: empty url")
	}
	isAbs := strings.HasPrefix(pathOrURL, "http://") || strings.HasPrefix(pathOrURL, "https://")
	if !isAbs && c.r.BaseURL == "" {
		return errors.New("httpclient: relative path requires BaseURL")
	}

	req := c.r.R().SetContext(ctx)
	for k, v := range headers {
		if strings.TrimSpace(k) == "" {
			continue
		}
		req.SetHeader(k, v)
	}
	if in != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(in)
	}
	if out != nil {
		req.SetResult(out)
	}

	resp, err := req.Execute(method, pathOrURL)
	if err != nil {
		return fmt.Errorf("httpclient: do request: %w", err)
	}

	if resp.IsError() || resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return &HTTPError{
			StatusCode: resp.StatusCode(),
			Body:       strings.TrimSpace(string(resp.Body())),
		}
	}
	return nil
}
