package remote

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ccis-arch/avacc/internal/platform/apperr"
	"github.com/ccis-arch/avacc/internal/platform/httpclient"
	"github.com/ccis-arch/avacc/internal/ports/auth"
)

var (
	ErrNotConfigured = errors.New("identity provider not configured")
	ErrUnauthorized  = errors.New("identity provider rejected token")
	// ErrUpstream es una caída del proveedor: 503, no 401.
	ErrUpstream = fmt.Errorf("identity provider upstream error: %w", apperr.ErrUnavailable)
)

const verifyPath = "/v1/tokens/verify"

// Config del cliente del proveedor de identidad.
type Config struct {
	BaseURL string
	APIKey  string

	// Header para la API key. Vacío => "X-Api-Key".
	APIKeyHeader string

	Timeout time.Duration
	Retries int
}

type Client struct {
	http         *httpclient.Client
	apiKey       string
	apiKeyHeader string
}

func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, ErrNotConfigured
	}
	h := strings.TrimSpace(cfg.APIKeyHeader)
	if h == "" {
		h = "X-Api-Key"
	}
	hc, err := httpclient.New(httpclient.Options{
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
		Retries: cfg.Retries,
	})
	if err != nil {
		return nil, err
	}
	return &Client{
		http:         hc,
		apiKey:       strings.TrimSpace(cfg.APIKey),
		apiKeyHeader: h,
	}, nil
}

type verifyResponse struct {
	Subject string `json:"sub"`
	Name    string `json:"name"`
	Email   string `json:"email"`
}

// VerifyToken pregunta al proveedor por el token y devuelve la identidad.
func (c *Client) VerifyToken(ctx context.Context, token string) (auth.Claims, error) {
	if c == nil || c.http == nil {
		return auth.Claims{}, ErrNotConfigured
	}

	headers := map[string]string{"Authorization": "Bearer " + token}
	if c.apiKey != "" {
		headers[c.apiKeyHeader] = c.apiKey
	}

	var out verifyResponse
	err := c.http.DoJSON(ctx, http.MethodPost, verifyPath, headers, map[string]string{"token": token}, &out)
	if err != nil {
		var he *httpclient.HTTPError
		if errors.As(err, &he) && (he.StatusCode == http.StatusUnauthorized || he.StatusCode == http.StatusForbidden) {
			return auth.Claims{}, ErrUnauthorized
		}
		return auth.Claims{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	return auth.Claims{
		Subject: strings.TrimSpace(out.Subject),
		Name:    strings.TrimSpace(out.Name),
		Email:   strings.TrimSpace(out.Email),
	}, nil
}
