// Package dataverse implements the read-only client for the remote data
// service: a paged query client, the entity query catalog, and the
// normalizers that map raw records onto the canonical domain shapes.
package dataverse

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/time/rate"

	"secview/internal/domain"
)

// Record is one raw entity record as returned by the remote service.
type Record map[string]any

// Page is one page of a query result. NextLink is the continuation
// reference to the following page, empty on the final page.
type Page struct {
	Value    []Record
	NextLink string
}

// Transport is the sole query primitive against the remote service. The
// path is relative to the service's data API root.
type Transport interface {
	QueryData(ctx context.Context, relativePath string) (*Page, error)
}

// pageEnvelope is the wire shape of a paged response.
type pageEnvelope struct {
	Value    []Record `json:"value"`
	NextLink string   `json:"@odata.nextLink"`
}

// HTTPTransportConfig configures an HTTPTransport.
type HTTPTransportConfig struct {
	// ServiceURL is the environment root, e.g. https://org.crm.dynamics.com.
	ServiceURL string
	// APIVersion is the data API version segment (default "v9.2").
	APIVersion string
	// Token is the bearer token presented on every request.
	Token string
	// RequestsPerSecond and Burst bound the request rate against the
	// service. Zero RequestsPerSecond disables the limiter.
	RequestsPerSecond float64
	Burst             int
	// HTTPClient overrides the default client (used by tests).
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// HTTPTransport implements Transport over the remote service's JSON API.
type HTTPTransport struct {
	base    *url.URL
	version string
	token   string
	client  *http.Client
	limiter *rate.Limiter
	logger  *slog.Logger
}

var _ Transport = (*HTTPTransport)(nil)

// NewHTTPTransport validates the config and builds a transport. When the
// token looks like a JWT, its claims are decoded (unverified) so an already
// expired token fails here with a clear message instead of as an opaque
// authorization error on the first query.
func NewHTTPTransport(cfg HTTPTransportConfig) (*HTTPTransport, error) {
	if cfg.ServiceURL == "" {
		return nil, domain.ErrValidation("service URL is required")
	}
	base, err := url.Parse(cfg.ServiceURL)
	if err != nil {
		return nil, domain.ErrValidation("invalid service URL %q: %v", cfg.ServiceURL, err)
	}
	if cfg.APIVersion == "" {
		cfg.APIVersion = "v9.2"
	}
	if err := checkTokenExpiry(cfg.Token, time.Now()); err != nil {
		return nil, err
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 2 * time.Minute}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}
	return &HTTPTransport{
		base:    base,
		version: cfg.APIVersion,
		token:   cfg.Token,
		client:  client,
		limiter: limiter,
		logger:  logger,
	}, nil
}

// QueryData issues one GET against the data API and decodes the paged
// envelope. Any failure is a *domain.TransportError.
func (t *HTTPTransport) QueryData(ctx context.Context, relativePath string) (*Page, error) {
	if t.limiter != nil {
		if err := t.limiter.Wait(ctx); err != nil {
			return nil, domain.ErrTransport(err, "rate limiter wait")
		}
	}

	full := *t.base
	full.Path = strings.TrimSuffix(full.Path, "/") + "/api/data/" + t.version + "/"
	ref, err := url.Parse(relativePath)
	if err != nil {
		return nil, domain.ErrTransport(err, "invalid query path %q", relativePath)
	}
	target := full.ResolveReference(ref)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, domain.ErrTransport(err, "build request for %s", relativePath)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("OData-MaxVersion", "4.0")
	req.Header.Set("OData-Version", "4.0")
	if t.token != "" {
		req.Header.Set("Authorization", "Bearer "+t.token)
	}

	t.logger.Debug("querying remote service", "path", relativePath)
	resp, err := t.client.Do(req)
	if err != nil {
		return nil, domain.ErrTransport(err, "GET %s", relativePath)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.ErrTransport(err, "read GET %s", relativePath)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, domain.ErrTransport(nil, "GET %s: HTTP %d: %s", relativePath, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var env pageEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, domain.ErrTransport(err, "parse GET %s", relativePath)
	}
	return &Page{Value: env.Value, NextLink: env.NextLink}, nil
}

// checkTokenExpiry decodes a JWT's registered claims without verifying the
// signature and rejects tokens that are already expired. Opaque (non-JWT)
// tokens pass through untouched; expiry is then the service's call.
func checkTokenExpiry(token string, now time.Time) error {
	if token == "" || strings.Count(token, ".") != 2 {
		return nil
	}
	var claims jwt.RegisteredClaims
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return nil // not a JWT after all
	}
	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(now) {
		return domain.ErrValidation(
			"access token expired at %s; acquire a fresh token and retry",
			claims.ExpiresAt.Format(time.RFC3339))
	}
	return nil
}
