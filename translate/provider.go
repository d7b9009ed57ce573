// Package translate implements machine translation through multiple
// keyless web translation services: the Google web endpoint, MyMemory,
// and Lingva.
//
// Providers are tried in fixed priority order with per-provider retry;
// the Gateway wraps the ordered list and degrades gracefully when the
// network is unavailable.
package translate

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Provider is one remote translation service. Implementations must be
// safe to call repeatedly and must never panic on malformed responses.
type Provider interface {
	// Name identifies the provider in logs and configuration.
	Name() string
	// Translate converts text from one language to another. Language
	// codes are BCP 47-ish ("zh-CN", "en"); adapters normalize as their
	// service requires.
	Translate(ctx context.Context, text, from, to string) (string, error)
}

// Provider names accepted in configuration files.
const (
	ProviderGoogle   = "google"
	ProviderMyMemory = "mymemory"
	ProviderLingva   = "lingva"
)

// DefaultTimeout is the per-request timeout when none is configured.
const DefaultTimeout = 15 * time.Second

// DefaultProviders returns the built-in provider chain in priority order.
func DefaultProviders(timeout time.Duration) []Provider {
	return []Provider{
		NewGoogleWeb("", timeout),
		NewMyMemory("", timeout),
		NewLingva("", timeout),
	}
}

// NewProvider constructs a provider by name, with an optional base URL
// override. Adding a provider means adding a case here and appending it
// to the configured chain; no other code changes.
func NewProvider(name, baseURL string, timeout time.Duration) (Provider, error) {
	switch name {
	case ProviderGoogle:
		return NewGoogleWeb(baseURL, timeout), nil
	case ProviderMyMemory:
		return NewMyMemory(baseURL, timeout), nil
	case ProviderLingva:
		return NewLingva(baseURL, timeout), nil
	default:
		return nil, fmt.Errorf("unknown translation provider %q", name)
	}
}

// makeHTTPClient builds an HTTP client honoring HTTP_PROXY/HTTPS_PROXY.
func makeHTTPClient(timeout time.Duration) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.Proxy = http.ProxyFromEnvironment

	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{
		Transport: transport,
		Timeout:   timeout,
	}
}

// getJSON issues a GET request and returns the response body, failing on
// non-200 status codes.
func getJSON(ctx context.Context, client *http.Client, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", "i18nx/1.0")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := readBody(resp)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, truncate(string(body), 200))
	}
	return body, nil
}

// readBody drains a response body with a sane upper bound; translation
// responses are small.
func readBody(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	return body, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
