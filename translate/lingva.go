package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// lingvaBaseURL is the main public Lingva instance.
const lingvaBaseURL = "https://lingva.ml"

// Lingva translates through a Lingva Translate instance.
type Lingva struct {
	baseURL string
	client  *http.Client
}

// NewLingva creates a Lingva adapter. baseURL selects the instance
// (used by tests and for self-hosted instances); empty means lingva.ml.
func NewLingva(baseURL string, timeout time.Duration) *Lingva {
	if baseURL == "" {
		baseURL = lingvaBaseURL
	}
	return &Lingva{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  makeHTTPClient(timeout),
	}
}

func (l *Lingva) Name() string { return ProviderLingva }

func (l *Lingva) Translate(ctx context.Context, text, from, to string) (string, error) {
	endpoint := fmt.Sprintf("%s/api/v1/%s/%s/%s",
		l.baseURL, url.PathEscape(lingvaLang(from)), url.PathEscape(lingvaLang(to)), url.PathEscape(text))

	body, err := getJSON(ctx, l.client, endpoint)
	if err != nil {
		return "", err
	}

	var payload struct {
		Translation string `json:"translation"`
		Error       string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("unexpected response shape: %w", err)
	}
	if payload.Error != "" {
		return "", fmt.Errorf("service error: %s", payload.Error)
	}
	if strings.TrimSpace(payload.Translation) == "" {
		return "", fmt.Errorf("empty translation in response")
	}
	return payload.Translation, nil
}

// lingvaLang maps generic codes to Lingva's two-letter codes.
func lingvaLang(code string) string {
	if c, _, found := strings.Cut(code, "-"); found {
		return c
	}
	return code
}
