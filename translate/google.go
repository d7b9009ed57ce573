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

// googleBaseURL is the public web translation endpoint (the "gtx"
// client used by browser extensions; no API key required).
const googleBaseURL = "https://translate.googleapis.com"

// GoogleWeb translates through the public Google web endpoint.
type GoogleWeb struct {
	baseURL string
	client  *http.Client
}

// NewGoogleWeb creates a Google web adapter. baseURL overrides the
// public endpoint (used by tests); empty means the default.
func NewGoogleWeb(baseURL string, timeout time.Duration) *GoogleWeb {
	if baseURL == "" {
		baseURL = googleBaseURL
	}
	return &GoogleWeb{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  makeHTTPClient(timeout),
	}
}

func (g *GoogleWeb) Name() string { return ProviderGoogle }

// Translate calls the single-phrase endpoint. The response is a nested
// JSON array whose first element lists translated segments; segments are
// concatenated to rebuild multi-sentence input.
func (g *GoogleWeb) Translate(ctx context.Context, text, from, to string) (string, error) {
	endpoint := fmt.Sprintf("%s/translate_a/single?client=gtx&sl=%s&tl=%s&dt=t&q=%s",
		g.baseURL, url.QueryEscape(googleLang(from)), url.QueryEscape(googleLang(to)), url.QueryEscape(text))

	body, err := getJSON(ctx, g.client, endpoint)
	if err != nil {
		return "", err
	}

	var payload [][]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("unexpected response shape: %w", err)
	}
	if len(payload) == 0 {
		return "", fmt.Errorf("empty response")
	}

	var sb strings.Builder
	for _, seg := range payload[0] {
		var parts []json.RawMessage
		if err := json.Unmarshal(seg, &parts); err != nil || len(parts) == 0 {
			continue
		}
		var s string
		if err := json.Unmarshal(parts[0], &s); err != nil {
			continue
		}
		sb.WriteString(s)
	}

	result := sb.String()
	if result == "" {
		return "", fmt.Errorf("no translation segments in response")
	}
	return result, nil
}

// googleLang maps generic language codes to what the endpoint expects.
func googleLang(code string) string {
	if code == "zh" {
		return "zh-CN"
	}
	return code
}
