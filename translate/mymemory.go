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

// myMemoryBaseURL is the public MyMemory translation API.
const myMemoryBaseURL = "https://api.mymemory.translated.net"

// MyMemory translates through the MyMemory public API.
type MyMemory struct {
	baseURL string
	client  *http.Client
}

// NewMyMemory creates a MyMemory adapter. baseURL overrides the public
// endpoint (used by tests); empty means the default.
func NewMyMemory(baseURL string, timeout time.Duration) *MyMemory {
	if baseURL == "" {
		baseURL = myMemoryBaseURL
	}
	return &MyMemory{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  makeHTTPClient(timeout),
	}
}

func (m *MyMemory) Name() string { return ProviderMyMemory }

func (m *MyMemory) Translate(ctx context.Context, text, from, to string) (string, error) {
	endpoint := fmt.Sprintf("%s/get?q=%s&langpair=%s",
		m.baseURL, url.QueryEscape(text), url.QueryEscape(myMemoryLang(from)+"|"+myMemoryLang(to)))

	body, err := getJSON(ctx, m.client, endpoint)
	if err != nil {
		return "", err
	}

	var payload struct {
		ResponseData struct {
			TranslatedText string `json:"translatedText"`
		} `json:"responseData"`
		// The API reports its status both as a number and, on some
		// error paths, as a quoted string.
		ResponseStatus json.RawMessage `json:"responseStatus"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("unexpected response shape: %w", err)
	}
	if s := strings.Trim(string(payload.ResponseStatus), `"`); s != "" && s != "200" {
		return "", fmt.Errorf("service status %s", s)
	}

	result := strings.TrimSpace(payload.ResponseData.TranslatedText)
	// Quota and validation problems come back as HTTP 200 with a warning
	// in place of the translation.
	if result == "" || strings.HasPrefix(result, "MYMEMORY WARNING") {
		return "", fmt.Errorf("no usable translation: %s", truncate(result, 120))
	}
	return result, nil
}

// myMemoryLang maps generic codes to MyMemory's RFC 3066 pairs.
func myMemoryLang(code string) string {
	if code == "zh" {
		return "zh-CN"
	}
	return code
}
