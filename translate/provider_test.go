package translate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestGoogleWebTranslate(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("client") != "gtx" || q.Get("dt") != "t" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		if q.Get("sl") != "zh-CN" || q.Get("tl") != "en" {
			t.Errorf("unexpected language pair: sl=%s tl=%s", q.Get("sl"), q.Get("tl"))
		}
		// Two segments, as the endpoint returns for multi-sentence input.
		w.Write([]byte(`[[["Submit ","提交",null,null],["failed","失败",null,null]],null,"zh-CN"]`))
	}))
	defer srv.Close()

	p := NewGoogleWeb(srv.URL, time.Second)
	got, err := p.Translate(context.Background(), "提交失败", "zh-CN", "en")
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if got != "Submit failed" {
		t.Errorf("got %q, want concatenated segments", got)
	}
}

func TestGoogleWebLangMapping(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("sl"); got != "zh-CN" {
			t.Errorf("sl = %q, want bare zh mapped to zh-CN", got)
		}
		w.Write([]byte(`[[["ok","文",null,null]]]`))
	}))
	defer srv.Close()

	p := NewGoogleWeb(srv.URL, time.Second)
	if _, err := p.Translate(context.Background(), "文", "zh", "en"); err != nil {
		t.Fatalf("Translate: %v", err)
	}
}

func TestGoogleWebBadResponses(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "server error", status: http.StatusInternalServerError, body: "boom"},
		{name: "not json", status: http.StatusOK, body: "<html>captcha</html>"},
		{name: "empty array", status: http.StatusOK, body: "[]"},
		{name: "no segments", status: http.StatusOK, body: "[[]]"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			p := NewGoogleWeb(srv.URL, time.Second)
			if _, err := p.Translate(context.Background(), "文", "zh-CN", "en"); err == nil {
				t.Error("expected error, got none")
			}
		})
	}
}

func TestMyMemoryTranslate(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("langpair"); got != "zh-CN|en" {
			t.Errorf("langpair = %q", got)
		}
		w.Write([]byte(`{"responseData":{"translatedText":"Submit failed"},"responseStatus":200}`))
	}))
	defer srv.Close()

	p := NewMyMemory(srv.URL, time.Second)
	got, err := p.Translate(context.Background(), "提交失败", "zh-CN", "en")
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if got != "Submit failed" {
		t.Errorf("got %q", got)
	}
}

func TestMyMemoryErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{name: "quota warning", body: `{"responseData":{"translatedText":"MYMEMORY WARNING: YOU USED ALL AVAILABLE FREE TRANSLATIONS FOR TODAY"},"responseStatus":200}`},
		{name: "numeric error status", body: `{"responseData":{"translatedText":""},"responseStatus":403}`},
		{name: "string error status", body: `{"responseData":{"translatedText":""},"responseStatus":"403"}`},
		{name: "empty translation", body: `{"responseData":{"translatedText":""},"responseStatus":200}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			p := NewMyMemory(srv.URL, time.Second)
			if _, err := p.Translate(context.Background(), "文", "zh-CN", "en"); err == nil {
				t.Error("expected error, got none")
			}
		})
	}
}

func TestLingvaTranslate(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// zh-CN must be shortened to Lingva's two-letter code.
		if want := "/api/v1/zh/en/" + "%E6%8F%90%E4%BA%A4%E5%A4%B1%E8%B4%A5"; r.URL.EscapedPath() != want {
			t.Errorf("path = %q, want %q", r.URL.EscapedPath(), want)
		}
		w.Write([]byte(`{"translation":"Submit failed"}`))
	}))
	defer srv.Close()

	p := NewLingva(srv.URL, time.Second)
	got, err := p.Translate(context.Background(), "提交失败", "zh-CN", "en")
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if got != "Submit failed" {
		t.Errorf("got %q", got)
	}
}

func TestLingvaError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":"invalid language pair"}`))
	}))
	defer srv.Close()

	p := NewLingva(srv.URL, time.Second)
	if _, err := p.Translate(context.Background(), "文", "zh-CN", "en"); err == nil {
		t.Error("expected error, got none")
	}
}

func TestNewProvider(t *testing.T) {
	t.Parallel()

	for _, name := range []string{ProviderGoogle, ProviderMyMemory, ProviderLingva} {
		p, err := NewProvider(name, "", time.Second)
		if err != nil {
			t.Fatalf("NewProvider(%q): %v", name, err)
		}
		if p.Name() != name {
			t.Errorf("Name() = %q, want %q", p.Name(), name)
		}
	}

	if _, err := NewProvider("deepl", "", time.Second); err == nil {
		t.Error("expected error for unknown provider name")
	}
}

func TestDefaultProvidersOrder(t *testing.T) {
	t.Parallel()

	ps := DefaultProviders(time.Second)
	want := []string{ProviderGoogle, ProviderMyMemory, ProviderLingva}
	if len(ps) != len(want) {
		t.Fatalf("got %d providers, want %d", len(ps), len(want))
	}
	for i, p := range ps {
		if p.Name() != want[i] {
			t.Errorf("provider %d = %q, want %q", i, p.Name(), want[i])
		}
	}
}
