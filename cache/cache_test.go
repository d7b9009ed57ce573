package cache

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissing(t *testing.T) {
	t.Parallel()

	c, err := Load(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}
	if _, ok := c.Get("登录", "zh-CN", "en"); ok {
		t.Error("empty cache should not report hits")
	}
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	c, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	c.Put("登录失败", "zh-CN", "en", "Login failed")
	c.Put("提交", "zh-CN", "en", "Submit")
	if err := c.Save(); err != nil {
		t.Fatal(err)
	}

	reloaded, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if reloaded.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", reloaded.Len())
	}
	got, ok := reloaded.Get("登录失败", "zh-CN", "en")
	if !ok || got != "Login failed" {
		t.Errorf("Get = %q, %v; want %q, true", got, ok, "Login failed")
	}
}

func TestLanguagePairsDoNotCollide(t *testing.T) {
	t.Parallel()

	c, err := Load(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	c.Put("提交", "zh-CN", "en", "Submit")
	c.Put("提交", "zh-CN", "ja", "送信")

	if got, _ := c.Get("提交", "zh-CN", "en"); got != "Submit" {
		t.Errorf("en entry = %q, want Submit", got)
	}
	if got, _ := c.Get("提交", "zh-CN", "ja"); got != "送信" {
		t.Errorf("ja entry = %q, want 送信", got)
	}
}

func TestLoadCorrupt(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	if err := os.WriteFile(filepath.Join(dir, FileName), []byte("entries: [not a map"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(dir); err == nil {
		t.Error("expected error for corrupt cache file")
	}
}
