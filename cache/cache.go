// Package cache implements a persistent translation memory keyed by MD5
// checksums of source strings. Repeated runs over the same codebase skip
// strings that were already translated, saving service calls and time.
//
// The cache is stored in the output directory as translation_cache.yaml.
package cache

import (
	"crypto/md5"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// FileName is the cache file name inside the output directory.
const FileName = "translation_cache.yaml"

// Version is the cache file format version.
const Version = 1

// Cache maps source-string checksums to their translations.
type Cache struct {
	Version int               `yaml:"version"`
	Entries map[string]string `yaml:"entries"` // md5(from|to|text) -> translation

	mu   sync.Mutex `yaml:"-"`
	path string     `yaml:"-"`
}

// Load reads the cache from the given directory.
// Returns an empty cache if the file doesn't exist.
func Load(dir string) (*Cache, error) {
	path := filepath.Join(dir, FileName)
	c := &Cache{
		Version: Version,
		Entries: make(map[string]string),
		path:    path,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	c.path = path

	if c.Entries == nil {
		c.Entries = make(map[string]string)
	}

	return c, nil
}

// Save writes the cache to disk.
func (c *Cache) Save() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.path == "" {
		return fmt.Errorf("cache path not set")
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling cache: %w", err)
	}

	if err := os.WriteFile(c.path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", c.path, err)
	}

	return nil
}

// Path returns the cache file path.
func (c *Cache) Path() string {
	return c.path
}

// key builds the lookup key for a source string and language pair. The
// pair is included so zh-CN→en and zh-CN→ja entries never collide.
func key(text, from, to string) string {
	return fmt.Sprintf("%x", md5.Sum([]byte(from+"\x00"+to+"\x00"+text)))
}

// Get returns the cached translation for a source string, if any.
func (c *Cache) Get(text, from, to string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	translated, ok := c.Entries[key(text, from, to)]
	return translated, ok
}

// Put records a translation.
func (c *Cache) Put(text, from, to, translated string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.Entries[key(text, from, to)] = translated
}

// Len returns the number of cached translations.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.Entries)
}
