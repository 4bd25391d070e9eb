// Package asset caches raw bytes and decoded images keyed by their
// source path or URL. Entries load on first use and are never evicted;
// the cache is an explicit instance owned by the engine so tests can
// isolate their own.
package asset

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
)

// Cache loads and retains assets for the lifetime of the process.
// Safe for concurrent use; level preloads run off the game loop.
type Cache struct {
	logger *log.Logger
	client *http.Client

	mu     sync.Mutex
	data   map[string][]byte
	images map[string]*ebiten.Image
}

// NewCache creates an empty cache.
func NewCache(logger *log.Logger) *Cache {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Cache{
		logger: logger,
		client: &http.Client{Timeout: 30 * time.Second},
		data:   map[string][]byte{},
		images: map[string]*ebiten.Image{},
	}
}

// Bytes returns the raw contents of a file path or http(s) URL,
// fetching on the first call and serving from the cache afterwards.
func (c *Cache) Bytes(src string) ([]byte, error) {
	c.mu.Lock()
	data, ok := c.data[src]
	c.mu.Unlock()
	if ok {
		return data, nil
	}
	data, err := c.fetch(src)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.data[src] = data
	c.mu.Unlock()
	return data, nil
}

func (c *Cache) fetch(src string) ([]byte, error) {
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		resp, err := c.client.Get(src)
		if err != nil {
			return nil, fmt.Errorf("asset: fetch %s: %w", src, err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("asset: fetch %s: unexpected status %s", src, resp.Status)
		}
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("asset: fetch %s: %w", src, err)
		}
		return data, nil
	}

	data, err := os.ReadFile(src)
	if err != nil {
		return nil, fmt.Errorf("asset: read %s: %w", src, err)
	}
	return data, nil
}

// Image returns the decoded image for a source, loading and decoding
// on the first call.
func (c *Cache) Image(src string) (*ebiten.Image, error) {
	c.mu.Lock()
	img, ok := c.images[src]
	c.mu.Unlock()
	if ok {
		return img, nil
	}
	data, err := c.Bytes(src)
	if err != nil {
		return nil, err
	}
	decoded, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("asset: decode %s: %w", src, err)
	}
	img = ebiten.NewImageFromImage(decoded)
	c.mu.Lock()
	c.images[src] = img
	c.mu.Unlock()
	return img, nil
}

// PutBytes stores bytes under a name, for assets embedded in the
// binary rather than loaded from disk.
func (c *Cache) PutBytes(name string, data []byte) {
	c.mu.Lock()
	c.data[name] = data
	c.mu.Unlock()
}

// PutImage stores an already-built image under a name.
func (c *Cache) PutImage(name string, img *ebiten.Image) {
	c.mu.Lock()
	c.images[name] = img
	c.mu.Unlock()
}

// Has reports whether the source is already cached.
func (c *Cache) Has(src string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.data[src]; ok {
		return true
	}
	_, ok := c.images[src]
	return ok
}

// Preload fetches sources in order, reporting progress after each.
// It stops at the first failure so a level's preload can surface the
// broken asset.
func (c *Cache) Preload(srcs []string, onProgress func(done, total int)) error {
	for i, src := range srcs {
		if _, err := c.Bytes(src); err != nil {
			return err
		}
		if onProgress != nil {
			onProgress(i+1, len(srcs))
		}
	}
	return nil
}
