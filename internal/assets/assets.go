// Package assets loads game data from BSA archives and caches decoded
// images, frame sequences, and palettes. The manager implements the sky
// generator's texture provider interface.
package assets

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/tamriel-arena/internal/logger"
	"github.com/Faultbox/tamriel-arena/pkg/bsa"
	"github.com/Faultbox/tamriel-arena/pkg/formats"
)

// ErrNotFound reports a name missing from every registered archive.
var ErrNotFound = errors.New("asset not found")

// Manager resolves asset names through a stack of BSA archives and caches
// the decoded results. Archives are searched in reverse registration order,
// so a later archive overrides an earlier one.
type Manager struct {
	mu       sync.RWMutex
	archives []*bsa.Archive
	cache    *Cache

	decodedMu sync.RWMutex
	images    map[string]formats.Image
	imageSets map[string][]formats.Image
	palettes  map[string]*formats.Palette
}

// NewManager creates an empty asset manager.
func NewManager() *Manager {
	return &Manager{
		cache:     NewCache(),
		images:    make(map[string]formats.Image),
		imageSets: make(map[string][]formats.Image),
		palettes:  make(map[string]*formats.Palette),
	}
}

// AddArchive opens a BSA archive and registers it with the manager.
func (m *Manager) AddArchive(path string) error {
	archive, err := bsa.Open(path)
	if err != nil {
		return fmt.Errorf("opening archive %s: %w", path, err)
	}

	m.mu.Lock()
	m.archives = append(m.archives, archive)
	m.mu.Unlock()

	logger.Info("registered archive",
		zap.String("path", path),
		zap.Int("records", archive.Count()))
	return nil
}

// ArchiveCount returns the number of registered archives.
func (m *Manager) ArchiveCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.archives)
}

// Load returns the raw bytes for a record, searching archives in reverse
// registration order.
func (m *Manager) Load(name string) ([]byte, error) {
	if data, ok := m.cache.Get(name); ok {
		return data, nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := len(m.archives) - 1; i >= 0; i-- {
		data, err := m.archives[i].Read(name)
		if err == nil {
			m.cache.Set(name, data)
			return data, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
}

// Image returns a decoded single image, parsing and caching on first use.
func (m *Manager) Image(name string) (formats.Image, error) {
	m.decodedMu.RLock()
	img, ok := m.images[name]
	m.decodedMu.RUnlock()
	if ok {
		return img, nil
	}

	data, err := m.Load(name)
	if err != nil {
		return formats.Image{}, err
	}
	parsed, err := formats.ParseIMG(data)
	if err != nil {
		return formats.Image{}, fmt.Errorf("%s: %w", name, err)
	}

	m.decodedMu.Lock()
	m.images[name] = parsed.Image
	m.decodedMu.Unlock()
	return parsed.Image, nil
}

// ImageSet returns a decoded frame sequence, parsing and caching on first
// use.
func (m *Manager) ImageSet(name string) ([]formats.Image, error) {
	m.decodedMu.RLock()
	frames, ok := m.imageSets[name]
	m.decodedMu.RUnlock()
	if ok {
		return frames, nil
	}

	data, err := m.Load(name)
	if err != nil {
		return nil, err
	}
	parsed, err := formats.ParseDFA(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	m.decodedMu.Lock()
	m.imageSets[name] = parsed.Frames
	m.decodedMu.Unlock()
	return parsed.Frames, nil
}

// Palette returns a decoded palette, parsing and caching on first use.
func (m *Manager) Palette(name string) (*formats.Palette, error) {
	m.decodedMu.RLock()
	pal, ok := m.palettes[name]
	m.decodedMu.RUnlock()
	if ok {
		return pal, nil
	}

	data, err := m.Load(name)
	if err != nil {
		return nil, err
	}
	parsed, err := formats.ParseCOL(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	m.decodedMu.Lock()
	m.palettes[name] = parsed
	m.decodedMu.Unlock()
	return parsed, nil
}

// LoadImage implements the sky texture provider for single images.
func (m *Manager) LoadImage(name string) (formats.Image, error) {
	return m.Image(name)
}

// LoadImageSet implements the sky texture provider for frame sequences.
func (m *Manager) LoadImageSet(name string) ([]formats.Image, error) {
	return m.ImageSet(name)
}

// PaletteColors adapts one decoded palette to the sky generator's palette
// provider interface.
type PaletteColors struct {
	pal *formats.Palette
}

// PaletteColors returns a palette provider backed by a named palette file.
func (m *Manager) PaletteColors(name string) (PaletteColors, error) {
	pal, err := m.Palette(name)
	if err != nil {
		return PaletteColors{}, err
	}
	return PaletteColors{pal: pal}, nil
}

// ColorARGB returns the palette color at index packed as 0xAARRGGBB.
// Out-of-range indices resolve to index 0.
func (p PaletteColors) ColorARGB(index int) uint32 {
	if index < 0 || index >= len(p.pal) {
		index = 0
	}
	return p.pal[index].ARGB()
}

// Close closes all archives and drops every cache.
func (m *Manager) Close() {
	m.mu.Lock()
	for _, archive := range m.archives {
		archive.Close()
	}
	m.archives = nil
	m.mu.Unlock()

	m.cache.Clear()

	m.decodedMu.Lock()
	m.images = make(map[string]formats.Image)
	m.imageSets = make(map[string][]formats.Image)
	m.palettes = make(map[string]*formats.Palette)
	m.decodedMu.Unlock()
}

// Cache is an in-memory byte cache with hit/miss counters.
type Cache struct {
	mu   sync.RWMutex
	data map[string][]byte

	hits   int
	misses int
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{data: make(map[string][]byte)}
}

// Get retrieves an item from the cache.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return data, ok
}

// Set stores an item in the cache.
func (c *Cache) Set(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
}

// Clear drops every entry and resets the counters.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string][]byte)
	c.hits = 0
	c.misses = 0
}

// Stats returns the hit and miss counts.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}
