package reel

import (
	"fmt"
	"log"
	"path"
	"sync"
)

// FrameCache is the process-scoped store of decoded frame sets, keyed by
// source path. Every clip loaded through the same cache shares the decoded
// image data of an asset. Entries are never evicted. The cache is safe for
// concurrent use; FrameSets it returns are read-only.
type FrameCache struct {
	mu     sync.Mutex
	loader Loader
	sets   map[string]*FrameSet
	logger *log.Logger
}

// NewFrameCache creates an empty cache that decodes misses with loader.
func NewFrameCache(loader Loader) *FrameCache {
	return &FrameCache{
		loader: loader,
		sets:   make(map[string]*FrameSet),
	}
}

// SetLogger replaces the diagnostic logger.
func (c *FrameCache) SetLogger(l *log.Logger) {
	c.mu.Lock()
	c.logger = l
	c.mu.Unlock()
}

func (c *FrameCache) log() *log.Logger {
	c.mu.Lock()
	defer c.mu.Unlock()
	return loggerOr(c.logger)
}

// Put registers a prebuilt frame set under key. The first registration for a
// key wins; Put returns whichever set is stored for key afterwards.
func (c *FrameCache) Put(key string, set *FrameSet) *FrameSet {
	key = cleanAssetPath(key)
	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.sets[key]; ok {
		return existing
	}
	c.sets[key] = set
	return set
}

// FrameSet returns the decoded frames for p, loading them on first use.
// Load failures are not cached.
func (c *FrameCache) FrameSet(p string) (*FrameSet, error) {
	key := cleanAssetPath(p)
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.frameSetLocked(key)
}

func (c *FrameCache) frameSetLocked(key string) (*FrameSet, error) {
	if set, ok := c.sets[key]; ok {
		return set, nil
	}
	if c.loader == nil {
		return nil, fmt.Errorf("reel: load %s: no loader configured", key)
	}
	set, err := c.loader.LoadFrameSet(key)
	if err != nil {
		return nil, err
	}
	c.sets[key] = set
	return set, nil
}

// ClipSets returns the frame sets making up a clip loaded from p. Without
// multi the path itself is one track. With multi every image or directory
// entry under p is its own track; entries that fail to load are logged and
// skipped. An error is returned only when nothing could be loaded.
func (c *FrameCache) ClipSets(p string, multi bool) ([]*FrameSet, error) {
	key := cleanAssetPath(p)
	c.mu.Lock()
	defer c.mu.Unlock()

	if !multi {
		set, err := c.frameSetLocked(key)
		if err != nil {
			return nil, err
		}
		return []*FrameSet{set}, nil
	}

	if c.loader == nil {
		return nil, fmt.Errorf("reel: load %s: no loader configured", key)
	}
	entries, err := c.loader.Entries(key)
	if err != nil {
		return nil, err
	}
	sets := make([]*FrameSet, 0, len(entries))
	for _, e := range entries {
		set, err := c.frameSetLocked(path.Join(key, e))
		if err != nil {
			loggerOr(c.logger).Printf("reel: clip %s: track %s skipped: %v", key, e, err)
			continue
		}
		sets = append(sets, set)
	}
	if len(sets) == 0 {
		return nil, fmt.Errorf("reel: load %s: %w", key, ErrNoFrames)
	}
	return sets, nil
}

// Len returns the number of cached frame sets.
func (c *FrameCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.sets)
}
