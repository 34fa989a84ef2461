package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"facebook-scorer/internal/scoring"
)

type cachedScore struct {
	Username  string               `json:"username"`
	Score     scoring.ProfileScore `json:"score"`
	Timestamp int64                `json:"timestamp"`
}

// ScoreCache keeps recently computed profile scores on disk so the same
// username is not re-scraped within the TTL. Scraping a profile costs a
// full browser round-trip; serving the cached score costs nothing.
type ScoreCache struct {
	mu       sync.Mutex
	filePath string
	ttl      time.Duration
	scores   map[string]cachedScore
	logger   *zap.Logger
}

// New creates or loads a score cache under cacheDir.
func New(cacheDir string, ttl time.Duration, logger *zap.Logger) *ScoreCache {
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		logger.Warn("⚠️ failed to create cache directory", zap.Error(err))
	}
	cache := &ScoreCache{
		filePath: filepath.Join(cacheDir, "scored_profiles.json"),
		ttl:      ttl,
		scores:   make(map[string]cachedScore),
		logger:   logger,
	}
	cache.load()
	return cache
}

// Get returns a cached score when one exists and is still fresh.
// Mutex is required because Go maps are NOT thread-safe and scores are
// read from concurrent request handlers.
func (c *ScoreCache) Get(username string) (scoring.ProfileScore, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, exists := c.scores[username]
	if !exists {
		return scoring.ProfileScore{}, false
	}
	if time.Now().UnixMilli()-entry.Timestamp > c.ttl.Milliseconds() {
		delete(c.scores, username)
		return scoring.ProfileScore{}, false
	}
	return entry.Score, true
}

// Put stores a freshly computed score and persists the cache.
func (c *ScoreCache) Put(username string, score scoring.ProfileScore) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.scores[username] = cachedScore{
		Username:  username,
		Score:     score,
		Timestamp: time.Now().UnixMilli(),
	}
	c.save()
}

// load reads the cache from disk, dropping entries past the TTL.
func (c *ScoreCache) load() {
	data, err := os.ReadFile(c.filePath)
	if err != nil {
		if !os.IsNotExist(err) {
			c.logger.Warn("⚠️ failed to read score cache", zap.Error(err))
		}
		return
	}

	var entries []cachedScore
	if err := json.Unmarshal(data, &entries); err != nil {
		c.logger.Warn("⚠️ failed to parse score cache", zap.Error(err))
		return
	}

	cutoff := time.Now().UnixMilli() - c.ttl.Milliseconds()
	loaded := 0
	for _, e := range entries {
		if e.Timestamp > cutoff {
			c.scores[e.Username] = e
			loaded++
		}
	}
	c.logger.Info("📋 score cache loaded",
		zap.Int("fresh", loaded),
		zap.Int("expired", len(entries)-loaded),
	)
}

// save writes the current cache to disk. Caller holds the mutex.
func (c *ScoreCache) save() {
	entries := make([]cachedScore, 0, len(c.scores))
	for _, e := range c.scores {
		entries = append(entries, e)
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		c.logger.Warn("⚠️ failed to marshal score cache", zap.Error(err))
		return
	}
	if err := os.WriteFile(c.filePath, data, 0644); err != nil {
		c.logger.Warn("⚠️ failed to write score cache", zap.Error(err))
	}
}
