package observability

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks reports scan and cache events as debug log records and keeps
// simple counters for a final summary.
type LogHooks struct {
	logger *log.Logger

	hits   atomic.Int64
	misses atomic.Int64
	failed atomic.Int64
}

// NewLogHooks returns hooks writing to logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{logger: logger}
}

func (h *LogHooks) OnScanStart(_ context.Context, files int) {
	h.logger.Debug("scan started", "files", files)
}

func (h *LogHooks) OnScanComplete(_ context.Context, files int, d time.Duration, err error) {
	h.logger.Debug("scan finished", "files", files, "failed", h.failed.Load(),
		"cache_hits", h.hits.Load(), "cache_misses", h.misses.Load(), "took", d, "err", err)
}

func (h *LogHooks) OnFileStart(_ context.Context, path string) {}

func (h *LogHooks) OnFileComplete(_ context.Context, path string, requirements int, d time.Duration, err error) {
	if err != nil {
		h.failed.Add(1)
	}
	h.logger.Debug("file scanned", "path", path, "requirements", requirements, "took", d)
}

func (h *LogHooks) OnCacheHit(context.Context, string)  { h.hits.Add(1) }
func (h *LogHooks) OnCacheMiss(context.Context, string) { h.misses.Add(1) }
func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache write", "type", keyType, "bytes", size)
}

// Stats returns the cache hit, cache miss and failed file counters.
func (h *LogHooks) Stats() (hits, misses, failed int64) {
	return h.hits.Load(), h.misses.Load(), h.failed.Load()
}

var (
	_ ScanHooks  = (*LogHooks)(nil)
	_ CacheHooks = (*LogHooks)(nil)
)
