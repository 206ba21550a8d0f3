package observability

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	s := NoopScanHooks{}
	s.OnScanStart(ctx, 3)
	s.OnFileStart(ctx, "/site/pkg/mod.py")
	s.OnFileComplete(ctx, "/site/pkg/mod.py", 2, time.Millisecond, nil)
	s.OnScanComplete(ctx, 3, time.Second, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "imports")
	c.OnCacheMiss(ctx, "imports")
	c.OnCacheSet(ctx, "imports", 1024)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Scan().(NoopScanHooks); !ok {
		t.Error("Scan() should return NoopScanHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}

	customScan := &testScanHooks{}
	SetScanHooks(customScan)
	if Scan() != customScan {
		t.Error("SetScanHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	Reset()
	if _, ok := Scan().(NoopScanHooks); !ok {
		t.Error("Reset() should restore NoopScanHooks")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Reset() should restore NoopCacheHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	defer Reset()

	custom := &testScanHooks{}
	SetScanHooks(custom)
	SetScanHooks(nil)

	if Scan() != custom {
		t.Error("SetScanHooks(nil) should be ignored")
	}
}

func TestLogHooks(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	h := NewLogHooks(log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel}))

	h.OnScanStart(ctx, 2)
	h.OnCacheMiss(ctx, "imports")
	h.OnCacheSet(ctx, "imports", 10)
	h.OnFileComplete(ctx, "/a.py", 1, time.Millisecond, nil)
	h.OnCacheHit(ctx, "imports")
	h.OnFileComplete(ctx, "/b.py", 0, time.Millisecond, errors.New("invalid syntax"))
	h.OnScanComplete(ctx, 2, time.Second, nil)

	hits, misses, failed := h.Stats()
	if hits != 1 || misses != 1 || failed != 1 {
		t.Errorf("Stats() = (%d, %d, %d), want (1, 1, 1)", hits, misses, failed)
	}

	out := buf.String()
	for _, want := range []string{"scan started", "file scanned", "path=/a.py", "scan finished"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

type testScanHooks struct{ NoopScanHooks }
type testCacheHooks struct{ NoopCacheHooks }
