package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/lingqianapp/lingqian/pkg/cache"
	"github.com/lingqianapp/lingqian/pkg/config"
)

func testLogger() *log.Logger {
	return newLogger(&bytes.Buffer{}, log.ErrorLevel)
}

func TestBuildCacheDisabled(t *testing.T) {
	c, err := buildCache(context.Background(), config.CacheConfig{}, testLogger())
	if err != nil {
		t.Fatalf("buildCache error: %v", err)
	}
	defer c.Close()

	if _, ok := c.(*cache.NullCache); !ok {
		t.Errorf("got %T, want NullCache", c)
	}
}

func TestBuildCacheFile(t *testing.T) {
	cfg := config.CacheConfig{Dir: t.TempDir()}
	c, err := buildCache(context.Background(), cfg, testLogger())
	if err != nil {
		t.Fatalf("buildCache error: %v", err)
	}
	defer c.Close()

	if _, ok := c.(*cache.FileCache); !ok {
		t.Errorf("got %T, want FileCache", c)
	}
}

func TestBuildKeyer(t *testing.T) {
	plain := buildKeyer(config.CacheConfig{})
	scoped := buildKeyer(config.CacheConfig{Namespace: "prod:"})

	key := plain.SignKey("zh", "qian-01")
	if key != "sign:zh:qian-01" {
		t.Errorf("plain key = %q", key)
	}
	if got := scoped.SignKey("zh", "qian-01"); got != "prod:"+key {
		t.Errorf("scoped key = %q, want prefix prod:", got)
	}
}

func TestBuildHistoryMemory(t *testing.T) {
	h, err := buildHistory(context.Background(), config.HistoryConfig{}, testLogger())
	if err != nil {
		t.Fatalf("buildHistory error: %v", err)
	}
	defer h.Close(context.Background())

	if h == nil {
		t.Fatal("buildHistory returned nil store")
	}
}
