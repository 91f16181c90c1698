package cache

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestFileCacheRoundtrip(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}
	defer c.Close()

	ctx := context.Background()

	if _, found, err := c.Get(ctx, "missing"); err != nil || found {
		t.Errorf("Get(missing) = found=%v err=%v, want miss", found, err)
	}

	want := []byte(`{"title":"Service Health"}`)
	if err := c.Set(ctx, "doc", want, 0); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	got, found, err := c.Get(ctx, "doc")
	if err != nil || !found {
		t.Fatalf("Get() = found=%v err=%v", found, err)
	}
	if string(got) != string(want) {
		t.Errorf("Get() = %q, want %q", got, want)
	}

	if err := c.Delete(ctx, "doc"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if _, found, _ := c.Get(ctx, "doc"); found {
		t.Error("Get() after Delete() should miss")
	}
}

func TestFileCacheExpiration(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	ctx := context.Background()
	if err := c.Set(ctx, "ephemeral", []byte("x"), time.Millisecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(10 * time.Millisecond)

	if _, found, _ := c.Get(ctx, "ephemeral"); found {
		t.Error("expired entry should be a miss")
	}
}

func TestFileCacheSetLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	ctx := context.Background()
	for _, key := range []string{"a", "b", "a"} {
		if err := c.Set(ctx, key, []byte("payload"), 0); err != nil {
			t.Fatal(err)
		}
	}

	var files []string
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		files = append(files, d.Name())
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 2 {
		t.Fatalf("files = %v, want one entry per key", files)
	}
	for _, name := range files {
		if !strings.HasSuffix(name, ".json") {
			t.Errorf("stray file %q left behind", name)
		}
	}
}

func TestFileCacheDeleteMissing(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	if err := c.Delete(context.Background(), "never-set"); err != nil {
		t.Errorf("Delete(missing) error: %v", err)
	}
}

func TestNullCache(t *testing.T) {
	c := NewNullCache()
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatal(err)
	}
	if _, found, err := c.Get(ctx, "k"); found || err != nil {
		t.Errorf("null cache should never hit, found=%v err=%v", found, err)
	}
}

func TestKeyerDeterminism(t *testing.T) {
	k := NewDefaultKeyer()

	opts := DashboardKeyOpts{DefaultsHash: "abc", UID: "svc", Pretty: true, SchemaVersion: 39}
	if k.DashboardKey("h1", opts) != k.DashboardKey("h1", opts) {
		t.Error("equal inputs must produce equal keys")
	}
	if k.DashboardKey("h1", opts) == k.DashboardKey("h2", opts) {
		t.Error("different tree hashes must produce different keys")
	}
	if k.DashboardKey("h1", opts) == k.DashboardKey("h1", DashboardKeyOpts{DefaultsHash: "abc", UID: "svc", SchemaVersion: 39}) {
		t.Error("pretty flag must be part of the key")
	}

	if !strings.HasPrefix(k.TreeKey("h1"), "tree:") {
		t.Errorf("TreeKey() = %q, want tree: prefix", k.TreeKey("h1"))
	}
	if !strings.HasPrefix(k.DashboardKey("h1", opts), "dashboard:") {
		t.Errorf("DashboardKey() = %q, want dashboard: prefix", k.DashboardKey("h1", opts))
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "project:billing:")

	got := scoped.TreeKey("h1")
	if !strings.HasPrefix(got, "project:billing:") {
		t.Errorf("scoped key = %q, want prefix", got)
	}
	if !strings.HasSuffix(got, inner.TreeKey("h1")) {
		t.Error("scoped key should wrap the inner key")
	}
}

func TestHash(t *testing.T) {
	h := Hash([]byte("abc"))
	if len(h) != 64 {
		t.Errorf("Hash() length = %d, want 64", len(h))
	}
	if h != Hash([]byte("abc")) {
		t.Error("Hash() must be deterministic")
	}
	if h == Hash([]byte("abd")) {
		t.Error("different inputs must hash differently")
	}
}

func TestRetryWithBackoff(t *testing.T) {
	t.Run("permanent error returns immediately", func(t *testing.T) {
		calls := 0
		err := RetryWithBackoff(context.Background(), func() error {
			calls++
			return errors.New("permanent")
		})
		if err == nil || calls != 1 {
			t.Errorf("calls = %d, err = %v", calls, err)
		}
	})

	t.Run("retryable error retries", func(t *testing.T) {
		calls := 0
		err := RetryWithBackoff(context.Background(), func() error {
			calls++
			if calls < 2 {
				return Retryable(errors.New("transient"))
			}
			return nil
		})
		if err != nil || calls != 2 {
			t.Errorf("calls = %d, err = %v", calls, err)
		}
	})
}
