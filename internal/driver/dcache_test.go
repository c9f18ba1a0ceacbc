package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"ember/internal/lexer"
	"ember/internal/project"
	"ember/internal/source"
)

func TestDiskCacheRoundTrip(t *testing.T) {
	cache, err := NewDiskCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("a.em", []byte("let x = 1.5e3;")))
	toks, err := lexer.Lex(file, lexer.Options{})
	if err != nil {
		t.Fatal(err)
	}

	if _, ok := cache.LoadTokens(file); ok {
		t.Fatal("empty cache must miss")
	}
	if err := cache.StoreTokens(file, toks); err != nil {
		t.Fatalf("StoreTokens: %v", err)
	}
	got, ok := cache.LoadTokens(file)
	if !ok {
		t.Fatal("expected cache hit")
	}
	if len(got) != len(toks) {
		t.Fatalf("got %d tokens, want %d", len(got), len(toks))
	}
	for i := range toks {
		if got[i] != toks[i] {
			t.Errorf("token %d: got %v, want %v", i, got[i], toks[i])
		}
	}

	// тот же текст под другим FileID: span переносится на новый файл
	other := fs.Get(fs.AddVirtual("b.em", []byte("let x = 1.5e3;")))
	moved, ok := cache.LoadTokens(other)
	if !ok || moved[0].Span.File != other.ID {
		t.Fatalf("expected hit re-anchored to file %d, got %+v", other.ID, moved)
	}

	changed := fs.Get(fs.AddVirtual("a.em", []byte("let y = 2;")))
	if _, ok := cache.LoadTokens(changed); ok {
		t.Fatal("changed content must miss")
	}
}

func TestDiskCacheRejectsCorruptEntries(t *testing.T) {
	cache, err := NewDiskCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("a.em", []byte("1;")))
	key := TokenCacheKey(file)

	bad := &TokenPayload{
		Schema:      diskCacheSchemaVersion,
		ContentHash: project.Digest(file.Hash),
		Kinds:       []uint8{7},
		Starts:      []uint32{0},
		Ends:        []uint32{99},
	}
	if err := cache.Put(key, bad); err != nil {
		t.Fatal(err)
	}
	if _, ok := cache.LoadTokens(file); ok {
		t.Fatal("out-of-range span must be rejected")
	}

	if err := os.WriteFile(cache.pathFor(key), []byte("not msgpack"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, ok := cache.LoadTokens(file); ok {
		t.Fatal("garbage entry must be a miss")
	}
}

func TestNilDiskCache(t *testing.T) {
	var cache *DiskCache
	if err := cache.StoreTokens(nil, nil); err != nil {
		t.Fatal(err)
	}
	if _, ok := cache.LoadTokens(nil); ok {
		t.Fatal("nil cache must miss")
	}
	if cache.Dir() != "" {
		t.Fatal("nil cache has no dir")
	}
}

func TestRunFilesUsesCache(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.em")
	if err := os.WriteFile(path, []byte("1; True;"), 0o600); err != nil {
		t.Fatal(err)
	}
	cache, err := NewDiskCache(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatal(err)
	}

	first, err := RunFiles(context.Background(), []string{path}, Options{Cache: cache})
	if err != nil {
		t.Fatal(err)
	}
	if first.Files[0].CacheHit {
		t.Fatal("first run cannot hit the cache")
	}
	second, err := RunFiles(context.Background(), []string{path}, Options{Cache: cache})
	if err != nil {
		t.Fatal(err)
	}
	if !second.Files[0].CacheHit {
		t.Fatal("second run must hit the cache")
	}
	if len(second.Files[0].Values) != 2 {
		t.Fatalf("cached tokens evaluated to %v", second.Files[0].Values)
	}
}
