package driver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"ember/internal/project"
	"ember/internal/source"
	"ember/internal/token"
)

// Current schema version - increment when TokenPayload format changes
const diskCacheSchemaVersion uint16 = 1

var diskCacheSalt = project.Sum(fmt.Appendf(nil, "ember-tokens-v%d", diskCacheSchemaVersion))

// DiskCache хранит валидированные токены по хешу содержимого файла.
// Thread-safe for concurrent access. Nil *DiskCache is a valid no-op cache.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// TokenPayload is the on-disk form of one validated token stream. Text is
// not stored: it is sliced from the file on load.
type TokenPayload struct {
	Schema      uint16
	ContentHash project.Digest
	Kinds       []uint8
	Starts      []uint32
	Ends        []uint32
}

// OpenDiskCache initializes and returns a disk cache at the standard location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return NewDiskCache(filepath.Join(base, app))
}

// NewDiskCache opens a cache rooted at dir, creating it if needed.
func NewDiskCache(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *DiskCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *DiskCache) pathFor(key project.Digest) string {
	// подкаталог "tokens" для удобства очистки
	return filepath.Join(c.dir, "tokens", key.String()+".mp")
}

// TokenCacheKey derives the cache key of file from its content hash.
func TokenCacheKey(file *source.File) project.Digest {
	return project.Combine(project.Digest(file.Hash), diskCacheSalt)
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key project.Digest, payload *TokenPayload) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		// после успешного Rename временного файла уже нет
		if rmErr := os.Remove(f.Name()); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) && err == nil {
			err = rmErr
		}
	}()

	if err = msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	err = os.Rename(f.Name(), p)
	return err
}

// Get reads and deserializes a payload from the disk cache.
func (c *DiskCache) Get(key project.Digest, out *TokenPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	return true, nil
}

// StoreTokens caches the validated stream of file.
func (c *DiskCache) StoreTokens(file *source.File, toks []token.Token) error {
	if c == nil {
		return nil
	}
	return c.Put(TokenCacheKey(file), tokensToPayload(file, toks))
}

// LoadTokens returns the cached stream of file. A stale or corrupt entry is
// a miss.
func (c *DiskCache) LoadTokens(file *source.File) ([]token.Token, bool) {
	if c == nil {
		return nil, false
	}
	var payload TokenPayload
	ok, err := c.Get(TokenCacheKey(file), &payload)
	if err != nil || !ok {
		return nil, false
	}
	return payloadToTokens(file, &payload)
}

func tokensToPayload(file *source.File, toks []token.Token) *TokenPayload {
	payload := &TokenPayload{
		Schema:      diskCacheSchemaVersion,
		ContentHash: project.Digest(file.Hash),
		Kinds:       make([]uint8, len(toks)),
		Starts:      make([]uint32, len(toks)),
		Ends:        make([]uint32, len(toks)),
	}
	for i, tok := range toks {
		payload.Kinds[i] = uint8(tok.Kind)
		payload.Starts[i] = tok.Span.Start
		payload.Ends[i] = tok.Span.End
	}
	return payload
}

func payloadToTokens(file *source.File, payload *TokenPayload) ([]token.Token, bool) {
	if payload.Schema != diskCacheSchemaVersion || payload.ContentHash != project.Digest(file.Hash) {
		return nil, false
	}
	n := len(payload.Kinds)
	if len(payload.Starts) != n || len(payload.Ends) != n {
		return nil, false
	}
	size := uint32(len(file.Content)) // #nosec G115 -- bounded in FileSet.Add
	toks := make([]token.Token, n)
	for i := range n {
		kind := token.Kind(payload.Kinds[i])
		start, end := payload.Starts[i], payload.Ends[i]
		if !kind.IsRefined() {
			return nil, false
		}
		if start > end || end > size {
			return nil, false
		}
		span := source.Span{File: file.ID, Start: start, End: end}
		toks[i] = token.Token{Kind: kind, Span: span, Text: file.Slice(span)}
	}
	return toks, true
}
