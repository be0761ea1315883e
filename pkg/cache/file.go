package cache

import (
	"bytes"
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const entryExt = ".entry"

// FileCache stores entries on disk under dir.
//
// Keys produced by [DefaultKeyer] end in "kind:hash" ("layout:", "artifact:"),
// possibly behind a [ScopedKeyer] prefix. The kind selects a subdirectory, so
// refined layouts and rendered artifacts can be inspected or removed
// separately. Within a kind, entries fan out by the first two hex digits of
// the key hash.
//
// Each file holds one header line with the expiry as Unix nanoseconds (0 for
// none) followed by the raw payload. Writes go through a temporary file and a
// rename so a reader never sees a half-written entry.
type FileCache struct {
	dir string
}

// NewFileCache creates a file-based cache rooted at dir, creating it if needed.
func NewFileCache(dir string) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

// Get implements [Cache]. Expired or unreadable entries are removed and
// reported as misses.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path := c.path(key)

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	data, expires, ok := decodeEntry(raw)
	if !ok || (!expires.IsZero() && time.Now().After(expires)) {
		_ = os.Remove(path)
		return nil, false, nil
	}
	return data, true, nil
}

// Set implements [Cache].
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	var expires int64
	if ttl > 0 {
		expires = time.Now().Add(ttl).UnixNano()
	}

	path := c.path(key)
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	header := strconv.FormatInt(expires, 10) + "\n"
	if _, err := tmp.WriteString(header); err != nil {
		tmp.Close()
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Delete implements [Cache].
func (c *FileCache) Delete(ctx context.Context, key string) error {
	err := os.Remove(c.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Dir returns the cache root directory.
func (c *FileCache) Dir() string { return c.dir }

// Clear removes every entry and prunes directories left empty.
// It returns the number of entries removed.
func (c *FileCache) Clear() (int, error) {
	count := 0
	var dirs []string
	err := filepath.WalkDir(c.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) && path == c.dir {
				return fs.SkipDir
			}
			return err
		}
		if d.IsDir() {
			if path != c.dir {
				dirs = append(dirs, path)
			}
			return nil
		}
		if filepath.Ext(path) != entryExt {
			return nil
		}
		if err := os.Remove(path); err != nil {
			return err
		}
		count++
		return nil
	})
	if err != nil {
		return count, err
	}
	// Deepest first; removal fails harmlessly on directories with foreign files.
	for i := len(dirs) - 1; i >= 0; i-- {
		_ = os.Remove(dirs[i])
	}
	return count, nil
}

// Close implements [Cache]. It does nothing for a file cache.
func (c *FileCache) Close() error {
	return nil
}

// path maps key to kind/xx/rest.entry, where kind is the segment before the
// last colon.
func (c *FileCache) path(key string) string {
	kind := "misc"
	if i := strings.LastIndexByte(key, ':'); i > 0 {
		kind = key[strings.LastIndexByte(key[:i], ':')+1 : i]
	}
	sum := Hash([]byte(key))
	return filepath.Join(c.dir, kind, sum[:2], sum[2:]+entryExt)
}

// decodeEntry splits a stored file into payload and expiry.
func decodeEntry(raw []byte) ([]byte, time.Time, bool) {
	header, data, found := bytes.Cut(raw, []byte{'\n'})
	if !found {
		return nil, time.Time{}, false
	}
	nanos, err := strconv.ParseInt(string(header), 10, 64)
	if err != nil || nanos < 0 {
		return nil, time.Time{}, false
	}
	if nanos == 0 {
		return data, time.Time{}, true
	}
	return data, time.Unix(0, nanos), true
}

var _ Cache = (*FileCache)(nil)
