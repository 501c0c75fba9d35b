package cache

import (
	"bufio"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// FileCache keeps one file per entry below dir, sharded by the first two
// hex characters of the key hash.
//
// An entry file holds the expiry in Unix nanoseconds (0 for none) on its
// first line, followed by the raw payload. Writes go through a temporary
// file and a rename, so a concurrent reader sees either the old or the new
// entry.
type FileCache struct {
	dir string
	now func() time.Time
}

// NewFileCache opens a file cache rooted at dir, creating it if needed.
func NewFileCache(dir string) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir, now: time.Now}, nil
}

// Dir returns the directory entries are stored in.
func (c *FileCache) Dir() string { return c.dir }

func (c *FileCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	path := c.path(key)
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	expires, payload, ok := decodeEntry(raw)
	if !ok || (!expires.IsZero() && c.now().After(expires)) {
		_ = os.Remove(path)
		return nil, false, nil
	}
	return payload, true, nil
}

func (c *FileCache) Set(_ context.Context, key string, data []byte, ttl time.Duration) error {
	var expires int64
	if ttl > 0 {
		expires = c.now().Add(ttl).UnixNano()
	}

	path := c.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".entry-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	w := bufio.NewWriter(tmp)
	w.WriteString(strconv.FormatInt(expires, 10))
	w.WriteByte('\n')
	w.Write(data)
	if err := w.Flush(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func (c *FileCache) Delete(_ context.Context, key string) error {
	if err := os.Remove(c.path(key)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (c *FileCache) Close() error { return nil }

// Clear removes every entry and shard directory and returns the number of
// entries removed. The cache directory itself is kept.
func (c *FileCache) Clear() (int, error) {
	shards, err := os.ReadDir(c.dir)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, shard := range shards {
		if !shard.IsDir() {
			continue
		}
		shardDir := filepath.Join(c.dir, shard.Name())
		entries, err := os.ReadDir(shardDir)
		if err != nil {
			return n, err
		}
		for _, e := range entries {
			if !e.IsDir() && filepath.Ext(e.Name()) == entryExt {
				n++
			}
		}
		if err := os.RemoveAll(shardDir); err != nil {
			return n, err
		}
	}
	return n, nil
}

const entryExt = ".entry"

func (c *FileCache) path(key string) string {
	sum := Hash([]byte(key))
	return filepath.Join(c.dir, sum[:2], sum[2:]+entryExt)
}

func decodeEntry(raw []byte) (expires time.Time, payload []byte, ok bool) {
	header, payload, found := bytes.Cut(raw, []byte{'\n'})
	if !found {
		return time.Time{}, nil, false
	}
	ns, err := strconv.ParseInt(string(header), 10, 64)
	if err != nil || ns < 0 {
		return time.Time{}, nil, false
	}
	if ns > 0 {
		expires = time.Unix(0, ns)
	}
	return expires, payload, true
}

var _ Cache = (*FileCache)(nil)
