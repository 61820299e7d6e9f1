// Package snapshot caches rendered conversation transcripts on disk so
// reopening a conversation paints instantly. The cache is disposable:
// every entry can be regenerated from the store, so removal failures are
// tolerable and absence is never an error.
package snapshot

import (
	"strings"

	"github.com/peterbourgon/diskv/v3"
)

const keyPrefix = "snapshot"

// Cache is a diskv-backed store of rendered transcripts keyed by
// conversation ID. Keys take the form "snapshot:<id>", which the transforms
// map to <dir>/snapshot/<id> on disk.
type Cache struct {
	d *diskv.Diskv
}

// Open returns a Cache rooted at dir. The directory is created lazily on
// first write.
func Open(dir string) *Cache {
	return &Cache{d: diskv.New(diskv.Options{
		BasePath:          dir,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	})}
}

// Key returns the cache key for a conversation ID.
func Key(id string) string {
	return keyPrefix + ":" + id
}

// Put stores the rendered transcript for a conversation.
func (c *Cache) Put(id string, rendered []byte) error {
	return c.d.Write(Key(id), rendered)
}

// Get returns the cached transcript, or an error if none is cached.
func (c *Cache) Get(id string) ([]byte, error) {
	return c.d.Read(Key(id))
}

// Has reports whether a snapshot is cached for the conversation.
func (c *Cache) Has(id string) bool {
	return c.d.Has(Key(id))
}

// Remove drops the cached snapshot for a conversation. A missing snapshot
// counts as success.
func (c *Cache) Remove(id string) error {
	if !c.d.Has(Key(id)) {
		return nil
	}
	return c.d.Erase(Key(id))
}

// Purge erases every cached snapshot.
func (c *Cache) Purge() error {
	return c.d.EraseAll()
}

// Count returns the number of cached snapshots. cancel stops the underlying
// key walk early; pass nil to walk everything.
func (c *Cache) Count(cancel <-chan struct{}) int {
	n := 0
	for range c.d.Keys(cancel) {
		n++
	}
	return n
}

// IDs returns the conversation IDs that currently have cached snapshots.
// cancel stops the underlying key walk early; pass nil to walk everything.
func (c *Cache) IDs(cancel <-chan struct{}) []string {
	var ids []string
	for key := range c.d.Keys(cancel) {
		if id, ok := strings.CutPrefix(key, keyPrefix+":"); ok {
			ids = append(ids, id)
		}
	}
	return ids
}

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, ":")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return strings.Join(append(pathKey.Path, pathKey.FileName), ":")
}
