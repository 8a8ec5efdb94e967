// Package modcache is the on-disk, content-addressed cache of analyzed
// modules: a SQLite-backed key/value store keyed on
// sha256(resolvedPath + source + checker version), value is the
// gob-encoded exported scope of that module.
package modcache

import (
	"bytes"
	"crypto/sha256"
	"database/sql"
	"encoding/gob"
	"encoding/hex"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/funvibe/funxy-check/internal/typesystem"
)

// Cache wraps a SQLite database holding analyzed-module payloads.
type Cache struct {
	db *sql.DB
}

// Open creates or opens the cache database at path and ensures its
// schema exists.
func Open(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("modcache: opening %s: %w", path, err)
	}
	const schema = `
CREATE TABLE IF NOT EXISTS module_cache (
	key TEXT PRIMARY KEY,
	payload BLOB NOT NULL,
	created_at INTEGER NOT NULL
)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("modcache: creating schema: %w", err)
	}
	return &Cache{db: db}, nil
}

// Close releases the underlying database handle.
func (c *Cache) Close() error {
	return c.db.Close()
}

func cacheKey(path, source, version string) string {
	sum := sha256.Sum256([]byte(path + "\x00" + source + "\x00" + version))
	return hex.EncodeToString(sum[:])
}

// Lookup returns the cached analyzed scope for (path, source, version),
// if present.
func (c *Cache) Lookup(path, source, version string) (typesystem.Instance, bool) {
	key := cacheKey(path, source, version)
	var payload []byte
	err := c.db.QueryRow(`SELECT payload FROM module_cache WHERE key = ?`, key).Scan(&payload)
	if err != nil {
		return typesystem.Instance{}, false
	}
	var entry cachedInstance
	dec := gob.NewDecoder(bytes.NewReader(payload))
	if err := dec.Decode(&entry); err != nil {
		return typesystem.Instance{}, false
	}
	return typesystem.Instance{ClassName: entry.ClassName, Attributes: entry.Attributes}, true
}

// Store persists the analyzed scope for (path, source, version).
func (c *Cache) Store(path, source, version string, instance typesystem.Type) error {
	inst, ok := instance.(typesystem.Instance)
	if !ok {
		return fmt.Errorf("modcache: can only cache Instance values, got %T", instance)
	}
	entry := cachedInstance{ClassName: inst.ClassName, Attributes: inst.Attributes}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(entry); err != nil {
		return fmt.Errorf("modcache: encoding: %w", err)
	}
	key := cacheKey(path, source, version)
	_, err := c.db.Exec(
		`INSERT INTO module_cache (key, payload, created_at) VALUES (?, ?, unixepoch())
		 ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, created_at = excluded.created_at`,
		key, buf.Bytes(),
	)
	return err
}

type cachedInstance struct {
	ClassName  string
	Attributes *typesystem.Scope
}
