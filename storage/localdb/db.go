// Package localdb is the Directory Store: every collection is one JSON blob
// under a fixed logical key, read and written whole, localStorage style. The
// blobs live in a single-table SQLite file so data survives restarts without
// a server database.
package localdb

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	_ "modernc.org/sqlite"

	"github.com/escolaexpress/backend/core"
)

// Collection keys.
const (
	KeySchools   = "schools"
	KeyGuardians = "guardian_profiles"
	KeyAds       = "global_ads"
	KeyPartners  = "partners_db"
	KeyTips      = "security_tips"
	KeyQueue     = "pickup_queue"
	KeyHistory   = "release_history"
)

var allKeys = []string{KeySchools, KeyGuardians, KeyAds, KeyPartners, KeyTips, KeyQueue, KeyHistory}

const schema = `
CREATE TABLE IF NOT EXISTS collections (
    key  TEXT PRIMARY KEY,
    blob TEXT NOT NULL
);`

type DB struct {
	sqlx   *sqlx.DB
	logger core.Logger
}

func Open(conf *core.Config, logger core.Logger) (*DB, error) {
	db, err := sqlx.Connect("sqlite", conf.Database.Path)
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}
	// the store is a single-writer design; serialize access at the pool
	db.SetMaxOpenConns(1)
	if _, err = db.Exec(schema); err != nil {
		return nil, errors.Wrap(err, "creating schema")
	}
	return &DB{sqlx: db, logger: logger}, nil
}

func (db *DB) Close() error {
	return db.sqlx.Close()
}

// Reset wipes every collection. Platform-admin only.
func (db *DB) Reset() error {
	if _, err := db.sqlx.Exec(`DELETE FROM collections`); err != nil {
		return errors.Wrap(err, "resetting collections")
	}
	return nil
}

// Count returns the number of records stored under a key.
func (db *DB) Count(key string) int {
	var raw []json.RawMessage
	db.loadAll(key, &raw)
	return len(raw)
}

// Keys lists every collection key the store manages.
func (db *DB) Keys() []string {
	return append([]string(nil), allKeys...)
}

// loadAll decodes the collection stored under key into dest, a pointer to a
// slice. A missing row and a corrupt blob both yield an empty collection:
// the problem is logged and never surfaced to callers.
func (db *DB) loadAll(key string, dest interface{}) {
	var blob string
	err := db.sqlx.Get(&blob, `SELECT blob FROM collections WHERE key = ?`, key)
	if err == sql.ErrNoRows {
		return
	}
	if err != nil {
		db.logf(key, err)
		return
	}
	db.decodeInto(key, []byte(blob), dest)
}

// saveAll serializes and persists the whole collection under key. Overwrite
// semantics: no partial update, no optimistic-lock check.
func (db *DB) saveAll(key string, records interface{}) error {
	blob, err := json.Marshal(records)
	if err != nil {
		return errors.Wrapf(err, "encoding %s", key)
	}
	if _, err = db.sqlx.Exec(upsert, key, string(blob)); err != nil {
		return errors.Wrapf(err, "saving %s", key)
	}
	return nil
}

const upsert = `
INSERT INTO collections (key, blob) VALUES (?, ?)
ON CONFLICT (key) DO UPDATE SET blob = excluded.blob`

// update hands fn the current raw blob (nil when the key is absent) and
// writes back the collection fn returns, all inside one transaction. Every
// read-modify-write in the store goes through here so a future multi-writer
// setup can change locking without touching call sites.
func (db *DB) update(key string, fn func(blob []byte) (interface{}, error)) error {
	tx, err := db.sqlx.Beginx()
	if err != nil {
		return errors.Wrap(err, "beginning update")
	}
	defer func() { _ = tx.Rollback() }()

	var cur []byte
	var blob string
	err = tx.Get(&blob, `SELECT blob FROM collections WHERE key = ?`, key)
	if err != nil && err != sql.ErrNoRows {
		return errors.Wrapf(err, "reading %s", key)
	}
	if err == nil {
		cur = []byte(blob)
	}

	records, err := fn(cur)
	if err != nil {
		return err
	}
	out, err := json.Marshal(records)
	if err != nil {
		return errors.Wrapf(err, "encoding %s", key)
	}
	if _, err = tx.Exec(upsert, key, string(out)); err != nil {
		return errors.Wrapf(err, "saving %s", key)
	}
	return errors.Wrap(tx.Commit(), "committing update")
}

// updatePair is update over two collections at once; the release workflow
// moves a record from the queue into the history log atomically.
func (db *DB) updatePair(keyA, keyB string, fn func(blobA, blobB []byte) (interface{}, interface{}, error)) error {
	tx, err := db.sqlx.Beginx()
	if err != nil {
		return errors.Wrap(err, "beginning update")
	}
	defer func() { _ = tx.Rollback() }()

	read := func(key string) ([]byte, error) {
		var blob string
		err := tx.Get(&blob, `SELECT blob FROM collections WHERE key = ?`, key)
		if err == sql.ErrNoRows {
			return nil, nil
		}
		if err != nil {
			return nil, errors.Wrapf(err, "reading %s", key)
		}
		return []byte(blob), nil
	}

	blobA, err := read(keyA)
	if err != nil {
		return err
	}
	blobB, err := read(keyB)
	if err != nil {
		return err
	}

	recordsA, recordsB, err := fn(blobA, blobB)
	if err != nil {
		return err
	}
	for _, kv := range []struct {
		key     string
		records interface{}
	}{{keyA, recordsA}, {keyB, recordsB}} {
		out, err := json.Marshal(kv.records)
		if err != nil {
			return errors.Wrapf(err, "encoding %s", kv.key)
		}
		if _, err = tx.Exec(upsert, kv.key, string(out)); err != nil {
			return errors.Wrapf(err, "saving %s", kv.key)
		}
	}
	return errors.Wrap(tx.Commit(), "committing update")
}

// decodeInto unmarshals a blob into dest, treating corrupt data as an empty
// collection. dest is reset on failure: a half-decoded collection must never
// leak to callers.
func (db *DB) decodeInto(key string, blob []byte, dest interface{}) {
	if len(blob) == 0 {
		return
	}
	if err := json.Unmarshal(blob, dest); err != nil {
		db.logf(key, err)
		_ = json.Unmarshal([]byte("null"), dest) // zero out any partial decode
	}
}

func (db *DB) logf(key string, err error) {
	if db.logger != nil {
		db.logger.Warn(fmt.Sprintf("localdb: treating %q as empty: %v", key, err), err)
	}
}
