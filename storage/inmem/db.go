// Package inmem holds map-backed repositories used by tests and throwaway
// runs; they honor the same semantics as localdb, minus durability.
package inmem

import (
	"sync"

	"github.com/escolaexpress/backend/core/directory"
	"github.com/escolaexpress/backend/core/guardian"
	"github.com/escolaexpress/backend/core/pickup"
	"github.com/escolaexpress/backend/core/school"
)

type DB struct {
	mutex sync.RWMutex

	schools   []school.School
	guardians []guardian.Guardian
	queue     []pickup.Notification
	history   []pickup.Release
	ads       []directory.Ad
	partners  []directory.Partner
	tips      []directory.SecurityTip
}

func NewDB() *DB {
	return &DB{}
}

// Reset wipes every collection.
func (db *DB) Reset() error {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	db.schools = nil
	db.guardians = nil
	db.queue = nil
	db.history = nil
	db.ads = nil
	db.partners = nil
	db.tips = nil
	return nil
}
