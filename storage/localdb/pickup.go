package localdb

import (
	"github.com/escolaexpress/backend/core/pickup"
)

type pickupRepository struct {
	db *DB
}

func NewPickupRepository(db *DB) pickup.Repository {
	return &pickupRepository{db: db}
}

func (repo *pickupRepository) decodeQueue(blob []byte) []pickup.Notification {
	var records []pickup.Notification
	repo.db.decodeInto(KeyQueue, blob, &records)
	return records
}

func (repo *pickupRepository) decodeHistory(blob []byte) []pickup.Release {
	var records []pickup.Release
	repo.db.decodeInto(KeyHistory, blob, &records)
	return records
}

func (repo *pickupRepository) AppendNotification(n pickup.Notification) (pickup.Notification, error) {
	err := repo.db.update(KeyQueue, func(blob []byte) (interface{}, error) {
		return append(repo.decodeQueue(blob), n), nil
	})
	if err != nil {
		return pickup.Notification{}, err
	}
	return n, nil
}

func (repo *pickupRepository) QueryQueueBySchool(schoolID string) ([]pickup.Notification, error) {
	var records []pickup.Notification
	repo.db.loadAll(KeyQueue, &records)
	queue := make([]pickup.Notification, 0, len(records))
	for _, n := range records {
		if n.SchoolID == schoolID {
			queue = append(queue, n)
		}
	}
	return queue, nil
}

func (repo *pickupRepository) GetNotificationByID(id string) (pickup.Notification, error) {
	var records []pickup.Notification
	repo.db.loadAll(KeyQueue, &records)
	for _, n := range records {
		if n.ID == id {
			return n, nil
		}
	}
	return pickup.Notification{}, pickup.ErrNotFound
}

func (repo *pickupRepository) ReplaceNotification(n pickup.Notification) (pickup.Notification, error) {
	found := false
	err := repo.db.update(KeyQueue, func(blob []byte) (interface{}, error) {
		records := repo.decodeQueue(blob)
		for i := range records {
			if records[i].ID == n.ID {
				records[i] = n
				found = true
				break
			}
		}
		if !found {
			return nil, pickup.ErrNotFound
		}
		return records, nil
	})
	if err != nil {
		return pickup.Notification{}, err
	}
	return n, nil
}

// ReleaseNotification moves the entry out of the queue and prepends the
// release record to the history log in one transaction.
func (repo *pickupRepository) ReleaseNotification(id string, rel pickup.Release) (pickup.Release, error) {
	err := repo.db.updatePair(KeyQueue, KeyHistory, func(queueBlob, histBlob []byte) (interface{}, interface{}, error) {
		queue := repo.decodeQueue(queueBlob)
		kept := make([]pickup.Notification, 0, len(queue))
		found := false
		for _, n := range queue {
			if n.ID == id {
				found = true
				continue
			}
			kept = append(kept, n)
		}
		if !found {
			return nil, nil, pickup.ErrNotFound
		}
		hist := append([]pickup.Release{rel}, repo.decodeHistory(histBlob)...)
		return kept, hist, nil
	})
	if err != nil {
		return pickup.Release{}, err
	}
	return rel, nil
}

func (repo *pickupRepository) QueryHistoryBySchool(schoolID string) ([]pickup.Release, error) {
	var records []pickup.Release
	repo.db.loadAll(KeyHistory, &records)
	hist := make([]pickup.Release, 0, len(records))
	for _, rel := range records {
		if rel.SchoolID == schoolID {
			hist = append(hist, rel)
		}
	}
	return hist, nil
}
