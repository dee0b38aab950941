package inmem

import (
	"github.com/escolaexpress/backend/core/pickup"
)

type pickupRepository struct {
	db *DB
}

func NewPickupRepository(db *DB) pickup.Repository {
	return &pickupRepository{db: db}
}

func (repo *pickupRepository) AppendNotification(n pickup.Notification) (pickup.Notification, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	repo.db.queue = append(repo.db.queue, n)
	return n, nil
}

func (repo *pickupRepository) QueryQueueBySchool(schoolID string) ([]pickup.Notification, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	queue := make([]pickup.Notification, 0)
	for _, n := range repo.db.queue {
		if n.SchoolID == schoolID {
			queue = append(queue, n)
		}
	}
	return queue, nil
}

func (repo *pickupRepository) GetNotificationByID(id string) (pickup.Notification, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	for _, n := range repo.db.queue {
		if n.ID == id {
			return n, nil
		}
	}
	return pickup.Notification{}, pickup.ErrNotFound
}

func (repo *pickupRepository) ReplaceNotification(n pickup.Notification) (pickup.Notification, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	for i := range repo.db.queue {
		if repo.db.queue[i].ID == n.ID {
			repo.db.queue[i] = n
			return n, nil
		}
	}
	return pickup.Notification{}, pickup.ErrNotFound
}

func (repo *pickupRepository) ReleaseNotification(id string, rel pickup.Release) (pickup.Release, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	kept := make([]pickup.Notification, 0, len(repo.db.queue))
	found := false
	for _, n := range repo.db.queue {
		if n.ID == id {
			found = true
			continue
		}
		kept = append(kept, n)
	}
	if !found {
		return pickup.Release{}, pickup.ErrNotFound
	}
	repo.db.queue = kept
	repo.db.history = append([]pickup.Release{rel}, repo.db.history...)
	return rel, nil
}

func (repo *pickupRepository) QueryHistoryBySchool(schoolID string) ([]pickup.Release, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	hist := make([]pickup.Release, 0)
	for _, rel := range repo.db.history {
		if rel.SchoolID == schoolID {
			hist = append(hist, rel)
		}
	}
	return hist, nil
}
