package inmem

import (
	"github.com/escolaexpress/backend/core/directory"
)

type directoryRepository struct {
	db *DB
}

func NewDirectoryRepository(db *DB) directory.Repository {
	return &directoryRepository{db: db}
}

func (repo *directoryRepository) QueryAllAds() ([]directory.Ad, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return append([]directory.Ad{}, repo.db.ads...), nil
}

func (repo *directoryRepository) SaveAds(ads []directory.Ad) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	repo.db.ads = append([]directory.Ad(nil), ads...)
	return nil
}

func (repo *directoryRepository) QueryAllPartners() ([]directory.Partner, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return append([]directory.Partner{}, repo.db.partners...), nil
}

func (repo *directoryRepository) SavePartners(partners []directory.Partner) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	repo.db.partners = append([]directory.Partner(nil), partners...)
	return nil
}

func (repo *directoryRepository) QueryAllSecurityTips() ([]directory.SecurityTip, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return append([]directory.SecurityTip{}, repo.db.tips...), nil
}

func (repo *directoryRepository) SaveSecurityTips(tips []directory.SecurityTip) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	repo.db.tips = append([]directory.SecurityTip(nil), tips...)
	return nil
}
