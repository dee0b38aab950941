package localdb

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
	var records []directory.Ad
	repo.db.loadAll(KeyAds, &records)
	if records == nil {
		records = []directory.Ad{}
	}
	return records, nil
}

func (repo *directoryRepository) SaveAds(ads []directory.Ad) error {
	return repo.db.saveAll(KeyAds, ads)
}

func (repo *directoryRepository) QueryAllPartners() ([]directory.Partner, error) {
	var records []directory.Partner
	repo.db.loadAll(KeyPartners, &records)
	if records == nil {
		records = []directory.Partner{}
	}
	return records, nil
}

func (repo *directoryRepository) SavePartners(partners []directory.Partner) error {
	return repo.db.saveAll(KeyPartners, partners)
}

func (repo *directoryRepository) QueryAllSecurityTips() ([]directory.SecurityTip, error) {
	var records []directory.SecurityTip
	repo.db.loadAll(KeyTips, &records)
	if records == nil {
		records = []directory.SecurityTip{}
	}
	return records, nil
}

func (repo *directoryRepository) SaveSecurityTips(tips []directory.SecurityTip) error {
	return repo.db.saveAll(KeyTips, tips)
}
