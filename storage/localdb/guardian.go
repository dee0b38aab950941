package localdb

import (
	"github.com/escolaexpress/backend/core/guardian"
)

type guardianRepository struct {
	db *DB
}

func NewGuardianRepository(db *DB) guardian.Repository {
	return &guardianRepository{db: db}
}

// guardianRecord is the storage shape of a Guardian: the core model hides
// the password hash from JSON, the blob must not.
type guardianRecord struct {
	guardian.Guardian
	PasswordHash []byte `json:"password_hash"`
}

func newGuardianRecord(g guardian.Guardian) guardianRecord {
	return guardianRecord{Guardian: g, PasswordHash: g.PasswordHash}
}

func (r guardianRecord) toGuardian() guardian.Guardian {
	g := r.Guardian
	g.PasswordHash = r.PasswordHash
	return g
}

func (repo *guardianRepository) decode(blob []byte) []guardianRecord {
	var records []guardianRecord
	repo.db.decodeInto(KeyGuardians, blob, &records)
	return records
}

func (repo *guardianRepository) AppendGuardian(g guardian.Guardian) (guardian.Guardian, error) {
	err := repo.db.update(KeyGuardians, func(blob []byte) (interface{}, error) {
		return append(repo.decode(blob), newGuardianRecord(g)), nil
	})
	if err != nil {
		return guardian.Guardian{}, err
	}
	return g, nil
}

func (repo *guardianRepository) QueryAllGuardians() ([]guardian.Guardian, error) {
	var records []guardianRecord
	repo.db.loadAll(KeyGuardians, &records)
	gs := make([]guardian.Guardian, 0, len(records))
	for _, r := range records {
		gs = append(gs, r.toGuardian())
	}
	return gs, nil
}

func (repo *guardianRepository) QueryGuardiansBySchool(schoolID string) ([]guardian.Guardian, error) {
	all, _ := repo.QueryAllGuardians()
	gs := make([]guardian.Guardian, 0, len(all))
	for _, g := range all {
		if g.SchoolID == schoolID {
			gs = append(gs, g)
		}
	}
	return gs, nil
}

func (repo *guardianRepository) GetGuardianByID(id string) (guardian.Guardian, error) {
	all, _ := repo.QueryAllGuardians()
	for _, g := range all {
		if g.ID == id {
			return g, nil
		}
	}
	return guardian.Guardian{}, guardian.ErrNotFound
}

func (repo *guardianRepository) DeleteGuardianByID(id string) error {
	return repo.db.update(KeyGuardians, func(blob []byte) (interface{}, error) {
		records := repo.decode(blob)
		kept := make([]guardianRecord, 0, len(records))
		for _, r := range records {
			if r.Guardian.ID != id {
				kept = append(kept, r)
			}
		}
		return kept, nil
	})
}
