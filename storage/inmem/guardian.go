package inmem

import (
	"github.com/escolaexpress/backend/core/guardian"
)

type guardianRepository struct {
	db *DB
}

func NewGuardianRepository(db *DB) guardian.Repository {
	return &guardianRepository{db: db}
}

func (repo *guardianRepository) AppendGuardian(g guardian.Guardian) (guardian.Guardian, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	repo.db.guardians = append(repo.db.guardians, g)
	return g, nil
}

func (repo *guardianRepository) QueryAllGuardians() ([]guardian.Guardian, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return append([]guardian.Guardian(nil), repo.db.guardians...), nil
}

func (repo *guardianRepository) QueryGuardiansBySchool(schoolID string) ([]guardian.Guardian, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	gs := make([]guardian.Guardian, 0)
	for _, g := range repo.db.guardians {
		if g.SchoolID == schoolID {
			gs = append(gs, g)
		}
	}
	return gs, nil
}

func (repo *guardianRepository) GetGuardianByID(id string) (guardian.Guardian, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	for _, g := range repo.db.guardians {
		if g.ID == id {
			return g, nil
		}
	}
	return guardian.Guardian{}, guardian.ErrNotFound
}

func (repo *guardianRepository) DeleteGuardianByID(id string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	kept := make([]guardian.Guardian, 0, len(repo.db.guardians))
	for _, g := range repo.db.guardians {
		if g.ID != id {
			kept = append(kept, g)
		}
	}
	repo.db.guardians = kept
	return nil
}
