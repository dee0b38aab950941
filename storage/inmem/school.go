package inmem

import (
	"github.com/escolaexpress/backend/core/school"
)

type schoolRepository struct {
	db *DB
}

func NewSchoolRepository(db *DB) school.Repository {
	return &schoolRepository{db: db}
}

func (repo *schoolRepository) AppendSchool(s school.School) (school.School, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	repo.db.schools = append(repo.db.schools, s)
	return s, nil
}

func (repo *schoolRepository) QueryAllSchools() ([]school.School, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return append([]school.School(nil), repo.db.schools...), nil
}

func (repo *schoolRepository) GetSchoolByID(id string) (school.School, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	for _, s := range repo.db.schools {
		if s.ID == id {
			return s, nil
		}
	}
	return school.School{}, school.ErrNotFound
}

func (repo *schoolRepository) UpdateSchool(s school.School) (school.School, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	for i := range repo.db.schools {
		if repo.db.schools[i].ID == s.ID {
			repo.db.schools[i] = s
			return s, nil
		}
	}
	return school.School{}, school.ErrNotFound
}
