package localdb

import (
	"github.com/escolaexpress/backend/core/school"
)

type schoolRepository struct {
	db *DB
}

func NewSchoolRepository(db *DB) school.Repository {
	return &schoolRepository{db: db}
}

func (repo *schoolRepository) decode(blob []byte) []school.School {
	var records []school.School
	repo.db.decodeInto(KeySchools, blob, &records)
	return records
}

func (repo *schoolRepository) AppendSchool(s school.School) (school.School, error) {
	err := repo.db.update(KeySchools, func(blob []byte) (interface{}, error) {
		return append(repo.decode(blob), s), nil
	})
	if err != nil {
		return school.School{}, err
	}
	return s, nil
}

func (repo *schoolRepository) QueryAllSchools() ([]school.School, error) {
	var records []school.School
	repo.db.loadAll(KeySchools, &records)
	if records == nil {
		records = []school.School{}
	}
	return records, nil
}

func (repo *schoolRepository) GetSchoolByID(id string) (school.School, error) {
	records, _ := repo.QueryAllSchools()
	for _, s := range records {
		if s.ID == id {
			return s, nil
		}
	}
	return school.School{}, school.ErrNotFound
}

func (repo *schoolRepository) UpdateSchool(s school.School) (school.School, error) {
	found := false
	err := repo.db.update(KeySchools, func(blob []byte) (interface{}, error) {
		records := repo.decode(blob)
		for i := range records {
			if records[i].ID == s.ID {
				records[i] = s
				found = true
				break
			}
		}
		if !found {
			return nil, school.ErrNotFound
		}
		return records, nil
	})
	if err != nil {
		return school.School{}, err
	}
	return s, nil
}
