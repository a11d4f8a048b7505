package store

import (
	"database/sql"
	"fmt"

	"github.com/mverhoef/opvang/internal/model"
)

// PersonStore is the read-only union view over the person hierarchy.
// Parents and children are created through their own stores.
type PersonStore struct {
	db *sql.DB
}

func NewPersonStore(db *sql.DB) *PersonStore {
	return &PersonStore{db: db}
}

func (s *PersonStore) List() ([]model.PersonSummary, error) {
	rows, err := s.db.Query("SELECT id, dtype, name, birthdate, gender FROM persons ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("query persons: %w", err)
	}
	defer rows.Close()

	var persons []model.PersonSummary
	for rows.Next() {
		var p model.PersonSummary
		if err := rows.Scan(&p.ID, &p.Type, &p.Name, &p.Birthdate, &p.Gender); err != nil {
			return nil, fmt.Errorf("scan person: %w", err)
		}
		persons = append(persons, p)
	}
	return persons, rows.Err()
}

func (s *PersonStore) GetByID(id int64) (*model.PersonSummary, error) {
	var p model.PersonSummary
	err := s.db.QueryRow(
		"SELECT id, dtype, name, birthdate, gender FROM persons WHERE id = ?", id,
	).Scan(&p.ID, &p.Type, &p.Name, &p.Birthdate, &p.Gender)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query person: %w", err)
	}
	return &p, nil
}
