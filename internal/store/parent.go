package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/mverhoef/opvang/internal/model"
)

// rowScanner abstracts *sql.Row and *sql.Rows for the scan helpers.
type rowScanner interface {
	Scan(dest ...any) error
}

// parentColumns is the select list shared by every query that hydrates a
// parent, aliased as persons p / parents pr.
const parentColumns = `p.id, p.name, p.birthdate, p.gender, pr.email, pr.phone, pr.address, p.created_at, p.updated_at`

func scanParent(rs rowScanner) (*model.Parent, error) {
	var p model.Parent
	err := rs.Scan(&p.ID, &p.Name, &p.Birthdate, &p.Gender, &p.Email, &p.Phone, &p.Address, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

type ParentStore struct {
	db *sql.DB
}

func NewParentStore(db *sql.DB) *ParentStore {
	return &ParentStore{db: db}
}

func (s *ParentStore) Create(parent *model.Parent) (*model.Parent, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	result, err := tx.Exec(
		"INSERT INTO persons (dtype, name, birthdate, gender, created_at, updated_at) VALUES ('PARENT', ?, ?, ?, ?, ?)",
		parent.Name, parent.Birthdate, parent.Gender, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert person: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	if _, err := tx.Exec(
		"INSERT INTO parents (person_id, email, phone, address) VALUES (?, ?, ?, ?)",
		id, parent.Email, parent.Phone, parent.Address,
	); err != nil {
		return nil, fmt.Errorf("insert parent: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return s.GetByID(id)
}

func (s *ParentStore) List() ([]model.Parent, error) {
	rows, err := s.db.Query(
		"SELECT " + parentColumns + " FROM persons p JOIN parents pr ON pr.person_id = p.id ORDER BY p.id",
	)
	if err != nil {
		return nil, fmt.Errorf("query parents: %w", err)
	}
	defer rows.Close()

	var parents []model.Parent
	for rows.Next() {
		p, err := scanParent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan parent: %w", err)
		}
		parents = append(parents, *p)
	}
	return parents, rows.Err()
}

func (s *ParentStore) GetByID(id int64) (*model.Parent, error) {
	row := s.db.QueryRow(
		"SELECT "+parentColumns+" FROM persons p JOIN parents pr ON pr.person_id = p.id WHERE p.id = ?",
		id,
	)
	p, err := scanParent(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query parent: %w", err)
	}
	return p, nil
}

func (s *ParentStore) Update(id int64, parent *model.Parent) (*model.Parent, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		"UPDATE persons SET name = ?, birthdate = ?, gender = ?, updated_at = ? WHERE id = ? AND dtype = 'PARENT'",
		parent.Name, parent.Birthdate, parent.Gender, time.Now().UTC(), id,
	); err != nil {
		return nil, fmt.Errorf("update person: %w", err)
	}

	if _, err := tx.Exec(
		"UPDATE parents SET email = ?, phone = ?, address = ? WHERE person_id = ?",
		parent.Email, parent.Phone, parent.Address, id,
	); err != nil {
		return nil, fmt.Errorf("update parent: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return s.GetByID(id)
}

// Delete removes the parent row; the persons cascade covers the subtype
// table. Referencing children and invoices are checked by the service,
// and the foreign keys back that up.
func (s *ParentStore) Delete(id int64) error {
	_, err := s.db.Exec("DELETE FROM persons WHERE id = ? AND dtype = 'PARENT'", id)
	if err != nil {
		return fmt.Errorf("delete parent: %w", err)
	}
	return nil
}
