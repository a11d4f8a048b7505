package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/mverhoef/opvang/internal/model"
)

// childColumns hydrates a child and its parent in one pass. Aliases:
// persons c / children ch for the child, persons p / parents pr for the
// owning parent.
const childColumns = `c.id, c.name, c.birthdate, c.gender,
	ch.allergies, ch.dietary_preferences, ch.notes, ch.active, c.created_at, c.updated_at,
	` + parentColumns

const childFrom = ` FROM persons c
	JOIN children ch ON ch.person_id = c.id
	JOIN parents pr ON pr.person_id = ch.parent_id
	JOIN persons p ON p.id = pr.person_id`

func scanChild(rs rowScanner) (*model.Child, error) {
	var c model.Child
	var p model.Parent
	err := rs.Scan(
		&c.ID, &c.Name, &c.Birthdate, &c.Gender,
		&c.Allergies, &c.DietaryPreferences, &c.Notes, &c.Active, &c.CreatedAt, &c.UpdatedAt,
		&p.ID, &p.Name, &p.Birthdate, &p.Gender, &p.Email, &p.Phone, &p.Address, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.Parent = &p
	return &c, nil
}

type ChildStore struct {
	db *sql.DB
}

func NewChildStore(db *sql.DB) *ChildStore {
	return &ChildStore{db: db}
}

func (s *ChildStore) Create(child *model.Child) (*model.Child, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	result, err := tx.Exec(
		"INSERT INTO persons (dtype, name, birthdate, gender, created_at, updated_at) VALUES ('CHILD', ?, ?, ?, ?, ?)",
		child.Name, child.Birthdate, child.Gender, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert person: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	if _, err := tx.Exec(
		"INSERT INTO children (person_id, allergies, dietary_preferences, notes, active, parent_id) VALUES (?, ?, ?, ?, ?, ?)",
		id, child.Allergies, child.DietaryPreferences, child.Notes, child.Active, child.Parent.ID,
	); err != nil {
		return nil, fmt.Errorf("insert child: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return s.GetByID(id)
}

func (s *ChildStore) List() ([]model.Child, error) {
	return s.list("SELECT "+childColumns+childFrom+" ORDER BY c.id")
}

func (s *ChildStore) ListByParent(parentID int64) ([]model.Child, error) {
	return s.list("SELECT "+childColumns+childFrom+" WHERE ch.parent_id = ? ORDER BY c.id", parentID)
}

func (s *ChildStore) ListByActive(active bool) ([]model.Child, error) {
	return s.list("SELECT "+childColumns+childFrom+" WHERE ch.active = ? ORDER BY c.id", active)
}

func (s *ChildStore) list(query string, args ...any) ([]model.Child, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query children: %w", err)
	}
	defer rows.Close()

	var children []model.Child
	for rows.Next() {
		c, err := scanChild(rows)
		if err != nil {
			return nil, fmt.Errorf("scan child: %w", err)
		}
		children = append(children, *c)
	}
	return children, rows.Err()
}

func (s *ChildStore) GetByID(id int64) (*model.Child, error) {
	row := s.db.QueryRow("SELECT "+childColumns+childFrom+" WHERE c.id = ?", id)
	c, err := scanChild(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query child: %w", err)
	}
	return c, nil
}

func (s *ChildStore) Update(id int64, child *model.Child) (*model.Child, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		"UPDATE persons SET name = ?, birthdate = ?, gender = ?, updated_at = ? WHERE id = ? AND dtype = 'CHILD'",
		child.Name, child.Birthdate, child.Gender, time.Now().UTC(), id,
	); err != nil {
		return nil, fmt.Errorf("update person: %w", err)
	}

	if _, err := tx.Exec(
		"UPDATE children SET allergies = ?, dietary_preferences = ?, notes = ?, active = ?, parent_id = ? WHERE person_id = ?",
		child.Allergies, child.DietaryPreferences, child.Notes, child.Active, child.Parent.ID, id,
	); err != nil {
		return nil, fmt.Errorf("update child: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return s.GetByID(id)
}

// Delete removes the child; attendances cascade with it.
func (s *ChildStore) Delete(id int64) error {
	_, err := s.db.Exec("DELETE FROM persons WHERE id = ? AND dtype = 'CHILD'", id)
	if err != nil {
		return fmt.Errorf("delete child: %w", err)
	}
	return nil
}

// CountByParent reports how many children still reference a parent, used
// to refuse parent deletion.
func (s *ChildStore) CountByParent(parentID int64) (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM children WHERE parent_id = ?", parentID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count children by parent: %w", err)
	}
	return count, nil
}
