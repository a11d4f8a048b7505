package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/mverhoef/opvang/internal/model"
)

const attendanceColumns = `a.id, a.check_in_time, a.check_out_time, a.created_at, a.updated_at,
	` + childColumns

const attendanceFrom = ` FROM attendances a
	JOIN persons c ON c.id = a.child_id
	JOIN children ch ON ch.person_id = c.id
	JOIN parents pr ON pr.person_id = ch.parent_id
	JOIN persons p ON p.id = pr.person_id`

func scanAttendance(rs rowScanner) (*model.Attendance, error) {
	var a model.Attendance
	var checkOut sql.NullTime
	var c model.Child
	var p model.Parent
	err := rs.Scan(
		&a.ID, &a.CheckInTime, &checkOut, &a.CreatedAt, &a.UpdatedAt,
		&c.ID, &c.Name, &c.Birthdate, &c.Gender,
		&c.Allergies, &c.DietaryPreferences, &c.Notes, &c.Active, &c.CreatedAt, &c.UpdatedAt,
		&p.ID, &p.Name, &p.Birthdate, &p.Gender, &p.Email, &p.Phone, &p.Address, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if checkOut.Valid {
		a.CheckOutTime = &checkOut.Time
	}
	c.Parent = &p
	a.Child = &c
	return &a, nil
}

type AttendanceStore struct {
	db *sql.DB
}

func NewAttendanceStore(db *sql.DB) *AttendanceStore {
	return &AttendanceStore{db: db}
}

func (s *AttendanceStore) Create(att *model.Attendance) (*model.Attendance, error) {
	now := time.Now().UTC()
	result, err := s.db.Exec(
		"INSERT INTO attendances (check_in_time, check_out_time, child_id, created_at, updated_at) VALUES (?, ?, ?, ?, ?)",
		att.CheckInTime.UTC(), nullableTime(att.CheckOutTime), att.Child.ID, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert attendance: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *AttendanceStore) List() ([]model.Attendance, error) {
	return s.list("SELECT "+attendanceColumns+attendanceFrom+" ORDER BY a.id")
}

func (s *AttendanceStore) ListByChild(childID int64) ([]model.Attendance, error) {
	return s.list("SELECT "+attendanceColumns+attendanceFrom+" WHERE a.child_id = ? ORDER BY a.id", childID)
}

func (s *AttendanceStore) list(query string, args ...any) ([]model.Attendance, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query attendances: %w", err)
	}
	defer rows.Close()

	var attendances []model.Attendance
	for rows.Next() {
		a, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("scan attendance: %w", err)
		}
		attendances = append(attendances, *a)
	}
	return attendances, rows.Err()
}

func (s *AttendanceStore) GetByID(id int64) (*model.Attendance, error) {
	row := s.db.QueryRow("SELECT "+attendanceColumns+attendanceFrom+" WHERE a.id = ?", id)
	a, err := scanAttendance(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query attendance: %w", err)
	}
	return a, nil
}

func (s *AttendanceStore) Update(id int64, att *model.Attendance) (*model.Attendance, error) {
	_, err := s.db.Exec(
		"UPDATE attendances SET check_in_time = ?, check_out_time = ?, child_id = ?, updated_at = ? WHERE id = ?",
		att.CheckInTime.UTC(), nullableTime(att.CheckOutTime), att.Child.ID, time.Now().UTC(), id,
	)
	if err != nil {
		return nil, fmt.Errorf("update attendance: %w", err)
	}
	return s.GetByID(id)
}

func (s *AttendanceStore) Delete(id int64) error {
	_, err := s.db.Exec("DELETE FROM attendances WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete attendance: %w", err)
	}
	return nil
}

func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC()
}
