package service

import (
	"fmt"

	"github.com/mverhoef/opvang/internal/model"
	"github.com/mverhoef/opvang/internal/store"
)

// AttendanceService validates attendance records against the child registry
// and keeps check-out times ordered after check-in.
type AttendanceService struct {
	attendances *store.AttendanceStore
	children    *store.ChildStore
}

func NewAttendanceService(as *store.AttendanceStore, cs *store.ChildStore) *AttendanceService {
	return &AttendanceService{attendances: as, children: cs}
}

func (s *AttendanceService) Create(att *model.Attendance) (*model.Attendance, error) {
	if err := s.validate(att); err != nil {
		return nil, err
	}
	return s.attendances.Create(att)
}

func (s *AttendanceService) List() ([]model.Attendance, error) {
	return s.attendances.List()
}

func (s *AttendanceService) ListByChild(childID int64) ([]model.Attendance, error) {
	child, err := s.children.GetByID(childID)
	if err != nil {
		return nil, err
	}
	if child == nil {
		return nil, ErrNotFound
	}
	return s.attendances.ListByChild(childID)
}

func (s *AttendanceService) GetByID(id int64) (*model.Attendance, error) {
	att, err := s.attendances.GetByID(id)
	if err != nil {
		return nil, err
	}
	if att == nil {
		return nil, ErrNotFound
	}
	return att, nil
}

func (s *AttendanceService) Update(id int64, att *model.Attendance) (*model.Attendance, error) {
	existing, err := s.attendances.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotFound
	}
	if err := s.validate(att); err != nil {
		return nil, err
	}
	return s.attendances.Update(id, att)
}

func (s *AttendanceService) Delete(id int64) error {
	existing, err := s.attendances.GetByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}
	return s.attendances.Delete(id)
}

func (s *AttendanceService) validate(att *model.Attendance) error {
	if att.CheckInTime.IsZero() {
		return fmt.Errorf("check_in_time is required: %w", ErrInvalidInput)
	}
	if att.CheckOutTime != nil && att.CheckOutTime.Before(att.CheckInTime) {
		return fmt.Errorf("check_out_time before check_in_time: %w", ErrInvalidInput)
	}
	if att.Child == nil || att.Child.ID == 0 {
		return fmt.Errorf("child is required: %w", ErrInvalidChild)
	}
	child, err := s.children.GetByID(att.Child.ID)
	if err != nil {
		return err
	}
	if child == nil {
		return fmt.Errorf("child %d does not exist: %w", att.Child.ID, ErrInvalidChild)
	}
	att.Child = child
	return nil
}
