package service

import (
	"github.com/mverhoef/opvang/internal/model"
	"github.com/mverhoef/opvang/internal/store"
)

// PersonService is the read-only view over everyone in the register,
// parents and children alike.
type PersonService struct {
	persons *store.PersonStore
}

func NewPersonService(ps *store.PersonStore) *PersonService {
	return &PersonService{persons: ps}
}

func (s *PersonService) List() ([]model.PersonSummary, error) {
	return s.persons.List()
}

func (s *PersonService) GetByID(id int64) (*model.PersonSummary, error) {
	p, err := s.persons.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNotFound
	}
	return p, nil
}
