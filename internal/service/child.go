package service

import (
	"fmt"

	"github.com/mverhoef/opvang/internal/model"
	"github.com/mverhoef/opvang/internal/store"
)

// ChildService validates child records and resolves the referenced parent
// so every stored child carries an authoritative parent link.
type ChildService struct {
	children *store.ChildStore
	parents  *store.ParentStore
}

func NewChildService(cs *store.ChildStore, ps *store.ParentStore) *ChildService {
	return &ChildService{children: cs, parents: ps}
}

func (s *ChildService) Create(child *model.Child) (*model.Child, error) {
	if err := validatePerson(&child.Person); err != nil {
		return nil, err
	}
	parent, err := s.resolveParent(child)
	if err != nil {
		return nil, err
	}
	child.Parent = parent
	return s.children.Create(child)
}

func (s *ChildService) List() ([]model.Child, error) {
	return s.children.List()
}

func (s *ChildService) ListActive() ([]model.Child, error) {
	return s.children.ListByActive(true)
}

func (s *ChildService) ListInactive() ([]model.Child, error) {
	return s.children.ListByActive(false)
}

// ListByParent returns the parent's children. An unknown parent simply
// has no children; the listing does not probe for the parent's existence.
func (s *ChildService) ListByParent(parentID int64) ([]model.Child, error) {
	return s.children.ListByParent(parentID)
}

func (s *ChildService) GetByID(id int64) (*model.Child, error) {
	child, err := s.children.GetByID(id)
	if err != nil {
		return nil, err
	}
	if child == nil {
		return nil, ErrNotFound
	}
	return child, nil
}

func (s *ChildService) Update(id int64, child *model.Child) (*model.Child, error) {
	if err := validatePerson(&child.Person); err != nil {
		return nil, err
	}
	existing, err := s.children.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotFound
	}
	parent, err := s.resolveParent(child)
	if err != nil {
		return nil, err
	}
	child.Parent = parent
	return s.children.Update(id, child)
}

func (s *ChildService) Delete(id int64) error {
	existing, err := s.children.GetByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}
	return s.children.Delete(id)
}

func (s *ChildService) resolveParent(child *model.Child) (*model.Parent, error) {
	if child.Parent == nil || child.Parent.ID == 0 {
		return nil, fmt.Errorf("parent is required: %w", ErrInvalidParent)
	}
	parent, err := s.parents.GetByID(child.Parent.ID)
	if err != nil {
		return nil, err
	}
	if parent == nil {
		return nil, fmt.Errorf("parent %d does not exist: %w", child.Parent.ID, ErrInvalidParent)
	}
	return parent, nil
}
