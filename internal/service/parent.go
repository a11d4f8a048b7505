package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/mverhoef/opvang/internal/model"
	"github.com/mverhoef/opvang/internal/store"
)

// ParentService owns parent validation and the delete guard for parents
// that still have children or invoices attached.
type ParentService struct {
	parents  *store.ParentStore
	children *store.ChildStore
	invoices *store.InvoiceStore
}

func NewParentService(ps *store.ParentStore, cs *store.ChildStore, is *store.InvoiceStore) *ParentService {
	return &ParentService{parents: ps, children: cs, invoices: is}
}

func (s *ParentService) Create(parent *model.Parent) (*model.Parent, error) {
	if err := validatePerson(&parent.Person); err != nil {
		return nil, err
	}
	return s.parents.Create(parent)
}

func (s *ParentService) List() ([]model.Parent, error) {
	return s.parents.List()
}

func (s *ParentService) GetByID(id int64) (*model.Parent, error) {
	parent, err := s.parents.GetByID(id)
	if err != nil {
		return nil, err
	}
	if parent == nil {
		return nil, ErrNotFound
	}
	return parent, nil
}

func (s *ParentService) Update(id int64, parent *model.Parent) (*model.Parent, error) {
	if err := validatePerson(&parent.Person); err != nil {
		return nil, err
	}
	existing, err := s.parents.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotFound
	}
	return s.parents.Update(id, parent)
}

func (s *ParentService) Delete(id int64) error {
	existing, err := s.parents.GetByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}

	childCount, err := s.children.CountByParent(id)
	if err != nil {
		return fmt.Errorf("count children: %w", err)
	}
	if childCount > 0 {
		return fmt.Errorf("parent has %d children: %w", childCount, ErrHasDependents)
	}
	invoiceCount, err := s.invoices.CountByParent(id)
	if err != nil {
		return fmt.Errorf("count invoices: %w", err)
	}
	if invoiceCount > 0 {
		return fmt.Errorf("parent has %d invoices: %w", invoiceCount, ErrHasDependents)
	}

	return s.parents.Delete(id)
}

// validatePerson checks the shared person fields and fills the gender
// default when the client leaves it empty.
func validatePerson(p *model.Person) error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return fmt.Errorf("name is required: %w", ErrInvalidInput)
	}
	if p.Birthdate == "" {
		return fmt.Errorf("birthdate is required: %w", ErrInvalidInput)
	}
	if _, err := time.Parse("2006-01-02", p.Birthdate); err != nil {
		return fmt.Errorf("birthdate must be yyyy-mm-dd: %w", ErrInvalidInput)
	}
	if p.Gender == "" {
		p.Gender = model.GenderUnknown
	}
	return nil
}
