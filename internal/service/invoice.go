package service

import (
	"fmt"
	"time"

	"github.com/mverhoef/opvang/internal/model"
	"github.com/mverhoef/opvang/internal/store"
)

// InvoiceService validates invoices and resolves the billed parent.
type InvoiceService struct {
	invoices *store.InvoiceStore
	parents  *store.ParentStore
}

func NewInvoiceService(is *store.InvoiceStore, ps *store.ParentStore) *InvoiceService {
	return &InvoiceService{invoices: is, parents: ps}
}

func (s *InvoiceService) Create(inv *model.Invoice) (*model.Invoice, error) {
	if err := s.validate(inv); err != nil {
		return nil, err
	}
	return s.invoices.Create(inv)
}

func (s *InvoiceService) List() ([]model.Invoice, error) {
	return s.invoices.List()
}

// ListByParent and ListUnpaidByParent answer with a list even for parent
// ids that do not exist; an unknown parent has no invoices.
func (s *InvoiceService) ListByParent(parentID int64) ([]model.Invoice, error) {
	return s.invoices.ListByParent(parentID)
}

func (s *InvoiceService) ListUnpaidByParent(parentID int64) ([]model.Invoice, error) {
	return s.invoices.ListUnpaidByParent(parentID)
}

func (s *InvoiceService) GetByID(id int64) (*model.Invoice, error) {
	inv, err := s.invoices.GetByID(id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, ErrNotFound
	}
	return inv, nil
}

func (s *InvoiceService) Update(id int64, inv *model.Invoice) (*model.Invoice, error) {
	existing, err := s.invoices.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotFound
	}
	if err := s.validate(inv); err != nil {
		return nil, err
	}
	return s.invoices.Update(id, inv)
}

// MarkPaid flips the paid flag without requiring the client to resend the
// full invoice.
func (s *InvoiceService) MarkPaid(id int64) (*model.Invoice, error) {
	existing, err := s.invoices.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotFound
	}
	existing.Paid = true
	return s.invoices.Update(id, existing)
}

func (s *InvoiceService) Delete(id int64) error {
	existing, err := s.invoices.GetByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}
	return s.invoices.Delete(id)
}

func (s *InvoiceService) validate(inv *model.Invoice) error {
	if inv.Amount < 0 {
		return fmt.Errorf("amount must not be negative: %w", ErrInvalidInput)
	}
	if inv.InvoiceDate != "" {
		if _, err := time.Parse("2006-01-02", inv.InvoiceDate); err != nil {
			return fmt.Errorf("invoice_date must be yyyy-mm-dd: %w", ErrInvalidInput)
		}
	}
	if inv.Parent == nil || inv.Parent.ID == 0 {
		return fmt.Errorf("parent is required: %w", ErrInvalidParent)
	}
	parent, err := s.parents.GetByID(inv.Parent.ID)
	if err != nil {
		return err
	}
	if parent == nil {
		return fmt.Errorf("parent %d does not exist: %w", inv.Parent.ID, ErrInvalidParent)
	}
	inv.Parent = parent
	return nil
}
