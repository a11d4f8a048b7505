package service

import (
	"errors"
	"testing"

	"github.com/mverhoef/opvang/internal/model"
)

func TestParentCreateDefaultsGender(t *testing.T) {
	svc := setupServices(t)

	parent, err := svc.parents.Create(&model.Parent{
		Person: model.Person{Name: "Piet", Birthdate: "1980-02-02"},
	})
	if err != nil {
		t.Fatalf("create parent: %v", err)
	}
	if parent.Gender != model.GenderUnknown {
		t.Errorf("gender = %q, want %q", parent.Gender, model.GenderUnknown)
	}
}

func TestParentCreateValidation(t *testing.T) {
	svc := setupServices(t)

	_, err := svc.parents.Create(&model.Parent{Person: model.Person{Name: "   "}})
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("blank name: err = %v, want ErrInvalidInput", err)
	}

	_, err = svc.parents.Create(&model.Parent{
		Person: model.Person{Name: "Piet", Birthdate: "02-02-1980"},
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("bad birthdate: err = %v, want ErrInvalidInput", err)
	}

	_, err = svc.parents.Create(&model.Parent{Person: model.Person{Name: "Piet"}})
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("missing birthdate: err = %v, want ErrInvalidInput", err)
	}
}

func TestParentGetByIDNotFound(t *testing.T) {
	svc := setupServices(t)

	_, err := svc.parents.GetByID(42)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestParentUpdateUnknown(t *testing.T) {
	svc := setupServices(t)

	_, err := svc.parents.Update(42, &model.Parent{
		Person: model.Person{Name: "Piet", Birthdate: "1980-02-02"},
	})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestParentDeleteWithChildren(t *testing.T) {
	svc := setupServices(t)

	parent := createParent(t, svc, "Jane")
	child := createChild(t, svc, parent, "Tom")

	err := svc.parents.Delete(parent.ID)
	if !errors.Is(err, ErrHasDependents) {
		t.Fatalf("err = %v, want ErrHasDependents", err)
	}

	// Removing the child clears the guard
	if err := svc.children.Delete(child.ID); err != nil {
		t.Fatalf("delete child: %v", err)
	}
	if err := svc.parents.Delete(parent.ID); err != nil {
		t.Fatalf("delete parent: %v", err)
	}
	if _, err := svc.parents.GetByID(parent.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound after delete", err)
	}
}

func TestParentDeleteWithInvoices(t *testing.T) {
	svc := setupServices(t)

	parent := createParent(t, svc, "Jane")
	if _, err := svc.invoices.Create(&model.Invoice{
		Amount:      100,
		InvoiceDate: "2025-03-01",
		Parent:      parent,
	}); err != nil {
		t.Fatalf("create invoice: %v", err)
	}

	err := svc.parents.Delete(parent.ID)
	if !errors.Is(err, ErrHasDependents) {
		t.Errorf("err = %v, want ErrHasDependents", err)
	}
}
