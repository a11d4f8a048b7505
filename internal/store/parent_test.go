package store

import (
	"testing"

	"github.com/mverhoef/opvang/internal/model"
)

func TestParentCRUD(t *testing.T) {
	db := setupTestDB(t)
	ps := NewParentStore(db)

	// Create
	parent := createTestParent(t, ps, "Jane")
	if parent.ID == 0 {
		t.Fatal("expected generated id")
	}
	if parent.Name != "Jane" {
		t.Errorf("name = %q, want %q", parent.Name, "Jane")
	}
	if parent.Email != "jane@example.com" {
		t.Errorf("email = %q, want %q", parent.Email, "jane@example.com")
	}

	// Get
	got, err := ps.GetByID(parent.ID)
	if err != nil {
		t.Fatalf("get parent: %v", err)
	}
	if got.Birthdate != "1985-05-01" {
		t.Errorf("birthdate = %q, want %q", got.Birthdate, "1985-05-01")
	}

	// Update overwrites every field
	updated, err := ps.Update(parent.ID, &model.Parent{
		Person:  model.Person{Name: "Jane Doe", Birthdate: "1985-05-02", Gender: "Vrouw"},
		Email:   "jane.doe@example.com",
		Phone:   "0687654321",
		Address: "Kerkstraat 2",
	})
	if err != nil {
		t.Fatalf("update parent: %v", err)
	}
	if updated.Name != "Jane Doe" {
		t.Errorf("updated name = %q, want %q", updated.Name, "Jane Doe")
	}
	if updated.Address != "Kerkstraat 2" {
		t.Errorf("updated address = %q, want %q", updated.Address, "Kerkstraat 2")
	}

	// Delete
	if err := ps.Delete(parent.ID); err != nil {
		t.Fatalf("delete parent: %v", err)
	}
	got, err = ps.GetByID(parent.ID)
	if err != nil {
		t.Fatalf("get deleted parent: %v", err)
	}
	if got != nil {
		t.Error("expected nil for deleted parent")
	}
}

func TestParentGetByIDNotFound(t *testing.T) {
	db := setupTestDB(t)
	ps := NewParentStore(db)

	got, err := ps.GetByID(9999)
	if err != nil {
		t.Fatalf("get parent: %v", err)
	}
	if got != nil {
		t.Error("expected nil for nonexistent parent")
	}
}

func TestParentList(t *testing.T) {
	db := setupTestDB(t)
	ps := NewParentStore(db)

	createTestParent(t, ps, "Jane")
	createTestParent(t, ps, "Piet")

	parents, err := ps.List()
	if err != nil {
		t.Fatalf("list parents: %v", err)
	}
	if len(parents) != 2 {
		t.Fatalf("expected 2 parents, got %d", len(parents))
	}
	if parents[0].Name != "Jane" || parents[1].Name != "Piet" {
		t.Errorf("unexpected order: %q, %q", parents[0].Name, parents[1].Name)
	}
}

func TestParentDeleteDoesNotTouchChildrenRows(t *testing.T) {
	db := setupTestDB(t)
	ps := NewParentStore(db)
	cs := NewChildStore(db)

	parent := createTestParent(t, ps, "Jane")
	createTestChild(t, cs, parent, "Tom", true)

	// The foreign key refuses the delete while a child references the
	// parent; no cascade into children may happen.
	if err := ps.Delete(parent.ID); err == nil {
		t.Fatal("expected delete of referenced parent to fail")
	}

	children, err := cs.ListByParent(parent.ID)
	if err != nil {
		t.Fatalf("list children: %v", err)
	}
	if len(children) != 1 {
		t.Fatalf("expected child to survive, got %d children", len(children))
	}
}
