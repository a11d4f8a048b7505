package store

import (
	"database/sql"
	"testing"
	"time"

	"github.com/mverhoef/opvang/internal/database"
	"github.com/mverhoef/opvang/internal/model"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func createTestParent(t *testing.T, ps *ParentStore, name string) *model.Parent {
	t.Helper()
	parent, err := ps.Create(&model.Parent{
		Person:  model.Person{Name: name, Birthdate: "1985-05-01", Gender: "Vrouw"},
		Email:   "jane@example.com",
		Phone:   "0612345678",
		Address: "Dorpsstraat 1",
	})
	if err != nil {
		t.Fatalf("create parent: %v", err)
	}
	return parent
}

func createTestChild(t *testing.T, cs *ChildStore, parent *model.Parent, name string, active bool) *model.Child {
	t.Helper()
	child, err := cs.Create(&model.Child{
		Person:             model.Person{Name: name, Birthdate: "2018-01-01", Gender: model.GenderUnknown},
		Allergies:          "Pinda's",
		DietaryPreferences: "Pasta",
		Notes:              "Houdt van tekenen",
		Active:             active,
		Parent:             parent,
	})
	if err != nil {
		t.Fatalf("create child: %v", err)
	}
	return child
}

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("parse time %q: %v", value, err)
	}
	return ts
}
