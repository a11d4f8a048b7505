package service

import (
	"database/sql"
	"testing"

	"github.com/mverhoef/opvang/internal/database"
	"github.com/mverhoef/opvang/internal/model"
	"github.com/mverhoef/opvang/internal/store"
)

type testServices struct {
	parents     *ParentService
	children    *ChildService
	attendances *AttendanceService
	invoices    *InvoiceService
	persons     *PersonService
}

func setupServices(t *testing.T) *testServices {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return newServices(db)
}

func newServices(db *sql.DB) *testServices {
	ps := store.NewParentStore(db)
	cs := store.NewChildStore(db)
	as := store.NewAttendanceStore(db)
	is := store.NewInvoiceStore(db)
	pers := store.NewPersonStore(db)
	return &testServices{
		parents:     NewParentService(ps, cs, is),
		children:    NewChildService(cs, ps),
		attendances: NewAttendanceService(as, cs),
		invoices:    NewInvoiceService(is, ps),
		persons:     NewPersonService(pers),
	}
}

func createParent(t *testing.T, svc *testServices, name string) *model.Parent {
	t.Helper()
	parent, err := svc.parents.Create(&model.Parent{
		Person: model.Person{Name: name, Birthdate: "1985-05-01", Gender: "Vrouw"},
		Email:  "jane@example.com",
		Phone:  "0612345678",
	})
	if err != nil {
		t.Fatalf("create parent: %v", err)
	}
	return parent
}

func createChild(t *testing.T, svc *testServices, parent *model.Parent, name string) *model.Child {
	t.Helper()
	child, err := svc.children.Create(&model.Child{
		Person: model.Person{Name: name, Birthdate: "2018-01-01"},
		Active: true,
		Parent: parent,
	})
	if err != nil {
		t.Fatalf("create child: %v", err)
	}
	return child
}
