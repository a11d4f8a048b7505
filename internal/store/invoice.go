package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/mverhoef/opvang/internal/model"
)

const invoiceColumns = `i.id, i.amount, i.paid, i.invoice_date, i.created_at, i.updated_at,
	` + parentColumns

const invoiceFrom = ` FROM invoices i
	JOIN parents pr ON pr.person_id = i.parent_id
	JOIN persons p ON p.id = pr.person_id`

func scanInvoice(rs rowScanner) (*model.Invoice, error) {
	var inv model.Invoice
	var p model.Parent
	err := rs.Scan(
		&inv.ID, &inv.Amount, &inv.Paid, &inv.InvoiceDate, &inv.CreatedAt, &inv.UpdatedAt,
		&p.ID, &p.Name, &p.Birthdate, &p.Gender, &p.Email, &p.Phone, &p.Address, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	inv.Parent = &p
	return &inv, nil
}

type InvoiceStore struct {
	db *sql.DB
}

func NewInvoiceStore(db *sql.DB) *InvoiceStore {
	return &InvoiceStore{db: db}
}

func (s *InvoiceStore) Create(inv *model.Invoice) (*model.Invoice, error) {
	now := time.Now().UTC()
	result, err := s.db.Exec(
		"INSERT INTO invoices (amount, paid, invoice_date, parent_id, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
		inv.Amount, inv.Paid, inv.InvoiceDate, inv.Parent.ID, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert invoice: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *InvoiceStore) List() ([]model.Invoice, error) {
	return s.list("SELECT " + invoiceColumns + invoiceFrom + " ORDER BY i.id")
}

func (s *InvoiceStore) ListByParent(parentID int64) ([]model.Invoice, error) {
	return s.list("SELECT "+invoiceColumns+invoiceFrom+" WHERE i.parent_id = ? ORDER BY i.id", parentID)
}

func (s *InvoiceStore) ListUnpaidByParent(parentID int64) ([]model.Invoice, error) {
	return s.list("SELECT "+invoiceColumns+invoiceFrom+" WHERE i.parent_id = ? AND i.paid = 0 ORDER BY i.id", parentID)
}

func (s *InvoiceStore) list(query string, args ...any) ([]model.Invoice, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query invoices: %w", err)
	}
	defer rows.Close()

	var invoices []model.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		invoices = append(invoices, *inv)
	}
	return invoices, rows.Err()
}

func (s *InvoiceStore) GetByID(id int64) (*model.Invoice, error) {
	row := s.db.QueryRow("SELECT "+invoiceColumns+invoiceFrom+" WHERE i.id = ?", id)
	inv, err := scanInvoice(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query invoice: %w", err)
	}
	return inv, nil
}

func (s *InvoiceStore) Update(id int64, inv *model.Invoice) (*model.Invoice, error) {
	_, err := s.db.Exec(
		"UPDATE invoices SET amount = ?, paid = ?, invoice_date = ?, parent_id = ?, updated_at = ? WHERE id = ?",
		inv.Amount, inv.Paid, inv.InvoiceDate, inv.Parent.ID, time.Now().UTC(), id,
	)
	if err != nil {
		return nil, fmt.Errorf("update invoice: %w", err)
	}
	return s.GetByID(id)
}

func (s *InvoiceStore) Delete(id int64) error {
	_, err := s.db.Exec("DELETE FROM invoices WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	return nil
}

// CountByParent reports how many invoices still reference a parent, used
// to refuse parent deletion.
func (s *InvoiceStore) CountByParent(parentID int64) (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM invoices WHERE parent_id = ?", parentID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count invoices by parent: %w", err)
	}
	return count, nil
}
