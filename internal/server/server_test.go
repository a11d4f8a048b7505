package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mverhoef/opvang/internal/backup"
	"github.com/mverhoef/opvang/internal/database"
	"github.com/mverhoef/opvang/internal/model"
)

func setupTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	logger := slog.New(slog.DiscardHandler)
	srv := New(db, nil, backup.Config{}, logger)
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts
}

func doJSON(t *testing.T, method, url string, body any, out any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode response of %s %s: %v", method, url, err)
		}
	}
	return resp
}

func TestHealth(t *testing.T) {
	ts := setupTestServer(t)

	var body map[string]string
	resp := doJSON(t, "GET", ts.URL+"/health", nil, &body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if body["status"] != "ok" {
		t.Errorf("status body = %q, want ok", body["status"])
	}
}

func TestRegisterFlow(t *testing.T) {
	ts := setupTestServer(t)

	// Register a parent
	var jane model.Parent
	resp := doJSON(t, "POST", ts.URL+"/api/parents", map[string]any{
		"name":      "Jane",
		"birthdate": "1985-05-01",
		"email":     "jane@example.com",
	}, &jane)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("create parent: status = %d, want 200", resp.StatusCode)
	}
	if jane.ID == 0 {
		t.Fatal("expected assigned parent id")
	}
	if jane.Gender != model.GenderUnknown {
		t.Errorf("gender = %q, want default %q", jane.Gender, model.GenderUnknown)
	}

	// Register her child
	var tom model.Child
	resp = doJSON(t, "POST", ts.URL+"/api/children", map[string]any{
		"name":      "Tom",
		"birthdate": "2018-01-01",
		"parent":    map[string]any{"id": jane.ID},
	}, &tom)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("create child: status = %d, want 200", resp.StatusCode)
	}
	if tom.Parent == nil || tom.Parent.ID != jane.ID {
		t.Fatalf("child parent = %+v, want id %d", tom.Parent, jane.ID)
	}

	// Active list includes Tom
	var active []model.Child
	doJSON(t, "GET", ts.URL+"/api/children/active", nil, &active)
	if len(active) != 1 || active[0].ID != tom.ID {
		t.Fatalf("active children = %+v, want only Tom", active)
	}

	// Deactivate Tom with a full update
	var updated model.Child
	resp = doJSON(t, "PUT", fmt.Sprintf("%s/api/children/%d", ts.URL, tom.ID), map[string]any{
		"name":      "Tom",
		"birthdate": "2018-01-01",
		"active":    false,
		"parent":    map[string]any{"id": jane.ID},
	}, &updated)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update child: status = %d, want 200", resp.StatusCode)
	}

	var inactive []model.Child
	doJSON(t, "GET", ts.URL+"/api/children/inactive", nil, &inactive)
	if len(inactive) != 1 || inactive[0].ID != tom.ID {
		t.Errorf("inactive children = %+v, want only Tom", inactive)
	}
	active = nil
	doJSON(t, "GET", ts.URL+"/api/children/active", nil, &active)
	if len(active) != 0 {
		t.Errorf("active children = %+v, want empty", active)
	}
}

func TestParentDeleteConflict(t *testing.T) {
	ts := setupTestServer(t)

	var jane model.Parent
	doJSON(t, "POST", ts.URL+"/api/parents", map[string]any{
		"name": "Jane", "birthdate": "1985-05-01",
	}, &jane)
	var tom model.Child
	doJSON(t, "POST", ts.URL+"/api/children", map[string]any{
		"name": "Tom", "birthdate": "2018-01-01", "parent": map[string]any{"id": jane.ID},
	}, &tom)

	resp := doJSON(t, "DELETE", fmt.Sprintf("%s/api/parents/%d", ts.URL, jane.ID), nil, nil)
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("delete referenced parent: status = %d, want 409", resp.StatusCode)
	}

	resp = doJSON(t, "DELETE", fmt.Sprintf("%s/api/children/%d", ts.URL, tom.ID), nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete child: status = %d, want 200", resp.StatusCode)
	}
	resp = doJSON(t, "DELETE", fmt.Sprintf("%s/api/parents/%d", ts.URL, jane.ID), nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("delete parent: status = %d, want 200", resp.StatusCode)
	}
}

func TestChildUnknownParentRejected(t *testing.T) {
	ts := setupTestServer(t)

	resp := doJSON(t, "POST", ts.URL+"/api/children", map[string]any{
		"name": "Tom", "birthdate": "2018-01-01", "parent": map[string]any{"id": 999},
	}, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}

	resp = doJSON(t, "POST", ts.URL+"/api/children", map[string]any{
		"name": "Tom", "birthdate": "2018-01-01",
	}, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("missing parent: status = %d, want 400", resp.StatusCode)
	}
}

func TestAttendanceEndpoints(t *testing.T) {
	ts := setupTestServer(t)

	var jane model.Parent
	doJSON(t, "POST", ts.URL+"/api/parents", map[string]any{
		"name": "Jane", "birthdate": "1985-05-01",
	}, &jane)
	var tom model.Child
	doJSON(t, "POST", ts.URL+"/api/children", map[string]any{
		"name": "Tom", "birthdate": "2018-01-01", "parent": map[string]any{"id": jane.ID},
	}, &tom)

	var att model.Attendance
	resp := doJSON(t, "POST", ts.URL+"/api/attendances", map[string]any{
		"check_in_time": "2025-03-10T08:00:00Z",
		"child":         map[string]any{"id": tom.ID},
	}, &att)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("create attendance: status = %d, want 200", resp.StatusCode)
	}
	if att.Child == nil || att.Child.ID != tom.ID {
		t.Fatalf("attendance child = %+v, want id %d", att.Child, tom.ID)
	}

	// Check-out before check-in is rejected
	resp = doJSON(t, "POST", ts.URL+"/api/attendances", map[string]any{
		"check_in_time":  "2025-03-10T08:00:00Z",
		"check_out_time": "2025-03-10T07:00:00Z",
		"child":          map[string]any{"id": tom.ID},
	}, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("out-of-order times: status = %d, want 400", resp.StatusCode)
	}

	// Unknown child is rejected
	resp = doJSON(t, "POST", ts.URL+"/api/attendances", map[string]any{
		"check_in_time": "2025-03-10T08:00:00Z",
		"child":         map[string]any{"id": 999},
	}, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("unknown child: status = %d, want 400", resp.StatusCode)
	}

	var byChild []model.Attendance
	doJSON(t, "GET", fmt.Sprintf("%s/api/attendances/child/%d", ts.URL, tom.ID), nil, &byChild)
	if len(byChild) != 1 {
		t.Errorf("attendances for child = %d, want 1", len(byChild))
	}
}

func TestInvoiceEndpoints(t *testing.T) {
	ts := setupTestServer(t)

	var jane model.Parent
	doJSON(t, "POST", ts.URL+"/api/parents", map[string]any{
		"name": "Jane", "birthdate": "1985-05-01", "email": "jane@example.com",
	}, &jane)

	var inv model.Invoice
	resp := doJSON(t, "POST", ts.URL+"/api/invoices", map[string]any{
		"amount":       125.50,
		"invoice_date": "2025-03-01",
		"parent":       map[string]any{"id": jane.ID},
	}, &inv)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("create invoice: status = %d, want 200", resp.StatusCode)
	}
	if inv.Paid {
		t.Error("new invoice should be unpaid")
	}

	resp = doJSON(t, "POST", ts.URL+"/api/invoices", map[string]any{
		"amount": -1, "invoice_date": "2025-03-01", "parent": map[string]any{"id": jane.ID},
	}, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("negative amount: status = %d, want 400", resp.StatusCode)
	}

	var unpaid []model.Invoice
	doJSON(t, "GET", fmt.Sprintf("%s/api/invoices/parent/%d/unpaid", ts.URL, jane.ID), nil, &unpaid)
	if len(unpaid) != 1 || unpaid[0].ID != inv.ID {
		t.Errorf("unpaid invoices = %+v, want the new invoice", unpaid)
	}

	var paid model.Invoice
	resp = doJSON(t, "POST", fmt.Sprintf("%s/api/invoices/%d/paid", ts.URL, inv.ID), nil, &paid)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("mark paid: status = %d, want 200", resp.StatusCode)
	}
	if !paid.Paid {
		t.Error("invoice should be paid after settling")
	}
	doJSON(t, "GET", fmt.Sprintf("%s/api/invoices/parent/%d/unpaid", ts.URL, jane.ID), nil, &unpaid)
	if len(unpaid) != 0 {
		t.Errorf("unpaid invoices after settling = %+v, want none", unpaid)
	}

	resp = doJSON(t, "POST", ts.URL+"/api/invoices/999/paid", nil, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("mark paid unknown invoice: status = %d, want 404", resp.StatusCode)
	}
}

func TestInvoicePDFDownload(t *testing.T) {
	ts := setupTestServer(t)

	var jane model.Parent
	doJSON(t, "POST", ts.URL+"/api/parents", map[string]any{
		"name": "Jane", "birthdate": "1985-05-01", "email": "jane@example.com",
	}, &jane)
	var inv model.Invoice
	doJSON(t, "POST", ts.URL+"/api/invoices", map[string]any{
		"amount": 99.95, "invoice_date": "2025-03-01", "parent": map[string]any{"id": jane.ID},
	}, &inv)

	resp, err := http.Get(fmt.Sprintf("%s/api/invoice-pdf/%d", ts.URL, inv.ID))
	if err != nil {
		t.Fatalf("download pdf: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("content type = %q, want application/pdf", ct)
	}
	wantCD := fmt.Sprintf("attachment; filename=factuur_%d.pdf", inv.ID)
	if cd := resp.Header.Get("Content-Disposition"); cd != wantCD {
		t.Errorf("content disposition = %q, want %q", cd, wantCD)
	}

	resp2, err := http.Get(ts.URL + "/api/invoice-pdf/999")
	if err != nil {
		t.Fatalf("download missing pdf: %v", err)
	}
	defer resp2.Body.Close()
	if resp2.StatusCode != http.StatusNotFound {
		t.Errorf("missing invoice: status = %d, want 404", resp2.StatusCode)
	}
}

func TestInvoiceSendWithoutMailer(t *testing.T) {
	ts := setupTestServer(t)

	var jane model.Parent
	doJSON(t, "POST", ts.URL+"/api/parents", map[string]any{
		"name": "Jane", "birthdate": "1985-05-01", "email": "jane@example.com",
	}, &jane)
	var inv model.Invoice
	doJSON(t, "POST", ts.URL+"/api/invoices", map[string]any{
		"amount": 10, "invoice_date": "2025-03-01", "parent": map[string]any{"id": jane.ID},
	}, &inv)

	resp := doJSON(t, "POST", fmt.Sprintf("%s/api/invoices/%d/send", ts.URL, inv.ID), nil, nil)
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("send without mailer: status = %d, want 409", resp.StatusCode)
	}
}

func TestPersonsUnionView(t *testing.T) {
	ts := setupTestServer(t)

	var jane model.Parent
	doJSON(t, "POST", ts.URL+"/api/parents", map[string]any{
		"name": "Jane", "birthdate": "1985-05-01",
	}, &jane)
	var tom model.Child
	doJSON(t, "POST", ts.URL+"/api/children", map[string]any{
		"name": "Tom", "birthdate": "2018-01-01", "parent": map[string]any{"id": jane.ID},
	}, &tom)

	var persons []model.PersonSummary
	doJSON(t, "GET", ts.URL+"/api/persons", nil, &persons)
	if len(persons) != 2 {
		t.Fatalf("persons = %d, want 2", len(persons))
	}

	var person model.PersonSummary
	resp := doJSON(t, "GET", fmt.Sprintf("%s/api/persons/%d", ts.URL, tom.ID), nil, &person)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get person: status = %d, want 200", resp.StatusCode)
	}
	if person.Type != "CHILD" {
		t.Errorf("person type = %q, want CHILD", person.Type)
	}
}

func TestBackupEndpointsDisabled(t *testing.T) {
	ts := setupTestServer(t)

	var backups []model.Backup
	resp := doJSON(t, "GET", ts.URL+"/api/backups", nil, &backups)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list backups: status = %d, want 200", resp.StatusCode)
	}
	if len(backups) != 0 {
		t.Errorf("backups = %d, want 0", len(backups))
	}

	var status backup.Status
	doJSON(t, "GET", ts.URL+"/api/backups/status", nil, &status)
	if status.State != backup.StateDisabled {
		t.Errorf("state = %q, want %q", status.State, backup.StateDisabled)
	}

	resp = doJSON(t, "POST", ts.URL+"/api/backups/run", nil, nil)
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("run disabled backup: status = %d, want 409", resp.StatusCode)
	}
}
