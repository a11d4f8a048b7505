package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/mverhoef/opvang/internal/backup"
	"github.com/mverhoef/opvang/internal/email"
	"github.com/mverhoef/opvang/internal/handler"
	"github.com/mverhoef/opvang/internal/middleware"
	"github.com/mverhoef/opvang/internal/service"
	"github.com/mverhoef/opvang/internal/store"
)

type Server struct {
	db            *sql.DB
	parentH       *handler.ParentHandler
	childH        *handler.ChildHandler
	attendanceH   *handler.AttendanceHandler
	invoiceH      *handler.InvoiceHandler
	personH       *handler.PersonHandler
	backupH       *handler.BackupHandler
	backupManager *backup.Manager
	logger        *slog.Logger
}

func New(db *sql.DB, emailClient *email.Client, backupCfg backup.Config, logger *slog.Logger) *Server {
	parentStore := store.NewParentStore(db)
	childStore := store.NewChildStore(db)
	attendanceStore := store.NewAttendanceStore(db)
	invoiceStore := store.NewInvoiceStore(db)
	personStore := store.NewPersonStore(db)
	backupStore := store.NewBackupStore(db)

	parentSvc := service.NewParentService(parentStore, childStore, invoiceStore)
	childSvc := service.NewChildService(childStore, parentStore)
	attendanceSvc := service.NewAttendanceService(attendanceStore, childStore)
	invoiceSvc := service.NewInvoiceService(invoiceStore, parentStore)
	personSvc := service.NewPersonService(personStore)

	backupMgr := backup.NewManager(backupCfg, db, backupStore, logger)

	return &Server{
		db:            db,
		parentH:       handler.NewParentHandler(parentSvc, logger),
		childH:        handler.NewChildHandler(childSvc, logger),
		attendanceH:   handler.NewAttendanceHandler(attendanceSvc, logger),
		invoiceH:      handler.NewInvoiceHandler(invoiceSvc, emailClient, logger),
		personH:       handler.NewPersonHandler(personSvc, logger),
		backupH:       handler.NewBackupHandler(backupMgr, backupStore, logger),
		backupManager: backupMgr,
		logger:        logger,
	}
}

// BackupManager returns the backup manager so main can run its scheduler.
func (s *Server) BackupManager() *backup.Manager {
	return s.backupManager
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.healthHandler)

	// Parent routes
	mux.HandleFunc("GET /api/parents", s.parentH.List)
	mux.HandleFunc("POST /api/parents", s.parentH.Create)
	mux.HandleFunc("GET /api/parents/{id}", s.parentH.Get)
	mux.HandleFunc("PUT /api/parents/{id}", s.parentH.Update)
	mux.HandleFunc("DELETE /api/parents/{id}", s.parentH.Delete)

	// Child routes
	mux.HandleFunc("GET /api/children", s.childH.List)
	mux.HandleFunc("POST /api/children", s.childH.Create)
	mux.HandleFunc("GET /api/children/active", s.childH.ListActive)
	mux.HandleFunc("GET /api/children/inactive", s.childH.ListInactive)
	mux.HandleFunc("GET /api/children/parent/{parentId}", s.childH.ListByParent)
	mux.HandleFunc("GET /api/children/{id}", s.childH.Get)
	mux.HandleFunc("PUT /api/children/{id}", s.childH.Update)
	mux.HandleFunc("DELETE /api/children/{id}", s.childH.Delete)

	// Attendance routes
	mux.HandleFunc("GET /api/attendances", s.attendanceH.List)
	mux.HandleFunc("POST /api/attendances", s.attendanceH.Create)
	mux.HandleFunc("GET /api/attendances/child/{childId}", s.attendanceH.ListByChild)
	mux.HandleFunc("GET /api/attendances/{id}", s.attendanceH.Get)
	mux.HandleFunc("PUT /api/attendances/{id}", s.attendanceH.Update)
	mux.HandleFunc("DELETE /api/attendances/{id}", s.attendanceH.Delete)

	// Invoice routes
	mux.HandleFunc("GET /api/invoices", s.invoiceH.List)
	mux.HandleFunc("POST /api/invoices", s.invoiceH.Create)
	mux.HandleFunc("GET /api/invoices/parent/{parentId}", s.invoiceH.ListByParent)
	mux.HandleFunc("GET /api/invoices/parent/{parentId}/unpaid", s.invoiceH.ListUnpaidByParent)
	mux.HandleFunc("GET /api/invoices/{id}", s.invoiceH.Get)
	mux.HandleFunc("PUT /api/invoices/{id}", s.invoiceH.Update)
	mux.HandleFunc("POST /api/invoices/{id}/paid", s.invoiceH.MarkPaid)
	mux.HandleFunc("DELETE /api/invoices/{id}", s.invoiceH.Delete)
	mux.HandleFunc("GET /api/invoice-pdf/{id}", s.invoiceH.DownloadPDF)
	mux.HandleFunc("POST /api/invoices/{id}/send", s.invoiceH.Send)

	// Read-only person view
	mux.HandleFunc("GET /api/persons", s.personH.List)
	mux.HandleFunc("GET /api/persons/{id}", s.personH.Get)

	// Backup routes
	mux.HandleFunc("GET /api/backups", s.backupH.List)
	mux.HandleFunc("GET /api/backups/status", s.backupH.Status)
	mux.HandleFunc("POST /api/backups/run", s.backupH.Run)

	return middleware.RequestLogger(s.logger.With("component", "http"))(mux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
