package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/mverhoef/opvang/internal/model"
	"github.com/mverhoef/opvang/internal/pdf"
	"github.com/mverhoef/opvang/internal/service"
)

// invoiceMailer is the slice of the email client the handler needs.
type invoiceMailer interface {
	Configured() bool
	SendInvoice(toEmail, parentName string, invoiceID int64, pdf []byte) error
}

type InvoiceHandler struct {
	invoices *service.InvoiceService
	mailer   invoiceMailer
	logger   *slog.Logger
}

func NewInvoiceHandler(is *service.InvoiceService, mailer invoiceMailer, logger *slog.Logger) *InvoiceHandler {
	return &InvoiceHandler{invoices: is, mailer: mailer, logger: logger.With("component", "invoice_handler")}
}

type invoiceRequest struct {
	Amount      float64    `json:"amount"`
	Paid        bool       `json:"paid"`
	InvoiceDate string     `json:"invoice_date"`
	Parent      *parentRef `json:"parent"`
}

func (req *invoiceRequest) toModel() *model.Invoice {
	inv := &model.Invoice{
		Amount:      req.Amount,
		Paid:        req.Paid,
		InvoiceDate: req.InvoiceDate,
	}
	if req.Parent != nil {
		inv.Parent = &model.Parent{Person: model.Person{ID: req.Parent.ID}}
	}
	return inv
}

func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req invoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	inv, err := h.invoices.Create(req.toModel())
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, inv)
}

func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.invoices.List()
	if err != nil {
		h.logger.Error("list invoices", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if invoices == nil {
		invoices = []model.Invoice{}
	}
	writeJSON(w, http.StatusOK, invoices)
}

func (h *InvoiceHandler) ListByParent(w http.ResponseWriter, r *http.Request) {
	h.respondParentList(w, r, h.invoices.ListByParent)
}

func (h *InvoiceHandler) ListUnpaidByParent(w http.ResponseWriter, r *http.Request) {
	h.respondParentList(w, r, h.invoices.ListUnpaidByParent)
}

func (h *InvoiceHandler) respondParentList(w http.ResponseWriter, r *http.Request, list func(int64) ([]model.Invoice, error)) {
	parentID, ok := pathID(w, r, "parentId")
	if !ok {
		return
	}
	invoices, err := list(parentID)
	if err != nil {
		serviceError(w, err)
		return
	}
	if invoices == nil {
		invoices = []model.Invoice{}
	}
	writeJSON(w, http.StatusOK, invoices)
}

func (h *InvoiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	inv, err := h.invoices.GetByID(id)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, inv)
}

func (h *InvoiceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req invoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	inv, err := h.invoices.Update(id, req.toModel())
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, inv)
}

// MarkPaid settles an invoice without requiring a full PUT payload.
func (h *InvoiceHandler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	inv, err := h.invoices.MarkPaid(id)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, inv)
}

func (h *InvoiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.invoices.Delete(id); err != nil {
		serviceError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// DownloadPDF streams the rendered invoice as an attachment.
func (h *InvoiceHandler) DownloadPDF(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	inv, err := h.invoices.GetByID(id)
	if err != nil {
		serviceError(w, err)
		return
	}

	out, err := pdf.RenderInvoice(inv)
	if err != nil {
		h.logger.Error("render invoice pdf", "invoice_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to render invoice")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=factuur_%d.pdf", id))
	w.WriteHeader(http.StatusOK)
	w.Write(out)
}

// Send renders the invoice and emails it to the billed parent.
func (h *InvoiceHandler) Send(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	inv, err := h.invoices.GetByID(id)
	if err != nil {
		serviceError(w, err)
		return
	}
	if inv.Parent == nil || inv.Parent.Email == "" {
		writeError(w, http.StatusBadRequest, "parent has no email address")
		return
	}
	if h.mailer == nil || !h.mailer.Configured() {
		writeError(w, http.StatusConflict, "email delivery is not configured")
		return
	}

	out, err := pdf.RenderInvoice(inv)
	if err != nil {
		h.logger.Error("render invoice pdf", "invoice_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to render invoice")
		return
	}
	if err := h.mailer.SendInvoice(inv.Parent.Email, inv.Parent.Name, inv.ID, out); err != nil {
		h.logger.Error("send invoice email", "invoice_id", id, "error", err)
		writeError(w, http.StatusBadGateway, "failed to send invoice")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "sent"})
}
