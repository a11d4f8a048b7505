package handler

import (
	"log/slog"
	"net/http"

	"github.com/mverhoef/opvang/internal/model"
	"github.com/mverhoef/opvang/internal/service"
)

// PersonHandler serves the read-only union view over parents and children.
type PersonHandler struct {
	persons *service.PersonService
	logger  *slog.Logger
}

func NewPersonHandler(ps *service.PersonService, logger *slog.Logger) *PersonHandler {
	return &PersonHandler{persons: ps, logger: logger.With("component", "person_handler")}
}

func (h *PersonHandler) List(w http.ResponseWriter, r *http.Request) {
	persons, err := h.persons.List()
	if err != nil {
		h.logger.Error("list persons", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if persons == nil {
		persons = []model.PersonSummary{}
	}
	writeJSON(w, http.StatusOK, persons)
}

func (h *PersonHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	person, err := h.persons.GetByID(id)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, person)
}
