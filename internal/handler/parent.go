package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/mverhoef/opvang/internal/model"
	"github.com/mverhoef/opvang/internal/service"
)

type ParentHandler struct {
	parents *service.ParentService
	logger  *slog.Logger
}

func NewParentHandler(ps *service.ParentService, logger *slog.Logger) *ParentHandler {
	return &ParentHandler{parents: ps, logger: logger.With("component", "parent_handler")}
}

type parentRequest struct {
	Name      string `json:"name"`
	Birthdate string `json:"birthdate"`
	Gender    string `json:"gender"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
}

func (req *parentRequest) toModel() *model.Parent {
	return &model.Parent{
		Person:  model.Person{Name: req.Name, Birthdate: req.Birthdate, Gender: req.Gender},
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	}
}

func (h *ParentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req parentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	parent, err := h.parents.Create(req.toModel())
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, parent)
}

func (h *ParentHandler) List(w http.ResponseWriter, r *http.Request) {
	parents, err := h.parents.List()
	if err != nil {
		h.logger.Error("list parents", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if parents == nil {
		parents = []model.Parent{}
	}
	writeJSON(w, http.StatusOK, parents)
}

func (h *ParentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	parent, err := h.parents.GetByID(id)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, parent)
}

func (h *ParentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req parentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	parent, err := h.parents.Update(id, req.toModel())
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, parent)
}

func (h *ParentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.parents.Delete(id); err != nil {
		serviceError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
