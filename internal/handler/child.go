package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/mverhoef/opvang/internal/model"
	"github.com/mverhoef/opvang/internal/service"
)

type ChildHandler struct {
	children *service.ChildService
	logger   *slog.Logger
}

func NewChildHandler(cs *service.ChildService, logger *slog.Logger) *ChildHandler {
	return &ChildHandler{children: cs, logger: logger.With("component", "child_handler")}
}

// parentRef is how clients reference an existing parent in child and
// invoice payloads; only the id matters.
type parentRef struct {
	ID int64 `json:"id"`
}

type childRequest struct {
	Name               string     `json:"name"`
	Birthdate          string     `json:"birthdate"`
	Gender             string     `json:"gender"`
	Allergies          string     `json:"allergies"`
	DietaryPreferences string     `json:"dietary_preferences"`
	Notes              string     `json:"notes"`
	Active             *bool      `json:"active"`
	Parent             *parentRef `json:"parent"`
}

func (req *childRequest) toModel() *model.Child {
	child := &model.Child{
		Person:             model.Person{Name: req.Name, Birthdate: req.Birthdate, Gender: req.Gender},
		Allergies:          req.Allergies,
		DietaryPreferences: req.DietaryPreferences,
		Notes:              req.Notes,
		Active:             true,
	}
	if req.Active != nil {
		child.Active = *req.Active
	}
	if req.Parent != nil {
		child.Parent = &model.Parent{Person: model.Person{ID: req.Parent.ID}}
	}
	return child
}

func (h *ChildHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req childRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	child, err := h.children.Create(req.toModel())
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, child)
}

func (h *ChildHandler) List(w http.ResponseWriter, r *http.Request) {
	h.respondList(w, h.children.List)
}

func (h *ChildHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	h.respondList(w, h.children.ListActive)
}

func (h *ChildHandler) ListInactive(w http.ResponseWriter, r *http.Request) {
	h.respondList(w, h.children.ListInactive)
}

func (h *ChildHandler) respondList(w http.ResponseWriter, list func() ([]model.Child, error)) {
	children, err := list()
	if err != nil {
		h.logger.Error("list children", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if children == nil {
		children = []model.Child{}
	}
	writeJSON(w, http.StatusOK, children)
}

func (h *ChildHandler) ListByParent(w http.ResponseWriter, r *http.Request) {
	parentID, ok := pathID(w, r, "parentId")
	if !ok {
		return
	}
	children, err := h.children.ListByParent(parentID)
	if err != nil {
		serviceError(w, err)
		return
	}
	if children == nil {
		children = []model.Child{}
	}
	writeJSON(w, http.StatusOK, children)
}

func (h *ChildHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	child, err := h.children.GetByID(id)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, child)
}

func (h *ChildHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req childRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	child, err := h.children.Update(id, req.toModel())
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, child)
}

func (h *ChildHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.children.Delete(id); err != nil {
		serviceError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
