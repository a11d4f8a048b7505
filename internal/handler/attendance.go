package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/mverhoef/opvang/internal/model"
	"github.com/mverhoef/opvang/internal/service"
)

type AttendanceHandler struct {
	attendances *service.AttendanceService
	logger      *slog.Logger
}

func NewAttendanceHandler(as *service.AttendanceService, logger *slog.Logger) *AttendanceHandler {
	return &AttendanceHandler{attendances: as, logger: logger.With("component", "attendance_handler")}
}

type childRef struct {
	ID int64 `json:"id"`
}

type attendanceRequest struct {
	CheckInTime  time.Time  `json:"check_in_time"`
	CheckOutTime *time.Time `json:"check_out_time"`
	Child        *childRef  `json:"child"`
}

func (req *attendanceRequest) toModel() *model.Attendance {
	att := &model.Attendance{
		CheckInTime:  req.CheckInTime,
		CheckOutTime: req.CheckOutTime,
	}
	if req.Child != nil {
		att.Child = &model.Child{Person: model.Person{ID: req.Child.ID}}
	}
	return att
}

func (h *AttendanceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req attendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	att, err := h.attendances.Create(req.toModel())
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, att)
}

func (h *AttendanceHandler) List(w http.ResponseWriter, r *http.Request) {
	attendances, err := h.attendances.List()
	if err != nil {
		h.logger.Error("list attendances", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if attendances == nil {
		attendances = []model.Attendance{}
	}
	writeJSON(w, http.StatusOK, attendances)
}

func (h *AttendanceHandler) ListByChild(w http.ResponseWriter, r *http.Request) {
	childID, ok := pathID(w, r, "childId")
	if !ok {
		return
	}
	attendances, err := h.attendances.ListByChild(childID)
	if err != nil {
		serviceError(w, err)
		return
	}
	if attendances == nil {
		attendances = []model.Attendance{}
	}
	writeJSON(w, http.StatusOK, attendances)
}

func (h *AttendanceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	att, err := h.attendances.GetByID(id)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, att)
}

func (h *AttendanceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req attendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	att, err := h.attendances.Update(id, req.toModel())
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, att)
}

func (h *AttendanceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.attendances.Delete(id); err != nil {
		serviceError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
