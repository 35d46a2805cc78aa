package handler

import (
	"errors"
	"net/http"

	monthdomain "chama-ledger-go/internal/domain/month"
	"github.com/go-chi/chi/v5"
)

type createMonthRequest struct {
	Month   string `json:"month" validate:"required,datetime=2006-01-02"`
	DueDate string `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
}

type monthResponse struct {
	ID       string `json:"id"`
	Month    string `json:"month"`
	Label    string `json:"label"`
	DueDate  string `json:"due_date"`
	IsLocked bool   `json:"is_locked"`
}

type monthListResponse struct {
	Items []monthResponse `json:"items"`
}

func toMonthResponse(m monthdomain.ContributionMonth) monthResponse {
	return monthResponse{
		ID:       m.ID,
		Month:    formatDate(m.Month),
		Label:    m.Label(),
		DueDate:  formatDate(m.DueDate),
		IsLocked: m.IsLocked,
	}
}

func (h *Handlers) ListMonths(w http.ResponseWriter, r *http.Request) {
	unlockedOnly := parseBoolParam(r.URL.Query().Get("unlocked"))

	months, err := h.Months.List(r.Context(), unlockedOnly)
	if err != nil {
		h.log.InternalError("months.list: list failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	items := make([]monthResponse, 0, len(months))
	for _, m := range months {
		items = append(items, toMonthResponse(m))
	}

	writeJSON(w, http.StatusOK, monthListResponse{Items: items})
}

func (h *Handlers) CreateMonth(w http.ResponseWriter, r *http.Request) {
	var req createMonthRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	monthDate, err := parseDateRequired(req.Month)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid month date")
		return
	}

	input := monthdomain.CreateInput{Month: monthDate}
	if req.DueDate != "" {
		dueDate, err := parseDateRequired(req.DueDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", "invalid due date")
			return
		}
		input.DueDate = &dueDate
	}

	created, err := h.Months.Create(r.Context(), input)
	if err != nil {
		if errors.Is(err, monthdomain.ErrMonthExists) {
			h.log.BusinessError("months.create: duplicate month", err, "month", req.Month)
			writeError(w, http.StatusConflict, "month_exists", "contribution month already exists")
			return
		}
		h.log.InternalError("months.create: create failed", err, "month", req.Month)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, toMonthResponse(*created))
}

func (h *Handlers) GetMonth(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	m, err := h.Months.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, monthdomain.ErrMonthNotFound) {
			writeError(w, http.StatusNotFound, "month_not_found", "contribution month not found")
			return
		}
		h.log.InternalError("months.get: get failed", err, "month_id", id)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, toMonthResponse(*m))
}

func (h *Handlers) LockMonth(w http.ResponseWriter, r *http.Request) {
	h.setMonthLocked(w, r, true)
}

func (h *Handlers) UnlockMonth(w http.ResponseWriter, r *http.Request) {
	h.setMonthLocked(w, r, false)
}

func (h *Handlers) setMonthLocked(w http.ResponseWriter, r *http.Request, locked bool) {
	id := chi.URLParam(r, "id")

	m, err := h.Months.SetLocked(r.Context(), id, locked)
	if err != nil {
		if errors.Is(err, monthdomain.ErrMonthNotFound) {
			writeError(w, http.StatusNotFound, "month_not_found", "contribution month not found")
			return
		}
		h.log.InternalError("months.set_locked: update failed", err, "month_id", id)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, toMonthResponse(*m))
}

func (h *Handlers) DeleteMonth(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.Months.Delete(r.Context(), id); err != nil {
		if errors.Is(err, monthdomain.ErrMonthNotFound) {
			writeError(w, http.StatusNotFound, "month_not_found", "contribution month not found")
			return
		}
		h.log.InternalError("months.delete: delete failed", err, "month_id", id)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
