package handler

import (
	"errors"
	"net/http"

	memberdomain "chama-ledger-go/internal/domain/member"
	"github.com/go-chi/chi/v5"
)

type registerMemberRequest struct {
	UserID     string `json:"user_id" validate:"required"`
	FullName   string `json:"full_name" validate:"required"`
	Phone      string `json:"phone" validate:"omitempty,max=15"`
	JoinedDate string `json:"joined_date" validate:"omitempty,datetime=2006-01-02"`
}

type updateMemberRequest struct {
	FullName string `json:"full_name" validate:"required"`
	Phone    string `json:"phone" validate:"omitempty,max=15"`
}

type memberResponse struct {
	ID         string `json:"id"`
	UserID     string `json:"user_id"`
	FullName   string `json:"full_name"`
	Phone      string `json:"phone"`
	JoinedDate string `json:"joined_date"`
	IsActive   bool   `json:"is_active"`
}

type memberListResponse struct {
	Items []memberResponse `json:"items"`
}

func toMemberResponse(m memberdomain.Member) memberResponse {
	return memberResponse{
		ID:         m.ID,
		UserID:     m.UserID,
		FullName:   m.FullName,
		Phone:      m.Phone,
		JoinedDate: formatDate(m.JoinedDate),
		IsActive:   m.IsActive,
	}
}

func (h *Handlers) ListMembers(w http.ResponseWriter, r *http.Request) {
	activeOnly := parseBoolParam(r.URL.Query().Get("active"))

	members, err := h.Members.List(r.Context(), activeOnly)
	if err != nil {
		h.log.InternalError("members.list: list failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	items := make([]memberResponse, 0, len(members))
	for _, m := range members {
		items = append(items, toMemberResponse(m))
	}

	writeJSON(w, http.StatusOK, memberListResponse{Items: items})
}

func (h *Handlers) RegisterMember(w http.ResponseWriter, r *http.Request) {
	var req registerMemberRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	input := memberdomain.RegisterInput{
		UserID:   req.UserID,
		FullName: req.FullName,
		Phone:    req.Phone,
	}
	if req.JoinedDate != "" {
		joined, err := parseDateRequired(req.JoinedDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", "invalid joined date")
			return
		}
		input.JoinedDate = &joined
	}

	created, err := h.Members.Register(r.Context(), input)
	if err != nil {
		if errors.Is(err, memberdomain.ErrMemberExists) {
			h.log.BusinessError("members.register: duplicate user", err, "user_id", req.UserID)
			writeError(w, http.StatusConflict, "member_exists", "member already registered")
			return
		}
		h.log.InternalError("members.register: register failed", err, "user_id", req.UserID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, toMemberResponse(*created))
}

func (h *Handlers) GetMember(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	m, err := h.Members.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, memberdomain.ErrMemberNotFound) {
			writeError(w, http.StatusNotFound, "member_not_found", "member not found")
			return
		}
		h.log.InternalError("members.get: get failed", err, "member_id", id)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, toMemberResponse(*m))
}

func (h *Handlers) UpdateMember(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req updateMemberRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	updated, err := h.Members.Update(r.Context(), id, memberdomain.UpdateInput{
		FullName: req.FullName,
		Phone:    req.Phone,
	})
	if err != nil {
		if errors.Is(err, memberdomain.ErrMemberNotFound) {
			writeError(w, http.StatusNotFound, "member_not_found", "member not found")
			return
		}
		h.log.InternalError("members.update: update failed", err, "member_id", id)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, toMemberResponse(*updated))
}

func (h *Handlers) DeactivateMember(w http.ResponseWriter, r *http.Request) {
	h.setMemberActive(w, r, false)
}

func (h *Handlers) ActivateMember(w http.ResponseWriter, r *http.Request) {
	h.setMemberActive(w, r, true)
}

func (h *Handlers) setMemberActive(w http.ResponseWriter, r *http.Request, active bool) {
	id := chi.URLParam(r, "id")

	m, err := h.Members.SetActive(r.Context(), id, active)
	if err != nil {
		if errors.Is(err, memberdomain.ErrMemberNotFound) {
			writeError(w, http.StatusNotFound, "member_not_found", "member not found")
			return
		}
		h.log.InternalError("members.set_active: update failed", err, "member_id", id)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, toMemberResponse(*m))
}

func (h *Handlers) DeleteMember(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.Members.Delete(r.Context(), id); err != nil {
		if errors.Is(err, memberdomain.ErrMemberNotFound) {
			writeError(w, http.StatusNotFound, "member_not_found", "member not found")
			return
		}
		h.log.InternalError("members.delete: delete failed", err, "member_id", id)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
