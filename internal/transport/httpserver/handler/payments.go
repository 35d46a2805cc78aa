package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	memberdomain "chama-ledger-go/internal/domain/member"
	monthdomain "chama-ledger-go/internal/domain/month"
	paymentdomain "chama-ledger-go/internal/domain/payment"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type createPaymentRequest struct {
	MemberID   string           `json:"member_id" validate:"required,uuid4"`
	MonthID    string           `json:"month_id" validate:"required,uuid4"`
	AmountPaid *decimal.Decimal `json:"amount_paid"`
	PaidDate   string           `json:"paid_date" validate:"omitempty,datetime=2006-01-02"`
}

type updatePaymentRequest struct {
	AmountPaid *decimal.Decimal `json:"amount_paid"`
	PaidDate   string           `json:"paid_date" validate:"omitempty,datetime=2006-01-02"`
}

type paymentResponse struct {
	ID         string  `json:"id"`
	MemberID   string  `json:"member_id"`
	MonthID    string  `json:"month_id"`
	MemberName string  `json:"member_name,omitempty"`
	MonthLabel string  `json:"month_label,omitempty"`
	AmountPaid string  `json:"amount_paid"`
	PaidDate   *string `json:"paid_date"`
	FineAmount string  `json:"fine_amount"`
	Status     string  `json:"status"`
	RecordedAt string  `json:"recorded_at"`
}

type paymentListResponse struct {
	Items []paymentResponse `json:"items"`
	Total int64             `json:"total"`
}

type entryOptionsResponse struct {
	Members []memberResponse `json:"members"`
	Months  []monthResponse  `json:"months"`
}

func toPaymentResponse(p paymentdomain.Payment) paymentResponse {
	response := paymentResponse{
		ID:         p.ID,
		MemberID:   p.MemberID,
		MonthID:    p.MonthID,
		AmountPaid: p.AmountPaid.StringFixed(2),
		FineAmount: p.FineAmount.StringFixed(2),
		Status:     p.Status,
		RecordedAt: p.RecordedAt.Format(time.RFC3339),
	}
	if p.PaidDate != nil {
		paid := formatDate(*p.PaidDate)
		response.PaidDate = &paid
	}
	if p.Member.ID != "" {
		response.MemberName = p.Member.FullName
	}
	if p.Month.ID != "" {
		response.MonthLabel = p.Month.Label()
	}
	return response
}

func (h *Handlers) ListPayments(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	limit, err := parseIntParam(query.Get("limit"), 50)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid limit")
		return
	}
	offset, err := parseIntParam(query.Get("offset"), 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid offset")
		return
	}

	status := strings.TrimSpace(query.Get("status"))
	switch status {
	case "", paymentdomain.StatusPending, paymentdomain.StatusOnTime, paymentdomain.StatusLate:
	default:
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid status")
		return
	}

	filter := paymentdomain.ListFilter{
		MemberID: strings.TrimSpace(query.Get("member_id")),
		MonthID:  strings.TrimSpace(query.Get("month_id")),
		Status:   status,
		Limit:    limit,
		Offset:   offset,
	}

	payments, total, err := h.Payments.List(r.Context(), filter)
	if err != nil {
		h.log.InternalError("payments.list: list failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	items := make([]paymentResponse, 0, len(payments))
	for _, p := range payments {
		items = append(items, toPaymentResponse(p))
	}

	writeJSON(w, http.StatusOK, paymentListResponse{Items: items, Total: total})
}

func (h *Handlers) CreatePayment(w http.ResponseWriter, r *http.Request) {
	var req createPaymentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	input := paymentdomain.CreateInput{
		MemberID:   req.MemberID,
		MonthID:    req.MonthID,
		AmountPaid: req.AmountPaid,
	}
	if req.PaidDate != "" {
		paidDate, err := parseDateRequired(req.PaidDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", "invalid paid date")
			return
		}
		input.PaidDate = &paidDate
	}

	created, err := h.Payments.Create(r.Context(), input)
	if err != nil {
		h.writePaymentError(w, err, "payments.create", "member_id", req.MemberID, "month_id", req.MonthID)
		return
	}

	writeJSON(w, http.StatusCreated, toPaymentResponse(*created))
}

func (h *Handlers) GetPayment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p, err := h.Payments.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, paymentdomain.ErrPaymentNotFound) {
			writeError(w, http.StatusNotFound, "payment_not_found", "payment not found")
			return
		}
		h.log.InternalError("payments.get: get failed", err, "payment_id", id)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, toPaymentResponse(*p))
}

func (h *Handlers) UpdatePayment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req updatePaymentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	input := paymentdomain.UpdateInput{AmountPaid: req.AmountPaid}
	if req.PaidDate != "" {
		paidDate, err := parseDateRequired(req.PaidDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", "invalid paid date")
			return
		}
		input.PaidDate = &paidDate
	}

	updated, err := h.Payments.Update(r.Context(), id, input)
	if err != nil {
		h.writePaymentError(w, err, "payments.update", "payment_id", id)
		return
	}

	writeJSON(w, http.StatusOK, toPaymentResponse(*updated))
}

func (h *Handlers) DeletePayment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.Payments.Delete(r.Context(), id); err != nil {
		if errors.Is(err, paymentdomain.ErrPaymentNotFound) {
			writeError(w, http.StatusNotFound, "payment_not_found", "payment not found")
			return
		}
		h.log.InternalError("payments.delete: delete failed", err, "payment_id", id)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) PaymentEntryOptions(w http.ResponseWriter, r *http.Request) {
	options, err := h.Payments.EntryOptions(r.Context())
	if err != nil {
		h.log.InternalError("payments.entry_options: load failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	response := entryOptionsResponse{
		Members: make([]memberResponse, 0, len(options.Members)),
		Months:  make([]monthResponse, 0, len(options.Months)),
	}
	for _, m := range options.Members {
		response.Members = append(response.Members, toMemberResponse(m))
	}
	for _, m := range options.Months {
		response.Months = append(response.Months, toMonthResponse(m))
	}

	writeJSON(w, http.StatusOK, response)
}

// writePaymentError maps payment write failures onto the error envelope:
// accumulated entry-validation failures are user-correctable and carry
// their messages; a constraint hit on the residual race window between
// the validator's check and the write surfaces as a generic conflict.
func (h *Handlers) writePaymentError(w http.ResponseWriter, err error, op string, logArgs ...any) {
	var verrs paymentdomain.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		h.log.BusinessError(op+": validation failed", err, logArgs...)
		writeValidationError(w, verrs.Messages())
	case errors.Is(err, paymentdomain.ErrDuplicatePayment):
		h.log.BusinessError(op+": duplicate payment", err, logArgs...)
		writeError(w, http.StatusConflict, "could_not_save", "could not save payment")
	case errors.Is(err, paymentdomain.ErrNegativeAmount):
		h.log.BusinessError(op+": negative amount", err, logArgs...)
		writeError(w, http.StatusBadRequest, "invalid_request", "amount paid cannot be negative")
	case errors.Is(err, paymentdomain.ErrPaymentNotFound):
		writeError(w, http.StatusNotFound, "payment_not_found", "payment not found")
	case errors.Is(err, memberdomain.ErrMemberNotFound):
		h.log.BusinessError(op+": member not found", err, logArgs...)
		writeError(w, http.StatusNotFound, "member_not_found", "member not found")
	case errors.Is(err, monthdomain.ErrMonthNotFound):
		h.log.BusinessError(op+": month not found", err, logArgs...)
		writeError(w, http.StatusNotFound, "month_not_found", "contribution month not found")
	default:
		h.log.InternalError(op+": failed", err, logArgs...)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
	}
}
