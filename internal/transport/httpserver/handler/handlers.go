package handler

import (
	"net/http"

	memberdomain "chama-ledger-go/internal/domain/member"
	monthdomain "chama-ledger-go/internal/domain/month"
	paymentdomain "chama-ledger-go/internal/domain/payment"
	"chama-ledger-go/pkg/logger"
	"github.com/go-playground/validator/v10"
)

type Handlers struct {
	Members  *memberdomain.Service
	Months   *monthdomain.Service
	Payments *paymentdomain.Service
	log      logger.Logger
	validate *validator.Validate
}

func New(members *memberdomain.Service, months *monthdomain.Service, payments *paymentdomain.Service, log logger.Logger) *Handlers {
	return &Handlers{
		Members:  members,
		Months:   months,
		Payments: payments,
		log:      log,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
