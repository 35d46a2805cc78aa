package payment

import "errors"

var (
	ErrPaymentNotFound  = errors.New("payment not found")
	ErrDuplicatePayment = errors.New("payment already recorded for member and month")
	ErrNegativeAmount   = errors.New("amount paid cannot be negative")
)
