package reimbursement

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/peoplekit/hrledger-backend-go/internal/pkg/validator"
)

type CreateRequest struct {
	PaymentDate string `json:"payment_date"`
	Amount      string `json:"amount"`
	Reason      string `json:"reason"`
	ReceiptURL  string `json:"receipt_url,omitempty"`
}

func (r CreateRequest) Validate() (time.Time, decimal.Decimal, error) {
	var errs validator.ValidationErrors

	paymentDate, ok := validator.IsValidDate(r.PaymentDate)
	if !ok {
		errs = errs.Add("payment_date", "must be a date in YYYY-MM-DD format")
	}
	amount, err := decimal.NewFromString(r.Amount)
	if err != nil {
		errs = errs.Add("amount", "must be a decimal number")
	} else if !amount.IsPositive() {
		errs = errs.Add("amount", "must be positive")
	}
	if validator.IsEmpty(r.Reason) {
		errs = errs.Add("reason", "is required")
	}

	if len(errs) > 0 {
		return time.Time{}, decimal.Decimal{}, errs
	}
	return paymentDate, amount, nil
}

type DecisionRequest struct {
	Reason string `json:"reason"`
}
