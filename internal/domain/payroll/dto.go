package payroll

import (
	"github.com/peoplekit/hrledger-backend-go/internal/pkg/validator"
)

// Period identifies one payroll run. Month is 0-11, matching how the
// ledgers key periods everywhere.
type Period struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

func (p Period) Validate() error {
	var errs validator.ValidationErrors

	if p.Month < 0 || p.Month > 11 {
		errs = errs.Add("month", "must be between 0 and 11")
	}
	if p.Year < 2000 || p.Year > 2100 {
		errs = errs.Add("year", "must be a plausible year")
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type FinalizeRequest struct {
	Period
	Rows []Row `json:"rows"`
}

// FinalizeResult reports what one finalization run did. Skipped lists
// employees whose period was already settled; Failed lists employees whose
// transaction could not complete and may be retried.
type FinalizeResult struct {
	Finalized []string `json:"finalized"`
	Skipped   []string `json:"skipped"`
	Failed    []string `json:"failed"`
}
