package attendance

import (
	"github.com/peoplekit/hrledger-backend-go/internal/pkg/validator"
)

type CheckInRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	// RemoteMode is empty for an in-office check-in.
	RemoteMode string `json:"remote_mode,omitempty"`
}

func (r CheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Latitude < -90 || r.Latitude > 90 {
		errs = errs.Add("latitude", "must be between -90 and 90")
	}
	if r.Longitude < -180 || r.Longitude > 180 {
		errs = errs.Add("longitude", "must be between -180 and 180")
	}
	if r.RemoteMode != "" && !RemoteMode(r.RemoteMode).Valid() {
		errs = errs.Add("remote_mode", "must be wfh or out_of_office")
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RemoteDecisionRequest struct {
	Reason string `json:"reason"`
}
