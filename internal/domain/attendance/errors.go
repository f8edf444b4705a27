package attendance

import (
	"errors"
	"fmt"
)

var (
	ErrAlreadyCheckedIn       = errors.New("already checked in today")
	ErrRecordNotFound         = errors.New("attendance record not found")
	ErrRemoteAlreadyProcessed = errors.New("remote check-in already processed")
	ErrNotRemoteCheckIn       = errors.New("attendance record is not a remote check-in")
)

// OutOfRangeError rejects an in-office check-in attempted outside the
// geofence. It carries the measured distance so the caller can present the
// remote alternatives.
type OutOfRangeError struct {
	DistanceMeters float64
	RadiusMeters   float64
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("outside office geofence: %.0fm away, allowed %.0fm", e.DistanceMeters, e.RadiusMeters)
}
