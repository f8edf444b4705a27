package response

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/peoplekit/hrledger-backend-go/internal/domain/attendance"
	"github.com/peoplekit/hrledger-backend-go/internal/domain/balance"
	"github.com/peoplekit/hrledger-backend-go/internal/domain/employee"
	"github.com/peoplekit/hrledger-backend-go/internal/domain/leave"
	"github.com/peoplekit/hrledger-backend-go/internal/domain/payroll"
	"github.com/peoplekit/hrledger-backend-go/internal/domain/reimbursement"
	"github.com/peoplekit/hrledger-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses. Wrong-state workflow
// errors map to 409 so the caller knows to refresh; they are deliberately
// distinct from validation failures.
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Out-of-geofence check-ins carry the measured distance and the remote
	// alternatives the employee may pick instead.
	var outOfRange *attendance.OutOfRangeError
	if errors.As(err, &outOfRange) {
		BadRequest(w, outOfRange.Error(), map[string]string{
			"distance_meters": fmt.Sprintf("%.0f", outOfRange.DistanceMeters),
			"options":         "wfh, out_of_office",
		})
		return
	}

	switch {
	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrNoAssignedManager):
		BadRequest(w, "Employee has no assigned manager", nil)
	case errors.Is(err, employee.ErrEmployeeInactive):
		Forbidden(w, "Employee is inactive")

	// Balance domain errors
	case errors.Is(err, balance.ErrRecordNotFound):
		NotFound(w, "Balance record not found")
	case errors.Is(err, balance.ErrUnknownField):
		BadRequest(w, "Unknown balance field", nil)

	// Leave domain errors
	case errors.Is(err, leave.ErrRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrAlreadyProcessed):
		Conflict(w, "Leave request already processed")
	case errors.Is(err, leave.ErrNotRequestOwner):
		Forbidden(w, "Leave request belongs to another employee")
	case errors.Is(err, leave.ErrNotRequestManager):
		Forbidden(w, "Leave request is assigned to another manager")
	case errors.Is(err, leave.ErrFounderDecisionRequired):
		Forbidden(w, "Escalated leave requests need a founder decision")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "Already checked in today")
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrRemoteAlreadyProcessed):
		Conflict(w, "Remote check-in already processed")
	case errors.Is(err, attendance.ErrNotRemoteCheckIn):
		BadRequest(w, "Attendance record is not a remote check-in", nil)

	// Reimbursement domain errors
	case errors.Is(err, reimbursement.ErrClaimNotFound):
		NotFound(w, "Reimbursement claim not found")
	case errors.Is(err, reimbursement.ErrAlreadyProcessed):
		Conflict(w, "Reimbursement claim already processed")
	case errors.Is(err, reimbursement.ErrNotClaimOwner):
		Forbidden(w, "Reimbursement claim belongs to another employee")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrInvalidPeriod):
		BadRequest(w, "Invalid payroll period", nil)
	case errors.Is(err, payroll.ErrPayslipNotFound):
		NotFound(w, "Payslip not found")
	case errors.Is(err, payroll.ErrSalaryConfigNotFound):
		NotFound(w, "Salary config not found")
	case errors.Is(err, payroll.ErrNotPayslipOwner):
		Forbidden(w, "Payslip belongs to another employee")

	default:
		InternalServerError(w, "Something went wrong")
	}
}
