package leave

import (
	"time"

	"github.com/cutikita/leave-backend-go/internal/pkg/validator"
)

type SubmitLeaveRequestRequest struct {
	EmployeeID string `json:"employee_id"`
	LeaveType  string `json:"leave_type"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	Reason     string `json:"reason"`
}

func (r *SubmitLeaveRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if validator.IsEmpty(r.LeaveType) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type",
			Message: "leave_type is required",
		})
	}

	startDate, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be a valid date (YYYY-MM-DD)",
		})
	}

	endDate, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be a valid date (YYYY-MM-DD)",
		})
	}

	if startOK && endOK && endDate.Before(startDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}
	if len(r.Reason) > 500 {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason must not exceed 500 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Dates returns the parsed start and end dates. Call Validate first.
func (r *SubmitLeaveRequestRequest) Dates() (time.Time, time.Time) {
	startDate, _ := time.Parse("2006-01-02", r.StartDate)
	endDate, _ := time.Parse("2006-01-02", r.EndDate)
	return startDate, endDate
}

type DecideLeaveRequestRequest struct {
	RequestID string `json:"request_id"`
	Note      string `json:"note,omitempty"`

	// Set from the URL and JWT claims by the handler, never from the body.
	Outcome LeaveRequestStatus `json:"-"`
	ActorID string             `json:"-"`
}

func (r *DecideLeaveRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RequestID) {
		errs = append(errs, validator.ValidationError{
			Field:   "request_id",
			Message: "request_id is required",
		})
	}

	if r.Outcome != LeaveRequestStatusApproved && r.Outcome != LeaveRequestStatusRejected {
		errs = append(errs, validator.ValidationError{
			Field:   "outcome",
			Message: "outcome must be approved or rejected",
		})
	}

	if validator.IsEmpty(r.ActorID) {
		errs = append(errs, validator.ValidationError{
			Field:   "actor_id",
			Message: "actor_id is required",
		})
	}

	if len(r.Note) > 500 {
		errs = append(errs, validator.ValidationError{
			Field:   "note",
			Message: "note must not exceed 500 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AmendNoteRequest struct {
	RequestID string `json:"request_id"`
	Note      string `json:"note"`
}

func (r *AmendNoteRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RequestID) {
		errs = append(errs, validator.ValidationError{
			Field:   "request_id",
			Message: "request_id is required",
		})
	}
	if len(r.Note) > 500 {
		errs = append(errs, validator.ValidationError{
			Field:   "note",
			Message: "note must not exceed 500 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// LeaveRequestFilter narrows List results. All supplied predicates must
// match; Search is a case-insensitive substring over employee name and
// department.
type LeaveRequestFilter struct {
	Status     *LeaveRequestStatus
	EmployeeID *string
	Search     *string
}

type LeaveRequestResponse struct {
	ID           string     `json:"id"`
	EmployeeID   string     `json:"employee_id"`
	EmployeeName *string    `json:"employee_name,omitempty"`
	Department   *string    `json:"department,omitempty"`
	LeaveType    string     `json:"leave_type"`
	StartDate    string     `json:"start_date"`
	EndDate      string     `json:"end_date"`
	DurationDays int        `json:"duration_days"`
	Reason       string     `json:"reason"`
	Status       string     `json:"status"`
	AdminNote    *string    `json:"admin_note,omitempty"`
	DecidedBy    *string    `json:"decided_by,omitempty"`
	DecidedAt    *time.Time `json:"decided_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

func NewLeaveRequestResponse(r LeaveRequest) LeaveRequestResponse {
	return LeaveRequestResponse{
		ID:           r.ID,
		EmployeeID:   r.EmployeeID,
		EmployeeName: r.EmployeeName,
		Department:   r.Department,
		LeaveType:    string(r.LeaveType),
		StartDate:    r.StartDate.Format("2006-01-02"),
		EndDate:      r.EndDate.Format("2006-01-02"),
		DurationDays: r.DurationDays,
		Reason:       r.Reason,
		Status:       string(r.Status),
		AdminNote:    r.AdminNote,
		DecidedBy:    r.DecidedBy,
		DecidedAt:    r.DecidedAt,
		CreatedAt:    r.CreatedAt,
	}
}

func NewLeaveRequestResponses(requests []LeaveRequest) []LeaveRequestResponse {
	responses := make([]LeaveRequestResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, NewLeaveRequestResponse(r))
	}
	return responses
}

type LeaveBalanceResponse struct {
	LeaveType string `json:"leave_type"`
	Current   int    `json:"current"`
	Carry1    int    `json:"carry1"`
	Carry2    int    `json:"carry2"`
	Used      int    `json:"used"`
	Total     int    `json:"total"`
	Remaining int    `json:"remaining"`
	CycleYear int    `json:"cycle_year"`
}

func NewLeaveBalanceResponse(b LeaveBalance) LeaveBalanceResponse {
	return LeaveBalanceResponse{
		LeaveType: string(b.LeaveType),
		Current:   b.Current,
		Carry1:    b.Carry1,
		Carry2:    b.Carry2,
		Used:      b.Used,
		Total:     b.Total(),
		Remaining: b.Remaining(),
		CycleYear: b.CycleYear,
	}
}

func NewLeaveBalanceResponses(balances []LeaveBalance) []LeaveBalanceResponse {
	responses := make([]LeaveBalanceResponse, 0, len(balances))
	for _, b := range balances {
		responses = append(responses, NewLeaveBalanceResponse(b))
	}
	return responses
}
