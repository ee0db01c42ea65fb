package leave

import "time"

// LeaveType enumerates the leave categories from the catalog.
type LeaveType string

const (
	LeaveTypeAnnual        LeaveType = "annual"
	LeaveTypeSick          LeaveType = "sick"
	LeaveTypeMaternity     LeaveType = "maternity"
	LeaveTypeExtended      LeaveType = "extended"
	LeaveTypeSpecialReason LeaveType = "special_reason"
	LeaveTypeUnpaid        LeaveType = "unpaid"
)

type LeaveRequestStatus string

const (
	LeaveRequestStatusPending  LeaveRequestStatus = "pending"
	LeaveRequestStatusApproved LeaveRequestStatus = "approved"
	LeaveRequestStatusRejected LeaveRequestStatus = "rejected"
)

// Terminal reports whether the status can no longer transition.
func (s LeaveRequestStatus) Terminal() bool {
	return s == LeaveRequestStatusApproved || s == LeaveRequestStatusRejected
}

// LeaveRequest entity
type LeaveRequest struct {
	ID         string
	EmployeeID string
	LeaveType  LeaveType

	StartDate    time.Time
	EndDate      time.Time
	DurationDays int

	Reason    string
	Status    LeaveRequestStatus
	AdminNote *string

	DecidedBy *string
	DecidedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	// Relationships (for responses)
	EmployeeName *string
	Department   *string
}

// DurationDays counts calendar days between start and end, both inclusive.
// Dates are expected at midnight UTC.
func DurationDays(startDate, endDate time.Time) int {
	return int(endDate.Sub(startDate)/(24*time.Hour)) + 1
}

// LeaveBalance entity, one row per (employee, leave type).
// Total entitlement is the current-year allocation plus up to two
// carried-over prior years; used counts days consumed this cycle.
type LeaveBalance struct {
	ID         string
	EmployeeID string
	LeaveType  LeaveType

	Current int // N, this year's allocation
	Carry1  int // N-1
	Carry2  int // N-2
	Used    int

	// CycleYear is the accounting year the row currently represents.
	// The rollover advances it, which makes repeated rollover triggers
	// within the same year harmless.
	CycleYear int

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (b LeaveBalance) Total() int {
	return b.Current + b.Carry1 + b.Carry2
}

func (b LeaveBalance) Remaining() int {
	return b.Total() - b.Used
}

// RolloverNext returns the balance after the annual rollover: the prior
// year's unused portion shifts into carry1, carry1 shifts into carry2,
// and the new allocation replaces current. Carries beyond the type's
// carry-over depth are discarded.
func (b LeaveBalance) RolloverNext(allocation, carryOverDepth int) LeaveBalance {
	next := b

	unused := b.Current - b.Used
	if unused < 0 {
		unused = 0
	}

	next.Carry2 = b.Carry1
	next.Carry1 = unused
	next.Current = allocation
	next.Used = 0

	if carryOverDepth < 2 {
		next.Carry2 = 0
	}
	if carryOverDepth < 1 {
		next.Carry1 = 0
	}

	return next
}
