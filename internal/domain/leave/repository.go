package leave

import (
	"context"
	"time"
)

// LeaveRequestRepository - interface for leave_requests table
type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	List(ctx context.Context, filter LeaveRequestFilter) ([]LeaveRequest, error)

	// Decide moves a pending request into a terminal status. It is a
	// compare-and-swap on status: callers racing on the same id observe
	// exactly one winner, the rest get ErrLeaveRequestDecided. Requests
	// are never deleted.
	Decide(ctx context.Context, id string, status LeaveRequestStatus, note *string, decidedBy string, decidedAt time.Time) error

	// AmendNote updates the admin note on an already-decided request,
	// the only field mutable after a terminal decision.
	AmendNote(ctx context.Context, id string, note string) error
}

// LeaveBalanceRepository - interface for leave_balances table
type LeaveBalanceRepository interface {
	Create(ctx context.Context, balance LeaveBalance) (LeaveBalance, error)
	GetByEmployee(ctx context.Context, employeeID string) ([]LeaveBalance, error)
	GetByEmployeeAndType(ctx context.Context, employeeID string, leaveType LeaveType) (LeaveBalance, error)

	// Deduct increments used by days, guarded so used never exceeds
	// total. The conditional update serializes per balance row.
	Deduct(ctx context.Context, employeeID string, leaveType LeaveType, days int) error

	// Replace overwrites the carry/current/used columns, used by the
	// annual rollover.
	Replace(ctx context.Context, balance LeaveBalance) error
}
