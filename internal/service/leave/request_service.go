package leave

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cutikita/leave-backend-go/internal/domain/employee"
	"github.com/cutikita/leave-backend-go/internal/domain/leave"
	"github.com/cutikita/leave-backend-go/internal/pkg/database"
	"github.com/cutikita/leave-backend-go/internal/pkg/validator"
)

// RequestService owns the request lifecycle: submission and the
// pending -> approved/rejected state machine. An approval and its
// balance deduction always commit in one transaction.
type RequestService struct {
	tx      database.TxManager
	catalog *leave.Catalog
	leave.LeaveRequestRepository
	leave.LeaveBalanceRepository
	employee.EmployeeRepository

	now func() time.Time
}

func NewRequestService(tx database.TxManager, catalog *leave.Catalog, leaveRequestRepository leave.LeaveRequestRepository, leaveBalanceRepository leave.LeaveBalanceRepository, employeeRepository employee.EmployeeRepository) *RequestService {
	return &RequestService{
		tx:                     tx,
		catalog:                catalog,
		LeaveRequestRepository: leaveRequestRepository,
		LeaveBalanceRepository: leaveBalanceRepository,
		EmployeeRepository:     employeeRepository,
		now:                    time.Now,
	}
}

// Submit validates and persists a new request as pending. It never
// touches the balance ledger.
func (r *RequestService) Submit(ctx context.Context, req leave.SubmitLeaveRequestRequest) (leave.LeaveRequest, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequest{}, err
	}

	leaveType := leave.LeaveType(req.LeaveType)
	if !r.catalog.Valid(leaveType) {
		return leave.LeaveRequest{}, leave.ErrUnknownLeaveType
	}

	emp, err := r.EmployeeRepository.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	startDate, endDate := req.Dates()

	request := leave.LeaveRequest{
		EmployeeID:   emp.ID,
		LeaveType:    leaveType,
		StartDate:    startDate,
		EndDate:      endDate,
		DurationDays: leave.DurationDays(startDate, endDate),
		Reason:       req.Reason,
		Status:       leave.LeaveRequestStatusPending,
	}

	created, err := r.LeaveRequestRepository.Create(ctx, request)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	slog.Info("Leave request submitted",
		"request_id", created.ID,
		"employee_id", created.EmployeeID,
		"leave_type", created.LeaveType,
		"duration_days", created.DurationDays,
	)

	return created, nil
}

// Decide resolves a pending request. The status compare-and-swap and,
// on approval, the guarded balance deduction run in one transaction:
// either both commit or neither does. Concurrent callers deciding the
// same request observe exactly one winner; the rest receive
// ErrLeaveRequestDecided and change nothing.
func (r *RequestService) Decide(ctx context.Context, requestID string, outcome leave.LeaveRequestStatus, note string, actorID string) (leave.LeaveRequest, error) {
	req := leave.DecideLeaveRequestRequest{
		RequestID: requestID,
		Note:      note,
		Outcome:   outcome,
		ActorID:   actorID,
	}
	if err := req.Validate(); err != nil {
		return leave.LeaveRequest{}, err
	}

	var decided leave.LeaveRequest

	err := r.tx.WithinTx(ctx, func(ctx context.Context) error {
		request, err := r.LeaveRequestRepository.GetByID(ctx, requestID)
		if err != nil {
			return err
		}

		if request.Status.Terminal() {
			return leave.ErrLeaveRequestDecided
		}

		var notePtr *string
		if note != "" {
			notePtr = &note
		}
		decidedAt := r.now().UTC()

		// CAS on status: losers of a decide race fail here.
		if err := r.LeaveRequestRepository.Decide(ctx, requestID, outcome, notePtr, actorID, decidedAt); err != nil {
			return err
		}

		if outcome == leave.LeaveRequestStatusApproved {
			if err := r.LeaveBalanceRepository.Deduct(ctx, request.EmployeeID, request.LeaveType, request.DurationDays); err != nil {
				return err
			}
		}

		request.Status = outcome
		request.AdminNote = notePtr
		request.DecidedBy = &actorID
		request.DecidedAt = &decidedAt
		decided = request

		return nil
	})
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	slog.Info("Leave request decided",
		"request_id", decided.ID,
		"outcome", decided.Status,
		"actor_id", actorID,
	)

	return decided, nil
}

// Get returns a single request by id.
func (r *RequestService) Get(ctx context.Context, requestID string) (leave.LeaveRequest, error) {
	return r.LeaveRequestRepository.GetByID(ctx, requestID)
}

// List returns requests matching the filter, in creation order.
func (r *RequestService) List(ctx context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequest, error) {
	return r.LeaveRequestRepository.List(ctx, filter)
}

// AmendNote updates the admin note on a decided request. The note is
// the only field mutable after a terminal decision.
func (r *RequestService) AmendNote(ctx context.Context, req leave.AmendNoteRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	request, err := r.LeaveRequestRepository.GetByID(ctx, req.RequestID)
	if err != nil {
		return err
	}
	if !request.Status.Terminal() {
		// Pending notes travel with the decision itself.
		return validator.ValidationErrors{{
			Field:   "request_id",
			Message: "request has not been decided yet",
		}}
	}

	return r.LeaveRequestRepository.AmendNote(ctx, req.RequestID, req.Note)
}
