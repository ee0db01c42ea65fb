package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cutikita/leave-backend-go/internal/domain/leave"
	"github.com/cutikita/leave-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

// Create implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (
			id, employee_id, leave_type,
			start_date, end_date, duration_days,
			reason, status,
			created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2,
			$3, $4, $5,
			$6, $7,
			NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		request.EmployeeID, request.LeaveType,
		request.StartDate, request.EndDate, request.DurationDays,
		request.Reason, request.Status,
	).Scan(&request.ID, &request.CreatedAt, &request.UpdatedAt)

	if err != nil {
		return leave.LeaveRequest{}, err
	}

	return request, nil
}

// GetByID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT lr.id, lr.employee_id, lr.leave_type,
			   lr.start_date, lr.end_date, lr.duration_days,
			   lr.reason, lr.status, lr.admin_note,
			   lr.decided_by, lr.decided_at,
			   lr.created_at, lr.updated_at,
			   e.full_name AS employee_name,
			   e.department AS department
		FROM leave_requests lr
		JOIN employees e ON lr.employee_id = e.id
		WHERE lr.id = $1
	`

	var req leave.LeaveRequest
	var employeeName, department string

	err := q.QueryRow(ctx, query, id).Scan(
		&req.ID, &req.EmployeeID, &req.LeaveType,
		&req.StartDate, &req.EndDate, &req.DurationDays,
		&req.Reason, &req.Status, &req.AdminNote,
		&req.DecidedBy, &req.DecidedAt,
		&req.CreatedAt, &req.UpdatedAt,
		&employeeName, &department,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, err
	}

	req.EmployeeName = &employeeName
	req.Department = &department

	return req, nil
}

// List implements leave.LeaveRequestRepository. Results come back in
// creation order; all supplied filter predicates must match.
func (r *leaveRequestRepositoryImpl) List(ctx context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	whereClause := "WHERE 1=1"
	args := []interface{}{}
	argIndex := 1

	if filter.Status != nil {
		whereClause += fmt.Sprintf(" AND lr.status = $%d", argIndex)
		args = append(args, *filter.Status)
		argIndex++
	}

	if filter.EmployeeID != nil {
		whereClause += fmt.Sprintf(" AND lr.employee_id = $%d", argIndex)
		args = append(args, *filter.EmployeeID)
		argIndex++
	}

	if filter.Search != nil {
		whereClause += fmt.Sprintf(" AND (e.full_name ILIKE $%d OR e.department ILIKE $%d)", argIndex, argIndex)
		args = append(args, "%"+*filter.Search+"%")
		argIndex++
	}

	query := fmt.Sprintf(`
		SELECT lr.id, lr.employee_id, lr.leave_type,
			   lr.start_date, lr.end_date, lr.duration_days,
			   lr.reason, lr.status, lr.admin_note,
			   lr.decided_by, lr.decided_at,
			   lr.created_at, lr.updated_at,
			   e.full_name AS employee_name,
			   e.department AS department
		FROM leave_requests lr
		JOIN employees e ON lr.employee_id = e.id
		%s
		ORDER BY lr.created_at
	`, whereClause)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]leave.LeaveRequest, 0)
	for rows.Next() {
		var req leave.LeaveRequest
		var employeeName, department string

		if err := rows.Scan(
			&req.ID, &req.EmployeeID, &req.LeaveType,
			&req.StartDate, &req.EndDate, &req.DurationDays,
			&req.Reason, &req.Status, &req.AdminNote,
			&req.DecidedBy, &req.DecidedAt,
			&req.CreatedAt, &req.UpdatedAt,
			&employeeName, &department,
		); err != nil {
			return nil, err
		}

		req.EmployeeName = &employeeName
		req.Department = &department

		requests = append(requests, req)
	}

	return requests, rows.Err()
}

// Decide implements leave.LeaveRequestRepository. The status predicate
// makes the update a compare-and-swap: of concurrent callers deciding
// the same request, only the first one still seeing 'pending' wins.
func (r *leaveRequestRepositoryImpl) Decide(ctx context.Context, id string, status leave.LeaveRequestStatus, note *string, decidedBy string, decidedAt time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = $1, admin_note = $2, decided_by = $3, decided_at = $4,
			updated_at = NOW()
		WHERE id = $5 AND status = $6
	`

	result, err := q.Exec(ctx, query, status, note, decidedBy, decidedAt, id, leave.LeaveRequestStatusPending)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		var existing leave.LeaveRequestStatus
		err := q.QueryRow(ctx, `SELECT status FROM leave_requests WHERE id = $1`, id).Scan(&existing)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return leave.ErrLeaveRequestNotFound
			}
			return err
		}
		return leave.ErrLeaveRequestDecided
	}

	return nil
}

// AmendNote implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) AmendNote(ctx context.Context, id string, note string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET admin_note = $1, updated_at = NOW()
		WHERE id = $2
	`

	result, err := q.Exec(ctx, query, note, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return leave.ErrLeaveRequestNotFound
	}

	return nil
}
