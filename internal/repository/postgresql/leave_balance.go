package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cutikita/leave-backend-go/internal/domain/leave"
	"github.com/cutikita/leave-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveBalanceRepositoryImpl struct {
	db *database.DB
}

func NewLeaveBalanceRepository(db *database.DB) leave.LeaveBalanceRepository {
	return &leaveBalanceRepositoryImpl{db: db}
}

// Create implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepositoryImpl) Create(ctx context.Context, balance leave.LeaveBalance) (leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_balances (
			id, employee_id, leave_type,
			current_days, carry1_days, carry2_days, used_days, cycle_year,
			created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2,
			$3, $4, $5, $6, $7,
			NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		balance.EmployeeID, balance.LeaveType,
		balance.Current, balance.Carry1, balance.Carry2, balance.Used, balance.CycleYear,
	).Scan(&balance.ID, &balance.CreatedAt, &balance.UpdatedAt)

	if err != nil {
		return leave.LeaveBalance{}, err
	}

	return balance, nil
}

// GetByEmployee implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepositoryImpl) GetByEmployee(ctx context.Context, employeeID string) ([]leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, leave_type,
			   current_days, carry1_days, carry2_days, used_days, cycle_year,
			   created_at, updated_at
		FROM leave_balances
		WHERE employee_id = $1
		ORDER BY leave_type
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	balances := make([]leave.LeaveBalance, 0)
	for rows.Next() {
		var balance leave.LeaveBalance
		if err := rows.Scan(
			&balance.ID, &balance.EmployeeID, &balance.LeaveType,
			&balance.Current, &balance.Carry1, &balance.Carry2, &balance.Used, &balance.CycleYear,
			&balance.CreatedAt, &balance.UpdatedAt,
		); err != nil {
			return nil, err
		}
		balances = append(balances, balance)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(balances) == 0 {
		return nil, leave.ErrBalanceNotFound
	}

	return balances, nil
}

// GetByEmployeeAndType implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepositoryImpl) GetByEmployeeAndType(ctx context.Context, employeeID string, leaveType leave.LeaveType) (leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, leave_type,
			   current_days, carry1_days, carry2_days, used_days, cycle_year,
			   created_at, updated_at
		FROM leave_balances
		WHERE employee_id = $1 AND leave_type = $2
	`

	var balance leave.LeaveBalance
	err := q.QueryRow(ctx, query, employeeID, leaveType).Scan(
		&balance.ID, &balance.EmployeeID, &balance.LeaveType,
		&balance.Current, &balance.Carry1, &balance.Carry2, &balance.Used, &balance.CycleYear,
		&balance.CreatedAt, &balance.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveBalance{}, leave.ErrBalanceNotFound
		}
		return leave.LeaveBalance{}, err
	}

	return balance, nil
}

// Deduct implements leave.LeaveBalanceRepository. The conditional
// update keeps used within total and serializes concurrent deductions
// on the same balance row.
func (r *leaveBalanceRepositoryImpl) Deduct(ctx context.Context, employeeID string, leaveType leave.LeaveType, days int) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_balances
		SET used_days = used_days + $1, updated_at = NOW()
		WHERE employee_id = $2 AND leave_type = $3
		AND used_days + $1 <= current_days + carry1_days + carry2_days
	`

	result, err := q.Exec(ctx, query, days, employeeID, leaveType)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		// Distinguish a missing row from an exhausted balance.
		if _, getErr := r.GetByEmployeeAndType(ctx, employeeID, leaveType); getErr != nil {
			return getErr
		}
		return leave.ErrInsufficientBalance
	}

	return nil
}

// Replace implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepositoryImpl) Replace(ctx context.Context, balance leave.LeaveBalance) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_balances
		SET current_days = $1, carry1_days = $2, carry2_days = $3, used_days = $4,
			cycle_year = $5, updated_at = NOW()
		WHERE id = $6
	`

	result, err := q.Exec(ctx, query,
		balance.Current, balance.Carry1, balance.Carry2, balance.Used,
		balance.CycleYear, balance.ID,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() != 1 {
		return fmt.Errorf("leave balance with id %s not found", balance.ID)
	}

	return nil
}
