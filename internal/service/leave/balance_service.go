package leave

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cutikita/leave-backend-go/internal/domain/employee"
	"github.com/cutikita/leave-backend-go/internal/domain/leave"
	"github.com/cutikita/leave-backend-go/internal/pkg/database"
)

// BalanceService reads the per-employee ledger and runs the annual
// rollover. Deductions are not exposed here: only the approval path in
// RequestService may consume entitlement.
type BalanceService struct {
	tx      database.TxManager
	catalog *leave.Catalog
	leave.LeaveBalanceRepository
	employee.EmployeeRepository

	now func() time.Time
}

func NewBalanceService(tx database.TxManager, catalog *leave.Catalog, leaveBalanceRepository leave.LeaveBalanceRepository, employeeRepository employee.EmployeeRepository) *BalanceService {
	return &BalanceService{
		tx:                     tx,
		catalog:                catalog,
		LeaveBalanceRepository: leaveBalanceRepository,
		EmployeeRepository:     employeeRepository,
		now:                    time.Now,
	}
}

// GetEmployeeBalances returns all ledger rows for one employee.
func (s *BalanceService) GetEmployeeBalances(ctx context.Context, employeeID string) ([]leave.LeaveBalance, error) {
	if _, err := s.EmployeeRepository.GetByID(ctx, employeeID); err != nil {
		return nil, err
	}
	return s.LeaveBalanceRepository.GetByEmployee(ctx, employeeID)
}

// Rollover advances one (employee, type) balance into the current
// accounting year: unused current-year days shift to carry1, carry1 to
// carry2 (truncated by the type's carry-over depth), and the catalog
// allocation refills current. A balance already on the current cycle
// year is left untouched, so repeated triggers are harmless.
func (s *BalanceService) Rollover(ctx context.Context, employeeID string, leaveType leave.LeaveType) error {
	allocation, err := s.catalog.DefaultAllocation(leaveType)
	if err != nil {
		return err
	}
	depth, err := s.catalog.CarryOverDepth(leaveType)
	if err != nil {
		return err
	}

	targetYear := s.now().Year()

	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		balance, err := s.LeaveBalanceRepository.GetByEmployeeAndType(ctx, employeeID, leaveType)
		if err != nil {
			return err
		}

		if balance.CycleYear >= targetYear {
			return nil
		}

		next := balance.RolloverNext(allocation, depth)
		next.CycleYear = targetYear

		if err := s.LeaveBalanceRepository.Replace(ctx, next); err != nil {
			return fmt.Errorf("failed to roll over balance: %w", err)
		}

		slog.Info("Leave balance rolled over",
			"employee_id", employeeID,
			"leave_type", leaveType,
			"cycle_year", targetYear,
			"carry1", next.Carry1,
			"carry2", next.Carry2,
		)

		return nil
	})
}

// RolloverAll rolls every employee's balances into the current year.
// Wired as a scheduled job and as a manual admin trigger; each
// (employee, type) pair rolls in its own transaction so one failure
// does not stall the rest.
func (s *BalanceService) RolloverAll(ctx context.Context) error {
	employeeIDs, err := s.EmployeeRepository.ListIDs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list employees: %w", err)
	}

	var failed int
	for _, employeeID := range employeeIDs {
		for _, leaveType := range s.catalog.Types() {
			if err := s.Rollover(ctx, employeeID, leaveType); err != nil {
				if err == leave.ErrBalanceNotFound {
					continue
				}
				failed++
				slog.Warn("Rollover failed",
					"employee_id", employeeID,
					"leave_type", leaveType,
					"error", err,
				)
			}
		}
	}

	if failed > 0 {
		return fmt.Errorf("rollover incomplete: %d balance(s) failed", failed)
	}

	return nil
}
