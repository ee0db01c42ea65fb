package leave

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cutikita/leave-backend-go/internal/domain/employee"
	"github.com/cutikita/leave-backend-go/internal/domain/leave"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedYear(year int) func() time.Time {
	return func() time.Time {
		return time.Date(year, time.June, 15, 12, 0, 0, 0, time.UTC)
	}
}

func TestBalanceService_GetEmployeeBalances(t *testing.T) {
	t.Run("returns the employee's ledger rows", func(t *testing.T) {
		balanceRepo := &fakeLeaveBalanceRepository{
			GetByEmployeeFn: func(ctx context.Context, employeeID string) ([]leave.LeaveBalance, error) {
				return []leave.LeaveBalance{
					{EmployeeID: employeeID, LeaveType: leave.LeaveTypeAnnual, Current: 12, Carry1: 6},
				}, nil
			},
		}

		svc := NewBalanceService(fakeTxManager{}, leave.NewCatalog(), balanceRepo, existingEmployee())

		balances, err := svc.GetEmployeeBalances(context.Background(), testEmployeeID)
		require.NoError(t, err)
		require.Len(t, balances, 1)
		assert.Equal(t, 18, balances[0].Total())
	})

	t.Run("unknown employee", func(t *testing.T) {
		svc := NewBalanceService(fakeTxManager{}, leave.NewCatalog(), &fakeLeaveBalanceRepository{}, existingEmployee())

		_, err := svc.GetEmployeeBalances(context.Background(), "0190c6a1-0000-7000-8000-00000000dead")
		assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	})
}

func TestBalanceService_Rollover(t *testing.T) {
	t.Run("annual leave shifts unused days through the carry chain", func(t *testing.T) {
		var replaced leave.LeaveBalance
		balanceRepo := &fakeLeaveBalanceRepository{
			GetByEmployeeAndTypeFn: func(ctx context.Context, employeeID string, leaveType leave.LeaveType) (leave.LeaveBalance, error) {
				return leave.LeaveBalance{
					EmployeeID: employeeID,
					LeaveType:  leaveType,
					Current:    12,
					Carry1:     6,
					Carry2:     2,
					Used:       4,
					CycleYear:  2023,
				}, nil
			},
			ReplaceFn: func(ctx context.Context, balance leave.LeaveBalance) error {
				replaced = balance
				return nil
			},
		}

		svc := NewBalanceService(fakeTxManager{}, leave.NewCatalog(), balanceRepo, existingEmployee())
		svc.now = fixedYear(2024)

		err := svc.Rollover(context.Background(), testEmployeeID, leave.LeaveTypeAnnual)
		require.NoError(t, err)

		assert.Equal(t, 12, replaced.Current)
		assert.Equal(t, 8, replaced.Carry1)
		assert.Equal(t, 6, replaced.Carry2)
		assert.Equal(t, 0, replaced.Used)
		assert.Equal(t, 2024, replaced.CycleYear)
	})

	t.Run("sick leave expires instead of carrying", func(t *testing.T) {
		var replaced leave.LeaveBalance
		balanceRepo := &fakeLeaveBalanceRepository{
			GetByEmployeeAndTypeFn: func(ctx context.Context, employeeID string, leaveType leave.LeaveType) (leave.LeaveBalance, error) {
				return leave.LeaveBalance{
					EmployeeID: employeeID,
					LeaveType:  leaveType,
					Current:    12,
					Used:       3,
					CycleYear:  2023,
				}, nil
			},
			ReplaceFn: func(ctx context.Context, balance leave.LeaveBalance) error {
				replaced = balance
				return nil
			},
		}

		svc := NewBalanceService(fakeTxManager{}, leave.NewCatalog(), balanceRepo, existingEmployee())
		svc.now = fixedYear(2024)

		err := svc.Rollover(context.Background(), testEmployeeID, leave.LeaveTypeSick)
		require.NoError(t, err)

		assert.Equal(t, 12, replaced.Current)
		assert.Equal(t, 0, replaced.Carry1)
		assert.Equal(t, 0, replaced.Carry2)
	})

	t.Run("balance already on the current year is untouched", func(t *testing.T) {
		balanceRepo := &fakeLeaveBalanceRepository{
			GetByEmployeeAndTypeFn: func(ctx context.Context, employeeID string, leaveType leave.LeaveType) (leave.LeaveBalance, error) {
				return leave.LeaveBalance{CycleYear: 2024, Current: 12, Carry1: 8}, nil
			},
			ReplaceFn: func(ctx context.Context, balance leave.LeaveBalance) error {
				t.Fatal("Replace should not be called")
				return nil
			},
		}

		svc := NewBalanceService(fakeTxManager{}, leave.NewCatalog(), balanceRepo, existingEmployee())
		svc.now = fixedYear(2024)

		err := svc.Rollover(context.Background(), testEmployeeID, leave.LeaveTypeAnnual)
		assert.NoError(t, err)
	})

	t.Run("unknown leave type", func(t *testing.T) {
		svc := NewBalanceService(fakeTxManager{}, leave.NewCatalog(), &fakeLeaveBalanceRepository{}, existingEmployee())

		err := svc.Rollover(context.Background(), testEmployeeID, "sabbatical")
		assert.ErrorIs(t, err, leave.ErrUnknownLeaveType)
	})
}

func TestBalanceService_RolloverAll(t *testing.T) {
	t.Run("rolls every employee and skips missing rows", func(t *testing.T) {
		employeeRepo := &fakeEmployeeRepository{
			ListIDsFn: func(ctx context.Context) ([]string, error) {
				return []string{"emp-1", "emp-2"}, nil
			},
		}

		var rolled int
		balanceRepo := &fakeLeaveBalanceRepository{
			GetByEmployeeAndTypeFn: func(ctx context.Context, employeeID string, leaveType leave.LeaveType) (leave.LeaveBalance, error) {
				// emp-2 only holds an annual balance.
				if employeeID == "emp-2" && leaveType != leave.LeaveTypeAnnual {
					return leave.LeaveBalance{}, leave.ErrBalanceNotFound
				}
				return leave.LeaveBalance{EmployeeID: employeeID, LeaveType: leaveType, Current: 12, CycleYear: 2023}, nil
			},
			ReplaceFn: func(ctx context.Context, balance leave.LeaveBalance) error {
				rolled++
				return nil
			},
		}

		svc := NewBalanceService(fakeTxManager{}, leave.NewCatalog(), balanceRepo, employeeRepo)
		svc.now = fixedYear(2024)

		err := svc.RolloverAll(context.Background())
		require.NoError(t, err)

		// All six types for emp-1, only annual for emp-2.
		assert.Equal(t, 7, rolled)
	})

	t.Run("reports how many balances failed", func(t *testing.T) {
		employeeRepo := &fakeEmployeeRepository{
			ListIDsFn: func(ctx context.Context) ([]string, error) {
				return []string{"emp-1"}, nil
			},
		}

		balanceRepo := &fakeLeaveBalanceRepository{
			GetByEmployeeAndTypeFn: func(ctx context.Context, employeeID string, leaveType leave.LeaveType) (leave.LeaveBalance, error) {
				if leaveType == leave.LeaveTypeSick {
					return leave.LeaveBalance{}, errors.New("connection reset")
				}
				return leave.LeaveBalance{CycleYear: 2024}, nil
			},
		}

		svc := NewBalanceService(fakeTxManager{}, leave.NewCatalog(), balanceRepo, employeeRepo)
		svc.now = fixedYear(2024)

		err := svc.RolloverAll(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "1 balance(s) failed")
	})
}
