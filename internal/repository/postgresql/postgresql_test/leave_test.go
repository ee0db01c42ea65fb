package postgresql_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/cutikita/leave-backend-go/internal/domain/employee"
	"github.com/cutikita/leave-backend-go/internal/domain/leave"
	"github.com/cutikita/leave-backend-go/internal/pkg/database"
	"github.com/cutikita/leave-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var testDB *database.DB

// testInit connects once per test binary. Tests are skipped when no
// test database is configured.
func testInit(t *testing.T) {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	if testDB != nil {
		return
	}

	var err error
	testDB, err = database.NewPostgreSQLDB(dsn)
	require.NoError(t, err, "Failed to connect to test database")
}

func truncateTables(t *testing.T, ctx context.Context) {
	t.Helper()
	for _, table := range []string{"leave_requests", "leave_balances", "employees"} {
		_, err := testDB.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		require.NoError(t, err)
	}
}

func createTestEmployee(t *testing.T, ctx context.Context, isAdmin bool) employee.Employee {
	t.Helper()

	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	nano := time.Now().UnixNano()

	emp, err := postgresql.NewEmployeeRepository(testDB).Create(ctx, employee.Employee{
		FullName:     "Budi Santoso",
		NIP:          fmt.Sprintf("%018d", nano%1_000_000_000_000_000_000),
		Department:   "Sekretariat",
		Email:        fmt.Sprintf("budi-%d@example.go.id", nano),
		PasswordHash: string(hash),
		IsAdmin:      isAdmin,
	})
	require.NoError(t, err)
	return emp
}

func createTestBalance(t *testing.T, ctx context.Context, employeeID string, leaveType leave.LeaveType, current, carry1, carry2, used int) leave.LeaveBalance {
	t.Helper()

	balance, err := postgresql.NewLeaveBalanceRepository(testDB).Create(ctx, leave.LeaveBalance{
		EmployeeID: employeeID,
		LeaveType:  leaveType,
		Current:    current,
		Carry1:     carry1,
		Carry2:     carry2,
		Used:       used,
		CycleYear:  time.Now().Year(),
	})
	require.NoError(t, err)
	return balance
}

func createTestRequest(t *testing.T, ctx context.Context, employeeID string, days int) leave.LeaveRequest {
	t.Helper()

	start := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	request, err := postgresql.NewLeaveRequestRepository(testDB).Create(ctx, leave.LeaveRequest{
		EmployeeID:   employeeID,
		LeaveType:    leave.LeaveTypeAnnual,
		StartDate:    start,
		EndDate:      start.AddDate(0, 0, days-1),
		DurationDays: days,
		Reason:       "Family trip",
		Status:       leave.LeaveRequestStatusPending,
	})
	require.NoError(t, err)
	return request
}

func TestEmployeeRepository_DuplicateConstraints(t *testing.T) {
	testInit(t)
	ctx := context.Background()
	truncateTables(t, ctx)

	repo := postgresql.NewEmployeeRepository(testDB)
	first := createTestEmployee(t, ctx, false)

	_, err := repo.Create(ctx, employee.Employee{
		FullName:     "Siti Aminah",
		NIP:          first.NIP,
		Department:   "Keuangan",
		Email:        "siti@example.go.id",
		PasswordHash: "x",
	})
	assert.ErrorIs(t, err, employee.ErrNIPExists)

	_, err = repo.Create(ctx, employee.Employee{
		FullName:     "Siti Aminah",
		NIP:          "200001012024012001",
		Department:   "Keuangan",
		Email:        first.Email,
		PasswordHash: "x",
	})
	assert.ErrorIs(t, err, employee.ErrEmailExists)
}

func TestLeaveBalanceRepository_Deduct(t *testing.T) {
	testInit(t)
	ctx := context.Background()
	truncateTables(t, ctx)

	repo := postgresql.NewLeaveBalanceRepository(testDB)
	emp := createTestEmployee(t, ctx, false)
	createTestBalance(t, ctx, emp.ID, leave.LeaveTypeAnnual, 12, 6, 0, 0)

	t.Run("deducts within the total", func(t *testing.T) {
		err := repo.Deduct(ctx, emp.ID, leave.LeaveTypeAnnual, 5)
		require.NoError(t, err)

		balance, err := repo.GetByEmployeeAndType(ctx, emp.ID, leave.LeaveTypeAnnual)
		require.NoError(t, err)
		assert.Equal(t, 5, balance.Used)
		assert.Equal(t, 13, balance.Remaining())
	})

	t.Run("refuses to overdraw", func(t *testing.T) {
		err := repo.Deduct(ctx, emp.ID, leave.LeaveTypeAnnual, 14)
		assert.ErrorIs(t, err, leave.ErrInsufficientBalance)

		balance, err := repo.GetByEmployeeAndType(ctx, emp.ID, leave.LeaveTypeAnnual)
		require.NoError(t, err)
		assert.Equal(t, 5, balance.Used)
	})

	t.Run("missing balance row", func(t *testing.T) {
		err := repo.Deduct(ctx, emp.ID, leave.LeaveTypeMaternity, 1)
		assert.ErrorIs(t, err, leave.ErrBalanceNotFound)
	})
}

func TestLeaveRequestRepository_DecideIsCompareAndSwap(t *testing.T) {
	testInit(t)
	ctx := context.Background()
	truncateTables(t, ctx)

	repo := postgresql.NewLeaveRequestRepository(testDB)
	emp := createTestEmployee(t, ctx, false)
	admin := createTestEmployee(t, ctx, true)
	request := createTestRequest(t, ctx, emp.ID, 5)

	note := "Enjoy"
	err := repo.Decide(ctx, request.ID, leave.LeaveRequestStatusApproved, &note, admin.ID, time.Now().UTC())
	require.NoError(t, err)

	// A second decision must lose the swap.
	err = repo.Decide(ctx, request.ID, leave.LeaveRequestStatusRejected, nil, admin.ID, time.Now().UTC())
	assert.ErrorIs(t, err, leave.ErrLeaveRequestDecided)

	decided, err := repo.GetByID(ctx, request.ID)
	require.NoError(t, err)
	assert.Equal(t, leave.LeaveRequestStatusApproved, decided.Status)
	require.NotNil(t, decided.AdminNote)
	assert.Equal(t, "Enjoy", *decided.AdminNote)
	require.NotNil(t, decided.DecidedBy)
	assert.Equal(t, admin.ID, *decided.DecidedBy)

	err = repo.Decide(ctx, "00000000-0000-7000-8000-000000000000", leave.LeaveRequestStatusApproved, nil, admin.ID, time.Now().UTC())
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)
}

func TestLeaveRequestRepository_ConcurrentDecide(t *testing.T) {
	testInit(t)
	ctx := context.Background()
	truncateTables(t, ctx)

	repo := postgresql.NewLeaveRequestRepository(testDB)
	emp := createTestEmployee(t, ctx, false)
	admin := createTestEmployee(t, ctx, true)
	request := createTestRequest(t, ctx, emp.ID, 5)

	const workers = 8
	results := make(chan error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- repo.Decide(ctx, request.ID, leave.LeaveRequestStatusApproved, nil, admin.ID, time.Now().UTC())
		}()
	}
	wg.Wait()
	close(results)

	var wins int
	for err := range results {
		if err == nil {
			wins++
		} else {
			assert.ErrorIs(t, err, leave.ErrLeaveRequestDecided)
		}
	}
	assert.Equal(t, 1, wins)
}

func TestLeaveRequestRepository_ListFilters(t *testing.T) {
	testInit(t)
	ctx := context.Background()
	truncateTables(t, ctx)

	repo := postgresql.NewLeaveRequestRepository(testDB)
	emp := createTestEmployee(t, ctx, false)
	other := createTestEmployee(t, ctx, false)
	admin := createTestEmployee(t, ctx, true)

	first := createTestRequest(t, ctx, emp.ID, 3)
	createTestRequest(t, ctx, other.ID, 2)
	require.NoError(t, repo.Decide(ctx, first.ID, leave.LeaveRequestStatusApproved, nil, admin.ID, time.Now().UTC()))

	t.Run("by status", func(t *testing.T) {
		status := leave.LeaveRequestStatusApproved
		requests, err := repo.List(ctx, leave.LeaveRequestFilter{Status: &status})
		require.NoError(t, err)
		require.Len(t, requests, 1)
		assert.Equal(t, first.ID, requests[0].ID)
	})

	t.Run("by employee", func(t *testing.T) {
		requests, err := repo.List(ctx, leave.LeaveRequestFilter{EmployeeID: &other.ID})
		require.NoError(t, err)
		require.Len(t, requests, 1)
		assert.Equal(t, other.ID, requests[0].EmployeeID)
	})

	t.Run("by department search", func(t *testing.T) {
		search := "sekretariat"
		requests, err := repo.List(ctx, leave.LeaveRequestFilter{Search: &search})
		require.NoError(t, err)
		assert.Len(t, requests, 2)
	})

	t.Run("no filter returns all in creation order", func(t *testing.T) {
		requests, err := repo.List(ctx, leave.LeaveRequestFilter{})
		require.NoError(t, err)
		require.Len(t, requests, 2)
		assert.Equal(t, first.ID, requests[0].ID)
		require.NotNil(t, requests[0].EmployeeName)
		assert.Equal(t, "Budi Santoso", *requests[0].EmployeeName)
	})
}

// A failed deduction inside the decide transaction must also roll the
// status change back.
func TestWithTransaction_ApprovalRollsBackWithDeduction(t *testing.T) {
	testInit(t)
	ctx := context.Background()
	truncateTables(t, ctx)

	requestRepo := postgresql.NewLeaveRequestRepository(testDB)
	balanceRepo := postgresql.NewLeaveBalanceRepository(testDB)
	emp := createTestEmployee(t, ctx, false)
	admin := createTestEmployee(t, ctx, true)
	createTestBalance(t, ctx, emp.ID, leave.LeaveTypeAnnual, 3, 0, 0, 0)
	request := createTestRequest(t, ctx, emp.ID, 5)

	err := postgresql.WithTransaction(ctx, testDB, func(ctx context.Context) error {
		if err := requestRepo.Decide(ctx, request.ID, leave.LeaveRequestStatusApproved, nil, admin.ID, time.Now().UTC()); err != nil {
			return err
		}
		return balanceRepo.Deduct(ctx, emp.ID, leave.LeaveTypeAnnual, request.DurationDays)
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, leave.ErrInsufficientBalance))

	// The status swap must not have survived the rollback.
	after, err := requestRepo.GetByID(ctx, request.ID)
	require.NoError(t, err)
	assert.Equal(t, leave.LeaveRequestStatusPending, after.Status)

	balance, err := balanceRepo.GetByEmployeeAndType(ctx, emp.ID, leave.LeaveTypeAnnual)
	require.NoError(t, err)
	assert.Equal(t, 0, balance.Used)
}
