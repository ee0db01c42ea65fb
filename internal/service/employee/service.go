package employee

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cutikita/leave-backend-go/internal/domain/employee"
	"github.com/cutikita/leave-backend-go/internal/domain/leave"
	"github.com/cutikita/leave-backend-go/internal/pkg/database"
	"golang.org/x/crypto/bcrypt"
)

// EmployeeService handles onboarding. Creating an employee seeds one
// ledger row per catalog leave type in the same transaction, so an
// employee never exists without balances.
type EmployeeService struct {
	tx      database.TxManager
	catalog *leave.Catalog
	employee.EmployeeRepository
	leave.LeaveBalanceRepository

	now func() time.Time
}

func NewEmployeeService(tx database.TxManager, catalog *leave.Catalog, employeeRepository employee.EmployeeRepository, leaveBalanceRepository leave.LeaveBalanceRepository) *EmployeeService {
	return &EmployeeService{
		tx:                     tx,
		catalog:                catalog,
		EmployeeRepository:     employeeRepository,
		LeaveBalanceRepository: leaveBalanceRepository,
		now:                    time.Now,
	}
}

// Create onboards an employee with default balances from the catalog.
func (s *EmployeeService) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.Employee, error) {
	if err := req.Validate(); err != nil {
		return employee.Employee{}, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to hash password: %w", err)
	}

	var created employee.Employee
	year := s.now().Year()

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		emp := employee.Employee{
			FullName:     req.FullName,
			NIP:          req.NIP,
			Department:   req.Department,
			Email:        req.Email,
			PasswordHash: string(hashedPassword),
			IsAdmin:      req.IsAdmin,
		}

		created, err = s.EmployeeRepository.Create(ctx, emp)
		if err != nil {
			return err
		}

		for _, leaveType := range s.catalog.Types() {
			allocation, err := s.catalog.DefaultAllocation(leaveType)
			if err != nil {
				return err
			}

			balance := leave.LeaveBalance{
				EmployeeID: created.ID,
				LeaveType:  leaveType,
				Current:    allocation,
				CycleYear:  year,
			}
			if _, err := s.LeaveBalanceRepository.Create(ctx, balance); err != nil {
				return fmt.Errorf("failed to seed %s balance: %w", leaveType, err)
			}
		}

		return nil
	})
	if err != nil {
		return employee.Employee{}, err
	}

	slog.Info("Employee onboarded",
		"employee_id", created.ID,
		"department", created.Department,
	)

	return created, nil
}

// Get returns one employee by id.
func (s *EmployeeService) Get(ctx context.Context, id string) (employee.Employee, error) {
	return s.EmployeeRepository.GetByID(ctx, id)
}
