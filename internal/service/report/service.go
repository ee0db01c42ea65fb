package report

import (
	"context"

	"github.com/cutikita/leave-backend-go/internal/domain/employee"
	"github.com/cutikita/leave-backend-go/internal/domain/leave"
	"github.com/cutikita/leave-backend-go/internal/domain/report"
)

// LeaveCard is the per-employee view the admin prints: identity,
// balances for every leave type, and the full request history.
type LeaveCard struct {
	Employee employee.Employee
	Balances []leave.LeaveBalance
	History  []leave.LeaveRequest
}

// ReportService is the read-only facade over the request store and the
// balance ledger. It never mutates either.
type ReportService struct {
	report.ReportRepository
	employee.EmployeeRepository
	leave.LeaveBalanceRepository
	leave.LeaveRequestRepository
}

func NewReportService(reportRepository report.ReportRepository, employeeRepository employee.EmployeeRepository, leaveBalanceRepository leave.LeaveBalanceRepository, leaveRequestRepository leave.LeaveRequestRepository) *ReportService {
	return &ReportService{
		ReportRepository:       reportRepository,
		EmployeeRepository:     employeeRepository,
		LeaveBalanceRepository: leaveBalanceRepository,
		LeaveRequestRepository: leaveRequestRepository,
	}
}

func (s *ReportService) GetLeaveSummary(ctx context.Context) (report.LeaveSummary, error) {
	return s.ReportRepository.GetLeaveSummary(ctx)
}

func (s *ReportService) GetTypeUsage(ctx context.Context) ([]report.TypeUsage, error) {
	return s.ReportRepository.GetTypeUsage(ctx)
}

func (s *ReportService) GetLeaveCard(ctx context.Context, employeeID string) (LeaveCard, error) {
	emp, err := s.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		return LeaveCard{}, err
	}

	balances, err := s.LeaveBalanceRepository.GetByEmployee(ctx, employeeID)
	if err != nil {
		return LeaveCard{}, err
	}

	history, err := s.LeaveRequestRepository.List(ctx, leave.LeaveRequestFilter{EmployeeID: &employeeID})
	if err != nil {
		return LeaveCard{}, err
	}

	return LeaveCard{
		Employee: emp,
		Balances: balances,
		History:  history,
	}, nil
}
