package postgresql

import (
	"context"

	"github.com/cutikita/leave-backend-go/internal/domain/report"
	"github.com/cutikita/leave-backend-go/internal/pkg/database"
)

type reportRepositoryImpl struct {
	db *database.DB
}

func NewReportRepository(db *database.DB) report.ReportRepository {
	return &reportRepositoryImpl{db: db}
}

// GetLeaveSummary implements report.ReportRepository.
func (r *reportRepositoryImpl) GetLeaveSummary(ctx context.Context) (report.LeaveSummary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*),
			   COUNT(*) FILTER (WHERE status = 'pending'),
			   COUNT(*) FILTER (WHERE status = 'approved'),
			   COUNT(*) FILTER (WHERE status = 'rejected'),
			   COALESCE(SUM(duration_days) FILTER (WHERE status = 'approved'), 0)
		FROM leave_requests
	`

	var summary report.LeaveSummary
	err := q.QueryRow(ctx, query).Scan(
		&summary.TotalRequests,
		&summary.PendingRequests,
		&summary.ApprovedRequests,
		&summary.RejectedRequests,
		&summary.ApprovedDays,
	)
	if err != nil {
		return report.LeaveSummary{}, err
	}

	return summary, nil
}

// GetTypeUsage implements report.ReportRepository.
func (r *reportRepositoryImpl) GetTypeUsage(ctx context.Context) ([]report.TypeUsage, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT leave_type,
			   SUM(current_days + carry1_days + carry2_days),
			   SUM(used_days)
		FROM leave_balances
		GROUP BY leave_type
		ORDER BY leave_type
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	usages := make([]report.TypeUsage, 0)
	for rows.Next() {
		var usage report.TypeUsage
		if err := rows.Scan(&usage.LeaveType, &usage.TotalDays, &usage.UsedDays); err != nil {
			return nil, err
		}
		usages = append(usages, usage)
	}

	return usages, rows.Err()
}
