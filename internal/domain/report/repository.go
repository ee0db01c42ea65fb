package report

import "context"

// ReportRepository - read-only aggregation over leave_requests and
// leave_balances
type ReportRepository interface {
	GetLeaveSummary(ctx context.Context) (LeaveSummary, error)
	GetTypeUsage(ctx context.Context) ([]TypeUsage, error)
}
